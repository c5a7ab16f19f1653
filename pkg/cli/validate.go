/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/madgoathaz/goatd/pkg/audit"
	"github.com/madgoathaz/goatd/pkg/buildconfig"
)

var (
	validateConfigPath string
	validateProfile    string
	validateLTO        string
	validateScheduler  string
	validateMGLRU      bool
	validateWhitelist  bool
	validateStrict     bool
)

var validateCmd = &cobra.Command{
	Use:     "validate",
	GroupID: "functional",
	Short:   "Audit an existing .config against the feature set it should realize",
	Long: `Runs the same invariant checks the build pipeline's Validation phase
runs, against a .config file on disk, without driving a build. Useful
for checking a kernel that was built outside goatd, or for re-checking
a backup before restoring it.`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&validateConfigPath, "config", ".config", "path to the .config file to audit")
	validateCmd.Flags().StringVar(&validateProfile, "profile", string(buildconfig.ProfileGaming), fmt.Sprintf("profile the .config should satisfy (%s)", joinProfiles()))
	validateCmd.Flags().StringVar(&validateLTO, "lto", string(buildconfig.LTOThin), "LTO level the .config should satisfy")
	validateCmd.Flags().StringVar(&validateScheduler, "scheduler", string(buildconfig.SchedulerEEVDF), "scheduler the .config should satisfy")
	validateCmd.Flags().BoolVar(&validateMGLRU, "mglru", false, "whether MGLRU should be enabled")
	validateCmd.Flags().BoolVar(&validateWhitelist, "whitelist", false, "whether the essential-module whitelist should be enforced")
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "return a non-zero exit status if any error-severity finding is present")
}

func runValidate(_ *cobra.Command, _ []string) error {
	profile, ok := buildconfig.ParseProfile(validateProfile)
	if !ok {
		return fmt.Errorf("unknown profile %q", validateProfile)
	}
	lto, ok := buildconfig.ParseLTOLevel(validateLTO)
	if !ok {
		return fmt.Errorf("unknown lto level %q", validateLTO)
	}
	scheduler := buildconfig.SchedulerEEVDF
	if validateScheduler == string(buildconfig.SchedulerBORE) {
		scheduler = buildconfig.SchedulerBORE
	}

	content, err := os.ReadFile(validateConfigPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", validateConfigPath, err)
	}

	bc := &buildconfig.BuildConfig{
		Profile:      profile,
		LTOLevel:     lto,
		Scheduler:    scheduler,
		UseMGLRU:     validateMGLRU,
		UseWhitelist: validateWhitelist,
	}

	auditor := &audit.Auditor{Strict: validateStrict}
	report, err := auditor.Audit(string(content), extractCmdline(string(content)), bc, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("audit: %w", err)
	}

	fmt.Printf("profile=%s requested_lto=%s realized_lto=%s clean=%v\n",
		report.Profile, report.RequestedLTO, report.RealizedLTO, report.Clean())
	for _, f := range report.Findings {
		fmt.Printf("  [%s] %s: %s\n", f.Severity, f.Code, f.Message)
	}
	return nil
}

// extractCmdline mirrors pkg/orchestrator's unexported helper of the same
// name; duplicated here since a standalone audit has no Orchestrator to
// call it through.
func extractCmdline(configContent string) string {
	const marker = `CONFIG_CMDLINE="`
	idx := strings.Index(configContent, marker)
	if idx < 0 {
		return ""
	}
	rest := configContent[idx+len(marker):]
	end := strings.Index(rest, `"`)
	if end < 0 {
		return ""
	}
	return rest[:end]
}
