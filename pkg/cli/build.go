/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/madgoathaz/goatd/pkg/buildconfig"
	"github.com/madgoathaz/goatd/pkg/defaults"
	"github.com/madgoathaz/goatd/pkg/hardware"
	"github.com/madgoathaz/goatd/pkg/logging/dispatch"
	"github.com/madgoathaz/goatd/pkg/orchestrator"
)

var (
	buildProfile      string
	buildVariant      string
	buildVersion      string
	buildLTO          string
	buildHardening    string
	buildScheduler    string
	buildMGLRU        bool
	buildPolly        bool
	buildModprobedDB  bool
	buildWhitelist    bool
	buildNative       bool
	buildWorkspace    string
	buildSourceDir    string
	buildBackupDir    string
	buildPackager     string
	buildPackagerArgs []string
	buildTimeout      time.Duration
)

// buildCmd represents the build command
var buildCmd = &cobra.Command{
	Use:     "build",
	GroupID: "functional",
	Short:   "Run the full Preparation-to-Validation kernel build pipeline",
	Long: `Patches a packager recipe and the kernel's Kconfig to match the
requested profile and feature toggles, then invokes the packager and
audits the result.

A checkpoint is written to the workspace after every phase; if the
build is interrupted, "goatd resume" restarts it from the last
completed phase rather than from Preparation.`,
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringVar(&buildProfile, "profile", string(buildconfig.ProfileGaming),
		fmt.Sprintf("optimization profile (%s)", joinProfiles()))
	buildCmd.Flags().StringVar(&buildVariant, "variant", "cachyos", "kernel variant name")
	buildCmd.Flags().StringVar(&buildVersion, "version", buildconfig.VersionLatest, "kernel version, or \"latest\"")
	buildCmd.Flags().StringVar(&buildLTO, "lto", "", "override the profile's LTO level (None, Thin, Full)")
	buildCmd.Flags().StringVar(&buildHardening, "hardening", "", "override the profile's hardening posture (Minimal, Standard, Hardened)")
	buildCmd.Flags().StringVar(&buildScheduler, "scheduler", "", "override the profile's scheduler (eevdf, bore)")
	buildCmd.Flags().BoolVar(&buildMGLRU, "mglru", false, "override the profile's MGLRU toggle")
	buildCmd.Flags().BoolVar(&buildPolly, "polly", false, "override the profile's LLVM Polly toggle")
	buildCmd.Flags().BoolVar(&buildModprobedDB, "modprobed-db", false, "force modprobed-db module filtering on")
	buildCmd.Flags().BoolVar(&buildWhitelist, "whitelist", false, "force the essential-module whitelist on (implies --modprobed-db)")
	buildCmd.Flags().BoolVar(&buildNative, "native-optimizations", false, "force -march=native toggling on")

	buildCmd.Flags().StringVar(&buildWorkspace, "workspace", ".", "workspace root holding the MPL record and checkpoint")
	buildCmd.Flags().StringVar(&buildSourceDir, "source-dir", "", "kernel source tree (defaults to <workspace>/src)")
	buildCmd.Flags().StringVar(&buildBackupDir, "backup-dir", "", "directory for the pre-patch .config backup (defaults to <workspace>/backup)")
	buildCmd.Flags().StringVar(&buildPackager, "packager", "makepkg", "packager binary to invoke during Building")
	buildCmd.Flags().StringSliceVar(&buildPackagerArgs, "packager-args", []string{"-s", "--noconfirm"}, "arguments passed to the packager binary")
	buildCmd.Flags().DurationVar(&buildTimeout, "timeout", defaults.BuildTimeout, "ceiling on the Building phase")
}

func joinProfiles() string {
	names := make([]string, 0, len(buildconfig.Profiles))
	for _, p := range buildconfig.Profiles {
		names = append(names, string(p))
	}
	return strings.Join(names, ", ")
}

func runBuild(cmd *cobra.Command, _ []string) error {
	profile, ok := buildconfig.ParseProfile(buildProfile)
	if !ok {
		return fmt.Errorf("unknown profile %q, expected one of: %s", buildProfile, joinProfiles())
	}

	toggled := buildconfig.UserIntent{
		LTO:   cmd.Flags().Changed("lto"),
		BORE:  cmd.Flags().Changed("scheduler"),
		MGLRU: cmd.Flags().Changed("mglru"),
		Polly: cmd.Flags().Changed("polly"),
	}
	var ltoOverride buildconfig.LTOLevel
	if toggled.LTO {
		level, ok := buildconfig.ParseLTOLevel(buildLTO)
		if !ok {
			return fmt.Errorf("unknown lto level %q", buildLTO)
		}
		ltoOverride = level
	}
	userBORE := buildScheduler == string(buildconfig.SchedulerBORE)

	bc, err := buildconfig.FromPreset(profile, buildVariant, buildVersion, ltoOverride, toggled, userBORE, buildMGLRU, buildPolly)
	if err != nil {
		return fmt.Errorf("build config: %w", err)
	}
	if buildHardening != "" {
		hardening, ok := buildconfig.ParseHardening(buildHardening)
		if !ok {
			return fmt.Errorf("unknown hardening posture %q", buildHardening)
		}
		bc.Hardening = hardening
	}
	if cmd.Flags().Changed("modprobed-db") {
		bc.UseModprobedDB = buildModprobedDB
	}
	if cmd.Flags().Changed("whitelist") {
		bc.UseWhitelist = buildWhitelist
		if buildWhitelist {
			bc.UseModprobedDB = true
		}
	}
	if cmd.Flags().Changed("native-optimizations") {
		bc.NativeOptimizations = buildNative
	}

	if info, detectErr := hardware.NewDefaultDetector().Detect(cmd.Context()); detectErr == nil {
		hardware.ApplyHardwareTruth(&bc, info)
	} else {
		slog.Warn("hardware detection failed, skipping hardware-truth overrides", "error", detectErr)
	}

	sourceDir := buildSourceDir
	if sourceDir == "" {
		sourceDir = buildWorkspace + "/src"
	}
	backupDir := buildBackupDir
	if backupDir == "" {
		backupDir = buildWorkspace + "/backup"
	}

	collector := dispatch.NewCollector()
	defer collector.Close()
	go printUIBus(collector)

	events := make(chan orchestrator.BuildEvent, 32)
	go printBuildEvents(events)

	o := &orchestrator.Orchestrator{
		BuildConfig:   &bc,
		WorkspaceRoot: buildWorkspace,
		SourceDir:     sourceDir,
		BackupDir:     backupDir,
		Packager:      buildPackager,
		PackagerArgs:  buildPackagerArgs,
		Sink:          collector,
		Events:        events,
		TestTimeout:   buildTimeout,
	}

	result, err := o.Run(cmd.Context())
	close(events)
	if err != nil {
		return fmt.Errorf("build: %w", err)
	}
	return reportResult(result)
}

// printUIBus drains a collector's rate-limited UI bus to stdout until
// the collector is closed and the bus channel is drained and closed.
func printUIBus(c *dispatch.Collector) {
	for line := range c.UIBus() {
		fmt.Printf("[%s] %s\n", line.Source, line.Text)
	}
}

// printBuildEvents renders the phase state machine's event stream as it
// happens, so a long Building phase doesn't leave the operator staring
// at a silent terminal between packager output lines.
func printBuildEvents(events <-chan orchestrator.BuildEvent) {
	for evt := range events {
		switch e := evt.(type) {
		case orchestrator.PhaseEntered:
			slog.Info("phase entered", "phase", e.Phase)
		case orchestrator.PhaseCompleted:
			slog.Info("phase completed", "phase", e.Phase)
		case orchestrator.VersionResolved:
			slog.Info("version resolved", "version", e.Version)
		case orchestrator.KernelReleaseCaptured:
			slog.Info("kernel release captured", "release", e.Release)
		case orchestrator.FailedEvent:
			slog.Error("build failed", "reason", e.Reason)
		case orchestrator.LogLine:
			slog.Log(context.Background(), e.Level, e.Text)
		}
	}
}

func reportResult(result *orchestrator.Result) error {
	if result.Phase == orchestrator.Failed {
		return fmt.Errorf("build ended in phase %s: %s", result.Phase, result.Reason)
	}
	fmt.Printf("build completed: kernel release %q\n", result.KernelRelease)
	if result.Audit != nil {
		fmt.Printf("audit: %d finding(s), clean=%v\n", len(result.Audit.Findings), result.Audit.Clean())
	}
	return nil
}
