/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/madgoathaz/goatd/pkg/buildconfig"
	"github.com/madgoathaz/goatd/pkg/orchestrator"
)

var resumeWorkspace string

var resumeCmd = &cobra.Command{
	Use:     "resume",
	GroupID: "functional",
	Short:   "Resume an interrupted build from its last checkpoint",
	Long: `Reads the checkpoint left by an earlier "goatd build" invocation and
restarts the pipeline from that phase instead of Preparation. The
BuildConfig recorded when the checkpoint was written is re-derived from
the same profile/variant/version flags, which must match the original
invocation for the resumed run to be meaningful.`,
	RunE: runResume,
}

func init() {
	rootCmd.AddCommand(resumeCmd)

	resumeCmd.Flags().StringVar(&resumeWorkspace, "workspace", ".", "workspace root holding the checkpoint to resume")
	resumeCmd.Flags().StringVar(&buildProfile, "profile", string(buildconfig.ProfileGaming), "optimization profile used by the interrupted build")
	resumeCmd.Flags().StringVar(&buildVariant, "variant", "cachyos", "kernel variant name")
	resumeCmd.Flags().StringVar(&buildVersion, "version", "", "kernel version the interrupted build used")
	resumeCmd.Flags().StringVar(&buildSourceDir, "source-dir", "", "kernel source tree (defaults to <workspace>/src)")
	resumeCmd.Flags().StringVar(&buildBackupDir, "backup-dir", "", "directory holding the pre-patch .config backup (defaults to <workspace>/backup)")
	resumeCmd.Flags().StringVar(&buildPackager, "packager", "makepkg", "packager binary to invoke during Building")
	resumeCmd.Flags().StringSliceVar(&buildPackagerArgs, "packager-args", []string{"-s", "--noconfirm"}, "arguments passed to the packager binary")
}

func runResume(cmd *cobra.Command, _ []string) error {
	cp, err := orchestrator.ReadCheckpoint(resumeWorkspace)
	if err != nil {
		return fmt.Errorf("no checkpoint to resume: %w", err)
	}
	slog.Info("resuming from checkpoint", "phase", cp.Phase, "reason", cp.Reason)

	profile, ok := buildconfig.ParseProfile(buildProfile)
	if !ok {
		return fmt.Errorf("unknown profile %q", buildProfile)
	}

	bc, err := buildconfig.FromPreset(profile, buildVariant, buildVersion, "", buildconfig.UserIntent{}, false, false, false)
	if err != nil {
		return fmt.Errorf("build config: %w", err)
	}

	sourceDir := buildSourceDir
	if sourceDir == "" {
		sourceDir = resumeWorkspace + "/src"
	}
	backupDir := buildBackupDir
	if backupDir == "" {
		backupDir = resumeWorkspace + "/backup"
	}

	o := &orchestrator.Orchestrator{
		BuildConfig:   &bc,
		WorkspaceRoot: resumeWorkspace,
		SourceDir:     sourceDir,
		BackupDir:     backupDir,
		Packager:      buildPackager,
		PackagerArgs:  buildPackagerArgs,
		TestTimeout:   buildTimeout,
	}

	result, err := o.Resume(cmd.Context())
	if err != nil {
		return fmt.Errorf("resume: %w", err)
	}
	return reportResult(result)
}
