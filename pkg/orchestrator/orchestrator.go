// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/madgoathaz/goatd/pkg/audit"
	"github.com/madgoathaz/goatd/pkg/buildconfig"
	"github.com/madgoathaz/goatd/pkg/env"
	goatderrors "github.com/madgoathaz/goatd/pkg/errors"
	"github.com/madgoathaz/goatd/pkg/executor"
	"github.com/madgoathaz/goatd/pkg/gates"
	"github.com/madgoathaz/goatd/pkg/kconfig"
	"github.com/madgoathaz/goatd/pkg/mpl"
	"github.com/madgoathaz/goatd/pkg/recipe"
)

// Orchestrator drives one kernel build's phase state machine. Every
// field but BuildConfig and the two directory paths is optional; zero
// values fall back to sensible defaults (no event stream, no
// cancellation, the package-level timeout defaults).
type Orchestrator struct {
	BuildConfig *buildconfig.BuildConfig

	// WorkspaceRoot holds the MPL record and checkpoint. SourceDir is the
	// kernel source tree the packager builds in; by convention it is a
	// child of WorkspaceRoot. RecipePath is the packager recipe file;
	// defaults to WorkspaceRoot/recipe.FileName if empty.
	WorkspaceRoot string
	SourceDir     string
	BackupDir     string
	RecipePath    string

	// Packager is the distribution build tool binary invoked with
	// PackagerArgs during the Building phase.
	Packager     string
	PackagerArgs []string
	BaseEnv      []string

	Sink   executor.LogSink
	Events chan<- BuildEvent
	Cancel <-chan struct{}

	TestTimeout           time.Duration
	VersionResolveTimeout time.Duration
	Resolver              VersionResolver
	Auditor               *audit.Auditor

	versionCache    map[string]string
	capturedRelease string
}

// Result is what Run/Resume return on reaching a terminal phase.
type Result struct {
	Phase         Phase
	Reason        FailureReason
	KernelRelease string
	Audit         *audit.Report
}

// Run executes the full pipeline from Preparation through Validation.
func (o *Orchestrator) Run(ctx context.Context) (*Result, error) {
	return o.runFrom(ctx, Preparation)
}

// Resume restarts the build at the phase named in the workspace's last
// persisted checkpoint, re-running that phase (every phase's own writes
// are idempotent) rather than skipping it, since partial work from an
// interrupted phase cannot be trusted to have completed.
func (o *Orchestrator) Resume(ctx context.Context) (*Result, error) {
	cp, err := ReadCheckpoint(o.WorkspaceRoot)
	if err != nil {
		return nil, err
	}
	if cp.Phase == Completed {
		return &Result{Phase: Completed}, nil
	}
	start := cp.Phase
	if start == Failed {
		return nil, goatderrors.New(goatderrors.ErrCodeInvalidRequest,
			"cannot resume a build that already reached Failed; start a new build")
	}
	return o.runFrom(ctx, start)
}

func (o *Orchestrator) recipePath() string {
	if o.RecipePath != "" {
		return o.RecipePath
	}
	return filepath.Join(o.WorkspaceRoot, recipe.FileName)
}

func (o *Orchestrator) runFrom(ctx context.Context, start Phase) (*Result, error) {
	started := time.Now()
	if start == Preparation {
		defer func() { buildDuration.Observe(time.Since(started).Seconds()) }()
	}

	phase := start
	for phase != Completed {
		emit(o.Events, PhaseEntered{Phase: phase})
		phaseTransitions.WithLabelValues(string(phase)).Inc()

		var err error
		switch phase {
		case Preparation:
			err = o.runPreparation(ctx)
		case Configuration:
			err = o.runConfiguration(ctx)
		case Patching:
			err = o.runPatching(ctx)
		case Building:
			var result *executor.Result
			result, err = o.runBuilding(ctx)
			if err == nil && result != nil {
				if terminal, reason := o.buildOutcomeFailure(result); terminal {
					return o.fail(reason, result.Tail)
				}
			}
		case Validation:
			var report *audit.Report
			report, err = o.runValidation(ctx)
			if err == nil {
				if cpErr := o.checkpoint(Completed, ""); cpErr != nil {
					return nil, cpErr
				}
				emit(o.Events, PhaseCompleted{Phase: Validation})
				return &Result{Phase: Completed, Audit: report}, nil
			}
		}

		if err != nil {
			return o.failFromError(err)
		}

		if cpErr := o.checkpoint(phase, ""); cpErr != nil {
			return nil, cpErr
		}
		emit(o.Events, PhaseCompleted{Phase: phase})
		phase = phase.next()
	}
	return &Result{Phase: Completed}, nil
}

func (o *Orchestrator) checkpoint(phase Phase, reason FailureReason) error {
	return writeCheckpoint(o.WorkspaceRoot, Checkpoint{
		Phase:       phase,
		Reason:      reason,
		Timestamp:   time.Now().UTC(),
		EnvSnapshot: nil,
	})
}

func (o *Orchestrator) fail(reason FailureReason, tail []string) (*Result, error) {
	if cpErr := o.checkpoint(Failed, reason); cpErr != nil {
		return nil, cpErr
	}
	buildFailures.WithLabelValues(string(reason)).Inc()
	emit(o.Events, FailedEvent{Reason: reason})
	if o.Sink != nil {
		for _, line := range tail {
			o.Sink.SendLine("build", slog.LevelError, "[LOG-CAPTURE] "+line)
		}
	}
	return &Result{Phase: Failed, Reason: reason}, nil
}

// failFromError maps a patcher/env/version error into the matching
// FailureReason and persists a Failed checkpoint; it is the catch-all
// path for every phase except Building, which reports its own terminal
// outcomes (BuildFailed/TimedOut/Cancelled) via buildOutcomeFailure
// instead, since those are not Go errors but executor.Result values.
func (o *Orchestrator) failFromError(err error) (*Result, error) {
	reason := ReasonPatchFailed
	var structured *goatderrors.StructuredError
	if se, ok := err.(*goatderrors.StructuredError); ok {
		structured = se
		switch se.Code {
		case goatderrors.ErrCodeEnvInvalid:
			reason = ReasonEnvInvalid
		case goatderrors.ErrCodeBuildSpawnFailed:
			reason = ReasonBuildSpawnFailed
		case goatderrors.ErrCodeVersionResolutionFailed:
			reason = ReasonVersionResolutionFailed
		default:
			reason = ReasonPatchFailed
		}
	}
	result, cpErr := o.fail(reason, nil)
	if cpErr != nil {
		return nil, cpErr
	}
	if structured != nil {
		return result, structured
	}
	return result, err
}

func (o *Orchestrator) buildOutcomeFailure(result *executor.Result) (bool, FailureReason) {
	switch result.Outcome {
	case executor.TimedOut:
		return true, ReasonTimedOut
	case executor.Cancelled:
		return true, ReasonCancelled
	case executor.Completed:
		if result.ExitCode != 0 {
			return true, ReasonBuildFailed
		}
		return false, ""
	default:
		return true, ReasonBuildFailed
	}
}

// runPreparation resolves the kernel version, validates BuildConfig,
// prepares the sanitized toolchain environment, and initializes the MPL
// record with an empty kernel release.
func (o *Orchestrator) runPreparation(ctx context.Context) error {
	if err := o.BuildConfig.Validate(); err != nil {
		return goatderrors.Wrap(goatderrors.ErrCodeInvalidRequest, "invalid build config", err)
	}

	resolved, err := o.resolveVersion(ctx)
	if err != nil {
		return err
	}
	o.BuildConfig.Version = resolved
	emit(o.Events, VersionResolved{Version: resolved})

	if _, err := env.Prepare(o.BaseEnv, o.SourceDir, o.BuildConfig.NativeOptimizations); err != nil {
		return err
	}

	record, err := mpl.New(o.WorkspaceRoot, o.SourceDir, resolved, string(o.BuildConfig.Profile), o.BuildConfig.KernelVariant, string(o.BuildConfig.LTOLevel))
	if err != nil {
		return goatderrors.Wrap(goatderrors.ErrCodePatchFailed, "initialize MPL record", err)
	}
	return mpl.Write(o.WorkspaceRoot, record)
}

// runConfiguration computes the finalized .config option map. The map
// itself is recomputed (not persisted) by every phase that needs it,
// since it is a pure function of BuildConfig; this phase exists to give
// the state machine and its checkpoint an explicit boundary matching
// spec.md's phase list. It reports no error of its own and writes no
// file.
func (o *Orchestrator) runConfiguration(ctx context.Context) error {
	_ = configOptions(o.BuildConfig)
	return nil
}

// runPatching applies the Kconfig patcher, then the recipe patcher —
// order matters: Kconfig first so gate P5 is already in place before
// anything sources .config, recipe second — then sweeps stale packaged
// artifacts out of the source directory.
func (o *Orchestrator) runPatching(ctx context.Context) error {
	bc := o.BuildConfig
	options := configOptions(bc)

	if err := kconfig.ApplyKconfig(o.SourceDir, o.BackupDir, options, bc.LTOLevel); err != nil {
		return err
	}
	if err := kconfig.InjectBakedInCmdline(o.SourceDir, bc.UseMGLRU, bc.Hardening); err != nil {
		return err
	}
	if err := kconfig.GenerateConfigOverride(o.SourceDir, options, bc.LTOLevel); err != nil {
		return err
	}

	recipePath := o.recipePath()
	recipeContent, err := os.ReadFile(recipePath)
	if err != nil {
		return goatderrors.Wrap(goatderrors.ErrCodePatchFailed, "read recipe "+recipePath, err)
	}

	literalRelease := fmt.Sprintf("%s-%s", bc.Version, bc.KernelVariant)
	patched, err := recipe.PatchRecipe(string(recipeContent), recipe.Options{
		Profile:              bc.Profile,
		KernelVariant:        bc.KernelVariant,
		UseModprobedDB:       bc.UseModprobedDB,
		UseWhitelist:         bc.UseWhitelist,
		WorkspaceRoot:        o.WorkspaceRoot,
		LiteralKernelRelease: literalRelease,
		PkgVer:               bc.Version,
		PkgRel:               "1",
	})
	if err != nil {
		return err
	}

	beforeGates := patched
	patched, err = gates.InjectGates(patched, gates.Config{
		LTOLevel:       bc.LTOLevel,
		UseModprobedDB: bc.UseModprobedDB,
		UseBORE:        bc.Scheduler == buildconfig.SchedulerBORE,
		UseMGLRU:       bc.UseMGLRU,
	})
	if err != nil {
		return err
	}
	for _, gate := range gates.Fired(beforeGates, patched) {
		gateFires.WithLabelValues(gate).Inc()
	}

	if err := os.WriteFile(recipePath, []byte(patched), 0o644); err != nil {
		return goatderrors.Wrap(goatderrors.ErrCodePatchFailed, "write recipe "+recipePath, err)
	}

	return o.cleanStaleArtifacts()
}

// cleanStaleArtifacts removes any previously built package archives from
// the source directory so the Building phase cannot mistake a stale
// artifact from a prior, aborted build for this run's output.
func (o *Orchestrator) cleanStaleArtifacts() error {
	entries, err := os.ReadDir(o.SourceDir)
	if err != nil {
		return goatderrors.Wrap(goatderrors.ErrCodePatchFailed, "list source dir for cleanup", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(entry.Name(), ".pkg.tar.zst") {
			if err := os.Remove(filepath.Join(o.SourceDir, entry.Name())); err != nil {
				return goatderrors.Wrap(goatderrors.ErrCodePatchFailed, "remove stale artifact "+entry.Name(), err)
			}
		}
	}
	return nil
}

// runBuilding invokes the packager child and streams its output through
// the configured sink.
func (o *Orchestrator) runBuilding(ctx context.Context) (*executor.Result, error) {
	envMap, err := env.Prepare(o.BaseEnv, o.SourceDir, o.BuildConfig.NativeOptimizations)
	if err != nil {
		return nil, err
	}

	result, err := executor.RunKernelBuild(ctx, o.SourceDir, o.Packager, o.PackagerArgs, env.Slice(envMap), o.Cancel, o.Sink, o.TestTimeout)
	if err != nil {
		return nil, goatderrors.Wrap(goatderrors.ErrCodeBuildSpawnFailed, "run packager", err)
	}
	if result.KernelRelease != "" {
		o.capturedRelease = result.KernelRelease
		emit(o.Events, KernelReleaseCaptured{Release: result.KernelRelease})
	}
	return result, nil
}

// runValidation rewrites the MPL record with the captured release
// string and audits the final .config against what was requested.
func (o *Orchestrator) runValidation(ctx context.Context) (*audit.Report, error) {
	record, err := mpl.Read(o.WorkspaceRoot)
	if err != nil {
		return nil, err
	}

	configPath := filepath.Join(o.SourceDir, kconfig.ConfigFileName)
	configBytes, err := os.ReadFile(configPath)
	if err != nil {
		return nil, goatderrors.Wrap(goatderrors.ErrCodePatchFailed, "read final .config", err)
	}

	cmdline := extractCmdline(string(configBytes))

	auditor := o.Auditor
	if auditor == nil {
		auditor = &audit.Auditor{}
	}
	report, err := auditor.Audit(string(configBytes), cmdline, o.BuildConfig, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if o.capturedRelease != "" {
		record = record.WithKernelRelease(o.capturedRelease)
	}
	if err := mpl.Write(o.WorkspaceRoot, record); err != nil {
		return nil, err
	}

	return report, nil
}

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
