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

package audit

import (
	"strings"
	"time"

	"github.com/madgoathaz/goatd/pkg/buildconfig"
	goatderrors "github.com/madgoathaz/goatd/pkg/errors"
)

// essentialWhitelist mirrors pkg/templates/data/whitelist_block.sh.tmpl's
// append list exactly, so the audit checks against the same single
// source of truth the gate itself writes from.
var essentialWhitelist = []string{
	"CONFIG_SYSFS=y",
	"CONFIG_PROC_FS=y",
	"CONFIG_TMPFS=y",
	"CONFIG_DEVTMPFS=y",
	"CONFIG_BLK_DEV_INITRD=y",
	"CONFIG_EXT4_FS=y",
	"CONFIG_BTRFS_FS=m",
	"CONFIG_FAT_FS=m",
	"CONFIG_VFAT_FS=m",
	"CONFIG_EXFAT_FS=m",
	"CONFIG_NLS_UTF8=m",
	"CONFIG_NLS_ISO8859_1=m",
	"CONFIG_NLS_CP437=m",
	"CONFIG_NLS_ASCII=m",
	"CONFIG_NVME_CORE=y",
	"CONFIG_BLK_DEV_NVME=y",
	"CONFIG_USB=y",
	"CONFIG_USB_HID=y",
}

// Auditor evaluates a finished .config against the BuildConfig that
// should have produced it.
type Auditor struct {
	// Strict, when true, makes Audit return a GateViolation error instead
	// of merely appending an error-severity Finding.
	Strict bool
}

// Audit runs invariants 1-4 of the testable-properties list against
// configContent (the final .config text) and cmdline (the realized
// CONFIG_CMDLINE value), producing a Report. now is the caller-supplied
// generation timestamp.
func (a *Auditor) Audit(configContent, cmdline string, bc *buildconfig.BuildConfig, now time.Time) (*Report, error) {
	report := NewReport(bc.Profile, bc.LTOLevel, now)
	report.RealizedLTO = realizedLTO(configContent)

	a.checkLTO(report, configContent, bc.LTOLevel)
	a.checkScheduler(report, configContent, bc.Scheduler)
	a.checkMGLRU(report, configContent, cmdline, bc.UseMGLRU)
	a.checkWhitelist(report, configContent, bc.UseWhitelist)

	if a.Strict && !report.Clean() {
		return report, goatderrors.NewWithContext(goatderrors.ErrCodeGateViolation,
			"audit: one or more invariants violated", map[string]any{"findings": len(report.Findings)})
	}
	return report, nil
}

func realizedLTO(content string) buildconfig.LTOLevel {
	switch {
	case hasDirective(content, "CONFIG_LTO_CLANG_THIN=y"):
		return buildconfig.LTOThin
	case hasDirective(content, "CONFIG_LTO_CLANG_FULL=y"):
		return buildconfig.LTOFull
	default:
		return buildconfig.LTONone
	}
}

func (a *Auditor) checkLTO(r *Report, content string, level buildconfig.LTOLevel) {
	if level == buildconfig.LTONone {
		return
	}
	symbol := "CONFIG_LTO_CLANG_THIN=y"
	if level == buildconfig.LTOFull {
		symbol = "CONFIG_LTO_CLANG_FULL=y"
	}
	missing := []string{}
	for _, want := range []string{symbol, "CONFIG_LTO_CLANG=y", "CONFIG_HAS_LTO_CLANG=y"} {
		if !hasDirective(content, want) {
			missing = append(missing, want)
		}
	}
	if hasDirective(content, "CONFIG_LTO_NONE=y") {
		missing = append(missing, "unexpected CONFIG_LTO_NONE=y")
	}
	if len(missing) > 0 {
		r.Findings = append(r.Findings, Finding{
			Code:     "LTO_ENFORCEMENT",
			Message:  "LTO directives do not match requested level: " + strings.Join(missing, ", "),
			Severity: SeverityError,
		})
	}
}

func (a *Auditor) checkScheduler(r *Report, content string, scheduler buildconfig.Scheduler) {
	if scheduler != buildconfig.SchedulerBORE {
		return
	}
	if !hasDirective(content, "CONFIG_SCHED_BORE=y") {
		r.Findings = append(r.Findings, Finding{
			Code:     "SCHEDULER_BORE",
			Message:  "scheduler=bore requested but CONFIG_SCHED_BORE=y is absent",
			Severity: SeverityError,
		})
	}
}

func (a *Auditor) checkMGLRU(r *Report, content, cmdline string, useMGLRU bool) {
	if !useMGLRU {
		return
	}
	if !hasDirective(content, "CONFIG_LRU_GEN_ENABLED=y") {
		r.Findings = append(r.Findings, Finding{
			Code:     "MGLRU_DIRECTIVE",
			Message:  "use_mglru requested but CONFIG_LRU_GEN_ENABLED=y is absent",
			Severity: SeverityError,
		})
	}
	if !strings.Contains(cmdline, "lru_gen.enabled=7") {
		r.Findings = append(r.Findings, Finding{
			Code:     "MGLRU_CMDLINE",
			Message:  "use_mglru requested but cmdline is missing lru_gen.enabled=7",
			Severity: SeverityError,
		})
	}
}

func (a *Auditor) checkWhitelist(r *Report, content string, useWhitelist bool) {
	if !useWhitelist {
		return
	}
	var missing []string
	for _, directive := range essentialWhitelist {
		if !hasDirective(content, directive) {
			missing = append(missing, directive)
		}
	}
	if len(missing) > 0 {
		r.Findings = append(r.Findings, Finding{
			Code:     "WHITELIST_ADMISSIBILITY",
			Message:  "use_whitelist requested but missing: " + strings.Join(missing, ", "),
			Severity: SeverityError,
		})
	}
}

// hasDirective reports whether content contains an exact, uncommented
// occurrence of directive on its own line.
func hasDirective(content, directive string) bool {
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == directive {
			return true
		}
	}
	return false
}
