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

package recipe

import (
	"regexp"
	"strings"

	"github.com/madgoathaz/goatd/pkg/buildconfig"
)

// FileName is the packager recipe's conventional on-disk name, the file
// the orchestrator's Patching phase reads, passes through PatchRecipe and
// InjectGates, and writes back.
const FileName = "PKGBUILD"

// Options parameterizes a full PatchRecipe run. WorkspaceRoot and
// LiteralKernelRelease are captured once, at patch time, and baked into
// the recipe as literal strings — the Priority-0 version injection
// design note — rather than re-discovered by the packager at build
// time.
type Options struct {
	Profile              buildconfig.Profile
	KernelVariant        string
	UseModprobedDB       bool
	UseWhitelist         bool
	WorkspaceRoot        string
	LiteralKernelRelease string
	PkgVer               string
	PkgRel               string
}

// PatchRecipe applies every pass in source order. Order matters: later
// passes rely on anchors (sentinels, renamed functions) the earlier
// ones establish.
func PatchRecipe(content string, opts Options) (string, error) {
	content, err := applyToolchainExports(content)
	if err != nil {
		patchFailures.Inc()
		return "", err
	}
	patchPasses.WithLabelValues("toolchain_exports").Inc()

	if opts.UseModprobedDB {
		content, err = applyModprobedBlock(content, opts.KernelVariant)
		if err != nil {
			patchFailures.Inc()
			return "", err
		}
		patchPasses.WithLabelValues("modprobed_block").Inc()

		if opts.UseWhitelist {
			content, err = applyWhitelistBlock(content)
			if err != nil {
				patchFailures.Inc()
				return "", err
			}
			patchPasses.WithLabelValues("whitelist_block").Inc()
		}
	}

	content, err = applyMPLSourcing(content, opts.WorkspaceRoot)
	if err != nil {
		patchFailures.Inc()
		return "", err
	}
	patchPasses.WithLabelValues("mpl_sourcing").Inc()

	content, err = applyModuleDirCreation(content, opts.LiteralKernelRelease, opts.PkgVer, opts.PkgRel, suffixFor(opts.Profile))
	if err != nil {
		patchFailures.Inc()
		return "", err
	}
	patchPasses.WithLabelValues("module_dir_creation").Inc()

	content, err = ApplyRebranding(content, opts.Profile)
	if err != nil {
		patchFailures.Inc()
		return "", err
	}
	patchPasses.WithLabelValues("rebranding").Inc()

	return content, nil
}

// suffixFor lowercases a Profile for use in the rebranded package
// identity, e.g. Profile("Gaming") -> "gaming".
func suffixFor(p buildconfig.Profile) string {
	return strings.ToLower(string(p))
}

// hasSentinel reports whether marker is already present anywhere in
// content, the idempotence check every pass performs before mutating.
func hasSentinel(content, marker string) bool {
	return strings.Contains(content, marker)
}

// functionBraceInsertPoints returns, for every shell function whose name
// matches namePattern, the byte offset immediately after its opening
// brace — the point at which a pass should insert its block. Functions
// are recognized in the conventional packager-recipe form
// `name() {` (whitespace-tolerant), one per line.
func functionBraceInsertPoints(content, namePattern string) []int {
	re := regexp.MustCompile(`(?m)^\s*(?:` + namePattern + `)\s*\(\)\s*\{\s*$`)
	matches := re.FindAllStringIndex(content, -1)
	points := make([]int, 0, len(matches))
	for _, m := range matches {
		points = append(points, m[1])
	}
	return points
}

// insertAtAll inserts block (already newline-terminated) immediately
// after each offset in points. Offsets must be in ascending order, as
// returned by functionBraceInsertPoints; insertion is done back-to-front
// so earlier offsets remain valid.
func insertAtAll(content string, points []int, block string) string {
	for i := len(points) - 1; i >= 0; i-- {
		p := points[i]
		content = content[:p] + "\n" + block + content[p:]
	}
	return content
}

// packagingFunctionPattern matches every function the spec calls a
// "packaging function": package, _package, and any package_* variant
// (headers, zen, goatd-rebranded names, etc).
const packagingFunctionPattern = `package(?:_[A-Za-z0-9_]*)?|_package(?:_[A-Za-z0-9_]*)?`
