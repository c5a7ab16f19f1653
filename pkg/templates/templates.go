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

package templates

import (
	"embed"
	"fmt"
	"strings"
	"sync"
	"text/template"
)

//go:embed data/*.tmpl
var fragmentFS embed.FS

const (
	nameToolchainExports = "toolchain_exports.sh.tmpl"
	nameModprobedBlock   = "modprobed_block.sh.tmpl"
	nameWhitelistBlock   = "whitelist_block.sh.tmpl"
	nameMPLSource        = "mpl_source.sh.tmpl"
	nameModulePathBridge = "module_path_bridge.sh.tmpl"
	nameGateG1           = "gate_g1.sh.tmpl"
	nameGateG2           = "gate_g2.sh.tmpl"
	nameGateG25          = "gate_g25.sh.tmpl"
	nameGateE1           = "gate_e1.sh.tmpl"
	nameGateP5           = "gate_p5.sh.tmpl"
)

var (
	fragmentsOnce sync.Once
	fragments     *template.Template
	fragmentsErr  error
)

func load() (*template.Template, error) {
	fragmentsOnce.Do(func() {
		fragments, fragmentsErr = template.ParseFS(fragmentFS, "data/*.tmpl")
		if fragmentsErr != nil {
			fragmentsErr = fmt.Errorf("parse embedded template fragments: %w", fragmentsErr)
		}
	})
	return fragments, fragmentsErr
}

func render(name string, data any) (string, error) {
	set, err := load()
	if err != nil {
		return "", err
	}
	var buf strings.Builder
	if err := set.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render template %s: %w", name, err)
	}
	return buf.String(), nil
}

// ModprobedBlockData parameterizes the modprobed-db localmodconfig pass.
type ModprobedBlockData struct {
	// KernelVariant is the recipe's pkgbase prefix used to locate the
	// extracted source directory (e.g. "linux-goatd").
	KernelVariant string
}

// MPLSourceData parameterizes the MPL metadata-sourcing fragment.
type MPLSourceData struct {
	// WorkspaceRoot is the absolute path containing the .goatd_metadata file.
	WorkspaceRoot string
}

// ModulePathBridgeData parameterizes the pretty-version symlink fragment.
type ModulePathBridgeData struct {
	// LiteralRelease, when non-empty, is used verbatim instead of the
	// recipe's own release-string discovery.
	LiteralRelease string
	// Headers selects whether a linux-headers symlink is also emitted.
	Headers bool
	PkgVer  string
	PkgRel  string
	Suffix  string
}

// GateLTOData parameterizes the G1, G2.5, and E1 gates, all of which
// re-assert the same authoritative LTO block.
type GateLTOData struct {
	// LTOBlock is the pre-rendered CONFIG_LTO_* append block for the
	// chosen LTO level.
	LTOBlock string
}

// GateG25Data parameterizes the post overwrite-reassertion gate, which
// re-applies every toggle the preceding gates already set whenever the
// detector observes a rewritten .config.
type GateG25Data struct {
	UseModprobedDB bool
	UseBORE        bool
	UseMGLRU       bool
	LTOBlock       string
}

// ToolchainExports renders the CC/CXX/LD clang enforcement block.
func ToolchainExports() (string, error) {
	return render(nameToolchainExports, nil)
}

// ModprobedBlock renders the modprobed-db localmodconfig integration block.
func ModprobedBlock(d ModprobedBlockData) (string, error) {
	return render(nameModprobedBlock, d)
}

// WhitelistBlock renders the hard-coded driver/filesystem whitelist append.
func WhitelistBlock() (string, error) {
	return render(nameWhitelistBlock, nil)
}

// MPLSource renders the fragment that sources the MPL metadata file.
func MPLSource(d MPLSourceData) (string, error) {
	return render(nameMPLSource, d)
}

// ModulePathBridge renders the pretty-version-to-actual-release symlink fragment.
func ModulePathBridge(d ModulePathBridgeData) (string, error) {
	return render(nameModulePathBridge, d)
}

// GateG1 renders the pre-compile LTO lock.
func GateG1(d GateLTOData) (string, error) {
	return render(nameGateG1, d)
}

// GateG2 renders the localmodconfig module-set lock.
func GateG2() (string, error) {
	return render(nameGateG2, nil)
}

// GateG25 renders the post ../config overwrite reassertion.
func GateG25(d GateG25Data) (string, error) {
	return render(nameGateG25, d)
}

// GateE1 renders the post oldconfig/syncconfig LTO reassertion.
func GateE1(d GateLTOData) (string, error) {
	return render(nameGateE1, d)
}

// GateP5 renders the diagnostic marker for the in-process LTO hard
// enforcer; the enforcement itself runs before any recipe script does.
func GateP5() (string, error) {
	return render(nameGateP5, nil)
}
