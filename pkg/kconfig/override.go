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

package kconfig

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/madgoathaz/goatd/pkg/buildconfig"
)

// OverrideFileName is the file consumed via the kernel's
// KCONFIG_ALLCONFIG mechanism.
const OverrideFileName = ".config.override"

// GenerateConfigOverride writes source_dir/.config.override and mirrors
// it to the workspace-level ../config path some packager recipes copy
// verbatim. Content order is fixed: header comment, LTO block,
// toolchain enforcement, user options, MGLRU passthrough.
func GenerateConfigOverride(sourceDir string, options map[string]string, lto buildconfig.LTOLevel) error {
	content := renderOverride(options, lto)

	if err := writeAtomic(filepath.Join(sourceDir, OverrideFileName), content); err != nil {
		return err
	}
	mirrorPath := filepath.Join(sourceDir, "..", "config")
	return writeAtomic(mirrorPath, content)
}

func renderOverride(options map[string]string, lto buildconfig.LTOLevel) string {
	var b strings.Builder
	b.WriteString("# goatd: generated .config.override, do not edit by hand\n")

	for _, line := range LTOBlock(lto) {
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("CONFIG_CC_IS_CLANG=y\n")

	keys := make([]string, 0, len(options))
	for k := range options {
		if !strings.HasPrefix(k, "_") {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(options[k])
		b.WriteString("\n")
	}

	mglruKeys := make([]string, 0)
	for k := range options {
		if strings.HasPrefix(k, "_MGLRU_CONFIG_") {
			mglruKeys = append(mglruKeys, k)
		}
	}
	sort.Strings(mglruKeys)
	for _, k := range mglruKeys {
		b.WriteString(options[k])
		b.WriteString("\n")
	}

	return b.String()
}
