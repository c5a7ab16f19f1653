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
	"regexp"
	"sort"
	"strings"

	"github.com/madgoathaz/goatd/pkg/buildconfig"
)

// ltoLinePattern matches every line P5 and the shell gates must strip
// before re-asserting the authoritative LTO block, including the
// "not set" comment form the kernel's own Kconfig machinery emits.
var ltoLinePattern = regexp.MustCompile(`(?m)^(CONFIG_LTO_|CONFIG_HAS_LTO_|# CONFIG_LTO_|# CONFIG_HAS_LTO_).*$`)

var legacyToolchainMarkers = []string{"CONFIG_CC_IS_GCC", "CONFIG_GCC_VERSION"}

// LTOBlock returns the authoritative directive lines for an LTO level,
// in the order the kernel's Kconfig expects dependent symbols to
// appear. For None it returns a single marker comment rather than a
// directive, matching the source's documented behaviour.
func LTOBlock(level buildconfig.LTOLevel) []string {
	switch level {
	case buildconfig.LTOThin:
		return []string{"CONFIG_LTO_CLANG_THIN=y", "CONFIG_LTO_CLANG=y", "CONFIG_HAS_LTO_CLANG=y"}
	case buildconfig.LTOFull:
		return []string{"CONFIG_LTO_CLANG_FULL=y", "CONFIG_LTO_CLANG=y", "CONFIG_HAS_LTO_CLANG=y"}
	default:
		return []string{"# goatd: LTO disabled"}
	}
}

// StripLTOLines removes every existing LTO directive or "is not set"
// comment and collapses the resulting run of consecutive blank lines.
func StripLTOLines(content string) string {
	stripped := ltoLinePattern.ReplaceAllString(content, "")
	return collapseBlankLines(stripped)
}

// ApplyLTO is gate P5: strip every existing LTO line, then append the
// authoritative block for level. It is in-process (called directly by
// the Kconfig patcher) rather than shell-injected, because it must run
// before any packager script has a chance to source .config.
func ApplyLTO(content string, level buildconfig.LTOLevel) string {
	stripped := StripLTOLines(content)
	return appendLines(stripped, LTOBlock(level))
}

// RemoveLegacyToolchainMarkers deletes any line assigning one of the
// legacy GCC-only Kconfig symbols, which the packager's own default
// .config may carry over from a stock build.
func RemoveLegacyToolchainMarkers(content string) string {
	lines := splitLines(content)
	out := lines[:0]
	for _, line := range lines {
		drop := false
		for _, marker := range legacyToolchainMarkers {
			if directiveName(line) == marker {
				drop = true
				break
			}
		}
		if !drop {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n") + trailingNewline(content)
}

// ApplyOptions deletes every existing line for each non-underscore-
// prefixed key in options and appends "key=value" to the tail in
// options' own iteration order is not guaranteed by Go maps, so keys
// are sorted for determinism. Keys prefixed with "_MGLRU_CONFIG_" are
// passed through as raw "NAME=VAL" lines (value is the full line, not
// a Kconfig value); any other underscore-prefixed key is reserved and
// ignored.
func ApplyOptions(content string, options map[string]string) string {
	keys := make([]string, 0, len(options))
	for k := range options {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	result := content
	var tail []string
	for _, key := range keys {
		value := options[key]
		switch {
		case strings.HasPrefix(key, "_MGLRU_CONFIG_"):
			tail = append(tail, value)
		case strings.HasPrefix(key, "_"):
			continue
		default:
			result = deleteDirective(result, key)
			tail = append(tail, key+"="+value)
		}
	}
	return appendLines(result, tail)
}

// deleteDirective removes every line assigning name, whether as a
// direct assignment or a "# name is not set" comment.
func deleteDirective(content, name string) string {
	lines := splitLines(content)
	out := lines[:0]
	for _, line := range lines {
		if directiveName(line) == name {
			continue
		}
		if strings.TrimSpace(line) == "# "+name+" is not set" {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n") + trailingNewline(content)
}

// directiveName returns the Kconfig symbol a line assigns, or "" if the
// line is not a simple NAME=VALUE assignment.
func directiveName(line string) string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return ""
	}
	name, _, ok := strings.Cut(trimmed, "=")
	if !ok {
		return ""
	}
	return name
}

func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	return strings.Split(strings.TrimRight(content, "\n"), "\n")
}

func trailingNewline(content string) string {
	if content == "" {
		return ""
	}
	return "\n"
}

func appendLines(content string, lines []string) string {
	if len(lines) == 0 {
		return content
	}
	trimmed := strings.TrimRight(content, "\n")
	if trimmed == "" {
		return strings.Join(lines, "\n") + "\n"
	}
	return trimmed + "\n" + strings.Join(lines, "\n") + "\n"
}

func collapseBlankLines(content string) string {
	lines := strings.Split(content, "\n")
	out := make([]string, 0, len(lines))
	prevBlank := false
	for _, line := range lines {
		blank := strings.TrimSpace(line) == ""
		if blank && prevBlank {
			continue
		}
		out = append(out, line)
		prevBlank = blank
	}
	return strings.Join(out, "\n")
}
