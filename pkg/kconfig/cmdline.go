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
	"regexp"
	"strings"

	"github.com/madgoathaz/goatd/pkg/buildconfig"
)

var cmdlinePattern = regexp.MustCompile(`CONFIG_CMDLINE="([^"]*)"`)

// InjectBakedInCmdline parses the existing CONFIG_CMDLINE, ensures the
// baseline tokens "nowatchdog" and "preempt=full" are present, adds
// "lru_gen.enabled=7" when MGLRU is enabled and "mitigations=off" under
// Minimal hardening, then removes and re-appends CONFIG_CMDLINE,
// CONFIG_CMDLINE_BOOL=y, and CONFIG_CMDLINE_OVERRIDE=n.
func InjectBakedInCmdline(sourceDir string, useMGLRU bool, hardening buildconfig.Hardening) error {
	path := filepath.Join(sourceDir, ConfigFileName)

	content, err := readConfig(path)
	if err != nil {
		return err
	}

	tokens := extractCmdlineTokens(content)
	tokens = ensureToken(tokens, "nowatchdog")
	tokens = ensureToken(tokens, "preempt=full")
	if useMGLRU {
		tokens = ensureToken(tokens, "lru_gen.enabled=7")
	}
	if hardening == buildconfig.HardeningMinimal {
		tokens = ensureToken(tokens, "mitigations=off")
	}

	content = deleteDirective(content, "CONFIG_CMDLINE")
	content = deleteDirective(content, "CONFIG_CMDLINE_BOOL")
	content = deleteDirective(content, "CONFIG_CMDLINE_OVERRIDE")

	content = appendLines(content, []string{
		`CONFIG_CMDLINE="` + strings.Join(tokens, " ") + `"`,
		"CONFIG_CMDLINE_BOOL=y",
		"CONFIG_CMDLINE_OVERRIDE=n",
	})

	return writeAtomic(path, content)
}

func extractCmdlineTokens(content string) []string {
	match := cmdlinePattern.FindStringSubmatch(content)
	if match == nil {
		return nil
	}
	return strings.Fields(match[1])
}

func ensureToken(tokens []string, token string) []string {
	for _, t := range tokens {
		if t == token {
			return tokens
		}
	}
	return append(tokens, token)
}
