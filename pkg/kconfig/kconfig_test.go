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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/madgoathaz/goatd/pkg/buildconfig"
)

func TestApplyLTOStripsAndReassertsThin(t *testing.T) {
	original := "CONFIG_FOO=y\nCONFIG_LTO_NONE=y\n# CONFIG_HAS_LTO_CLANG is not set\nCONFIG_BAR=y\n"
	got := ApplyLTO(original, buildconfig.LTOThin)

	if strings.Contains(got, "CONFIG_LTO_NONE=y") {
		t.Errorf("expected stale LTO_NONE removed:\n%s", got)
	}
	for _, want := range []string{"CONFIG_LTO_CLANG_THIN=y", "CONFIG_LTO_CLANG=y", "CONFIG_HAS_LTO_CLANG=y"} {
		if strings.Count(got, want) != 1 {
			t.Errorf("expected exactly one %q, got %d in:\n%s", want, strings.Count(got, want), got)
		}
	}
	if !strings.Contains(got, "CONFIG_FOO=y") || !strings.Contains(got, "CONFIG_BAR=y") {
		t.Errorf("unrelated directives lost:\n%s", got)
	}
}

func TestApplyLTOFullVariant(t *testing.T) {
	got := ApplyLTO("", buildconfig.LTOFull)
	for _, want := range []string{"CONFIG_LTO_CLANG_FULL=y", "CONFIG_LTO_CLANG=y", "CONFIG_HAS_LTO_CLANG=y"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}
}

func TestApplyLTONoneAppendsMarkerOnly(t *testing.T) {
	got := ApplyLTO("CONFIG_LTO_CLANG=y\n", buildconfig.LTONone)
	if strings.Contains(got, "CONFIG_LTO_CLANG=y") {
		t.Errorf("expected prior LTO directive stripped:\n%s", got)
	}
	if !strings.Contains(got, "# goatd: LTO disabled") {
		t.Errorf("expected marker comment:\n%s", got)
	}
}

func TestApplyOptionsLastKeyWinsAndAppendsTail(t *testing.T) {
	content := "CONFIG_SCHED_BORE=n\n"
	got := ApplyOptions(content, map[string]string{"CONFIG_SCHED_BORE": "y"})
	if strings.Count(got, "CONFIG_SCHED_BORE=") != 1 {
		t.Fatalf("expected exactly one CONFIG_SCHED_BORE line, got:\n%s", got)
	}
	if !strings.Contains(got, "CONFIG_SCHED_BORE=y") {
		t.Errorf("expected new value to win:\n%s", got)
	}
}

func TestApplyOptionsMGLRUPassthrough(t *testing.T) {
	got := ApplyOptions("", map[string]string{
		"_MGLRU_CONFIG_ENABLED": "CONFIG_LRU_GEN_ENABLED=y",
	})
	if !strings.Contains(got, "CONFIG_LRU_GEN_ENABLED=y") {
		t.Errorf("expected MGLRU passthrough line:\n%s", got)
	}
}

func TestApplyOptionsSkipsOtherUnderscoreKeys(t *testing.T) {
	got := ApplyOptions("", map[string]string{"_internal_reserved": "whatever"})
	if strings.Contains(got, "whatever") {
		t.Errorf("expected reserved underscore key to be ignored:\n%s", got)
	}
}

func TestRemoveLegacyToolchainMarkers(t *testing.T) {
	content := "CONFIG_CC_IS_GCC=y\nCONFIG_GCC_VERSION=130200\nCONFIG_FOO=y\n"
	got := RemoveLegacyToolchainMarkers(content)
	if strings.Contains(got, "CONFIG_CC_IS_GCC") || strings.Contains(got, "CONFIG_GCC_VERSION") {
		t.Errorf("expected legacy markers removed:\n%s", got)
	}
	if !strings.Contains(got, "CONFIG_FOO=y") {
		t.Errorf("unrelated directive lost:\n%s", got)
	}
}

func TestApplyKconfigBacksUpAndWritesAtomically(t *testing.T) {
	sourceDir := t.TempDir()
	backupDir := t.TempDir()
	configPath := filepath.Join(sourceDir, ConfigFileName)
	if err := os.WriteFile(configPath, []byte("CONFIG_LTO_NONE=y\n"), 0o644); err != nil {
		t.Fatalf("seed .config: %v", err)
	}

	if err := ApplyKconfig(sourceDir, backupDir, map[string]string{"CONFIG_SCHED_BORE": "y"}, buildconfig.LTOThin); err != nil {
		t.Fatalf("ApplyKconfig: %v", err)
	}

	got, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("read .config: %v", err)
	}
	if !strings.Contains(string(got), "CONFIG_LTO_CLANG_THIN=y") {
		t.Errorf("expected LTO applied:\n%s", got)
	}
	if !strings.Contains(string(got), "CONFIG_SCHED_BORE=y") {
		t.Errorf("expected option applied:\n%s", got)
	}

	backup, err := os.ReadFile(filepath.Join(backupDir, ".config.bak"))
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if string(backup) != "CONFIG_LTO_NONE=y\n" {
		t.Errorf("backup = %q, want original content", backup)
	}
}

func TestApplyKconfigToleratesMissingConfig(t *testing.T) {
	sourceDir := t.TempDir()
	backupDir := t.TempDir()

	if err := ApplyKconfig(sourceDir, backupDir, nil, buildconfig.LTONone); err != nil {
		t.Fatalf("ApplyKconfig with no existing .config: %v", err)
	}
	if _, err := os.Stat(filepath.Join(sourceDir, ConfigFileName)); err != nil {
		t.Fatalf("expected .config to be created: %v", err)
	}
}

func TestGenerateConfigOverrideOrderAndMirror(t *testing.T) {
	sourceDir := filepath.Join(t.TempDir(), "src")
	if err := os.MkdirAll(sourceDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	err := GenerateConfigOverride(sourceDir, map[string]string{
		"CONFIG_SCHED_BORE":     "y",
		"_MGLRU_CONFIG_ENABLED": "CONFIG_LRU_GEN_ENABLED=y",
	}, buildconfig.LTOThin)
	if err != nil {
		t.Fatalf("GenerateConfigOverride: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(sourceDir, OverrideFileName))
	if err != nil {
		t.Fatalf("read override: %v", err)
	}
	text := string(content)

	ltoIdx := strings.Index(text, "CONFIG_LTO_CLANG_THIN=y")
	clangIdx := strings.Index(text, "CONFIG_CC_IS_CLANG=y")
	optIdx := strings.Index(text, "CONFIG_SCHED_BORE=y")
	mglruIdx := strings.Index(text, "CONFIG_LRU_GEN_ENABLED=y")
	if !(ltoIdx < clangIdx && clangIdx < optIdx && optIdx < mglruIdx) {
		t.Errorf("expected header/LTO/toolchain/options/MGLRU order, got:\n%s", text)
	}

	mirror, err := os.ReadFile(filepath.Join(sourceDir, "..", "config"))
	if err != nil {
		t.Fatalf("read mirrored config: %v", err)
	}
	if string(mirror) != text {
		t.Errorf("mirrored ../config does not match override content")
	}
}

func TestInjectBakedInCmdlineAddsTokens(t *testing.T) {
	sourceDir := t.TempDir()
	configPath := filepath.Join(sourceDir, ConfigFileName)
	seed := `CONFIG_CMDLINE="quiet splash"` + "\n" + `CONFIG_CMDLINE_BOOL=n` + "\n"
	if err := os.WriteFile(configPath, []byte(seed), 0o644); err != nil {
		t.Fatalf("seed .config: %v", err)
	}

	if err := InjectBakedInCmdline(sourceDir, true, buildconfig.HardeningMinimal); err != nil {
		t.Fatalf("InjectBakedInCmdline: %v", err)
	}

	got, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("read .config: %v", err)
	}
	text := string(got)
	for _, want := range []string{"quiet", "splash", "nowatchdog", "preempt=full", "lru_gen.enabled=7", "mitigations=off"} {
		if !strings.Contains(text, want) {
			t.Errorf("expected token %q in cmdline:\n%s", want, text)
		}
	}
	if strings.Count(text, "CONFIG_CMDLINE_BOOL=") != 1 {
		t.Errorf("expected exactly one CONFIG_CMDLINE_BOOL line:\n%s", text)
	}
	if !strings.Contains(text, "CONFIG_CMDLINE_OVERRIDE=n") {
		t.Errorf("expected CONFIG_CMDLINE_OVERRIDE=n:\n%s", text)
	}
}

func TestInjectBakedInCmdlineIdempotent(t *testing.T) {
	sourceDir := t.TempDir()
	configPath := filepath.Join(sourceDir, ConfigFileName)
	if err := os.WriteFile(configPath, []byte(""), 0o644); err != nil {
		t.Fatalf("seed .config: %v", err)
	}

	if err := InjectBakedInCmdline(sourceDir, false, buildconfig.HardeningStandard); err != nil {
		t.Fatalf("first InjectBakedInCmdline: %v", err)
	}
	if err := InjectBakedInCmdline(sourceDir, false, buildconfig.HardeningStandard); err != nil {
		t.Fatalf("second InjectBakedInCmdline: %v", err)
	}

	got, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("read .config: %v", err)
	}
	if strings.Count(string(got), "nowatchdog") != 1 {
		t.Errorf("expected token not duplicated across idempotent calls:\n%s", got)
	}
}
