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

package env

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPrepareSetsToolchainIdentity(t *testing.T) {
	bin := newFakeBinDir(t, "clang", "make")
	base := []string{"PATH=" + bin}

	result, err := Prepare(base, t.TempDir(), false)
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}

	want := map[string]string{
		"CC": "clang", "CXX": "clang++", "LD": "ld.lld",
		"HOSTCC": "clang", "HOSTCXX": "clang++",
		"LLVM": "1", "LLVM_IAS": "1",
		"GCC": "clang", "GXX": "clang++",
	}
	for k, v := range want {
		if result[k] != v {
			t.Errorf("result[%q] = %q, want %q", k, result[k], v)
		}
	}
}

func TestPrepareRemovesTempVars(t *testing.T) {
	bin := newFakeBinDir(t, "clang")
	base := []string{"PATH=" + bin, "TMPDIR=/tmp/x", "TEMP=/tmp/y", "TMP=/tmp/z"}

	result, err := Prepare(base, t.TempDir(), false)
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	for _, k := range []string{"TMPDIR", "TEMP", "TMP"} {
		if _, ok := result[k]; ok {
			t.Errorf("expected %s to be removed", k)
		}
	}
}

func TestPrepareStripsLegacyLinkerFlags(t *testing.T) {
	bin := newFakeBinDir(t, "clang")
	base := []string{
		"PATH=" + bin,
		"CFLAGS=-O2 -Wl,--as-needed -pipe",
		"LDFLAGS=-Wl,--no-undefined -Wl,-z,now",
	}

	result, err := Prepare(base, t.TempDir(), false)
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if strings.Contains(result["CFLAGS"], "--as-needed") {
		t.Errorf("CFLAGS still contains legacy flag: %q", result["CFLAGS"])
	}
	if !strings.Contains(result["CFLAGS"], "-O2") {
		t.Errorf("CFLAGS lost an unrelated flag: %q", result["CFLAGS"])
	}
	if strings.Contains(result["LDFLAGS"], "--no-undefined") {
		t.Errorf("LDFLAGS still contains legacy flag: %q", result["LDFLAGS"])
	}
	if !strings.Contains(result["LDFLAGS"], "-z,now") {
		t.Errorf("LDFLAGS lost an unrelated flag: %q", result["LDFLAGS"])
	}
}

func TestPrepareSetsKCFLAGSOnlyWhenNativeOptimizations(t *testing.T) {
	bin := newFakeBinDir(t, "clang")

	withNative, err := Prepare([]string{"PATH=" + bin}, t.TempDir(), true)
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if withNative["KCFLAGS"] != "-march=native" {
		t.Errorf("KCFLAGS = %q, want -march=native", withNative["KCFLAGS"])
	}

	withoutNative, err := Prepare([]string{"PATH=" + bin}, t.TempDir(), false)
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if _, ok := withoutNative["KCFLAGS"]; ok {
		t.Errorf("KCFLAGS should be unset without native_optimizations, got %q", withoutNative["KCFLAGS"])
	}
}

func TestPrepareSetsEmptyLocalversion(t *testing.T) {
	bin := newFakeBinDir(t, "clang")
	result, err := Prepare([]string{"PATH=" + bin, "LOCALVERSION=-custom"}, t.TempDir(), false)
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if result["LOCALVERSION"] != "" {
		t.Errorf("LOCALVERSION = %q, want empty", result["LOCALVERSION"])
	}
}

func TestPrepareFailsWithoutClang(t *testing.T) {
	empty := t.TempDir()
	if _, err := Prepare([]string{"PATH=" + empty}, t.TempDir(), false); err == nil {
		t.Fatal("expected error when no clang is resolvable")
	}
}

func TestPurifyPathKeepsRequiredEntriesAndDropsToxic(t *testing.T) {
	sourceDir := "/src/build"
	original := strings.Join([]string{
		filepath.Join(sourceDir, ".llvm_bin"),
		"/usr/local/bin",
		"/usr/bin",
		"/bin",
		"/opt/gcc-12/bin",
		"/opt/clang-15/bin",
	}, string(os.PathListSeparator))

	purified := purifyPath(sourceDir, original)

	for _, want := range []string{filepath.Join(sourceDir, ".llvm_bin"), "/usr/local/bin", "/usr/bin", "/bin"} {
		if !strings.Contains(purified, want) {
			t.Errorf("purified PATH missing required entry %q: %q", want, purified)
		}
	}
	for _, unwanted := range []string{"/opt/gcc-12/bin", "/opt/clang-15/bin"} {
		if strings.Contains(purified, unwanted) {
			t.Errorf("purified PATH still contains toxic entry %q: %q", unwanted, purified)
		}
	}
}

func TestSliceRoundTripsMap(t *testing.T) {
	m := map[string]string{"FOO": "bar", "BAZ": "qux"}
	slice := Slice(m)
	if len(slice) != 2 {
		t.Fatalf("len(slice) = %d, want 2", len(slice))
	}
	roundTripped := toMap(slice)
	if roundTripped["FOO"] != "bar" || roundTripped["BAZ"] != "qux" {
		t.Errorf("round trip mismatch: %v", roundTripped)
	}
}

func newFakeBinDir(t *testing.T, tools ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, tool := range tools {
		path := filepath.Join(dir, tool)
		if err := os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755); err != nil {
			t.Fatalf("write fake tool %s: %v", tool, err)
		}
	}
	return dir
}
