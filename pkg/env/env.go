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
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	goatderrors "github.com/madgoathaz/goatd/pkg/errors"
)

const llvmVersion = "19"

// toolTargets maps the binutils tool name probed for to the environment
// variable the packager expects it under.
var toolTargets = map[string]string{
	"ar":      "AR",
	"nm":      "NM",
	"strip":   "STRIP",
	"objcopy": "OBJCOPY",
	"objdump": "OBJDUMP",
	"readelf": "READELF",
}

// toxicPathPattern matches PATH entries that could resolve to a legacy
// gcc/binutils toolchain instead of the LLVM one.
var toxicPathPattern = regexp.MustCompile(`/gcc|/g\+\+|/cc|/c\+\+|/llvm|/clang`)

// legacyLinkerFlags are meaningful only under GNU ld and must not reach
// ld.lld unmodified.
var legacyLinkerFlags = []string{"-Wl,--as-needed", "-Wl,--no-undefined"}

// Prepare builds the sanitized environment map the packager child
// process will inherit. It is deterministic given (sourceDir,
// nativeOptimizations) and the LLVM binaries actually resolvable on the
// host; it performs no mutation of the calling process's own
// environment.
func Prepare(base []string, sourceDir string, nativeOptimizations bool) (map[string]string, error) {
	result := toMap(base)

	result["CC"] = "clang"
	result["CXX"] = "clang++"
	result["LD"] = "ld.lld"
	result["HOSTCC"] = "clang"
	result["HOSTCXX"] = "clang++"
	result["LLVM"] = "1"
	result["LLVM_IAS"] = "1"
	result["GCC"] = "clang"
	result["GXX"] = "clang++"

	for tool, envVar := range toolTargets {
		result[envVar] = probeTool(tool)
	}

	result["PATH"] = purifyPath(sourceDir, result["PATH"])

	delete(result, "TMPDIR")
	delete(result, "TEMP")
	delete(result, "TMP")

	for _, key := range []string{"CFLAGS", "CXXFLAGS", "LDFLAGS"} {
		if v, ok := result[key]; ok {
			result[key] = stripLegacyLinkerFlags(v)
		}
	}

	if nativeOptimizations {
		result["KCFLAGS"] = `-march=native`
	}

	result["LOCALVERSION"] = ""

	if _, err := lookupInPath("clang", result["PATH"]); err != nil {
		return nil, goatderrors.Wrap(goatderrors.ErrCodeEnvInvalid, "no usable clang on purified PATH", err)
	}

	if _, err := lookupInPath("make", result["PATH"]); err != nil {
		slog.Warn("make not found on purified PATH", "path", result["PATH"])
	}

	return result, nil
}

func toMap(entries []string) map[string]string {
	m := make(map[string]string, len(entries))
	for _, e := range entries {
		key, value, ok := strings.Cut(e, "=")
		if !ok {
			continue
		}
		m[key] = value
	}
	return m
}

// probeTool resolves a binutils tool name to a concrete binary, trying
// versioned LLVM names first, then an unversioned LLVM name, then the
// distro path, and finally falling back to the bare tool name so the
// shell's own PATH lookup decides at invocation time.
func probeTool(tool string) string {
	if path, err := exec.LookPath(fmt.Sprintf("llvm-%s-%s", llvmVersion, tool)); err == nil {
		return path
	}
	if path, err := exec.LookPath(fmt.Sprintf("llvm-%s", tool)); err == nil {
		return path
	}
	if distro := filepath.Join("/usr/bin", tool); fileExists(distro) {
		return distro
	}
	return tool
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// purifyPath drops legacy-toolchain entries from PATH while guaranteeing
// that source_dir/.llvm_bin, /usr/local/bin, /usr/bin, and /bin survive
// even if their own name happens to match the toxic pattern.
func purifyPath(sourceDir, pathValue string) string {
	mustKeep := map[string]bool{
		filepath.Join(sourceDir, ".llvm_bin"): true,
		"/usr/local/bin":                      true,
		"/usr/bin":                            true,
		"/bin":                                true,
	}

	var out []string
	seen := map[string]bool{}
	for _, entry := range filepath.SplitList(pathValue) {
		if entry == "" || seen[entry] {
			continue
		}
		if mustKeep[entry] || !toxicPathPattern.MatchString(entry) {
			out = append(out, entry)
			seen[entry] = true
		}
	}
	for _, required := range []string{filepath.Join(sourceDir, ".llvm_bin"), "/usr/local/bin", "/usr/bin", "/bin"} {
		if !seen[required] {
			out = append(out, required)
			seen[required] = true
		}
	}
	return strings.Join(out, string(os.PathListSeparator))
}

func stripLegacyLinkerFlags(flags string) string {
	fields := strings.Fields(flags)
	kept := fields[:0]
	for _, f := range fields {
		drop := false
		for _, legacy := range legacyLinkerFlags {
			if f == legacy {
				drop = true
				break
			}
		}
		if !drop {
			kept = append(kept, f)
		}
	}
	return strings.Join(kept, " ")
}

// lookupInPath resolves name against an explicit PATH string rather than
// the calling process's environment, since Prepare must not mutate it.
func lookupInPath(name, pathValue string) (string, error) {
	for _, dir := range filepath.SplitList(pathValue) {
		candidate := filepath.Join(dir, name)
		if fileExists(candidate) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%s not found in purified PATH", name)
}

// Slice renders a prepared environment map back into the KEY=VALUE form
// exec.Cmd.Env expects.
func Slice(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k, v := range m {
		out = append(out, k+"="+v)
	}
	return out
}
