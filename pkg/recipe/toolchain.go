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

	"github.com/madgoathaz/goatd/pkg/templates"
)

const toolchainSentinel = "GOATD Toolchain Enforcement"

var (
	ccAssignPattern  = regexp.MustCompile(`(?m)^(\s*(?:export\s+)?CC)=\S+`)
	cxxAssignPattern = regexp.MustCompile(`(?m)^(\s*(?:export\s+)?CXX)=\S+`)
	ldAssignPattern  = regexp.MustCompile(`(?m)^(\s*(?:export\s+)?LD)=\S+`)
	bareMakePattern  = regexp.MustCompile(`\bmake\b(\s+LLVM=1\s+LLVM_IAS=1)?`)

	toolchainTargetFuncs = `prepare|build|_package`
)

// applyToolchainExports rewrites CC/CXX/LD assignments to the clang
// toolchain, rewrites bare `make` invocations to force LLVM=1
// LLVM_IAS=1, and prepends the toolchain export block to the bodies of
// prepare, build, and _package.
func applyToolchainExports(content string) (string, error) {
	if hasSentinel(content, toolchainSentinel) {
		return content, nil
	}

	content = ccAssignPattern.ReplaceAllString(content, "${1}=clang")
	content = cxxAssignPattern.ReplaceAllString(content, "${1}=clang++")
	content = ldAssignPattern.ReplaceAllString(content, "${1}=ld.lld")

	content = rewriteMakeInvocations(content)

	block, err := templates.ToolchainExports()
	if err != nil {
		return "", err
	}

	points := functionBraceInsertPoints(content, toolchainTargetFuncs)
	content = insertAtAll(content, points, block)

	return content, nil
}

// rewriteMakeInvocations forces LLVM=1 LLVM_IAS=1 onto every bare `make`
// invocation outside of comment lines, leaving already-qualified
// invocations untouched.
func rewriteMakeInvocations(content string) string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		lines[i] = bareMakePattern.ReplaceAllStringFunc(line, func(m string) string {
			if strings.Contains(m, "LLVM=1") {
				return m
			}
			return "make LLVM=1 LLVM_IAS=1"
		})
	}
	return strings.Join(lines, "\n")
}
