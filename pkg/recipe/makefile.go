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

const (
	makefileSentinel = "GOATD LLVM MAKEFILE ENFORCER"
	makefileBlock    = "# " + makefileSentinel + "\nLLVM := 1\nLLVM_IAS := 1\nexport LLVM LLVM_IAS\n"
)

// ApplyRootMakefileEnforcer prepends the LLVM/LLVM_IAS export block to
// the kernel source tree's root Makefile, unless it is already present.
// Unlike the recipe passes, this operates on a distinct file —
// <source_dir>/Makefile — so it is not part of PatchRecipe. Nothing in
// this module calls it; the orchestrator's Patching phase leaves the root
// Makefile unchanged.
func ApplyRootMakefileEnforcer(content string) string {
	if hasSentinel(content, makefileSentinel) {
		return content
	}
	return makefileBlock + content
}
