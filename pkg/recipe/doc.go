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

// Package recipe is the Recipe Patcher: the only component, besides
// pkg/kconfig, permitted to mutate the kernel build tree. It applies a
// fixed, ordered sequence of idempotent passes to the packager recipe —
// toolchain exports, modprobed-db integration, the boot-critical
// whitelist, MPL sourcing, module-directory creation with Priority-0
// version injection, and rebranding. The root Makefile enforcer
// (ApplyRootMakefileEnforcer) is a separate function over the kernel's
// root Makefile text; PatchRecipe does not apply it, and nothing else in
// this module calls it.
//
// Every pass refuses to inject twice: each checks for its own sentinel
// marker before mutating, so PatchRecipe is safe to call against a
// recipe that a previous build already patched. The recipe itself is
// treated as plain text with named anchors rather than a parsed AST —
// the anchors (the sentinel comments, and the opening braces of
// well-known shell functions) are the extension points subsequent
// passes rely on.
package recipe
