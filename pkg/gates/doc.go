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

// Package gates decides where, inside an already recipe-patched
// packager script, each shell-injected gate (G1, G2, G2.5, E1) belongs,
// and renders its fragment from pkg/templates at that point. Gate P5 is
// not handled here: it runs in-process, before any packager script
// starts, as part of pkg/kconfig.ApplyLTO.
//
// Every gate targets a specific regeneration point in the packager's
// own script: G1 locks LTO immediately before the compile step; G2
// undoes localmodconfig's dependency re-expansion; G2.5 re-asserts
// every toggle after the packager's own "cp ../config .config" idiom
// (the one named extension point this spec leaves open — see
// isConfigOverwriteIdiom); E1 re-applies LTO after any oldconfig or
// syncconfig pass.
package gates
