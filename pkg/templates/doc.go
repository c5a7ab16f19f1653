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

// Package templates is the Templates Warehouse: the static shell/config
// fragments the recipe patcher and gate enforcers inject into the
// packager recipe. Fragments are embedded at build time with go:embed
// and parsed once into *template.Template values, mirroring the
// embed-and-cache idiom used elsewhere in this module for static data.
// Every fragment carries its own "# END ... BLOCK" sentinel so the
// idempotence check lives in exactly one place — the template text
// itself — instead of being duplicated between the generator and the
// detector that looks for it.
package templates
