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

// Package buildconfig holds the resolved input to a kernel build: the
// user's chosen profile, their explicit toggles, and the profile presets
// those toggles default from. Profile presets are data (profiles.yaml,
// embedded at build time), not Go literals, so defaults can be tuned
// without recompiling the binary.
package buildconfig
