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

// Package mpl implements the Metadata Persistence Layer: a
// workspace-anchored, shell-sourceable record that carries the resolved
// kernel release string across the process boundary between the
// orchestrator and the packager's (possibly privilege-elevated)
// sub-environment. At most one record exists per workspace; every write
// replaces it atomically via a sibling tempfile plus rename.
package mpl
