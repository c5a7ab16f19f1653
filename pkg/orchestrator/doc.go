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

// Package orchestrator drives one kernel build from end to end: resolve
// the requested version, prepare the toolchain environment, patch the
// kernel config and packager recipe, run the packager as a child
// process, and audit what it produced.
//
// The build is a strictly ordered phase state machine (Preparation,
// Configuration, Patching, Building, Validation, Completed, or a
// terminal Failed{reason}). A checkpoint is persisted after every
// successful phase transition, and Resume restarts a build from its
// last checkpoint rather than from Preparation.
//
// Every transition is reported on a BuildEvent channel so a caller (the
// CLI, a test) can render progress without polling orchestrator state
// directly.
package orchestrator
