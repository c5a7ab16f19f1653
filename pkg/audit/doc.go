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

// Package audit evaluates a finished .config against the BuildConfig that
// produced it and reports whether every gate actually fired. It is a
// constraint-evaluation engine in the same shape as pkg/validator's
// recipe-vs-snapshot checks, repurposed to four fixed invariants instead
// of an open-ended constraint path language: LTO enforcement, scheduler
// selection, MGLRU, and whitelist admissibility.
//
// A failed invariant produces a Finding, not a hard error: per the
// orchestrator's error propagation policy, GateViolation is reported and
// surfaced in the final audit report rather than failing the build,
// unless the caller opts into strict mode.
package audit
