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

// Package dispatch is the per-build log sink: a process-wide registry of
// collectors keyed by an opaque CollectorId, each backed by an
// unbounded-queue sender and a dedicated persister goroutine pinned to its
// own OS thread via runtime.LockOSThread. The persister appends Line
// messages to a session-scoped file (reopened whenever the session's
// generation counter advances) and forwards a rate-limited copy to a
// bounded UI bus, dropping overflow with a visible marker rather than
// blocking the sender.
//
// This package is deliberately independent of pkg/logging: pkg/logging is
// the facade every goroutine logs structured diagnostics through; this
// package is the sink the executor streams packager child-process output
// into, and which persists that output across test isolation and crash
// tails.
package dispatch
