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

// Package executor spawns the distribution packager as a child process
// with the environment pkg/env prepared, streams its stdout/stderr into a
// log sink, and enforces cancellation and test timeouts. It guarantees no
// zombie child on any exit path and bounds cancellation by a SIGTERM,
// grace period, SIGKILL escalation rather than aborting any in-process
// task, because the supervised process is an external, uncooperative
// packager.
package executor
