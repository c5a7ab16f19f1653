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

package defaults

import "time"

// Executor timeouts governing the packager child process lifecycle.
const (
	// BuildTimeout is the default ceiling on a full packager invocation when
	// the caller does not supply an explicit test timeout.
	BuildTimeout = 6 * time.Hour

	// CancelGracePeriod is how long the executor waits between sending
	// SIGTERM and escalating to SIGKILL.
	CancelGracePeriod = 5 * time.Second

	// LogTailLines is the size of the sliding forensic window of the most
	// recent stdout/stderr lines kept per executor.
	LogTailLines = 10
)

// Version resolution timeouts.
const (
	// VersionResolveTimeout bounds a single fallback tier of "latest"
	// resolution (network query, cached lookup, or recipe parse).
	VersionResolveTimeout = 10 * time.Second
)

// Log dispatch subsystem tuning.
const (
	// UIBusRate is the steady-state rate (messages/sec) the log dispatch
	// worker forwards to the UI bus; bursts beyond the bucket are dropped.
	UIBusRate = 200

	// UIBusBurst is the token bucket capacity for the UI bus limiter.
	UIBusBurst = 400

	// FlushAckTimeout bounds how long a Flush or NewSession call waits for
	// the persister worker to acknowledge.
	FlushAckTimeout = 30 * time.Second
)

// Patcher timeouts.
const (
	// PatchIOTimeout bounds a single Kconfig/recipe read-modify-write pass.
	PatchIOTimeout = 15 * time.Second
)
