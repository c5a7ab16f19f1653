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

package hardware

import (
	"log/slog"

	"github.com/madgoathaz/goatd/pkg/buildconfig"
)

// ApplyHardwareTruth constrains cfg in place using info, implementing the
// "Hardware truth > User override > Profile preset" precedence rule for
// the fields buildconfig.FromPreset cannot decide on its own because they
// depend on what the host actually is rather than what the user asked
// for.
//
// It is the caller's responsibility to invoke this after FromPreset and
// before the orchestrator runs; FromPreset itself has no hardware
// visibility and cannot apply these overrides.
func ApplyHardwareTruth(cfg *buildconfig.BuildConfig, info *Info) {
	if cfg.NativeOptimizations && info.MarchTarget == "" {
		slog.Warn("disabling native optimizations: no microarchitecture detected for this host")
		cfg.NativeOptimizations = false
	}
}
