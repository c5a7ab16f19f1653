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

package orchestrator

import "github.com/madgoathaz/goatd/pkg/buildconfig"

// configOptions computes the finalized .config directive map the
// Patching phase hands to the Kconfig patcher: every toggle in bc
// that is expressed as a plain "NAME=value" directive rather than
// handled by the dedicated LTO (ApplyLTO) or cmdline
// (InjectBakedInCmdline) passes.
func configOptions(bc *buildconfig.BuildConfig) map[string]string {
	options := map[string]string{
		"CONFIG_CC_IS_CLANG": "y",
	}

	if bc.Scheduler == buildconfig.SchedulerBORE {
		options["CONFIG_SCHED_BORE"] = "y"
	}

	if bc.UseMGLRU {
		options["CONFIG_LRU_GEN_ENABLED"] = "y"
		options["CONFIG_LRU_GEN_STATS"] = "y"
	}

	if bc.Hardening == buildconfig.HardeningHardened {
		options["CONFIG_SECURITY_LOCKDOWN_LSM"] = "y"
		options["CONFIG_MODULE_SIG"] = "y"
		options["CONFIG_MODULE_SIG_FORCE"] = "y"
	}

	if bc.Polly {
		options["CONFIG_LLVM_POLLY"] = "y"
	}

	return options
}
