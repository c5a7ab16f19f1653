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

// Package hardware produces the read-only HardwareInfo record the
// external finalizer (ApplyHardwareTruth) uses to constrain a BuildConfig
// before it reaches the core; no recipe patcher pass reads it, and no GPU
// module exclusion list is derived from it. It is built on top of
// pkg/collector: the GPU and systemd collectors gather raw measurements,
// /proc and /sys are read directly for CPU, RAM and storage, and this
// package reduces them to the small, build-relevant summary the spec's
// HardwareInfo data model names — cpu features and -march target, GPU
// vendor, RAM size, storage type, and boot loader family.
package hardware
