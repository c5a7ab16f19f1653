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

// Package kconfig is the Kconfig Patcher: it reads, edits, and
// atomically rewrites the kernel's .config file, generates the
// .config.override consumed via KCONFIG_ALLCONFIG, and injects the
// baked-in boot command line. It also implements gate P5, the
// in-process LTO hard enforcer that runs before any packager script
// does — the baseline every shell-injected gate (G1/G2/G2.5/E1) later
// re-asserts.
package kconfig
