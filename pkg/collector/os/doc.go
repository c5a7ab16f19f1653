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

// Package os collects operating system configuration data.
//
// This collector gathers OS-level configuration: the kernel boot
// parameters, sysctl values, loaded kernel modules, and OS release
// information.
//
// # Collected Data
//
// The collector returns one measurement of type OS with 4 subtypes, in
// this order:
//
// 1. grub - Kernel boot parameters from /proc/cmdline:
//   - One reading per parameter; the root parameter is filtered out
//
// 2. sysctl - Kernel runtime parameters:
//   - Every readable file under /proc/sys, keyed by its path
//   - /proc/sys/net and /proc/sys/dev/cdrom/* are excluded
//   - A multi-line file whose lines are all "key value" pairs becomes one
//     reading per line, keyed by the file path plus "/" plus the key
//
// 3. kmod - Loaded kernel modules:
//   - Module names from /proc/modules, each with the value true; module
//     parameters and dependencies are not read
//
// 4. release - OS identification:
//   - Every KEY=value line (ID, VERSION_ID, PRETTY_NAME, ...) with
//     surrounding quotes removed
//
// # Usage
//
//	c := &os.Collector{}
//	m, err := c.Collect(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, subtype := range m.Subtypes {
//	    fmt.Printf("%s: %d settings\n", subtype.Name, len(subtype.Data))
//	}
//
// # Data Sources
//
// The collector reads from:
//   - /proc/cmdline: Kernel boot parameters
//   - /proc/sys: Runtime kernel parameters (recursively)
//   - /proc/modules: Loaded kernel modules
//   - /etc/os-release, or /usr/lib/os-release when the former does not
//     exist: Operating system identification
//
// # Context Support
//
// Collect checks the context before collecting, the grub, kmod and
// release subtypes check it again, and the /proc/sys walk checks it for
// every entry:
//
//	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
//	defer cancel()
//
//	m, err := c.Collect(ctx)
//
// # Error Handling
//
// If any subtype fails, Collect returns its error and no measurement;
// there are no partial results. Inside the /proc/sys walk, a file that
// cannot be read is skipped.
//
// Example scenarios:
//   - Missing /proc/cmdline or /proc/modules: Returns error
//   - Unreadable file under /proc/sys: Skipped, the walk continues
//   - Neither os-release file present: Returns error
//
// # Performance
//
// The collector performs file I/O operations synchronously. Typical execution
// time is < 100ms on modern systems. For optimal performance, use appropriate
// context timeouts.
//
// # Use in Recipes
//
// Recipe generation uses OS collector data for:
//   - Kernel parameter validation and tuning
//   - Module dependency verification
//   - OS version-specific optimizations
//   - Boot parameter recommendations
package os
