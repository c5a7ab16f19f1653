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

// Package systemd collects systemd service configuration data.
//
// This collector gathers the unit properties of a configured list of
// systemd services over D-Bus.
//
// # Collected Data
//
// For each configured service, the collector captures every unit property
// systemd reports (state, startup configuration, resource limits,
// execution and dependency settings, and so on), except AllowedCPUs,
// AllowedMemoryNodes, Asserts, BPFProgram, BusName, Id and any property
// whose name contains "Credential".
//
// # Usage
//
// Set the services to monitor on the Collector:
//
//	c := &systemd.Collector{Services: []string{
//	    "containerd.service",
//	    "docker.service",
//	}}
//
//	m, err := c.Collect(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, subtype := range m.Subtypes {
//	    fmt.Printf("Service: %s\n", subtype.Name)
//	    if state, ok := subtype.Data["ActiveState"]; ok {
//	        fmt.Printf("  State: %s\n", state)
//	    }
//	}
//
// # Service Configuration
//
// When Services is empty, the collector queries containerd.service only.
// collector.DefaultFactory supplies grub-common.service and
// systemd-boot-update.service unless WithSystemDServices overrides them.
//
// # Data Format
//
// Each service becomes a subtype with configuration key-value pairs:
//
//	{
//	    Type: "systemd",
//	    Subtypes: [
//	        {
//	            Name: "containerd.service",
//	            Data: {
//	                "ActiveState": "active",
//	                "UnitFileState": "enabled",
//	                "CPUAccounting": "yes",
//	                "MemoryAccounting": "yes",
//	                "MemoryLimit": "infinity",
//	                ...
//	            }
//	        }
//	    ]
//	}
//
// # Context Support
//
// The collector respects context cancellation:
//
//	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
//	defer cancel()
//
//	m, err := c.Collect(ctx)
//
// # Error Handling
//
//   - D-Bus connection unavailable: Returns a valid measurement with no
//     subtypes, no error
//   - Reading the properties of any service fails: Returns an error and
//     no measurement
//
// # systemd Integration
//
// The collector opens a systemd D-Bus connection and calls
// GetAllPropertiesContext for each service; it does not run systemctl.
//
// # Use in Recipes
//
// Recipe generation uses systemd data for:
//   - Service dependency verification
//   - Resource limit recommendations
//   - Security policy validation
//   - Startup configuration tuning
//   - Service state troubleshooting
package systemd
