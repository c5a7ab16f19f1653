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

package os

import (
	"context"
	"log/slog"

	"github.com/madgoathaz/goatd/pkg/measurement"
)

// Collector collects operating system configuration including:
// - GRUB bootloader parameters from /proc/cmdline
// - Loaded kernel modules from /proc/modules
// - Sysctl parameters from /proc/sys
// - OS release information from /etc/os-release
type Collector struct {
}

// Collect gathers all OS-level configurations and returns them as a single measurement
// with four subtypes: grub, sysctl, kmod, and release.
func (c *Collector) Collect(ctx context.Context) (*measurement.Measurement, error) {
	slog.Info("collecting OS configuration")

	// Check if context is canceled
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	grub, err := c.collectGRUB(ctx)
	if err != nil {
		return nil, err
	}

	sysctl, err := c.collectSysctl(ctx)
	if err != nil {
		return nil, err
	}

	kmod, err := c.collectKMod(ctx)
	if err != nil {
		return nil, err
	}

	release, err := c.collectRelease(ctx)
	if err != nil {
		return nil, err
	}

	res := &measurement.Measurement{
		Type: measurement.TypeOS,
		Subtypes: []measurement.Subtype{
			*grub,
			*sysctl,
			*kmod,
			*release,
		},
	}

	return res, nil
}
