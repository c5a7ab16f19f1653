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
	"context"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/madgoathaz/goatd/pkg/buildconfig"
	"github.com/madgoathaz/goatd/pkg/collector"
	"github.com/madgoathaz/goatd/pkg/collector/file"
)

// Detector produces an Info record describing the current host.
type Detector interface {
	Detect(ctx context.Context) (*Info, error)
}

// DefaultDetector is the production Detector. It delegates GPU and boot
// loader detection to pkg/collector, and reads /proc and /sys directly
// for CPU features, RAM size, and storage rotational status.
type DefaultDetector struct {
	Factory collector.Factory

	// WorkspaceRoot names the build workspace; defaults to "/" if empty.
	// Storage detection does not use it: StorageType is taken from the
	// first entry under /sys/block, whichever device backs the workspace.
	WorkspaceRoot string
}

// NewDefaultDetector returns a DefaultDetector wired to the default
// collector factory.
func NewDefaultDetector() *DefaultDetector {
	return &DefaultDetector{Factory: collector.NewDefaultFactory()}
}

// Detect gathers CPU, GPU, storage, and boot loader information. It
// degrades field-by-field rather than failing outright: a host missing
// one signal (no GPU, sandboxed /proc) still yields an Info with the
// other fields populated.
func (d *DefaultDetector) Detect(ctx context.Context) (*Info, error) {
	info := &Info{
		StorageType:    StorageUnknown,
		BootloaderType: BootloaderUnknown,
		GPUVendor:      buildconfig.GPUNone,
	}

	d.detectCPU(info)
	d.detectRAM(info)
	d.detectGPU(ctx, info)
	d.detectBootloader(ctx, info)
	d.detectStorage(info)

	return info, nil
}

func (d *DefaultDetector) detectCPU(info *Info) {
	parser := file.NewParser(file.WithDelimiter("\n"), file.WithKVDelimiter(":"))
	lines, err := parser.GetLines("/proc/cpuinfo")
	if err != nil {
		slog.Warn("cpu feature detection unavailable", "error", err)
		return
	}
	for _, line := range lines {
		if !strings.HasPrefix(strings.TrimSpace(line), "flags") {
			continue
		}
		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}
		info.CPUFeatures = strings.Fields(parts[1])
		break
	}
	info.MarchTarget = marchFromFeatures(info.CPUFeatures)
}

// marchFromFeatures derives a best-effort -march target from CPU
// feature flags using the x86-64 microarchitecture level convention
// (v1 < v2 < v3 < v4). This is advisory only: the env preparer always
// sets KCFLAGS to the literal "-march=native" string when native
// optimizations are requested, letting the compiler do its own
// detection; MarchTarget exists for audit/display purposes.
func marchFromFeatures(flags []string) string {
	set := make(map[string]bool, len(flags))
	for _, f := range flags {
		set[f] = true
	}
	has := func(fs ...string) bool {
		for _, f := range fs {
			if !set[f] {
				return false
			}
		}
		return true
	}
	switch {
	case has("avx512f", "avx512bw", "avx512cd", "avx512dq", "avx512vl"):
		return "x86-64-v4"
	case has("avx2", "bmi1", "bmi2", "fma", "movbe"):
		return "x86-64-v3"
	case has("sse4_2", "popcnt", "cx16"):
		return "x86-64-v2"
	case len(flags) > 0:
		return "x86-64"
	default:
		return ""
	}
}

func (d *DefaultDetector) detectRAM(info *Info) {
	parser := file.NewParser(file.WithKVDelimiter(":"), file.WithVTrimChars(" kB"))
	m, err := parser.GetMap("/proc/meminfo")
	if err != nil {
		slog.Warn("ram detection unavailable", "error", err)
		return
	}
	total, ok := m["MemTotal"]
	if !ok {
		return
	}
	kb, err := strconv.ParseUint(strings.TrimSpace(total), 10, 64)
	if err != nil {
		return
	}
	info.RAMBytes = kb * 1024
}

func (d *DefaultDetector) detectGPU(ctx context.Context, info *Info) {
	measure, err := d.Factory.CreateGPUCollector().Collect(ctx)
	if err != nil {
		slog.Warn("gpu detection failed", "error", err)
		return
	}
	sub := measure.GetSubtype("smi")
	if sub != nil {
		if n, err := sub.GetInt64("gpu-count"); err == nil && n > 0 {
			info.GPUVendor = buildconfig.GPUNvidia
			return
		}
	}
	info.GPUVendor = detectNonNvidiaGPU()
}

// detectNonNvidiaGPU shells out to lspci since neither AMD nor Intel
// expose a CLI as ubiquitous as nvidia-smi; absence of the binary or a
// matching line degrades to GPUNone.
func detectNonNvidiaGPU() buildconfig.GPUVendor {
	path, err := exec.LookPath("lspci")
	if err != nil {
		return buildconfig.GPUNone
	}
	out, err := exec.Command(path).Output()
	if err != nil {
		return buildconfig.GPUNone
	}
	lower := strings.ToLower(string(out))
	for _, line := range strings.Split(lower, "\n") {
		if !strings.Contains(line, "vga compatible controller") && !strings.Contains(line, "3d controller") {
			continue
		}
		switch {
		case strings.Contains(line, "amd") || strings.Contains(line, "ati"):
			return buildconfig.GPUAMD
		case strings.Contains(line, "intel"):
			return buildconfig.GPUIntel
		}
	}
	return buildconfig.GPUNone
}

func (d *DefaultDetector) detectBootloader(ctx context.Context, info *Info) {
	measure, err := d.Factory.CreateSystemDCollector().Collect(ctx)
	if err != nil {
		slog.Warn("bootloader detection failed", "error", err)
		return
	}
	for _, sub := range measure.Subtypes {
		active, err := sub.GetString("ActiveState")
		if err != nil || active != "active" {
			continue
		}
		switch {
		case strings.Contains(sub.Name, "grub"):
			info.BootloaderType = BootloaderGRUB
			return
		case strings.Contains(sub.Name, "systemd-boot"):
			info.BootloaderType = BootloaderSystemdBoot
			return
		}
	}
}

func (d *DefaultDetector) detectStorage(info *Info) {
	root := d.WorkspaceRoot
	if root == "" {
		root = "/"
	}

	entries, err := os.ReadDir("/sys/block")
	if err != nil {
		slog.Warn("storage detection unavailable", "error", err)
		return
	}
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, "nvme") {
			info.StorageType = StorageNVMe
			return
		}
		rotPath := filepath.Join("/sys/block", name, "queue", "rotational")
		data, err := os.ReadFile(rotPath)
		if err != nil {
			continue
		}
		if strings.TrimSpace(string(data)) == "0" {
			info.StorageType = StorageSSD
		} else {
			info.StorageType = StorageHDD
		}
		return
	}
}
