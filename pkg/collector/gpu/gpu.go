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

package gpu

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"log/slog"
	"os/exec"

	"github.com/madgoathaz/goatd/pkg/measurement"
)

const nvidiaSMICommand = "nvidia-smi"

// FbMemoryUsage is the frame-buffer memory usage block of a single GPU
// in nvidia-smi's XML query output.
type FbMemoryUsage struct {
	Total string `xml:"total"`
	Used  string `xml:"used"`
	Free  string `xml:"free"`
}

// MigMode is the MIG (Multi-Instance GPU) mode block of a single GPU.
type MigMode struct {
	CurrentMig string `xml:"current_mig"`
	PendingMig string `xml:"pending_mig"`
}

// NVSMIGPU is a single <gpu> element of nvidia-smi's XML query output.
type NVSMIGPU struct {
	ProductName         string        `xml:"product_name"`
	ProductArchitecture string        `xml:"product_architecture"`
	Serial              string        `xml:"serial"`
	UUID                string        `xml:"uuid"`
	VBiosVersion        string        `xml:"vbios_version"`
	DisplayMode         string        `xml:"display_mode"`
	PersistenceMode     string        `xml:"persistence_mode"`
	FbMemoryUsage       FbMemoryUsage `xml:"fb_memory_usage"`
	MigMode             MigMode       `xml:"mig_mode"`
}

// NVSMIDevice is the root <nvidia_smi_log> element of nvidia-smi's XML
// query output (`nvidia-smi -q -x`).
type NVSMIDevice struct {
	XMLName       xml.Name   `xml:"nvidia_smi_log"`
	Timestamp     string     `xml:"timestamp"`
	DriverVersion string     `xml:"driver_version"`
	CudaVersion   string     `xml:"cuda_version"`
	AttachedGPUs  string     `xml:"attached_gpus"`
	GPUs          []NVSMIGPU `xml:"gpu"`
}

// Collector gathers GPU hardware and driver information via nvidia-smi.
// It degrades gracefully (returning a zero-GPU measurement, not an error)
// when nvidia-smi is absent, since a kernel build host may have no GPU.
type Collector struct{}

// Collect implements the collector.Collector interface.
func (c *Collector) Collect(ctx context.Context) (*measurement.Measurement, error) {
	slog.Info("collecting GPU configuration")

	if _, err := exec.LookPath(nvidiaSMICommand); err != nil {
		slog.Warn("nvidia-smi not found - assuming no NVIDIA GPU is present",
			slog.String("error", err.Error()))
		return noGPUMeasurement(), nil
	}

	cmd := exec.CommandContext(ctx, nvidiaSMICommand, "-q", "-x")
	out, err := cmd.Output()
	if err != nil {
		if ctx.Err() != nil {
			return noGPUMeasurement(), nil
		}
		return nil, fmt.Errorf("nvidia-smi invocation failed: %w", err)
	}

	readings, err := getSMIReadings(out)
	if err != nil {
		return nil, err
	}

	return &measurement.Measurement{
		Type: measurement.TypeGPU,
		Subtypes: []measurement.Subtype{
			{Name: "smi", Data: readings},
		},
	}, nil
}

// parseSMIDevice unmarshals nvidia-smi's XML query output.
func parseSMIDevice(data []byte) (*NVSMIDevice, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("empty nvidia-smi output")
	}
	var device NVSMIDevice
	if err := xml.Unmarshal(data, &device); err != nil {
		return nil, fmt.Errorf("parse nvidia-smi XML: %w", err)
	}
	return &device, nil
}

// getSMIReadings flattens a parsed NVSMIDevice into the measurement
// Reading map used throughout pkg/hardware and pkg/measurement.
func getSMIReadings(data []byte) (map[string]measurement.Reading, error) {
	device, err := parseSMIDevice(data)
	if err != nil {
		return nil, err
	}

	readings := make(map[string]measurement.Reading)
	if device.DriverVersion != "" {
		readings[measurement.KeyGPUDriver] = measurement.Str(device.DriverVersion)
	}
	if device.CudaVersion != "" {
		readings["cuda-version"] = measurement.Str(device.CudaVersion)
	}
	readings[measurement.KeyGPUCount] = measurement.Int(len(device.GPUs))

	if len(device.GPUs) > 0 {
		g := device.GPUs[0]
		readings["gpu."+measurement.KeyGPUModel] = measurement.Str(g.ProductName)
		readings["gpu.product-architecture"] = measurement.Str(g.ProductArchitecture)
		readings["gpu.display-mode"] = measurement.Str(g.DisplayMode)
		readings["gpu.persistence-mode"] = measurement.Str(g.PersistenceMode)
		readings["gpu.vbios-version"] = measurement.Str(g.VBiosVersion)
	}

	return readings, nil
}

// noGPUMeasurement returns a valid zero-GPU measurement, used when
// nvidia-smi is not on PATH or its run ends because ctx was cancelled.
func noGPUMeasurement() *measurement.Measurement {
	return &measurement.Measurement{
		Type: measurement.TypeGPU,
		Subtypes: []measurement.Subtype{
			{
				Name: "smi",
				Data: map[string]measurement.Reading{
					measurement.KeyGPUCount: measurement.Int(0),
				},
			},
		},
	}
}
