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

// Package gpu collects GPU hardware and driver configuration data.
//
// This collector gathers NVIDIA GPU information by running nvidia-smi in
// XML query mode and flattening the result into a single measurement.
//
// # Collected Data
//
// The collector returns a measurement of type GPU with one subtype named
// "smi". Its readings are:
//
//   - measurement.KeyGPUDriver: NVIDIA driver version
//   - "cuda-version": maximum supported CUDA version
//   - measurement.KeyGPUCount: number of <gpu> elements reported
//
// and, when at least one GPU is reported, these readings for the first GPU
// only:
//
//   - "gpu." + measurement.KeyGPUModel: product name
//   - "gpu.product-architecture": product architecture
//   - "gpu.display-mode": display mode
//   - "gpu.persistence-mode": persistence mode
//   - "gpu.vbios-version": VBIOS version
//
// Driver and CUDA version are omitted when nvidia-smi leaves them empty.
// Further GPUs are counted but their details are not read.
//
// # Usage
//
//	c := &gpu.Collector{}
//	m, err := c.Collect(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	count := m.Subtypes[0].Data[measurement.KeyGPUCount]
//
// # Query Format
//
// The collector runs:
//
//	nvidia-smi -q -x
//
// and unmarshals the <nvidia_smi_log> document.
//
// # Context Support
//
// nvidia-smi runs under exec.CommandContext, so its execution is bounded
// by the context deadline.
//
// # Error Handling
//
//   - nvidia-smi not on PATH: returns a zero-GPU measurement, no error
//   - nvidia-smi fails because ctx was cancelled or timed out: returns a
//     zero-GPU measurement, no error
//   - nvidia-smi fails for another reason: returns an error
//   - empty or malformed XML output: returns an error
package gpu
