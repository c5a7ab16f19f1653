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

import "github.com/madgoathaz/goatd/pkg/buildconfig"

// StorageType is the detected type of the first block device listed
// under /sys/block.
type StorageType string

const (
	StorageNVMe    StorageType = "nvme"
	StorageSSD     StorageType = "ssd"
	StorageHDD     StorageType = "hdd"
	StorageUnknown StorageType = "unknown"
)

// BootloaderType is the detected boot loader family in charge of the
// host, derived from which bootloader-adjacent systemd unit is active.
type BootloaderType string

const (
	BootloaderGRUB       BootloaderType = "grub"
	BootloaderSystemdBoot BootloaderType = "systemd-boot"
	BootloaderUnknown    BootloaderType = "unknown"
)

// Info is the read-only hardware record consumed by the external
// finalizer (to constrain a BuildConfig before the core receives it).
// The recipe patcher does not read it.
type Info struct {
	CPUFeatures    []string
	MarchTarget    string
	GPUVendor      buildconfig.GPUVendor
	RAMBytes       uint64
	StorageType    StorageType
	BootloaderType BootloaderType
}
