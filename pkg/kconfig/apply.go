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

package kconfig

import (
	"path/filepath"

	"github.com/madgoathaz/goatd/pkg/buildconfig"
)

// ConfigFileName is the kernel's own configuration file name.
const ConfigFileName = ".config"

// ApplyKconfig implements the Kconfig patcher's primary operation: read
// the existing .config (or start empty), back it up, strip legacy
// toolchain markers, apply every user option to the tail, and finish
// with gate P5 so the LTO directives are correct before any packager
// script runs. The result is written back atomically.
func ApplyKconfig(sourceDir, backupDir string, options map[string]string, ltoLevel buildconfig.LTOLevel) error {
	path := filepath.Join(sourceDir, ConfigFileName)

	content, err := readConfig(path)
	if err != nil {
		return err
	}

	if err := backupOriginal(content, backupDir); err != nil {
		return err
	}

	content = RemoveLegacyToolchainMarkers(content)
	content = ApplyOptions(content, options)
	content = ApplyLTO(content, ltoLevel)

	return writeAtomic(path, content)
}
