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
	"os"
	"path/filepath"

	goatderrors "github.com/madgoathaz/goatd/pkg/errors"
)

// readConfig reads path, returning empty content if the file does not
// exist yet — the patcher's Kconfig operations all tolerate a missing
// starting .config.
func readConfig(path string) (string, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", goatderrors.Wrap(goatderrors.ErrCodePatchFailed, "read "+path, err)
	}
	return string(data), nil
}

// writeAtomic replaces path's content via a sibling tempfile plus
// rename so a crash mid-write never leaves a truncated .config.
func writeAtomic(path, content string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return goatderrors.Wrap(goatderrors.ErrCodePatchFailed, "create tempfile for "+path, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return goatderrors.Wrap(goatderrors.ErrCodePatchFailed, "write tempfile for "+path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return goatderrors.Wrap(goatderrors.ErrCodePatchFailed, "sync tempfile for "+path, err)
	}
	if err := tmp.Close(); err != nil {
		return goatderrors.Wrap(goatderrors.ErrCodePatchFailed, "close tempfile for "+path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return goatderrors.Wrap(goatderrors.ErrCodePatchFailed, "rename tempfile into "+path, err)
	}
	return nil
}

// backupOriginal copies the source_dir's current .config into
// backupDir/.config.bak before any patch pass mutates it, so a
// PatchFailed error can trigger a rollback.
func backupOriginal(content, backupDir string) error {
	if err := os.MkdirAll(backupDir, 0o755); err != nil {
		return goatderrors.Wrap(goatderrors.ErrCodePatchFailed, "create backup dir "+backupDir, err)
	}
	backupPath := filepath.Join(backupDir, ".config.bak")
	if err := os.WriteFile(backupPath, []byte(content), 0o644); err != nil {
		return goatderrors.Wrap(goatderrors.ErrCodePatchFailed, "write backup "+backupPath, err)
	}
	return nil
}
