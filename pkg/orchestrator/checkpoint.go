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

package orchestrator

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	goatderrors "github.com/madgoathaz/goatd/pkg/errors"
)

// CheckpointFileName is the checkpoint's on-disk name, sibling to the
// MPL record at the workspace root.
const CheckpointFileName = ".goatd_checkpoint.yaml"

// Checkpoint is persisted after every successful phase transition so a
// restarted process can Resume instead of starting over from
// Preparation.
type Checkpoint struct {
	Phase       Phase             `yaml:"phase"`
	Reason      FailureReason     `yaml:"reason,omitempty"`
	Timestamp   time.Time         `yaml:"timestamp"`
	EnvSnapshot map[string]string `yaml:"env_snapshot"`
}

// checkpointPath returns the checkpoint's path inside workspaceRoot.
func checkpointPath(workspaceRoot string) string {
	return filepath.Join(workspaceRoot, CheckpointFileName)
}

// writeCheckpoint replaces the checkpoint via a sibling tempfile plus
// rename, the same atomic-write idiom pkg/mpl uses for its own record,
// so a crash mid-write never leaves a checkpoint Resume would trust.
func writeCheckpoint(workspaceRoot string, cp Checkpoint) error {
	data, err := yaml.Marshal(cp)
	if err != nil {
		return goatderrors.Wrap(goatderrors.ErrCodePatchFailed, "marshal checkpoint", err)
	}

	path := checkpointPath(workspaceRoot)
	tmp, err := os.CreateTemp(workspaceRoot, ".goatd_checkpoint.*.tmp")
	if err != nil {
		return goatderrors.Wrap(goatderrors.ErrCodePatchFailed, "create checkpoint tempfile", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return goatderrors.Wrap(goatderrors.ErrCodePatchFailed, "write checkpoint tempfile", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return goatderrors.Wrap(goatderrors.ErrCodePatchFailed, "sync checkpoint tempfile", err)
	}
	if err := tmp.Close(); err != nil {
		return goatderrors.Wrap(goatderrors.ErrCodePatchFailed, "close checkpoint tempfile", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return goatderrors.Wrap(goatderrors.ErrCodePatchFailed, "rename checkpoint tempfile into place", err)
	}
	return nil
}

// ReadCheckpoint loads the last persisted checkpoint from workspaceRoot,
// the entry point Resume uses to decide where to restart.
func ReadCheckpoint(workspaceRoot string) (Checkpoint, error) {
	data, err := os.ReadFile(checkpointPath(workspaceRoot))
	if err != nil {
		return Checkpoint{}, goatderrors.Wrap(goatderrors.ErrCodePatchFailed, "read checkpoint", err)
	}
	var cp Checkpoint
	if err := yaml.Unmarshal(data, &cp); err != nil {
		return Checkpoint{}, goatderrors.Wrap(goatderrors.ErrCodePatchFailed, "parse checkpoint", err)
	}
	return cp, nil
}
