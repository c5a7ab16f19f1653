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

package mpl

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	goatderrors "github.com/madgoathaz/goatd/pkg/errors"
)

// FileName is the metadata file's name relative to the workspace root.
const FileName = ".goatd_metadata"

// Record is the MPL's shell-sourceable key=value document. Every field
// is a string because the consumer is, ultimately, a shell `source`
// statement running inside the packager's sub-environment.
type Record struct {
	BuildID        string
	KernelRelease  string
	KernelVersion  string
	Profile        string
	Variant        string
	LTOLevel       string
	BuildTimestamp string
	WorkspaceRoot  string
	SourceDir      string
	PkgVer         string
	PkgRel         string
	ProfileSuffix  string
}

// fieldOrder fixes the on-disk field order; it has no semantic meaning
// (the format is a map) but keeps repeated writes of an unchanged
// record byte-identical, which simplifies diffing during development.
var fieldOrder = []string{
	"GOATD_BUILD_ID",
	"GOATD_KERNELRELEASE",
	"GOATD_KERNEL_VERSION",
	"GOATD_PROFILE",
	"GOATD_VARIANT",
	"GOATD_LTO_LEVEL",
	"GOATD_BUILD_TIMESTAMP",
	"GOATD_WORKSPACE_ROOT",
	"GOATD_SOURCE_DIR",
	"GOATD_PKGVER",
	"GOATD_PKGREL",
	"GOATD_PROFILE_SUFFIX",
}

func (r Record) fields() map[string]string {
	return map[string]string{
		"GOATD_BUILD_ID":        r.BuildID,
		"GOATD_KERNELRELEASE":   r.KernelRelease,
		"GOATD_KERNEL_VERSION":  r.KernelVersion,
		"GOATD_PROFILE":         r.Profile,
		"GOATD_VARIANT":         r.Variant,
		"GOATD_LTO_LEVEL":       r.LTOLevel,
		"GOATD_BUILD_TIMESTAMP": r.BuildTimestamp,
		"GOATD_WORKSPACE_ROOT":  r.WorkspaceRoot,
		"GOATD_SOURCE_DIR":      r.SourceDir,
		"GOATD_PKGVER":          r.PkgVer,
		"GOATD_PKGREL":          r.PkgRel,
		"GOATD_PROFILE_SUFFIX":  r.ProfileSuffix,
	}
}

// New creates the Preparation-phase record: build id and timestamp are
// assigned, but GOATD_KERNELRELEASE is left empty until the build
// succeeds.
func New(workspaceRoot, sourceDir, kernelVersion, profile, variant, ltoLevel string) (Record, error) {
	root, err := filepath.Abs(workspaceRoot)
	if err != nil {
		return Record{}, fmt.Errorf("resolve workspace root: %w", err)
	}
	return Record{
		BuildID:        uuid.NewString(),
		KernelVersion:  kernelVersion,
		Profile:        profile,
		Variant:        variant,
		LTOLevel:       ltoLevel,
		BuildTimestamp: time.Now().UTC().Format(time.RFC3339),
		WorkspaceRoot:  root,
		SourceDir:      sourceDir,
	}, nil
}

// WithKernelRelease returns a copy of r with the post-build release
// string set, for the Validation-phase rewrite.
func (r Record) WithKernelRelease(release string) Record {
	r.KernelRelease = release
	return r
}

// Path returns the metadata file's path inside workspaceRoot.
func Path(workspaceRoot string) string {
	return filepath.Join(workspaceRoot, FileName)
}

// Write serializes r to workspaceRoot/.goatd_metadata, replacing any
// existing record via a sibling tempfile plus rename so readers never
// observe a partially written file.
func Write(workspaceRoot string, r Record) error {
	path := Path(workspaceRoot)

	var b strings.Builder
	b.WriteString("# GOATD metadata persistence layer record\n")
	b.WriteString("# Auto-generated; do not edit by hand.\n")
	fields := r.fields()
	for _, key := range fieldOrder {
		fmt.Fprintf(&b, "%s=%q\n", key, fields[key])
	}

	tmp, err := os.CreateTemp(workspaceRoot, ".goatd_metadata.*.tmp")
	if err != nil {
		return goatderrors.Wrap(goatderrors.ErrCodePatchFailed, "create MPL tempfile", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.WriteString(b.String()); err != nil {
		tmp.Close()
		return goatderrors.Wrap(goatderrors.ErrCodePatchFailed, "write MPL tempfile", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return goatderrors.Wrap(goatderrors.ErrCodePatchFailed, "sync MPL tempfile", err)
	}
	if err := tmp.Close(); err != nil {
		return goatderrors.Wrap(goatderrors.ErrCodePatchFailed, "close MPL tempfile", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return goatderrors.Wrap(goatderrors.ErrCodePatchFailed, "rename MPL tempfile into place", err)
	}
	return nil
}

// Read parses workspaceRoot/.goatd_metadata. Unknown fields are
// tolerated and ignored; comment lines (leading '#') are skipped.
func Read(workspaceRoot string) (Record, error) {
	f, err := os.Open(Path(workspaceRoot))
	if err != nil {
		return Record{}, goatderrors.Wrap(goatderrors.ErrCodePatchFailed, "open MPL record", err)
	}
	defer f.Close()

	raw := map[string]string{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		raw[key] = unquote(value)
	}
	if err := scanner.Err(); err != nil {
		return Record{}, goatderrors.Wrap(goatderrors.ErrCodePatchFailed, "scan MPL record", err)
	}

	return Record{
		BuildID:        raw["GOATD_BUILD_ID"],
		KernelRelease:  raw["GOATD_KERNELRELEASE"],
		KernelVersion:  raw["GOATD_KERNEL_VERSION"],
		Profile:        raw["GOATD_PROFILE"],
		Variant:        raw["GOATD_VARIANT"],
		LTOLevel:       raw["GOATD_LTO_LEVEL"],
		BuildTimestamp: raw["GOATD_BUILD_TIMESTAMP"],
		WorkspaceRoot:  raw["GOATD_WORKSPACE_ROOT"],
		SourceDir:      raw["GOATD_SOURCE_DIR"],
		PkgVer:         raw["GOATD_PKGVER"],
		PkgRel:         raw["GOATD_PKGREL"],
		ProfileSuffix:  raw["GOATD_PROFILE_SUFFIX"],
	}, nil
}

func unquote(v string) string {
	if len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"' {
		return v[1 : len(v)-1]
	}
	return v
}
