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

package executor

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSink records every line sent to it; it satisfies LogSink
// structurally, exactly as pkg/logging/dispatch.Collector does.
type fakeSink struct {
	mu    sync.Mutex
	lines []string
}

func (s *fakeSink) SendLine(source string, level slog.Level, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = append(s.lines, source+": "+text)
}

func (s *fakeSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines)
}

func writeStub(t *testing.T, script string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "packager-stub.sh")
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

func TestRunKernelBuildCompletesAndCapturesRelease(t *testing.T) {
	sourceDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(sourceDir, "include/config"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(sourceDir, "include/config/kernel.release"), []byte("6.19.0-goatd\n"), 0o644))

	stub := writeStub(t, "#!/bin/sh\necho building vmlinux\necho done >&2\nexit 0\n")
	sink := &fakeSink{}

	result, err := RunKernelBuild(context.Background(), sourceDir, stub, nil, os.Environ(), nil, sink, time.Second)
	require.NoError(t, err)
	assert.Equal(t, Completed, result.Outcome)
	assert.Equal(t, 0, result.ExitCode)
	assert.Equal(t, "6.19.0-goatd", result.KernelRelease)
	assert.True(t, sink.count() >= 2)
}

func TestRunKernelBuildSurfacesNonZeroExit(t *testing.T) {
	sourceDir := t.TempDir()
	stub := writeStub(t, "#!/bin/sh\necho boom\nexit 7\n")

	result, err := RunKernelBuild(context.Background(), sourceDir, stub, nil, os.Environ(), nil, &fakeSink{}, time.Second)
	require.NoError(t, err)
	assert.Equal(t, Completed, result.Outcome)
	assert.Equal(t, 7, result.ExitCode)
	assert.Empty(t, result.KernelRelease)
}

func TestRunKernelBuildTailWindowIsBoundedToTen(t *testing.T) {
	sourceDir := t.TempDir()
	stub := writeStub(t, "#!/bin/sh\ni=0\nwhile [ $i -lt 25 ]; do echo \"line $i\"; i=$((i+1)); done\nexit 0\n")

	result, err := RunKernelBuild(context.Background(), sourceDir, stub, nil, os.Environ(), nil, &fakeSink{}, time.Second)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(result.Tail), 10)
	assert.Contains(t, result.Tail[len(result.Tail)-1], "line 24")
}

func TestRunKernelBuildCancellationIsPrompt(t *testing.T) {
	sourceDir := t.TempDir()
	stub := writeStub(t, "#!/bin/sh\ntrap 'exit 0' TERM\nwhile true; do sleep 0.05; done\n")

	cancel := make(chan struct{})
	go func() {
		time.Sleep(50 * time.Millisecond)
		close(cancel)
	}()

	start := time.Now()
	result, err := RunKernelBuild(context.Background(), sourceDir, stub, nil, os.Environ(), cancel, &fakeSink{}, 10*time.Second)
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.Equal(t, Cancelled, result.Outcome)
	assert.Less(t, elapsed, 5*time.Second, "expected termination well inside the SIGTERM grace period")
}

func TestRunKernelBuildTimeoutReturnsTail(t *testing.T) {
	sourceDir := t.TempDir()
	stub := writeStub(t, "#!/bin/sh\ntrap 'exit 0' TERM\necho stalling\nwhile true; do sleep 0.05; done\n")

	result, err := RunKernelBuild(context.Background(), sourceDir, stub, nil, os.Environ(), nil, &fakeSink{}, 100*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, TimedOut, result.Outcome)
	assert.NotEmpty(t, result.Tail)
}

func TestRunKernelBuildSpawnFailureIsStructuredError(t *testing.T) {
	sourceDir := t.TempDir()
	_, err := RunKernelBuild(context.Background(), sourceDir, filepath.Join(sourceDir, "does-not-exist"), nil, os.Environ(), nil, &fakeSink{}, time.Second)
	require.Error(t, err)
}
