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

package dispatch

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorPersistsLinesAfterNewSession(t *testing.T) {
	c := NewCollector()
	defer c.Close()

	dir := t.TempDir()
	target := filepath.Join(dir, "session.log")
	path, err := c.NewSession(target, time.Second)
	require.NoError(t, err)
	assert.Equal(t, target, path)

	c.SendLine("stdout", slog.LevelInfo, "building vmlinux")
	require.NoError(t, c.Flush(time.Second))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), "building vmlinux")
	assert.Contains(t, string(data), "stdout")
}

func TestCollectorReopensOnGeneration(t *testing.T) {
	c := NewCollector()
	defer c.Close()

	dir := t.TempDir()
	first := filepath.Join(dir, "first.log")
	second := filepath.Join(dir, "second.log")

	_, err := c.NewSession(first, time.Second)
	require.NoError(t, err)
	c.SendLine("stdout", slog.LevelInfo, "first session line")
	require.NoError(t, c.Flush(time.Second))

	_, err = c.NewSession(second, time.Second)
	require.NoError(t, err)
	c.SendLine("stdout", slog.LevelInfo, "second session line")
	require.NoError(t, c.Flush(time.Second))

	firstData, err := os.ReadFile(first)
	require.NoError(t, err)
	assert.Contains(t, string(firstData), "first session line")
	assert.NotContains(t, string(firstData), "second session line")

	secondData, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Contains(t, string(secondData), "second session line")
}

func TestCollectorForwardsToUIBus(t *testing.T) {
	c := NewCollector()
	defer c.Close()

	c.SendLine("stderr", slog.LevelWarn, "a warning")
	select {
	case line := <-c.UIBus():
		assert.Equal(t, "a warning", line.Text)
	case <-time.After(time.Second):
		t.Fatal("expected line forwarded to UI bus")
	}
}

func TestCollectorSurvivesBurstWithoutBlockingSender(t *testing.T) {
	c := NewCollector()
	defer c.Close()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 5000; i++ {
			c.SendLine("stdout", slog.LevelInfo, "line")
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("expected burst send to complete without blocking on a bounded buffer")
	}
	require.NoError(t, c.Flush(2*time.Second))
}

func TestSetGlobalLoggerFirstWinsIsNotAnError(t *testing.T) {
	first := NewCollector()
	defer first.Close()
	second := NewCollector()
	defer second.Close()

	SetGlobalLogger(first)
	SetGlobalLogger(second)

	got := GlobalLogger()
	assert.Equal(t, first.ID(), got.ID())
}

func TestCloseUnregistersCollector(t *testing.T) {
	c := NewCollector()
	id := c.ID()
	c.Close()

	_, ok := lookup(id)
	assert.False(t, ok)
}
