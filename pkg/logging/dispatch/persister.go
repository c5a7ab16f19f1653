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
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"log/slog"
)

// sessionState tracks the persister's open file and generation. The
// generation increments on every NewSession so any previously cached
// handle a reader might hold is known stale by comparison.
type sessionState struct {
	path       string
	generation uint64
	file       *os.File
}

// runPersister is the dedicated worker loop for one collector's queue. It
// locks itself to its own OS thread for its entire lifetime: the
// persister must keep writing the crash/timeout tail to disk even if the
// orchestrator's cooperative runtime is itself being torn down, so it
// cannot be a goroutine that an exhausted scheduler could starve.
func runPersister(q *unboundedQueue, bus *uiBus, done chan<- struct{}) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(done)

	var session sessionState
	defer func() {
		if session.file != nil {
			session.file.Close()
		}
	}()

	for msg := range q.out {
		switch m := msg.(type) {
		case Line:
			persistLine(&session, m)
			bus.offer(m)
		case Flush:
			if session.file != nil {
				session.file.Sync()
			}
			select {
			case m.Ack <- struct{}{}:
			default:
			}
		case NewSession:
			openSession(&session, m.Filename)
			select {
			case m.Ack <- session.path:
			default:
			}
		}
	}
}

func persistLine(s *sessionState, line Line) {
	if s.file == nil {
		return
	}
	fmt.Fprintf(s.file, "%s [%s] %s: %s\n", line.Timestamp.Format("2006-01-02T15:04:05.000Z07:00"), line.Level, line.Source, line.Text)
}

func openSession(s *sessionState, filename string) {
	if s.file != nil {
		s.file.Close()
		s.file = nil
	}
	abs, err := filepath.Abs(filename)
	if err != nil {
		abs = filename
	}
	f, err := os.OpenFile(abs, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		slog.Warn("dispatch: failed to open session file", "path", abs, "error", err)
		s.path = abs
		s.generation++
		return
	}
	s.file = f
	s.path = abs
	s.generation++
}
