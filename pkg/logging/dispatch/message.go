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
	"time"
)

// Message is the tagged-union of values a sender can push to a collector.
// The three concrete implementations are Line, Flush, and NewSession.
type Message interface {
	isMessage()
}

// Line carries one captured line of packager child-process output.
type Line struct {
	Level     slog.Level
	Timestamp time.Time
	Source    string // "stdout" or "stderr"
	Text      string
}

func (Line) isMessage() {}

// Flush requests the persister fsync every open file handle it owns and
// signal completion on Ack once drained up to the point this message was
// enqueued.
type Flush struct {
	Ack chan<- struct{}
}

func (Flush) isMessage() {}

// NewSession requests the persister close its current file (if any),
// advance the generation counter, and begin appending to Filename. Ack
// receives the resolved absolute path once the new session is active.
type NewSession struct {
	Filename string
	Ack      chan<- string
}

func (NewSession) isMessage() {}
