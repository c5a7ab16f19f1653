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

	goatderrors "github.com/madgoathaz/goatd/pkg/errors"
)

// Collector is one sink: a build or test registers one, streams Line
// messages into it, and closes it when the build is done. Closing
// unregisters it from the process-wide registry and lets its persister
// goroutine terminate once the queue drains.
type Collector struct {
	id    CollectorId
	queue *unboundedQueue
	bus   *uiBus
	done  chan struct{}
}

// NewCollector creates a collector with no active session file; lines
// sent before the first NewSession call are not written to any session
// file, but are still forwarded live to the UI bus immediately.
func NewCollector() *Collector {
	q := newUnboundedQueue()
	id := register(q)
	c := &Collector{
		id:    id,
		queue: q,
		bus:   newUIBus(),
		done:  make(chan struct{}),
	}
	go runPersister(c.queue, c.bus, c.done)
	return c
}

// ID returns the collector's opaque registry identity.
func (c *Collector) ID() CollectorId { return c.id }

// SendLine enqueues one captured line. Never blocks the caller beyond a
// single channel handoff: the underlying queue is unbounded.
func (c *Collector) SendLine(source string, level slog.Level, text string) {
	c.queue.send(Line{Level: level, Timestamp: time.Now().UTC(), Source: source, Text: text})
}

// Flush blocks until the persister has drained every message enqueued
// before this call, or until timeout elapses.
func (c *Collector) Flush(timeout time.Duration) error {
	ack := make(chan struct{}, 1)
	c.queue.send(Flush{Ack: ack})
	select {
	case <-ack:
		return nil
	case <-time.After(timeout):
		return goatderrors.New(goatderrors.ErrCodeTimeout, "dispatch: flush ack timed out")
	}
}

// NewSession closes the current session file (if any), advances the
// generation counter, and begins appending to filename. It returns the
// resolved absolute path the persister will write to.
func (c *Collector) NewSession(filename string, timeout time.Duration) (string, error) {
	ack := make(chan string, 1)
	c.queue.send(NewSession{Filename: filename, Ack: ack})
	select {
	case path := <-ack:
		return path, nil
	case <-time.After(timeout):
		return "", goatderrors.New(goatderrors.ErrCodeTimeout, "dispatch: new session ack timed out")
	}
}

// UIBus returns the channel a UI consumer reads rate-limited lines from.
func (c *Collector) UIBus() <-chan Line {
	return c.bus.Out()
}

// Close unregisters the collector and lets its persister goroutine exit
// once the queue has drained. Safe to call once per collector.
func (c *Collector) Close() {
	unregister(c.id)
	c.queue.close()
	<-c.done
}
