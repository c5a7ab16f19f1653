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

import "sync"

// CollectorId is an opaque, monotonically assigned collector identity.
type CollectorId uint64

var (
	registryMu   sync.Mutex
	registry     = make(map[CollectorId]*unboundedQueue)
	nextID       CollectorId
	globalLogger *Collector
	globalOnce   sync.Once
)

func register(q *unboundedQueue) CollectorId {
	registryMu.Lock()
	defer registryMu.Unlock()
	nextID++
	id := nextID
	registry[id] = q
	return id
}

func unregister(id CollectorId) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(registry, id)
}

// lookup returns the collector's queue, if still registered.
func lookup(id CollectorId) (*unboundedQueue, bool) {
	registryMu.Lock()
	defer registryMu.Unlock()
	q, ok := registry[id]
	return q, ok
}

// SetGlobalLogger attempts to install c as the process-wide default
// collector. "Already set" is not an error for the caller: the first
// registration wins, and every later caller's own collector keeps
// routing its own messages through the registry regardless of whether it
// became the global default.
func SetGlobalLogger(c *Collector) {
	globalOnce.Do(func() {
		registryMu.Lock()
		globalLogger = c
		registryMu.Unlock()
	})
}

// GlobalLogger returns the process-wide default collector, or nil if none
// has been installed yet.
func GlobalLogger() *Collector {
	registryMu.Lock()
	defer registryMu.Unlock()
	return globalLogger
}
