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

	"golang.org/x/time/rate"

	"github.com/madgoathaz/goatd/pkg/defaults"
)

// uiOverflowMarker is what a consumer sees in place of a line the rate
// limiter refused; it is itself a Line so callers never need a second
// message type.
const uiOverflowMarker = "[UI-BUS-OVERFLOW] output dropped to keep up"

// uiBus smooths bursty child-process output before forwarding to a UI
// consumer. Overflow is dropped, not buffered further, per spec: a UI
// that cannot keep up must see a visible gap marker rather than stall the
// persister.
type uiBus struct {
	limiter *rate.Limiter
	out     chan Line
}

func newUIBus() *uiBus {
	return &uiBus{
		limiter: rate.NewLimiter(rate.Limit(defaults.UIBusRate), defaults.UIBusBurst),
		out:     make(chan Line, defaults.UIBusBurst),
	}
}

// offer forwards line to the UI channel if the limiter admits it and the
// channel has room; otherwise it drops the line. Each line the limiter
// refuses is replaced by an overflow marker (itself dropped if the channel
// is full); a line the limiter admits but the full channel cannot take is
// dropped with no marker.
func (b *uiBus) offer(line Line) {
	if !b.limiter.Allow() {
		select {
		case b.out <- Line{Level: slog.LevelWarn, Timestamp: time.Now().UTC(), Source: line.Source, Text: uiOverflowMarker}:
		default:
		}
		return
	}
	select {
	case b.out <- line:
	default:
	}
}

// Out returns the channel a UI consumer reads rate-limited lines from.
func (b *uiBus) Out() <-chan Line {
	return b.out
}
