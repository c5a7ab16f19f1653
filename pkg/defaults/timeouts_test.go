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

package defaults

import (
	"testing"
	"time"
)

func TestTimeoutConstants(t *testing.T) {
	tests := []struct {
		name     string
		timeout  time.Duration
		minValue time.Duration
		maxValue time.Duration
	}{
		{"BuildTimeout", BuildTimeout, 1 * time.Hour, 24 * time.Hour},
		{"CancelGracePeriod", CancelGracePeriod, 1 * time.Second, 30 * time.Second},
		{"VersionResolveTimeout", VersionResolveTimeout, 1 * time.Second, 60 * time.Second},
		{"FlushAckTimeout", FlushAckTimeout, 5 * time.Second, 120 * time.Second},
		{"PatchIOTimeout", PatchIOTimeout, 1 * time.Second, 60 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.timeout < tt.minValue {
				t.Errorf("%s (%v) is below minimum expected value (%v)", tt.name, tt.timeout, tt.minValue)
			}
			if tt.timeout > tt.maxValue {
				t.Errorf("%s (%v) is above maximum expected value (%v)", tt.name, tt.timeout, tt.maxValue)
			}
		})
	}
}

func TestLogTailLinesMatchesSpecWindow(t *testing.T) {
	if LogTailLines != 10 {
		t.Errorf("LogTailLines = %d, want 10", LogTailLines)
	}
}

func TestUIBusBurstExceedsRate(t *testing.T) {
	if UIBusBurst < UIBusRate {
		t.Errorf("UIBusBurst (%d) should be at least UIBusRate (%d)", UIBusBurst, UIBusRate)
	}
}

func TestCancelGracePeriodShorterThanBuildTimeout(t *testing.T) {
	if CancelGracePeriod >= BuildTimeout {
		t.Errorf("CancelGracePeriod (%v) should be much less than BuildTimeout (%v)", CancelGracePeriod, BuildTimeout)
	}
}
