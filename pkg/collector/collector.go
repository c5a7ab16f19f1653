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

package collector

import (
	"context"

	"github.com/madgoathaz/goatd/pkg/measurement"
)

// Collector gathers a single measurement.Measurement from one system
// source (GPU, OS, systemd). Implementations must respect ctx
// cancellation and degrade gracefully — returning a valid empty
// measurement rather than an error — when their data source is absent.
type Collector interface {
	Collect(ctx context.Context) (*measurement.Measurement, error)
}
