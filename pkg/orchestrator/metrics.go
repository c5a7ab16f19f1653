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

package orchestrator

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	buildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "goatd_build_duration_seconds",
			Help:    "Duration of a full Preparation-to-Validation build run in seconds",
			Buckets: []float64{60, 300, 900, 1800, 3600, 7200, 14400, 21600},
		},
	)

	phaseTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "goatd_phase_transitions_total",
			Help: "Total number of phase transitions, labelled by the phase entered",
		},
		[]string{"phase"},
	)

	buildFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "goatd_build_failures_total",
			Help: "Total number of builds that transitioned to Failed, labelled by reason",
		},
		[]string{"reason"},
	)

	gateFires = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "goatd_gate_fires_total",
			Help: "Total number of times a gate enforcer was newly inserted into a recipe, labelled by gate id",
		},
		[]string{"gate"},
	)
)
