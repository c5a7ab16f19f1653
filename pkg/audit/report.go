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

package audit

import (
	"time"

	"github.com/madgoathaz/goatd/pkg/buildconfig"
	"github.com/madgoathaz/goatd/pkg/header"
)

// Severity classifies how serious a Finding is.
type Severity string

const (
	SeverityInfo  Severity = "info"
	SeverityWarn  Severity = "warn"
	SeverityError Severity = "error"
)

// Finding is one invariant's evaluation outcome.
type Finding struct {
	Code     string   `json:"code" yaml:"code"`
	Message  string   `json:"message" yaml:"message"`
	Severity Severity `json:"severity" yaml:"severity"`
}

// Report is the final audit object produced at the end of the Validation
// phase, comparing what was requested against what the produced .config
// actually realized.
type Report struct {
	header.Header `json:",inline" yaml:",inline"`

	Profile      buildconfig.Profile   `json:"profile" yaml:"profile"`
	RequestedLTO buildconfig.LTOLevel  `json:"requestedLto" yaml:"requestedLto"`
	RealizedLTO  buildconfig.LTOLevel  `json:"realizedLto" yaml:"realizedLto"`
	Findings     []Finding             `json:"findings" yaml:"findings"`
	GeneratedAt  time.Time             `json:"generatedAt" yaml:"generatedAt"`
}

// Clean reports whether the audit found no error-severity findings.
func (r *Report) Clean() bool {
	for _, f := range r.Findings {
		if f.Severity == SeverityError {
			return false
		}
	}
	return true
}

// NewReport creates an empty report for profile, stamped at generatedAt
// (the caller supplies the timestamp since Date.now()-equivalents are not
// available in every calling context).
func NewReport(profile buildconfig.Profile, requested buildconfig.LTOLevel, generatedAt time.Time) *Report {
	return &Report{
		Header: header.Header{
			APIVersion: "goatd/v1",
			Kind:       header.KindAuditReport,
		},
		Profile:      profile,
		RequestedLTO: requested,
		Findings:     make([]Finding, 0),
		GeneratedAt:  generatedAt,
	}
}
