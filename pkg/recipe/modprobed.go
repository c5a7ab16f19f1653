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

package recipe

import (
	"regexp"

	"github.com/madgoathaz/goatd/pkg/templates"
)

const modprobedSentinel = "END MODPROBED-DB BLOCK"

var (
	cdSrcdirPattern      = regexp.MustCompile(`(?m)^.*cd\s+.*\$srcdir.*$`)
	functionClosePattern = regexp.MustCompile(`(?m)^\}\s*$`)
)

// applyModprobedBlock inserts the modprobed-db integration block after
// the first `cd "$srcdir"` inside prepare(), or at the top of the
// function body if that idiom is absent.
func applyModprobedBlock(content, kernelVariant string) (string, error) {
	if hasSentinel(content, modprobedSentinel) {
		return content, nil
	}

	points := functionBraceInsertPoints(content, "prepare")
	if len(points) == 0 {
		return content, nil
	}
	start := points[0]

	body := content[start:]
	bodyEnd := len(body)
	if loc := functionClosePattern.FindStringIndex(body); loc != nil {
		bodyEnd = loc[0]
	}

	insertAt := start
	if loc := cdSrcdirPattern.FindStringIndex(body[:bodyEnd]); loc != nil {
		insertAt = start + loc[1]
	}

	block, err := templates.ModprobedBlock(templates.ModprobedBlockData{KernelVariant: kernelVariant})
	if err != nil {
		return "", err
	}

	return content[:insertAt] + "\n" + block + content[insertAt:], nil
}
