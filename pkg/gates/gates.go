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

package gates

import (
	"regexp"
	"strings"

	"github.com/madgoathaz/goatd/pkg/buildconfig"
	"github.com/madgoathaz/goatd/pkg/kconfig"
	"github.com/madgoathaz/goatd/pkg/templates"
)

// Config carries the BuildConfig fields the gate fragments need to
// re-assert the correct toggles at each regeneration point.
type Config struct {
	LTOLevel       buildconfig.LTOLevel
	UseModprobedDB bool
	UseBORE        bool
	UseMGLRU       bool
}

const (
	g1Sentinel  = "END GATE G1 BLOCK"
	g2Sentinel  = "END GATE G2 BLOCK"
	g25Sentinel = "END GATE G2.5 BLOCK"
	e1Sentinel  = "END GATE E1 BLOCK"
)

// sentinelsByGate maps each gate's id to its detection sentinel, for
// callers (the orchestrator's gate-fire metrics) that need to tell which
// gates actually fired in a given InjectGates call without reaching into
// this package's unexported constants directly.
var sentinelsByGate = map[string]string{
	"G1":   g1Sentinel,
	"G2":   g2Sentinel,
	"G2.5": g25Sentinel,
	"E1":   e1Sentinel,
}

// Fired reports which gate ids are present in after but absent from
// before, i.e. which gates this InjectGates call newly inserted.
func Fired(before, after string) []string {
	var fired []string
	for gate, sentinel := range sentinelsByGate {
		if !strings.Contains(before, sentinel) && strings.Contains(after, sentinel) {
			fired = append(fired, gate)
		}
	}
	return fired
}

var (
	bzImagePattern         = regexp.MustCompile(`(?m)^.*\bmake\b.*\bbzImage\b.*$`)
	localmodconfigPattern  = regexp.MustCompile(`(?m)^.*\blocalmodconfig\b.*$`)
	configOverwritePattern = regexp.MustCompile(`(?m)^.*cp\s+.*\.\./config.*\.config.*$`)
	oldconfigPattern       = regexp.MustCompile(`(?m)^.*\b(?:oldconfig|syncconfig)\b.*$`)
)

// isConfigOverwriteIdiom reports whether the recipe uses the
// "cp ../config .config" idiom G2.5 exists to defend against. This is
// the named extension point the spec leaves open for when that idiom
// evolves or a different packager family is targeted: swap this
// predicate to change what G2.5 considers an overwrite.
func isConfigOverwriteIdiom(line string) bool {
	return configOverwritePattern.MatchString(line)
}

func ltoBlockText(level buildconfig.LTOLevel) string {
	return strings.Join(kconfig.LTOBlock(level), "\n")
}

// InjectGates inserts G1 immediately before the first bzImage compile
// invocation, G2 immediately after any localmodconfig run (only when
// modprobed-db filtering is in play), G2.5 immediately after every
// config-overwrite idiom occurrence, and E1 immediately after every
// oldconfig/syncconfig invocation. All four reuse the LTO block the
// Kconfig patcher's gate P5 already established as the source of
// truth.
func InjectGates(content string, cfg Config) (string, error) {
	ltoBlock := ltoBlockText(cfg.LTOLevel)

	if !strings.Contains(content, g1Sentinel) {
		g1, err := templates.GateG1(templates.GateLTOData{LTOBlock: ltoBlock})
		if err != nil {
			return "", err
		}
		content = insertBeforeFirstMatch(content, bzImagePattern, g1)
	}

	if cfg.UseModprobedDB && !strings.Contains(content, g2Sentinel) {
		g2, err := templates.GateG2()
		if err != nil {
			return "", err
		}
		content = insertAfterEveryMatch(content, localmodconfigPattern, g2)
	}

	if !strings.Contains(content, g25Sentinel) {
		g25, err := templates.GateG25(templates.GateG25Data{
			UseModprobedDB: cfg.UseModprobedDB,
			UseBORE:        cfg.UseBORE,
			UseMGLRU:       cfg.UseMGLRU,
			LTOBlock:       ltoBlock,
		})
		if err != nil {
			return "", err
		}
		content = insertAfterEveryMatchIf(content, configOverwritePattern, g25, isConfigOverwriteIdiom)
	}

	if !strings.Contains(content, e1Sentinel) {
		e1, err := templates.GateE1(templates.GateLTOData{LTOBlock: ltoBlock})
		if err != nil {
			return "", err
		}
		content = insertAfterEveryMatch(content, oldconfigPattern, e1)
	}

	return content, nil
}

func insertBeforeFirstMatch(content string, pattern *regexp.Regexp, block string) string {
	loc := pattern.FindStringIndex(content)
	if loc == nil {
		return content
	}
	if !strings.HasSuffix(block, "\n") {
		block += "\n"
	}
	return content[:loc[0]] + block + content[loc[0]:]
}

func insertAfterEveryMatch(content string, pattern *regexp.Regexp, block string) string {
	return insertAfterEveryMatchIf(content, pattern, block, func(string) bool { return true })
}

func insertAfterEveryMatchIf(content string, pattern *regexp.Regexp, block string, keep func(line string) bool) string {
	locs := pattern.FindAllStringIndex(content, -1)
	for i := len(locs) - 1; i >= 0; i-- {
		loc := locs[i]
		if !keep(content[loc[0]:loc[1]]) {
			continue
		}
		content = content[:loc[1]] + "\n" + block + content[loc[1]:]
	}
	return content
}
