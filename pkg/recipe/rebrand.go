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
	"strings"

	"github.com/madgoathaz/goatd/pkg/buildconfig"
)

const rebrandSentinel = "GOATD REBRANDED FROM"

var (
	pkgbasePattern       = regexp.MustCompile(`(?m)^pkgbase=(['"]?)([^'"\n]+)\1\s*$`)
	pkgnameScalarPattern = regexp.MustCompile(`(?m)^pkgname=(['"]?)([^'"\n]+)\1\s*$`)
	pkgnameArrayPattern  = regexp.MustCompile(`(?s)pkgname=\(([^)]*)\)`)
	quotedTokenPattern   = regexp.MustCompile(`(['"])([^'"]*)\1`)
	pkgdescPattern       = regexp.MustCompile(`(?m)^pkgdesc=.*$`)
)

// ApplyRebranding rewrites pkgbase, every pkgname entry naming the
// upstream variant, and every package_<variant>[_headers] function to a
// single "master identity" combining the goatd brand with the profile,
// and injects a provides=() line preserving the original variant name.
// A sentinel recorded on first application makes a second call on
// already-rebranded content a no-op, satisfying rebranding idempotence.
func ApplyRebranding(content string, profile buildconfig.Profile) (string, error) {
	if hasSentinel(content, rebrandSentinel) {
		return content, nil
	}

	variant, ok := extractVariant(content)
	if !ok {
		return content, nil
	}

	master := masterIdentity(variant, profile)

	content = pkgbasePattern.ReplaceAllString(content, "pkgbase="+master)
	content = rewritePkgnameEntries(content, variant, master)
	content = rewritePackagingFunctions(content, variant, master)
	content = injectProvides(content, variant)
	content = "# " + rebrandSentinel + " " + variant + "\n" + content

	return content, nil
}

// extractVariant reads the upstream kernel variant (e.g. "linux",
// "linux-zen") from pkgbase, falling back to a scalar pkgname for
// non-split recipes.
func extractVariant(content string) (string, bool) {
	if m := pkgbasePattern.FindStringSubmatch(content); m != nil {
		return m[2], true
	}
	if m := pkgnameScalarPattern.FindStringSubmatch(content); m != nil {
		return m[2], true
	}
	return "", false
}

// masterIdentity computes the rebranded identity for variant under
// profile: "linux-goatd-<profile>" for the plain variant, or
// "linux-goatd-<suffix>-<profile>" for a "linux-<suffix>" variant.
func masterIdentity(variant string, profile buildconfig.Profile) string {
	profileSuffix := strings.ToLower(string(profile))
	switch {
	case variant == "linux":
		return "linux-goatd-" + profileSuffix
	case strings.HasPrefix(variant, "linux-"):
		rest := strings.TrimPrefix(variant, "linux-")
		return "linux-goatd-" + rest + "-" + profileSuffix
	default:
		return variant + "-goatd-" + profileSuffix
	}
}

// rewritePkgnameEntries replaces variant with master inside every
// quoted pkgname array token that contains it, covering both the base
// package and its -headers sibling.
func rewritePkgnameEntries(content, variant, master string) string {
	loc := pkgnameArrayPattern.FindStringSubmatchIndex(content)
	if loc == nil {
		return content
	}
	arrayContent := content[loc[2]:loc[3]]
	rewritten := quotedTokenPattern.ReplaceAllStringFunc(arrayContent, func(token string) string {
		m := quotedTokenPattern.FindStringSubmatch(token)
		quote, inner := m[1], m[2]
		if strings.Contains(inner, variant) {
			inner = strings.ReplaceAll(inner, variant, master)
		}
		return quote + inner + quote
	})
	return content[:loc[2]] + rewritten + content[loc[3]:]
}

// rewritePackagingFunctions renames package_<variant> and
// package_<variant>_headers to the master identity, with hyphens
// replaced by underscores in the function name as shell requires.
func rewritePackagingFunctions(content, variant, master string) string {
	origToken := strings.ReplaceAll(variant, "-", "_")
	masterToken := strings.ReplaceAll(master, "-", "_")

	pattern := regexp.MustCompile(`(?m)^package_` + regexp.QuoteMeta(origToken) + `(_headers)?(\s*\(\)\s*\{)`)
	return pattern.ReplaceAllString(content, "package_"+masterToken+"${1}${2}")
}

// injectProvides adds provides=('<variant>') immediately after the
// top-level pkgdesc assignment, preserving discoverability of the
// recipe under its original upstream name.
func injectProvides(content, variant string) string {
	loc := pkgdescPattern.FindStringIndex(content)
	if loc == nil {
		return content
	}
	insertAt := loc[1]
	line := "\nprovides=('" + variant + "')"
	return content[:insertAt] + line + content[insertAt:]
}
