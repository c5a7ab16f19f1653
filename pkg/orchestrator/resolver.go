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
	"context"
	"os"
	"regexp"
	"time"

	"github.com/madgoathaz/goatd/pkg/buildconfig"
	"github.com/madgoathaz/goatd/pkg/defaults"
	goatderrors "github.com/madgoathaz/goatd/pkg/errors"
	"github.com/madgoathaz/goatd/pkg/version"
)

// baselineVersion is the hard-coded last-resort tier: a kernel version
// known to build under every profile this repository supports.
const baselineVersion = "6.6.0"

// VersionResolver is the delegated, network- or package-index-backed
// lookup for what kernel version "latest" currently means for a given
// variant. Implementations are supplied by the caller (the CLI); the
// orchestrator ships none itself, since the actual upstream source is
// outside this core's scope.
type VersionResolver interface {
	Resolve(ctx context.Context, variant string) (string, error)
}

var pkgverPattern = regexp.MustCompile(`(?m)^pkgver\s*=\s*(\S+)\s*$`)

// parseRecipeVersion extracts pkgver from a packager recipe's content,
// the third fallback tier: if the delegated resolver and the in-memory
// cache both come up empty, whatever version the recipe last shipped
// with is a reasonable last-known-good.
func parseRecipeVersion(recipeContent string) (string, bool) {
	match := pkgverPattern.FindStringSubmatch(recipeContent)
	if match == nil {
		return "", false
	}
	return match[1], true
}

// resolveVersion implements spec.md §4.6 Preparation's version
// resolution: an explicit (non-"latest") request is validated and
// returned as-is; "latest" is resolved through four tiers in order,
// each tried only if the previous one failed: the delegated resolver,
// the orchestrator's in-memory per-variant cache of the last
// successful resolution, the recipe's own pkgver, and finally the
// hard-coded baseline.
func (o *Orchestrator) resolveVersion(ctx context.Context) (string, error) {
	requested := o.BuildConfig.Version
	if requested != buildconfig.VersionLatest {
		if _, err := version.ParseVersion(requested); err != nil {
			return "", goatderrors.Wrap(goatderrors.ErrCodeVersionResolutionFailed,
				"explicit version does not parse", err)
		}
		return requested, nil
	}

	variant := o.BuildConfig.KernelVariant

	if o.Resolver != nil {
		resolveCtx, cancel := context.WithTimeout(ctx, o.versionResolveTimeout())
		resolved, err := o.Resolver.Resolve(resolveCtx, variant)
		cancel()
		if err == nil && resolved != "" {
			o.rememberVersion(variant, resolved)
			return resolved, nil
		}
	}

	if cached, ok := o.lastResolvedVersion(variant); ok {
		return cached, nil
	}

	if raw, err := os.ReadFile(o.recipePath()); err == nil {
		if recipeVersion, ok := parseRecipeVersion(string(raw)); ok {
			return recipeVersion, nil
		}
	}

	if baselineVersion != "" {
		return baselineVersion, nil
	}

	return "", goatderrors.New(goatderrors.ErrCodeVersionResolutionFailed,
		`"latest" could not be resolved through any fallback tier for variant `+variant)
}

func (o *Orchestrator) rememberVersion(variant, resolved string) {
	if o.versionCache == nil {
		o.versionCache = make(map[string]string)
	}
	o.versionCache[variant] = resolved
}

func (o *Orchestrator) lastResolvedVersion(variant string) (string, bool) {
	if o.versionCache == nil {
		return "", false
	}
	v, ok := o.versionCache[variant]
	return v, ok
}

func (o *Orchestrator) versionResolveTimeout() time.Duration {
	if o.VersionResolveTimeout > 0 {
		return o.VersionResolveTimeout
	}
	return defaults.VersionResolveTimeout
}
