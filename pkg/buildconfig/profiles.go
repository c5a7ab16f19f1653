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

package buildconfig

import (
	"embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/profiles.yaml
var presetFS embed.FS

// Preset is a profile's default feature selection, loaded from embedded
// YAML rather than hard-coded so defaults can be retuned without a
// rebuild.
type Preset struct {
	LTOLevel       LTOLevel  `yaml:"lto_level"`
	Hardening      Hardening `yaml:"hardening"`
	UseModprobedDB bool      `yaml:"use_modprobed_db"`
	UseWhitelist   bool      `yaml:"use_whitelist"`
	UseMGLRU       bool      `yaml:"use_mglru"`
	Scheduler      Scheduler `yaml:"scheduler"`
	Polly          bool      `yaml:"polly"`
}

var (
	presetsOnce sync.Once
	presets     map[Profile]Preset
	presetsErr  error
)

func loadPresets() (map[Profile]Preset, error) {
	presetsOnce.Do(func() {
		raw, err := presetFS.ReadFile("data/profiles.yaml")
		if err != nil {
			presetsErr = fmt.Errorf("read embedded profiles.yaml: %w", err)
			return
		}
		var doc struct {
			Profiles map[Profile]Preset `yaml:"profiles"`
		}
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			presetsErr = fmt.Errorf("parse embedded profiles.yaml: %w", err)
			return
		}
		presets = doc.Profiles
	})
	return presets, presetsErr
}

// PresetFor returns the default feature selection for a profile.
func PresetFor(p Profile) (Preset, error) {
	all, err := loadPresets()
	if err != nil {
		return Preset{}, err
	}
	preset, ok := all[p]
	if !ok {
		return Preset{}, fmt.Errorf("%w: no preset for profile %q", ErrInvalidBuildConfig, p)
	}
	return preset, nil
}

// FromPreset builds a BuildConfig from a profile's preset, then applies
// only the fields the user explicitly toggled, implementing the
// "Hardware truth > User override > Profile preset" precedence rule for
// the toggle fields this package owns (LTO, MGLRU, Polly, scheduler via
// BORE) — hardware-truth overrides are applied by the external finalizer
// after this call; GPU-driven exclusions are not among them.
func FromPreset(profile Profile, variant, version string, userLTO LTOLevel, toggled UserIntent, userBORE, userMGLRU, userPolly bool) (BuildConfig, error) {
	preset, err := PresetFor(profile)
	if err != nil {
		return BuildConfig{}, err
	}

	cfg := BuildConfig{
		Profile:             profile,
		KernelVariant:       variant,
		Version:             version,
		LTOLevel:            preset.LTOLevel,
		Hardening:           preset.Hardening,
		NativeOptimizations: profile == ProfileGaming || profile == ProfileWorkstation,
		UseModprobedDB:      preset.UseModprobedDB,
		UseWhitelist:        preset.UseWhitelist,
		UseMGLRU:            preset.UseMGLRU,
		Scheduler:           preset.Scheduler,
		Polly:               preset.Polly,
		UserToggled:         toggled,
	}

	if toggled.LTO {
		cfg.LTOLevel = userLTO
	}
	if toggled.BORE {
		if userBORE {
			cfg.Scheduler = SchedulerBORE
		} else {
			cfg.Scheduler = SchedulerEEVDF
		}
	}
	if toggled.MGLRU {
		cfg.UseMGLRU = userMGLRU
	}
	if toggled.Polly {
		cfg.Polly = userPolly
	}

	if cfg.UseWhitelist && !cfg.UseModprobedDB {
		cfg.UseModprobedDB = true
	}

	return cfg, nil
}
