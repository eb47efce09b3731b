// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config reads the YAML run configuration consumed by the
// fealite CLI, grounded on the teacher's inp.ReadSim (read file, apply
// defaults, decode, post-process) but reworked from gofem's JSON
// simulation-deck format onto the YAML decoder used elsewhere in the
// retrieved example pack.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tolerances holds the numerical tolerances of post-processing
// (spec.md section 9). Passed through to postprocess.Tolerances
// at the CLI boundary (see cmd/fealite), which is where they actually
// parameterize the dust-zeroing and equilibrium checks.
type Tolerances struct {
	// Equilibrium bounds the acceptable residual of
	// postprocess.PostProcessor.CheckEquilibrium.
	Equilibrium float64 `yaml:"equilibrium"`

	// Dust is the float-dust threshold below which a reaction component
	// is treated as exactly zero (postprocess.PostProcessor.SupportReaction).
	Dust float64 `yaml:"dust"`
}

// DefaultTolerances returns the tolerances used when a config file
// omits the section entirely.
func DefaultTolerances() Tolerances {
	return Tolerances{Equilibrium: 1e-6, Dust: 1e-15}
}

// Config is the top-level run configuration for the fealite CLI.
type Config struct {
	LogLevel   string     `yaml:"log_level"`
	Tolerances Tolerances `yaml:"tolerances"`
}

// Default returns a Config with the module's baked-in defaults.
func Default() Config {
	return Config{
		LogLevel:   "info",
		Tolerances: DefaultTolerances(),
	}
}

// Load reads and decodes a YAML config file at path, starting from
// Default() so that any field the file omits keeps its default value.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return cfg, nil
}
