// Package config aggregates every tunable policy constant of the decision
// engine and loads optional overrides from engine.yaml in the data
// directory. The defaults are the production calibration; the file exists
// so experiments don't require a rebuild.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/adapt/internal/mastery"
	"github.com/abhisek/adapt/internal/predict"
	"github.com/abhisek/adapt/internal/schedule"
)

// FileName is the optional override file inside the data directory.
const FileName = "engine.yaml"

// AbilityConfig seeds the prior ability estimate for new sessions.
type AbilityConfig struct {
	InitialTheta         float64 `yaml:"initial_theta"`
	InitialStandardError float64 `yaml:"initial_standard_error"`
}

// SelectionConfig weights the unit-selection priority.
type SelectionConfig struct {
	// DueBoost multiplies priority for units whose review is due.
	DueBoost float64 `yaml:"due_boost"`

	// NotDueFactor dampens priority for units not yet due.
	NotDueFactor float64 `yaml:"not_due_factor"`
}

// TerminationConfig decides when a session is complete.
type TerminationConfig struct {
	MaxItems            int     `yaml:"max_items"`
	TargetStandardError float64 `yaml:"target_standard_error"`
	MasteryTheta        float64 `yaml:"mastery_theta"`
	MaxStallCount       int     `yaml:"max_stall_count"`

	// StallThetaDelta is the |Δtheta| below which a response counts as
	// a stall.
	StallThetaDelta float64 `yaml:"stall_theta_delta"`
}

// Config is the full engine tuning surface.
type Config struct {
	Ability     AbilityConfig     `yaml:"ability"`
	Mastery     mastery.Config    `yaml:"mastery"`
	Schedule    schedule.Config   `yaml:"schedule"`
	Selection   SelectionConfig   `yaml:"selection"`
	Termination TerminationConfig `yaml:"termination"`
	Predict     predict.Config    `yaml:"predict"`
}

// Default returns the standard engine calibration.
func Default() Config {
	return Config{
		Ability: AbilityConfig{
			InitialTheta:         -1.5,
			InitialStandardError: 1.0,
		},
		Mastery:  mastery.DefaultConfig(),
		Schedule: schedule.DefaultConfig(),
		Selection: SelectionConfig{
			DueBoost:     1.8,
			NotDueFactor: 0.6,
		},
		Termination: TerminationConfig{
			MaxItems:            25,
			TargetStandardError: 0.3,
			MasteryTheta:        1.2,
			MaxStallCount:       3,
			StallThetaDelta:     0.01,
		},
		Predict: predict.DefaultConfig(),
	}
}

// Load returns the defaults overlaid with engine.yaml from dir, when the
// file exists. A missing file yields pure defaults; a malformed file is an
// error so a typo can't silently revert a calibration experiment.
func Load(dir string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}
