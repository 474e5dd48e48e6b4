package schedule

import "github.com/abhisek/adapt/internal/mastery"

// Config holds the spaced-repetition policy: base intervals per mastery
// level and the growth/reset behavior around them.
type Config struct {
	// Base interval in days for each mastery level.
	UnknownDays    float64 `yaml:"unknown_days"`
	NoviceDays     float64 `yaml:"novice_days"`
	DevelopingDays float64 `yaml:"developing_days"`
	ProficientDays float64 `yaml:"proficient_days"`
	AdvancedDays   float64 `yaml:"advanced_days"`

	// GrowthFactor multiplies the previous interval on a correct answer.
	GrowthFactor float64 `yaml:"growth_factor"`

	// IncorrectCapDays bounds the reset interval after an incorrect answer.
	IncorrectCapDays float64 `yaml:"incorrect_cap_days"`

	// MinIntervalDays and MaxIntervalDays clamp every computed interval.
	MinIntervalDays float64 `yaml:"min_interval_days"`
	MaxIntervalDays float64 `yaml:"max_interval_days"`
}

// DefaultConfig returns the standard review schedule.
func DefaultConfig() Config {
	return Config{
		UnknownDays:      0.25,
		NoviceDays:       1,
		DevelopingDays:   3,
		ProficientDays:   7,
		AdvancedDays:     14,
		GrowthFactor:     1.8,
		IncorrectCapDays: 0.5,
		MinIntervalDays:  0.25,
		MaxIntervalDays:  60,
	}
}

// BaseDays returns the base interval for the given mastery level.
func (c Config) BaseDays(level mastery.Level) float64 {
	switch level {
	case mastery.LevelNovice:
		return c.NoviceDays
	case mastery.LevelDeveloping:
		return c.DevelopingDays
	case mastery.LevelProficient:
		return c.ProficientDays
	case mastery.LevelAdvanced:
		return c.AdvancedDays
	default:
		return c.UnknownDays
	}
}
