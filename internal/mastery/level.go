// Package mastery tracks per-unit competence: an accumulated score, a
// derived discrete level, and attempt counters.
package mastery

import (
	"encoding/json"
	"fmt"
)

// Level is a discrete competence tier derived from score and attempts.
// The ordering of the constants is the total ordering of the tiers.
type Level int

const (
	LevelUnknown Level = iota
	LevelNovice
	LevelDeveloping
	LevelProficient
	LevelAdvanced
)

// Levels lists all tiers from lowest to highest.
var Levels = []Level{LevelUnknown, LevelNovice, LevelDeveloping, LevelProficient, LevelAdvanced}

// Score thresholds for level derivation, evaluated top-down.
const (
	advancedThreshold   = 0.85
	proficientThreshold = 0.65
	developingThreshold = 0.45
	noviceThreshold     = 0.20
)

// LevelFor derives the level from an accumulated score and attempt count.
// Zero attempts always yields LevelUnknown regardless of score.
func LevelFor(score float64, attempts int) Level {
	if attempts <= 0 {
		return LevelUnknown
	}
	switch {
	case score >= advancedThreshold:
		return LevelAdvanced
	case score >= proficientThreshold:
		return LevelProficient
	case score >= developingThreshold:
		return LevelDeveloping
	case score >= noviceThreshold:
		return LevelNovice
	default:
		return LevelUnknown
	}
}

// Compare returns -1, 0, or 1 ordering l against other.
func (l Level) Compare(other Level) int {
	switch {
	case l < other:
		return -1
	case l > other:
		return 1
	default:
		return 0
	}
}

func (l Level) String() string {
	switch l {
	case LevelNovice:
		return "Novice"
	case LevelDeveloping:
		return "Developing"
	case LevelProficient:
		return "Proficient"
	case LevelAdvanced:
		return "Advanced"
	default:
		return "Unknown"
	}
}

// ParseLevel converts the canonical string form back to a Level.
// Unrecognized names map to LevelUnknown.
func ParseLevel(s string) Level {
	for _, l := range Levels {
		if l.String() == s {
			return l
		}
	}
	return LevelUnknown
}

// MarshalJSON encodes the level as its canonical string.
func (l Level) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

// UnmarshalJSON accepts the canonical string form.
func (l *Level) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("mastery level: %w", err)
	}
	*l = ParseLevel(s)
	return nil
}
