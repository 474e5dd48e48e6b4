// Package schedule derives spaced-repetition review intervals from mastery
// level and answer outcome. Intervals expand on success and reset hard on
// failure, so a unit can cycle out of and back into the active pool over
// the learner's lifetime.
package schedule

import (
	"math"
	"time"

	"github.com/abhisek/adapt/internal/mastery"
)

// NextInterval computes the review interval in days after a graded answer.
//
// Incorrect answers reset to at most the incorrect cap. Correct answers take
// the larger of the level's base interval and the grown previous interval
// (growth only applies when a previous interval exists). The result is
// always clamped to [MinIntervalDays, MaxIntervalDays].
func NextInterval(level mastery.Level, previousDays float64, correct bool, cfg Config) float64 {
	base := cfg.BaseDays(level)

	var interval float64
	if !correct {
		interval = math.Min(base, cfg.IncorrectCapDays)
	} else if previousDays > 0 {
		interval = math.Max(base, previousDays*cfg.GrowthFactor)
	} else {
		interval = base
	}

	return math.Max(cfg.MinIntervalDays, math.Min(cfg.MaxIntervalDays, interval))
}

// Reschedule stamps the entry with its next review interval and timestamp,
// returning the updated copy. Call after mastery.Entry.RecordAnswer so the
// level reflects the answer being scheduled.
func Reschedule(e mastery.Entry, correct bool, assessedAt time.Time, cfg Config) mastery.Entry {
	previous := e.IntervalDays
	interval := NextInterval(e.Level, previous, correct, cfg)

	e.IntervalDays = interval
	e.NextReviewAt = assessedAt.UTC().
		Add(time.Duration(interval * 24 * float64(time.Hour))).
		Format(time.RFC3339)
	return e
}
