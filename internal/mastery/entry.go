package mastery

import (
	"math"
	"time"
)

// Entry accumulates mastery bookkeeping for a single knowledge unit.
// Entries are value types: RecordAnswer returns an updated copy.
//
// Timestamps are RFC 3339 UTC strings, the wire form of the session state;
// an empty LastAssessed means the unit has never been assessed.
type Entry struct {
	Score        float64 `json:"score"`
	Level        Level   `json:"level"`
	Attempts     int     `json:"attempts"`
	Correct      int     `json:"correct"`
	LastAssessed string  `json:"lastAssessed"`
	IntervalDays float64 `json:"intervalDays"`
	NextReviewAt string  `json:"nextReviewAt"`
}

// NewEntry returns a fresh entry for a unit that has never been assessed.
func NewEntry() Entry {
	return Entry{Level: LevelUnknown}
}

// RecordAnswer applies one graded response to the entry and returns the
// updated copy. The level is re-derived from the new score and attempt
// count; review scheduling is applied separately.
func (e Entry) RecordAnswer(correct bool, cfg Config, assessedAt time.Time) Entry {
	e.Attempts++
	if correct {
		e.Correct++
		e.Score += cfg.CorrectDelta
	} else {
		e.Score -= cfg.IncorrectDelta
	}
	e.Score = math.Max(0.0, math.Min(1.0, e.Score))
	e.Level = LevelFor(e.Score, e.Attempts)
	e.LastAssessed = assessedAt.UTC().Format(time.RFC3339)
	return e
}

// Mastered reports whether the unit has crossed the mastery threshold.
func (e Entry) Mastered(cfg Config) bool {
	return e.Score >= cfg.MasteredScore
}

// Due reports whether the unit's scheduled review time has elapsed.
// Entries with no schedule, or an unparseable one, are never due.
func (e Entry) Due(now time.Time) bool {
	if e.NextReviewAt == "" {
		return false
	}
	at, err := time.Parse(time.RFC3339, e.NextReviewAt)
	if err != nil {
		return false
	}
	return !at.After(now)
}

// Accuracy returns the correct/attempts ratio, or 0 with no attempts.
func (e Entry) Accuracy() float64 {
	if e.Attempts == 0 {
		return 0.0
	}
	return float64(e.Correct) / float64(e.Attempts)
}
