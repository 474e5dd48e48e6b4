package schedule

import (
	"math"
	"testing"
	"time"

	"github.com/abhisek/adapt/internal/mastery"
)

func TestNextInterval(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name     string
		level    mastery.Level
		previous float64
		correct  bool
		want     float64
	}{
		{"developing correct, base wins over growth", mastery.LevelDeveloping, 1.0, true, 3.0},
		{"developing incorrect resets", mastery.LevelDeveloping, 1.0, false, 0.5},
		{"correct without prior interval uses base", mastery.LevelNovice, 0, true, 1.0},
		{"growth wins once prior exceeds base", mastery.LevelDeveloping, 2.0, true, 3.6},
		{"unknown incorrect stays at base", mastery.LevelUnknown, 0, false, 0.25},
		{"advanced correct grows from prior", mastery.LevelAdvanced, 14.0, true, 25.2},
		{"growth capped at max", mastery.LevelAdvanced, 50.0, true, 60.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextInterval(tt.level, tt.previous, tt.correct, cfg)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("NextInterval = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNextInterval_AlwaysWithinBounds(t *testing.T) {
	cfg := DefaultConfig()
	for _, level := range mastery.Levels {
		for _, previous := range []float64{0, 0.1, 1, 30, 60, 200} {
			for _, correct := range []bool{true, false} {
				got := NextInterval(level, previous, correct, cfg)
				if got < cfg.MinIntervalDays || got > cfg.MaxIntervalDays {
					t.Errorf("NextInterval(%v, %v, %v) = %v, outside [%v, %v]",
						level, previous, correct, got, cfg.MinIntervalDays, cfg.MaxIntervalDays)
				}
			}
		}
	}
}

func TestReschedule_StampsNextReview(t *testing.T) {
	cfg := DefaultConfig()
	assessedAt := time.Date(2026, 2, 2, 12, 0, 0, 0, time.UTC)

	e := mastery.Entry{
		Score:        0.4,
		Level:        mastery.LevelDeveloping,
		Attempts:     2,
		Correct:      1,
		IntervalDays: 1.0,
	}
	updated := Reschedule(e, true, assessedAt, cfg)

	if updated.IntervalDays != 3.0 {
		t.Errorf("IntervalDays = %v, want 3.0", updated.IntervalDays)
	}

	next, err := time.Parse(time.RFC3339, updated.NextReviewAt)
	if err != nil {
		t.Fatalf("parse NextReviewAt %q: %v", updated.NextReviewAt, err)
	}
	if !next.After(assessedAt) {
		t.Errorf("NextReviewAt %v not after assessment %v", next, assessedAt)
	}
	want := assessedAt.Add(3 * 24 * time.Hour)
	if !next.Equal(want) {
		t.Errorf("NextReviewAt = %v, want %v", next, want)
	}
}

func TestReschedule_IncorrectShortensReview(t *testing.T) {
	cfg := DefaultConfig()
	assessedAt := time.Date(2026, 2, 2, 12, 0, 0, 0, time.UTC)

	e := mastery.Entry{Level: mastery.LevelDeveloping, IntervalDays: 7.0}
	updated := Reschedule(e, false, assessedAt, cfg)

	if updated.IntervalDays != 0.5 {
		t.Errorf("IntervalDays = %v, want 0.5", updated.IntervalDays)
	}
	next, err := time.Parse(time.RFC3339, updated.NextReviewAt)
	if err != nil {
		t.Fatalf("parse NextReviewAt: %v", err)
	}
	if got := next.Sub(assessedAt); got != 12*time.Hour {
		t.Errorf("review delay = %v, want 12h", got)
	}
}
