package session

import (
	"testing"
	"time"

	"github.com/abhisek/adapt/internal/catalog"
	"github.com/abhisek/adapt/internal/config"
	"github.com/abhisek/adapt/internal/mastery"
)

func selectionUnits() map[string]catalog.Unit {
	return map[string]catalog.Unit{
		"u1": {ID: "u1", Topic: "Alpha"},
		"u2": {ID: "u2", Topic: "Beta"},
		"u3": {ID: "u3", Topic: "Gamma"},
	}
}

func TestSelectNextUnit_DueAlwaysOutranksNotDue(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	cfg := config.Default().Selection

	// u1 is due but nearly mastered (tiny mastery gap, low priority);
	// u2 is not due with a huge gap. Due must still win.
	entries := map[string]mastery.Entry{
		"u1": {Score: 0.84, Attempts: 5, NextReviewAt: "2026-02-01T00:00:00Z"},
		"u2": {Score: 0.0, Attempts: 1, NextReviewAt: "2026-04-01T00:00:00Z"},
	}
	difficulties := map[string]float64{"u1": 1.0, "u2": 0.0}

	got := selectNextUnit(selectionUnits(), []string{"u1", "u2"}, entries, difficulties, 0.0, now, cfg)
	if got == nil || got.ID != "u1" {
		t.Fatalf("selected %v, want due unit u1", got)
	}
}

func TestSelectNextUnit_HigherPriorityWinsAmongNotDue(t *testing.T) {
	now := time.Now()
	cfg := config.Default().Selection

	// Same difficulty, so priority reduces to the mastery gap.
	entries := map[string]mastery.Entry{
		"u1": {Score: 0.8, Attempts: 4},
		"u2": {Score: 0.1, Attempts: 1},
	}
	difficulties := map[string]float64{"u1": 0.0, "u2": 0.0}

	got := selectNextUnit(selectionUnits(), []string{"u1", "u2"}, entries, difficulties, 0.0, now, cfg)
	if got == nil || got.ID != "u2" {
		t.Fatalf("selected %v, want larger-gap unit u2", got)
	}
}

func TestSelectNextUnit_TieBreaksOnLastAssessed(t *testing.T) {
	now := time.Now()
	cfg := config.Default().Selection

	entries := map[string]mastery.Entry{
		"u1": {Score: 0.4, Attempts: 2, LastAssessed: "2026-01-01T00:00:00Z"},
		"u2": {Score: 0.4, Attempts: 2, LastAssessed: "2026-02-01T00:00:00Z"},
	}
	difficulties := map[string]float64{"u1": 0.5, "u2": 0.5}

	got := selectNextUnit(selectionUnits(), []string{"u1", "u2"}, entries, difficulties, 0.0, now, cfg)
	if got == nil || got.ID != "u2" {
		t.Fatalf("selected %v, want u2 (greater lastAssessed on tie)", got)
	}
}

func TestSelectNextUnit_SkipsUnknownUnits(t *testing.T) {
	got := selectNextUnit(selectionUnits(), []string{"ghost"}, nil, nil, 0.0, time.Now(), config.Default().Selection)
	if got != nil {
		t.Fatalf("selected %v, want nil for unknown-only pool", got)
	}
}

func TestSelectNextUnit_EmptyPool(t *testing.T) {
	got := selectNextUnit(selectionUnits(), nil, nil, nil, 0.0, time.Now(), config.Default().Selection)
	if got != nil {
		t.Fatalf("selected %v, want nil", got)
	}
}
