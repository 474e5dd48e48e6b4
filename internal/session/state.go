package session

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/adapt/internal/catalog"
	"github.com/abhisek/adapt/internal/config"
	"github.com/abhisek/adapt/internal/mastery"
	"github.com/abhisek/adapt/internal/store"
)

// initializeState creates a fresh session over the full catalog: prior
// ability, every unit remaining, a lazy-but-complete mastery map, and
// rank-derived item difficulties.
func initializeState(units []catalog.Unit, cfg config.Config, now time.Time) *store.SessionState {
	stamp := now.UTC().Format(time.RFC3339)

	remaining := make([]string, 0, len(units))
	entries := make(map[string]mastery.Entry, len(units))
	for _, u := range units {
		remaining = append(remaining, u.ID)
		entries[u.ID] = mastery.NewEntry()
	}

	return &store.SessionState{
		SessionID: uuid.NewString(),
		CreatedAt: stamp,
		UpdatedAt: stamp,
		Ability: store.AbilityState{
			Theta:         cfg.Ability.InitialTheta,
			StandardError: cfg.Ability.InitialStandardError,
		},
		Responses:        []store.ResponseRecord{},
		RemainingUnitIDs: remaining,
		ActiveUnitID:     nil,
		UnitDifficulties: catalog.Difficulties(units),
		Mastery:          entries,
		StallCount:       0,
	}
}

// injectDueReviews returns the remaining pool extended with every known
// unit whose scheduled review has elapsed, mastered or not. Order is
// preserved; due units are appended in sorted ID order, without
// duplication, so the pool is identical across runs.
func injectDueReviews(
	unitsByID map[string]catalog.Unit,
	remaining []string,
	entries map[string]mastery.Entry,
	now time.Time,
) []string {
	present := make(map[string]bool, len(remaining))
	for _, id := range remaining {
		present[id] = true
	}

	var due []string
	for id, entry := range entries {
		if present[id] {
			continue
		}
		if _, known := unitsByID[id]; !known {
			continue
		}
		if entry.Due(now) {
			due = append(due, id)
			present[id] = true
		}
	}
	sort.Strings(due)

	return append(remaining, due...)
}

// evaluateAnswer grades a response. An explicit isCorrect flag wins;
// otherwise the answer text is correct when it mentions any of the unit's
// key points (case-insensitive substring match).
func evaluateAnswer(unit catalog.Unit, req *Request) bool {
	if req.IsCorrect != nil {
		return *req.IsCorrect
	}

	answer := strings.ToLower(strings.TrimSpace(req.RawAnswer()))
	if answer == "" {
		return false
	}
	for _, keyPoint := range unit.KeyPoints {
		kp := strings.ToLower(strings.TrimSpace(keyPoint))
		if kp != "" && strings.Contains(answer, kp) {
			return true
		}
	}
	return false
}

// removeUnit drops id from the pool, preserving order.
func removeUnit(pool []string, id string) []string {
	result := pool[:0]
	for _, existing := range pool {
		if existing != id {
			result = append(result, existing)
		}
	}
	return result
}

// masteryLevelCounts tallies units per level, always reporting all tiers.
func masteryLevelCounts(entries map[string]mastery.Entry) map[string]int {
	counts := make(map[string]int, len(mastery.Levels))
	for _, l := range mastery.Levels {
		counts[l.String()] = 0
	}
	for _, e := range entries {
		counts[e.Level.String()]++
	}
	return counts
}

// masteryScores collects the raw scores for trajectory blending.
func masteryScores(entries map[string]mastery.Entry) []float64 {
	scores := make([]float64, 0, len(entries))
	for _, e := range entries {
		scores = append(scores, e.Score)
	}
	return scores
}
