package session

import (
	"github.com/abhisek/adapt/internal/config"
	"github.com/abhisek/adapt/internal/store"
)

// shouldTerminate decides whether the session is complete. Evaluated after
// a graded response, against the post-removal remaining pool (due-review
// reinjection happens at the start of the next turn, so an emptied pool
// ends the session even if reviews will come due later).
func shouldTerminate(state *store.SessionState, cfg config.TerminationConfig) bool {
	if len(state.Responses) >= cfg.MaxItems {
		return true
	}
	if state.Ability.StandardError <= cfg.TargetStandardError {
		return true
	}
	if state.Ability.Theta >= cfg.MasteryTheta {
		return true
	}
	if state.StallCount >= cfg.MaxStallCount {
		return true
	}
	if len(state.RemainingUnitIDs) == 0 {
		return true
	}
	return false
}
