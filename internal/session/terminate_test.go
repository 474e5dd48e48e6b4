package session

import (
	"testing"

	"github.com/abhisek/adapt/internal/config"
	"github.com/abhisek/adapt/internal/store"
)

func activeState() *store.SessionState {
	return &store.SessionState{
		Ability:          store.AbilityState{Theta: 0.0, StandardError: 0.9},
		Responses:        make([]store.ResponseRecord, 5),
		RemainingUnitIDs: []string{"u1", "u2"},
		StallCount:       0,
	}
}

func TestShouldTerminate(t *testing.T) {
	cfg := config.Default().Termination

	tests := []struct {
		name   string
		mutate func(*store.SessionState)
		want   bool
	}{
		{"active session continues", func(s *store.SessionState) {}, false},
		{"max items reached", func(s *store.SessionState) {
			s.Responses = make([]store.ResponseRecord, cfg.MaxItems)
		}, true},
		{"one under max items continues", func(s *store.SessionState) {
			s.Responses = make([]store.ResponseRecord, cfg.MaxItems-1)
		}, false},
		{"standard error converged", func(s *store.SessionState) {
			s.Ability.StandardError = 0.3
		}, true},
		{"mastery theta reached", func(s *store.SessionState) {
			s.Ability.Theta = 1.2
		}, true},
		{"stall limit reached", func(s *store.SessionState) {
			s.StallCount = cfg.MaxStallCount
		}, true},
		{"pool exhausted", func(s *store.SessionState) {
			s.RemainingUnitIDs = nil
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := activeState()
			tt.mutate(state)
			if got := shouldTerminate(state, cfg); got != tt.want {
				t.Errorf("shouldTerminate = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShouldTerminate_MaxItemsRegardlessOfConvergence(t *testing.T) {
	cfg := config.Default().Termination

	state := activeState()
	state.Responses = make([]store.ResponseRecord, cfg.MaxItems)
	state.Ability = store.AbilityState{Theta: -2.5, StandardError: 2.0}

	if !shouldTerminate(state, cfg) {
		t.Error("session must end at max items even without convergence")
	}
}
