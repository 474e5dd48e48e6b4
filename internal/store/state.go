package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/abhisek/adapt/internal/mastery"
)

// AbilityState is the flattened ability estimate carried in session state.
type AbilityState struct {
	Theta         float64 `json:"theta"`
	StandardError float64 `json:"standardError"`
}

// ResponseRecord is one graded answer in the append-only response log.
type ResponseRecord struct {
	UnitID       string       `json:"unitId"`
	IsCorrect    bool         `json:"isCorrect"`
	Answer       string       `json:"answer"`
	Timestamp    string       `json:"timestamp"`
	AbilityAfter AbilityState `json:"abilityAfter"`
}

// SessionState is the unit of persistence: the full live session for one
// data directory. Exactly one exists per directory.
type SessionState struct {
	SessionID        string                   `json:"sessionId"`
	CreatedAt        string                   `json:"createdAt"`
	UpdatedAt        string                   `json:"updatedAt"`
	Ability          AbilityState             `json:"ability"`
	Responses        []ResponseRecord         `json:"responses"`
	RemainingUnitIDs []string                 `json:"remainingUnitIds"`
	ActiveUnitID     *string                  `json:"activeUnitId"`
	UnitDifficulties map[string]float64       `json:"unitDifficulties"`
	Mastery          map[string]mastery.Entry `json:"mastery"`
	StallCount       int                      `json:"stallCount"`
}

// Load reads the session state file. A missing file, or one that cannot be
// parsed, is treated as no prior session: the engine reinitializes rather
// than propagating the failure.
func (r *FileRepo) Load(_ context.Context) (*SessionState, error) {
	data, err := os.ReadFile(r.statePath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read session state: %w", err)
	}

	var state SessionState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, nil
	}
	return &state, nil
}

// Save writes the session state with the atomic write sequence.
func (r *FileRepo) Save(_ context.Context, state *SessionState) error {
	if err := writeJSONAtomic(r.statePath(), state); err != nil {
		return fmt.Errorf("save session state: %w", err)
	}
	return nil
}

// writeJSONAtomic writes v as indented JSON through a temp file in the same
// directory, fsyncs it, then renames over the target. A crash mid-write
// leaves the previous file intact.
func writeJSONAtomic(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}
