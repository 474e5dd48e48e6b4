package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/abhisek/adapt/internal/mastery"
)

// StudentStatePrefix names the derived mastery export files.
const StudentStatePrefix = "student-state"

// MasteryExport is one unit's mastery entry flattened for external
// summarization tools.
type MasteryExport struct {
	DomainNodeID string        `json:"domainNodeId"`
	Level        mastery.Level `json:"level"`
	LastAssessed string        `json:"lastAssessed"`
	Score        float64       `json:"score"`
	Attempts     int           `json:"attempts"`
	Correct      int           `json:"correct"`
	IntervalDays float64       `json:"intervalDays"`
	NextReviewAt string        `json:"nextReviewAt"`
}

// StudentState mirrors the session's mastery map as a flat list. It is a
// derived artifact: the session state file stays authoritative.
type StudentState struct {
	SessionID          string          `json:"sessionId"`
	UpdatedAt          string          `json:"updatedAt"`
	Ability            AbilityState    `json:"ability"`
	KnowledgeMasteries []MasteryExport `json:"knowledgeMasteries"`
}

// BuildStudentState flattens a session's mastery map into the export form,
// sorted by unit ID for stable output.
func BuildStudentState(state *SessionState, now time.Time) *StudentState {
	export := &StudentState{
		SessionID: state.SessionID,
		UpdatedAt: now.UTC().Format(time.RFC3339),
		Ability:   state.Ability,
	}

	ids := make([]string, 0, len(state.Mastery))
	for id := range state.Mastery {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		e := state.Mastery[id]
		export.KnowledgeMasteries = append(export.KnowledgeMasteries, MasteryExport{
			DomainNodeID: id,
			Level:        e.Level,
			LastAssessed: e.LastAssessed,
			Score:        e.Score,
			Attempts:     e.Attempts,
			Correct:      e.Correct,
			IntervalDays: e.IntervalDays,
			NextReviewAt: e.NextReviewAt,
		})
	}
	return export
}

// SaveStudentState writes the export, reusing the newest existing export
// file when one is present so external readers keep a stable path.
func (r *FileRepo) SaveStudentState(_ context.Context, export *StudentState) error {
	path := r.newestStudentStatePath()
	if path == "" {
		ts := strings.NewReplacer(":", "-", ".", "-").Replace(time.Now().UTC().Format(time.RFC3339))
		path = filepath.Join(r.dir, fmt.Sprintf("%s-%s.json", StudentStatePrefix, ts))
	}
	if err := writeJSONAtomic(path, export); err != nil {
		return fmt.Errorf("save student state: %w", err)
	}
	return nil
}

// LoadStudentState reads the newest export. Missing or corrupt files are
// treated as no prior data.
func (r *FileRepo) LoadStudentState(_ context.Context) (*StudentState, error) {
	path := r.newestStudentStatePath()
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil
	}
	var export StudentState
	if err := json.Unmarshal(data, &export); err != nil {
		return nil, nil
	}
	return &export, nil
}

// newestStudentStatePath returns the most recently modified export file,
// or "" when none exists.
func (r *FileRepo) newestStudentStatePath() string {
	matches, err := filepath.Glob(filepath.Join(r.dir, StudentStatePrefix+"-*.json"))
	if err != nil || len(matches) == 0 {
		return ""
	}

	sort.Slice(matches, func(i, j int) bool {
		fi, errI := os.Stat(matches[i])
		fj, errJ := os.Stat(matches[j])
		if errI != nil || errJ != nil {
			return matches[i] < matches[j]
		}
		return fi.ModTime().Before(fj.ModTime())
	})
	return matches[len(matches)-1]
}
