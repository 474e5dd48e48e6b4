package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/adapt/internal/mastery"
)

func testState() *SessionState {
	active := "u2"
	return &SessionState{
		SessionID: "sess-1",
		CreatedAt: "2026-02-02T12:00:00Z",
		UpdatedAt: "2026-02-02T12:05:00Z",
		Ability:   AbilityState{Theta: -1.2, StandardError: 0.8},
		Responses: []ResponseRecord{
			{
				UnitID:       "u1",
				IsCorrect:    true,
				Answer:       "half-life",
				Timestamp:    "2026-02-02T12:05:00Z",
				AbilityAfter: AbilityState{Theta: -1.2, StandardError: 0.8},
			},
		},
		RemainingUnitIDs: []string{"u2", "u3"},
		ActiveUnitID:     &active,
		UnitDifficulties: map[string]float64{"u1": -1, "u2": 0, "u3": 1},
		Mastery: map[string]mastery.Entry{
			"u1": {Score: 0.2, Level: mastery.LevelNovice, Attempts: 1, Correct: 1,
				LastAssessed: "2026-02-02T12:05:00Z", IntervalDays: 1, NextReviewAt: "2026-02-03T12:05:00Z"},
		},
		StallCount: 1,
	}
}

func TestFileRepo_SaveLoadRoundTrip(t *testing.T) {
	repo, err := NewFileRepo(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	state := testState()
	require.NoError(t, repo.Save(ctx, state))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, state, loaded)
}

func TestFileRepo_LoadMissing(t *testing.T) {
	repo, err := NewFileRepo(t.TempDir())
	require.NoError(t, err)

	loaded, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestFileRepo_LoadCorruptTreatedAsAbsent(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewFileRepo(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, SessionFile), []byte("{truncated"), 0o644))

	loaded, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestFileRepo_SaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewFileRepo(dir)
	require.NoError(t, err)

	require.NoError(t, repo.Save(context.Background(), testState()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, SessionFile, entries[0].Name())
}

func TestFileRepo_WithLockReleasesOnError(t *testing.T) {
	repo, err := NewFileRepo(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	boom := errors.New("boom")
	err = repo.WithLock(ctx, func(ctx context.Context) error { return boom })
	assert.ErrorIs(t, err, boom)

	// The lock must be free again.
	err = repo.WithLock(ctx, func(ctx context.Context) error { return nil })
	assert.NoError(t, err)
}

func TestFileRepo_WithLockTimesOutWhenHeld(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewFileRepo(dir)
	require.NoError(t, err)

	// Simulate another process holding the lock.
	lockPath := filepath.Join(dir, SessionFile+".lock")
	require.NoError(t, os.WriteFile(lockPath, nil, 0o644))

	start := time.Now()
	err = repo.WithLock(context.Background(), func(ctx context.Context) error {
		t.Fatal("fn must not run while lock is held")
		return nil
	})

	var lockErr *ErrLockTimeout
	require.ErrorAs(t, err, &lockErr)
	assert.GreaterOrEqual(t, time.Since(start), LockTimeout)
}

func TestFileRepo_StudentStateRoundTrip(t *testing.T) {
	repo, err := NewFileRepo(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	now := time.Date(2026, 2, 2, 12, 0, 0, 0, time.UTC)
	export := BuildStudentState(testState(), now)
	require.NoError(t, repo.SaveStudentState(ctx, export))

	loaded, err := repo.LoadStudentState(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, export, loaded)
}

func TestFileRepo_SaveStudentStateReusesExistingFile(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewFileRepo(dir)
	require.NoError(t, err)
	ctx := context.Background()

	now := time.Now()
	require.NoError(t, repo.SaveStudentState(ctx, BuildStudentState(testState(), now)))
	require.NoError(t, repo.SaveStudentState(ctx, BuildStudentState(testState(), now)))

	matches, err := filepath.Glob(filepath.Join(dir, StudentStatePrefix+"-*.json"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestFileRepo_LoadStudentStateCorrupt(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewFileRepo(dir)
	require.NoError(t, err)

	path := filepath.Join(dir, StudentStatePrefix+"-2026.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	loaded, err := repo.LoadStudentState(context.Background())
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestBuildStudentState_SortedFlatList(t *testing.T) {
	state := testState()
	state.Mastery["u0"] = mastery.Entry{Score: 0.4, Level: mastery.LevelNovice, Attempts: 2, Correct: 1}

	export := BuildStudentState(state, time.Now())
	require.Len(t, export.KnowledgeMasteries, 2)
	assert.Equal(t, "u0", export.KnowledgeMasteries[0].DomainNodeID)
	assert.Equal(t, "u1", export.KnowledgeMasteries[1].DomainNodeID)
	assert.Equal(t, state.Ability, export.Ability)
}
