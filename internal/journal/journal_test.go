package journal

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func TestJournal_EmptyStats(t *testing.T) {
	j := openTestJournal(t)

	s, err := j.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, s.TotalAnswers)
	assert.Equal(t, 0, s.CorrectAnswers)
	assert.Equal(t, 0.0, s.Accuracy)
}

func TestJournal_AppendAndStats(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	events := []AnswerEvent{
		{SessionID: "s1", UnitID: "u1", IsCorrect: true, ThetaAfter: -1.0, StandardError: 0.9},
		{SessionID: "s1", UnitID: "u1", IsCorrect: false, ThetaAfter: -1.2, StandardError: 0.9},
		{SessionID: "s1", UnitID: "u2", IsCorrect: true, ThetaAfter: -0.9, StandardError: 0.8},
	}
	for _, ev := range events {
		require.NoError(t, j.AppendAnswer(ctx, ev))
	}

	s, err := j.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, s.TotalAnswers)
	assert.Equal(t, 2, s.CorrectAnswers)
	assert.InDelta(t, 2.0/3.0, s.Accuracy, 1e-9)
	assert.NotEmpty(t, s.LastAnswerAt)
}

func TestJournal_UnitAccuracy(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	require.NoError(t, j.AppendAnswer(ctx, AnswerEvent{SessionID: "s1", UnitID: "u1", IsCorrect: true}))
	require.NoError(t, j.AppendAnswer(ctx, AnswerEvent{SessionID: "s1", UnitID: "u1", IsCorrect: false}))

	acc, count, err := j.UnitAccuracy(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.InDelta(t, 0.5, acc, 1e-9)

	acc, count, err = j.UnitAccuracy(ctx, "never-seen")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Equal(t, 0.0, acc)
}

func TestJournal_RecentAnswersNewestFirst(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	for _, unit := range []string{"u1", "u2", "u3"} {
		require.NoError(t, j.AppendAnswer(ctx, AnswerEvent{SessionID: "s1", UnitID: unit, IsCorrect: true}))
	}

	recent, err := j.RecentAnswers(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "u3", recent[0].UnitID)
	assert.Equal(t, "u2", recent[1].UnitID)
}
