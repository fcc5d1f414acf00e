package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/kabak/internal/model"
)

func TestTurnQueue_EmptyQueue(t *testing.T) {
	q := NewTurnQueue()

	assert.True(t, q.IsEmpty())
	_, err := q.Current()
	assert.ErrorIs(t, err, model.ErrEmptyQueue)
	assert.False(t, q.IsCurrent("alice"))

	q.Advance()
	assert.True(t, q.IsEmpty())
}

func TestTurnQueue_AdvanceRotatesLeft(t *testing.T) {
	q := NewTurnQueue("a", "b", "c")

	q.Advance()
	assert.Equal(t, []model.PlayerID{"b", "c", "a"}, q.IDs())

	cur, err := q.Current()
	require.NoError(t, err)
	assert.Equal(t, model.PlayerID("b"), cur)
}

func TestTurnQueue_FullCycleRestoresOrder(t *testing.T) {
	for n := 1; n <= 6; n++ {
		ids := make([]model.PlayerID, n)
		for i := range ids {
			ids[i] = model.PlayerID(rune('a' + i))
		}
		q := NewTurnQueue(ids...)
		for i := 0; i < n; i++ {
			q.Advance()
		}
		assert.Equal(t, ids, q.IDs(), "n=%d", n)
	}
}

func TestTurnQueue_SeedCopiesInput(t *testing.T) {
	ids := []model.PlayerID{"a", "b"}
	q := NewTurnQueue()
	q.Seed(ids)
	ids[0] = "z"

	assert.Equal(t, []model.PlayerID{"a", "b"}, q.IDs())
	assert.True(t, q.Contains("a"))
	assert.False(t, q.Contains("z"))
}

func TestTurnQueue_AppendSkipsMembers(t *testing.T) {
	q := NewTurnQueue("a")
	q.Append("b")
	q.Append("a")

	assert.Equal(t, []model.PlayerID{"a", "b"}, q.IDs())
	assert.Equal(t, 2, q.Len())
}
