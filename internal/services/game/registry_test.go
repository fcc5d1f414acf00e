package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/kabak/internal/model"
)

func TestRegistry_Register(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	r := NewRegistry()

	p, err := r.Register("alice", "Alice", now)
	require.NoError(t, err)
	assert.Equal(t, model.Player{ID: "alice", DisplayName: "Alice", Score: 0, LastActive: now}, p)
	assert.True(t, r.IsRegistered("alice"))

	again, err := r.Register("alice", "Other", now.Add(time.Hour))
	assert.ErrorIs(t, err, model.ErrAlreadyJoined)
	assert.Equal(t, p, again)
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_GetUnknown(t *testing.T) {
	r := NewRegistry()

	_, err := r.Get("ghost")
	assert.ErrorIs(t, err, model.ErrNotRegistered)
	assert.ErrorIs(t, r.Touch("ghost", time.Now()), model.ErrNotRegistered)
	assert.ErrorIs(t, r.AdjustScore("ghost", 1), model.ErrNotRegistered)
}

func TestRegistry_AdjustScoreHasNoFloor(t *testing.T) {
	r := NewRegistry()
	_, _ = r.Register("alice", "Alice", time.Now())

	require.NoError(t, r.AdjustScore("alice", -7))
	require.NoError(t, r.AdjustScore("alice", 2))

	p, _ := r.Get("alice")
	assert.Equal(t, -5, p.Score)
}

func TestRegistry_TouchAndOrdering(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	r := NewRegistry()
	_, _ = r.Register("carol", "Carol", start)
	_, _ = r.Register("alice", "Alice", start)

	require.NoError(t, r.Touch("carol", start.Add(time.Minute)))
	p, _ := r.Get("carol")
	assert.Equal(t, start.Add(time.Minute), p.LastActive)

	assert.Equal(t, []model.PlayerID{"alice", "carol"}, r.IDs())
}
