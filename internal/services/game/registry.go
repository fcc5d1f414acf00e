package game

import (
	"fmt"
	"sort"
	"time"

	"github.com/mcoot/kabak/internal/model"
)

// Registry holds every registered player
type Registry struct {
	players map[model.PlayerID]model.Player
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{players: make(map[model.PlayerID]model.Player)}
}

// Register adds a player with score 0. Registering an existing id is a
// no-op that reports ErrAlreadyJoined with the existing record.
func (r *Registry) Register(id model.PlayerID, displayName string, now time.Time) (model.Player, error) {
	if p, ok := r.players[id]; ok {
		return p, model.ErrAlreadyJoined
	}
	p := model.Player{
		ID:          id,
		DisplayName: displayName,
		Score:       0,
		LastActive:  now,
	}
	r.players[id] = p
	return p, nil
}

// IsRegistered reports whether id has joined
func (r *Registry) IsRegistered(id model.PlayerID) bool {
	_, ok := r.players[id]
	return ok
}

// Get returns the player with the given id
func (r *Registry) Get(id model.PlayerID) (model.Player, error) {
	p, ok := r.players[id]
	if !ok {
		return model.Player{}, fmt.Errorf("%w: %s", model.ErrNotRegistered, id)
	}
	return p, nil
}

// Touch updates the last-active timestamp
func (r *Registry) Touch(id model.PlayerID, now time.Time) error {
	p, err := r.Get(id)
	if err != nil {
		return err
	}
	p.LastActive = now
	r.players[id] = p
	return nil
}

// AdjustScore adds delta to the player's score. There is no floor or ceiling.
func (r *Registry) AdjustScore(id model.PlayerID, delta int) error {
	p, err := r.Get(id)
	if err != nil {
		return err
	}
	p.Score += delta
	r.players[id] = p
	return nil
}

// put overwrites an existing player record
func (r *Registry) put(p model.Player) {
	r.players[p.ID] = p
}

// IDs returns all player ids in ascending order
func (r *Registry) IDs() []model.PlayerID {
	ids := make([]model.PlayerID, 0, len(r.players))
	for id := range r.players {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// All returns every player ordered by id
func (r *Registry) All() []model.Player {
	ids := r.IDs()
	out := make([]model.Player, len(ids))
	for i, id := range ids {
		out[i] = r.players[id]
	}
	return out
}

// Len returns the number of registered players
func (r *Registry) Len() int {
	return len(r.players)
}
