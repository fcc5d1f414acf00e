package game

import (
	"github.com/mcoot/kabak/internal/model"
	"github.com/mcoot/kabak/internal/services/catalog"
)

// Session is the aggregate root of the game: status, players, turn queue
// and location progress. It is not safe for concurrent use; Controller
// serialises access to it.
type Session struct {
	Status    model.SessionStatus
	Players   *Registry
	Queue     *TurnQueue
	Locations *LocationStore
}

// NewSession creates an empty NotStarted session over the catalog
func NewSession(cat *catalog.Catalog) *Session {
	return SessionFromSnapshot(model.NewSnapshot(), cat)
}

// SessionFromSnapshot rebuilds a session from persisted state
func SessionFromSnapshot(snap *model.Snapshot, cat *catalog.Catalog) *Session {
	snap = snap.Clone()
	snap.Normalize()

	reg := NewRegistry()
	for id, p := range snap.Players {
		p.ID = id
		reg.put(p)
	}
	return &Session{
		Status:    snap.Status,
		Players:   reg,
		Queue:     NewTurnQueue(snap.Queue...),
		Locations: NewLocationStore(cat, snap.Locations),
	}
}

// Snapshot serialises the session's mutable state
func (s *Session) Snapshot() *model.Snapshot {
	snap := model.NewSnapshot()
	snap.Status = s.Status
	for _, p := range s.Players.All() {
		snap.Players[p.ID] = p
	}
	snap.Queue = s.Queue.IDs()
	snap.Locations = s.Locations.States()
	return snap
}

// Clone returns an independent deep copy
func (s *Session) Clone() *Session {
	return SessionFromSnapshot(s.Snapshot(), s.Locations.catalog)
}

// IsActive reports whether the game has begun
func (s *Session) IsActive() bool {
	return s.Status == model.SessionActive
}

// CurrentPlayer returns the turn holder's record
func (s *Session) CurrentPlayer() (model.Player, error) {
	id, err := s.Queue.Current()
	if err != nil {
		return model.Player{}, err
	}
	return s.Players.Get(id)
}
