package model

// SessionStatus represents the lifecycle phase of the global session
type SessionStatus string

const (
	SessionNotStarted SessionStatus = "NotStarted"
	SessionActive     SessionStatus = "Active"
)

// Snapshot is the complete persisted mutable state of the game session.
// The location catalog is not part of it.
type Snapshot struct {
	Status    SessionStatus       `json:"status"`
	Players   map[PlayerID]Player `json:"players"`
	Queue     []PlayerID          `json:"queue"` // head holds the turn
	Locations []LocationState     `json:"locations"`
}

// NewSnapshot returns an empty NotStarted snapshot
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Status:    SessionNotStarted,
		Players:   make(map[PlayerID]Player),
		Queue:     []PlayerID{},
		Locations: []LocationState{},
	}
}

// Normalize replaces nil collections with empty ones so that decoded
// snapshots compare equal to freshly built ones
func (s *Snapshot) Normalize() {
	if s.Status == "" {
		s.Status = SessionNotStarted
	}
	if s.Players == nil {
		s.Players = make(map[PlayerID]Player)
	}
	if s.Queue == nil {
		s.Queue = []PlayerID{}
	}
	if s.Locations == nil {
		s.Locations = []LocationState{}
	}
}

// Clone returns a deep copy of the snapshot
func (s *Snapshot) Clone() *Snapshot {
	out := &Snapshot{
		Status:    s.Status,
		Players:   make(map[PlayerID]Player, len(s.Players)),
		Queue:     make([]PlayerID, len(s.Queue)),
		Locations: make([]LocationState, len(s.Locations)),
	}
	for id, p := range s.Players {
		out.Players[id] = p
	}
	copy(out.Queue, s.Queue)
	for i, ls := range s.Locations {
		if ls.LastAttempt != nil {
			attempt := *ls.LastAttempt
			ls.LastAttempt = &attempt
		}
		out.Locations[i] = ls
	}
	return out
}
