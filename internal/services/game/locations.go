package game

import (
	"fmt"
	"time"

	"github.com/mcoot/kabak/internal/model"
	"github.com/mcoot/kabak/internal/services/catalog"
	"github.com/mcoot/kabak/internal/services/dictionary"
	"github.com/mcoot/kabak/internal/services/scoring"
)

// AttemptResult is what an accepted attempt produced
type AttemptResult struct {
	Matches []model.LetterMatch
	Points  int
	Solved  bool
}

// LocationStore joins the immutable catalog with the mutable per-location state
type LocationStore struct {
	catalog *catalog.Catalog
	states  []model.LocationState
	index   map[model.LocationID]int
}

// NewLocationStore creates a store over the catalog with the given persisted states
func NewLocationStore(cat *catalog.Catalog, states []model.LocationState) *LocationStore {
	ls := &LocationStore{
		catalog: cat,
		states:  make([]model.LocationState, 0, len(states)),
		index:   make(map[model.LocationID]int, len(states)),
	}
	for _, st := range states {
		if st.LastAttempt != nil {
			attempt := *st.LastAttempt
			st.LastAttempt = &attempt
		}
		ls.put(st)
	}
	return ls
}

func (ls *LocationStore) put(st model.LocationState) {
	if i, ok := ls.index[st.ID]; ok {
		ls.states[i] = st
		return
	}
	ls.index[st.ID] = len(ls.states)
	ls.states = append(ls.states, st)
}

// Catalog returns the configured locations in order
func (ls *LocationStore) Catalog() []model.Location {
	return ls.catalog.Locations()
}

// Location returns the catalog entry for id
func (ls *LocationStore) Location(id model.LocationID) (model.Location, error) {
	return ls.catalog.Get(id)
}

// Initialize adds a fresh state for every catalog entry that has none.
// Existing progress is kept.
func (ls *LocationStore) Initialize() {
	for _, loc := range ls.catalog.Locations() {
		if _, ok := ls.index[loc.ID]; !ok {
			ls.put(model.LocationState{ID: loc.ID})
		}
	}
}

// StateOf returns the current state of a catalog location. A location with
// no recorded state yet is reported open with no attempts.
func (ls *LocationStore) StateOf(id model.LocationID) (model.LocationState, error) {
	if _, err := ls.catalog.Get(id); err != nil {
		return model.LocationState{}, err
	}
	i, ok := ls.index[id]
	if !ok {
		return model.LocationState{ID: id}, nil
	}
	st := ls.states[i]
	if st.LastAttempt != nil {
		attempt := *st.LastAttempt
		st.LastAttempt = &attempt
	}
	return st, nil
}

// CheckAttempt reports whether guess would be accepted at the location
func (ls *LocationStore) CheckAttempt(id model.LocationID, guess string) error {
	st, err := ls.StateOf(id)
	if err != nil {
		return err
	}
	if st.Closed {
		return fmt.Errorf("%w: %d", model.ErrLocationClosed, id)
	}
	if st.LastAttempt != nil && dictionary.Normalize(st.LastAttempt.Word) == dictionary.Normalize(guess) {
		return fmt.Errorf("%w: %s", model.ErrDuplicateGuess, dictionary.Normalize(guess))
	}
	return nil
}

// RecordAttempt evaluates guess against the location's secret, stores it as
// the last attempt and closes the location when solved
func (ls *LocationStore) RecordAttempt(id model.LocationID, player model.Player, guess string, now time.Time) (*AttemptResult, error) {
	if err := ls.CheckAttempt(id, guess); err != nil {
		return nil, err
	}
	loc, err := ls.catalog.Get(id)
	if err != nil {
		return nil, err
	}

	matches := scoring.Compare(guess, loc.SecretWord)
	st, _ := ls.StateOf(id)
	st.LastAttempt = &model.AttemptRecord{
		PlayerID:    player.ID,
		DisplayName: player.DisplayName,
		Time:        now,
		Word:        guess,
	}
	solved := scoring.IsSolved(matches)
	if solved {
		st.Closed = true
	}
	ls.put(st)

	return &AttemptResult{
		Matches: matches,
		Points:  scoring.Score(matches),
		Solved:  solved,
	}, nil
}

// States returns a deep copy of every recorded state in store order
func (ls *LocationStore) States() []model.LocationState {
	out := make([]model.LocationState, len(ls.states))
	for i, st := range ls.states {
		if st.LastAttempt != nil {
			attempt := *st.LastAttempt
			st.LastAttempt = &attempt
		}
		out[i] = st
	}
	return out
}
