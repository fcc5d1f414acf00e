// Package storagetest holds the behaviour every storage backend must share
package storagetest

import (
	"context"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/kabak/internal/model"
	"github.com/mcoot/kabak/internal/storage"
)

// Suite runs round-trip checks against the backend returned by NewStorage.
// Backends embed it and set NewStorage in SetupTest.
type Suite struct {
	suite.Suite
	Storage storage.Storage
	Ctx     context.Context
}

// ActiveSnapshot builds a populated snapshot covering every field
func ActiveSnapshot() *model.Snapshot {
	at := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	snap := model.NewSnapshot()
	snap.Status = model.SessionActive
	snap.Players["alice"] = model.Player{ID: "alice", DisplayName: "Alice", Score: 35, LastActive: at}
	snap.Players["bob"] = model.Player{ID: "bob", DisplayName: "Боб", Score: -4, LastActive: at.Add(time.Hour)}
	snap.Queue = []model.PlayerID{"bob", "alice"}
	snap.Locations = []model.LocationState{
		{ID: 1, Closed: true, LastAttempt: &model.AttemptRecord{PlayerID: "alice", DisplayName: "Alice", Time: at, Word: "КАБАК"}},
		{ID: 2},
	}
	return snap
}

func (s *Suite) TestLoadWithoutSaveReturnsNotFound() {
	_, err := s.Storage.LoadSession(s.Ctx)
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *Suite) TestLoadOrEmptyWithoutSave() {
	snap, err := storage.LoadOrEmpty(s.Ctx, s.Storage)
	s.Require().NoError(err)
	s.Equal(model.NewSnapshot(), snap)
}

func (s *Suite) TestRoundTripEmptySnapshot() {
	s.Require().NoError(s.Storage.SaveSession(s.Ctx, model.NewSnapshot()))

	snap, err := storage.LoadOrEmpty(s.Ctx, s.Storage)
	s.Require().NoError(err)
	s.Equal(model.NewSnapshot(), snap)
}

func (s *Suite) TestRoundTripActiveSnapshot() {
	want := ActiveSnapshot()
	s.Require().NoError(s.Storage.SaveSession(s.Ctx, want))

	got, err := storage.LoadOrEmpty(s.Ctx, s.Storage)
	s.Require().NoError(err)
	s.Equal(want, got)
}

func (s *Suite) TestSaveReplacesPrevious() {
	s.Require().NoError(s.Storage.SaveSession(s.Ctx, ActiveSnapshot()))

	next := model.NewSnapshot()
	next.Players["carol"] = model.Player{ID: "carol", DisplayName: "Carol", LastActive: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	s.Require().NoError(s.Storage.SaveSession(s.Ctx, next))

	got, err := storage.LoadOrEmpty(s.Ctx, s.Storage)
	s.Require().NoError(err)
	s.Equal(next, got)
}

func (s *Suite) TestDelete() {
	s.Require().NoError(s.Storage.SaveSession(s.Ctx, ActiveSnapshot()))
	s.Require().NoError(s.Storage.DeleteSession(s.Ctx))

	_, err := s.Storage.LoadSession(s.Ctx)
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *Suite) TestDeleteMissingIsNoop() {
	s.NoError(s.Storage.DeleteSession(s.Ctx))
}

func (s *Suite) TestSavedSnapshotIsDetached() {
	snap := ActiveSnapshot()
	s.Require().NoError(s.Storage.SaveSession(s.Ctx, snap))

	snap.Queue[0] = "mallory"
	snap.Locations[0].LastAttempt.Word = "ХХХХХ"

	got, err := s.Storage.LoadSession(s.Ctx)
	s.Require().NoError(err)
	s.Equal(ActiveSnapshot(), got)
}
