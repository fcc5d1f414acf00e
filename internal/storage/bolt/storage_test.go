package bolt

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/kabak/internal/storage"
	"github.com/mcoot/kabak/internal/storage/storagetest"
)

type StorageSuite struct {
	storagetest.Suite
	path string
	bolt *Storage
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.path = filepath.Join(s.T().TempDir(), "kabak.db")
	st, err := Open(s.path)
	s.Require().NoError(err)
	s.bolt = st
	s.Storage = st
	s.Ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.bolt != nil {
		_ = s.bolt.Close()
	}
}

func (s *StorageSuite) TestSnapshotSurvivesReopen() {
	s.Require().NoError(s.bolt.SaveSession(s.Ctx, storagetest.ActiveSnapshot()))
	s.Require().NoError(s.bolt.Close())

	reopened, err := Open(s.path)
	s.Require().NoError(err)
	s.bolt = reopened

	got, err := storage.LoadOrEmpty(s.Ctx, reopened)
	s.Require().NoError(err)
	s.Equal(storagetest.ActiveSnapshot(), got)
}
