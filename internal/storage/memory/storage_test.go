package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/kabak/internal/storage/storagetest"
)

type StorageSuite struct {
	storagetest.Suite
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.Storage = New()
	s.Ctx = context.Background()
}

func (s *StorageSuite) TestLoadReturnsCopy() {
	s.Require().NoError(s.Storage.SaveSession(s.Ctx, storagetest.ActiveSnapshot()))

	first, err := s.Storage.LoadSession(s.Ctx)
	s.Require().NoError(err)
	first.Players["alice"] = first.Players["bob"]

	second, err := s.Storage.LoadSession(s.Ctx)
	s.Require().NoError(err)
	s.Equal("Alice", second.Players["alice"].DisplayName)
}
