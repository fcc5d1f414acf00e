package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/kabak/internal/model"
	"github.com/mcoot/kabak/internal/storage/storagetest"
)

type StorageSuite struct {
	storagetest.Suite
	mini  *miniredis.Miniredis
	redis *Storage
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.KeyPrefix = "test"

	s.redis = NewWithClient(client, cfg)
	s.Storage = s.redis
	s.Ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.redis != nil {
		_ = s.redis.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) TestSnapshotStoredUnderPrefixedKey() {
	s.Require().NoError(s.redis.SaveSession(s.Ctx, storagetest.ActiveSnapshot()))

	s.True(s.mini.Exists("test:session"))
	s.False(s.mini.Exists("test:session:lock"), "lock must be released after save")
}

func (s *StorageSuite) TestSaveFailsWhileLockHeld() {
	s.Require().NoError(s.mini.Set("test:session:lock", "someone-else"))

	ctx, cancel := context.WithCancel(s.Ctx)
	cancel()
	s.Error(s.redis.SaveSession(ctx, model.NewSnapshot()))
	s.False(s.mini.Exists("test:session"))
}

func (s *StorageSuite) TestCorruptValueIsAnError() {
	s.Require().NoError(s.mini.Set("test:session", "{broken"))

	_, err := s.redis.LoadSession(s.Ctx)
	s.Error(err)
	s.NotErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestLoadAfterServerDown() {
	s.mini.Close()
	_, err := s.redis.LoadSession(s.Ctx)
	s.Error(err)
	s.mini = nil
}
