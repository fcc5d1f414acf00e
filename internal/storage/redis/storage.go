package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"

	"github.com/mcoot/kabak/internal/model"
	"github.com/mcoot/kabak/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface. The
// snapshot lives under a single key; writers serialise through a redsync
// mutex so that two engine processes sharing one Redis cannot interleave.
type Storage struct {
	client *redis.Client
	locker *redsync.Redsync
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return NewWithClient(client, cfg), nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = DefaultConfig().KeyPrefix
	}
	if cfg.LockExpiry <= 0 {
		cfg.LockExpiry = DefaultConfig().LockExpiry
	}
	return &Storage{
		client: client,
		locker: redsync.New(goredis.NewPool(client)),
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) withLock(ctx context.Context, fn func() error) error {
	mutex := s.locker.NewMutex(sessionLockKey(s.cfg.KeyPrefix), redsync.WithExpiry(s.cfg.LockExpiry))
	if err := mutex.LockContext(ctx); err != nil {
		return fmt.Errorf("acquire session lock: %w", err)
	}
	defer func() {
		_, _ = mutex.UnlockContext(ctx)
	}()
	return fn()
}

func (s *Storage) SaveSession(ctx context.Context, snap *model.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return s.withLock(ctx, func() error {
		return s.client.Set(ctx, sessionKey(s.cfg.KeyPrefix), data, 0).Err()
	})
}

func (s *Storage) LoadSession(ctx context.Context) (*model.Snapshot, error) {
	data, err := s.client.Get(ctx, sessionKey(s.cfg.KeyPrefix)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSessionNotFound
		}
		return nil, err
	}

	var snap model.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	snap.Normalize()
	return &snap, nil
}

func (s *Storage) DeleteSession(ctx context.Context) error {
	return s.withLock(ctx, func() error {
		return s.client.Del(ctx, sessionKey(s.cfg.KeyPrefix)).Err()
	})
}
