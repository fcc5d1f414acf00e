package bolt

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bbolt "go.etcd.io/bbolt"

	"github.com/mcoot/kabak/internal/model"
	"github.com/mcoot/kabak/internal/storage"
)

var (
	bucketSession = []byte("session")
	keySnapshot   = []byte("snapshot")
)

// Storage keeps the snapshot in an embedded bbolt database. A save is one
// read-write transaction, so a crash leaves either the old or the new value.
type Storage struct {
	db *bbolt.DB
}

// Open opens or creates a bbolt database file and ensures the bucket exists
func Open(path string) (*Storage, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("bolt: create directory: %w", err)
		}
	}
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("bolt: open %s: %w", path, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketSession)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("bolt: create bucket: %w", err)
	}

	return &Storage{db: db}, nil
}

// Close closes the underlying database
func (s *Storage) Close() error {
	return s.db.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) SaveSession(ctx context.Context, snap *model.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("bolt: encode snapshot: %w", err)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketSession).Put(keySnapshot, data)
	})
}

func (s *Storage) LoadSession(ctx context.Context) (*model.Snapshot, error) {
	var snap *model.Snapshot
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketSession).Get(keySnapshot)
		if data == nil {
			return model.ErrSessionNotFound
		}
		// data is only valid for the life of the transaction
		var decoded model.Snapshot
		if err := json.Unmarshal(data, &decoded); err != nil {
			return fmt.Errorf("bolt: decode snapshot: %w", err)
		}
		snap = &decoded
		return nil
	})
	if err != nil {
		return nil, err
	}
	snap.Normalize()
	return snap, nil
}

func (s *Storage) DeleteSession(ctx context.Context) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketSession).Delete(keySnapshot)
	})
}
