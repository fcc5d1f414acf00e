package storage

import (
	"context"
	"errors"

	"github.com/mcoot/kabak/internal/model"
)

// Storage persists the game session snapshot. Each save replaces the previous
// snapshot as a whole; readers never observe a partially written one.
type Storage interface {
	SaveSession(ctx context.Context, snap *model.Snapshot) error
	// LoadSession returns model.ErrSessionNotFound when nothing has been saved
	LoadSession(ctx context.Context) (*model.Snapshot, error)
	// DeleteSession removes the snapshot; deleting a missing snapshot is not an error
	DeleteSession(ctx context.Context) error
}

// LoadOrEmpty returns the stored snapshot, or a fresh NotStarted one if none exists
func LoadOrEmpty(ctx context.Context, s Storage) (*model.Snapshot, error) {
	snap, err := s.LoadSession(ctx)
	if errors.Is(err, model.ErrSessionNotFound) {
		return model.NewSnapshot(), nil
	}
	if err != nil {
		return nil, err
	}
	snap.Normalize()
	return snap, nil
}
