package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	boltstorage "github.com/mcoot/kabak/internal/storage/bolt"
)

func TestRunRejectsMissingAdmin(t *testing.T) {
	t.Setenv("ADMIN_ID", "")
	t.Setenv("LOG_LEVEL", "error")

	assert.Equal(t, 1, run())
}

func TestRunClosesAppOnServerError(t *testing.T) {
	boltPath := filepath.Join(t.TempDir(), "kabak.db")
	t.Setenv("ADMIN_ID", "admin")
	t.Setenv("KABAK_ADDR", "127.0.0.1:99999")
	t.Setenv("STORAGE_TYPE", "bolt")
	t.Setenv("BOLT_PATH", boltPath)
	t.Setenv("LOCATIONS_PATH", filepath.Join("..", "..", "data", "locations.json"))
	t.Setenv("DICTIONARY_PATH", filepath.Join("..", "..", "data", "words.txt"))
	t.Setenv("LOG_LEVEL", "error")

	assert.Equal(t, 1, run())

	// bbolt holds a file lock until closed; reopening proves run released it
	store, err := boltstorage.Open(boltPath)
	require.NoError(t, err)
	assert.NoError(t, store.Close())
}
