// Package service defines the interfaces between the dashboard and its collaborators.
package service

import (
	"context"

	"github.com/Veraticus/nestegg/internal/model"
)

// KVStore is a byte store addressed by key.
// Get returns common.ErrNotFound when the key has never been written.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// StateStore loads and saves the single dashboard snapshot.
type StateStore interface {
	// Load returns the saved snapshot, repaired to the current schema.
	// ok is false when nothing usable is saved; that is not an error.
	Load(ctx context.Context) (state model.AppState, ok bool)
	// Save persists the snapshot. Callers may ignore the error: persistence is best effort.
	Save(ctx context.Context, state model.AppState) error
}
