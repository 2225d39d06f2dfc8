// Package testutil provides test fixtures shared across packages: migrated throwaway stores
// and a fluent builder for dashboard snapshots.
package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/nestegg/internal/storage"
)

// SetupTestKV creates an in-memory SQLite store with migrations applied.
// The store is closed when the test ends.
func SetupTestKV(t *testing.T) *storage.SQLiteKV {
	t.Helper()

	kv, err := storage.NewSQLiteKV(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := kv.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		if err := kv.Close(); err != nil {
			t.Errorf("failed to close test database: %v", err)
		}
	})

	return kv
}

// SetupStateStore wraps a fresh test database in a StateStore under the default record key.
// If seed is non-nil it is saved before returning.
func SetupStateStore(t *testing.T, seed *StateBuilder) *storage.StateStore {
	t.Helper()

	store := storage.NewStateStore(SetupTestKV(t), storage.DefaultKey, nil)
	if seed != nil {
		if err := store.Save(context.Background(), seed.Build()); err != nil {
			t.Fatalf("failed to seed state: %v", err)
		}
	}
	return store
}
