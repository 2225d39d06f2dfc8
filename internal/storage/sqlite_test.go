package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/nestegg/internal/common"
)

// Helper function to create test storage.
func createTestStorage(t *testing.T) *SQLiteKV {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := NewSQLiteKV(dbPath)
	require.NoError(t, err)

	if err := store.Migrate(context.Background()); err != nil {
		_ = store.Close()
		t.Fatalf("Failed to migrate: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	return store
}

func TestSQLiteKV_GetSet(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)

	require.NoError(t, store.Set(ctx, "k", []byte(`{"a":1}`)))
	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(got))

	require.NoError(t, store.Set(ctx, "k", []byte(`{"a":2}`)))
	got, err = store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `{"a":2}`, string(got), "second write replaces the first")

	var rows int
	require.NoError(t, store.db.QueryRow(`SELECT COUNT(*) FROM kv`).Scan(&rows))
	assert.Equal(t, 1, rows)
}

func TestSQLiteKV_Validation(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	//nolint:staticcheck // testing nil context handling
	_, err := store.Get(nil, "k")
	assert.ErrorIs(t, err, ErrNilContext)

	_, err = store.Get(ctx, "  ")
	assert.ErrorIs(t, err, ErrEmptyString)

	assert.ErrorIs(t, store.Set(ctx, "k", nil), ErrNilParameter)
	assert.ErrorIs(t, store.Set(ctx, "", []byte("x")), ErrEmptyString)

	_, err = NewSQLiteKV("")
	assert.ErrorIs(t, err, ErrEmptyString)
}

func TestSQLiteKV_Migrate(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	var version int
	require.NoError(t, store.db.QueryRow("PRAGMA user_version").Scan(&version))
	assert.Equal(t, ExpectedSchemaVersion, version)

	// Running again is a no-op.
	require.NoError(t, store.Migrate(ctx))

	var triggers int
	require.NoError(t, store.db.QueryRow(`
		SELECT COUNT(*) FROM sqlite_master
		WHERE type='trigger' AND name='update_kv_updated_at'
	`).Scan(&triggers))
	assert.Equal(t, 1, triggers)
}

func TestSQLiteKV_PersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "state.db")
	ctx := context.Background()

	first, err := Open(ctx, DriverSQLite, dbPath)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, DefaultKey, []byte(`{}`)))
	require.NoError(t, first.Close())

	second, err := Open(ctx, DriverSQLite, dbPath)
	require.NoError(t, err)
	defer func() { _ = second.Close() }()

	got, err := second.Get(ctx, DefaultKey)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(got))
}
