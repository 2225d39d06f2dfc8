package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/nestegg/internal/common"
)

func TestFileKV(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "state")
	ctx := context.Background()

	store, err := NewFileKV(dir)
	require.NoError(t, err)

	_, err = store.Get(ctx, DefaultKey)
	assert.ErrorIs(t, err, common.ErrNotFound)

	require.NoError(t, store.Set(ctx, DefaultKey, []byte(`{"cash":{}}`)))
	got, err := store.Get(ctx, DefaultKey)
	require.NoError(t, err)
	assert.Equal(t, `{"cash":{}}`, string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary files are cleaned up")
	assert.Equal(t, DefaultKey+".json", entries[0].Name())
}

func TestFileKV_RejectsPathKeys(t *testing.T) {
	store, err := NewFileKV(t.TempDir())
	require.NoError(t, err)

	err = store.Set(context.Background(), "../escape", []byte("x"))
	assert.Error(t, err)
	_, err = store.Get(context.Background(), "a/b")
	assert.Error(t, err)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	mem, err := Open(ctx, DriverMemory, "")
	require.NoError(t, err)
	assert.IsType(t, &MemoryKV{}, mem)

	file, err := Open(ctx, DriverFile, filepath.Join(t.TempDir(), "nestegg.db"))
	require.NoError(t, err)
	assert.IsType(t, &FileKV{}, file)

	_, err = Open(ctx, "postgres", "")
	assert.ErrorIs(t, err, ErrUnknownDriver)
}
