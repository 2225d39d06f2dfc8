package storage

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/Veraticus/nestegg/internal/service"
)

// Storage drivers.
const (
	DriverSQLite = "sqlite"
	DriverFile   = "file"
	DriverMemory = "memory"
)

// Open returns a ready KVStore for driver. For "sqlite" path is the database file; for "file" the
// records are kept in path's directory. "memory" ignores path.
func Open(ctx context.Context, driver, path string) (service.KVStore, error) {
	switch driver {
	case DriverSQLite, "":
		store, err := NewSQLiteKV(path)
		if err != nil {
			return nil, err
		}
		if err := store.Migrate(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		return store, nil
	case DriverFile:
		dir := path
		if filepath.Ext(path) != "" {
			dir = filepath.Dir(path)
		}
		return NewFileKV(dir)
	case DriverMemory:
		return NewMemoryKV(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
}
