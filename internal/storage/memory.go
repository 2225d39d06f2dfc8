package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Veraticus/nestegg/internal/common"
)

// ErrWriteFailed is returned by MemoryKV.Set while writes are set to fail.
var ErrWriteFailed = errors.New("write failed")

// MemoryKV is an in-process KVStore, used for tests and for the "memory" driver.
type MemoryKV struct {
	data       map[string][]byte
	writes     int
	mu         sync.Mutex
	failWrites bool
}

// NewMemoryKV returns an empty store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string][]byte)}
}

// Get returns a copy of the stored value.
func (m *MemoryKV) Get(ctx context.Context, key string) ([]byte, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.data[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", common.ErrNotFound, key)
	}
	return append([]byte(nil), v...), nil
}

// Set stores a copy of value.
func (m *MemoryKV) Set(ctx context.Context, key string, value []byte) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(key, "key"); err != nil {
		return err
	}
	if err := validateValue(value); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failWrites {
		return ErrWriteFailed
	}
	m.data[key] = append([]byte(nil), value...)
	m.writes++
	return nil
}

// Put stores raw bytes without validation, for seeding corrupt records in tests.
func (m *MemoryKV) Put(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
}

// FailWrites makes subsequent Set calls fail (or succeed again).
func (m *MemoryKV) FailWrites(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failWrites = fail
}

// Writes reports how many Set calls succeeded.
func (m *MemoryKV) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

// Close is a no-op.
func (m *MemoryKV) Close() error {
	return nil
}
