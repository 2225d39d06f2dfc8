package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Veraticus/nestegg/internal/common"
	"github.com/Veraticus/nestegg/internal/migrate"
	"github.com/Veraticus/nestegg/internal/model"
	"github.com/Veraticus/nestegg/internal/service"
)

// DefaultKey is the fixed record name for the dashboard snapshot.
const DefaultKey = "retirement_dashboard_state_v1"

// StateStore persists the dashboard snapshot as one JSON record in a KVStore.
type StateStore struct {
	kv     service.KVStore
	logger *slog.Logger
	key    string
}

// NewStateStore wraps kv. An empty key means DefaultKey; a nil logger means slog.Default().
func NewStateStore(kv service.KVStore, key string, logger *slog.Logger) *StateStore {
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &StateStore{kv: kv, key: key, logger: logger}
}

// Key returns the record name.
func (s *StateStore) Key() string {
	return s.key
}

// Load reads the record and repairs it to the current schema.
// A missing record, a read failure and undecodable bytes all report ok=false.
func (s *StateStore) Load(ctx context.Context) (model.AppState, bool) {
	data, err := s.kv.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			s.logger.Warn("failed to read saved state", "key", s.key, "error", err)
		}
		return model.AppState{}, false
	}

	state, repaired, ok := migrate.Repair(data)
	if !ok {
		s.logger.Warn("saved state is not valid JSON; ignoring it", "key", s.key, "bytes", len(data))
		return model.AppState{}, false
	}
	if len(repaired) > 0 {
		s.logger.Debug("repaired saved state", "key", s.key, "paths", repaired)
	}
	return state, true
}

// Save encodes state and writes it under the record key.
func (s *StateStore) Save(ctx context.Context, state model.AppState) error {
	data, err := json.Marshal(migrate.Sanitize(state))
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	if err := s.kv.Set(ctx, s.key, data); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	return nil
}

var _ service.StateStore = (*StateStore)(nil)
