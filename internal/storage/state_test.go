package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/nestegg/internal/model"
)

func newTestStateStore(t *testing.T) (*StateStore, *MemoryKV, *bytes.Buffer) {
	t.Helper()
	kv := NewMemoryKV()
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return NewStateStore(kv, "", logger), kv, &logs
}

func TestStateStore_LoadMissing(t *testing.T) {
	store, _, _ := newTestStateStore(t)

	_, ok := store.Load(context.Background())

	assert.False(t, ok)
	assert.Equal(t, DefaultKey, store.Key())
}

func TestStateStore_LoadCorrupt(t *testing.T) {
	store, kv, logs := newTestStateStore(t)
	kv.Put(DefaultKey, []byte("{{{"))

	_, ok := store.Load(context.Background())

	assert.False(t, ok)
	assert.Contains(t, logs.String(), "not valid JSON")
}

func TestStateStore_LoadRepairs(t *testing.T) {
	store, kv, logs := newTestStateStore(t)
	kv.Put(DefaultKey, []byte(`{"cash":{"cashBalance":"oops","contingencyAnnual":18000},"spouse":{"confidence":"RED"}}`))

	s, ok := store.Load(context.Background())

	require.True(t, ok)
	def := model.DefaultState()
	assert.Equal(t, def.Cash.CashBalance, s.Cash.CashBalance)
	assert.Equal(t, 18000.0, s.Cash.ContingencyAnnual)
	assert.Equal(t, def.Spouse.Confidence, s.Spouse.Confidence)
	assert.Equal(t, def.Risk, s.Risk)
	assert.Contains(t, logs.String(), "repaired saved state")
}

func TestStateStore_SaveLoadRoundTrip(t *testing.T) {
	store, kv, _ := newTestStateStore(t)
	ctx := context.Background()

	s := model.DefaultState()
	s.Super.DrawdownAnnual = 90000
	s.Discretionary.Actual.Travel = 12345
	s.Verdict.Worked = "cash buffer"

	require.NoError(t, store.Save(ctx, s))
	got, ok := store.Load(ctx)

	require.True(t, ok)
	assert.Equal(t, s, got)
	assert.Equal(t, 1, kv.Writes())
}

func TestStateStore_SaveUsesDocumentKeys(t *testing.T) {
	store, kv, _ := newTestStateStore(t)
	require.NoError(t, store.Save(context.Background(), model.DefaultState()))

	raw, err := kv.Get(context.Background(), DefaultKey)
	require.NoError(t, err)

	var doc map[string]map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, 2060000.0, doc["super"]["superBalance"])
	assert.Equal(t, "phase1", doc["phase"]["current"])
	assert.Contains(t, doc["discretionary"], "planned")
}

func TestStateStore_SaveNonFinite(t *testing.T) {
	store, _, _ := newTestStateStore(t)
	ctx := context.Background()

	s := model.DefaultState()
	s.Cash.CashBalance = math.NaN()

	require.NoError(t, store.Save(ctx, s), "non-finite values are replaced, not rejected")
	got, ok := store.Load(ctx)
	require.True(t, ok)
	assert.Equal(t, model.DefaultState().Cash.CashBalance, got.Cash.CashBalance)
}

func TestStateStore_SaveFailure(t *testing.T) {
	store, kv, _ := newTestStateStore(t)
	kv.FailWrites(true)

	err := store.Save(context.Background(), model.DefaultState())

	assert.ErrorIs(t, err, ErrWriteFailed)
	assert.Equal(t, 0, kv.Writes())
}
