package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/nestegg/internal/model"
)

func TestStateBuilder(t *testing.T) {
	s := NewStateBuilder().
		Unlocked().
		WithCash(100).
		WithCPI(0.05).
		WithPlanned(model.CategoryFlying, 7).
		WithActual(model.CategoryOther, 3).
		Build()

	assert.InDelta(t, 82400.0, s.Super.DrawdownAnnual, 1e-9)
	assert.InDelta(t, 100.0, s.Cash.CashBalance, 1e-9)
	assert.InDelta(t, 0.05, s.Inflation.CPIYoY, 1e-9)
	assert.InDelta(t, 7.0, s.Discretionary.Planned.Flying, 1e-9)
	assert.InDelta(t, 3.0, s.Discretionary.Actual.Other, 1e-9)
	assert.InDelta(t, 40000.0, s.Discretionary.Planned.Travel, 1e-9, "untouched categories keep defaults")
}

func TestSetupStateStore(t *testing.T) {
	store := SetupStateStore(t, NewStateBuilder().RedSpouse())

	s, ok := store.Load(context.Background())
	require.True(t, ok)
	assert.Equal(t, model.TrafficRed, s.Spouse.Confidence)

	empty := SetupStateStore(t, nil)
	_, ok = empty.Load(context.Background())
	assert.False(t, ok)
}
