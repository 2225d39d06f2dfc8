package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTraffic(t *testing.T) {
	for _, tr := range Traffics {
		assert.True(t, tr.Valid(), tr)
	}
	assert.False(t, Traffic("Green").Valid())
	assert.False(t, Traffic("").Valid())

	assert.Less(t, TrafficGreen.Severity(), TrafficAmber.Severity())
	assert.Less(t, TrafficAmber.Severity(), TrafficRed.Severity())

	assert.False(t, TrafficGreen.AtLeastAmber())
	assert.True(t, TrafficAmber.AtLeastAmber())
	assert.True(t, TrafficRed.AtLeastAmber())
	assert.False(t, Traffic("purple").AtLeastAmber())
}

func TestEnumsRejectNearMisses(t *testing.T) {
	assert.False(t, Phase("Phase1").Valid())
	assert.False(t, VarianceType("Drift").Valid())
	assert.False(t, Signal("UP").Valid())
	assert.False(t, LongHaulTravel("energizing").Valid())
	assert.False(t, FlyingOutlook("worthit").Valid())
	assert.False(t, ComplexityTolerance(" low").Valid())
	assert.False(t, Category("food").Valid())
}

func TestPhaseLabel(t *testing.T) {
	assert.Equal(t, "Phase-1 Active", Phase1.Label())
	assert.Equal(t, "Phase-2 Step-down", Phase2.Label())
	assert.Equal(t, "Phase-3 Home-centred", Phase3.Label())
}

func TestCategoryAmounts(t *testing.T) {
	a := CategoryAmounts{Travel: 1, Flying: 2, Other: 3}

	for _, c := range Categories {
		assert.True(t, c.Valid())
	}
	assert.Equal(t, 2.0, a.Get(CategoryFlying))
	assert.Equal(t, 0.0, a.Get("food"))

	b := a.With(CategoryOther, 9)
	assert.Equal(t, 9.0, b.Other)
	assert.Equal(t, 3.0, a.Other, "With returns a copy")
	assert.Equal(t, a, a.With("food", 100))
}

func TestDefaultState(t *testing.T) {
	s := DefaultState()

	assert.Equal(t, 75000.0, s.Baseline.BaselineSpendAnnual)
	assert.Equal(t, 92000.0, s.Income.GuaranteedIncomeAnnualNet)
	assert.Equal(t, 660000.0, s.Cash.CashBalance)
	assert.Equal(t, 15000.0, s.Cash.ContingencyAnnual)
	assert.Equal(t, 2060000.0, s.Super.SuperBalance)
	assert.Equal(t, 0.04, s.Super.MinRequiredDrawdownRate)
	assert.True(t, s.Super.ExcessDrawdownIntentional)
	assert.Equal(t, CategoryAmounts{Travel: 40000, Flying: 30000, Other: 20000}, s.Discretionary.Planned)
	assert.Equal(t, CategoryAmounts{}, s.Discretionary.Actual)
	assert.Equal(t, Phase1, s.Phase.Current)
	assert.Equal(t, 0.03, s.Inflation.CPIYoY)
	assert.Equal(t, TrafficGreen, s.Spouse.Confidence)

	s.Cash.CashBalance = 1
	assert.Equal(t, 660000.0, DefaultState().Cash.CashBalance, "each call returns a fresh value")
}
