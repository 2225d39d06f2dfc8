package testutil

import (
	"github.com/Veraticus/nestegg/internal/model"
)

// StateBuilder assembles a snapshot starting from the defaults.
//
// Example:
//
//	s := testutil.NewStateBuilder().
//		Unlocked().
//		WithPlanned(model.CategoryTravel, 50000).
//		Build()
type StateBuilder struct {
	state model.AppState
}

// NewStateBuilder starts from model.DefaultState.
func NewStateBuilder() *StateBuilder {
	return &StateBuilder{state: model.DefaultState()}
}

// Unlocked meets the drawdown minimum exactly, which leaves no gate red in the defaults.
func (b *StateBuilder) Unlocked() *StateBuilder {
	b.state.Super.DrawdownAnnual = b.state.Super.SuperBalance * b.state.Super.MinRequiredDrawdownRate
	return b
}

// RedBaseline drops guaranteed income to nothing.
func (b *StateBuilder) RedBaseline() *StateBuilder {
	b.state.Income.GuaranteedIncomeAnnualNet = 0
	return b
}

// RedCash empties the cash bucket.
func (b *StateBuilder) RedCash() *StateBuilder {
	b.state.Cash.CashBalance = 0
	return b
}

// RedDrawdown stops the pension drawdown.
func (b *StateBuilder) RedDrawdown() *StateBuilder {
	b.state.Super.DrawdownAnnual = 0
	return b
}

// RedSpouse marks the spouse check red.
func (b *StateBuilder) RedSpouse() *StateBuilder {
	b.state.Spouse.Confidence = model.TrafficRed
	return b
}

// WithCash sets the cash balance.
func (b *StateBuilder) WithCash(balance float64) *StateBuilder {
	b.state.Cash.CashBalance = balance
	return b
}

// WithCPI sets the year-on-year CPI as a fraction.
func (b *StateBuilder) WithCPI(rate float64) *StateBuilder {
	b.state.Inflation.CPIYoY = rate
	return b
}

// WithPlanned sets one planned discretionary amount.
func (b *StateBuilder) WithPlanned(c model.Category, amount float64) *StateBuilder {
	b.state.Discretionary.Planned = b.state.Discretionary.Planned.With(c, amount)
	return b
}

// WithActual sets one actual discretionary amount.
func (b *StateBuilder) WithActual(c model.Category, amount float64) *StateBuilder {
	b.state.Discretionary.Actual = b.state.Discretionary.Actual.With(c, amount)
	return b
}

// WithRisk sets the three stress-test answers.
func (b *StateBuilder) WithRisk(crash, badRun, runwayImproving model.Traffic) *StateBuilder {
	b.state.Risk = model.Risk{
		BaselineSafeUnderCrash:   crash,
		DiscTolerableUnderBadRun: badRun,
		CashRunwayImproving:      runwayImproving,
	}
	return b
}

// Build returns the snapshot. The builder may be reused.
func (b *StateBuilder) Build() model.AppState {
	return b.state
}
