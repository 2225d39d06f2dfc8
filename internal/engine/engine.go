// Package engine derives the dashboard's ratios, runways and traffic lights from a state snapshot.
//
// Every function here is pure: it reads its arguments, never modifies them, and guards each numeric
// input with common.SafeNumber so malformed values never surface as NaN or Inf.
package engine

import (
	"math"

	"github.com/Veraticus/nestegg/internal/common"
	"github.com/Veraticus/nestegg/internal/model"
)

// Thresholds for the traffic classifications.
const (
	CoverageGreen     = 1.20
	CoverageAmber     = 1.00
	RunwayGreenMonths = 36.0
	RunwayAmberMonths = 18.0
	DrawdownTolerance = 1e-6
	SlowFlagThreshold = 2
)

// Drawdown is the result of checking the pension drawdown against the legislated minimum.
type Drawdown struct {
	MinRequiredAmount float64 `json:"minRequiredAmount" yaml:"minRequiredAmount"`
	MinMet            bool    `json:"minMet" yaml:"minMet"`
	// ExcessIntentional is copied from the input for display; it never affects traffic.
	ExcessIntentional bool `json:"excessIntentional" yaml:"excessIntentional"`
}

// Totals sums discretionary spend across categories.
type Totals struct {
	TotalPlanned        float64 `json:"totalPlanned" yaml:"totalPlanned"`
	TotalActual         float64 `json:"totalActual" yaml:"totalActual"`
	TotalPlannedIndexed float64 `json:"totalPlannedIndexed" yaml:"totalPlannedIndexed"`
}

// InflationAdjusted indexes amount by one year of CPI.
func InflationAdjusted(amount, cpiYoY float64) float64 {
	return common.SafeNumber(amount) * (1 + common.SafeNumber(cpiYoY))
}

// BaselineCoverageRatio is how many times guaranteed income covers indexed baseline spend.
// The denominator is floored at 1.
func BaselineCoverageRatio(guaranteedIncome, baselineIndexed float64) float64 {
	denom := math.Max(1, common.SafeNumber(baselineIndexed))
	return common.SafeNumber(guaranteedIncome) / denom
}

// CashRunwayMonths is how many months cash funds indexed baseline plus contingency.
func CashRunwayMonths(cashBalance, baselineIndexed, contingencyAnnual float64) float64 {
	annualNeed := math.Max(1, common.SafeNumber(baselineIndexed)+common.SafeNumber(contingencyAnnual))
	return common.SafeNumber(cashBalance) / annualNeed * 12
}

// DrawdownCompliance checks the annual drawdown against balance × minimum rate.
func DrawdownCompliance(superBalance, drawdownAnnual, minRequiredRate float64, excessIntentional bool) Drawdown {
	minRequired := math.Max(0, common.SafeNumber(superBalance)) * math.Max(0, common.SafeNumber(minRequiredRate))
	return Drawdown{
		MinRequiredAmount: minRequired,
		MinMet:            common.SafeNumber(drawdownAnnual) >= minRequired-DrawdownTolerance,
		ExcessIntentional: excessIntentional,
	}
}

// DiscretionaryTotals sums planned and actual spend and indexes the planned total by cpiYoY,
// the same rate used for the baseline.
func DiscretionaryTotals(disc model.Discretionary, cpiYoY float64) Totals {
	planned := sumCategories(disc.Planned)
	return Totals{
		TotalPlanned:        planned,
		TotalActual:         sumCategories(disc.Actual),
		TotalPlannedIndexed: InflationAdjusted(planned, cpiYoY),
	}
}

func sumCategories(a model.CategoryAmounts) float64 {
	var total float64
	for _, c := range model.Categories {
		total += common.SafeNumber(a.Get(c))
	}
	return total
}

// TrafficForBaselineCoverage classifies a coverage ratio. Boundaries are inclusive.
func TrafficForBaselineCoverage(ratio float64) model.Traffic {
	switch {
	case ratio >= CoverageGreen:
		return model.TrafficGreen
	case ratio >= CoverageAmber:
		return model.TrafficAmber
	default:
		return model.TrafficRed
	}
}

// TrafficForCashRunway classifies a runway in months. Boundaries are inclusive.
func TrafficForCashRunway(months float64) model.Traffic {
	switch {
	case months >= RunwayGreenMonths:
		return model.TrafficGreen
	case months >= RunwayAmberMonths:
		return model.TrafficAmber
	default:
		return model.TrafficRed
	}
}

// TrafficForDrawdown is green when the minimum is met and red otherwise. There is no amber.
func TrafficForDrawdown(d Drawdown) model.Traffic {
	if d.MinMet {
		return model.TrafficGreen
	}
	return model.TrafficRed
}

// DiscretionarySlowFlag is on when at least two of the three risk answers are amber or red.
func DiscretionarySlowFlag(risk model.Risk) bool {
	count := 0
	for _, v := range []model.Traffic{risk.BaselineSafeUnderCrash, risk.DiscTolerableUnderBadRun, risk.CashRunwayImproving} {
		if v.AtLeastAmber() {
			count++
		}
	}
	return count >= SlowFlagThreshold
}

// Locked reports whether any gate is red. A single red vetoes discretionary expansion.
func Locked(gates ...model.Traffic) bool {
	for _, g := range gates {
		if g == model.TrafficRed {
			return true
		}
	}
	return false
}
