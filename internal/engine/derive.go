package engine

import (
	"github.com/Veraticus/nestegg/internal/common"
	"github.com/Veraticus/nestegg/internal/model"
)

// Gate names, in the order they are evaluated for the lock.
const (
	GateBaselineCoverage = "baseline coverage"
	GateCashRunway       = "cash runway"
	GateDrawdown         = "drawdown compliance"
	GateSpouse           = "spouse confidence"
)

// Gate is one input to the composite lock.
type Gate struct {
	Name    string        `json:"name" yaml:"name"`
	Traffic model.Traffic `json:"traffic" yaml:"traffic"`
}

// CategoryLine compares one discretionary category's plan with what was spent.
type CategoryLine struct {
	Category       model.Category `json:"category" yaml:"category"`
	Planned        float64        `json:"planned" yaml:"planned"`
	PlannedIndexed float64        `json:"plannedIndexed" yaml:"plannedIndexed"`
	Actual         float64        `json:"actual" yaml:"actual"`
	// Variance is actual minus indexed plan; positive means overspent.
	Variance float64 `json:"variance" yaml:"variance"`
}

// Derived is everything the dashboard computes from a snapshot.
type Derived struct {
	TrafficBaseline       model.Traffic  `json:"trafficBaseline" yaml:"trafficBaseline"`
	TrafficCash           model.Traffic  `json:"trafficCash" yaml:"trafficCash"`
	TrafficDrawdown       model.Traffic  `json:"trafficDrawdown" yaml:"trafficDrawdown"`
	SpouseConfidence      model.Traffic  `json:"spouseConfidence" yaml:"spouseConfidence"`
	Categories            []CategoryLine `json:"categories" yaml:"categories"`
	Discretionary         Totals         `json:"discretionary" yaml:"discretionary"`
	Drawdown              Drawdown       `json:"drawdown" yaml:"drawdown"`
	BaselineIndexed       float64        `json:"baselineIndexed" yaml:"baselineIndexed"`
	BaselineCoverageRatio float64        `json:"baselineCoverageRatio" yaml:"baselineCoverageRatio"`
	BaselineMargin        float64        `json:"baselineMargin" yaml:"baselineMargin"`
	CashRunwayMonths      float64        `json:"cashRunwayMonths" yaml:"cashRunwayMonths"`
	SlowFlag              bool           `json:"slowFlag" yaml:"slowFlag"`
	Locked                bool           `json:"locked" yaml:"locked"`
}

// Derive recomputes every derived value from s. Nothing is cached between calls.
func Derive(s model.AppState) Derived {
	cpi := s.Inflation.CPIYoY
	baselineIndexed := InflationAdjusted(s.Baseline.BaselineSpendAnnual, cpi)
	ratio := BaselineCoverageRatio(s.Income.GuaranteedIncomeAnnualNet, baselineIndexed)
	runway := CashRunwayMonths(s.Cash.CashBalance, baselineIndexed, s.Cash.ContingencyAnnual)
	drawdown := DrawdownCompliance(
		s.Super.SuperBalance,
		s.Super.DrawdownAnnual,
		s.Super.MinRequiredDrawdownRate,
		s.Super.ExcessDrawdownIntentional,
	)

	d := Derived{
		BaselineIndexed:       baselineIndexed,
		BaselineCoverageRatio: ratio,
		BaselineMargin:        common.SafeNumber(s.Income.GuaranteedIncomeAnnualNet) - baselineIndexed,
		CashRunwayMonths:      runway,
		Drawdown:              drawdown,
		Discretionary:         DiscretionaryTotals(s.Discretionary, cpi),
		Categories:            categoryLines(s.Discretionary, cpi),
		TrafficBaseline:       TrafficForBaselineCoverage(ratio),
		TrafficCash:           TrafficForCashRunway(runway),
		TrafficDrawdown:       TrafficForDrawdown(drawdown),
		SpouseConfidence:      s.Spouse.Confidence,
		SlowFlag:              DiscretionarySlowFlag(s.Risk),
	}
	d.Locked = Locked(d.TrafficBaseline, d.TrafficCash, d.TrafficDrawdown, d.SpouseConfidence)
	return d
}

// Gates lists the four lock inputs.
func (d Derived) Gates() []Gate {
	return []Gate{
		{Name: GateBaselineCoverage, Traffic: d.TrafficBaseline},
		{Name: GateCashRunway, Traffic: d.TrafficCash},
		{Name: GateDrawdown, Traffic: d.TrafficDrawdown},
		{Name: GateSpouse, Traffic: d.SpouseConfidence},
	}
}

// RedGates returns the names of the gates currently holding the lock.
func (d Derived) RedGates() []string {
	var names []string
	for _, g := range d.Gates() {
		if g.Traffic == model.TrafficRed {
			names = append(names, g.Name)
		}
	}
	return names
}

func categoryLines(disc model.Discretionary, cpi float64) []CategoryLine {
	lines := make([]CategoryLine, 0, len(model.Categories))
	for _, c := range model.Categories {
		planned := common.SafeNumber(disc.Planned.Get(c))
		indexed := InflationAdjusted(planned, cpi)
		actual := common.SafeNumber(disc.Actual.Get(c))
		lines = append(lines, CategoryLine{
			Category:       c,
			Planned:        planned,
			PlannedIndexed: indexed,
			Actual:         actual,
			Variance:       actual - indexed,
		})
	}
	return lines
}
