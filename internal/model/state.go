// Package model defines the dashboard state snapshot and its closed value sets.
package model

// Traffic is the three-valued status used by every gate on the dashboard.
type Traffic string

const (
	// TrafficGreen means the metric is at or above target.
	TrafficGreen Traffic = "green"
	// TrafficAmber means the metric is acceptable but below target.
	TrafficAmber Traffic = "amber"
	// TrafficRed means the metric has failed its gate.
	TrafficRed Traffic = "red"
)

// Traffics lists the traffic values from least to most severe.
var Traffics = []Traffic{TrafficGreen, TrafficAmber, TrafficRed}

// Valid reports whether t is one of the three traffic values.
func (t Traffic) Valid() bool {
	switch t {
	case TrafficGreen, TrafficAmber, TrafficRed:
		return true
	}
	return false
}

// Severity orders traffic values: green < amber < red. Unknown values rank as red.
func (t Traffic) Severity() int {
	switch t {
	case TrafficGreen:
		return 0
	case TrafficAmber:
		return 1
	default:
		return 2
	}
}

// AtLeastAmber reports whether t is amber or red.
func (t Traffic) AtLeastAmber() bool {
	return t == TrafficAmber || t == TrafficRed
}

// Phase is the household's current spending phase.
type Phase string

// Spending phases.
const (
	Phase1 Phase = "phase1"
	Phase2 Phase = "phase2"
	Phase3 Phase = "phase3"
)

// Phases lists every phase in order.
var Phases = []Phase{Phase1, Phase2, Phase3}

// Valid reports whether p is a known phase.
func (p Phase) Valid() bool {
	return p == Phase1 || p == Phase2 || p == Phase3
}

// Label returns the display name of the phase.
func (p Phase) Label() string {
	switch p {
	case Phase1:
		return "Phase-1 Active"
	case Phase2:
		return "Phase-2 Step-down"
	case Phase3:
		return "Phase-3 Home-centred"
	}
	return string(p)
}

// VarianceType classifies the gap between planned and actual discretionary spend.
type VarianceType string

// Variance classifications.
const (
	VarianceIntentional VarianceType = "intentional"
	VarianceDrift       VarianceType = "drift"
)

// VarianceTypes lists every variance classification.
var VarianceTypes = []VarianceType{VarianceIntentional, VarianceDrift}

// Valid reports whether v is a known variance classification.
func (v VarianceType) Valid() bool {
	return v == VarianceIntentional || v == VarianceDrift
}

// Signal is the direction of a real (inflation adjusted) spending trend.
type Signal string

// Real spending directions.
const (
	SignalUp   Signal = "up"
	SignalFlat Signal = "flat"
	SignalDown Signal = "down"
)

// Signals lists every signal direction.
var Signals = []Signal{SignalUp, SignalFlat, SignalDown}

// Valid reports whether s is a known signal.
func (s Signal) Valid() bool {
	return s == SignalUp || s == SignalFlat || s == SignalDown
}

// LongHaulTravel is the self-rated appetite for long-haul travel.
type LongHaulTravel string

// Long-haul travel ratings.
const (
	LongHaulEnergising LongHaulTravel = "energising"
	LongHaulNeutral    LongHaulTravel = "neutral"
	LongHaulTaxing     LongHaulTravel = "taxing"
)

// LongHaulTravels lists every long-haul rating.
var LongHaulTravels = []LongHaulTravel{LongHaulEnergising, LongHaulNeutral, LongHaulTaxing}

// Valid reports whether l is a known rating.
func (l LongHaulTravel) Valid() bool {
	return l == LongHaulEnergising || l == LongHaulNeutral || l == LongHaulTaxing
}

// FlyingOutlook is the self-rated value of continuing to fly.
type FlyingOutlook string

// Flying outlooks.
const (
	FlyingWorthIt  FlyingOutlook = "worthIt"
	FlyingMarginal FlyingOutlook = "marginal"
	FlyingSunset   FlyingOutlook = "sunset"
)

// FlyingOutlooks lists every flying outlook.
var FlyingOutlooks = []FlyingOutlook{FlyingWorthIt, FlyingMarginal, FlyingSunset}

// Valid reports whether f is a known outlook.
func (f FlyingOutlook) Valid() bool {
	return f == FlyingWorthIt || f == FlyingMarginal || f == FlyingSunset
}

// ComplexityTolerance is the self-rated tolerance for financial admin.
type ComplexityTolerance string

// Complexity tolerances.
const (
	ComplexityHigh   ComplexityTolerance = "high"
	ComplexityMedium ComplexityTolerance = "medium"
	ComplexityLow    ComplexityTolerance = "low"
)

// ComplexityTolerances lists every tolerance.
var ComplexityTolerances = []ComplexityTolerance{ComplexityHigh, ComplexityMedium, ComplexityLow}

// Valid reports whether c is a known tolerance.
func (c ComplexityTolerance) Valid() bool {
	return c == ComplexityHigh || c == ComplexityMedium || c == ComplexityLow
}

// Category is a discretionary spending bucket.
type Category string

// Discretionary categories.
const (
	CategoryTravel Category = "travel"
	CategoryFlying Category = "flying"
	CategoryOther  Category = "other"
)

// Categories lists the discretionary categories in display order.
var Categories = []Category{CategoryTravel, CategoryFlying, CategoryOther}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	return c == CategoryTravel || c == CategoryFlying || c == CategoryOther
}

// Label returns the display name of the category.
func (c Category) Label() string {
	switch c {
	case CategoryTravel:
		return "Travel"
	case CategoryFlying:
		return "Flying"
	case CategoryOther:
		return "Other"
	}
	return string(c)
}

// CategoryAmounts holds one amount per discretionary category.
type CategoryAmounts struct {
	Travel float64 `json:"travel" yaml:"travel"`
	Flying float64 `json:"flying" yaml:"flying"`
	Other  float64 `json:"other" yaml:"other"`
}

// Get returns the amount for c, or 0 for an unknown category.
func (a CategoryAmounts) Get(c Category) float64 {
	switch c {
	case CategoryTravel:
		return a.Travel
	case CategoryFlying:
		return a.Flying
	case CategoryOther:
		return a.Other
	}
	return 0
}

// With returns a copy of a with c set to v. Unknown categories leave a unchanged.
func (a CategoryAmounts) With(c Category, v float64) CategoryAmounts {
	switch c {
	case CategoryTravel:
		a.Travel = v
	case CategoryFlying:
		a.Flying = v
	case CategoryOther:
		a.Other = v
	}
	return a
}

// Baseline is essential annual spend.
type Baseline struct {
	BaselineSpendAnnual float64 `json:"baselineSpendAnnual" yaml:"baselineSpendAnnual"`
}

// Income is guaranteed (pension, annuity) income.
type Income struct {
	GuaranteedIncomeAnnualNet float64 `json:"guaranteedIncomeAnnualNet" yaml:"guaranteedIncomeAnnualNet"`
}

// Cash is the liquid reserve and the contingency it must fund.
type Cash struct {
	CashBalance       float64 `json:"cashBalance" yaml:"cashBalance"`
	ContingencyAnnual float64 `json:"contingencyAnnual" yaml:"contingencyAnnual"`
}

// Super is the pension account and its drawdown.
type Super struct {
	SuperBalance              float64 `json:"superBalance" yaml:"superBalance"`
	DrawdownAnnual            float64 `json:"drawdownAnnual" yaml:"drawdownAnnual"`
	MinRequiredDrawdownRate   float64 `json:"minRequiredDrawdownRate" yaml:"minRequiredDrawdownRate"`
	ExcessDrawdownIntentional bool    `json:"excessDrawdownIntentional" yaml:"excessDrawdownIntentional"`
}

// Discretionary is planned versus actual lifestyle spending.
type Discretionary struct {
	VarianceType VarianceType    `json:"varianceType" yaml:"varianceType"`
	Planned      CategoryAmounts `json:"planned" yaml:"planned"`
	Actual       CategoryAmounts `json:"actual" yaml:"actual"`
}

// PhaseInfo is where the household sits in its spending life cycle.
type PhaseInfo struct {
	Current           Phase   `json:"current" yaml:"current"`
	NextTrigger       string  `json:"nextTrigger" yaml:"nextTrigger"`
	YearsRemainingMin float64 `json:"yearsRemainingMin" yaml:"yearsRemainingMin"`
	YearsRemainingMax float64 `json:"yearsRemainingMax" yaml:"yearsRemainingMax"`
}

// Inflation holds the CPI rate used for indexing and the real trend signals.
type Inflation struct {
	RealBaselineSignal      Signal  `json:"realBaselineSignal" yaml:"realBaselineSignal"`
	RealDiscretionarySignal Signal  `json:"realDiscretionarySignal" yaml:"realDiscretionarySignal"`
	CPIYoY                  float64 `json:"cpiYoY" yaml:"cpiYoY"`
}

// Risk holds the three self-assessed stress tests.
type Risk struct {
	BaselineSafeUnderCrash   Traffic `json:"baselineSafeUnderCrash" yaml:"baselineSafeUnderCrash"`
	DiscTolerableUnderBadRun Traffic `json:"discTolerableUnderBadRun" yaml:"discTolerableUnderBadRun"`
	CashRunwayImproving      Traffic `json:"cashRunwayImproving" yaml:"cashRunwayImproving"`
}

// Capability holds self-assessed capability signals.
type Capability struct {
	LongHaulTravel      LongHaulTravel      `json:"longHaulTravel" yaml:"longHaulTravel"`
	Flying              FlyingOutlook       `json:"flying" yaml:"flying"`
	ComplexityTolerance ComplexityTolerance `json:"complexityTolerance" yaml:"complexityTolerance"`
}

// Spouse is the partner's confidence in the plan.
type Spouse struct {
	Confidence Traffic `json:"confidence" yaml:"confidence"`
	Notes      string  `json:"notes" yaml:"notes"`
}

// Verdict is the three-sentence annual review.
type Verdict struct {
	Worked string `json:"worked" yaml:"worked"`
	Off    string `json:"off" yaml:"off"`
	Change string `json:"change" yaml:"change"`
}

// AppState is the single snapshot of everything the user has entered.
// It holds only values, so assigning an AppState copies it.
type AppState struct {
	Verdict       Verdict       `json:"verdict" yaml:"verdict"`
	Spouse        Spouse        `json:"spouse" yaml:"spouse"`
	Phase         PhaseInfo     `json:"phase" yaml:"phase"`
	Capability    Capability    `json:"capability" yaml:"capability"`
	Risk          Risk          `json:"risk" yaml:"risk"`
	Inflation     Inflation     `json:"inflation" yaml:"inflation"`
	Discretionary Discretionary `json:"discretionary" yaml:"discretionary"`
	Super         Super         `json:"super" yaml:"super"`
	Cash          Cash          `json:"cash" yaml:"cash"`
	Income        Income        `json:"income" yaml:"income"`
	Baseline      Baseline      `json:"baseline" yaml:"baseline"`
}

// Section names as they appear in the persisted document.
const (
	SectionBaseline      = "baseline"
	SectionIncome        = "income"
	SectionCash          = "cash"
	SectionSuper         = "super"
	SectionDiscretionary = "discretionary"
	SectionPhase         = "phase"
	SectionInflation     = "inflation"
	SectionRisk          = "risk"
	SectionCapability    = "capability"
	SectionSpouse        = "spouse"
	SectionVerdict       = "verdict"
)

// Sections lists every section in display order.
var Sections = []string{
	SectionBaseline,
	SectionIncome,
	SectionCash,
	SectionSuper,
	SectionDiscretionary,
	SectionPhase,
	SectionInflation,
	SectionRisk,
	SectionCapability,
	SectionSpouse,
	SectionVerdict,
}

// DefaultState returns the starting snapshot for a new household.
func DefaultState() AppState {
	return AppState{
		Baseline: Baseline{
			BaselineSpendAnnual: 75000,
		},
		Income: Income{
			GuaranteedIncomeAnnualNet: 92000,
		},
		Cash: Cash{
			CashBalance:       660000,
			ContingencyAnnual: 15000,
		},
		Super: Super{
			SuperBalance:              2060000,
			DrawdownAnnual:            0,
			MinRequiredDrawdownRate:   0.04,
			ExcessDrawdownIntentional: true,
		},
		Discretionary: Discretionary{
			Planned:      CategoryAmounts{Travel: 40000, Flying: 30000, Other: 20000},
			Actual:       CategoryAmounts{},
			VarianceType: VarianceIntentional,
		},
		Phase: PhaseInfo{
			Current:           Phase1,
			YearsRemainingMin: 6,
			YearsRemainingMax: 9,
			NextTrigger:       "Flying ends ~8 years; overseas continues ~5",
		},
		Inflation: Inflation{
			CPIYoY:                  0.03,
			RealBaselineSignal:      SignalFlat,
			RealDiscretionarySignal: SignalFlat,
		},
		Risk: Risk{
			BaselineSafeUnderCrash:   TrafficGreen,
			DiscTolerableUnderBadRun: TrafficAmber,
			CashRunwayImproving:      TrafficAmber,
		},
		Capability: Capability{
			LongHaulTravel:      LongHaulEnergising,
			Flying:              FlyingWorthIt,
			ComplexityTolerance: ComplexityMedium,
		},
		Spouse: Spouse{
			Confidence: TrafficGreen,
		},
	}
}
