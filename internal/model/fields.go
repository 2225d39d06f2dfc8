package model

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Field registry errors.
var (
	ErrUnknownField = errors.New("unknown field")
	ErrInvalidValue = errors.New("invalid value")
)

// FieldKind describes how a field is entered and displayed.
type FieldKind int

const (
	// KindMoney is a currency amount.
	KindMoney FieldKind = iota
	// KindPercent is a fraction displayed as a percentage (0.03 = 3%).
	KindPercent
	// KindCount is a whole number such as years.
	KindCount
	// KindText is free text.
	KindText
	// KindBool is a yes/no toggle.
	KindBool
	// KindChoice is one value from a closed set.
	KindChoice
)

// String returns the kind name.
func (k FieldKind) String() string {
	switch k {
	case KindMoney:
		return "money"
	case KindPercent:
		return "percent"
	case KindCount:
		return "count"
	case KindText:
		return "text"
	case KindBool:
		return "bool"
	case KindChoice:
		return "choice"
	}
	return "unknown"
}

// Numeric reports whether values of this kind are float64.
func (k FieldKind) Numeric() bool {
	return k == KindMoney || k == KindPercent || k == KindCount
}

// Field describes one editable leaf of AppState.
type Field struct {
	get     func(AppState) any
	set     func(*AppState, any)
	Path    string
	Section string
	Label   string
	Options []string
	Kind    FieldKind
}

// Value reads the field from s. The result is a float64, string or bool depending on Kind.
func (f Field) Value(s AppState) any {
	return f.get(s)
}

// Apply returns a copy of s with the field replaced by v. s itself is never modified.
// v must already have the field's Go type; use Parse to convert user input.
func (f Field) Apply(s AppState, v any) (AppState, error) {
	if err := f.check(v); err != nil {
		return s, err
	}
	next := s
	f.set(&next, v)
	return next, nil
}

func (f Field) check(v any) error {
	switch f.Kind {
	case KindMoney, KindPercent, KindCount:
		n, ok := v.(float64)
		if !ok {
			return fmt.Errorf("%w: %s expects a number, got %T", ErrInvalidValue, f.Path, v)
		}
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return fmt.Errorf("%w: %s must be finite", ErrInvalidValue, f.Path)
		}
	case KindText:
		if _, ok := v.(string); !ok {
			return fmt.Errorf("%w: %s expects text, got %T", ErrInvalidValue, f.Path, v)
		}
	case KindBool:
		if _, ok := v.(bool); !ok {
			return fmt.Errorf("%w: %s expects true or false, got %T", ErrInvalidValue, f.Path, v)
		}
	case KindChoice:
		str, ok := v.(string)
		if !ok || !f.allows(str) {
			return fmt.Errorf("%w: %s must be one of %s", ErrInvalidValue, f.Path, strings.Join(f.Options, ", "))
		}
	}
	return nil
}

func (f Field) allows(v string) bool {
	for _, o := range f.Options {
		if o == v {
			return true
		}
	}
	return false
}

// Parse converts user input into a value Apply accepts.
// Percent fields take either a fraction ("0.03") or a percentage ("3%").
func (f Field) Parse(input string) (any, error) {
	input = strings.TrimSpace(input)
	switch f.Kind {
	case KindMoney, KindPercent, KindCount:
		raw := strings.NewReplacer(",", "", "$", "").Replace(input)
		percent := false
		if f.Kind == KindPercent && strings.HasSuffix(raw, "%") {
			percent = true
			raw = strings.TrimSuffix(raw, "%")
		}
		if raw == "" {
			return 0.0, nil
		}
		n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return nil, fmt.Errorf("%w: %q is not a number", ErrInvalidValue, input)
		}
		if percent {
			n /= 100
		}
		return n, nil
	case KindBool:
		switch strings.ToLower(input) {
		case "true", "yes", "y", "1", "intentional":
			return true, nil
		case "false", "no", "n", "0", "accidental":
			return false, nil
		}
		return nil, fmt.Errorf("%w: %q is not yes or no", ErrInvalidValue, input)
	case KindChoice:
		if !f.allows(input) {
			return nil, fmt.Errorf("%w: %s must be one of %s", ErrInvalidValue, f.Path, strings.Join(f.Options, ", "))
		}
		return input, nil
	}
	return input, nil
}

// Next returns the option after the current one, wrapping around. Only meaningful for choices and bools.
func (f Field) Next(s AppState, step int) (AppState, error) {
	switch f.Kind {
	case KindBool:
		b, _ := f.get(s).(bool)
		return f.Apply(s, !b)
	case KindChoice:
		cur, _ := f.get(s).(string)
		idx := 0
		for i, o := range f.Options {
			if o == cur {
				idx = i
				break
			}
		}
		n := len(f.Options)
		idx = ((idx+step)%n + n) % n
		return f.Apply(s, f.Options[idx])
	}
	return s, fmt.Errorf("%w: %s is not a choice", ErrInvalidValue, f.Path)
}

func numberField(section, name, label string, kind FieldKind, get func(AppState) float64, set func(*AppState, float64)) Field {
	return Field{
		Path:    section + "." + name,
		Section: section,
		Label:   label,
		Kind:    kind,
		get:     func(s AppState) any { return get(s) },
		set:     func(s *AppState, v any) { set(s, v.(float64)) },
	}
}

func textField(section, name, label string, get func(AppState) string, set func(*AppState, string)) Field {
	return Field{
		Path:    section + "." + name,
		Section: section,
		Label:   label,
		Kind:    KindText,
		get:     func(s AppState) any { return get(s) },
		set:     func(s *AppState, v any) { set(s, v.(string)) },
	}
}

func choiceField[T ~string](section, name, label string, options []T, get func(AppState) T, set func(*AppState, T)) Field {
	opts := make([]string, len(options))
	for i, o := range options {
		opts[i] = string(o)
	}
	return Field{
		Path:    section + "." + name,
		Section: section,
		Label:   label,
		Kind:    KindChoice,
		Options: opts,
		get:     func(s AppState) any { return string(get(s)) },
		set:     func(s *AppState, v any) { set(s, T(v.(string))) },
	}
}

func categoryFields(which string, label string, get func(AppState) CategoryAmounts, set func(*AppState, CategoryAmounts)) []Field {
	fields := make([]Field, 0, len(Categories))
	for _, c := range Categories {
		fields = append(fields, numberField(SectionDiscretionary, which+"."+string(c), label+" "+strings.ToLower(c.Label()), KindMoney,
			func(s AppState) float64 { return get(s).Get(c) },
			func(s *AppState, v float64) { set(s, get(*s).With(c, v)) },
		))
	}
	return fields
}

var registry = buildRegistry()

func buildRegistry() []Field {
	fields := []Field{
		numberField(SectionBaseline, "baselineSpendAnnual", "Baseline spend (annual, current $)", KindMoney,
			func(s AppState) float64 { return s.Baseline.BaselineSpendAnnual },
			func(s *AppState, v float64) { s.Baseline.BaselineSpendAnnual = v }),
		numberField(SectionIncome, "guaranteedIncomeAnnualNet", "Guaranteed income (net annual)", KindMoney,
			func(s AppState) float64 { return s.Income.GuaranteedIncomeAnnualNet },
			func(s *AppState, v float64) { s.Income.GuaranteedIncomeAnnualNet = v }),
		numberField(SectionCash, "cashBalance", "Cash balance", KindMoney,
			func(s AppState) float64 { return s.Cash.CashBalance },
			func(s *AppState, v float64) { s.Cash.CashBalance = v }),
		numberField(SectionCash, "contingencyAnnual", "Contingency budget (annual)", KindMoney,
			func(s AppState) float64 { return s.Cash.ContingencyAnnual },
			func(s *AppState, v float64) { s.Cash.ContingencyAnnual = v }),
		numberField(SectionSuper, "superBalance", "Super balance", KindMoney,
			func(s AppState) float64 { return s.Super.SuperBalance },
			func(s *AppState, v float64) { s.Super.SuperBalance = v }),
		numberField(SectionSuper, "drawdownAnnual", "Annual drawdown", KindMoney,
			func(s AppState) float64 { return s.Super.DrawdownAnnual },
			func(s *AppState, v float64) { s.Super.DrawdownAnnual = v }),
		numberField(SectionSuper, "minRequiredDrawdownRate", "Minimum required drawdown rate", KindPercent,
			func(s AppState) float64 { return s.Super.MinRequiredDrawdownRate },
			func(s *AppState, v float64) { s.Super.MinRequiredDrawdownRate = v }),
		{
			Path:    SectionSuper + ".excessDrawdownIntentional",
			Section: SectionSuper,
			Label:   "Excess drawdown intentional",
			Kind:    KindBool,
			get:     func(s AppState) any { return s.Super.ExcessDrawdownIntentional },
			set:     func(s *AppState, v any) { s.Super.ExcessDrawdownIntentional = v.(bool) },
		},
	}

	fields = append(fields, categoryFields("planned", "Planned",
		func(s AppState) CategoryAmounts { return s.Discretionary.Planned },
		func(s *AppState, a CategoryAmounts) { s.Discretionary.Planned = a })...)
	fields = append(fields, categoryFields("actual", "Actual",
		func(s AppState) CategoryAmounts { return s.Discretionary.Actual },
		func(s *AppState, a CategoryAmounts) { s.Discretionary.Actual = a })...)

	fields = append(fields,
		choiceField(SectionDiscretionary, "varianceType", "Variance type", VarianceTypes,
			func(s AppState) VarianceType { return s.Discretionary.VarianceType },
			func(s *AppState, v VarianceType) { s.Discretionary.VarianceType = v }),
		choiceField(SectionPhase, "current", "Current phase", Phases,
			func(s AppState) Phase { return s.Phase.Current },
			func(s *AppState, v Phase) { s.Phase.Current = v }),
		numberField(SectionPhase, "yearsRemainingMin", "Years remaining (min)", KindCount,
			func(s AppState) float64 { return s.Phase.YearsRemainingMin },
			func(s *AppState, v float64) { s.Phase.YearsRemainingMin = v }),
		numberField(SectionPhase, "yearsRemainingMax", "Years remaining (max)", KindCount,
			func(s AppState) float64 { return s.Phase.YearsRemainingMax },
			func(s *AppState, v float64) { s.Phase.YearsRemainingMax = v }),
		textField(SectionPhase, "nextTrigger", "Next trigger (plain words)",
			func(s AppState) string { return s.Phase.NextTrigger },
			func(s *AppState, v string) { s.Phase.NextTrigger = v }),
		numberField(SectionInflation, "cpiYoY", "CPI YoY", KindPercent,
			func(s AppState) float64 { return s.Inflation.CPIYoY },
			func(s *AppState, v float64) { s.Inflation.CPIYoY = v }),
		choiceField(SectionInflation, "realBaselineSignal", "Real baseline signal", Signals,
			func(s AppState) Signal { return s.Inflation.RealBaselineSignal },
			func(s *AppState, v Signal) { s.Inflation.RealBaselineSignal = v }),
		choiceField(SectionInflation, "realDiscretionarySignal", "Real discretionary signal", Signals,
			func(s AppState) Signal { return s.Inflation.RealDiscretionarySignal },
			func(s *AppState, v Signal) { s.Inflation.RealDiscretionarySignal = v }),
		choiceField(SectionRisk, "baselineSafeUnderCrash", "30% market fall tomorrow: baseline intact?", Traffics,
			func(s AppState) Traffic { return s.Risk.BaselineSafeUnderCrash },
			func(s *AppState, v Traffic) { s.Risk.BaselineSafeUnderCrash = v }),
		choiceField(SectionRisk, "discTolerableUnderBadRun", "3 bad years: discretionary tolerable?", Traffics,
			func(s AppState) Traffic { return s.Risk.DiscTolerableUnderBadRun },
			func(s *AppState, v Traffic) { s.Risk.DiscTolerableUnderBadRun = v }),
		choiceField(SectionRisk, "cashRunwayImproving", "Cash runway improving?", Traffics,
			func(s AppState) Traffic { return s.Risk.CashRunwayImproving },
			func(s *AppState, v Traffic) { s.Risk.CashRunwayImproving = v }),
		choiceField(SectionCapability, "longHaulTravel", "Long-haul travel", LongHaulTravels,
			func(s AppState) LongHaulTravel { return s.Capability.LongHaulTravel },
			func(s *AppState, v LongHaulTravel) { s.Capability.LongHaulTravel = v }),
		choiceField(SectionCapability, "flying", "Flying", FlyingOutlooks,
			func(s AppState) FlyingOutlook { return s.Capability.Flying },
			func(s *AppState, v FlyingOutlook) { s.Capability.Flying = v }),
		choiceField(SectionCapability, "complexityTolerance", "Complexity tolerance", ComplexityTolerances,
			func(s AppState) ComplexityTolerance { return s.Capability.ComplexityTolerance },
			func(s *AppState, v ComplexityTolerance) { s.Capability.ComplexityTolerance = v }),
		choiceField(SectionSpouse, "confidence", "Spouse confidence", Traffics,
			func(s AppState) Traffic { return s.Spouse.Confidence },
			func(s *AppState, v Traffic) { s.Spouse.Confidence = v }),
		textField(SectionSpouse, "notes", "Notes",
			func(s AppState) string { return s.Spouse.Notes },
			func(s *AppState, v string) { s.Spouse.Notes = v }),
		textField(SectionVerdict, "worked", "1) What worked",
			func(s AppState) string { return s.Verdict.Worked },
			func(s *AppState, v string) { s.Verdict.Worked = v }),
		textField(SectionVerdict, "off", "2) What felt off",
			func(s AppState) string { return s.Verdict.Off },
			func(s *AppState, v string) { s.Verdict.Off = v }),
		textField(SectionVerdict, "change", "3) One change for next year",
			func(s AppState) string { return s.Verdict.Change },
			func(s *AppState, v string) { s.Verdict.Change = v }),
	)
	return fields
}

// Fields returns every editable field in display order.
func Fields() []Field {
	out := make([]Field, len(registry))
	copy(out, registry)
	return out
}

// LookupField finds a field by its dotted path, e.g. "cash.cashBalance".
func LookupField(path string) (Field, error) {
	for _, f := range registry {
		if f.Path == path {
			return f, nil
		}
	}
	return Field{}, fmt.Errorf("%w: %s", ErrUnknownField, path)
}
