// Package migrate repairs untrusted persisted data into a well-formed model.AppState.
//
// Repair works at two levels. A section that is present and is an object has each of its fields
// coerced independently, falling back to that field's default. A section that is missing or is not
// an object is replaced by the whole default section. Nothing in this package panics or returns an
// error for bad input; the worst case is model.DefaultState().
package migrate

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/Veraticus/nestegg/internal/model"
)

// Decode parses persisted bytes into a generic tree without trusting its shape.
func Decode(data []byte) (any, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode state: %w", err)
	}
	return raw, nil
}

// Repair decodes and coerces data. ok is false when data could not be decoded at all,
// in which case the default state is returned.
func Repair(data []byte) (s model.AppState, repaired []string, ok bool) {
	raw, err := Decode(data)
	if err != nil {
		return model.DefaultState(), nil, false
	}
	s, repaired = CoerceReport(raw)
	return s, repaired, true
}

// Coerce turns an arbitrary decoded value into a well-formed state.
func Coerce(raw any) model.AppState {
	s, _ := CoerceReport(raw)
	return s
}

// CoerceReport is Coerce that also returns the paths it had to repair, e.g. "cash.cashBalance"
// for a bad field or "risk" for a replaced section.
func CoerceReport(raw any) (model.AppState, []string) {
	def := model.DefaultState()
	root, ok := raw.(map[string]any)
	if !ok {
		return def, []string{"$"}
	}

	c := &coercer{}
	out := def

	if sec, ok := c.section(root, model.SectionBaseline); ok {
		out.Baseline = model.Baseline{
			BaselineSpendAnnual: c.number(sec, "baselineSpendAnnual", def.Baseline.BaselineSpendAnnual),
		}
	}
	if sec, ok := c.section(root, model.SectionIncome); ok {
		out.Income = model.Income{
			GuaranteedIncomeAnnualNet: c.number(sec, "guaranteedIncomeAnnualNet", def.Income.GuaranteedIncomeAnnualNet),
		}
	}
	if sec, ok := c.section(root, model.SectionCash); ok {
		out.Cash = model.Cash{
			CashBalance:       c.number(sec, "cashBalance", def.Cash.CashBalance),
			ContingencyAnnual: c.number(sec, "contingencyAnnual", def.Cash.ContingencyAnnual),
		}
	}
	if sec, ok := c.section(root, model.SectionSuper); ok {
		out.Super = model.Super{
			SuperBalance:              c.number(sec, "superBalance", def.Super.SuperBalance),
			DrawdownAnnual:            c.number(sec, "drawdownAnnual", def.Super.DrawdownAnnual),
			MinRequiredDrawdownRate:   c.number(sec, "minRequiredDrawdownRate", def.Super.MinRequiredDrawdownRate),
			ExcessDrawdownIntentional: c.boolean(sec, "excessDrawdownIntentional", def.Super.ExcessDrawdownIntentional),
		}
	}
	if sec, ok := c.section(root, model.SectionDiscretionary); ok {
		out.Discretionary = model.Discretionary{
			Planned:      c.amounts(sec, "planned", def.Discretionary.Planned),
			Actual:       c.amounts(sec, "actual", def.Discretionary.Actual),
			VarianceType: enum(c, sec, "varianceType", def.Discretionary.VarianceType),
		}
	}
	if sec, ok := c.section(root, model.SectionPhase); ok {
		out.Phase = model.PhaseInfo{
			Current:           enum(c, sec, "current", def.Phase.Current),
			YearsRemainingMin: c.number(sec, "yearsRemainingMin", def.Phase.YearsRemainingMin),
			YearsRemainingMax: c.number(sec, "yearsRemainingMax", def.Phase.YearsRemainingMax),
			NextTrigger:       c.text(sec, "nextTrigger", def.Phase.NextTrigger),
		}
	}
	if sec, ok := c.section(root, model.SectionInflation); ok {
		out.Inflation = model.Inflation{
			CPIYoY:                  c.number(sec, "cpiYoY", def.Inflation.CPIYoY),
			RealBaselineSignal:      enum(c, sec, "realBaselineSignal", def.Inflation.RealBaselineSignal),
			RealDiscretionarySignal: enum(c, sec, "realDiscretionarySignal", def.Inflation.RealDiscretionarySignal),
		}
	}
	if sec, ok := c.section(root, model.SectionRisk); ok {
		out.Risk = model.Risk{
			BaselineSafeUnderCrash:   enum(c, sec, "baselineSafeUnderCrash", def.Risk.BaselineSafeUnderCrash),
			DiscTolerableUnderBadRun: enum(c, sec, "discTolerableUnderBadRun", def.Risk.DiscTolerableUnderBadRun),
			CashRunwayImproving:      enum(c, sec, "cashRunwayImproving", def.Risk.CashRunwayImproving),
		}
	}
	if sec, ok := c.section(root, model.SectionCapability); ok {
		out.Capability = model.Capability{
			LongHaulTravel:      enum(c, sec, "longHaulTravel", def.Capability.LongHaulTravel),
			Flying:              enum(c, sec, "flying", def.Capability.Flying),
			ComplexityTolerance: enum(c, sec, "complexityTolerance", def.Capability.ComplexityTolerance),
		}
	}
	if sec, ok := c.section(root, model.SectionSpouse); ok {
		out.Spouse = model.Spouse{
			Confidence: enum(c, sec, "confidence", def.Spouse.Confidence),
			Notes:      c.text(sec, "notes", def.Spouse.Notes),
		}
	}
	if sec, ok := c.section(root, model.SectionVerdict); ok {
		out.Verdict = model.Verdict{
			Worked: c.text(sec, "worked", def.Verdict.Worked),
			Off:    c.text(sec, "off", def.Verdict.Off),
			Change: c.text(sec, "change", def.Verdict.Change),
		}
	}

	return out, c.repaired
}

// object is a keyed structure in the decoded tree, scoped to a path for repair reporting.
type object struct {
	values map[string]any
	path   string
}

type coercer struct {
	repaired []string
}

func (c *coercer) note(path string) {
	c.repaired = append(c.repaired, path)
}

// section returns the named top-level section when it is an object.
// A missing or malformed section is reported and the caller keeps the default section.
func (c *coercer) section(root map[string]any, name string) (object, bool) {
	m, ok := root[name].(map[string]any)
	if !ok {
		c.note(name)
		return object{}, false
	}
	return object{values: m, path: name}, true
}

func (c *coercer) number(o object, key string, fallback float64) float64 {
	if n, ok := finite(o.values[key]); ok {
		return n
	}
	c.note(o.path + "." + key)
	return fallback
}

func (c *coercer) text(o object, key string, fallback string) string {
	if s, ok := o.values[key].(string); ok {
		return s
	}
	c.note(o.path + "." + key)
	return fallback
}

func (c *coercer) boolean(o object, key string, fallback bool) bool {
	if b, ok := o.values[key].(bool); ok {
		return b
	}
	c.note(o.path + "." + key)
	return fallback
}

// amounts coerces a per-category mapping one level down, with the same two-level rule.
func (c *coercer) amounts(o object, key string, fallback model.CategoryAmounts) model.CategoryAmounts {
	m, ok := o.values[key].(map[string]any)
	if !ok {
		c.note(o.path + "." + key)
		return fallback
	}
	inner := object{values: m, path: o.path + "." + key}
	out := fallback
	for _, cat := range model.Categories {
		out = out.With(cat, c.number(inner, string(cat), fallback.Get(cat)))
	}
	return out
}

// enum accepts only an exact member of T's closed set.
func enum[T interface {
	~string
	Valid() bool
}](c *coercer, o object, key string, fallback T) T {
	if s, ok := o.values[key].(string); ok && T(s).Valid() {
		return T(s)
	}
	c.note(o.path + "." + key)
	return fallback
}

// finite accepts real numbers only. Numeric strings are not numbers here.
func finite(v any) (float64, bool) {
	var n float64
	switch x := v.(type) {
	case float64:
		n = x
	case float32:
		n = float64(x)
	case int:
		n = float64(x)
	case int64:
		n = float64(x)
	case int32:
		n = float64(x)
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0, false
		}
		n = f
	default:
		return 0, false
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

// Sanitize replaces every non-finite number in s with that field's default.
func Sanitize(s model.AppState) model.AppState {
	def := model.DefaultState()
	for _, f := range model.Fields() {
		if !f.Kind.Numeric() {
			continue
		}
		if _, ok := finite(f.Value(s)); ok {
			continue
		}
		if next, err := f.Apply(s, f.Value(def)); err == nil {
			s = next
		}
	}
	return s
}

// Tree converts a state into the generic form Coerce accepts.
func Tree(s model.AppState) map[string]any {
	data, err := json.Marshal(Sanitize(s))
	if err != nil {
		return nil
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil
	}
	return out
}

// ErrUnknownSection is returned by ReplaceSection for a name outside model.Sections.
var ErrUnknownSection = errors.New("unknown section")

// ReplaceSection returns a copy of s with one whole section replaced by raw.
// raw is coerced exactly as a loaded section would be: a malformed value yields the default section.
// Typed values such as model.Risk are accepted and normalised through their JSON form.
func ReplaceSection(s model.AppState, name string, raw any) (model.AppState, error) {
	if !slices.Contains(model.Sections, name) {
		return s, fmt.Errorf("%w: %s", ErrUnknownSection, name)
	}
	tree := Tree(s)
	if tree == nil {
		tree = map[string]any{}
	}
	tree[name] = normalise(raw)
	return Coerce(tree), nil
}

func normalise(raw any) any {
	switch raw.(type) {
	case map[string]any, nil:
		return raw
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return nil
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil
	}
	return out
}
