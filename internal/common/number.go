package common

import (
	"math"

	"github.com/spf13/cast"
)

// SafeNumber returns x as a finite float64, or 0 when x is not a finite number.
// Numeric strings are parsed only when the whole string is a number, so "12abc" yields 0
// rather than its numeric prefix. Booleans, nil and anything unparseable yield 0.
func SafeNumber(x any) float64 {
	if _, ok := x.(bool); ok {
		return 0
	}
	n, err := cast.ToFloat64E(x)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return n
}

// Clamp bounds n into [lo, hi].
func Clamp(n, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, n))
}
