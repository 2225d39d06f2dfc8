package common

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeNumber(t *testing.T) {
	tests := []struct {
		input any
		name  string
		want  float64
	}{
		{name: "float", input: 12.5, want: 12.5},
		{name: "negative float", input: -3.25, want: -3.25},
		{name: "int", input: 42, want: 42},
		{name: "int64", input: int64(7), want: 7},
		{name: "float32", input: float32(1.5), want: 1.5},
		{name: "numeric string", input: "75000", want: 75000},
		{name: "decimal string", input: "0.03", want: 0.03},
		{name: "json number", input: json.Number("660000"), want: 660000},
		{name: "NaN", input: math.NaN(), want: 0},
		{name: "positive infinity", input: math.Inf(1), want: 0},
		{name: "negative infinity", input: math.Inf(-1), want: 0},
		{name: "NaN string", input: "NaN", want: 0},
		{name: "garbage string", input: "oops", want: 0},
		{name: "numeric prefix", input: "12abc", want: 0},
		{name: "empty string", input: "", want: 0},
		{name: "nil", input: nil, want: 0},
		{name: "true", input: true, want: 0},
		{name: "false", input: false, want: 0},
		{name: "map", input: map[string]any{"a": 1}, want: 0},
		{name: "slice", input: []any{1, 2}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SafeNumber(tt.input)
			assert.InDelta(t, tt.want, got, 1e-12)
			assert.False(t, math.IsNaN(got) || math.IsInf(got, 0), "result must be finite")
		})
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 5.0, Clamp(5, 0, 10))
	assert.Equal(t, 0.0, Clamp(-1, 0, 10))
	assert.Equal(t, 10.0, Clamp(11, 0, 10))
	assert.Equal(t, 10.0, Clamp(10, 0, 10))
}
