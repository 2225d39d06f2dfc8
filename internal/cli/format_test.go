package cli

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/nestegg/internal/model"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		name string
		want string
		in   float64
	}{
		{name: "thousands", in: 77250, want: "$77,250"},
		{name: "millions", in: 2060000, want: "$2,060,000"},
		{name: "rounds", in: 1234.5, want: "$1,235"},
		{name: "zero", in: 0, want: "$0"},
		{name: "negative", in: -5150, want: "-$5,150"},
		{name: "NaN", in: math.NaN(), want: "$0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCurrency(tt.in))
		})
	}
}

func TestFormatMonths(t *testing.T) {
	assert.Equal(t, "86 mo", FormatMonths(85.85))
	assert.Equal(t, "12,000 mo", FormatMonths(12000))
	assert.Equal(t, "0 mo", FormatMonths(math.Inf(1)))
}

func TestFormatRatioAndPercent(t *testing.T) {
	assert.Equal(t, "1.19×", FormatRatio(1.19093))
	assert.Equal(t, "3.0%", FormatPercent(0.03))
	assert.Equal(t, "4.5%", FormatPercent(0.045))
}

func TestFormatValue(t *testing.T) {
	s := model.DefaultState()
	tests := []struct {
		path string
		want string
	}{
		{path: "cash.cashBalance", want: "$660,000"},
		{path: "super.minRequiredDrawdownRate", want: "4.0%"},
		{path: "phase.yearsRemainingMin", want: "6"},
		{path: "super.excessDrawdownIntentional", want: "yes"},
		{path: "phase.current", want: "phase1"},
		{path: "verdict.worked", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			f, err := model.LookupField(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, FormatValue(f, f.Value(s)))
		})
	}
}

func TestRunwayGauge(t *testing.T) {
	assert.Equal(t, "▕░░░░░░░░░░▏", RunwayGauge(0, 10))
	assert.Equal(t, "▕█████░░░░░▏", RunwayGauge(30, 10))
	assert.Equal(t, "▕██████████▏", RunwayGauge(85.85, 10), "clamped at the gauge maximum")
	assert.Equal(t, "▕░░░░░░░░░░▏", RunwayGauge(-5, 10))
	assert.Empty(t, RunwayGauge(30, 0))
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "Maybe", TrafficAnswer(model.TrafficAmber))
	assert.Equal(t, "No", TrafficAnswer(model.TrafficRed))
	assert.Equal(t, "Stop & simplify", SpouseLabel(model.TrafficRed))
	assert.Equal(t, "Uneasy", SpouseLabel(model.TrafficAmber))
	assert.Equal(t, "↑", SignalArrow(model.SignalUp))
	assert.Equal(t, "→", SignalArrow(model.SignalFlat))
}
