package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/Veraticus/nestegg/internal/common"
	"github.com/Veraticus/nestegg/internal/model"
)

// RunwayGaugeMax is the right-hand end of the runway gauge, the top of the 36–60 month target.
const RunwayGaugeMax = 60

// FormatCurrency renders n as whole Australian dollars, e.g. "$77,250" or "-$5,150".
func FormatCurrency(n float64) string {
	x := math.Round(common.SafeNumber(n))
	if x < 0 {
		return "-$" + humanize.Comma(int64(-x))
	}
	return "$" + humanize.Comma(int64(x))
}

// FormatMonths renders a month count rounded to whole months, e.g. "86 mo".
func FormatMonths(n float64) string {
	return humanize.Comma(int64(math.Round(common.SafeNumber(n)))) + " mo"
}

// FormatRatio renders a coverage ratio, e.g. "1.19×".
func FormatRatio(r float64) string {
	return strconv.FormatFloat(common.SafeNumber(r), 'f', 2, 64) + "×"
}

// FormatPercent renders a fraction as a percentage with one decimal, e.g. 0.03 → "3.0%".
func FormatPercent(f float64) string {
	return strconv.FormatFloat(common.SafeNumber(f)*100, 'f', 1, 64) + "%"
}

// FormatValue renders a field's current value for display.
func FormatValue(f model.Field, v any) string {
	switch f.Kind {
	case model.KindMoney:
		n, _ := v.(float64)
		return FormatCurrency(n)
	case model.KindPercent:
		n, _ := v.(float64)
		return FormatPercent(n)
	case model.KindCount:
		n, _ := v.(float64)
		return strconv.FormatFloat(n, 'f', -1, 64)
	case model.KindBool:
		if b, _ := v.(bool); b {
			return "yes"
		}
		return "no"
	}
	return fmt.Sprint(v)
}

// RunwayGauge draws months against RunwayGaugeMax as a bar of the given width.
func RunwayGauge(months float64, width int) string {
	if width <= 0 {
		return ""
	}
	fill := common.Clamp(common.SafeNumber(months), 0, RunwayGaugeMax) / RunwayGaugeMax
	filled := int(math.Round(fill * float64(width)))
	return "▕" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "▏"
}

// TrafficAnswer is the Yes/Maybe/No wording of a self-assessed traffic answer.
func TrafficAnswer(t model.Traffic) string {
	switch t {
	case model.TrafficGreen:
		return "Yes"
	case model.TrafficAmber:
		return "Maybe"
	}
	return "No"
}

// SpouseLabel is the wording of a spouse confidence value.
func SpouseLabel(t model.Traffic) string {
	switch t {
	case model.TrafficGreen:
		return "Confident"
	case model.TrafficAmber:
		return "Uneasy"
	}
	return "Stop & simplify"
}

// SignalArrow renders a real-terms trend signal.
func SignalArrow(s model.Signal) string {
	switch s {
	case model.SignalUp:
		return "↑"
	case model.SignalDown:
		return "↓"
	}
	return "→"
}
