package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/nestegg/internal/engine"
	"github.com/Veraticus/nestegg/internal/model"
)

// LockMessage is the banner text shown while any gate is red.
const LockMessage = "LOCK: Discretionary expansion is disabled because a critical gate is red"

// RenderLockBanner returns the lock banner naming the red gates, or "" when unlocked.
func RenderLockBanner(d engine.Derived) string {
	if !d.Locked {
		return ""
	}
	return BannerStyle.Render(LockIcon + " " + LockMessage + " (" + strings.Join(d.RedGates(), ", ") + ").")
}

// RenderDashboard renders the full read-only report for one snapshot.
func RenderDashboard(s model.AppState, d engine.Derived, now time.Time) string {
	var b strings.Builder

	b.WriteString(FormatTitle("Retirement Spending Command Dashboard"))
	b.WriteString("\n")
	b.WriteString(SubtleStyle.Render(fmt.Sprintf("%d • Quarterly glance, annual decision", now.Year())))
	b.WriteString("\n")
	if banner := RenderLockBanner(d); banner != "" {
		b.WriteString(banner)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	sections := []string{
		renderHealth(s, d),
		renderBaseline(s, d),
		renderDiscretionary(s, d),
		renderCashSuper(s, d),
		renderInflation(s),
		renderRisk(s, d),
		renderCapability(s),
		renderSpouse(s),
		renderVerdict(s),
	}
	b.WriteString(strings.Join(sections, "\n\n"))
	b.WriteString("\n")
	return b.String()
}

func heading(title, subtitle string) string {
	if subtitle == "" {
		return TitleStyle.Render(title)
	}
	return TitleStyle.Render(title) + "  " + SubtitleStyle.Render(subtitle)
}

func tile(title, value, target string, t model.Traffic, detail string) string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		BoldStyle.Render(title),
		value+"  "+TrafficPill(t, strings.ToUpper(string(t))),
		SubtleStyle.Render("Target: "+target),
		SubtleStyle.Render(detail),
	)
	return TileStyle.Render(body)
}

// rows renders label/value pairs with the labels padded to a common width.
func rows(pairs ...[2]string) string {
	width := 0
	for _, p := range pairs {
		width = max(width, lipgloss.Width(p[0]))
	}
	lines := make([]string, len(pairs))
	for i, p := range pairs {
		lines[i] = SubtleStyle.Render(p[0]+strings.Repeat(" ", width-lipgloss.Width(p[0]))) + "  " + p[1]
	}
	return strings.Join(lines, "\n")
}

func drawdownVerdict(dd engine.Drawdown) string {
	switch {
	case !dd.MinMet:
		return "No"
	case dd.ExcessIntentional:
		return "Yes / Yes"
	}
	return "Yes / No"
}

func renderHealth(s model.AppState, d engine.Derived) string {
	tiles := lipgloss.JoinHorizontal(lipgloss.Top,
		tile("Baseline Coverage Ratio", FormatRatio(d.BaselineCoverageRatio), "≥ 1.20×", d.TrafficBaseline,
			FormatCurrency(s.Income.GuaranteedIncomeAnnualNet)+" ÷ "+FormatCurrency(d.BaselineIndexed)),
		tile("Cash Runway", FormatMonths(d.CashRunwayMonths), "36–60 months", d.TrafficCash,
			FormatCurrency(s.Cash.CashBalance)+" cash"),
		tile("Super Drawdown Compliance", drawdownVerdict(d.Drawdown), "min met + excess intentional", d.TrafficDrawdown,
			"Min "+FormatCurrency(d.Drawdown.MinRequiredAmount)),
	)
	return heading("A — System Health", "If this row isn't green, nothing else matters.") + "\n" + tiles
}

func renderBaseline(s model.AppState, d engine.Derived) string {
	return heading("B — Baseline Lock", "Baseline must remain pension-funded under all market conditions.") + "\n" +
		rows(
			[2]string{"Baseline spend (current $)", FormatCurrency(s.Baseline.BaselineSpendAnnual)},
			[2]string{"Baseline indexed", FormatCurrency(d.BaselineIndexed)},
			[2]string{"Guaranteed income (net)", FormatCurrency(s.Income.GuaranteedIncomeAnnualNet)},
			[2]string{"Baseline margin (net)", FormatCurrency(d.BaselineMargin)},
		)
}

func renderDiscretionary(s model.AppState, d engine.Derived) string {
	header := []string{"Category", "Planned", "Indexed", "Actual", "Variance"}
	widths := []int{10, 12, 12, 12, 12}

	var table strings.Builder
	cells := make([]string, len(header))
	for i, h := range header {
		cells[i] = TableCellStyle.Width(widths[i]).Render(h)
	}
	table.WriteString(TableHeaderStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top, cells...)))
	for _, line := range d.Categories {
		row := []string{
			line.Category.Label(),
			FormatCurrency(line.Planned),
			FormatCurrency(line.PlannedIndexed),
			FormatCurrency(line.Actual),
			FormatCurrency(line.Variance),
		}
		for i, c := range row {
			row[i] = TableCellStyle.Width(widths[i]).Render(c)
		}
		table.WriteString("\n")
		table.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}

	variance := "Intentional ✓"
	if s.Discretionary.VarianceType == model.VarianceDrift {
		variance = "Drift ⚠"
	}
	lock := ""
	if d.Locked {
		lock = "\n" + ErrorStyle.Render(LockIcon+" planned amounts are locked")
	}

	return heading("C — Discretionary Reality", "Planned (indexed) vs actual. Variance must be classified.") + "\n" +
		rows(
			[2]string{"Current phase", s.Phase.Current.Label()},
			[2]string{"Years remaining", fmt.Sprintf("%g–%g", s.Phase.YearsRemainingMin, s.Phase.YearsRemainingMax)},
			[2]string{"Next trigger", s.Phase.NextTrigger},
		) + "\n\n" + table.String() + "\n\n" +
		rows(
			[2]string{"Total planned (indexed)", FormatCurrency(d.Discretionary.TotalPlannedIndexed)},
			[2]string{"Total actual", FormatCurrency(d.Discretionary.TotalActual)},
			[2]string{"Variance", FormatCurrency(d.Discretionary.TotalActual - d.Discretionary.TotalPlannedIndexed)},
			[2]string{"Variance classification", variance},
		) + lock
}

func renderCashSuper(s model.AppState, d engine.Derived) string {
	excess := "Accidental"
	if s.Super.ExcessDrawdownIntentional {
		excess = "Intentional"
	}
	return heading("D — Cash vs Super Engine", "") + "\n" +
		rows(
			[2]string{"Cash balance", FormatCurrency(s.Cash.CashBalance)},
			[2]string{"Contingency (annual)", FormatCurrency(s.Cash.ContingencyAnnual)},
			[2]string{"Runway", RunwayGauge(d.CashRunwayMonths, 24) + " " + FormatMonths(d.CashRunwayMonths)},
			[2]string{"Super balance", FormatCurrency(s.Super.SuperBalance)},
			[2]string{"Annual drawdown", FormatCurrency(s.Super.DrawdownAnnual)},
			[2]string{"Minimum required", FormatPercent(s.Super.MinRequiredDrawdownRate) + " = " + FormatCurrency(d.Drawdown.MinRequiredAmount)},
			[2]string{"Excess drawdown", excess},
		)
}

func renderInflation(s model.AppState) string {
	return heading("E — Inflation & Reality", "Nominal stability ≠ real stability.") + "\n" +
		rows(
			[2]string{"CPI YoY", TrafficPill(model.TrafficGreen, FormatPercent(s.Inflation.CPIYoY))},
			[2]string{"Real baseline", SignalArrow(s.Inflation.RealBaselineSignal)},
			[2]string{"Real discretionary", SignalArrow(s.Inflation.RealDiscretionarySignal)},
		)
}

func renderRisk(s model.AppState, d engine.Derived) string {
	answer := func(t model.Traffic) string { return TrafficPill(t, TrafficAnswer(t)) }
	slow := TrafficPill(model.TrafficGreen, "OFF")
	if d.SlowFlag {
		slow = TrafficPill(model.TrafficAmber, "ON")
	}
	return heading("F — Risk & Resilience", "") + "\n" +
		rows(
			[2]string{"30% market fall tomorrow → baseline intact?", answer(s.Risk.BaselineSafeUnderCrash)},
			[2]string{"3 bad years → discretionary tolerable?", answer(s.Risk.DiscTolerableUnderBadRun)},
			[2]string{"Cash runway improving?", answer(s.Risk.CashRunwayImproving)},
			[2]string{"Slow discretionary", slow},
		)
}

func renderCapability(s model.AppState) string {
	return heading("G — Capability", "") + "\n" +
		rows(
			[2]string{"Long-haul travel", string(s.Capability.LongHaulTravel)},
			[2]string{"Flying", string(s.Capability.Flying)},
			[2]string{"Complexity tolerance", string(s.Capability.ComplexityTolerance)},
		)
}

func renderSpouse(s model.AppState) string {
	out := heading("H — Spouse Confidence", "") + "\n" + TrafficPill(s.Spouse.Confidence, SpouseLabel(s.Spouse.Confidence))
	if s.Spouse.Notes != "" {
		out += "\n" + SubtleStyle.Render(s.Spouse.Notes)
	}
	return out
}

func renderVerdict(s model.AppState) string {
	orDash := func(v string) string {
		if strings.TrimSpace(v) == "" {
			return SubtleStyle.Render("—")
		}
		return v
	}
	return heading("I — Annual Verdict", "Three sentences. No more.") + "\n" +
		rows(
			[2]string{"1) What worked", orDash(s.Verdict.Worked)},
			[2]string{"2) What felt off", orDash(s.Verdict.Off)},
			[2]string{"3) One change for next year", orDash(s.Verdict.Change)},
		)
}
