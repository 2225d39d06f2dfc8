package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/nestegg/internal/cli"
	"github.com/Veraticus/nestegg/internal/engine"
	"github.com/Veraticus/nestegg/internal/model"
)

const (
	panelWidth   = 36
	sectionWidth = 14
	labelWidth   = 44
	minListRows  = 3
)

// View renders the editor.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	s := m.dash.State()
	d := m.dash.Derived()

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderList(s),
		"  ",
		m.renderPanel(s, d),
	)
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(d),
		body,
		m.renderFooter(),
	)
}

func (m Model) headerLines(d engine.Derived) int {
	if d.Locked {
		return 2
	}
	return 1
}

func (m Model) footerLines() int {
	lines := 2
	if m.help.ShowAll {
		lines += len(m.keymap.FullHelp()[0])
	} else {
		lines++
	}
	return lines
}

// listHeight is the number of field rows that fit on screen.
func (m Model) listHeight() int {
	return max(minListRows, m.height-m.headerLines(m.dash.Derived())-m.footerLines())
}

func (m Model) renderHeader(d engine.Derived) string {
	title := m.theme.Title.Render(cli.NestIcon+" nestegg") + "  " +
		m.theme.Subtitle.Render("Retirement Spending Command Dashboard")
	if !d.Locked {
		return title
	}
	return title + "\n" + m.theme.Banner.Render(cli.LockIcon+" LOCK: "+strings.Join(d.RedGates(), ", ")+" red; planned discretionary is frozen")
}

func (m Model) renderList(s model.AppState) string {
	h := m.listHeight()
	end := min(len(m.fields), m.offset+h)

	rows := make([]string, 0, h)
	prevSection := ""
	for i := m.offset; i < end; i++ {
		f := m.fields[i]

		section := ""
		if f.Section != prevSection {
			section = f.Section
		}
		prevSection = f.Section

		value := cli.FormatValue(f, f.Value(s))
		if f.Kind == model.KindChoice || f.Kind == model.KindBool {
			value = "‹ " + value + " ›"
		}
		valueStyle := m.theme.Normal
		if m.plannedLocked(f) {
			valueStyle = m.theme.Locked
			value += " " + cli.LockIcon
		}

		line := m.theme.Section.UnsetMarginTop().Width(sectionWidth).Render(section) +
			m.theme.Label.Width(labelWidth).Render(truncate(f.Label, labelWidth-1)) +
			valueStyle.Render(value)
		if i == m.cursor {
			line = m.theme.Selected.Render("▸") + line
		} else {
			line = " " + line
		}
		rows = append(rows, line)
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderPanel(s model.AppState, d engine.Derived) string {
	pill := func(t model.Traffic) string {
		return m.theme.Traffic(t).Render(strings.ToUpper(string(t)))
	}
	line := func(label, value string) string {
		return m.theme.Label.Width(18).Render(label) + value
	}

	drawdown := "No"
	if d.Drawdown.MinMet {
		drawdown = "Yes"
	}
	slow := "OFF"
	if d.SlowFlag {
		slow = m.theme.Traffic(model.TrafficAmber).Render("ON")
	}

	lines := []string{
		m.theme.Bold.Render("System health"),
		line("Coverage", cli.FormatRatio(d.BaselineCoverageRatio)+" "+pill(d.TrafficBaseline)),
		line("Cash runway", cli.FormatMonths(d.CashRunwayMonths)+" "+pill(d.TrafficCash)),
		line("", cli.RunwayGauge(d.CashRunwayMonths, 12)),
		line("Drawdown min met", drawdown+" "+pill(d.TrafficDrawdown)),
		line("Spouse", cli.SpouseLabel(d.SpouseConfidence)+" "+pill(d.SpouseConfidence)),
		"",
		m.theme.Bold.Render("Baseline"),
		line("Indexed", cli.FormatCurrency(d.BaselineIndexed)),
		line("Margin", cli.FormatCurrency(d.BaselineMargin)),
		"",
		m.theme.Bold.Render("Discretionary"),
		line("Planned (indexed)", cli.FormatCurrency(d.Discretionary.TotalPlannedIndexed)),
		line("Actual", cli.FormatCurrency(d.Discretionary.TotalActual)),
		line("Variance", cli.FormatCurrency(d.Discretionary.TotalActual-d.Discretionary.TotalPlannedIndexed)),
		line("Slow flag", slow),
		line("Phase", s.Phase.Current.Label()),
	}
	return m.theme.RoundedBox.Width(panelWidth).Render(strings.Join(lines, "\n"))
}

func (m Model) renderFooter() string {
	var b strings.Builder

	if m.editing {
		b.WriteString(m.theme.Bold.Render(m.current().Label) + " " + m.input.View())
	}
	b.WriteString("\n")

	switch {
	case m.status == "":
	case m.statusErr:
		b.WriteString(m.theme.StatusError.Render(cli.ErrorIcon + " " + m.status))
	default:
		b.WriteString(m.theme.StatusSuccess.Render(cli.SuccessIcon + " " + m.status))
	}
	b.WriteString("\n")

	if m.editing {
		b.WriteString(m.help.View(editingHelp{m.keymap}))
	} else {
		b.WriteString(m.help.View(m.keymap))
	}
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
