// Package themes holds the color schemes for the dashboard editor.
package themes

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/nestegg/internal/model"
)

// Theme defines the visual style for the TUI.
type Theme struct {
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Section       lipgloss.Style
	Normal        lipgloss.Style
	Bold          lipgloss.Style
	Label         lipgloss.Style
	Selected      lipgloss.Style
	Locked        lipgloss.Style
	RoundedBox    lipgloss.Style
	Banner        lipgloss.Style
	StatusError   lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusInfo    lipgloss.Style
	Primary       lipgloss.Color
	Muted         lipgloss.Color
	Border        lipgloss.Color
	Foreground    lipgloss.Color
	Green         lipgloss.Color
	Amber         lipgloss.Color
	Red           lipgloss.Color
}

// Traffic returns a bold style in the color of t.
func (t Theme) Traffic(tr model.Traffic) lipgloss.Style {
	color := t.Muted
	switch tr {
	case model.TrafficGreen:
		color = t.Green
	case model.TrafficAmber:
		color = t.Amber
	case model.TrafficRed:
		color = t.Red
	}
	return lipgloss.NewStyle().Bold(true).Foreground(color)
}

func build(t Theme) Theme {
	t.Title = lipgloss.NewStyle().Bold(true).Foreground(t.Primary)
	t.Subtitle = lipgloss.NewStyle().Foreground(t.Muted).Italic(true)
	t.Section = lipgloss.NewStyle().Bold(true).Foreground(t.Primary).MarginTop(1)
	t.Normal = lipgloss.NewStyle().Foreground(t.Foreground)
	t.Bold = lipgloss.NewStyle().Bold(true).Foreground(t.Foreground)
	t.Label = lipgloss.NewStyle().Foreground(t.Muted)
	t.Selected = lipgloss.NewStyle().Background(t.Primary).Foreground(lipgloss.Color("#111111")).Bold(true)
	t.Locked = lipgloss.NewStyle().Foreground(t.Red).Strikethrough(true)
	t.RoundedBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1)
	t.Banner = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffffff")).Background(t.Red).Padding(0, 1)
	t.StatusError = lipgloss.NewStyle().Foreground(t.Red).Bold(true)
	t.StatusSuccess = lipgloss.NewStyle().Foreground(t.Green).Bold(true)
	t.StatusInfo = lipgloss.NewStyle().Foreground(t.Muted).Italic(true)
	return t
}

// Default is the default theme.
var Default = build(Theme{
	Primary:    lipgloss.Color("#5fa8a0"),
	Muted:      lipgloss.Color("#737373"),
	Border:     lipgloss.Color("#404040"),
	Foreground: lipgloss.Color("#fafafa"),
	Green:      lipgloss.Color("#10b981"),
	Amber:      lipgloss.Color("#f59e0b"),
	Red:        lipgloss.Color("#ef4444"),
})

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = build(Theme{
	Primary:    lipgloss.Color("#cba6f7"),
	Muted:      lipgloss.Color("#6c7086"),
	Border:     lipgloss.Color("#45475a"),
	Foreground: lipgloss.Color("#cdd6f4"),
	Green:      lipgloss.Color("#a6e3a1"),
	Amber:      lipgloss.Color("#f9e2af"),
	Red:        lipgloss.Color("#f38ba8"),
})

// ByName returns the named theme, falling back to Default.
func ByName(name string) Theme {
	if name == "catppuccin" || name == "catppuccin-mocha" {
		return CatppuccinMocha
	}
	return Default
}
