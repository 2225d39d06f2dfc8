package tui

import (
	"github.com/atotto/clipboard"

	"github.com/Veraticus/nestegg/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Theme     themes.Theme
	Clipboard func(string) error
	Width     int
	Height    int
	ShowHelp  bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

func defaultConfig() Config {
	return Config{
		Theme:     themes.Default,
		Clipboard: clipboard.WriteAll,
		Width:     100,
		Height:    32,
		ShowHelp:  false,
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithClipboard replaces the system clipboard writer used by "copy JSON".
func WithClipboard(write func(string) error) Option {
	return func(c *Config) {
		if write != nil {
			c.Clipboard = write
		}
	}
}

// WithFullHelp starts with the full key help expanded.
func WithFullHelp(show bool) Option {
	return func(c *Config) {
		c.ShowHelp = show
	}
}
