package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/nestegg/internal/dashboard"
)

// ErrNoDashboard is returned by Run without a dashboard to edit.
var ErrNoDashboard = errors.New("dashboard is required")

// Run opens the editor on the alternate screen until the user quits or ctx is canceled.
func Run(ctx context.Context, dash *dashboard.Dashboard, opts ...Option) error {
	if dash == nil {
		return ErrNoDashboard
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	p := tea.NewProgram(newModel(dash, cfg), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
