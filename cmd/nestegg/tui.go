package main

import (
	"github.com/spf13/cobra"

	"github.com/Veraticus/nestegg/internal/tui"
	"github.com/Veraticus/nestegg/internal/tui/themes"
)

func tuiCmd(a *app) *cobra.Command {
	var theme string

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Edit the dashboard interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dash, cleanup, err := a.openDashboard(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			return tui.Run(cmd.Context(), dash, tui.WithTheme(themes.ByName(theme)))
		},
	}

	cmd.Flags().StringVar(&theme, "theme", "default", "color theme (default, catppuccin)")
	return cmd
}
