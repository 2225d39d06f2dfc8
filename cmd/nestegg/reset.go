package main

import (
	"github.com/spf13/cobra"

	"github.com/Veraticus/nestegg/internal/cli"
)

func resetCmd(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset every field to its default",
		Long: `Reset replaces the saved dashboard with the defaults.

This is a destructive operation: there is no history, so export first if you want a copy.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dash, cleanup, err := a.openDashboard(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			if !force {
				ok, err := cli.NewNonBlockingReader(cmd.InOrStdin()).
					Confirm(cmd.Context(), out, "This will replace every field with its default. Continue?")
				if err != nil {
					return err
				}
				if !ok {
					write(out, "Reset canceled.\n")
					return nil
				}
			}

			dash.Reset(cmd.Context())
			write(out, "%s\n", cli.FormatSuccess("Dashboard reset to defaults"))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation prompt")
	return cmd
}
