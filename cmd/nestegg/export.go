package main

import (
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/Veraticus/nestegg/internal/cli"
	"github.com/Veraticus/nestegg/internal/config"
)

// copyToClipboard is replaced in tests.
var copyToClipboard = clipboard.WriteAll

func exportCmd(a *app) *cobra.Command {
	var (
		format string
		output string
		toClip bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print the saved state as JSON or YAML",
		Example: `  nestegg export > dashboard.json
  nestegg export --format yaml -o ~/dashboard.yaml
  nestegg export --clipboard`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dash, cleanup, err := a.openDashboard(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			data, err := dash.Export(format)
			if err != nil {
				return err
			}

			switch {
			case toClip:
				if err := copyToClipboard(string(data)); err != nil {
					return fmt.Errorf("failed to copy to clipboard: %w", err)
				}
				write(cmd.ErrOrStderr(), "%s\n", cli.FormatSuccess(fmt.Sprintf("Copied %d bytes to the clipboard", len(data))))
			case output != "":
				path := config.ExpandPath(output)
				if err := os.WriteFile(path, data, 0o600); err != nil {
					return fmt.Errorf("failed to write %s: %w", path, err)
				}
				write(cmd.ErrOrStderr(), "%s\n", cli.FormatSuccess("Wrote "+path))
			default:
				write(cmd.OutOrStdout(), "%s", data)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format (json, yaml)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to a file instead of stdout")
	cmd.Flags().BoolVar(&toClip, "clipboard", false, "copy to the system clipboard")
	return cmd
}
