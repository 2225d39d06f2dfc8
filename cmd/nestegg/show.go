package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Veraticus/nestegg/internal/cli"
	"github.com/Veraticus/nestegg/internal/engine"
	"github.com/Veraticus/nestegg/internal/migrate"
	"github.com/Veraticus/nestegg/internal/model"
)

// snapshot is the machine-readable form of "show".
type snapshot struct {
	State   model.AppState `json:"state" yaml:"state"`
	Derived engine.Derived `json:"derived" yaml:"derived"`
}

func showCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Render the dashboard",
		Long: `Render the dashboard with every derived value recomputed from the saved state.

Use --format json or --format yaml to get the state and derived values for scripting.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dash, cleanup, err := a.openDashboard(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			s := dash.State()
			d := dash.Derived()
			out := cmd.OutOrStdout()

			switch format {
			case "text", "":
				write(out, "%s", cli.RenderDashboard(s, d, time.Now()))
				return nil
			case "json":
				data, err := json.MarshalIndent(snapshot{State: migrate.Sanitize(s), Derived: d}, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to encode dashboard: %w", err)
				}
				write(out, "%s\n", data)
				return nil
			case "yaml":
				data, err := yaml.Marshal(snapshot{State: migrate.Sanitize(s), Derived: d})
				if err != nil {
					return fmt.Errorf("failed to encode dashboard: %w", err)
				}
				write(out, "%s", data)
				return nil
			}
			return fmt.Errorf("unknown format %q (text, json, yaml)", format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format (text, json, yaml)")
	return cmd
}
