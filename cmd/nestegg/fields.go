package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Veraticus/nestegg/internal/cli"
	"github.com/Veraticus/nestegg/internal/model"
)

func getCmd(a *app) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "get <field>",
		Short: "Print one field's current value",
		Example: `  nestegg get cash.cashBalance
  nestegg get inflation.cpiYoY --raw`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := model.LookupField(args[0])
			if err != nil {
				return err
			}
			dash, cleanup, err := a.openDashboard(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			v := f.Value(dash.State())
			if raw {
				write(cmd.OutOrStdout(), "%v\n", v)
				return nil
			}
			write(cmd.OutOrStdout(), "%s\n", cli.FormatValue(f, v))
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "print the stored value rather than the formatted one")
	return cmd
}

func setCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set <field> <value>",
		Short: "Change one field",
		Long: `Change one field and save the dashboard.

Money accepts "700000", "700,000" or "$700,000". Percentages accept a fraction ("0.03")
or a percentage ("3%"). Toggles accept yes/no. Choices must be one of the listed options;
run "nestegg fields" to see them.`,
		Example: `  nestegg set cash.cashBalance 700000
  nestegg set inflation.cpiYoY 3.4%
  nestegg set spouse.confidence amber`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dash, cleanup, err := a.openDashboard(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			path, input := args[0], args[1]
			if err := dash.SetFieldString(cmd.Context(), path, input); err != nil {
				return userFacing(dash, err)
			}

			f, _ := model.LookupField(path)
			write(cmd.OutOrStdout(), "%s\n", cli.FormatSuccess(f.Label+" = "+cli.FormatValue(f, f.Value(dash.State()))))
			if banner := cli.RenderLockBanner(dash.Derived()); banner != "" {
				write(cmd.OutOrStdout(), "%s\n", banner)
			}
			return nil
		},
	}
}

func fieldsCmd(a *app) *cobra.Command {
	var section string

	cmd := &cobra.Command{
		Use:   "fields",
		Short: "List every editable field with its current value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dash, cleanup, err := a.openDashboard(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			s := dash.State()
			var b strings.Builder
			b.WriteString(cli.TableHeaderStyle.Render(
				cli.TableCellStyle.Width(40).Render("FIELD") +
					cli.TableCellStyle.Width(10).Render("KIND") +
					cli.TableCellStyle.Render("VALUE"),
			))
			b.WriteString("\n")
			for _, f := range model.Fields() {
				if section != "" && f.Section != section {
					continue
				}
				value := cli.FormatValue(f, f.Value(s))
				if len(f.Options) > 0 {
					value += cli.SubtleStyle.Render("  (" + strings.Join(f.Options, "|") + ")")
				}
				b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
					cli.TableCellStyle.Width(40).Render(f.Path),
					cli.TableCellStyle.Width(10).Render(f.Kind.String()),
					value,
				))
				b.WriteString("\n")
			}
			write(cmd.OutOrStdout(), "%s", b.String())
			return nil
		},
	}

	cmd.Flags().StringVarP(&section, "section", "s", "", "only list fields in this section")
	return cmd
}
