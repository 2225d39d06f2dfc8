package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/nestegg/internal/cli"
	"github.com/Veraticus/nestegg/internal/common"
	"github.com/Veraticus/nestegg/internal/config"
	"github.com/Veraticus/nestegg/internal/model"
	"github.com/Veraticus/nestegg/internal/ofx"
)

func importOFXCmd(a *app) *cobra.Command {
	var (
		category string
		year     int
		add      bool
		dryRun   bool
	)

	cmd := &cobra.Command{
		Use:   "import-ofx <files...>",
		Short: "Total debits from OFX/QFX statements into an actual discretionary category",
		Long: `Read OFX/QFX statements exported from your bank, total every debit dated in the
chosen calendar year, and record it as the actual spend for one discretionary category.

Transactions that appear in more than one file (same account and transaction ID) are
counted once. Credits are ignored. Export a statement per category, for example the card
you use for travel, so the total means what the category says.`,
		Example: `  nestegg import-ofx --category travel ~/Downloads/travel-card-2026.qfx
  nestegg import-ofx --category other --year 2025 'statements/*.ofx'
  nestegg import-ofx --category flying --add aeroclub.ofx`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat := model.Category(category)
			if !cat.Valid() {
				return common.NewUserError(fmt.Sprintf("unknown category %q (travel, flying, other)", category), nil)
			}

			files, err := expandFiles(args)
			if err != nil {
				return err
			}

			handler := cli.NewInterruptHandler(cmd.ErrOrStderr(), "Import interrupted, nothing was saved.")
			ctx := handler.HandleInterrupts(cmd.Context())

			parser := ofx.NewParser(slog.Default())
			progress := cli.NewProgress(cmd.ErrOrStderr(), len(files), "Reading statements")

			var debits []ofx.Debit
			for _, path := range files {
				parsed, err := parseStatement(ctx, parser, path)
				if err != nil {
					if handler.WasInterrupted() {
						return nil
					}
					return err
				}
				debits = append(debits, parsed...)
				progress.Step()
			}
			progress.Done()

			from, to := ofx.Year(year, time.Local)
			unique := ofx.Dedupe(debits)
			total := ofx.Sum(unique, from, to)

			slog.Info("Totalled statement debits",
				"files", len(files),
				"debits", len(debits),
				"unique", len(unique),
				"year", year,
				"total", total)

			out := cmd.OutOrStdout()
			if dryRun {
				write(out, "%s %s for %d: %s (%d debits, dry run)\n",
					cli.InfoStyle.Render("ℹ"), cat.Label(), year, cli.FormatCurrency(total), len(unique))
				return nil
			}

			return a.saveActual(ctx, out, cat, year, total, len(unique), add)
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "discretionary category (travel, flying, other)")
	cmd.Flags().IntVar(&year, "year", time.Now().Year(), "calendar year to total")
	cmd.Flags().BoolVar(&add, "add", false, "add to the current actual instead of replacing it")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the total without saving it")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

// saveActual records total as the category's actual for year. A canceled ctx means the import was
// interrupted: nothing is opened or reported, since the interrupt handler has already said so.
func (a *app) saveActual(ctx context.Context, out io.Writer, cat model.Category, year int, total float64, count int, add bool) error {
	if ctx.Err() != nil {
		return nil
	}

	dash, cleanup, err := a.openDashboard(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}
	defer cleanup()

	if add {
		total += dash.State().Discretionary.Actual.Get(cat)
	}
	if err := dash.SetField(ctx, "discretionary.actual."+string(cat), total); err != nil {
		return userFacing(dash, err)
	}
	if ctx.Err() != nil {
		// The save ran on a canceled context and cannot be trusted.
		return nil
	}

	write(out, "%s\n", cli.FormatSuccess(fmt.Sprintf("%s actual for %d = %s (%d debits)",
		cat.Label(), year, cli.FormatCurrency(total), count)))
	return nil
}

// expandFiles resolves globs and ~ in args, keeping the order they were given.
func expandFiles(args []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)
	for _, arg := range args {
		pattern := config.ExpandPath(arg)
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad file pattern %q: %w", arg, err)
		}
		if len(matches) == 0 {
			return nil, common.NewUserError("no statement files match "+arg, common.ErrNotFound)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}
	return files, nil
}

func parseStatement(ctx context.Context, parser *ofx.Parser, path string) ([]ofx.Debit, error) {
	f, err := os.Open(path) //nolint:gosec // user-supplied statement path
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("Failed to close statement", "path", path, "error", err)
		}
	}()

	debits, err := parser.ParseFile(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return debits, nil
}
