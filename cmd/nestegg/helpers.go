package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/Veraticus/nestegg/internal/common"
	"github.com/Veraticus/nestegg/internal/dashboard"
	"github.com/Veraticus/nestegg/internal/storage"
)

// openDashboard opens the configured store and loads the session. cleanup closes the store.
func (a *app) openDashboard(ctx context.Context) (*dashboard.Dashboard, func(), error) {
	kv, err := storage.Open(ctx, a.cfg.Store.Driver, a.cfg.Store.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s store: %w", a.cfg.Store.Driver, err)
	}

	cleanup := func() {
		if err := kv.Close(); err != nil {
			slog.Error("Failed to close store", "error", err)
		}
	}

	logger := slog.Default().With("store", a.cfg.Store.Driver)
	store := storage.NewStateStore(kv, a.cfg.Store.Key, logger)
	dash := dashboard.New(ctx, store,
		dashboard.WithLogger(logger),
		dashboard.WithLockEnforcement(a.cfg.Dashboard.EnforceLock),
	)
	return dash, cleanup, nil
}

// userFacing turns a locked-edit refusal into a message naming the red gates.
func userFacing(dash *dashboard.Dashboard, err error) error {
	if errors.Is(err, dashboard.ErrDiscretionaryLocked) {
		gates := strings.Join(dash.Derived().RedGates(), ", ")
		return common.NewUserError("planned discretionary amounts are locked until these gates are no longer red: "+gates, err)
	}
	return err
}

// write prints to w, logging rather than failing on a broken pipe.
func write(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		slog.Error("failed to write output", "error", err)
	}
}
