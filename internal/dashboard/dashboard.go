// Package dashboard holds the current snapshot and applies edits to it.
//
// A Dashboard never mutates a snapshot: every edit builds a new one, swaps it in and then saves it.
// Saving is best effort. A failed write is logged and otherwise ignored, because the in-memory
// snapshot stays authoritative for the running session.
package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Veraticus/nestegg/internal/engine"
	"github.com/Veraticus/nestegg/internal/migrate"
	"github.com/Veraticus/nestegg/internal/model"
	"github.com/Veraticus/nestegg/internal/service"
)

// ErrDiscretionaryLocked is returned when a planned discretionary amount is edited while a gate is red.
var ErrDiscretionaryLocked = errors.New("discretionary expansion is locked while a gate is red")

// ErrUnknownFormat is returned by Export for an unsupported format.
var ErrUnknownFormat = errors.New("unknown export format")

// Export formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Dashboard is a single-user session over one persisted snapshot.
type Dashboard struct {
	store       service.StateStore
	logger      *slog.Logger
	state       model.AppState
	loaded      bool
	enforceLock bool
}

// Option configures a Dashboard.
type Option func(*Dashboard)

// WithLogger sets the logger used for persistence warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dashboard) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithLockEnforcement controls whether planned discretionary edits are refused while locked.
// It is on by default.
func WithLockEnforcement(on bool) Option {
	return func(d *Dashboard) {
		d.enforceLock = on
	}
}

// New loads the saved snapshot once, falling back to the defaults when nothing usable is saved.
func New(ctx context.Context, store service.StateStore, opts ...Option) *Dashboard {
	d := &Dashboard{
		store:       store,
		logger:      slog.Default(),
		state:       model.DefaultState(),
		enforceLock: true,
	}
	for _, opt := range opts {
		opt(d)
	}

	if s, ok := store.Load(ctx); ok {
		d.state = s
		d.loaded = true
	}
	d.logger.Debug("dashboard ready", "restored", d.loaded)
	return d
}

// Restored reports whether the starting snapshot came from the store rather than the defaults.
func (d *Dashboard) Restored() bool {
	return d.loaded
}

// State returns the current snapshot. The caller owns the copy.
func (d *Dashboard) State() model.AppState {
	return d.state
}

// Derived recomputes the derived values from the current snapshot.
func (d *Dashboard) Derived() engine.Derived {
	return engine.Derive(d.state)
}

// Set replaces the whole snapshot. The replacement is repaired like a loaded one.
// Whole replacements are not subject to the discretionary lock.
func (d *Dashboard) Set(ctx context.Context, s model.AppState) {
	d.commit(ctx, migrate.Coerce(migrate.Tree(s)))
}

// SetSection replaces one section. A malformed value yields that section's defaults.
func (d *Dashboard) SetSection(ctx context.Context, section string, value any) error {
	next, err := migrate.ReplaceSection(d.state, section, value)
	if err != nil {
		return err
	}
	if next.Discretionary.Planned != d.state.Discretionary.Planned {
		if err := d.checkLock(); err != nil {
			return fmt.Errorf("%s.planned: %w", section, err)
		}
	}
	d.commit(ctx, next)
	return nil
}

// SetField replaces a single field addressed by its dotted path.
func (d *Dashboard) SetField(ctx context.Context, path string, value any) error {
	f, err := model.LookupField(path)
	if err != nil {
		return err
	}
	if strings.HasPrefix(path, model.SectionDiscretionary+".planned.") {
		if err := d.checkLock(); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	next, err := f.Apply(d.state, value)
	if err != nil {
		return err
	}
	d.commit(ctx, next)
	return nil
}

// SetFieldString parses input for the field at path and applies it.
func (d *Dashboard) SetFieldString(ctx context.Context, path, input string) error {
	f, err := model.LookupField(path)
	if err != nil {
		return err
	}
	v, err := f.Parse(input)
	if err != nil {
		return err
	}
	return d.SetField(ctx, path, v)
}

// Cycle moves a choice or toggle field to its next (step > 0) or previous option.
func (d *Dashboard) Cycle(ctx context.Context, path string, step int) error {
	f, err := model.LookupField(path)
	if err != nil {
		return err
	}
	next, err := f.Next(d.state, step)
	if err != nil {
		return err
	}
	d.commit(ctx, next)
	return nil
}

// Reset returns to the default snapshot.
func (d *Dashboard) Reset(ctx context.Context) {
	d.commit(ctx, model.DefaultState())
}

// Export renders the snapshot as indented JSON or YAML for copying out.
func (d *Dashboard) Export(format string) ([]byte, error) {
	s := migrate.Sanitize(d.state)
	switch format {
	case FormatJSON, "":
		data, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode state: %w", err)
		}
		return append(data, '\n'), nil
	case FormatYAML:
		data, err := yaml.Marshal(s)
		if err != nil {
			return nil, fmt.Errorf("failed to encode state: %w", err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// PlannedLocked reports whether planned discretionary edits are currently refused.
// It is always false when lock enforcement is off.
func (d *Dashboard) PlannedLocked() bool {
	return d.enforceLock && d.Derived().Locked
}

func (d *Dashboard) checkLock() error {
	if d.PlannedLocked() {
		return ErrDiscretionaryLocked
	}
	return nil
}

// commit swaps in next and saves it without waiting on the outcome.
func (d *Dashboard) commit(ctx context.Context, next model.AppState) {
	d.state = next
	if err := d.store.Save(ctx, next); err != nil {
		d.logger.Warn("failed to persist dashboard state", "error", err)
	}
}
