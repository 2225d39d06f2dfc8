package config

import (
	"fmt"
	"slices"

	"github.com/spf13/viper"

	"github.com/Veraticus/nestegg/internal/common"
)

// Keys read from viper.
const (
	KeyStoreDriver   = "store.driver"
	KeyStorePath     = "store.path"
	KeyStoreKey      = "store.key"
	KeyLogLevel      = "logging.level"
	KeyLogFormat     = "logging.format"
	KeyEnforceLock   = "dashboard.enforce_lock"
	DefaultStorePath = "~/.local/share/nestegg/nestegg.db"
	DefaultRecordKey = "retirement_dashboard_state_v1"
)

var (
	drivers    = []string{"sqlite", "file", "memory"}
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"console", "json"}
)

// Config is the resolved application configuration.
type Config struct {
	Store     StoreConfig
	Logging   LoggingConfig
	Dashboard DashboardConfig
}

// StoreConfig selects where the dashboard snapshot lives.
type StoreConfig struct {
	Driver string
	Path   string
	Key    string
}

// LoggingConfig controls the slog handler.
type LoggingConfig struct {
	Level  string
	Format string
}

// DashboardConfig holds session behaviour switches.
type DashboardConfig struct {
	EnforceLock bool
}

// SetDefaults registers the default for every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyStoreDriver, "sqlite")
	v.SetDefault(KeyStorePath, DefaultStorePath)
	v.SetDefault(KeyStoreKey, DefaultRecordKey)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
	v.SetDefault(KeyEnforceLock, true)
}

// Load reads and validates the configuration from v. Paths are expanded.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	cfg := &Config{
		Store: StoreConfig{
			Driver: v.GetString(KeyStoreDriver),
			Path:   ExpandPath(v.GetString(KeyStorePath)),
			Key:    v.GetString(KeyStoreKey),
		},
		Logging: LoggingConfig{
			Level:  v.GetString(KeyLogLevel),
			Format: v.GetString(KeyLogFormat),
		},
		Dashboard: DashboardConfig{
			EnforceLock: v.GetBool(KeyEnforceLock),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every closed-set setting.
func (c *Config) Validate() error {
	if !slices.Contains(drivers, c.Store.Driver) {
		return fmt.Errorf("%w: %s must be one of %v, got %q", common.ErrInvalidConfig, KeyStoreDriver, drivers, c.Store.Driver)
	}
	if c.Store.Driver != "memory" && c.Store.Path == "" {
		return fmt.Errorf("%w: %s", common.ErrMissingConfig, KeyStorePath)
	}
	if c.Store.Key == "" {
		return fmt.Errorf("%w: %s", common.ErrMissingConfig, KeyStoreKey)
	}
	if !slices.Contains(logLevels, c.Logging.Level) {
		return fmt.Errorf("%w: %s must be one of %v, got %q", common.ErrInvalidConfig, KeyLogLevel, logLevels, c.Logging.Level)
	}
	if !slices.Contains(logFormats, c.Logging.Format) {
		return fmt.Errorf("%w: %s must be one of %v, got %q", common.ErrInvalidConfig, KeyLogFormat, logFormats, c.Logging.Format)
	}
	return nil
}
