package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/nestegg/internal/common"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("NESTEGG_TEST_DIR", "/srv/nestegg")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "tilde", in: "~", want: home},
		{name: "tilde path", in: "~/data/n.db", want: filepath.Join(home, "data/n.db")},
		{name: "env var", in: "$NESTEGG_TEST_DIR/n.db", want: "/srv/nestegg/n.db"},
		{name: "absolute", in: "/tmp/n.db", want: "/tmp/n.db"},
		{name: "tilde elsewhere", in: "/tmp/~x", want: "/tmp/~x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.in))
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.True(t, strings.HasSuffix(cfg.Store.Path, filepath.Join(".local", "share", "nestegg", "nestegg.db")))
	assert.False(t, strings.HasPrefix(cfg.Store.Path, "~"))
	assert.Equal(t, DefaultRecordKey, cfg.Store.Key)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.True(t, cfg.Dashboard.EnforceLock)
}

func TestLoad_FromYAML(t *testing.T) {
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(`
store:
  driver: file
  path: /tmp/nestegg
  key: household
logging:
  level: debug
  format: json
dashboard:
  enforce_lock: false
`)))

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, StoreConfig{Driver: "file", Path: "/tmp/nestegg", Key: "household"}, cfg.Store)
	assert.Equal(t, LoggingConfig{Level: "debug", Format: "json"}, cfg.Logging)
	assert.False(t, cfg.Dashboard.EnforceLock)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		wantErr error
		set     map[string]any
		name    string
	}{
		{name: "driver", set: map[string]any{KeyStoreDriver: "postgres"}, wantErr: common.ErrInvalidConfig},
		{name: "level", set: map[string]any{KeyLogLevel: "trace"}, wantErr: common.ErrInvalidConfig},
		{name: "format", set: map[string]any{KeyLogFormat: "xml"}, wantErr: common.ErrInvalidConfig},
		{name: "path", set: map[string]any{KeyStorePath: ""}, wantErr: common.ErrMissingConfig},
		{name: "key", set: map[string]any{KeyStoreKey: ""}, wantErr: common.ErrMissingConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			for k, val := range tt.set {
				v.Set(k, val)
			}
			_, err := Load(v)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoad_MemoryNeedsNoPath(t *testing.T) {
	v := viper.New()
	v.Set(KeyStoreDriver, "memory")
	v.Set(KeyStorePath, "")

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Store.Driver)
}
