package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cperrin88/aptbridge/pkg/errors"
	"github.com/cperrin88/aptbridge/pkg/fsutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "info", cfg.Settings.LogLevel)
	assert.Equal(t, fsutil.DefaultStoreDir, cfg.Settings.StoreDir)
	assert.Equal(t, fsutil.DefaultDpkgStatus, cfg.Settings.DpkgStatus)
	assert.Equal(t, fsutil.DefaultListsDir, cfg.Settings.ListsDir)
	assert.Equal(t, 100*time.Millisecond, cfg.Settings.PollInterval)
	assert.Equal(t, 1000, cfg.Settings.FilterLimit)
	assert.NotEmpty(t, cfg.Settings.Architecture)
}

func TestLoadConfig(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	configContent := `settings:
  store_dir: /srv/stores
  log_level: debug
  architecture: arm64
  poll_interval: 250ms
  filter_limit: 50`

	require.NoError(t, os.WriteFile(configPath, []byte(configContent), fsutil.FileModeDefault))

	cfg, err := LoadConfig(configPath)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "/srv/stores", cfg.Settings.StoreDir)
	assert.Equal(t, "debug", cfg.Settings.LogLevel)
	assert.Equal(t, "arm64", cfg.Settings.Architecture)
	assert.Equal(t, 250*time.Millisecond, cfg.Settings.PollInterval)
	assert.Equal(t, 50, cfg.Settings.FilterLimit)
	// Unset keys fall back to defaults
	assert.Equal(t, fsutil.DefaultDpkgStatus, cfg.Settings.DpkgStatus)
	assert.Equal(t, "apt-get", cfg.Settings.AptGet)
}

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Settings.ListsDir, cfg.Settings.ListsDir)
}

func TestLoadConfigEmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.ErrorIs(t, err, errors.ErrEmptyConfigPath)
}

func TestLoadConfigStoreDirFromEnv(t *testing.T) {
	t.Setenv(StoreDirEnv, "/tmp/stores")

	cfg, err := LoadConfigFromReader(strings.NewReader("settings:\n  store_dir: /etc/other\n"))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/stores", cfg.Settings.StoreDir)
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	_, err := LoadConfigFromReader(strings.NewReader("settings: [unclosed"))
	assert.ErrorIs(t, err, errors.ErrConfigParse)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"bad log level", func(c *Config) { c.Settings.LogLevel = "loud" }, true},
		{"negative limit", func(c *Config) { c.Settings.FilterLimit = -1 }, true},
		{"zero poll interval", func(c *Config) { c.Settings.PollInterval = 0 }, true},
		{"unknown arch", func(c *Config) { c.Settings.Architecture = "x86_64" }, true},
		{"uppercase level", func(c *Config) { c.Settings.LogLevel = "DEBUG" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSaveConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Settings.LogLevel = "debug"
	cfg.Settings.StoreDir = "/opt/stores"

	configPath := filepath.Join(t.TempDir(), "nested", "config.yaml")
	require.NoError(t, cfg.SaveConfig(configPath))

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "store_dir: /opt/stores")

	loaded, err := LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, "debug", loaded.Settings.LogLevel)
	assert.Equal(t, "/opt/stores", loaded.Settings.StoreDir)
}

func TestGetSetValue(t *testing.T) {
	cfg := DefaultConfig()

	require.NoError(t, cfg.SetValue("filter_limit", "25"))
	require.NoError(t, cfg.SetValue("poll_interval", "50ms"))
	require.NoError(t, cfg.SetValue("store_dir", "/x"))

	v, err := cfg.GetValue("filter_limit")
	require.NoError(t, err)
	assert.Equal(t, "25", v)

	v, err = cfg.GetValue("poll_interval")
	require.NoError(t, err)
	assert.Equal(t, "50ms", v)

	_, err = cfg.GetValue("nope")
	assert.ErrorIs(t, err, errors.ErrUnknownConfigKey)
	assert.ErrorIs(t, cfg.SetValue("nope", "1"), errors.ErrUnknownConfigKey)
	assert.Error(t, cfg.SetValue("filter_limit", "many"))
	assert.Error(t, cfg.SetValue("log_level", "chatty"))
}

func TestToMap(t *testing.T) {
	m := DefaultConfig().ToMap()
	for _, key := range []string{"store_dir", "dpkg_status", "lists_dir", "apt_get", "dpkg_query", "poll_interval", "filter_limit", "log_level", "architecture"} {
		assert.Contains(t, m, key)
	}
}
