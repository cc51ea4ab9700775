// Package config provides configuration management for the bridge. It
// handles loading, validating and saving the YAML settings file that tells
// the bridge where the package database lives, where store definitions are
// kept and which tools to drive.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cperrin88/aptbridge/pkg/errors"
	"github.com/cperrin88/aptbridge/pkg/fsutil"
	"github.com/cperrin88/aptbridge/pkg/platform"
	"gopkg.in/yaml.v3"
)

// StoreDirEnv overrides the store directory from the environment.
const StoreDirEnv = "APTBRIDGE_STORE_DIR"

// Config represents the application configuration.
type Config struct {
	Settings Settings `yaml:"settings"`
}

// Settings represents general application settings.
type Settings struct {
	// Store definitions
	StoreDir string `yaml:"store_dir"`

	// Package database
	DpkgStatus   string `yaml:"dpkg_status"`
	ListsDir     string `yaml:"lists_dir"`
	Architecture string `yaml:"architecture,omitempty"`

	// External tools
	AptGet    string `yaml:"apt_get"`
	DpkgQuery string `yaml:"dpkg_query"`

	// Supervisor
	PollInterval time.Duration `yaml:"poll_interval"`

	// Catalog
	FilterLimit int `yaml:"filter_limit"`

	// Output settings
	LogLevel string `yaml:"log_level"` // debug, info, warn, error
}

// Default configuration values.
const (
	// DefaultPollInterval is how long the supervisor waits for status data
	// before checking the child again.
	DefaultPollInterval = 100 * time.Millisecond

	// DefaultFilterLimit caps filter-packages results.
	DefaultFilterLimit = 1000

	// YAMLIndent is the number of spaces to use for YAML indentation.
	YAMLIndent = 2
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Settings: Settings{
			StoreDir:     fsutil.DefaultStoreDir,
			DpkgStatus:   fsutil.DefaultDpkgStatus,
			ListsDir:     fsutil.DefaultListsDir,
			Architecture: platform.CurrentArch(),
			AptGet:       "apt-get",
			DpkgQuery:    "dpkg-query",
			PollInterval: DefaultPollInterval,
			FilterLimit:  DefaultFilterLimit,
			LogLevel:     "info",
		},
	}
}

// LoadConfig loads configuration from a file. A missing file yields the
// default configuration.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errors.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidConfigPath, err.Error())
	}

	file, err := os.Open(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			cfg.applyEnv()
			return cfg, nil
		}
		return nil, errors.Wrapf(err, "failed to open config file: %s", path)
	}
	defer func() { _ = file.Close() }()

	return LoadConfigFromReader(file)
}

// LoadConfigFromReader loads configuration from an io.Reader.
func LoadConfigFromReader(reader io.Reader) (*Config, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config data")
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, errors.Wrap(errors.ErrConfigParse, err.Error())
	}

	config.applyDefaults()
	config.applyEnv()

	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrConfigValidation, err.Error())
	}

	return &config, nil
}

// SaveConfig saves configuration to a file, replacing it atomically.
func (c *Config) SaveConfig(path string) error {
	if path == "" {
		return errors.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrap(errors.ErrInvalidConfigPath, err.Error())
	}

	if err := os.MkdirAll(filepath.Dir(absPath), fsutil.DirModeDefault); err != nil {
		return errors.Wrap(errors.ErrConfigDirectory, err.Error())
	}

	tempPath := absPath + ".tmp"
	file, err := os.OpenFile(tempPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fsutil.FileModeDefault)
	if err != nil {
		return errors.Wrap(errors.ErrConfigFileCreate, err.Error())
	}

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(YAMLIndent)

	if err := encoder.Encode(c); err != nil {
		_ = file.Close()
		_ = os.Remove(tempPath)
		return errors.Wrap(errors.ErrConfigEncode, err.Error())
	}

	_ = encoder.Close()
	_ = file.Close()

	if err := os.Rename(tempPath, absPath); err != nil {
		_ = os.Remove(tempPath)
		return errors.Wrap(errors.ErrConfigFileRename, err.Error())
	}

	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errors.ErrConfigValidation
	}
	s := c.Settings
	if s.PollInterval <= 0 {
		return fmt.Errorf("poll_interval must be positive, got %s", s.PollInterval)
	}
	if s.FilterLimit < 0 {
		return fmt.Errorf("filter_limit cannot be negative, got %d", s.FilterLimit)
	}
	if s.Architecture != "" && !platform.IsValidArch(s.Architecture) {
		return fmt.Errorf("unknown architecture %q, must be one of %v", s.Architecture, platform.ValidArch())
	}
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(s.LogLevel)] {
		return fmt.Errorf("%w: '%s', must be one of: debug, info, warn, error", errors.ErrInvalidLogLevel, s.LogLevel)
	}
	return nil
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() (string, error) {
	dir, err := fsutil.GetConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// applyDefaults fills in missing values with defaults.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	if c.Settings.StoreDir == "" {
		c.Settings.StoreDir = defaults.Settings.StoreDir
	}
	if c.Settings.DpkgStatus == "" {
		c.Settings.DpkgStatus = defaults.Settings.DpkgStatus
	}
	if c.Settings.ListsDir == "" {
		c.Settings.ListsDir = defaults.Settings.ListsDir
	}
	if c.Settings.Architecture == "" {
		c.Settings.Architecture = defaults.Settings.Architecture
	}
	if c.Settings.AptGet == "" {
		c.Settings.AptGet = defaults.Settings.AptGet
	}
	if c.Settings.DpkgQuery == "" {
		c.Settings.DpkgQuery = defaults.Settings.DpkgQuery
	}
	if c.Settings.PollInterval == 0 {
		c.Settings.PollInterval = defaults.Settings.PollInterval
	}
	if c.Settings.FilterLimit == 0 {
		c.Settings.FilterLimit = defaults.Settings.FilterLimit
	}
	if c.Settings.LogLevel == "" {
		c.Settings.LogLevel = defaults.Settings.LogLevel
	}
}

func (c *Config) applyEnv() {
	if dir := os.Getenv(StoreDirEnv); dir != "" {
		c.Settings.StoreDir = dir
	}
}
