package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/cperrin88/aptbridge/internal/logger"
	"github.com/cperrin88/aptbridge/pkg/aptdb"
	"github.com/cperrin88/aptbridge/pkg/catalog"
	"github.com/cperrin88/aptbridge/pkg/config"
	"github.com/cperrin88/aptbridge/pkg/errors"
	"github.com/cperrin88/aptbridge/pkg/model"
	"github.com/cperrin88/aptbridge/pkg/orchestrator"
	"github.com/cperrin88/aptbridge/pkg/store"
	"github.com/cperrin88/aptbridge/pkg/supervisor"
	"github.com/spf13/cobra"
)

// These variables will be set by the main package
var (
	ConfigPath *string
	Verbose    *bool
	JSONLogs   *bool
)

// Stdout receives command results and progress lines.
var Stdout io.Writer = os.Stdout

func loadConfig() (*config.Config, error) {
	path := getConfigPath()
	if path == "" {
		return nil, errors.Config("Failed to determine configuration path", errors.ErrEmptyConfigPath)
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, errors.Config("Failed to load configuration", err)
	}
	return cfg, nil
}

func getConfigPath() string {
	if ConfigPath != nil && *ConfigPath != "" {
		return *ConfigPath
	}

	defaultPath, err := config.GetDefaultConfigPath()
	if err != nil {
		logger.Warn("Failed to get default config path, using empty path", logger.Fields{"error": err.Error()})
		return ""
	}
	return defaultPath
}

// setupLogging applies the configured level, raised to debug by --verbose.
func setupLogging(cfg *config.Config) {
	format := logger.FormatText
	if JSONLogs != nil && *JSONLogs {
		format = logger.FormatJSON
	}
	level := cfg.Settings.LogLevel
	if Verbose != nil && *Verbose {
		level = "debug"
	}
	logger.InitLogger(level, format)
}

// newSource opens the package database snapshot described by cfg.
var newSource = func(cfg *config.Config) catalog.PackageSource {
	s := cfg.Settings
	return aptdb.New(s.DpkgStatus, s.ListsDir, s.Architecture)
}

// newRunner creates the process runner used by mutation commands.
var newRunner = func(cfg *config.Config) orchestrator.Runner {
	return supervisor.New(cfg.Settings.PollInterval)
}

func loadCatalog() (*catalog.Catalog, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	setupLogging(cfg)

	c := catalog.New(newSource(cfg), store.Directory(cfg.Settings.StoreDir))
	c.FilterLimit = cfg.Settings.FilterLimit
	return c, nil
}

// loadOrchestrator creates an orchestrator that streams progress to Stdout.
func loadOrchestrator() (*orchestrator.Orchestrator, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	setupLogging(cfg)

	orch := orchestrator.New(newRunner(cfg), orchestrator.Tools{
		AptGet:    cfg.Settings.AptGet,
		DpkgQuery: cfg.Settings.DpkgQuery,
	})
	orch.Hooks = orchestrator.Hooks{OnEvent: func(e orchestrator.Event) {
		writeProgress(model.ProgressEvent{Percentage: e.Percentage, Message: e.Msg})
	}}
	return orch, nil
}

// writeJSON prints v as indented JSON.
func writeJSON(v interface{}) error {
	enc := json.NewEncoder(Stdout)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", JSONIndent)
	if err := enc.Encode(v); err != nil {
		return errors.Internal("Failed to encode result", err)
	}
	return nil
}

// writeLine prints v as a single JSON line.
func writeLine(v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.Internal("Failed to encode result", err)
	}
	_, _ = fmt.Fprintln(Stdout, string(data))
	return nil
}

func writeProgress(e model.ProgressEvent) {
	if err := writeLine(model.NewProgressMessage(e)); err != nil {
		logger.Warn("Failed to write progress", logger.Fields{"error": err.Error()})
	}
}

// requireArg builds an argument check that reports a missing argument as
// an INVALID_ARGUMENTS error.
func requireArg(message string) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) < 1 {
			return errors.Validation(errors.CodeInvalidArguments, message)
		}
		if len(args) > 1 {
			return errors.Validation(errors.CodeInvalidArguments,
				fmt.Sprintf("Unexpected arguments: %v", args[1:]))
		}
		return nil
	}
}

// noArgs rejects positional arguments.
func noArgs(_ *cobra.Command, args []string) error {
	if len(args) > 0 {
		return errors.Validation(errors.CodeInvalidArguments,
			fmt.Sprintf("Unexpected arguments: %v", args))
	}
	return nil
}

// UsageError marks errors raised by cobra itself, before a command runs.
func UsageError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := errors.As(err); ok {
		return err
	}
	return errors.Validation(errors.CodeInvalidArguments, err.Error())
}

// WriteError renders err as the single-line JSON error object.
func WriteError(w io.Writer, err error) {
	be := errors.Normalize(err)
	if be == nil {
		return
	}
	_, _ = fmt.Fprintln(w, be.ToJSON())
}
