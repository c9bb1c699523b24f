package main

import (
	"fmt"
	"log/slog"

	"github.com/jonathan/resume-wizard/internal/config"
	"github.com/jonathan/resume-wizard/internal/customize"
	"github.com/jonathan/resume-wizard/internal/logging"
	"github.com/jonathan/resume-wizard/internal/templates"
)

// loadSettings builds the effective configuration. Precedence, lowest first: defaults,
// config file, environment, command line flags.
func loadSettings() (config.Config, error) {
	var cfg config.Config
	if configFile != "" {
		loaded, err := config.LoadConfig(configFile)
		if err != nil {
			return config.Config{}, err
		}
		cfg = *loaded
	}
	cfg.ApplyEnv()
	cfg = cfg.MergeWithDefaults(config.Defaults())

	if err := cfg.Logging.Finalize(logging.DefaultEnv); err != nil {
		return config.Config{}, fmt.Errorf("config error: %w", err)
	}
	cfg.Logging.Merge(&logging.Config{Level: logging.Level(logLevel), Format: logging.Format(logFormat)})
	if err := cfg.Logging.Finalize(nil); err != nil {
		return config.Config{}, fmt.Errorf("invalid logging flags: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func newLogger(cfg config.Config) *slog.Logger {
	return logging.New(&cfg.Logging)
}

func newEngine() (*customize.Engine, error) {
	catalog, err := templates.Builtin()
	if err != nil {
		return nil, fmt.Errorf("failed to load template catalog: %w", err)
	}
	return customize.NewEngine(catalog), nil
}
