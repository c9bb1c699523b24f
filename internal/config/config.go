// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/jonathan/resume-wizard/internal/logging"
)

// Store drivers.
const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

// Environment variables that override file values.
const (
	EnvAddr        = "RESUME_WIZARD_ADDR"
	EnvStore       = "RESUME_WIZARD_STORE"
	EnvDataDir     = "RESUME_WIZARD_DATA_DIR"
	EnvDatabaseURL = "DATABASE_URL"
	EnvTemplate    = "RESUME_WIZARD_TEMPLATE"
	EnvCORSOrigins = "RESUME_WIZARD_CORS_ORIGINS"
)

// Config represents the configuration that can be loaded from a JSON or TOML file.
// All fields are optional; missing values use defaults or come from CLI flags.
type Config struct {
	Server   ServerConfig   `json:"server" toml:"server"`
	Store    StoreConfig    `json:"store" toml:"store"`
	Logging  logging.Config `json:"logging" toml:"logging"`
	Template string         `json:"template,omitempty" toml:"template"` // Path to a LaTeX template
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Addr            string          `json:"addr,omitempty" toml:"addr"`
	ReadTimeout     string          `json:"read_timeout,omitempty" toml:"read_timeout"`
	WriteTimeout    string          `json:"write_timeout,omitempty" toml:"write_timeout"`
	ShutdownTimeout string          `json:"shutdown_timeout,omitempty" toml:"shutdown_timeout"`
	CORSOrigins     []string        `json:"cors_origins,omitempty" toml:"cors_origins"`
	RateLimit       RateLimitConfig `json:"rate_limit" toml:"rate_limit"`
}

// RateLimitConfig sizes the per-client token buckets.
type RateLimitConfig struct {
	RequestsPerMinute int `json:"requests_per_minute,omitempty" toml:"requests_per_minute"`
	Burst             int `json:"burst,omitempty" toml:"burst"`
}

// StoreConfig selects the wizard state backend.
type StoreConfig struct {
	Driver      string `json:"driver,omitempty" toml:"driver"`
	DataDir     string `json:"data_dir,omitempty" toml:"data_dir"`         // sqlite
	DatabaseURL string `json:"database_url,omitempty" toml:"database_url"` // postgres
}

// Defaults returns the configuration used when nothing else is set.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     "15s",
			WriteTimeout:    "15s",
			ShutdownTimeout: "30s",
			RateLimit:       RateLimitConfig{RequestsPerMinute: 120, Burst: 20},
		},
		Store: StoreConfig{Driver: StoreMemory, DataDir: ".resume-wizard"},
	}
}

// LoadConfig loads configuration from a JSON or TOML file, chosen by extension.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config TOML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// ApplyEnv overrides fields from the environment.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvAddr); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv(EnvStore); v != "" {
		c.Store.Driver = v
	}
	if v := os.Getenv(EnvDataDir); v != "" {
		c.Store.DataDir = v
	}
	if v := os.Getenv(EnvDatabaseURL); v != "" {
		c.Store.DatabaseURL = v
	}
	if v := os.Getenv(EnvTemplate); v != "" {
		c.Template = v
	}
	if v := os.Getenv(EnvCORSOrigins); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		c.Server.CORSOrigins = origins
	}
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	for name, d := range map[string]string{
		"read_timeout":     c.Server.ReadTimeout,
		"write_timeout":    c.Server.WriteTimeout,
		"shutdown_timeout": c.Server.ShutdownTimeout,
	} {
		if d == "" {
			continue
		}
		if _, err := time.ParseDuration(d); err != nil {
			return fmt.Errorf("config error: invalid '%s': %w", name, err)
		}
	}

	if c.Server.RateLimit.RequestsPerMinute < 0 {
		return fmt.Errorf("config error: 'requests_per_minute' must be non-negative")
	}
	if c.Server.RateLimit.Burst < 0 {
		return fmt.Errorf("config error: 'burst' must be non-negative")
	}

	switch c.Store.Driver {
	case "", StoreMemory:
	case StoreSQLite:
		if c.Store.DataDir == "" {
			return fmt.Errorf("config error: 'data_dir' is required for the sqlite store")
		}
	case StorePostgres:
		if c.Store.DatabaseURL == "" {
			return fmt.Errorf("config error: 'database_url' is required for the postgres store")
		}
	default:
		return fmt.Errorf("config error: unknown store driver %q", c.Store.Driver)
	}

	// Validate file paths exist (if specified)
	if c.Template != "" {
		if _, err := os.Stat(c.Template); os.IsNotExist(err) {
			return fmt.Errorf("config error: template file not found: %s", c.Template)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	s, d := &result.Server, defaults.Server
	if s.Addr == "" {
		s.Addr = d.Addr
	}
	if s.ReadTimeout == "" {
		s.ReadTimeout = d.ReadTimeout
	}
	if s.WriteTimeout == "" {
		s.WriteTimeout = d.WriteTimeout
	}
	if s.ShutdownTimeout == "" {
		s.ShutdownTimeout = d.ShutdownTimeout
	}
	if len(s.CORSOrigins) == 0 {
		s.CORSOrigins = d.CORSOrigins
	}
	if s.RateLimit.RequestsPerMinute == 0 {
		s.RateLimit.RequestsPerMinute = d.RateLimit.RequestsPerMinute
	}
	if s.RateLimit.Burst == 0 {
		s.RateLimit.Burst = d.RateLimit.Burst
	}

	if result.Store.Driver == "" {
		result.Store.Driver = defaults.Store.Driver
	}
	if result.Store.DataDir == "" {
		result.Store.DataDir = defaults.Store.DataDir
	}
	if result.Store.DatabaseURL == "" {
		result.Store.DatabaseURL = defaults.Store.DatabaseURL
	}
	if result.Template == "" {
		result.Template = defaults.Template
	}

	result.Logging = defaults.Logging
	result.Logging.Merge(&c.Logging)

	return result
}

// Durations returns the parsed server timeouts. Call after Validate.
func (s ServerConfig) Durations() (read, write, shutdown time.Duration) {
	read, _ = time.ParseDuration(s.ReadTimeout)
	write, _ = time.ParseDuration(s.WriteTimeout)
	shutdown, _ = time.ParseDuration(s.ShutdownTimeout)
	return read, write, shutdown
}
