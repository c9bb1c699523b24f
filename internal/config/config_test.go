package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-wizard/internal/logging"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_ValidJSON(t *testing.T) {
	path := writeFile(t, "config.json", `{
		"server": {"addr": ":9090", "cors_origins": ["http://localhost:3000"], "rate_limit": {"burst": 5}},
		"store": {"driver": "sqlite", "data_dir": "/tmp/wizard"},
		"logging": {"level": "debug", "format": "json"}
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 5, cfg.Server.RateLimit.Burst)
	assert.Equal(t, StoreSQLite, cfg.Store.Driver)
	assert.Equal(t, "/tmp/wizard", cfg.Store.DataDir)
	assert.Equal(t, logging.LevelDebug, cfg.Logging.Level)
	assert.Equal(t, logging.FormatJSON, cfg.Logging.Format)
}

func TestLoadConfig_ValidTOML(t *testing.T) {
	path := writeFile(t, "config.toml", `
template = "resume.tex"

[server]
addr = ":7070"
shutdown_timeout = "5s"

[server.rate_limit]
requests_per_minute = 30

[store]
driver = "postgres"
database_url = "postgres://localhost/wizard"

[logging]
level = "warn"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "resume.tex", cfg.Template)
	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, "5s", cfg.Server.ShutdownTimeout)
	assert.Equal(t, 30, cfg.Server.RateLimit.RequestsPerMinute)
	assert.Equal(t, StorePostgres, cfg.Store.Driver)
	assert.Equal(t, logging.LevelWarn, cfg.Logging.Level)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	cfg, err := LoadConfig(writeFile(t, "config.json", `{ invalid json }`))
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_InvalidTOML(t *testing.T) {
	cfg, err := LoadConfig(writeFile(t, "config.toml", `[server`))
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config TOML")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate(t *testing.T) {
	template := writeFile(t, "resume.tex", `{{.Name}}`)

	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "defaults", cfg: Defaults()},
		{name: "empty", cfg: Config{}},
		{name: "existing template", cfg: Config{Template: template}},
		{
			name:    "bad duration",
			cfg:     Config{Server: ServerConfig{ReadTimeout: "soon"}},
			wantErr: "invalid 'read_timeout'",
		},
		{
			name:    "negative rate",
			cfg:     Config{Server: ServerConfig{RateLimit: RateLimitConfig{RequestsPerMinute: -1}}},
			wantErr: "'requests_per_minute' must be non-negative",
		},
		{
			name:    "negative burst",
			cfg:     Config{Server: ServerConfig{RateLimit: RateLimitConfig{Burst: -1}}},
			wantErr: "'burst' must be non-negative",
		},
		{
			name:    "sqlite without dir",
			cfg:     Config{Store: StoreConfig{Driver: StoreSQLite}},
			wantErr: "'data_dir' is required",
		},
		{
			name:    "postgres without url",
			cfg:     Config{Store: StoreConfig{Driver: StorePostgres}},
			wantErr: "'database_url' is required",
		},
		{
			name:    "unknown driver",
			cfg:     Config{Store: StoreConfig{Driver: "redis"}},
			wantErr: `unknown store driver "redis"`,
		},
		{
			name:    "missing template",
			cfg:     Config{Template: "/nonexistent/resume.tex"},
			wantErr: "template file not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{
		Server:  ServerConfig{Addr: ":1234"},
		Store:   StoreConfig{Driver: StoreSQLite},
		Logging: logging.Config{Format: logging.FormatJSON},
	}
	defaults := Defaults()
	defaults.Logging = logging.Config{Level: logging.LevelInfo, Format: logging.FormatText}

	merged := cfg.MergeWithDefaults(defaults)

	assert.Equal(t, ":1234", merged.Server.Addr)
	assert.Equal(t, "15s", merged.Server.ReadTimeout)
	assert.Equal(t, 120, merged.Server.RateLimit.RequestsPerMinute)
	assert.Equal(t, StoreSQLite, merged.Store.Driver)
	assert.Equal(t, ".resume-wizard", merged.Store.DataDir)
	assert.Equal(t, logging.LevelInfo, merged.Logging.Level)
	assert.Equal(t, logging.FormatJSON, merged.Logging.Format)

	assert.Empty(t, cfg.Server.ReadTimeout, "receiver must not change")
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvAddr, ":4000")
	t.Setenv(EnvStore, StorePostgres)
	t.Setenv(EnvDatabaseURL, "postgres://db/wizard")
	t.Setenv(EnvCORSOrigins, "http://a.test, ,http://b.test")

	cfg := Defaults()
	cfg.ApplyEnv()

	assert.Equal(t, ":4000", cfg.Server.Addr)
	assert.Equal(t, StorePostgres, cfg.Store.Driver)
	assert.Equal(t, "postgres://db/wizard", cfg.Store.DatabaseURL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.CORSOrigins)
	assert.Equal(t, ".resume-wizard", cfg.Store.DataDir, "unset variables keep file values")
}

func TestServerConfig_Durations(t *testing.T) {
	read, write, shutdown := Defaults().Server.Durations()
	assert.Equal(t, "15s", read.String())
	assert.Equal(t, "15s", write.String())
	assert.Equal(t, "30s", shutdown.String())
}
