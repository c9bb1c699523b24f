package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResume = `{
	"id": "doc-1",
	"title": "  SWE Resume  ",
	"templateId": "modern",
	"personalInfo": {"firstName": "Ada", "lastName": "Lovelace", "email": "ada@example.com", "phone": "555-0100", "summary": "Engineer & mathematician"},
	"experience": [
		{"id": "e1", "company": "Analytical Engines", "jobTitle": "Engineer", "startDate": "2020-01-01", "endDate": "2022-06-01", "description": "", "achievements": ["Built the mill", " "]}
	],
	"education": [],
	"skills": [{"category": "Languages", "skills": ["Go", "Go", "SQL"]}]
}`

// executeCommand runs rootCmd in-process and restores every flag afterwards.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	resetFlags(rootCmd)
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		resetFlags(rootCmd)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRootCommand(t *testing.T) {
	assert.Equal(t, "resume_wizard", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.True(t, rootCmd.SilenceErrors, "errors are printed by main, not cobra")

	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"serve", "validate", "normalize", "resolve", "render", "templates", "purge"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}

func TestRootCommand_PersistentFlags(t *testing.T) {
	for _, name := range []string{"config", "log-level", "log-format", "verbose"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), name)
	}
}

func TestLoadSettings(t *testing.T) {
	t.Setenv("RESUME_WIZARD_LOG_LEVEL", "warn")
	path := writeFile(t, "config.toml", `
[server]
addr = ":9999"

[store]
driver = "sqlite"
data_dir = "/tmp/wizard"
`)

	configFile = path
	logFormat = "json"
	t.Cleanup(func() { configFile, logFormat = "", "" })

	cfg, err := loadSettings()
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Server.Addr)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "15s", cfg.Server.ReadTimeout)
	assert.EqualValues(t, "warn", cfg.Logging.Level)
	assert.EqualValues(t, "json", cfg.Logging.Format)
}

func TestLoadSettings_FlagBeatsEnvironment(t *testing.T) {
	t.Setenv("RESUME_WIZARD_LOG_LEVEL", "warn")
	logLevel = "debug"
	t.Cleanup(func() { logLevel = "" })

	cfg, err := loadSettings()
	require.NoError(t, err)
	assert.EqualValues(t, "debug", cfg.Logging.Level)
}

func TestLoadSettings_InvalidLogLevel(t *testing.T) {
	logLevel = "loud"
	t.Cleanup(func() { logLevel = "" })

	_, err := loadSettings()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}
