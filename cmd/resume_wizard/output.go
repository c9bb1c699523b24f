package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/resume-wizard/internal/observability"
	"github.com/jonathan/resume-wizard/internal/types"
	"github.com/spf13/cobra"
)

// writeOutput writes content to path, or to the command's stdout when path is empty.
func writeOutput(cmd *cobra.Command, path string, content []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(content)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

func writeJSON(cmd *cobra.Command, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	return writeOutput(cmd, path, append(data, '\n'))
}

// printer returns the verbose-mode printer, or nil when --verbose is off.
func printer(cmd *cobra.Command) *observability.Printer {
	if !verbose {
		return nil
	}
	return observability.NewPrinter(cmd.ErrOrStderr())
}

func printFieldErrors(cmd *cobra.Command, errs types.FieldErrors) {
	for _, path := range errs.Paths() {
		cmd.Printf("  %s: %s\n", path, errs[path])
	}
}

// readStyle loads a style configuration file over the defaults, so a partial file only
// overrides what it names. An empty path yields the defaults.
func readStyle(path string) (types.StyleConfiguration, error) {
	cfg := types.DefaultStyleConfiguration()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read style file: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to unmarshal style JSON: %w", err)
	}
	return cfg, nil
}
