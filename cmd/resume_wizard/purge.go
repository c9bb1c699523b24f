package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var purgeOlderThan time.Duration

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete abandoned wizard sessions from the configured store",
	Long:  "Removes every stored wizard snapshot last written before the cutoff. Only the sqlite and postgres stores keep state across restarts.",
	Args:  cobra.NoArgs,
	RunE:  runPurge,
}

func init() {
	purgeCmd.Flags().DurationVar(&purgeOlderThan, "older-than", 72*time.Hour, "Age of the snapshots to delete")
	rootCmd.AddCommand(purgeCmd)
}

func runPurge(cmd *cobra.Command, _ []string) error {
	if purgeOlderThan <= 0 {
		return fmt.Errorf("--older-than must be positive")
	}
	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)
	ctx := contextOrBackground(cmd)

	store, closeStore, err := openStore(ctx, cfg.Store, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	p, ok := store.(purger)
	if !ok {
		return fmt.Errorf("store %q does not keep sessions to purge", cfg.Store.Driver)
	}
	n, err := p.PurgeBefore(ctx, time.Now().UTC().Add(-purgeOlderThan))
	if err != nil {
		return fmt.Errorf("failed to purge sessions: %w", err)
	}
	cmd.Printf("Purged %d snapshot(s)\n", n)
	return nil
}
