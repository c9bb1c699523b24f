package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonathan/resume-wizard/internal/config"
	"github.com/jonathan/resume-wizard/internal/db"
	"github.com/jonathan/resume-wizard/internal/sqlite"
	"github.com/jonathan/resume-wizard/internal/wizard"
)

// purger is implemented by the persistent stores.
type purger interface {
	PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// openStore opens the wizard store selected by cfg. The returned close function is
// never nil.
func openStore(ctx context.Context, cfg config.StoreConfig, logger *slog.Logger) (wizard.Store, func(), error) {
	switch cfg.Driver {
	case "", config.StoreMemory:
		logger.Info("using in-memory wizard store")
		return wizard.NewMemoryStore(), func() {}, nil

	case config.StoreSQLite:
		store, err := sqlite.NewStore(cfg.DataDir)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		logger.Info("using sqlite wizard store", "path", store.Path())
		return store, func() { _ = store.Close() }, nil

	case config.StorePostgres:
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := database.EnsureSchema(ctx); err != nil {
			database.Close()
			return nil, nil, err
		}
		logger.Info("using postgres wizard store")
		return database, database.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
