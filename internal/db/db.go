// Package db provides PostgreSQL storage for wizard state shared by several server
// instances.
package db

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schemaSQL string

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// EnsureSchema creates the wizard tables when missing
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// Load returns the snapshot stored under key, or (nil, nil) when absent
func (db *DB) Load(ctx context.Context, sessionID, key string) ([]byte, error) {
	var value []byte
	err := db.pool.QueryRow(ctx,
		`SELECT value FROM wizard_state WHERE session_id = $1 AND key = $2`,
		sessionID, key,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load %s: %w", key, err)
	}
	return value, nil
}

// Save replaces the snapshot stored under key
func (db *DB) Save(ctx context.Context, sessionID, key string, value []byte) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO wizard_state (session_id, key, value)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (session_id, key) DO UPDATE SET value = $3, updated_at = NOW()`,
		sessionID, key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

// Clear removes every key of the session
func (db *DB) Clear(ctx context.Context, sessionID string) error {
	_, err := db.pool.Exec(ctx, `DELETE FROM wizard_state WHERE session_id = $1`, sessionID)
	if err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// PurgeBefore deletes snapshots not written since cutoff
func (db *DB) PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := db.pool.Exec(ctx, `DELETE FROM wizard_state WHERE updated_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge state: %w", err)
	}
	return tag.RowsAffected(), nil
}
