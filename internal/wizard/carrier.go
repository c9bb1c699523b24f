package wizard

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jonathan/resume-wizard/internal/logging"
	"github.com/jonathan/resume-wizard/internal/schemas"
)

// SnapshotError represents a value that cannot be saved under a carrier key
type SnapshotError struct {
	Key     Key
	Message string
	Cause   error
}

func (e *SnapshotError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("snapshot %s: %s: %v", e.Key, e.Message, e.Cause)
	}
	return fmt.Sprintf("snapshot %s: %s", e.Key, e.Message)
}

func (e *SnapshotError) Unwrap() error {
	return e.Cause
}

// Carrier reads and writes whole snapshots for one session.
type Carrier struct {
	store     Store
	sessionID string
	logger    *slog.Logger
}

// NewCarrier binds store to sessionID. A nil logger discards output.
func NewCarrier(store Store, sessionID string, logger *slog.Logger) *Carrier {
	return &Carrier{
		store:     store,
		sessionID: sessionID,
		logger:    logging.OrDiscard(logger).With("session", sessionID),
	}
}

// SessionID returns the session the carrier is bound to.
func (c *Carrier) SessionID() string {
	return c.sessionID
}

// Save serializes v and stores it under key, replacing any previous snapshot. The
// serialized value must satisfy the key's schema, so a partial object is never written.
// Saving the same value twice leaves the same stored state.
func (c *Carrier) Save(ctx context.Context, key Key, v any) error {
	schema, ok := key.Schema()
	if !ok {
		return &SnapshotError{Key: key, Message: "unknown key"}
	}
	data, err := json.Marshal(v)
	if err != nil {
		return &SnapshotError{Key: key, Message: "failed to marshal value", Cause: err}
	}
	if err := schemas.Validate(schema, data); err != nil {
		return &SnapshotError{Key: key, Message: "value does not match schema", Cause: err}
	}
	if err := c.store.Save(ctx, c.sessionID, string(key), data); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	c.logger.Debug("saved snapshot", "key", key, "bytes", len(data))
	return nil
}

// Load decodes the snapshot under key into v and reports whether one was found. A
// snapshot that is missing, malformed or fails its schema is treated as absent so the
// calling step starts from defaults. Only store failures are returned as errors.
func (c *Carrier) Load(ctx context.Context, key Key, v any) (bool, error) {
	data, err := c.store.Load(ctx, c.sessionID, string(key))
	if err != nil {
		return false, fmt.Errorf("failed to load %s: %w", key, err)
	}
	if data == nil {
		return false, nil
	}
	if schema, ok := key.Schema(); ok {
		if err := schemas.Validate(schema, data); err != nil {
			c.logger.Warn("ignoring snapshot that fails its schema", "key", key, "error", err)
			return false, nil
		}
	}
	if err := json.Unmarshal(data, v); err != nil {
		c.logger.Warn("ignoring undecodable snapshot", "key", key, "error", err)
		return false, nil
	}
	return true, nil
}

// Clear removes every key of the session.
func (c *Carrier) Clear(ctx context.Context) error {
	if err := c.store.Clear(ctx, c.sessionID); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	c.logger.Debug("cleared session")
	return nil
}
