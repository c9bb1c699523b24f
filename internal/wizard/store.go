// Package wizard carries the in-progress resume and style configuration across the
// independently navigable wizard steps.
package wizard

import (
	"context"
	"sync"
)

// Store is a keyed scratch store partitioned by session. Implementations hold whole
// serialized snapshots; they never merge values.
type Store interface {
	// Load returns the snapshot stored under key, or (nil, nil) when absent.
	Load(ctx context.Context, sessionID, key string) ([]byte, error)
	// Save replaces the snapshot stored under key.
	Save(ctx context.Context, sessionID, key string, value []byte) error
	// Clear removes every key of the session.
	Clear(ctx context.Context, sessionID string) error
}

// MemoryStore is an in-process Store.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]map[string][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]map[string][]byte)}
}

func (s *MemoryStore) Load(_ context.Context, sessionID, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.sessions[sessionID][key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), v...), nil
}

func (s *MemoryStore) Save(_ context.Context, sessionID, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys, ok := s.sessions[sessionID]
	if !ok {
		keys = make(map[string][]byte)
		s.sessions[sessionID] = keys
	}
	keys[key] = append([]byte(nil), value...)
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sessionID)
	return nil
}
