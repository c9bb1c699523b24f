// Package storetest holds the behaviour every wizard.Store backend must share.
package storetest

import (
	"context"
	"testing"

	"github.com/jonathan/resume-wizard/internal/wizard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run exercises a Store created by newStore. Each subtest gets a fresh store.
func Run(t *testing.T, newStore func(t *testing.T) wizard.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("absent key", func(t *testing.T) {
		s := newStore(t)
		v, err := s.Load(ctx, "session-a", "currentResume")
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("save and load", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Save(ctx, "session-a", "currentResume", []byte(`{"id":"1"}`)))

		v, err := s.Load(ctx, "session-a", "currentResume")
		require.NoError(t, err)
		assert.JSONEq(t, `{"id":"1"}`, string(v))
	})

	t.Run("save replaces and is idempotent", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Save(ctx, "session-a", "resumeData", []byte(`{"id":"1"}`)))
		require.NoError(t, s.Save(ctx, "session-a", "resumeData", []byte(`{"id":"2"}`)))
		require.NoError(t, s.Save(ctx, "session-a", "resumeData", []byte(`{"id":"2"}`)))

		v, err := s.Load(ctx, "session-a", "resumeData")
		require.NoError(t, err)
		assert.JSONEq(t, `{"id":"2"}`, string(v))
	})

	t.Run("sessions are isolated", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Save(ctx, "session-a", "resumeData", []byte(`{"id":"a"}`)))

		v, err := s.Load(ctx, "session-b", "resumeData")
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("clear removes every key of the session", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Save(ctx, "session-a", "currentResume", []byte(`{"id":"a"}`)))
		require.NoError(t, s.Save(ctx, "session-a", "templateCustomizations", []byte(`{}`)))
		require.NoError(t, s.Save(ctx, "session-b", "currentResume", []byte(`{"id":"b"}`)))

		require.NoError(t, s.Clear(ctx, "session-a"))

		for _, key := range []string{"currentResume", "templateCustomizations"} {
			v, err := s.Load(ctx, "session-a", key)
			require.NoError(t, err)
			assert.Nil(t, v, key)
		}
		v, err := s.Load(ctx, "session-b", "currentResume")
		require.NoError(t, err)
		assert.NotNil(t, v)
	})

	t.Run("clear of unknown session", func(t *testing.T) {
		s := newStore(t)
		assert.NoError(t, s.Clear(ctx, "never-used"))
	})

	t.Run("returned bytes are a copy", func(t *testing.T) {
		s := newStore(t)
		value := []byte(`{"id":"1"}`)
		require.NoError(t, s.Save(ctx, "session-a", "currentResume", value))
		value[7] = '9'

		v, err := s.Load(ctx, "session-a", "currentResume")
		require.NoError(t, err)
		assert.JSONEq(t, `{"id":"1"}`, string(v))
	})
}
