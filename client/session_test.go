package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSession_BindUnbind(t *testing.T) {
	s := newSession()

	s.bind("x", 1)
	assert.Equal(t, 1, s.vars["x"])

	s.bind("x", 2)
	assert.Equal(t, 2, s.vars["x"])

	assert.NoError(t, s.unbind("x"))
	_, ok := s.vars["x"]
	assert.False(t, ok)
}

func TestSession_UnbindMissing(t *testing.T) {
	s := newSession()
	assert.ErrorIs(t, s.unbind("never"), ErrVarNotBound)
}

func TestSession_MergeVars(t *testing.T) {
	t.Run("session bindings win", func(t *testing.T) {
		s := newSession()
		s.bind("x", 1)

		merged := s.mergeVars(map[string]any{"x": 2, "y": 3})
		assert.Equal(t, map[string]any{"x": 1, "y": 3}, merged)
	})

	t.Run("caller map untouched", func(t *testing.T) {
		s := newSession()
		s.bind("x", 1)

		callVars := map[string]any{"x": 2}
		s.mergeVars(callVars)
		assert.Equal(t, map[string]any{"x": 2}, callVars)
	})

	t.Run("nil call vars", func(t *testing.T) {
		s := newSession()
		s.bind("x", 1)

		assert.Equal(t, map[string]any{"x": 1}, s.mergeVars(nil))
	})
}
