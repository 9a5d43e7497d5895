package rpc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRequest(t *testing.T) {
	req := NewRequest(MethodCreate, "person", map[string]any{"name": "a"})

	assert.NotEmpty(t, req.ID)
	assert.Equal(t, MethodCreate, req.Method)
	assert.Len(t, req.Params, 2)
	assert.Equal(t, "person", req.Params[0])
}

func TestNewRequest_UniqueIDs(t *testing.T) {
	seen := make(map[string]struct{})

	for range 100 {
		req := NewRequest(MethodVersion)
		if _, ok := seen[req.ID]; ok {
			t.Fatalf("correlation id %s reused", req.ID)
		}
		seen[req.ID] = struct{}{}
	}
}
