package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSetDefaults(t *testing.T) {
	var c Config
	c.SetDefaults()

	assert.Equal(t, "http://127.0.0.1:8000", c.Endpoint)
	assert.Equal(t, 30*time.Second, c.Timeout)
}

func TestValidate(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		var c Config
		c.SetDefaults()
		assert.NoError(t, c.Validate())
	})

	t.Run("rejects unsupported scheme", func(t *testing.T) {
		c := Config{Endpoint: "ws://localhost:8000"}
		assert.Error(t, c.Validate())
	})

	t.Run("namespace requires database", func(t *testing.T) {
		c := Config{Endpoint: "http://localhost:8000", Namespace: "ns1"}
		assert.Error(t, c.Validate())
	})
}
