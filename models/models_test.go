package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRecordID(t *testing.T) {
	t.Run("table and identifier", func(t *testing.T) {
		rid, ok := ParseRecordID("person:1")
		assert.True(t, ok)
		assert.Equal(t, "person", rid.Table)
		assert.Equal(t, "1", rid.ID)
	})

	t.Run("bare table name", func(t *testing.T) {
		_, ok := ParseRecordID("person")
		assert.False(t, ok)
	})

	t.Run("splits on first colon only", func(t *testing.T) {
		rid, ok := ParseRecordID("person:a:b")
		assert.True(t, ok)
		assert.Equal(t, "person", rid.Table)
		assert.Equal(t, "a:b", rid.ID)
	})
}

func TestRecordIDString(t *testing.T) {
	assert.Equal(t, "person:1", NewRecordID("person", "1").String())
}
