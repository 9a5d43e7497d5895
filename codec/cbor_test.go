package codec

import (
	"testing"

	"github.com/ValerySidorin/sdbc/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCBOR_ContentType(t *testing.T) {
	cd, err := NewCBOR()
	require.NoError(t, err)
	assert.Equal(t, "application/cbor", cd.ContentType())
}

func TestCBOR_IdentifierTags(t *testing.T) {
	cd, err := NewCBOR()
	require.NoError(t, err)

	t.Run("record id survives typed", func(t *testing.T) {
		data, err := cd.Encode([]any{models.NewRecordID("person", "1")})
		require.NoError(t, err)

		var got []any
		require.NoError(t, cd.Decode(data, &got))
		require.Len(t, got, 1)
		assert.Equal(t, models.NewRecordID("person", "1"), got[0])
	})

	t.Run("table survives typed", func(t *testing.T) {
		data, err := cd.Encode([]any{models.Table("person")})
		require.NoError(t, err)

		var got []any
		require.NoError(t, cd.Decode(data, &got))
		require.Len(t, got, 1)
		assert.Equal(t, models.Table("person"), got[0])
	})

	t.Run("maps decode keyed by string", func(t *testing.T) {
		data, err := cd.Encode(map[string]any{"name": "a"})
		require.NoError(t, err)

		var got any
		require.NoError(t, cd.Decode(data, &got))
		assert.Equal(t, map[string]any{"name": "a"}, got)
	})
}
