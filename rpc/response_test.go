package rpc

import (
	"errors"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck(t *testing.T) {
	t.Run("no error", func(t *testing.T) {
		resp := &Response{Result: cbor.RawMessage{0xf6}}
		assert.NoError(t, Check(resp, "query"))
	})

	t.Run("server error", func(t *testing.T) {
		resp := &Response{Error: &Error{Code: 100, Message: "boom"}}

		err := Check(resp, "signing in")
		require.Error(t, err)

		var remoteErr *RemoteError
		require.True(t, errors.As(err, &remoteErr))
		assert.Equal(t, int64(100), remoteErr.Code)
		assert.Equal(t, "boom", remoteErr.Message)
		assert.Equal(t, "signing in", remoteErr.Operation)
	})
}

func TestResult(t *testing.T) {
	t.Run("present", func(t *testing.T) {
		raw := cbor.RawMessage{0x01}
		resp := &Response{Result: raw}

		got, err := Result(resp, "select")
		require.NoError(t, err)
		assert.Equal(t, raw, got)
	})

	t.Run("missing", func(t *testing.T) {
		resp := &Response{}

		_, err := Result(resp, "select")
		require.Error(t, err)

		var protoErr *ProtocolError
		require.True(t, errors.As(err, &protoErr))
		assert.Equal(t, "select", protoErr.Operation)
	})
}
