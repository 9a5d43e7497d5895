package rpc

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// Error is the failure object the server attaches to a response.
type Error struct {
	Code    int64  `cbor:"code"`
	Message string `cbor:"message"`
}

// Response is the decoded payload of one call. Exactly one of Error
// and Result is meaningful; a response carrying neither violates the
// protocol. Result stays raw until the operation layer knows the shape
// to decode it into.
type Response struct {
	ID     string          `cbor:"id"`
	Error  *Error          `cbor:"error"`
	Result cbor.RawMessage `cbor:"result"`
}

// QueryResult is one statement's outcome inside a query response.
type QueryResult struct {
	Status string          `cbor:"status"`
	Time   string          `cbor:"time"`
	Result cbor.RawMessage `cbor:"result"`
}

// RemoteError is an explicit server-side failure for one call,
// labelled with the logical operation that issued it.
type RemoteError struct {
	Code      int64
	Message   string
	Operation string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s: server error %d: %s", e.Operation, e.Code, e.Message)
}

// ProtocolError reports a structurally valid response that is missing
// a field the operation requires.
type ProtocolError struct {
	Operation string
	Reason    string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("%s: protocol error: %s", e.Operation, e.Reason)
}

// Check fails with a RemoteError when the response carries a server
// error, and returns nil otherwise.
func Check(resp *Response, operation string) error {
	if resp.Error == nil {
		return nil
	}
	return &RemoteError{
		Code:      resp.Error.Code,
		Message:   resp.Error.Message,
		Operation: operation,
	}
}

// Result extracts the response's result field, failing with a
// ProtocolError when the server returned neither error nor result.
func Result(resp *Response, operation string) (cbor.RawMessage, error) {
	if resp.Result == nil {
		return nil, &ProtocolError{Operation: operation, Reason: "response carries no result"}
	}
	return resp.Result, nil
}
