package rpc

import "github.com/google/uuid"

// Request is the envelope sent for a single call. The id correlates
// the response to the request and is never reused.
type Request struct {
	ID     string `cbor:"id"`
	Method Method `cbor:"method"`
	Params []any  `cbor:"params,omitempty"`
}

func NewRequest(method Method, params ...any) Request {
	return Request{
		ID:     uuid.NewString(),
		Method: method,
		Params: params,
	}
}
