package client

import (
	"errors"
	"fmt"
)

var (
	ErrConnClosed      = errors.New("connection closed")
	ErrInvalidEndpoint = errors.New("invalid endpoint")
	ErrVarNotBound     = errors.New("variable not bound")
)

// TransportError reports a failed round trip to the RPC endpoint:
// either a network failure (Err set) or a non-success HTTP status
// (Status set).
type TransportError struct {
	Operation string
	Status    int
	Err       error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: transport: %v", e.Operation, e.Err)
	}
	return fmt.Sprintf("%s: transport: unexpected status %d", e.Operation, e.Status)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
