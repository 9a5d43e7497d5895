package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ValerySidorin/sdbc/internal/observability"
	"github.com/ValerySidorin/sdbc/rpc"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const rpcPath = "/rpc"

// roundTrip encodes the envelope, attaches the session-derived
// headers, posts it to the RPC endpoint and returns the raw response
// body. It reads session state but never mutates it.
func (c *Conn) roundTrip(ctx context.Context, req rpc.Request, operation string) ([]byte, error) {
	body, err := c.cd.Encode(req)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint.String()+rpcPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	httpReq.Header.Set("Content-Type", c.cd.ContentType())
	httpReq.Header.Set("Accept", c.cd.ContentType())
	if c.sess.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.sess.token)
	}
	if c.sess.namespace != "" && c.sess.database != "" {
		httpReq.Header.Set("Surreal-NS", c.sess.namespace)
		httpReq.Header.Set("Surreal-DB", c.sess.database)
	}

	start := time.Now()
	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		observability.IncRPCError(string(req.Method), "transport")
		return nil, &TransportError{Operation: operation, Err: err}
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		observability.IncRPCError(string(req.Method), "transport")
		return nil, &TransportError{Operation: operation, Err: err}
	}
	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		observability.IncRPCError(string(req.Method), "status")
		return nil, &TransportError{Operation: operation, Status: httpResp.StatusCode}
	}

	observability.ObserveRPCLatency(string(req.Method), time.Since(start))

	return raw, nil
}

// send dispatches one envelope and validates the decoded payload for a
// server error before returning it.
func (c *Conn) send(ctx context.Context, req rpc.Request, operation string) (*rpc.Response, error) {
	raw, err := c.dispatch(ctx, req, operation)
	if err != nil {
		return nil, err
	}

	var resp rpc.Response
	if err := c.cd.Decode(raw, &resp); err != nil {
		observability.IncRPCError(string(req.Method), "decode")
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if err := rpc.Check(&resp, operation); err != nil {
		observability.IncRPCError(string(req.Method), "remote")
		return nil, err
	}

	return &resp, nil
}

// sendRaw dispatches one envelope and returns the decoded payload
// unchecked, so the caller can inspect error and result together.
func (c *Conn) sendRaw(ctx context.Context, req rpc.Request, operation string) (map[string]any, error) {
	raw, err := c.dispatch(ctx, req, operation)
	if err != nil {
		return nil, err
	}

	var payload map[string]any
	if err := c.cd.Decode(raw, &payload); err != nil {
		observability.IncRPCError(string(req.Method), "decode")
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return payload, nil
}

func (c *Conn) dispatch(ctx context.Context, req rpc.Request, operation string) ([]byte, error) {
	if c == nil || c.closed.Load() {
		return nil, ErrConnClosed
	}

	c.sess.lastID = req.ID
	c.l.Debug("rpc call", "method", req.Method, "id", req.ID)
	observability.IncRPC(string(req.Method))

	var span trace.Span
	if observability.TracingEnabled() {
		ctx, span = observability.Tracer().Start(ctx, "rpc."+string(req.Method))
		span.SetAttributes(attribute.String("operation", operation))
		defer span.End()
	}

	raw, err := c.roundTrip(ctx, req, operation)
	if err != nil {
		if span != nil {
			span.RecordError(err)
		}
		return nil, err
	}
	return raw, nil
}
