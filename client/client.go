package client

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/ValerySidorin/sdbc/codec"
)

const defaultTimeout = 30 * time.Second

// Conn is a synchronous connection handle to one database endpoint.
// One call is one blocking round trip; a Conn supports at most one
// in-flight call at a time. Callers wanting concurrency open multiple
// connections, each with its own session state.
type Conn struct {
	endpoint *url.URL
	http     *http.Client
	cd       codec.Codec

	timeout time.Duration
	closed  atomic.Bool

	sess session

	l *slog.Logger
}

// Connect parses the endpoint and builds the connection's transport.
// No round trip happens until the first operation call.
func Connect(endpoint string, opts ...Option) (*Conn, error) {
	u, err := url.Parse(strings.TrimRight(endpoint, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return nil, fmt.Errorf("%w: %s", ErrInvalidEndpoint, endpoint)
	}

	c := &Conn{
		endpoint: u,
		timeout:  defaultTimeout,
		sess:     newSession(),
		l:        slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.cd == nil {
		cd, err := codec.NewCBOR()
		if err != nil {
			return nil, fmt.Errorf("build codec: %w", err)
		}
		c.cd = cd
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: c.timeout}
	}

	return c, nil
}

// Close releases the underlying transport. The Conn is unusable
// afterwards; every operation fails with ErrConnClosed.
func (c *Conn) Close() error {
	if c.closed.Swap(true) {
		return nil
	}
	c.http.CloseIdleConnections()
	return nil
}

// LastID reports the correlation id of the most recently issued
// request.
func (c *Conn) LastID() string {
	return c.sess.lastID
}

// SetToken injects a bearer token directly, without a round trip.
func (c *Conn) SetToken(token string) {
	c.sess.token = token
}
