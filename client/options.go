package client

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/ValerySidorin/sdbc/codec"
)

type Option func(c *Conn)

func WithLogger(l *slog.Logger) Option {
	return func(c *Conn) {
		c.l = l
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Conn) {
		c.timeout = d
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Conn) {
		c.http = hc
	}
}

func WithCodec(cd codec.Codec) Option {
	return func(c *Conn) {
		c.cd = cd
	}
}
