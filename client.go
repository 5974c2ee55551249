package qpay

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/qpaymn/qpay-go/internal/pkg/metrics"
)

const defaultTimeout = 30 * time.Second

// Client is a QPay V2 API client. It is safe for concurrent use from
// multiple goroutines; token management is serialized internally.
type Client struct {
	config   Config
	http     *http.Client
	ownsHTTP bool
	timeout  time.Duration
	logger   *slog.Logger
	tokens   tokenState
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient supplies the HTTP client used for all requests. The caller
// retains ownership: Close will not touch a client supplied this way.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithTimeout sets the request timeout of the client-owned HTTP client.
// It has no effect when WithHTTPClient is also used. The default is 30s.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithLogger sets the structured logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// NewClient creates a QPay client with the given configuration. Unless
// WithHTTPClient is used the client owns its HTTP transport, instruments it
// with request metrics, and releases it on Close.
func NewClient(cfg Config, opts ...Option) *Client {
	c := &Client{
		config: cfg,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		timeout := c.timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		c.http = &http.Client{
			Timeout:   timeout,
			Transport: metrics.NewTransport(nil),
		}
		c.ownsHTTP = true
	}
	return c
}

// Close releases idle connections held by a client-owned HTTP transport.
// A caller-supplied HTTP client is left untouched. Safe to call more than
// once.
func (c *Client) Close() {
	if c.ownsHTTP {
		c.http.CloseIdleConnections()
	}
}
