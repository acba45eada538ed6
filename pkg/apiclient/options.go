package apiclient

import (
	"log/slog"
	"net/http"
	"time"
)

// Option configures the client during construction.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client. Useful for custom
// transports, proxies, or testing. Nil clients are ignored.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout sets the per-request timeout on the underlying HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithLogger sets the structured logger for request/response logging.
// Nil loggers are ignored; the default discards everything.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// WithCredentialTTL sets the client-side expiry horizon applied to captured
// credentials (default 7 days). Zero disables client-side expiry.
func WithCredentialTTL(ttl time.Duration) Option {
	return func(c *Client) {
		if ttl >= 0 {
			c.credentialTTL = ttl
		}
	}
}
