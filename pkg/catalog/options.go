package catalog

import (
	"time"

	"github.com/goodmarket/storefront-go/pkg/cache"
)

// Option configures the catalog client during construction.
type Option func(*Client)

// WithCache replaces the default product cache sizing.
func WithCache(capacity int, ttl time.Duration) Option {
	return func(c *Client) {
		c.products = cache.NewLRUCache[string, Product](capacity, ttl)
		c.categories = cache.NewLRUCache[string, []Category](1, ttl)
	}
}
