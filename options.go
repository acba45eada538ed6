package storefront

import (
	"log/slog"

	"github.com/goodmarket/storefront-go/pkg/cartsync"
	"github.com/goodmarket/storefront-go/pkg/tokenstore"
)

// Option customizes the assembled storefront.
type Option func(*Storefront)

// WithLogger replaces the logger built from Config.Debug.
func WithLogger(log *slog.Logger) Option {
	return func(s *Storefront) {
		s.log = log
	}
}

// WithStore replaces the credential store chosen from Config, for callers
// that bring their own Store implementation.
func WithStore(store tokenstore.Store) Option {
	return func(s *Storefront) {
		s.store = store
	}
}

// WithCartOptions forwards options to the cart synchronizer, for example
// cartsync.WithSerializedMutations.
func WithCartOptions(opts ...cartsync.Option) Option {
	return func(s *Storefront) {
		s.cartOpts = opts
	}
}
