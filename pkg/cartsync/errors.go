package cartsync

import "errors"

var (
	// ErrNotAuthenticated indicates a cart operation was attempted without an
	// authenticated session. This is a caller error: the presentation layer
	// is responsible for routing to login before invoking cart operations.
	ErrNotAuthenticated = errors.New("cartsync.not_authenticated")
)
