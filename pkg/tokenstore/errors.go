package tokenstore

import "errors"

var (
	// ErrPersistFailed indicates a credential or profile write did not reach storage
	ErrPersistFailed = errors.New("tokenstore.persist_failed")

	// ErrClearFailed indicates stored state could not be removed
	ErrClearFailed = errors.New("tokenstore.clear_failed")
)
