package session

import "errors"

var (
	// ErrConflict indicates registration was rejected for a duplicate or
	// invalid email. Recoverable: the user retries with different input.
	ErrConflict = errors.New("session.conflict")

	// ErrNotAuthenticated indicates an operation that requires an
	// authenticated session was called without one.
	ErrNotAuthenticated = errors.New("session.not_authenticated")

	// ErrInvalidInput indicates the submitted fields failed client-side
	// checks and no network call was made.
	ErrInvalidInput = errors.New("session.invalid_input")
)
