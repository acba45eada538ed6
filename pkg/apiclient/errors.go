package apiclient

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials indicates a 401 on an unauthenticated request,
	// i.e. bad login credentials. Recoverable: the user retries.
	ErrInvalidCredentials = errors.New("apiclient.invalid_credentials")

	// ErrSessionExpired indicates a 401 on a request that carried a
	// credential. Not recoverable in place: forces logout.
	ErrSessionExpired = errors.New("apiclient.session_expired")

	// ErrForbidden indicates the authenticated user lacks permission (403).
	ErrForbidden = errors.New("apiclient.forbidden")

	// ErrNotFound indicates the target resource no longer exists (404).
	ErrNotFound = errors.New("apiclient.not_found")

	// ErrValidationRejected indicates the server rejected the mutation (422),
	// e.g. insufficient stock or a duplicate email.
	ErrValidationRejected = errors.New("apiclient.validation_rejected")

	// ErrTransient indicates a network failure or server error (5xx) with no
	// state change. The caller may retry the same action.
	ErrTransient = errors.New("apiclient.transient")
)

// APIError carries the HTTP detail behind one of the sentinel errors above.
// Retrieve it with errors.As to access the status code or server message.
type APIError struct {
	Status    int
	Message   string
	RequestID string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api error %d", e.Status)
}

// mapStatus converts a failed response status to the typed error taxonomy.
// authenticated reports whether the request carried a credential, which is
// what distinguishes bad login credentials from an expired session.
func mapStatus(status int, authenticated bool) error {
	switch {
	case status == 401 && authenticated:
		return ErrSessionExpired
	case status == 401:
		return ErrInvalidCredentials
	case status == 403:
		return ErrForbidden
	case status == 404:
		return ErrNotFound
	case status == 422:
		return ErrValidationRejected
	default:
		return ErrTransient
	}
}
