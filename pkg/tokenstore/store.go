package tokenstore

import (
	"context"
	"strings"
	"time"
)

// Credential is the opaque bearer token identifying an authenticated session
// to the backend, plus the companion fields some auth schemes carry.
// It is created on successful login or registration, silently rotated when a
// response carries a new Authorization header, and destroyed on logout or
// detected invalidity.
type Credential struct {
	Token     string    `json:"token"`
	TokenType string    `json:"token_type,omitempty"`
	ClientID  string    `json:"client_id,omitempty"`
	UserID    string    `json:"user_id,omitempty"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// ParseAuthorization builds a Credential from an Authorization header value,
// splitting a "Bearer <token>" style value into type and token. Expiry is set
// by the caller.
func ParseAuthorization(header string, ttl time.Duration) Credential {
	c := Credential{Token: header}
	if scheme, token, ok := strings.Cut(header, " "); ok && token != "" {
		c.TokenType = scheme
		c.Token = token
	}
	if ttl > 0 {
		c.ExpiresAt = time.Now().Add(ttl)
	}
	return c
}

// IsZero reports whether the credential is absent.
func (c Credential) IsZero() bool {
	return c.Token == ""
}

// IsExpired reports whether the credential has passed its expiry.
// Credentials without an expiry never expire client-side.
func (c Credential) IsExpired() bool {
	return !c.ExpiresAt.IsZero() && time.Now().After(c.ExpiresAt)
}

// Authorization returns the value to attach to an outgoing Authorization
// header, re-joining the token type when one was captured.
func (c Credential) Authorization() string {
	if c.TokenType != "" {
		return c.TokenType + " " + c.Token
	}
	return c.Token
}

// Store persists the credential and the cached user profile under fixed
// storage keys. The two are invalidated together: Clear removes both.
//
// Reads never fail: any storage access problem degrades to "absent", which
// the rest of the SDK treats as unauthenticated. Only writes report errors.
type Store interface {
	// SetCredential persists the credential, overwriting any prior value.
	SetCredential(ctx context.Context, cred Credential) error

	// Credential returns the persisted credential. Expired or unreadable
	// credentials are reported as absent.
	Credential(ctx context.Context) (Credential, bool)

	// SetProfile caches the serialized user profile alongside the credential.
	SetProfile(ctx context.Context, profile []byte) error

	// Profile returns the cached user profile, or absent.
	Profile(ctx context.Context) ([]byte, bool)

	// Clear removes the credential and cached profile unconditionally.
	// It is idempotent and safe to call in any state.
	Clear(ctx context.Context) error
}
