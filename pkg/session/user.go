package session

// Role determines which storefront surfaces a user may access.
type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
	RoleAdmin  Role = "admin"
)

// User is the authenticated identity as returned by the backend.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// CanSell reports whether the user may manage products.
func (u User) CanSell() bool {
	return u.Role == RoleSeller || u.Role == RoleAdmin
}

// State describes the manager's knowledge about the current user.
type State string

const (
	// StateUnknown is the initial state, before Initialize has resolved.
	StateUnknown State = "unknown"
	// StateAnonymous means no valid session exists.
	StateAnonymous State = "anonymous"
	// StateAuthenticated means a credential and cached profile both exist.
	StateAuthenticated State = "authenticated"
)
