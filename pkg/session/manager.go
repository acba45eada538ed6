package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/goodmarket/storefront-go/pkg/apiclient"
	"github.com/goodmarket/storefront-go/pkg/logger"
	"github.com/goodmarket/storefront-go/pkg/tokenstore"
	"github.com/goodmarket/storefront-go/pkg/validator"
)

// Manager owns the client's belief about which user is currently
// authenticated. It derives that belief from the token store: the session is
// authenticated exactly when a credential and a cached profile both exist.
// A half-present pair is an invalid session and is cleared, never assumed
// valid.
type Manager struct {
	client *apiclient.Client
	store  tokenstore.Store
	log    *slog.Logger

	mu          sync.RWMutex
	state       State
	user        User
	loading     bool
	epoch       uint64
	transitions []func(State)

	initOnce sync.Once
}

// New creates a session manager on top of the shared API client. The manager
// starts in StateUnknown with IsLoading true until Initialize resolves.
//
// The caller must register the manager as the client's unauthorized hook
// (client.OnUnauthorized(m.HandleUnauthorized)) so that any 401 anywhere in
// the system forces the logout transition through this single place.
func New(client *apiclient.Client, opts ...Option) *Manager {
	if client == nil {
		panic("session: api client is required")
	}

	m := &Manager{
		client:  client,
		store:   client.Store(),
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		state:   StateUnknown,
		loading: true,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Initialize resolves the startup session state from persisted storage.
// It runs its logic exactly once; repeat calls return the already-resolved
// state. IsLoading flips to false exactly once, after resolution.
func (m *Manager) Initialize(ctx context.Context) State {
	m.initOnce.Do(func() {
		_, hasCred := m.store.Credential(ctx)
		profile, hasProfile := m.store.Profile(ctx)

		var user User
		if hasProfile {
			if err := json.Unmarshal(profile, &user); err != nil || user.ID == "" {
				hasProfile = false
			}
		}

		switch {
		case hasCred && hasProfile:
			m.transition(StateAuthenticated, user)
			m.log.DebugContext(ctx, "session restored", logger.UserID(user.ID))
		default:
			// Credential without profile, or profile without credential, is
			// an invalid session: clear both rather than trust either half.
			if hasCred || hasProfile {
				if err := m.store.Clear(ctx); err != nil {
					m.log.WarnContext(ctx, "failed to clear stale session state", logger.Error(err))
				}
			}
			m.transition(StateAnonymous, User{})
		}

		m.mu.Lock()
		m.loading = false
		m.mu.Unlock()
	})

	return m.State()
}

// Login authenticates against the backend. On success the rotated credential
// has already been captured by the transport, the returned profile is cached
// and the session becomes authenticated.
//
// A 401 surfaces apiclient.ErrInvalidCredentials without mutating any stored
// state; other failures surface apiclient.ErrTransient, likewise without
// mutation.
func (m *Manager) Login(ctx context.Context, email, password string) (User, error) {
	if err := validateCredentials(email, password); err != nil {
		return User{}, err
	}

	payload := map[string]any{
		"authentication": map[string]string{"email": email, "password": password},
	}

	var raw json.RawMessage
	if err := m.client.Post(ctx, "/api/authenticate", payload, &raw); err != nil {
		return User{}, err
	}

	return m.establish(ctx, raw)
}

// Register creates a new account. Duplicate-email rejections surface
// ErrConflict; otherwise behaves like Login.
func (m *Manager) Register(ctx context.Context, name, email, password string) (User, error) {
	if name == "" {
		return User{}, errors.Join(ErrInvalidInput, errors.New("name is required"))
	}
	if err := validateCredentials(email, password); err != nil {
		return User{}, err
	}

	payload := map[string]any{
		"user": map[string]string{"name": name, "email": email, "password": password},
	}

	var raw json.RawMessage
	if err := m.client.Post(ctx, "/api/users", payload, &raw); err != nil {
		if errors.Is(err, apiclient.ErrValidationRejected) {
			return User{}, errors.Join(ErrConflict, err)
		}
		return User{}, err
	}

	return m.establish(ctx, raw)
}

// UpdateProfile patches the authenticated user's profile and refreshes the
// cached copy.
func (m *Manager) UpdateProfile(ctx context.Context, name, email string) (User, error) {
	current, ok := m.CurrentUser()
	if !ok {
		return User{}, ErrNotAuthenticated
	}

	fields := map[string]string{}
	if name != "" {
		fields["name"] = name
	}
	if email != "" {
		fields["email"] = email
	}

	var raw json.RawMessage
	err := m.client.Patch(ctx, "/api/users/"+current.ID, map[string]any{"user": fields}, &raw)
	if err != nil {
		return User{}, err
	}

	user, err := parseUser(raw)
	if err != nil {
		return User{}, errors.Join(apiclient.ErrTransient, err)
	}

	if err := m.cacheProfile(ctx, user); err != nil {
		m.log.WarnContext(ctx, "failed to cache updated profile", logger.Error(err))
	}

	m.transition(StateAuthenticated, user)
	return user, nil
}

// Logout clears the credential and cached profile and transitions to
// Anonymous. It never fails and is idempotent: logging out twice leaves the
// same end state.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.store.Clear(ctx); err != nil {
		// Reads degrade to absent even if the clear failed, so the session
		// still ends; record the storage problem and move on.
		m.log.WarnContext(ctx, "failed to clear session storage", logger.Error(err))
	}
	m.transition(StateAnonymous, User{})
}

// HandleUnauthorized is the forced-logout transition for a detected 401.
// It fires at most once per authenticated session: concurrent 401s from
// parallel calls all funnel here, and only the first observes an
// authenticated state.
func (m *Manager) HandleUnauthorized() {
	m.mu.Lock()
	if m.state != StateAuthenticated {
		m.mu.Unlock()
		return
	}
	m.state = StateAnonymous
	m.user = User{}
	m.epoch++
	listeners := m.transitions
	m.mu.Unlock()

	if err := m.store.Clear(context.Background()); err != nil {
		m.log.Warn("failed to clear session storage on expiry", logger.Error(err))
	}
	m.log.Info("session expired, forcing logout")

	for _, fn := range listeners {
		fn(StateAnonymous)
	}
}

// OnTransition registers a listener invoked after every state change, e.g.
// for redirect-on-expiry or resetting dependent state. Register listeners
// during wiring, before concurrent use.
func (m *Manager) OnTransition(fn func(State)) {
	if fn == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transitions = append(m.transitions, fn)
}

// CurrentUser returns the authenticated user, if any.
func (m *Manager) CurrentUser() (User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.state != StateAuthenticated {
		return User{}, false
	}
	return m.user, true
}

// IsAuthenticated reports whether a user is currently authenticated. The
// check consults the token store: an authenticated state without a stored
// credential is an invalid session and is demoted to Anonymous on the spot,
// so the invariant "authenticated implies credential present" holds for
// every observer.
func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	state := m.state
	m.mu.RUnlock()

	if state != StateAuthenticated {
		return false
	}

	if _, ok := m.store.Credential(context.Background()); !ok {
		if err := m.store.Clear(context.Background()); err != nil {
			m.log.Warn("failed to clear invalid session state", logger.Error(err))
		}
		m.transition(StateAnonymous, User{})
		return false
	}
	return true
}

// IsLoading reports whether Initialize has not yet resolved. It flips to
// false exactly once; dependent consumers should not render meaningfully
// before that.
func (m *Manager) IsLoading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loading
}

// State returns the current session state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Epoch returns a counter that increments on every session transition.
// In-flight operations capture it before issuing a call and discard their
// results if it has moved on, so a response that lands after logout cannot
// resurrect state that belonged to the previous session.
func (m *Manager) Epoch() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.epoch
}

// establish finishes a successful login or registration: verifies the
// transport captured a credential, caches the profile and transitions.
func (m *Manager) establish(ctx context.Context, raw json.RawMessage) (User, error) {
	user, err := parseUser(raw)
	if err != nil {
		return User{}, errors.Join(apiclient.ErrTransient, err)
	}

	// The invariant is credential AND profile, together or not at all. If
	// the response carried no rotated credential the session would be
	// half-formed; refuse it.
	if _, ok := m.store.Credential(ctx); !ok {
		return User{}, errors.Join(apiclient.ErrTransient, errors.New("no credential captured from auth response"))
	}

	if err := m.cacheProfile(ctx, user); err != nil {
		if clearErr := m.store.Clear(ctx); clearErr != nil {
			m.log.WarnContext(ctx, "failed to roll back credential", logger.Error(clearErr))
		}
		return User{}, err
	}

	m.transition(StateAuthenticated, user)
	m.log.InfoContext(ctx, "session established", logger.UserID(user.ID))
	return user, nil
}

func (m *Manager) cacheProfile(ctx context.Context, user User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	return m.store.SetProfile(ctx, data)
}

func (m *Manager) transition(state State, user User) {
	m.mu.Lock()
	changed := m.state != state || m.user != user
	m.state = state
	m.user = user
	if changed {
		m.epoch++
	}
	listeners := m.transitions
	m.mu.Unlock()

	if changed {
		for _, fn := range listeners {
			fn(state)
		}
	}
}

// parseUser handles the backend's auth response shapes: {"data": {user}},
// {"user": {user}} or a bare user object.
func parseUser(raw json.RawMessage) (User, error) {
	var wrapped struct {
		Data *User `json:"data"`
		User *User `json:"user"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil {
		if wrapped.Data != nil && wrapped.Data.ID != "" {
			return *wrapped.Data, nil
		}
		if wrapped.User != nil && wrapped.User.ID != "" {
			return *wrapped.User, nil
		}
	}

	var user User
	if err := json.Unmarshal(raw, &user); err != nil {
		return User{}, fmt.Errorf("decode user payload: %w", err)
	}
	if user.ID == "" {
		return User{}, errors.New("auth response carried no user")
	}
	return user, nil
}

func validateCredentials(email, password string) error {
	err := validator.Apply(
		validator.Required("email", email),
		validator.Email("email", email),
		validator.MinLen("password", password, 6),
	)
	if err != nil {
		return errors.Join(ErrInvalidInput, err)
	}
	return nil
}
