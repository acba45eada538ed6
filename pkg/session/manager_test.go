package session_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goodmarket/storefront-go/pkg/apiclient"
	"github.com/goodmarket/storefront-go/pkg/session"
	"github.com/goodmarket/storefront-go/pkg/tokenstore"
)

type fixture struct {
	router  *chi.Mux
	server  *httptest.Server
	store   *tokenstore.MemoryStore
	client  *apiclient.Client
	manager *session.Manager
}

func setup(t *testing.T, opts ...session.Option) *fixture {
	f := &fixture{router: chi.NewRouter(), store: tokenstore.NewMemoryStore()}
	f.server = httptest.NewServer(f.router)
	t.Cleanup(f.server.Close)

	f.client = apiclient.New(f.server.URL, f.store)
	f.manager = session.New(f.client, opts...)
	f.client.OnUnauthorized(f.manager.HandleUnauthorized)
	return f
}

// stubAuthEndpoint wires POST /api/authenticate to accept exactly one
// email/password pair, returning a rotated token header and a user body.
func (f *fixture) stubAuthEndpoint(email, password string, user session.User) {
	f.router.Post("/api/authenticate", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Authentication struct {
				Email    string `json:"email"`
				Password string `json:"password"`
			} `json:"authentication"`
		}
		_ = json.NewDecoder(r.Body).Decode(&payload)

		if payload.Authentication.Email != email || payload.Authentication.Password != password {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		w.Header().Set("Authorization", "Bearer issued-token")
		_ = json.NewEncoder(w).Encode(map[string]any{"data": user})
	})
}

func buyer() session.User {
	return session.User{ID: "u1", Name: "A", Email: "a@b.com", Role: session.RoleBuyer}
}

func TestManager_Initialize(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown until initialize, loading flips once", func(t *testing.T) {
		f := setup(t)
		assert.Equal(t, session.StateUnknown, f.manager.State())
		assert.True(t, f.manager.IsLoading())

		state := f.manager.Initialize(ctx)
		assert.Equal(t, session.StateAnonymous, state)
		assert.False(t, f.manager.IsLoading())

		// Second call is a no-op returning the resolved state
		assert.Equal(t, session.StateAnonymous, f.manager.Initialize(ctx))
	})

	t.Run("restores session when credential and profile present", func(t *testing.T) {
		f := setup(t)
		require.NoError(t, f.store.SetCredential(ctx, tokenstore.Credential{Token: "tok"}))
		profile, _ := json.Marshal(buyer())
		require.NoError(t, f.store.SetProfile(ctx, profile))

		state := f.manager.Initialize(ctx)
		assert.Equal(t, session.StateAuthenticated, state)

		user, ok := f.manager.CurrentUser()
		require.True(t, ok)
		assert.Equal(t, "u1", user.ID)
	})

	t.Run("profile without credential is stale and cleared", func(t *testing.T) {
		f := setup(t)
		profile, _ := json.Marshal(buyer())
		require.NoError(t, f.store.SetProfile(ctx, profile))

		state := f.manager.Initialize(ctx)
		assert.Equal(t, session.StateAnonymous, state)

		_, ok := f.store.Profile(ctx)
		assert.False(t, ok, "stale profile must be cleared")
	})

	t.Run("credential without profile is invalid and cleared", func(t *testing.T) {
		f := setup(t)
		require.NoError(t, f.store.SetCredential(ctx, tokenstore.Credential{Token: "orphan"}))

		state := f.manager.Initialize(ctx)
		assert.Equal(t, session.StateAnonymous, state)

		_, ok := f.store.Credential(ctx)
		assert.False(t, ok, "orphan credential must be cleared")
	})

	t.Run("corrupt cached profile treated as absent", func(t *testing.T) {
		f := setup(t)
		require.NoError(t, f.store.SetCredential(ctx, tokenstore.Credential{Token: "tok"}))
		require.NoError(t, f.store.SetProfile(ctx, []byte("{broken")))

		assert.Equal(t, session.StateAnonymous, f.manager.Initialize(ctx))
	})
}

func TestManager_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials authenticate and persist", func(t *testing.T) {
		f := setup(t)
		f.stubAuthEndpoint("a@b.com", "secret1", buyer())
		f.manager.Initialize(ctx)

		user, err := f.manager.Login(ctx, "a@b.com", "secret1")
		require.NoError(t, err)
		assert.Equal(t, buyer(), user)
		assert.True(t, f.manager.IsAuthenticated())

		cred, ok := f.store.Credential(ctx)
		require.True(t, ok, "credential must be persisted")
		assert.Equal(t, "issued-token", cred.Token)

		profile, ok := f.store.Profile(ctx)
		require.True(t, ok, "profile must be cached")
		var cached session.User
		require.NoError(t, json.Unmarshal(profile, &cached))
		assert.Equal(t, buyer(), cached)
	})

	t.Run("invalid credentials leave state untouched", func(t *testing.T) {
		f := setup(t)
		f.stubAuthEndpoint("a@b.com", "secret1", buyer())
		f.manager.Initialize(ctx)

		_, err := f.manager.Login(ctx, "a@b.com", "wrong-pass")
		assert.ErrorIs(t, err, apiclient.ErrInvalidCredentials)
		assert.False(t, f.manager.IsAuthenticated())

		_, ok := f.store.Credential(ctx)
		assert.False(t, ok, "no credential persisted on failed login")
	})

	t.Run("server failure is transient with no mutation", func(t *testing.T) {
		f := setup(t)
		f.router.Post("/api/authenticate", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})
		f.manager.Initialize(ctx)

		_, err := f.manager.Login(ctx, "a@b.com", "secret1")
		assert.ErrorIs(t, err, apiclient.ErrTransient)
		assert.False(t, f.manager.IsAuthenticated())
	})

	t.Run("missing rotated credential refuses half-formed session", func(t *testing.T) {
		f := setup(t)
		f.router.Post("/api/authenticate", func(w http.ResponseWriter, r *http.Request) {
			// no Authorization header
			_ = json.NewEncoder(w).Encode(map[string]any{"data": buyer()})
		})
		f.manager.Initialize(ctx)

		_, err := f.manager.Login(ctx, "a@b.com", "secret1")
		assert.ErrorIs(t, err, apiclient.ErrTransient)
		assert.False(t, f.manager.IsAuthenticated())
	})

	t.Run("client-side validation avoids the network", func(t *testing.T) {
		f := setup(t)
		// no endpoint registered: any request would 404 and fail the test
		f.manager.Initialize(ctx)

		_, err := f.manager.Login(ctx, "not-an-email", "secret1")
		assert.ErrorIs(t, err, session.ErrInvalidInput)

		_, err = f.manager.Login(ctx, "a@b.com", "short")
		assert.ErrorIs(t, err, session.ErrInvalidInput)
	})
}

func TestManager_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("success authenticates", func(t *testing.T) {
		f := setup(t)
		f.router.Post("/api/users", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Authorization", "Bearer fresh-token")
			_ = json.NewEncoder(w).Encode(map[string]any{"data": buyer()})
		})
		f.manager.Initialize(ctx)

		user, err := f.manager.Register(ctx, "A", "a@b.com", "secret1")
		require.NoError(t, err)
		assert.Equal(t, "u1", user.ID)
		assert.True(t, f.manager.IsAuthenticated())
	})

	t.Run("duplicate email surfaces conflict", func(t *testing.T) {
		f := setup(t)
		f.router.Post("/api/users", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "email already taken"})
		})
		f.manager.Initialize(ctx)

		_, err := f.manager.Register(ctx, "A", "a@b.com", "secret1")
		assert.ErrorIs(t, err, session.ErrConflict)
		assert.False(t, f.manager.IsAuthenticated())
	})
}

func TestManager_Logout(t *testing.T) {
	ctx := context.Background()

	t.Run("clears state and is idempotent", func(t *testing.T) {
		f := setup(t)
		f.stubAuthEndpoint("a@b.com", "secret1", buyer())
		f.manager.Initialize(ctx)
		_, err := f.manager.Login(ctx, "a@b.com", "secret1")
		require.NoError(t, err)

		f.manager.Logout(ctx)
		assert.False(t, f.manager.IsAuthenticated())
		_, ok := f.store.Credential(ctx)
		assert.False(t, ok)
		_, ok = f.store.Profile(ctx)
		assert.False(t, ok)

		// Second logout: same end state, no panic, no error surfaced
		f.manager.Logout(ctx)
		assert.False(t, f.manager.IsAuthenticated())
	})

	t.Run("force-cleared credential means next check is anonymous", func(t *testing.T) {
		f := setup(t)
		f.stubAuthEndpoint("a@b.com", "secret1", buyer())
		f.manager.Initialize(ctx)
		_, err := f.manager.Login(ctx, "a@b.com", "secret1")
		require.NoError(t, err)
		require.True(t, f.manager.IsAuthenticated())

		// Invariant: authenticated implies a stored credential. Force-clear
		// the credential behind the manager's back; the next session check
		// must report anonymous, not assume validity.
		require.NoError(t, f.store.Clear(ctx))
		assert.False(t, f.manager.IsAuthenticated())
		assert.Equal(t, session.StateAnonymous, f.manager.State())
	})
}

func TestManager_HandleUnauthorized(t *testing.T) {
	ctx := context.Background()

	t.Run("fires transition exactly once under concurrent 401s", func(t *testing.T) {
		var expiredCount int
		var mu sync.Mutex

		f := setup(t, session.WithOnExpired(func() {
			mu.Lock()
			expiredCount++
			mu.Unlock()
		}))
		f.stubAuthEndpoint("a@b.com", "secret1", buyer())
		f.manager.Initialize(ctx)
		_, err := f.manager.Login(ctx, "a@b.com", "secret1")
		require.NoError(t, err)

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				f.manager.HandleUnauthorized()
			}()
		}
		wg.Wait()

		assert.False(t, f.manager.IsAuthenticated())
		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, 1, expiredCount, "forced logout must fire exactly once")
	})

	t.Run("no-op when already anonymous", func(t *testing.T) {
		var fired bool
		f := setup(t, session.WithOnExpired(func() { fired = true }))
		f.manager.Initialize(ctx)

		f.manager.HandleUnauthorized()
		assert.False(t, fired)
	})
}

func TestManager_Epoch(t *testing.T) {
	ctx := context.Background()

	f := setup(t)
	f.stubAuthEndpoint("a@b.com", "secret1", buyer())
	f.manager.Initialize(ctx)
	before := f.manager.Epoch()

	_, err := f.manager.Login(ctx, "a@b.com", "secret1")
	require.NoError(t, err)
	afterLogin := f.manager.Epoch()
	assert.Greater(t, afterLogin, before)

	f.manager.Logout(ctx)
	assert.Greater(t, f.manager.Epoch(), afterLogin)
}

func TestUser_CanSell(t *testing.T) {
	assert.False(t, session.User{Role: session.RoleBuyer}.CanSell())
	assert.True(t, session.User{Role: session.RoleSeller}.CanSell())
	assert.True(t, session.User{Role: session.RoleAdmin}.CanSell())
}
