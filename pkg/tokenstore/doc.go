// Package tokenstore owns the persisted authentication credential and the
// cached user profile. It is the single source of truth for both: the API
// client reads the credential on every outgoing request and writes rotated
// credentials captured from responses, and the session manager caches the
// user profile next to it. Nothing else in the SDK touches this state
// directly.
//
// Three implementations ship out of the box:
//
//   - MemoryStore — in-process, for tests and throwaway sessions
//   - FileStore   — single JSON file, the default for CLI/desktop frontends
//   - RedisStore  — shared state for multi-instance server-rendered frontends
//
// Reads never return errors. A missing, corrupt or expired credential is
// reported as absent, which the rest of the SDK treats as unauthenticated —
// the safe default when storage misbehaves.
//
// # Usage
//
//	store := tokenstore.NewFileStore(filepath.Join(home, ".goodmarket", "state.json"))
//	if cred, ok := store.Credential(ctx); ok {
//	    req.Header.Set("Authorization", cred.Authorization())
//	}
package tokenstore
