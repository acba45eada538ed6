package tokenstore

import (
	"context"
	"sync"
)

// MemoryStore implements Store with in-process storage. State does not
// survive a restart; use FileStore or RedisStore for durable sessions.
type MemoryStore struct {
	mu      sync.RWMutex
	cred    Credential
	profile []byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) SetCredential(ctx context.Context, cred Credential) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cred = cred
	return nil
}

func (m *MemoryStore) Credential(ctx context.Context) (Credential, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.cred.IsZero() || m.cred.IsExpired() {
		return Credential{}, false
	}
	return m.cred, true
}

func (m *MemoryStore) SetProfile(ctx context.Context, profile []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profile = append([]byte(nil), profile...)
	return nil
}

func (m *MemoryStore) Profile(ctx context.Context) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.profile) == 0 {
		return nil, false
	}
	return append([]byte(nil), m.profile...), true
}

func (m *MemoryStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cred = Credential{}
	m.profile = nil
	return nil
}
