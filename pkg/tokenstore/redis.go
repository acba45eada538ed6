package tokenstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	credentialKeySuffix = ":credential"
	profileKeySuffix    = ":profile"
)

// RedisStore implements Store on Redis, for server-rendered storefront
// deployments where client state must be shared across instances. Keys are
// namespaced per end user via the key prefix (for example "gm:user:42").
//
// Credential TTL maps to Redis key expiry, so expired credentials vanish on
// their own; the profile key carries the same TTL so both disappear together.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a Redis-backed store with the given key prefix.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "gm"
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (r *RedisStore) SetCredential(ctx context.Context, cred Credential) error {
	data, err := json.Marshal(cred)
	if err != nil {
		return errors.Join(ErrPersistFailed, err)
	}

	ttl := time.Duration(0)
	if !cred.ExpiresAt.IsZero() {
		ttl = time.Until(cred.ExpiresAt)
		if ttl <= 0 {
			// Already expired; storing it would be indistinguishable from absent
			return nil
		}
	}

	if err := r.client.Set(ctx, r.prefix+credentialKeySuffix, data, ttl).Err(); err != nil {
		return errors.Join(ErrPersistFailed, err)
	}
	if ttl > 0 {
		// Keep the cached profile on the same clock as the credential
		_ = r.client.Expire(ctx, r.prefix+profileKeySuffix, ttl).Err()
	}
	return nil
}

func (r *RedisStore) Credential(ctx context.Context) (Credential, bool) {
	data, err := r.client.Get(ctx, r.prefix+credentialKeySuffix).Bytes()
	if err != nil {
		return Credential{}, false
	}

	var cred Credential
	if err := json.Unmarshal(data, &cred); err != nil {
		return Credential{}, false
	}
	if cred.IsZero() || cred.IsExpired() {
		return Credential{}, false
	}
	return cred, true
}

func (r *RedisStore) SetProfile(ctx context.Context, profile []byte) error {
	ttl := time.Duration(0)
	if cred, ok := r.Credential(ctx); ok && !cred.ExpiresAt.IsZero() {
		ttl = time.Until(cred.ExpiresAt)
	}

	if err := r.client.Set(ctx, r.prefix+profileKeySuffix, profile, ttl).Err(); err != nil {
		return errors.Join(ErrPersistFailed, err)
	}
	return nil
}

func (r *RedisStore) Profile(ctx context.Context) ([]byte, bool) {
	data, err := r.client.Get(ctx, r.prefix+profileKeySuffix).Bytes()
	if err != nil || len(data) == 0 {
		return nil, false
	}
	return data, true
}

func (r *RedisStore) Clear(ctx context.Context) error {
	err := r.client.Del(ctx, r.prefix+credentialKeySuffix, r.prefix+profileKeySuffix).Err()
	if err != nil {
		return errors.Join(ErrClearFailed, err)
	}
	return nil
}
