// Package idempotency keeps checkout replay keys in Redis.
package idempotency

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "storefront:checkout:"

	// pendingMarker is stored while the reserving request is still placing orders.
	pendingMarker = "pending"
)

// DefaultTTL bounds how long a replay returns the original orders.
const DefaultTTL = 24 * time.Hour

// PendingTTL frees a reservation whose request died before completing or releasing it.
const PendingTTL = time.Minute

// kv is the subset of redis.Cmdable the store needs.
type kv interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	SetNX(ctx context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisStore implements ports.IdempotencyStore. A key holds either the pending marker or
// the comma separated list of order ids created for it.
type RedisStore struct {
	client kv
	ttl    time.Duration
}

// NewClient opens a go-redis client with short timeouts; checkout fails fast when Redis
// is unreachable.
func NewClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
}

// NewRedisStore keeps completed keys for ttl, DefaultTTL when ttl is not positive.
func NewRedisStore(client kv, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

// Reserve claims key with SET NX. When the key is taken its value tells a running
// checkout from a completed one.
func (s *RedisStore) Reserve(ctx context.Context, key string) (ports.IdempotencyState, []kernel.UUID, error) {
	reserved, err := s.client.SetNX(ctx, keyPrefix+key, pendingMarker, PendingTTL).Result()
	if err != nil {
		return 0, nil, err
	}
	if reserved {
		return ports.IdempotencyReserved, nil, nil
	}

	value, err := s.client.Get(ctx, keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		// released or expired between the two calls; the holder is not done with it
		return ports.IdempotencyPending, nil, nil
	}
	if err != nil {
		return 0, nil, err
	}
	if value == pendingMarker {
		return ports.IdempotencyPending, nil, nil
	}

	ids, err := decode(value)
	if err != nil {
		return 0, nil, fmt.Errorf("decode idempotency key %q: %w", key, err)
	}
	return ports.IdempotencyCompleted, ids, nil
}

// Complete replaces the pending marker with ids for the full ttl.
func (s *RedisStore) Complete(ctx context.Context, key string, ids []kernel.UUID) error {
	return s.client.Set(ctx, keyPrefix+key, encode(ids), s.ttl).Err()
}

// Release deletes the key so the next request with it starts over.
func (s *RedisStore) Release(ctx context.Context, key string) error {
	return s.client.Del(ctx, keyPrefix+key).Err()
}

func encode(ids []kernel.UUID) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, id.String())
	}
	return strings.Join(parts, ",")
}

func decode(value string) ([]kernel.UUID, error) {
	if value == "" {
		return []kernel.UUID{}, nil
	}

	parts := strings.Split(value, ",")
	ids := make([]kernel.UUID, 0, len(parts))
	for _, part := range parts {
		id, err := kernel.UUIDFromString(part)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
