package idempotency

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/ports"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockKV struct {
	mock.Mock
}

func (m *mockKV) Get(ctx context.Context, key string) *redis.StringCmd {
	args := m.Called(ctx, key)
	return redis.NewStringResult(args.String(0), args.Error(1))
}

func (m *mockKV) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	args := m.Called(ctx, key, value, expiration)
	return redis.NewStatusResult(args.String(0), args.Error(1))
}

func (m *mockKV) SetNX(ctx context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd {
	args := m.Called(ctx, key, value, expiration)
	return redis.NewBoolResult(args.Bool(0), args.Error(1))
}

func (m *mockKV) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	args := m.Called(ctx, keys)
	return redis.NewIntResult(int64(args.Int(0)), args.Error(1))
}

const redisKey = "storefront:checkout:abc"

func TestReserve_FreeKey(t *testing.T) {
	ctx := context.Background()
	kv := new(mockKV)
	kv.On("SetNX", ctx, redisKey, pendingMarker, PendingTTL).Return(true, nil).Once()

	state, ids, err := NewRedisStore(kv, time.Hour).Reserve(ctx, "abc")

	require.NoError(t, err)
	assert.Equal(t, ports.IdempotencyReserved, state)
	assert.Nil(t, ids)
	kv.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestReserve_KeyHeldByRunningCheckout(t *testing.T) {
	ctx := context.Background()
	kv := new(mockKV)
	kv.On("SetNX", ctx, redisKey, pendingMarker, PendingTTL).Return(false, nil).Once()
	kv.On("Get", ctx, redisKey).Return(pendingMarker, nil).Once()

	state, ids, err := NewRedisStore(kv, time.Hour).Reserve(ctx, "abc")

	require.NoError(t, err)
	assert.Equal(t, ports.IdempotencyPending, state)
	assert.Nil(t, ids)
}

func TestReserve_KeyVanishedBetweenCalls(t *testing.T) {
	ctx := context.Background()
	kv := new(mockKV)
	kv.On("SetNX", ctx, redisKey, pendingMarker, PendingTTL).Return(false, nil).Once()
	kv.On("Get", ctx, redisKey).Return("", redis.Nil).Once()

	state, _, err := NewRedisStore(kv, time.Hour).Reserve(ctx, "abc")

	require.NoError(t, err)
	assert.Equal(t, ports.IdempotencyPending, state)
}

func TestCompleteThenReserve_ReplaysIDs(t *testing.T) {
	ctx := context.Background()
	kv := new(mockKV)
	store := NewRedisStore(kv, time.Hour)
	ids := []kernel.UUID{kernel.NewUUID(), kernel.NewUUID()}

	var stored string
	kv.On("Set", ctx, redisKey, mock.Anything, time.Hour).Run(func(args mock.Arguments) {
		stored = args.Get(2).(string)
	}).Return("OK", nil).Once()
	require.NoError(t, store.Complete(ctx, "abc", ids))

	kv.On("SetNX", ctx, redisKey, pendingMarker, PendingTTL).Return(false, nil).Once()
	kv.On("Get", ctx, redisKey).Return(stored, nil).Once()
	state, got, err := store.Reserve(ctx, "abc")

	require.NoError(t, err)
	assert.Equal(t, ports.IdempotencyCompleted, state)
	assert.Equal(t, ids, got)
	kv.AssertExpectations(t)
}

func TestRelease_DeletesKey(t *testing.T) {
	ctx := context.Background()
	kv := new(mockKV)
	kv.On("Del", ctx, []string{redisKey}).Return(1, nil).Once()

	require.NoError(t, NewRedisStore(kv, time.Hour).Release(ctx, "abc"))
	kv.AssertExpectations(t)
}

func TestReserve_RedisErrorIsReturned(t *testing.T) {
	ctx := context.Background()
	kv := new(mockKV)
	down := errors.New("connection refused")
	kv.On("SetNX", ctx, redisKey, pendingMarker, PendingTTL).Return(false, down).Once()

	_, _, err := NewRedisStore(kv, time.Hour).Reserve(ctx, "abc")

	require.ErrorIs(t, err, down)
}

func TestReserve_CorruptValue(t *testing.T) {
	ctx := context.Background()
	kv := new(mockKV)
	kv.On("SetNX", ctx, redisKey, pendingMarker, PendingTTL).Return(false, nil).Once()
	kv.On("Get", ctx, redisKey).Return("not-a-uuid", nil).Once()

	_, _, err := NewRedisStore(kv, time.Hour).Reserve(ctx, "abc")

	require.Error(t, err)
}

func TestNewRedisStore_DefaultTTL(t *testing.T) {
	assert.Equal(t, DefaultTTL, NewRedisStore(new(mockKV), 0).ttl)
}
