package redis

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xiebiao/bookhub/pkg/circuitbreaker"
	apperrors "github.com/xiebiao/bookhub/pkg/errors"
)

// newTestClient 连接本地Redis，不可用时跳过
func newTestClient(t *testing.T) *redis.Client {
	t.Helper()
	client := redis.NewClient(&redis.Options{Addr: "localhost:6379", DB: 15})

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		t.Skipf("Redis不可用，跳过: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRevocationStore(t *testing.T) {
	client := newTestClient(t)
	store := NewRevocationStore(client, zap.NewNop())
	ctx := context.Background()
	tokenID := uuid.NewString()
	t.Cleanup(func() { client.Del(ctx, revokedKeyPrefix+tokenID) })

	revoked, err := store.IsRevoked(ctx, tokenID)
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, store.Revoke(ctx, tokenID, time.Minute))

	revoked, err = store.IsRevoked(ctx, tokenID)
	require.NoError(t, err)
	assert.True(t, revoked)

	ttl, err := client.TTL(ctx, revokedKeyPrefix+tokenID).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Minute)
	t.Logf("✓ Token已吊销, ttl=%v", ttl)
}

func TestRevocationStore_ExpiredTokenNotStored(t *testing.T) {
	client := newTestClient(t)
	store := NewRevocationStore(client, zap.NewNop())
	ctx := context.Background()
	tokenID := uuid.NewString()

	require.NoError(t, store.Revoke(ctx, tokenID, 0))

	exists, err := client.Exists(ctx, revokedKeyPrefix+tokenID).Result()
	require.NoError(t, err)
	assert.Zero(t, exists)
}

func TestRevocationStore_BreakerOpensWhenRedisDown(t *testing.T) {
	// 端口1上没有服务，连接立即被拒绝
	client := redis.NewClient(&redis.Options{
		Addr:        "localhost:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	store := NewRevocationStore(client, zap.NewNop())
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := store.IsRevoked(ctx, "any")
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrRedisError)
	}
	assert.Equal(t, circuitbreaker.StateOpen, store.breaker.State())

	_, err := store.IsRevoked(ctx, "any")
	assert.ErrorIs(t, err, circuitbreaker.ErrOpenState)

	err = store.Revoke(ctx, "any", time.Minute)
	assert.ErrorIs(t, err, circuitbreaker.ErrOpenState)
}
