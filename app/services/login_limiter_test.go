package services

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/amirphl/restaurant-hub/config"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoginAttemptLimiterFallsBackToNoop(t *testing.T) {
	limiter := NewLoginAttemptLimiter(nil, config.CacheConfig{}, config.SecurityConfig{MaxLoginAttempts: 3, LoginAttemptsWindow: time.Minute})
	assert.IsType(t, NoopLoginAttemptLimiter{}, limiter)

	ctx := context.Background()
	for range 10 {
		require.NoError(t, limiter.RecordFailure(ctx, "a@x.com"))
	}
	blocked, err := limiter.Blocked(ctx, "a@x.com")
	require.NoError(t, err)
	assert.False(t, blocked)
}

func TestLoginAttemptKey(t *testing.T) {
	assert.Equal(t, "a@x.com|203.0.113.9", LoginAttemptKey("a@x.com", "203.0.113.9"))
	assert.NotEqual(t, LoginAttemptKey("a@x.com", "203.0.113.9"), LoginAttemptKey("a@x.com", "198.51.100.7"))
	assert.Equal(t, "a@x.com|unknown", LoginAttemptKey("a@x.com", ""))
}

func TestRedisLoginAttemptLimiter(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}

	opt, err := redis.ParseURL(url)
	require.NoError(t, err)
	rc := redis.NewClient(opt)
	t.Cleanup(func() { _ = rc.Close() })

	ctx := context.Background()
	require.NoError(t, rc.Ping(ctx).Err())

	prefix := fmt.Sprintf("test_%d", time.Now().UnixNano())
	limiter := NewLoginAttemptLimiter(rc,
		config.CacheConfig{RedisPrefix: prefix},
		config.SecurityConfig{MaxLoginAttempts: 3, LoginAttemptsWindow: time.Minute},
	)
	require.IsType(t, &RedisLoginAttemptLimiter{}, limiter)

	email := LoginAttemptKey("owner@example.com", "203.0.113.9")
	t.Cleanup(func() { _ = limiter.Reset(context.Background(), email) })

	for i := range 3 {
		blocked, err := limiter.Blocked(ctx, email)
		require.NoError(t, err)
		assert.False(t, blocked, "attempt %d", i)
		require.NoError(t, limiter.RecordFailure(ctx, email))
	}

	blocked, err := limiter.Blocked(ctx, email)
	require.NoError(t, err)
	assert.True(t, blocked)

	blocked, err = limiter.Blocked(ctx, LoginAttemptKey("owner@example.com", "198.51.100.7"))
	require.NoError(t, err)
	assert.False(t, blocked, "counter must be per client address")

	ttl, err := rc.TTL(ctx, prefix+":login_failures:"+email).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, limiter.Reset(ctx, email))
	blocked, err = limiter.Blocked(ctx, email)
	require.NoError(t, err)
	assert.False(t, blocked)
}
