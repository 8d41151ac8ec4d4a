package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/amirphl/restaurant-hub/config"
	"github.com/redis/go-redis/v9"
)

// LoginAttemptLimiter tracks failed logins per attempt key. Keys come from
// LoginAttemptKey, so guessing from one address never locks out another.
type LoginAttemptLimiter interface {
	Blocked(ctx context.Context, key string) (bool, error)
	RecordFailure(ctx context.Context, key string) error
	Reset(ctx context.Context, key string) error
}

// LoginAttemptKey pairs an email with the client address it was tried from
func LoginAttemptKey(email, clientIP string) string {
	if clientIP == "" {
		clientIP = "unknown"
	}
	return email + "|" + clientIP
}

// RedisLoginAttemptLimiter counts failures in a redis key that expires after the window
type RedisLoginAttemptLimiter struct {
	rc          *redis.Client
	prefix      string
	maxAttempts int
	window      time.Duration
}

// NewLoginAttemptLimiter returns a redis backed limiter, or a noop limiter when rc is nil
// or the policy disables limiting.
func NewLoginAttemptLimiter(rc *redis.Client, cacheCfg config.CacheConfig, secCfg config.SecurityConfig) LoginAttemptLimiter {
	if rc == nil || secCfg.MaxLoginAttempts <= 0 || secCfg.LoginAttemptsWindow <= 0 {
		return NoopLoginAttemptLimiter{}
	}
	return &RedisLoginAttemptLimiter{
		rc:          rc,
		prefix:      cacheCfg.RedisPrefix,
		maxAttempts: secCfg.MaxLoginAttempts,
		window:      secCfg.LoginAttemptsWindow,
	}
}

func (l *RedisLoginAttemptLimiter) key(attemptKey string) string {
	parts := []string{"login_failures", attemptKey}
	if l.prefix != "" {
		parts = append([]string{l.prefix}, parts...)
	}
	return strings.Join(parts, ":")
}

func (l *RedisLoginAttemptLimiter) Blocked(ctx context.Context, attemptKey string) (bool, error) {
	n, err := l.rc.Get(ctx, l.key(attemptKey)).Int()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read login attempts: %w", err)
	}
	return n >= l.maxAttempts, nil
}

// RecordFailure increments the counter. The window starts at the first failure.
func (l *RedisLoginAttemptLimiter) RecordFailure(ctx context.Context, attemptKey string) error {
	key := l.key(attemptKey)

	pipe := l.rc.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record login failure: %w", err)
	}
	return nil
}

func (l *RedisLoginAttemptLimiter) Reset(ctx context.Context, attemptKey string) error {
	if err := l.rc.Del(ctx, l.key(attemptKey)).Err(); err != nil {
		return fmt.Errorf("failed to reset login attempts: %w", err)
	}
	return nil
}

// NoopLoginAttemptLimiter never blocks
type NoopLoginAttemptLimiter struct{}

func (NoopLoginAttemptLimiter) Blocked(context.Context, string) (bool, error) { return false, nil }

func (NoopLoginAttemptLimiter) RecordFailure(context.Context, string) error { return nil }

func (NoopLoginAttemptLimiter) Reset(context.Context, string) error { return nil }
