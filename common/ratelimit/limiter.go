package ratelimit

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/redis/go-redis/v9"
)

//go:embed rate_limit.lua
var rateLimitScript string

// Logger interface for logging
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
}

// Result contains the outcome of a rate limit check
type Result struct {
	Allowed           bool
	CurrentCount      int64
	Limit             int64
	RetryAfterSeconds int64
}

// Limiter throttles the suggestion proxy endpoints using Redis + Lua. The
// upstream suggestion services are free public APIs; per-user and global
// windows keep the service a polite client of both.
type Limiter struct {
	redis  *redis.Client
	script *redis.Script
	logger Logger
}

// NewLimiter creates a rate limiter with the embedded Lua script
func NewLimiter(redisClient *redis.Client, logger Logger) *Limiter {
	return &Limiter{
		redis:  redisClient,
		script: redis.NewScript(rateLimitScript),
		logger: logger,
	}
}

// CheckGlobal checks the service-wide limit over a one minute window
func (l *Limiter) CheckGlobal(ctx context.Context, limit int64) (*Result, error) {
	return l.check(ctx, "rate_limit:global", limit, 60)
}

// CheckUser checks the per-user limit over a one minute window
func (l *Limiter) CheckUser(ctx context.Context, userID string, limit int64) (*Result, error) {
	key := fmt.Sprintf("rate_limit:user:%s", userID)
	return l.check(ctx, key, limit, 60)
}

// check executes the rate limit Lua script
func (l *Limiter) check(ctx context.Context, key string, limit int64, windowSec int) (*Result, error) {
	result, err := l.script.Run(ctx, l.redis, []string{key}, limit, windowSec).Result()
	if err != nil {
		l.logger.Error("rate limit check failed", "key", key, "error", err)
		return nil, fmt.Errorf("rate limit check failed: %w", err)
	}

	// Result array: {allowed, current_count, limit, retry_after}
	resultArray, ok := result.([]interface{})
	if !ok || len(resultArray) != 4 {
		return nil, fmt.Errorf("unexpected script result format")
	}

	res := &Result{
		Allowed:           resultArray[0].(int64) == 1,
		CurrentCount:      resultArray[1].(int64),
		Limit:             resultArray[2].(int64),
		RetryAfterSeconds: resultArray[3].(int64),
	}

	if !res.Allowed {
		l.logger.Warn("rate limit exceeded",
			"key", key,
			"current", res.CurrentCount,
			"limit", limit,
			"retry_after", res.RetryAfterSeconds)
	}

	return res, nil
}

// Reset clears a rate limit counter (for tests/admin)
func (l *Limiter) Reset(ctx context.Context, key string) error {
	return l.redis.Del(ctx, key).Err()
}
