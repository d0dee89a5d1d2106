package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// DefaultKeyPrefix namespaces contact form counters in redis.
const DefaultKeyPrefix = "rl:contact:"

// Lua script for atomic increment with TTL on first set
// KEYS[1] = counter key
// ARGV[1] = window in milliseconds
// Returns: [current_count, pttl_remaining]
var fixedWindowScript = goredis.NewScript(`
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('PTTL', KEYS[1])
return {count, ttl}
`)

// RedisLimiter shares fixed-window counters across processes through redis.
// Any redis failure falls back to the in-memory limiter so Admit never errors.
type RedisLimiter struct {
	client    goredis.Scripter
	config    Config
	keyPrefix string
	fallback  *MemoryLimiter
	log       *slog.Logger
}

// NewRedisLimiter creates a redis-backed limiter. fallback may be nil.
func NewRedisLimiter(client goredis.Scripter, cfg Config, fallback *MemoryLimiter, log *slog.Logger) *RedisLimiter {
	cfg = cfg.normalized()
	if fallback == nil {
		fallback = NewMemoryLimiter(cfg)
	}
	if log == nil {
		log = slog.Default()
	}
	return &RedisLimiter{
		client:    client,
		config:    cfg,
		keyPrefix: DefaultKeyPrefix,
		fallback:  fallback,
		log:       log,
	}
}

// Admit counts the call in redis and admits while the count is at or below the limit.
func (l *RedisLimiter) Admit(ctx context.Context, key string) bool {
	key = normalizeKey(key)

	count, _, err := l.hit(ctx, l.keyPrefix+key)
	if err != nil {
		l.log.Warn("redis rate limit unavailable, using in-memory fallback", "error", err)
		return l.fallback.Admit(ctx, key)
	}
	return count <= l.config.Limit
}

func (l *RedisLimiter) hit(ctx context.Context, key string) (int, time.Duration, error) {
	if l.client == nil {
		return 0, 0, fmt.Errorf("redis client not initialized")
	}

	result, err := fixedWindowScript.Run(ctx, l.client, []string{key}, l.config.Window.Milliseconds()).Result()
	if err != nil {
		return 0, 0, fmt.Errorf("redis rate limit eval failed: %w", err)
	}

	// Parse result [count, pttl]
	arr, ok := result.([]interface{})
	if !ok || len(arr) < 2 {
		return 0, 0, fmt.Errorf("unexpected redis result format")
	}

	count, _ := arr[0].(int64)
	ttl, _ := arr[1].(int64)

	return int(count), time.Duration(ttl) * time.Millisecond, nil
}
