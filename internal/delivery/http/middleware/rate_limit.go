package middleware

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Alfiasnyah78/labubu-projectv2/pkg/apperror"
	"github.com/Alfiasnyah78/labubu-projectv2/pkg/logger"
	"github.com/Alfiasnyah78/labubu-projectv2/pkg/ratelimit"
	"github.com/Alfiasnyah78/labubu-projectv2/pkg/redis"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

const rateLimitMessage = "Too many requests. Please try again later."

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	// Requests per window
	Limit int
	// Time window duration
	Window time.Duration
	// Key prefix for Redis counters
	KeyPrefix string
}

// EmailRateLimitConfig bounds the public notification endpoint.
func EmailRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Limit:     limit,
		Window:    window,
		KeyPrefix: "rl:email:",
	}
}

// ClientKey derives the rate-limit bucket for a request: the first
// forwarded-for hop, then the CDN's connecting-IP header, then "unknown".
// All unidentifiable clients share the "unknown" bucket.
func ClientKey(c *gin.Context) string {
	if fwd := c.GetHeader("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	if ip := c.GetHeader("CF-Connecting-IP"); ip != "" {
		return ip
	}
	return "unknown"
}

// Lua script for a check-then-increment fixed window counter.
// Rejected requests never consume quota.
// KEYS[1] = counter key
// ARGV[1] = TTL in seconds
// ARGV[2] = max limit
// Returns: [allowed(0/1), current_count, ttl_remaining]
const rateLimitLuaScript = `
local limit = tonumber(ARGV[2])
local count = tonumber(redis.call('GET', KEYS[1]) or '0')
if count >= limit then
    return {0, count, redis.call('TTL', KEYS[1])}
end
count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
return {1, count, redis.call('TTL', KEYS[1])}
`

// RateLimitMiddleware enforces a fixed-window quota per client key.
// Uses Redis when available so horizontally scaled instances share one
// quota; falls back to the supplied process-local limiter when not.
func RateLimitMiddleware(config RateLimitConfig, fallback *ratelimit.FixedWindowLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := ClientKey(c)

		var allowed bool
		var remaining int
		var resetAt time.Time

		redisClient := redis.Client()
		if redisClient != nil {
			var err error
			allowed, remaining, resetAt, err = checkRateLimitRedis(c.Request.Context(), redisClient, config, key)
			if err != nil {
				// Fail open onto the in-memory limiter: availability over
				// exactness for a courtesy-email endpoint.
				logger.Log.Warn("redis rate limit check failed, using in-memory fallback", "error", err)
				allowed, remaining, resetAt = checkRateLimitInMemory(fallback, key)
			}
		} else {
			allowed, remaining, resetAt = checkRateLimitInMemory(fallback, key)
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(config.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", resetAt.Format(time.RFC3339))

		if !allowed {
			retryAfter := int(time.Until(resetAt).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			logger.Log.Warn("rate limit exceeded", "client", key, "path", c.FullPath())
			c.Error(apperror.TooManyRequests(rateLimitMessage))
			c.Abort()
			return
		}

		c.Next()
	}
}

func checkRateLimitRedis(ctx context.Context, client *goredis.Client, config RateLimitConfig, key string) (bool, int, time.Time, error) {
	ttlSeconds := int(config.Window.Seconds())

	result, err := client.Eval(ctx, rateLimitLuaScript, []string{config.KeyPrefix + key}, ttlSeconds, config.Limit).Result()
	if err != nil {
		return false, 0, time.Time{}, fmt.Errorf("redis rate limit eval failed: %w", err)
	}

	arr, ok := result.([]interface{})
	if !ok || len(arr) < 3 {
		return false, 0, time.Time{}, fmt.Errorf("unexpected redis result format")
	}

	allowed, _ := arr[0].(int64)
	count, _ := arr[1].(int64)
	ttl, _ := arr[2].(int64)
	if ttl < 0 {
		ttl = int64(ttlSeconds)
	}

	remaining := config.Limit - int(count)
	if remaining < 0 {
		remaining = 0
	}

	return allowed == 1, remaining, time.Now().Add(time.Duration(ttl) * time.Second), nil
}

func checkRateLimitInMemory(limiter *ratelimit.FixedWindowLimiter, key string) (bool, int, time.Time) {
	allowed := limiter.Allow(key)
	return allowed, limiter.Remaining(key), limiter.ResetAt(key)
}
