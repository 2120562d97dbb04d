package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"trashapp/internal/config"
	"trashapp/internal/logger"
)

// rate limiter state lives in a Redis hash per client key so limits hold
// across instances. The bucket refills refillTokens per interval up to
// capacity; the script runs atomically server-side.
var bucketScript = redis.NewScript(`
	local key = KEYS[1]
	local now_ms = tonumber(ARGV[1])
	local capacity = tonumber(ARGV[2])
	local interval_ms = tonumber(ARGV[3])
	local ttl_seconds = tonumber(ARGV[4])

	local state = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
	local tokens = tonumber(state[1])
	local last_refill = tonumber(state[2])

	if tokens == nil or last_refill == nil then
		tokens = capacity
		last_refill = now_ms
	end

	if interval_ms > 0 then
		local elapsed = math.max(0, now_ms - last_refill)
		local intervals = math.floor(elapsed / interval_ms)
		if intervals > 0 then
			tokens = math.min(capacity, tokens + intervals)
			last_refill = last_refill + (intervals * interval_ms)
		end
	end

	local allowed = 0
	local retry_after_ms = 0
	if tokens > 0 then
		allowed = 1
		tokens = tokens - 1
	else
		retry_after_ms = math.max(0, interval_ms - (now_ms - last_refill))
	end

	redis.call('HMSET', key, 'tokens', tokens, 'last_refill_ms', last_refill)
	redis.call('EXPIRE', key, ttl_seconds)

	return { allowed, retry_after_ms }
`)

// NewRedisClient builds a Redis client from configuration, or nil when no
// address is configured or the server is unreachable. Callers degrade to
// pass-through behavior on nil.
func NewRedisClient(cfg *config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Get().Warnf("redis unreachable, rate limiting disabled: %v", err)
		return nil
	}
	return client
}

// RateLimit returns a Redis-backed token-bucket limiter keyed by client
// IP and route. Disabled (pass-through) when rate limiting is off or no
// Redis client is available; a Redis error at request time fails open.
func RateLimit(cfg *config.Config, rdb *redis.Client) gin.HandlerFunc {
	if !cfg.RateLimitEnabled || rdb == nil {
		return func(c *gin.Context) { c.Next() }
	}

	ttl := int64((time.Duration(cfg.RateLimitBurst) * cfg.RateLimitRefill * 2) / time.Second)
	if ttl < 60 {
		ttl = 60
	}

	return func(c *gin.Context) {
		key := "ratelimit:" + c.ClientIP() + ":" + c.FullPath()
		args := []interface{}{
			time.Now().UnixMilli(),
			cfg.RateLimitBurst,
			cfg.RateLimitRefill.Milliseconds(),
			ttl,
		}

		vals, err := bucketScript.Run(c.Request.Context(), rdb, []string{key}, args...).Result()
		if err != nil {
			logger.Get().Warnf("rate limiter error for key %s: %v", key, err)
			c.Next()
			return
		}

		arr, ok := vals.([]interface{})
		if !ok || len(arr) != 2 {
			c.Next()
			return
		}
		allowed, _ := arr[0].(int64)
		retryMs, _ := arr[1].(int64)

		if allowed != 1 {
			secs := int(math.Ceil(float64(retryMs) / 1000.0))
			c.Header("Retry-After", strconv.Itoa(secs))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": gin.H{
					"message": "Too many requests",
					"code":    "RATE_LIMITED",
					"details": gin.H{},
				},
				"status_code": http.StatusTooManyRequests,
			})
			return
		}
		c.Next()
	}
}
