package middleware

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stwalsh4118/vidhub/internal/logger"
)

// Quota is the outcome of one rate limit check
type Quota struct {
	Allowed   bool
	Limit     int64
	Remaining int64
	ResetAt   time.Time
}

// Limiter counts requests per key in fixed windows
type Limiter interface {
	Allow(ctx context.Context, key string) (Quota, error)
}

// windowOf returns the index of the fixed window containing now and the
// time that window ends
func windowOf(now time.Time, window time.Duration) (int64, time.Time) {
	size := window.Milliseconds()
	if size <= 0 {
		size = 1
	}
	idx := now.UnixMilli() / size
	return idx, time.UnixMilli((idx + 1) * size).UTC()
}

func quota(count, max int64, resetAt time.Time) Quota {
	remaining := max - count
	if remaining < 0 {
		remaining = 0
	}
	return Quota{
		Allowed:   count <= max,
		Limit:     max,
		Remaining: remaining,
		ResetAt:   resetAt,
	}
}

// RedisLimiter keeps fixed-window counters in redis so every instance of
// the API shares them
type RedisLimiter struct {
	client  redis.Cmdable
	prefix  string
	window  time.Duration
	max     int64
	nowFunc func() time.Time
}

// NewRedisLimiter creates a limiter allowing max requests per window and key
func NewRedisLimiter(client redis.Cmdable, window time.Duration, max int64) *RedisLimiter {
	return &RedisLimiter{
		client:  client,
		prefix:  "vidhub:ratelimit:",
		window:  window,
		max:     max,
		nowFunc: time.Now,
	}
}

// Allow counts one request for key
func (l *RedisLimiter) Allow(ctx context.Context, key string) (Quota, error) {
	idx, resetAt := windowOf(l.nowFunc(), l.window)
	windowKey := fmt.Sprintf("%s%s:%d", l.prefix, key, idx)

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, windowKey)
	pipe.PExpire(ctx, windowKey, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return Quota{}, fmt.Errorf("failed to count request: %w", err)
	}
	return quota(incr.Val(), l.max, resetAt), nil
}

// MemoryLimiter keeps fixed-window counters in process memory. Used when no
// redis is configured.
type MemoryLimiter struct {
	mu      sync.Mutex
	window  time.Duration
	max     int64
	current int64
	counts  map[string]int64
	nowFunc func() time.Time
}

// NewMemoryLimiter creates a limiter allowing max requests per window and key
func NewMemoryLimiter(window time.Duration, max int64) *MemoryLimiter {
	return &MemoryLimiter{
		window:  window,
		max:     max,
		counts:  make(map[string]int64),
		nowFunc: time.Now,
	}
}

// Allow counts one request for key
func (l *MemoryLimiter) Allow(_ context.Context, key string) (Quota, error) {
	idx, resetAt := windowOf(l.nowFunc(), l.window)

	l.mu.Lock()
	defer l.mu.Unlock()

	// Counters of past windows are dropped wholesale when a new window starts
	if idx != l.current {
		l.current = idx
		l.counts = make(map[string]int64)
	}
	l.counts[key]++
	return quota(l.counts[key], l.max, resetAt), nil
}

// RateLimit limits requests per client IP. Limiter failures let the request
// through.
func RateLimit(l Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		q, err := l.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			logger.Log.Error().
				Err(err).
				Str("client_ip", c.ClientIP()).
				Msg("Rate limiter unavailable")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(q.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(q.Remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(q.ResetAt.Unix(), 10))

		if !q.Allowed {
			retryAfter := int64(math.Ceil(time.Until(q.ResetAt).Seconds()))
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.FormatInt(retryAfter, 10))
			logger.Log.Warn().
				Str("client_ip", c.ClientIP()).
				Str("path", c.Request.URL.Path).
				Msg("Rate limit exceeded")
			abort(c, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests, please try again later")
			return
		}
		c.Next()
	}
}
