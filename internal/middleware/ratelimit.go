package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/course-backend/internal/config"
	"github.com/stemsi/course-backend/internal/response"
)

// CounterStore counts hits per key within a fixed window.
type CounterStore interface {
	// Incr adds one hit to key and returns the new count. The key expires after ttl.
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

// RateLimiter implements a per-IP fixed-window rate limiter.
type RateLimiter struct {
	store    CounterStore
	rate     int           // Requests per interval
	interval time.Duration // Window length
	log      zerolog.Logger
	now      func() time.Time
}

// DefaultRateLimitInterval replaces a non-positive window length.
const DefaultRateLimitInterval = time.Minute

// NewRateLimiter creates a RateLimiter (e.g., 60 requests per minute).
func NewRateLimiter(store CounterStore, rate int, interval time.Duration, log zerolog.Logger) *RateLimiter {
	if interval <= 0 {
		interval = DefaultRateLimitInterval
	}
	return &RateLimiter{
		store:    store,
		rate:     rate,
		interval: interval,
		log:      log.With().Str("component", "rate_limiter").Logger(),
		now:      time.Now,
	}
}

// Middleware returns a Gin middleware that rate-limits requests by IP.
// Store failures let the request through.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		now := rl.now()
		window := now.UnixNano() / int64(rl.interval)
		key := config.CacheKey.RateLimitKey(c.ClientIP(), window)

		count, err := rl.store.Incr(c.Request.Context(), key, rl.interval)
		if err != nil {
			rl.log.Warn().Err(err).Str("key", key).Msg("Rate limit store unavailable")
			c.Next()
			return
		}

		remaining := int64(rl.rate) - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.rate))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if count > int64(rl.rate) {
			windowEnd := time.Unix(0, (window+1)*int64(rl.interval))
			retry := int(windowEnd.Sub(now).Seconds()) + 1
			c.Header("Retry-After", strconv.Itoa(retry))
			response.AbortFail(c, http.StatusTooManyRequests, response.ErrRateLimitExceeded)
			return
		}
		c.Next()
	}
}

// ────────────────────────────────────────────────────────────────────────────
// Stores
// ────────────────────────────────────────────────────────────────────────────

// RedisCounterStore shares counters between every instance behind the same Redis.
type RedisCounterStore struct {
	rdb redis.UniversalClient
}

func NewRedisCounterStore(rdb redis.UniversalClient) *RedisCounterStore {
	return &RedisCounterStore{rdb: rdb}
}

func (s *RedisCounterStore) Incr(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	pipe := s.rdb.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

// MemoryCounterStore keeps counters in process memory.
type MemoryCounterStore struct {
	mu       sync.Mutex
	counters map[string]*counter
	now      func() time.Time
	hits     int
}

type counter struct {
	count     int64
	expiresAt time.Time
}

func NewMemoryCounterStore() *MemoryCounterStore {
	return &MemoryCounterStore{
		counters: make(map[string]*counter),
		now:      time.Now,
	}
}

func (s *MemoryCounterStore) Incr(_ context.Context, key string, ttl time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.hits++
	if s.hits%1024 == 0 {
		s.cleanup(now)
	}

	v, ok := s.counters[key]
	if !ok || now.After(v.expiresAt) {
		v = &counter{expiresAt: now.Add(ttl)}
		s.counters[key] = v
	}
	v.count++
	return v.count, nil
}

// cleanup drops expired counters. Caller holds s.mu.
func (s *MemoryCounterStore) cleanup(now time.Time) {
	for key, v := range s.counters {
		if now.After(v.expiresAt) {
			delete(s.counters, key)
		}
	}
}
