package http

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// Limiter counts hits per key in fixed windows.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) bool
}

// MemoryLimiter keeps counters in process. Each replica limits on its own.
// Expired buckets are pruned at most once per window, so keys that stop
// sending do not accumulate.
type MemoryLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*rateBucket
	nextPrune time.Time
	now       func() time.Time
}

type rateBucket struct {
	count     int
	windowEnd time.Time
}

func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{buckets: make(map[string]*rateBucket), now: time.Now}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string, limit int, window time.Duration) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.prune(now, window)

	bucket, ok := l.buckets[key]
	if !ok || now.After(bucket.windowEnd) {
		l.buckets[key] = &rateBucket{count: 1, windowEnd: now.Add(window)}
		return true
	}
	if bucket.count >= limit {
		return false
	}
	bucket.count++
	return true
}

func (l *MemoryLimiter) prune(now time.Time, window time.Duration) {
	if now.Before(l.nextPrune) {
		return
	}
	for key, bucket := range l.buckets {
		if now.After(bucket.windowEnd) {
			delete(l.buckets, key)
		}
	}
	l.nextPrune = now.Add(window)
}

const rateLimitScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
if current > tonumber(ARGV[2]) then
  return 0
end
return 1
`

// RedisLimiter shares counters between replicas. It fails open: when Redis
// is unreachable the request is allowed.
type RedisLimiter struct {
	client  redis.Scripter
	script  *redis.Script
	timeout time.Duration
}

func NewRedisLimiter(client redis.Scripter) *RedisLimiter {
	return &RedisLimiter{
		client:  client,
		script:  redis.NewScript(rateLimitScript),
		timeout: 250 * time.Millisecond,
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) bool {
	ttl := max(window.Milliseconds(), 1)

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	allowed, err := l.script.Run(ctx, l.client, []string{key}, ttl, limit).Int64()
	if err != nil {
		return true
	}
	return allowed == 1
}

// RateLimit limits mutating requests per acting user, falling back to the
// client IP for anonymous calls. Reads are never limited.
func RateLimit(limiter Limiter, limit int, window time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if limiter == nil || limit <= 0 || ctx.Request().Method == http.MethodGet {
				return next(ctx)
			}

			who := ctx.Request().Header.Get("X-User-ID")
			if who == "" {
				who = ctx.RealIP()
			}
			if !limiter.Allow(ctx.Request().Context(), "rl:"+who, limit, window) {
				ctx.Response().Header().Set("Retry-After", strconv.Itoa(int(window.Seconds())))
				return writeError(ctx, http.StatusTooManyRequests, "Rate limit exceeded")
			}
			return next(ctx)
		}
	}
}
