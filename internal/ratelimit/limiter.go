// internal/ratelimit/limiter.go
package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"kushi-chatbot/internal/common/config"
)

// Limiter decides whether the client identified by key may send another message.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// New picks the limiter for cfg: Noop when disabled, Redis when a client is
// given, otherwise the in-process token buckets.
func New(cfg config.RateLimitConfig, client *redis.Client) Limiter {
	if !cfg.Enabled || cfg.RequestsPerWindow <= 0 {
		return Noop{}
	}
	window := config.GetDuration(cfg.Window)
	if client != nil {
		return NewRedisLimiter(client, cfg.KeyPrefix, cfg.RequestsPerWindow, window)
	}
	return NewLocalLimiter(cfg.RequestsPerWindow, window)
}

// Noop allows everything.
type Noop struct{}

func (Noop) Allow(context.Context, string) (bool, error) { return true, nil }

// RedisLimiter is a fixed-window counter shared by every replica.
type RedisLimiter struct {
	client *redis.Client
	prefix string
	limit  int64
	window time.Duration
	now    func() time.Time
}

func NewRedisLimiter(client *redis.Client, prefix string, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		prefix: prefix,
		limit:  int64(limit),
		window: window,
		now:    time.Now,
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	windowStart := l.now().Truncate(l.window)
	redisKey := fmt.Sprintf("%s%s:%d", l.prefix, key, windowStart.UnixMilli())

	pipe := l.client.TxPipeline()
	count := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("rate limit incr %s: %w", redisKey, err)
	}

	return count.Val() <= l.limit, nil
}

// maxLocalEntries bounds the bucket map before idle buckets are swept.
const maxLocalEntries = 10000

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// LocalLimiter keeps one token bucket per key in process memory.
type LocalLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	every   rate.Limit
	burst   int
	window  time.Duration
	now     func() time.Time
}

func NewLocalLimiter(limit int, window time.Duration) *LocalLimiter {
	return &LocalLimiter{
		buckets: make(map[string]*bucket),
		every:   rate.Every(window / time.Duration(limit)),
		burst:   limit,
		window:  window,
		now:     time.Now,
	}
}

func (l *LocalLimiter) Allow(_ context.Context, key string) (bool, error) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		if len(l.buckets) >= maxLocalEntries {
			l.sweep(now)
		}
		b = &bucket{limiter: rate.NewLimiter(l.every, l.burst)}
		l.buckets[key] = b
	}
	b.lastSeen = now

	return b.limiter.AllowN(now, 1), nil
}

// sweep drops buckets idle for longer than a window; they would be full again anyway.
func (l *LocalLimiter) sweep(now time.Time) {
	for key, b := range l.buckets {
		if now.Sub(b.lastSeen) > l.window {
			delete(l.buckets, key)
		}
	}
}

// Len reports how many buckets are tracked.
func (l *LocalLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}
