package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kushi-chatbot/internal/common/config"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisLimiter_FixedWindow(t *testing.T) {
	mr, client := setupRedis(t)
	ctx := context.Background()

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	l := NewRedisLimiter(client, "test:", 2, time.Minute)
	l.now = func() time.Time { return now }

	for i := 0; i < 2; i++ {
		ok, err := l.Allow(ctx, "1.2.3.4")
		require.NoError(t, err)
		assert.True(t, ok, "request %d", i)
	}

	ok, err := l.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = l.Allow(ctx, "5.6.7.8")
	require.NoError(t, err)
	assert.True(t, ok, "other keys have their own window")

	key := "test:1.2.3.4:" + "1704110400000"
	assert.True(t, mr.Exists(key))
	assert.Equal(t, time.Minute, mr.TTL(key))

	now = now.Add(time.Minute)
	ok, err = l.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.True(t, ok, "next window starts fresh")
}

func TestRedisLimiter_BackendDown(t *testing.T) {
	mr, client := setupRedis(t)
	l := NewRedisLimiter(client, "test:", 1, time.Minute)
	mr.Close()

	ok, err := l.Allow(context.Background(), "k")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestLocalLimiter(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	l := NewLocalLimiter(2, time.Minute)
	l.now = func() time.Time { return now }

	ok, _ := l.Allow(ctx, "a")
	assert.True(t, ok)
	ok, _ = l.Allow(ctx, "a")
	assert.True(t, ok)
	ok, _ = l.Allow(ctx, "a")
	assert.False(t, ok)

	ok, _ = l.Allow(ctx, "b")
	assert.True(t, ok)

	// one token refills every 30s
	now = now.Add(30 * time.Second)
	ok, _ = l.Allow(ctx, "a")
	assert.True(t, ok)
	ok, _ = l.Allow(ctx, "a")
	assert.False(t, ok)

	assert.Equal(t, 2, l.Len())
}

func TestLocalLimiter_Sweep(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	l := NewLocalLimiter(1, time.Second)
	l.now = func() time.Time { return now }

	_, _ = l.Allow(context.Background(), "old")
	now = now.Add(time.Hour)
	l.sweep(now)
	assert.Equal(t, 0, l.Len())
}

func TestNew(t *testing.T) {
	_, client := setupRedis(t)

	cfg := config.RateLimitConfig{Enabled: true, RequestsPerWindow: 5, Window: 1000, KeyPrefix: "p:"}

	assert.IsType(t, &RedisLimiter{}, New(cfg, client))
	assert.IsType(t, &LocalLimiter{}, New(cfg, nil))

	cfg.Enabled = false
	assert.IsType(t, Noop{}, New(cfg, client))

	cfg.Enabled = true
	cfg.RequestsPerWindow = 0
	assert.IsType(t, Noop{}, New(cfg, nil))
}

func TestNoop(t *testing.T) {
	ok, err := Noop{}.Allow(context.Background(), "anything")
	assert.NoError(t, err)
	assert.True(t, ok)
}
