package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/tradecare/backend/pkg/config"
)

func disabledClient(t *testing.T) *Client {
	t.Helper()
	client, err := New(&config.Config{Redis: config.RedisConfig{Enabled: false}})
	require.NoError(t, err)
	return client
}

func TestNewClient_Disabled(t *testing.T) {
	client := disabledClient(t)

	assert.False(t, client.Enabled())
	assert.Nil(t, client.Redis())
	assert.Empty(t, client.Addr())
	assert.NoError(t, client.Ping(context.Background()))
	assert.NoError(t, client.Close())
}

func TestNewClient_Unreachable(t *testing.T) {
	start := time.Now()
	_, err := New(&config.Config{Redis: config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: "1"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "127.0.0.1:1")
	assert.Less(t, time.Since(start), connectTimeout+time.Second)
}

func TestRateLimiter_Disabled(t *testing.T) {
	limiter := NewRateLimiter(disabledClient(t), "test")
	cfg := UpstreamRateLimit(10, time.Hour)

	// When Redis is disabled, all requests should be allowed
	allowed, remaining, err := limiter.Allow(context.Background(), cfg)
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Equal(t, cfg.Limit, remaining)

	assert.NoError(t, limiter.Wait(context.Background(), cfg))
}

func TestCache_Disabled(t *testing.T) {
	cache := NewCache(disabledClient(t), "test")
	ctx := context.Background()

	var result string
	found, err := cache.Get(ctx, "key", &result)
	require.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, cache.Set(ctx, "key", "value", TTLShort))
	assert.NoError(t, cache.Delete(ctx, "key"))
}

func TestCacheKeys(t *testing.T) {
	assert.Equal(t, "dataset:info:latest", DatasetInfoKey())
	assert.Equal(t, "validation:run:abc", ValidationRunKey("abc"))

	cache := NewCache(disabledClient(t), "tradecare")
	assert.Equal(t, "tradecare:cache:dataset:info:latest", cache.fullKey(DatasetInfoKey()))
}

func TestUpstreamRateLimit(t *testing.T) {
	cfg := UpstreamRateLimit(5, time.Minute)
	assert.Equal(t, "upstream", cfg.Key)
	assert.Equal(t, 5, cfg.Limit)
	assert.Equal(t, time.Minute, cfg.Window)
}

func TestCache_Integration(t *testing.T) {
	if os.Getenv("REDIS_ENABLED") != "true" {
		t.Skip("REDIS_ENABLED not set, skipping integration test")
	}

	cfg, err := config.Load()
	require.NoError(t, err)

	client, err := New(cfg)
	require.NoError(t, err)
	defer client.Close()

	cache := NewCache(client, "tradecare-test")
	ctx := context.Background()

	type payload struct {
		Rows int `json:"rows"`
	}
	require.NoError(t, cache.Set(ctx, "k", payload{Rows: 96000}, TTLShort))

	var got payload
	found, err := cache.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 96000, got.Rows)

	require.NoError(t, cache.Delete(ctx, "k"))
	found, err = cache.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, found)
}
