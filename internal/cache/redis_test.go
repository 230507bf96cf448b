package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedValue struct {
	Level  string `json:"level"`
	Reason string `json:"reason"`
}

func newTestCache(t *testing.T) (Cache, *miniredis.Miniredis) {
	s := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisCacheFromClient(client), s
}

func TestRedisCache_SetGet(t *testing.T) {
	c, s := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "rank:vip", cachedValue{Level: "vip", Reason: "name"}, time.Minute))
	assert.True(t, s.Exists(keyPrefix+"rank:vip"))

	var got cachedValue
	found, err := c.Get(ctx, "rank:vip", &got)
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, cachedValue{Level: "vip", Reason: "name"}, got)
}

func TestRedisCache_Miss(t *testing.T) {
	c, _ := newTestCache(t)

	var got cachedValue
	found, err := c.Get(context.Background(), "missing", &got)
	assert.NoError(t, err)
	assert.False(t, found)
}

func TestRedisCache_Expiry(t *testing.T) {
	c, s := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "short", cachedValue{Level: "mod"}, time.Second))
	s.FastForward(2 * time.Second)

	var got cachedValue
	found, err := c.Get(ctx, "short", &got)
	assert.NoError(t, err)
	assert.False(t, found)
}

func TestRedisCache_CorruptValue(t *testing.T) {
	c, s := newTestCache(t)
	require.NoError(t, s.Set(keyPrefix+"bad", "not json"))

	var got cachedValue
	found, err := c.Get(context.Background(), "bad", &got)
	assert.Error(t, err)
	assert.False(t, found)
}

func TestRedisCache_Unavailable(t *testing.T) {
	c, s := newTestCache(t)
	s.Close()

	var got cachedValue
	_, err := c.Get(context.Background(), "any", &got)
	assert.Error(t, err)
}
