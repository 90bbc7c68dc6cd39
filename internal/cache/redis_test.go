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

func setupCache(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisWithClient(client), mr
}

func TestRedis_SetGet(t *testing.T) {
	c, _ := setupCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "stats", `{"total_scenarios":3}`, time.Minute))

	val, ok := c.Get(ctx, "stats")
	assert.True(t, ok)
	assert.Equal(t, `{"total_scenarios":3}`, val)
}

func TestRedis_GetMiss(t *testing.T) {
	c, _ := setupCache(t)

	_, ok := c.Get(context.Background(), "absent")
	assert.False(t, ok)
}

func TestRedis_Del(t *testing.T) {
	c, _ := setupCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "stats", "x", time.Minute))
	require.NoError(t, c.Del(ctx, "stats"))

	_, ok := c.Get(ctx, "stats")
	assert.False(t, ok)
}

func TestRedis_TTLExpiry(t *testing.T) {
	c, mr := setupCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "stats", "x", time.Minute))
	mr.FastForward(2 * time.Minute)

	_, ok := c.Get(ctx, "stats")
	assert.False(t, ok)
}

func TestRedis_Ping(t *testing.T) {
	c, mr := setupCache(t)

	require.NoError(t, c.Ping(context.Background()))

	mr.Close()
	assert.Error(t, c.Ping(context.Background()))
}
