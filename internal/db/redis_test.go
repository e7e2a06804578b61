package db

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*RedisDB, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisFromClient(client), mr
}

func TestCacheRoundTripAndMiss(t *testing.T) {
	r, mr := newTestRedis(t)
	ctx := context.Background()

	var got []string
	assert.ErrorIs(t, r.GetCache(ctx, "members:1", &got), ErrCacheMiss)

	require.NoError(t, r.SetCache(ctx, "members:1", []string{"a", "b"}, time.Minute))
	require.NoError(t, r.GetCache(ctx, "members:1", &got))
	assert.Equal(t, []string{"a", "b"}, got)

	mr.FastForward(2 * time.Minute)
	assert.ErrorIs(t, r.GetCache(ctx, "members:1", &got), ErrCacheMiss)
}

func TestInvalidateCachePattern(t *testing.T) {
	r, mr := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, r.SetCache(ctx, "members:1", 1, 0))
	require.NoError(t, r.SetCache(ctx, "members:2", 2, 0))
	require.NoError(t, r.SetCache(ctx, "other", 3, 0))

	require.NoError(t, r.InvalidateCache(ctx, "members:*"))
	assert.False(t, mr.Exists("cache:members:1"))
	assert.False(t, mr.Exists("cache:members:2"))
	assert.True(t, mr.Exists("cache:other"))
}
