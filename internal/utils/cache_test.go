package utils

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestCacheRoundTrip(t *testing.T) {
	rdb := newTestRedis(t)
	ctx := context.Background()

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	require.NoError(t, SetCache(ctx, rdb, "key", payload{Name: "Thai", Count: 2}, time.Minute))

	var got payload
	found, err := GetCache(ctx, rdb, "key", &got)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, payload{Name: "Thai", Count: 2}, got)
}

func TestGetCacheMiss(t *testing.T) {
	rdb := newTestRedis(t)

	var got string
	found, err := GetCache(context.Background(), rdb, "missing", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestDeleteCache(t *testing.T) {
	rdb := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, SetCache(ctx, rdb, "a", "one", time.Minute))
	require.NoError(t, SetCache(ctx, rdb, "b", "two", time.Minute))
	require.NoError(t, DeleteCache(ctx, rdb, "a", "b"))

	var got string
	found, err := GetCache(ctx, rdb, "a", &got)
	require.NoError(t, err)
	assert.False(t, found)
}
