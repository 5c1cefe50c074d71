package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type listQuery struct {
	Status string `json:"status"`
	Page   int    `json:"page"`
}

func TestQueryCache_DisabledWithoutClientOrTTL(t *testing.T) {
	SetClient(nil)
	c := NewQueryCache("", time.Minute)
	assert.False(t, c.Enabled())

	var out []string
	key, hit, err := c.Load(context.Background(), "jobs", listQuery{}, &out)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Empty(t, key)
	assert.NoError(t, c.StoreAt(context.Background(), key, []string{"a"}))

	useMiniredis(t)
	assert.False(t, NewQueryCache("cache", 0).Enabled())

	var nilCache *QueryCache
	assert.False(t, nilCache.Enabled())
}

func TestQueryCache_StoreLoadInvalidate(t *testing.T) {
	useMiniredis(t)
	ctx := context.Background()
	c := NewQueryCache("cache", time.Minute)
	q := listQuery{Status: "open", Page: 1}

	var out []string
	key, hit, err := c.Load(ctx, "jobs", q, &out)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Contains(t, key, "cache:jobs:v0:")

	require.NoError(t, c.StoreAt(ctx, key, []string{"backend", "frontend"}))

	_, hit, err = c.Load(ctx, "jobs", q, &out)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []string{"backend", "frontend"}, out)

	other := listQuery{Status: "closed", Page: 1}
	_, hit, err = c.Load(ctx, "jobs", other, &out)
	require.NoError(t, err)
	assert.False(t, hit)

	ver, err := c.Invalidate(ctx, "jobs")
	require.NoError(t, err)
	assert.Equal(t, "1", ver)

	out = nil
	_, hit, err = c.Load(ctx, "jobs", q, &out)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Nil(t, out)
}

func TestQueryCache_StoreAtKeepsTheVersionItWasLoadedUnder(t *testing.T) {
	useMiniredis(t)
	ctx := context.Background()
	c := NewQueryCache("cache", time.Minute)

	var out []string
	key, _, err := c.Load(ctx, "jobs", listQuery{}, &out)
	require.NoError(t, err)

	// a write lands between the lookup and the store
	_, err = c.Invalidate(ctx, "jobs")
	require.NoError(t, err)
	require.NoError(t, c.StoreAt(ctx, key, []string{"stale"}))

	_, hit, err := c.Load(ctx, "jobs", listQuery{}, &out)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Nil(t, out)
}

func TestQueryCache_InvalidateIsPerResource(t *testing.T) {
	useMiniredis(t)
	ctx := context.Background()
	c := NewQueryCache("cache", time.Minute)

	key, _, err := c.Load(ctx, "ventures", listQuery{}, &[]string{})
	require.NoError(t, err)
	require.NoError(t, c.StoreAt(ctx, key, []string{"v"}))
	_, err = c.Invalidate(ctx, "jobs")
	require.NoError(t, err)

	var out []string
	_, hit, err := c.Load(ctx, "ventures", listQuery{}, &out)
	require.NoError(t, err)
	assert.True(t, hit)
}

func TestQueryCache_KeyChangesWithVersion(t *testing.T) {
	useMiniredis(t)
	ctx := context.Background()
	c := NewQueryCache("cache", time.Minute)

	k1, err := c.Key(ctx, "team", listQuery{Page: 2})
	require.NoError(t, err)
	assert.Contains(t, k1, "cache:team:v0:")

	_, err = c.Invalidate(ctx, "team")
	require.NoError(t, err)
	k2, err := c.Key(ctx, "team", listQuery{Page: 2})
	require.NoError(t, err)
	assert.NotEqual(t, k1, k2)
	assert.Contains(t, k2, "cache:team:v1:")
}

func TestQueryCache_ErrorsPropagate(t *testing.T) {
	useMiniredis(t)
	origGet, origIncr := getCacheValue, incrCacheKey
	t.Cleanup(func() {
		getCacheValue = origGet
		incrCacheKey = origIncr
	})

	getCacheValue = func(context.Context, string) (string, error) { return "", errors.New("boom") }
	incrCacheKey = func(context.Context, string) (int64, error) { return 0, errors.New("boom") }

	c := NewQueryCache("cache", time.Minute)
	var out []string
	_, _, err := c.Load(context.Background(), "jobs", listQuery{}, &out)
	assert.Error(t, err)
	_, err = c.Invalidate(context.Background(), "jobs")
	assert.Error(t, err)
}

func TestQueryCache_CorruptEntry(t *testing.T) {
	useMiniredis(t)
	ctx := context.Background()
	c := NewQueryCache("cache", time.Minute)
	key, err := c.Key(ctx, "media", listQuery{})
	require.NoError(t, err)
	require.NoError(t, Set(ctx, key, "{not json", time.Minute))

	var out []string
	loaded, _, err := c.Load(ctx, "media", listQuery{}, &out)
	assert.Error(t, err)
	assert.Equal(t, key, loaded, "a corrupt entry can be overwritten")
}
