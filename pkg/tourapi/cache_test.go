package tourapi_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tourdesk/admin-client/pkg/tourapi"
)

func TestMemoryCache_SetAndGet(t *testing.T) {
	t.Parallel()

	cache := tourapi.NewMemoryCache()
	ctx := context.Background()

	storedAt := time.Now()

	err := cache.Set(ctx, "GET:/tour/GetTours", &tourapi.CacheEntry{Body: []byte(`{"data":[]}`), StoredAt: storedAt})
	require.NoError(t, err)

	entry, err := cache.Get(ctx, "GET:/tour/GetTours")
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":[]}`, string(entry.Body))
	assert.Equal(t, storedAt, entry.StoredAt)
	assert.Equal(t, 1, cache.Len())
}

func TestMemoryCache_GetNonExistent(t *testing.T) {
	t.Parallel()

	cache := tourapi.NewMemoryCache()

	_, err := cache.Get(context.Background(), "GET:/missing")
	require.ErrorIs(t, err, tourapi.ErrCacheMiss)
}

func TestMemoryCache_FirstWriteWins(t *testing.T) {
	t.Parallel()

	cache := tourapi.NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "key", &tourapi.CacheEntry{Body: []byte(`"first"`)}))
	require.NoError(t, cache.Set(ctx, "key", &tourapi.CacheEntry{Body: []byte(`"second"`)}))

	entry, err := cache.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, `"first"`, string(entry.Body))
}

func TestMemoryCache_Isolation(t *testing.T) {
	t.Parallel()

	cache := tourapi.NewMemoryCache()
	ctx := context.Background()

	body := []byte(`{"a":1}`)
	require.NoError(t, cache.Set(ctx, "key", &tourapi.CacheEntry{Body: body}))

	body[2] = 'b'

	entry, err := cache.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(entry.Body))

	entry.Body[2] = 'c'

	again, err := cache.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(again.Body))
}

func TestMemoryCache_Clear(t *testing.T) {
	t.Parallel()

	cache := tourapi.NewMemoryCache()
	ctx := context.Background()

	for _, key := range []string{"a", "b", "c"} {
		require.NoError(t, cache.Set(ctx, key, &tourapi.CacheEntry{Body: []byte(`null`)}))
	}

	assert.Equal(t, 3, cache.Len())

	require.NoError(t, cache.Clear(ctx))
	assert.Equal(t, 0, cache.Len())

	_, err := cache.Get(ctx, "a")
	require.ErrorIs(t, err, tourapi.ErrCacheMiss)
}

func TestMemoryCache_Concurrent(t *testing.T) {
	t.Parallel()

	cache := tourapi.NewMemoryCache()
	ctx := context.Background()

	var wg sync.WaitGroup

	for i := range 50 {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			_ = cache.Set(ctx, "shared", &tourapi.CacheEntry{Body: []byte{byte('0' + i%10)}})
			_, _ = cache.Get(ctx, "shared")
		}(i)
	}

	wg.Wait()

	assert.Equal(t, 1, cache.Len())
}

func TestNoOpCache(t *testing.T) {
	t.Parallel()

	cache := tourapi.NewNoOpCache()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "key", &tourapi.CacheEntry{Body: []byte(`null`)}))

	_, err := cache.Get(ctx, "key")
	require.ErrorIs(t, err, tourapi.ErrCacheDisabled)
	require.NoError(t, cache.Clear(ctx))
}

func TestCacheKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "GET:/tour/GetTours", tourapi.CacheKey("GET", "/tour/GetTours"))
	assert.NotEqual(t,
		tourapi.CacheKey("GET", "/TourRelevent/tags/search?name=a"),
		tourapi.CacheKey("GET", "/TourRelevent/tags/search?name=A"))
}
