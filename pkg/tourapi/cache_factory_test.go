package tourapi_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tourdesk/admin-client/pkg/tourapi"
)

func TestCacheFactory_MemoryCache(t *testing.T) {
	t.Parallel()

	for _, config := range []*tourapi.CacheConfig{nil, {}, {Type: tourapi.CacheTypeMemory}} {
		cache, err := tourapi.NewCacheFromConfig(context.Background(), config)
		require.NoError(t, err)
		assert.IsType(t, &tourapi.MemoryCache{}, cache)
	}
}

func TestCacheFactory_NoOpCache(t *testing.T) {
	t.Parallel()

	cache, err := tourapi.NewCacheFromConfig(context.Background(), &tourapi.CacheConfig{Type: tourapi.CacheTypeNone})
	require.NoError(t, err)
	assert.IsType(t, &tourapi.NoOpCache{}, cache)
}

func TestCacheFactory_MissingBackendConfig(t *testing.T) {
	t.Parallel()

	_, err := tourapi.NewCacheFromConfig(context.Background(), &tourapi.CacheConfig{Type: tourapi.CacheTypeNATS})
	require.ErrorIs(t, err, tourapi.ErrNATSConfigRequired)

	_, err = tourapi.NewCacheFromConfig(context.Background(), &tourapi.CacheConfig{Type: tourapi.CacheTypeRedis})
	require.ErrorIs(t, err, tourapi.ErrRedisConfigRequired)
}

func TestCacheFactory_UnsupportedType(t *testing.T) {
	t.Parallel()

	_, err := tourapi.NewCacheFromConfig(context.Background(), &tourapi.CacheConfig{Type: "memcached"})
	require.ErrorIs(t, err, tourapi.ErrUnsupportedCacheType)
	assert.Contains(t, err.Error(), "memcached")
}
