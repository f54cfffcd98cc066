package tourapi_test

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tourdesk/admin-client/pkg/tourapi"
)

func TestRedisCache_CloseLeavesInjectedClientOpen(t *testing.T) {
	t.Parallel()

	injected := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	defer func() { _ = injected.Close() }()

	cache, err := tourapi.NewRedisCache(context.Background(), &tourapi.RedisConfig{Client: injected})
	require.NoError(t, err)
	require.NoError(t, cache.Close())

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	// A closed client fails with ErrClosed before it looks at the context.
	err = injected.Ping(cancelled).Err()
	require.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, redis.ErrClosed)

	require.NoError(t, injected.Close())
	require.ErrorIs(t, injected.Ping(cancelled).Err(), redis.ErrClosed)
}

func TestRedisCache_RequiresConfig(t *testing.T) {
	t.Parallel()

	_, err := tourapi.NewRedisCache(context.Background(), nil)
	require.ErrorIs(t, err, tourapi.ErrRedisConfigRequired)
}
