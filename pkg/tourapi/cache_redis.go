package tourapi

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig configures the Redis cache backend.
type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string

	// Client is an existing client to use instead of dialing Addr. It is not
	// closed by RedisCache.Close.
	Client redis.UniversalClient
}

// RedisCache keeps GET responses in Redis with no expiry.
type RedisCache struct {
	client     redis.UniversalClient
	ownsClient bool
	keyPrefix  string
}

// NewRedisCache creates a Redis-backed cache and checks connectivity.
func NewRedisCache(ctx context.Context, config *RedisConfig) (*RedisCache, error) {
	if config == nil {
		return nil, ErrRedisConfigRequired
	}

	client := config.Client
	ownsClient := false

	if client == nil {
		client = redis.NewClient(&redis.Options{
			Addr:     config.Addr,
			Password: config.Password,
			DB:       config.DB,
		})

		err := client.Ping(ctx).Err()
		if err != nil {
			_ = client.Close()

			return nil, fmt.Errorf("connecting to redis at %s: %w", config.Addr, err)
		}

		ownsClient = true
	}

	prefix := config.KeyPrefix
	if prefix == "" {
		prefix = DefaultRedisKeyPrefix
	}

	return &RedisCache{client: client, ownsClient: ownsClient, keyPrefix: prefix}, nil
}

// Get retrieves an entry.
func (c *RedisCache) Get(ctx context.Context, key string) (*CacheEntry, error) {
	body, err := c.client.Get(ctx, c.keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}

	if err != nil {
		return nil, fmt.Errorf("reading cache key %q: %w", key, err)
	}

	return &CacheEntry{Body: body}, nil
}

// Set stores entry with SETNX so the first response for a key wins.
func (c *RedisCache) Set(ctx context.Context, key string, entry *CacheEntry) error {
	err := c.client.SetNX(ctx, c.keyPrefix+key, []byte(entry.Body), time.Duration(0)).Err()
	if err != nil {
		return fmt.Errorf("writing cache key %q: %w", key, err)
	}

	return nil
}

// Clear deletes every key under the prefix.
func (c *RedisCache) Clear(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, c.keyPrefix+"*", 0).Iterator()

	for iter.Next(ctx) {
		err := c.client.Del(ctx, iter.Val()).Err()
		if err != nil {
			return fmt.Errorf("deleting cache key: %w", err)
		}
	}

	err := iter.Err()
	if err != nil {
		return fmt.Errorf("scanning cache keys: %w", err)
	}

	return nil
}

// Close releases the client if the cache dialed it.
func (c *RedisCache) Close() error {
	if !c.ownsClient {
		return nil
	}

	err := c.client.Close()
	if err != nil {
		return fmt.Errorf("closing redis client: %w", err)
	}

	return nil
}
