package tourapi

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/nats-io/nats.go"
)

// NATSKVConfig configures the NATS JetStream key-value cache.
type NATSKVConfig struct {
	// URL of the NATS server, e.g. "nats://127.0.0.1:4222".
	URL string

	// Bucket is the KV bucket holding cached responses. Created if missing.
	Bucket string

	// Conn is an existing connection to use instead of dialing URL.
	Conn *nats.Conn
}

// NATSKVCache keeps GET responses in a JetStream KV bucket so several short-lived
// processes (one CLI invocation each) can share a single session cache.
type NATSKVCache struct {
	conn     *nats.Conn
	ownsConn bool
	kv       nats.KeyValue
}

// NewNATSKVCache connects to NATS and opens (or creates) the bucket.
func NewNATSKVCache(config *NATSKVConfig) (*NATSKVCache, error) {
	if config == nil {
		return nil, ErrNATSConfigRequired
	}

	conn := config.Conn
	ownsConn := false

	if conn == nil {
		var err error

		conn, err = nats.Connect(config.URL, nats.Name("tourdesk-cache"))
		if err != nil {
			return nil, fmt.Errorf("connecting to NATS: %w", err)
		}

		ownsConn = true
	}

	kv, err := openBucket(conn, config.Bucket)
	if err != nil {
		if ownsConn {
			conn.Close()
		}

		return nil, err
	}

	return &NATSKVCache{conn: conn, ownsConn: ownsConn, kv: kv}, nil
}

func openBucket(conn *nats.Conn, bucket string) (nats.KeyValue, error) {
	if bucket == "" {
		bucket = DefaultNATSBucket
	}

	js, err := conn.JetStream()
	if err != nil {
		return nil, fmt.Errorf("opening JetStream context: %w", err)
	}

	kv, err := js.KeyValue(bucket)
	if errors.Is(err, nats.ErrBucketNotFound) {
		kv, err = js.CreateKeyValue(&nats.KeyValueConfig{
			Bucket:      bucket,
			Description: "tourdesk GET response cache",
		})
	}

	if err != nil {
		return nil, fmt.Errorf("opening KV bucket %q: %w", bucket, err)
	}

	return kv, nil
}

// natsKey maps a cache key onto the restricted KV key alphabet.
func natsKey(key string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(key))
}

// Get retrieves an entry from the bucket.
func (c *NATSKVCache) Get(ctx context.Context, key string) (*CacheEntry, error) {
	kvEntry, err := c.kv.Get(natsKey(key))
	if errors.Is(err, nats.ErrKeyNotFound) {
		return nil, ErrCacheMiss
	}

	if err != nil {
		return nil, fmt.Errorf("reading cache key %q: %w", key, err)
	}

	return &CacheEntry{Body: kvEntry.Value(), StoredAt: kvEntry.Created()}, nil
}

// Set creates the key; an existing key is left untouched.
func (c *NATSKVCache) Set(ctx context.Context, key string, entry *CacheEntry) error {
	_, err := c.kv.Create(natsKey(key), entry.Body)
	if err != nil && !errors.Is(err, nats.ErrKeyExists) {
		return fmt.Errorf("writing cache key %q: %w", key, err)
	}

	return nil
}

// Clear purges every key in the bucket.
func (c *NATSKVCache) Clear(ctx context.Context) error {
	keys, err := c.kv.Keys()
	if errors.Is(err, nats.ErrNoKeysFound) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("listing cache keys: %w", err)
	}

	for _, key := range keys {
		err = c.kv.Purge(key)
		if err != nil {
			return fmt.Errorf("purging cache key: %w", err)
		}
	}

	return nil
}

// Close releases the connection if the cache dialed it.
func (c *NATSKVCache) Close() error {
	if c.ownsConn {
		c.conn.Close()
	}

	return nil
}
