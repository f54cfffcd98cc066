package tourapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"
)

// Static errors for err113 compliance.
var (
	ErrCacheMiss     = errors.New("cache miss")
	ErrCacheDisabled = errors.New("cache disabled")
)

// CacheEntry is the raw response body of a successful GET.
type CacheEntry struct {
	Body     json.RawMessage
	StoredAt time.Time
}

// Cache stores GET responses by key. Implementations never replace an existing
// entry and never expire one: the first successful response for a key is the
// one every later lookup sees, even if the backend has changed since. Clear is
// an operator action and is never invoked by the request path.
type Cache interface {
	Get(ctx context.Context, key string) (*CacheEntry, error)
	Set(ctx context.Context, key string, entry *CacheEntry) error
	Clear(ctx context.Context) error
}

// CacheKey derives the cache key for a request. The path is used verbatim,
// query string included, so paths that differ only in casing or parameter
// order are distinct keys.
func CacheKey(method, path string) string {
	return method + ":" + path
}

// MemoryCache is an unbounded in-process cache.
type MemoryCache struct {
	mutex   sync.RWMutex
	entries map[string]*CacheEntry
}

// NewMemoryCache creates an empty memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]*CacheEntry),
	}
}

// Get returns a copy of the entry stored under key.
func (c *MemoryCache) Get(ctx context.Context, key string) (*CacheEntry, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, ErrCacheMiss
	}

	return &CacheEntry{Body: bytes.Clone(entry.Body), StoredAt: entry.StoredAt}, nil
}

// Set stores entry under key unless the key is already present.
func (c *MemoryCache) Set(ctx context.Context, key string, entry *CacheEntry) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if _, exists := c.entries[key]; exists {
		return nil
	}

	c.entries[key] = &CacheEntry{Body: bytes.Clone(entry.Body), StoredAt: entry.StoredAt}

	return nil
}

// Clear removes all entries.
func (c *MemoryCache) Clear(ctx context.Context) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries = make(map[string]*CacheEntry)

	return nil
}

// Len returns the number of cached keys.
func (c *MemoryCache) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return len(c.entries)
}

// NoOpCache is a cache that does nothing (no caching).
type NoOpCache struct{}

// NewNoOpCache creates a new no-op cache.
func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

// Get always misses.
func (c *NoOpCache) Get(ctx context.Context, key string) (*CacheEntry, error) {
	return nil, ErrCacheDisabled
}

// Set does nothing.
func (c *NoOpCache) Set(ctx context.Context, key string, entry *CacheEntry) error {
	return nil
}

// Clear does nothing.
func (c *NoOpCache) Clear(ctx context.Context) error {
	return nil
}
