package client_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tourdesk/admin-client/internal/client"
	internalhttp "github.com/tourdesk/admin-client/internal/http"
	"github.com/tourdesk/admin-client/pkg/tourapi"
)

// MockLogger records log calls for assertions.
type MockLogger struct {
	mutex sync.Mutex
	logs  []string
}

func (l *MockLogger) record(level, msg string) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	l.logs = append(l.logs, level+": "+msg)
}

func (l *MockLogger) Debug(msg string, _ map[string]interface{}) { l.record("debug", msg) }
func (l *MockLogger) Info(msg string, _ map[string]interface{})  { l.record("info", msg) }
func (l *MockLogger) Warn(msg string, _ map[string]interface{})  { l.record("warn", msg) }
func (l *MockLogger) Error(msg string, _ map[string]interface{}) { l.record("error", msg) }

func (l *MockLogger) entries() []string {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	return append([]string(nil), l.logs...)
}

// failingCache fails every operation.
type failingCache struct{}

var errCacheDown = errors.New("cache down")

func (failingCache) Get(context.Context, string) (*tourapi.CacheEntry, error) {
	return nil, errCacheDown
}

func (failingCache) Set(context.Context, string, *tourapi.CacheEntry) error {
	return errCacheDown
}

func (failingCache) Clear(context.Context) error {
	return errCacheDown
}

// backend is a test server that counts requests per method and path.
type backend struct {
	server *httptest.Server
	mutex  sync.Mutex
	hits   map[string]int
}

func newBackend(t *testing.T, handler http.HandlerFunc) *backend {
	t.Helper()

	b := &backend{hits: make(map[string]int)}
	b.server = httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		b.mutex.Lock()
		b.hits[request.Method+" "+request.URL.RequestURI()]++
		b.mutex.Unlock()

		handler(writer, request)
	}))
	t.Cleanup(b.server.Close)

	return b
}

func (b *backend) count(key string) int {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	return b.hits[key]
}

func newRequester(b *backend, cache tourapi.Cache, logger tourapi.Logger) *client.Requester {
	return client.NewRequester(internalhttp.NewClient(b.server.URL, nil), cache, logger)
}

func TestRequester_CachesGet(t *testing.T) {
	t.Parallel()

	b := newBackend(t, func(writer http.ResponseWriter, request *http.Request) {
		_, _ = writer.Write([]byte(`{"data":[{"id":"t1"}]}`))
	})

	requester := newRequester(b, tourapi.NewMemoryCache(), nil)
	ctx := context.Background()

	first, err := requester.Request(ctx, "/tour/GetTours", http.MethodGet, nil, nil)
	require.NoError(t, err)

	second, err := requester.Request(ctx, "/tour/GetTours", http.MethodGet, nil, nil)
	require.NoError(t, err)

	assert.JSONEq(t, string(first), string(second))
	assert.Equal(t, 1, b.count("GET /tour/GetTours"))
}

func TestRequester_WritesDoNotInvalidate(t *testing.T) {
	t.Parallel()

	var created atomic.Bool

	b := newBackend(t, func(writer http.ResponseWriter, request *http.Request) {
		switch request.Method {
		case http.MethodPost:
			created.Store(true)
			_, _ = writer.Write([]byte(`{"data":{"id":"t2"}}`))
		default:
			if created.Load() {
				_, _ = writer.Write([]byte(`{"data":[{"id":"t1"},{"id":"t2"}]}`))

				return
			}

			_, _ = writer.Write([]byte(`{"data":[{"id":"t1"}]}`))
		}
	})

	requester := newRequester(b, tourapi.NewMemoryCache(), nil)
	ctx := context.Background()

	before, err := requester.Request(ctx, "/tour/GetTours", http.MethodGet, nil, nil)
	require.NoError(t, err)

	_, err = requester.Request(ctx, "/tour/CreateTour", http.MethodPost, map[string]string{"name": "new"}, nil)
	require.NoError(t, err)

	_, err = requester.Request(ctx, "/tour/CreateTour", http.MethodPost, map[string]string{"name": "new"}, nil)
	require.NoError(t, err)

	after, err := requester.Request(ctx, "/tour/GetTours", http.MethodGet, nil, nil)
	require.NoError(t, err)

	assert.JSONEq(t, `{"data":[{"id":"t1"}]}`, string(before))
	assert.JSONEq(t, string(before), string(after))
	assert.Equal(t, 1, b.count("GET /tour/GetTours"))
	assert.Equal(t, 2, b.count("POST /tour/CreateTour"))
}

func TestRequester_FailuresAreNotCached(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32

	b := newBackend(t, func(writer http.ResponseWriter, request *http.Request) {
		if calls.Add(1) == 1 {
			writer.WriteHeader(http.StatusInternalServerError)

			return
		}

		_, _ = writer.Write([]byte(`{"data":[]}`))
	})

	logger := &MockLogger{}
	requester := newRequester(b, tourapi.NewMemoryCache(), logger)
	ctx := context.Background()

	_, err := requester.Request(ctx, "/service/GetServices", http.MethodGet, nil, nil)
	require.Error(t, err)

	requestErr, ok := tourapi.AsRequestError(err)
	require.True(t, ok)
	assert.Equal(t, tourapi.FailureStatus, requestErr.Kind)
	assert.Equal(t, http.StatusInternalServerError, requestErr.StatusCode)

	body, err := requester.Request(ctx, "/service/GetServices", http.MethodGet, nil, nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":[]}`, string(body))
	assert.Equal(t, 2, b.count("GET /service/GetServices"))
	assert.Equal(t, []string{"error: API request failed"}, logger.entries())
}

func TestRequester_DecodeFailure(t *testing.T) {
	t.Parallel()

	b := newBackend(t, func(writer http.ResponseWriter, request *http.Request) {
		_, _ = writer.Write([]byte(`<html>maintenance</html>`))
	})

	cache := tourapi.NewMemoryCache()
	requester := newRequester(b, cache, nil)

	_, err := requester.Request(context.Background(), "/user/GetUsers", http.MethodGet, nil, nil)
	require.Error(t, err)

	requestErr, ok := tourapi.AsRequestError(err)
	require.True(t, ok)
	assert.Equal(t, tourapi.FailureDecode, requestErr.Kind)
	assert.Equal(t, http.StatusOK, requestErr.StatusCode)
	assert.Equal(t, 0, cache.Len())
}

func TestRequester_EmptyBody(t *testing.T) {
	t.Parallel()

	b := newBackend(t, func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusNoContent)
	})

	requester := newRequester(b, nil, nil)

	body, err := requester.Request(context.Background(), "/auth/logout", http.MethodPost, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "null", string(body))
}

func TestRequester_CacheErrorsAreMisses(t *testing.T) {
	t.Parallel()

	b := newBackend(t, func(writer http.ResponseWriter, request *http.Request) {
		_, _ = writer.Write([]byte(`{"result":[]}`))
	})

	logger := &MockLogger{}
	requester := newRequester(b, failingCache{}, logger)
	ctx := context.Background()

	for range 2 {
		body, err := requester.Request(ctx, "/TourRelevent/tags", http.MethodGet, nil, nil)
		require.NoError(t, err)
		assert.JSONEq(t, `{"result":[]}`, string(body))
	}

	assert.Equal(t, 2, b.count("GET /TourRelevent/tags"))
	assert.Equal(t, []string{
		"warn: Cache read failed",
		"warn: Cache write failed",
		"warn: Cache read failed",
		"warn: Cache write failed",
	}, logger.entries())
}

func TestRequester_ReturnsCopies(t *testing.T) {
	t.Parallel()

	b := newBackend(t, func(writer http.ResponseWriter, request *http.Request) {
		_, _ = io.WriteString(writer, `{"data":"abc"}`)
	})

	requester := newRequester(b, tourapi.NewMemoryCache(), nil)
	ctx := context.Background()

	first, err := requester.Request(ctx, "/book/GetBooksWithDetails", http.MethodGet, nil, nil)
	require.NoError(t, err)

	first[0] = 'X'

	second, err := requester.Request(ctx, "/book/GetBooksWithDetails", http.MethodGet, nil, nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":"abc"}`, string(second))
}

func TestRequester_NetworkFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	serverURL := server.URL
	server.Close()

	cache := tourapi.NewMemoryCache()
	requester := client.NewRequester(internalhttp.NewClient(serverURL, nil), cache, nil)

	_, err := requester.Request(context.Background(), "/tour/GetTours", http.MethodGet, nil, nil)
	require.Error(t, err)
	assert.True(t, tourapi.IsNetworkFailure(err))
	assert.Equal(t, 0, cache.Len())
}

// spyCache records the keys read and written through it.
type spyCache struct {
	*tourapi.MemoryCache

	mutex  sync.Mutex
	reads  []string
	writes []string
}

func (c *spyCache) Get(ctx context.Context, key string) (*tourapi.CacheEntry, error) {
	c.mutex.Lock()
	c.reads = append(c.reads, key)
	c.mutex.Unlock()

	return c.MemoryCache.Get(ctx, key)
}

func (c *spyCache) Set(ctx context.Context, key string, entry *tourapi.CacheEntry) error {
	c.mutex.Lock()
	c.writes = append(c.writes, key)
	c.mutex.Unlock()

	return c.MemoryCache.Set(ctx, key, entry)
}

func TestRequester_WritesNeverConsultCache(t *testing.T) {
	t.Parallel()

	b := newBackend(t, func(writer http.ResponseWriter, request *http.Request) {
		_, _ = writer.Write([]byte(`{"from":"backend"}`))
	})

	cache := &spyCache{MemoryCache: tourapi.NewMemoryCache()}
	ctx := context.Background()

	writes := []struct {
		method string
		path   string
	}{
		{http.MethodPut, "/user/UpdateUser/u1"},
		{http.MethodPost, "/book"},
		{http.MethodDelete, "/TourRelevent/tags"},
	}

	for _, write := range writes {
		seeded := &tourapi.CacheEntry{Body: []byte(`{"from":"cache"}`)}
		require.NoError(t, cache.MemoryCache.Set(ctx, tourapi.CacheKey(write.method, write.path), seeded))
	}

	requester := newRequester(b, cache, nil)

	for _, write := range writes {
		for range 2 {
			body, err := requester.Request(ctx, write.path, write.method, map[string]string{"name": "x"}, nil)
			require.NoError(t, err)
			assert.JSONEq(t, `{"from":"backend"}`, string(body))
		}

		assert.Equal(t, 2, b.count(write.method+" "+write.path))

		entry, err := cache.MemoryCache.Get(ctx, tourapi.CacheKey(write.method, write.path))
		require.NoError(t, err)
		assert.JSONEq(t, `{"from":"cache"}`, string(entry.Body))
	}

	assert.Equal(t, len(writes), cache.Len())

	cache.mutex.Lock()
	defer cache.mutex.Unlock()

	assert.Empty(t, cache.reads)
	assert.Empty(t, cache.writes)
}
