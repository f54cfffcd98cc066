package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	internalhttp "github.com/tourdesk/admin-client/internal/http"
	"github.com/tourdesk/admin-client/pkg/tourapi"
)

var nullJSON = []byte("null")

// Requester is the single entry point every resource client goes through.
//
// A GET whose key is already cached is answered from the cache without
// touching the network. Any other request is sent through the transport; a
// successful GET is stored before it is returned. Writes neither consult nor
// invalidate the cache, so a list read before a create keeps its old content.
type Requester struct {
	httpClient *internalhttp.Client
	cache      tourapi.Cache
	logger     tourapi.Logger
}

// NewRequester creates a Requester. A nil cache disables caching.
func NewRequester(httpClient *internalhttp.Client, cache tourapi.Cache, logger tourapi.Logger) *Requester {
	if cache == nil {
		cache = tourapi.NewNoOpCache()
	}

	return &Requester{
		httpClient: httpClient,
		cache:      cache,
		logger:     logger,
	}
}

// Request performs one call and returns the raw JSON body. An empty body is
// returned as JSON null. Failures are logged once here and returned as a
// *tourapi.RequestError.
func (r *Requester) Request(ctx context.Context, path, method string, body interface{}, form *internalhttp.Form) (tourapi.OpaqueJSON, error) {
	key := tourapi.CacheKey(method, path)

	if method == http.MethodGet {
		cached, ok := r.lookup(ctx, key)
		if ok {
			return cached, nil
		}
	}

	resp, err := r.httpClient.Do(ctx, &internalhttp.Request{
		Method: method,
		Path:   path,
		Body:   body,
		Form:   form,
	})
	if err != nil {
		r.logFailure(err)

		return nil, err
	}

	payload := resp.Body
	if len(bytes.TrimSpace(payload)) == 0 {
		payload = nullJSON
	}

	var decoded interface{}

	err = json.Unmarshal(payload, &decoded)
	if err != nil {
		decodeErr := &tourapi.RequestError{
			Method:     method,
			Path:       path,
			Kind:       tourapi.FailureDecode,
			StatusCode: resp.StatusCode,
			Body:       resp.Body,
			Err:        err,
		}
		r.logFailure(decodeErr)

		return nil, decodeErr
	}

	if method == http.MethodGet {
		r.store(ctx, key, payload)
	}

	return bytes.Clone(payload), nil
}

func (r *Requester) lookup(ctx context.Context, key string) (tourapi.OpaqueJSON, bool) {
	entry, err := r.cache.Get(ctx, key)
	if err == nil {
		return bytes.Clone(entry.Body), true
	}

	if !errors.Is(err, tourapi.ErrCacheMiss) && !errors.Is(err, tourapi.ErrCacheDisabled) {
		r.warn("Cache read failed", key, err)
	}

	return nil, false
}

func (r *Requester) store(ctx context.Context, key string, payload []byte) {
	err := r.cache.Set(ctx, key, &tourapi.CacheEntry{
		Body:     bytes.Clone(payload),
		StoredAt: time.Now(),
	})
	if err != nil {
		r.warn("Cache write failed", key, err)
	}
}

func (r *Requester) warn(msg, key string, err error) {
	if r.logger == nil {
		return
	}

	r.logger.Warn(msg, map[string]interface{}{
		"key":   key,
		"error": err.Error(),
	})
}

func (r *Requester) logFailure(err error) {
	if r.logger == nil {
		return
	}

	fields := map[string]interface{}{
		"error": err.Error(),
	}

	reqErr, ok := tourapi.AsRequestError(err)
	if ok {
		fields["method"] = reqErr.Method
		fields["path"] = reqErr.Path
		fields["kind"] = reqErr.Kind.String()

		if reqErr.StatusCode != 0 {
			fields["status_code"] = reqErr.StatusCode
		}

		if reqErr.Kind == tourapi.FailureNetwork && internalhttp.IsTimeout(reqErr.Err) {
			fields["timeout"] = true
		}
	}

	r.logger.Error("API request failed", fields)
}

// decode unmarshals a payload into T. A shape mismatch is reported as a
// FailureDecode error and logged like any other failure.
func decode[T any](r *Requester, method, path string, payload tourapi.OpaqueJSON) (T, error) {
	var result T

	err := json.Unmarshal(payload, &result)
	if err != nil {
		decodeErr := &tourapi.RequestError{
			Method: method,
			Path:   path,
			Kind:   tourapi.FailureDecode,
			Body:   payload,
			Err:    err,
		}
		r.logFailure(decodeErr)

		return result, decodeErr
	}

	return result, nil
}

// get performs a GET and decodes the body into T.
func get[T any](ctx context.Context, r *Requester, path string) (T, error) {
	payload, err := r.Request(ctx, path, http.MethodGet, nil, nil)
	if err != nil {
		var zero T

		return zero, err
	}

	return decode[T](r, http.MethodGet, path, payload)
}

// unwrapData returns the "data" member of an object body, or the body itself
// when there is none.
func unwrapData(payload tourapi.OpaqueJSON) tourapi.OpaqueJSON {
	var envelope map[string]json.RawMessage

	err := json.Unmarshal(payload, &envelope)
	if err != nil {
		return payload
	}

	data, ok := envelope["data"]
	if !ok {
		return payload
	}

	return tourapi.OpaqueJSON(data)
}

func requiredID(kind, id string) error {
	if id == "" {
		return fmt.Errorf("%w: %s id is empty", ErrIDRequired, kind)
	}

	return nil
}
