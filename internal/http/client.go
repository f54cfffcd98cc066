package http

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/tourdesk/admin-client/internal/constants"
	"github.com/tourdesk/admin-client/pkg/tourapi"
)

// Client is the transport for the tour admin API. Every request goes to the
// same base URL with the same timeout, carries the session cookie jar, and is
// sent exactly once.
type Client struct {
	baseURL      string
	httpClient   *retryablehttp.Client
	userAgent    string
	logger       tourapi.Logger
	debug        bool
	interceptors *tourapi.InterceptorChain
}

// Request represents an HTTP request.
//
// Body is encoded as JSON. Form switches the request to multipart/form-data;
// Body is ignored when Form is set.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    interface{}
	Form    *Form
	Headers map[string]string
}

// Response represents an HTTP response.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger tourapi.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response tracing through the logger.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.HTTPClient.Timeout = timeout
	}
}

// WithInterceptors installs a request/response interceptor chain.
func WithInterceptors(chain *tourapi.InterceptorChain) Option {
	return func(c *Client) {
		c.interceptors = chain
	}
}

// NewClient creates a transport for baseURL. A fresh in-memory cookie jar is
// used when jar is nil.
func NewClient(baseURL string, jar http.CookieJar, opts ...Option) *Client {
	if jar == nil {
		// cookiejar.New only fails on an invalid PublicSuffixList.
		jar, _ = cookiejar.New(nil)
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.CheckRetry = neverRetry
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.Logger = nil
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout
	retryClient.HTTPClient.Jar = jar

	client := &Client{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		httpClient:   retryClient,
		userAgent:    constants.DefaultUserAgent,
		interceptors: tourapi.NewInterceptorChain(),
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// BaseURL returns the base URL requests are resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Jar returns the cookie jar attached to every request.
func (c *Client) Jar() http.CookieJar {
	return c.httpClient.HTTPClient.Jar
}

// Do sends req once. For a non-2xx status both the Response and a
// *tourapi.RequestError are returned.
//
//nolint:funlen // Keeps the send path readable in one place
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	reqURL, err := c.resolve(req)
	if err != nil {
		return nil, c.failure(req, tourapi.FailureRequest, err)
	}

	body, contentType, err := c.encodeBody(req)
	if err != nil {
		return nil, c.failure(req, tourapi.FailureRequest, err)
	}

	headers := make(http.Header)
	headers.Set("Accept", constants.MediaTypeJSON)
	headers.Set("User-Agent", c.userAgent)

	if contentType != "" {
		headers.Set("Content-Type", contentType)
	}

	for key, value := range req.Headers {
		headers.Set(key, value)
	}

	intercepted := &tourapi.OutboundRequest{
		Method:    req.Method,
		Path:      req.Path,
		Header:    headers,
		Body:      body,
		Multipart: req.Form != nil,
		StartedAt: time.Now(),
	}

	err = c.interceptors.BeforeSend(ctx, intercepted)
	if err != nil {
		return nil, c.failure(req, tourapi.FailureRequest, err)
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, reqURL, bodyOrNil(body))
	if err != nil {
		return nil, c.failure(req, tourapi.FailureRequest, fmt.Errorf("creating request: %w", err))
	}

	httpReq.Header = intercepted.Header

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method":  req.Method,
			"url":     reqURL,
			"headers": redactHeaders(httpReq.Header),
		})
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.interceptors.AfterReceive(ctx, intercepted, &tourapi.InboundResponse{
			Err:     err,
			Elapsed: time.Since(intercepted.StartedAt),
		})

		return nil, c.failure(req, tourapi.FailureNetwork, err)
	}

	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.interceptors.AfterReceive(ctx, intercepted, &tourapi.InboundResponse{
			StatusCode: resp.StatusCode,
			Header:     resp.Header,
			Err:        err,
			Elapsed:    time.Since(intercepted.StartedAt),
		})

		return nil, c.failure(req, tourapi.FailureNetwork, fmt.Errorf("reading response body: %w", err))
	}

	response := &Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       respBody,
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status":  resp.StatusCode,
			"headers": resp.Header,
			"body":    string(respBody),
		})
	}

	c.interceptors.AfterReceive(ctx, intercepted, &tourapi.InboundResponse{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respBody,
		Elapsed:    time.Since(intercepted.StartedAt),
	})

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return response, &tourapi.RequestError{
			Method:     req.Method,
			Path:       req.Path,
			Kind:       tourapi.FailureStatus,
			StatusCode: resp.StatusCode,
			Body:       respBody,
			Problem:    tourapi.ParseProblemDetails(respBody),
			Err:        fmt.Errorf("%w: %d", tourapi.ErrUnexpectedStatus, resp.StatusCode),
		}
	}

	return response, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodGet,
		Path:   path,
		Query:  query,
	})
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodPost,
		Path:   path,
		Body:   body,
	})
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodPut,
		Path:   path,
		Body:   body,
	})
}

// Delete performs a DELETE request. The backend expects the entity being
// removed as the JSON body on some endpoints; body may be nil.
func (c *Client) Delete(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodDelete,
		Path:   path,
		Body:   body,
	})
}

// PostForm performs a multipart POST request.
func (c *Client) PostForm(ctx context.Context, path string, form *Form) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodPost,
		Path:   path,
		Form:   form,
	})
}

// PutForm performs a multipart PUT request.
func (c *Client) PutForm(ctx context.Context, path string, form *Form) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodPut,
		Path:   path,
		Form:   form,
	})
}

func (c *Client) resolve(req *Request) (string, error) {
	switch req.Method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete:
	default:
		return "", fmt.Errorf("%w: %s", tourapi.ErrUnsupportedMethod, req.Method)
	}

	path := req.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	reqURL, err := url.Parse(c.baseURL + path)
	if err != nil {
		return "", fmt.Errorf("parsing URL: %w", err)
	}

	if len(req.Query) > 0 {
		query := reqURL.Query()
		for key, values := range req.Query {
			for _, value := range values {
				query.Add(key, value)
			}
		}

		reqURL.RawQuery = query.Encode()
	}

	return reqURL.String(), nil
}

func (c *Client) encodeBody(req *Request) ([]byte, string, error) {
	if req.Form != nil {
		return req.Form.encode()
	}

	if req.Body == nil {
		return nil, "", nil
	}

	body, err := json.Marshal(req.Body)
	if err != nil {
		return nil, "", fmt.Errorf("marshaling request body: %w", err)
	}

	return body, constants.MediaTypeJSON, nil
}

func (c *Client) failure(req *Request, kind tourapi.FailureKind, err error) *tourapi.RequestError {
	return &tourapi.RequestError{
		Method: req.Method,
		Path:   req.Path,
		Kind:   kind,
		Err:    err,
	}
}

// neverRetry stops retryablehttp after the first attempt. The transport error,
// if any, reaches the caller through PassthroughErrorHandler.
func neverRetry(context.Context, *http.Response, error) (bool, error) {
	return false, nil
}

// bodyOrNil keeps retryablehttp from sending an empty body on GET.
func bodyOrNil(body []byte) interface{} {
	if body == nil {
		return nil
	}

	return bytes.NewReader(body)
}

func redactHeaders(headers http.Header) http.Header {
	redacted := headers.Clone()
	if redacted.Get("Cookie") != "" {
		redacted.Set("Cookie", constants.MaskedSecret)
	}

	return redacted
}

// IsTimeout reports whether err is a client-side timeout or deadline.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var urlErr *url.Error

	return errors.As(err, &urlErr) && urlErr.Timeout()
}
