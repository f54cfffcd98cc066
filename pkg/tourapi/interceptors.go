package tourapi

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"time"
)

// OutboundRequest is what request interceptors see before a call goes out.
// Header changes are applied to the request that is sent.
type OutboundRequest struct {
	Method    string
	Path      string
	Header    http.Header
	Body      []byte
	Multipart bool
	StartedAt time.Time
}

// InboundResponse is how one exchange ended. Err is set when no response was
// read, in which case StatusCode is zero.
type InboundResponse struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	Err        error
	Elapsed    time.Duration
}

// Failed reports whether the exchange ended without a 2xx response.
func (r *InboundResponse) Failed() bool {
	return r.Err != nil || r.StatusCode < http.StatusOK || r.StatusCode >= http.StatusMultipleChoices
}

// RequestInterceptor may amend a request or reject it by returning an error.
type RequestInterceptor func(ctx context.Context, req *OutboundRequest) error

// ResponseObserver is told about every finished exchange, failed or not. It
// cannot change the outcome.
type ResponseObserver func(ctx context.Context, req *OutboundRequest, resp *InboundResponse)

// InterceptorChain runs request interceptors in order before a call and
// response observers in order after it. A nil chain does nothing.
type InterceptorChain struct {
	before []RequestInterceptor
	after  []ResponseObserver
}

// NewInterceptorChain creates an empty chain.
func NewInterceptorChain() *InterceptorChain {
	return &InterceptorChain{}
}

// OnRequest appends a request interceptor.
func (c *InterceptorChain) OnRequest(interceptor RequestInterceptor) *InterceptorChain {
	c.before = append(c.before, interceptor)

	return c
}

// OnResponse appends a response observer.
func (c *InterceptorChain) OnResponse(observer ResponseObserver) *InterceptorChain {
	c.after = append(c.after, observer)

	return c
}

// BeforeSend runs the request interceptors, stopping at the first error.
func (c *InterceptorChain) BeforeSend(ctx context.Context, req *OutboundRequest) error {
	if c == nil {
		return nil
	}

	for _, interceptor := range c.before {
		err := interceptor(ctx, req)
		if err != nil {
			return fmt.Errorf("request interceptor rejected %s %s: %w", req.Method, req.Path, err)
		}
	}

	return nil
}

// AfterReceive notifies every response observer.
func (c *InterceptorChain) AfterReceive(ctx context.Context, req *OutboundRequest, resp *InboundResponse) {
	if c == nil {
		return
	}

	for _, observer := range c.after {
		observer(ctx, req, resp)
	}
}

// StaticHeaders sets the given headers on every request, replacing values the
// transport already set.
func StaticHeaders(headers map[string]string) RequestInterceptor {
	return func(ctx context.Context, req *OutboundRequest) error {
		if req.Header == nil {
			req.Header = make(http.Header)
		}

		for key, value := range headers {
			req.Header.Set(key, value)
		}

		return nil
	}
}

// Metrics holds call statistics for one endpoint.
type Metrics struct {
	TotalRequests   int64
	TotalErrors     int64
	TotalLatency    time.Duration
	AverageLatency  time.Duration
	LastRequestTime time.Time
}

// MetricsCollector collects call statistics keyed by "METHOD path". Register
// Observe on a chain to feed it.
type MetricsCollector struct {
	mutex   sync.Mutex
	metrics map[string]*Metrics
}

// NewMetricsCollector creates a new metrics collector.
func NewMetricsCollector() *MetricsCollector {
	return &MetricsCollector{
		metrics: make(map[string]*Metrics),
	}
}

// Observe records one finished exchange. It has the ResponseObserver shape.
func (m *MetricsCollector) Observe(ctx context.Context, req *OutboundRequest, resp *InboundResponse) {
	endpoint := req.Method + " " + req.Path

	m.mutex.Lock()
	defer m.mutex.Unlock()

	metrics, ok := m.metrics[endpoint]
	if !ok {
		metrics = &Metrics{}
		m.metrics[endpoint] = metrics
	}

	metrics.TotalRequests++
	metrics.LastRequestTime = req.StartedAt.Add(resp.Elapsed)
	metrics.TotalLatency += resp.Elapsed
	metrics.AverageLatency = metrics.TotalLatency / time.Duration(metrics.TotalRequests)

	if resp.Failed() {
		metrics.TotalErrors++
	}
}

// GetMetrics returns a snapshot of the metrics for an endpoint.
func (m *MetricsCollector) GetMetrics(endpoint string) *Metrics {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if metrics, ok := m.metrics[endpoint]; ok {
		snapshot := *metrics

		return &snapshot
	}

	return nil
}

// Endpoints returns the recorded endpoints in sorted order.
func (m *MetricsCollector) Endpoints() []string {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	endpoints := make([]string, 0, len(m.metrics))
	for endpoint := range m.metrics {
		endpoints = append(endpoints, endpoint)
	}

	sort.Strings(endpoints)

	return endpoints
}
