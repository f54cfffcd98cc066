package tourclient_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tourdesk/admin-client/pkg/tourapi"
	"github.com/tourdesk/admin-client/pkg/tourclient"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		baseURL string
		want    string
		wantErr error
	}{
		{name: "default", baseURL: "", want: "http://localhost:8080/api"},
		{name: "trailing slash", baseURL: "https://tours.example.com/api/", want: "https://tours.example.com/api"},
		{name: "no scheme", baseURL: "tours.example.com/api", want: "http://tours.example.com/api"},
		{name: "whitespace", baseURL: "  http://localhost:5000/api  ", want: "http://localhost:5000/api"},
		{name: "scheme only", baseURL: "https://", wantErr: tourapi.ErrBaseURLRequired},
		{name: "http scheme only", baseURL: "http://", wantErr: tourapi.ErrBaseURLRequired},
		{name: "slashes only", baseURL: "///", wantErr: tourapi.ErrBaseURLRequired},
		{name: "port only", baseURL: "http://:8080/api", wantErr: tourapi.ErrBaseURLRequired},
		{name: "unsupported scheme", baseURL: "ftp://tours.example.com", wantErr: tourapi.ErrBaseURLRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			config := &tourapi.Config{BaseURL: tt.baseURL}

			normalized, err := tourclient.Normalize(config)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, normalized.BaseURL)
			assert.Equal(t, 5*time.Second, normalized.Timeout)
			assert.NotEmpty(t, normalized.UserAgent)
			assert.Equal(t, tt.baseURL, config.BaseURL)
		})
	}
}

func TestNormalize_KeepsExplicitValues(t *testing.T) {
	t.Parallel()

	normalized, err := tourclient.Normalize(&tourapi.Config{
		BaseURL:   "http://localhost:8080/api",
		Timeout:   30 * time.Second,
		UserAgent: "console/1.0",
	})
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, normalized.Timeout)
	assert.Equal(t, "console/1.0", normalized.UserAgent)
}

func TestNew(t *testing.T) {
	t.Parallel()

	_, err := tourclient.New(context.Background(), nil)
	require.ErrorIs(t, err, tourapi.ErrConfigRequired)

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/service/GetServices", request.URL.Path)
		assert.Equal(t, "tourctl-test", request.Header.Get("X-Client"))

		_, _ = writer.Write([]byte(`{"data":[{"id":"s1","name":"Guide","price":20}]}`))
	}))
	defer server.Close()

	metrics := tourapi.NewMetricsCollector()

	client, err := tourclient.New(context.Background(), &tourapi.Config{
		BaseURL: server.URL + "/api/",
		Headers: map[string]string{"X-Client": "tourctl-test"},
		Metrics: metrics,
	})
	require.NoError(t, err)

	services, err := client.Services().List(context.Background())
	require.NoError(t, err)
	require.Len(t, services, 1)
	assert.Equal(t, "Guide", services[0].Name)

	snapshot := metrics.GetMetrics("GET /service/GetServices")
	require.NotNil(t, snapshot)
	assert.Equal(t, int64(1), snapshot.TotalRequests)
}
