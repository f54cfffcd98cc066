//go:build integration

// Package integration holds tests that need live infrastructure. They are
// skipped unless the matching TOURCTL_TEST_* variables are set.
package integration

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tourdesk/admin-client/pkg/tourapi"
	"github.com/tourdesk/admin-client/pkg/tourclient"
)

// TestConfig holds configuration for integration tests.
type TestConfig struct {
	APIEndpoint string
	Username    string
	Password    string
	RedisAddr   string
	NATSURL     string
	Verbose     bool
}

// LoadTestConfig loads configuration from environment variables.
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		APIEndpoint: os.Getenv("TOURCTL_TEST_API"),
		Username:    os.Getenv("TOURCTL_TEST_USERNAME"),
		Password:    os.Getenv("TOURCTL_TEST_PASSWORD"),
		RedisAddr:   os.Getenv("TOURCTL_TEST_REDIS_ADDR"),
		NATSURL:     os.Getenv("TOURCTL_TEST_NATS_URL"),
		Verbose:     os.Getenv("TOURCTL_TEST_VERBOSE") == "true",
	}
}

// SkipIfNoBackend skips the test unless a backend and admin login are configured.
func (config *TestConfig) SkipIfNoBackend(t *testing.T) {
	t.Helper()

	if config.APIEndpoint == "" || config.Username == "" || config.Password == "" {
		t.Skip("TOURCTL_TEST_API, TOURCTL_TEST_USERNAME or TOURCTL_TEST_PASSWORD not set, skipping integration test")
	}
}

// NewLoggedInClient creates a client and logs in as the configured admin.
// The response cache is disabled so every call reaches the backend.
func (config *TestConfig) NewLoggedInClient(t *testing.T) tourapi.Client {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := tourclient.New(ctx, &tourapi.Config{
		BaseURL:     config.APIEndpoint,
		CacheConfig: &tourapi.CacheConfig{Type: tourapi.CacheTypeNone},
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	_, err = client.Auth().Login(ctx, &tourapi.Credentials{Username: config.Username, Password: config.Password})
	require.NoError(t, err)

	return client
}

// GenerateTestName generates a unique name for test resources.
func GenerateTestName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}
