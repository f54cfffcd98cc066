// Package tourclient provides the main entry point for creating tour admin API clients
package tourclient

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/tourdesk/admin-client/internal/client"
	"github.com/tourdesk/admin-client/internal/constants"
	"github.com/tourdesk/admin-client/pkg/tourapi"
)

// New creates a new tour admin API client.
func New(ctx context.Context, config *tourapi.Config) (tourapi.Client, error) {
	if config == nil {
		return nil, tourapi.ErrConfigRequired
	}

	normalized, err := Normalize(config)
	if err != nil {
		return nil, err
	}

	// Use the internal client implementation
	client, err := client.New(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return client, nil
}

// Normalize returns a copy of config with defaults applied: the default base
// URL when none is set, a scheme and no trailing slash on the base URL, and
// the default timeout when none is set. A base URL without an http(s) host is
// rejected with tourapi.ErrBaseURLRequired.
func Normalize(config *tourapi.Config) (*tourapi.Config, error) {
	if config == nil {
		return nil, tourapi.ErrConfigRequired
	}

	normalized := *config

	baseURL := strings.TrimSpace(normalized.BaseURL)
	if baseURL == "" {
		baseURL = constants.DefaultBaseURL
	}

	if !strings.Contains(baseURL, "://") {
		baseURL = "http://" + baseURL
	}

	parsed, err := url.Parse(baseURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Hostname() == "" {
		return nil, tourapi.ErrBaseURLRequired
	}

	baseURL = strings.TrimSuffix(baseURL, "/")

	normalized.BaseURL = baseURL

	if normalized.Timeout <= 0 {
		normalized.Timeout = constants.DefaultHTTPTimeout
	}

	if normalized.UserAgent == "" {
		normalized.UserAgent = constants.DefaultUserAgent
	}

	return &normalized, nil
}
