package client

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/tourdesk/admin-client/internal/http"
	"github.com/tourdesk/admin-client/pkg/tourapi"
)

// Static errors for err113 compliance.
var (
	ErrBaseURLRequired = errors.New("base URL is required")
	ErrIDRequired      = errors.New("id is required")
	ErrEmptyData       = errors.New("response data is empty")
)

// Client implements the tourapi.Client interface.
type Client struct {
	httpClient *http.Client
	requester  *Requester
	cache      tourapi.Cache
	ownsCache  bool
	baseURL    string
	logger     tourapi.Logger

	// Resource clients
	tours      tourapi.ToursClient
	services   tourapi.ServicesClient
	users      tourapi.UsersClient
	bookings   tourapi.BookingsClient
	tags       tourapi.TagsClient
	categories tourapi.CategoriesClient
	auth       tourapi.AuthClient
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *tourapi.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.Timeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.Timeout))
	}

	chain := tourapi.NewInterceptorChain()

	if len(config.Headers) > 0 {
		chain.OnRequest(tourapi.StaticHeaders(config.Headers))
	}

	if config.Metrics != nil {
		chain.OnResponse(config.Metrics.Observe)
	}

	return append(httpOpts, http.WithInterceptors(chain))
}

// New creates a new tour admin API client.
func New(ctx context.Context, config *tourapi.Config) (*Client, error) {
	if config.BaseURL == "" {
		return nil, ErrBaseURLRequired
	}

	cache := config.Cache
	ownsCache := false

	if cache == nil {
		var err error

		cache, err = tourapi.NewCacheFromConfig(ctx, config.CacheConfig)
		if err != nil {
			return nil, fmt.Errorf("creating response cache: %w", err)
		}

		ownsCache = true
	}

	httpClient := http.NewClient(config.BaseURL, config.CookieJar, createHTTPClientOptions(config)...)

	client := &Client{
		httpClient: httpClient,
		requester:  NewRequester(httpClient, cache, config.Logger),
		cache:      cache,
		ownsCache:  ownsCache,
		baseURL:    config.BaseURL,
		logger:     config.Logger,
	}

	// Initialize resource clients
	client.initializeResourceClients()

	return client, nil
}

func (c *Client) initializeResourceClients() {
	c.tours = NewToursClient(c.requester)
	c.services = NewServicesClient(c.requester)
	c.users = NewUsersClient(c.requester)
	c.bookings = NewBookingsClient(c.requester)
	c.tags = NewTagsClient(c.requester)
	c.categories = NewCategoriesClient(c.requester)
	c.auth = NewAuthClient(c.requester)
}

// Requester returns the request façade shared by all resource clients.
func (c *Client) Requester() *Requester {
	return c.requester
}

// Cache returns the response cache.
func (c *Client) Cache() tourapi.Cache {
	return c.cache
}

// Close implements tourapi.Client.Close.
func (c *Client) Close() error {
	if !c.ownsCache {
		return nil
	}

	closer, ok := c.cache.(io.Closer)
	if !ok {
		return nil
	}

	err := closer.Close()
	if err != nil {
		return fmt.Errorf("closing response cache: %w", err)
	}

	return nil
}

// Resource client accessors

// Tours implements tourapi.Client.Tours.
func (c *Client) Tours() tourapi.ToursClient {
	return c.tours
}

// Services implements tourapi.Client.Services.
func (c *Client) Services() tourapi.ServicesClient {
	return c.services
}

// Users implements tourapi.Client.Users.
func (c *Client) Users() tourapi.UsersClient {
	return c.users
}

// Bookings implements tourapi.Client.Bookings.
func (c *Client) Bookings() tourapi.BookingsClient {
	return c.bookings
}

// Tags implements tourapi.Client.Tags.
func (c *Client) Tags() tourapi.TagsClient {
	return c.tags
}

// Categories implements tourapi.Client.Categories.
func (c *Client) Categories() tourapi.CategoriesClient {
	return c.categories
}

// Auth implements tourapi.Client.Auth.
func (c *Client) Auth() tourapi.AuthClient {
	return c.auth
}
