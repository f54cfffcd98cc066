package tourapi

import (
	"context"
	"net/http"
	"time"
)

// ToursClient exposes the tour endpoints.
type ToursClient interface {
	List(ctx context.Context) ([]Tour, error)
	Get(ctx context.Context, id string) (*Tour, error)
	Create(ctx context.Context, fields *TourFields, image *Upload) (OpaqueJSON, error)
	Update(ctx context.Context, id string, fields *TourFields, image *Upload) (OpaqueJSON, error)
	UpdateCategoriesAndTags(ctx context.Context, id string, request *TourCategoriesAndTagsRequest) (OpaqueJSON, error)
}

// ServicesClient exposes the service endpoints.
type ServicesClient interface {
	List(ctx context.Context) ([]Service, error)
	Get(ctx context.Context, id string) (*Service, error)
	ListByTour(ctx context.Context, tourID string) ([]Service, error)
	Create(ctx context.Context, request *ServiceRequest) (OpaqueJSON, error)
	Update(ctx context.Context, id string, request *ServiceRequest) (OpaqueJSON, error)
	UpdateTourServices(ctx context.Context, tourID string, request *TourServicesRequest) (OpaqueJSON, error)
}

// UsersClient exposes the user endpoints.
type UsersClient interface {
	List(ctx context.Context) ([]User, error)
	Get(ctx context.Context, id string) (*User, error)
	Create(ctx context.Context, request *CreateUserRequest) (OpaqueJSON, error)
	Update(ctx context.Context, id string, request *UpdateUserRequest) (OpaqueJSON, error)
	UpdateRole(ctx context.Context, id string, role UserRole) (OpaqueJSON, error)
	ListByRole(ctx context.Context, role string) (OpaqueJSON, error)
}

// BookingsClient exposes the booking endpoints.
type BookingsClient interface {
	Get(ctx context.Context, id string) (*Booking, error)
	Create(ctx context.Context, request *CreateBookingRequest) (OpaqueJSON, error)
	ListByUsername(ctx context.Context, username string) ([]Booking, error)
	ListWithDetails(ctx context.Context) ([]Booking, error)
}

// TagsClient exposes the tag endpoints.
type TagsClient interface {
	List(ctx context.Context) ([]Tag, error)
	Search(ctx context.Context, name string) ([]Tag, error)
	Create(ctx context.Context, tag *Tag) (OpaqueJSON, error)
	Update(ctx context.Context, tag *Tag) (OpaqueJSON, error)
	Delete(ctx context.Context, tag *Tag) (OpaqueJSON, error)
}

// CategoriesClient exposes the category endpoints.
type CategoriesClient interface {
	List(ctx context.Context) ([]Category, error)
	Search(ctx context.Context, name string) ([]Category, error)
	Create(ctx context.Context, category *Category) (OpaqueJSON, error)
	Update(ctx context.Context, category *Category) (OpaqueJSON, error)
	Delete(ctx context.Context, category *Category) (OpaqueJSON, error)
}

// AuthClient exposes the session endpoints. Session state lives in the cookie jar.
type AuthClient interface {
	Login(ctx context.Context, credentials *Credentials) (OpaqueJSON, error)
	Register(ctx context.Context, credentials *Credentials) (OpaqueJSON, error)
	Logout(ctx context.Context) (OpaqueJSON, error)
}

// Client provides access to all resource clients.
type Client interface {
	Tours() ToursClient
	Services() ServicesClient
	Users() UsersClient
	Bookings() BookingsClient
	Tags() TagsClient
	Categories() CategoriesClient
	Auth() AuthClient

	// Close releases the cache backend when the client built it from
	// CacheConfig. A Cache passed in Config is left open for its owner.
	Close() error
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a Client.
//
// BaseURL and Timeout are fixed for the lifetime of the client; every request
// uses them. There is no per-call override and no retry.
type Config struct {
	// BaseURL of the REST backend, e.g. "http://localhost:8080/api".
	BaseURL string
	// Timeout applied to every request. Zero selects the default.
	Timeout time.Duration
	// UserAgent overrides the default User-Agent header.
	UserAgent string
	// Debug enables HTTP request/response logging when a Logger is provided.
	Debug bool
	// Logger receives failure diagnostics and, with Debug, request traces.
	Logger Logger
	// CookieJar carries the session cookies. A fresh in-memory jar is used when nil.
	CookieJar http.CookieJar
	// Headers are added to every request.
	Headers map[string]string
	// Cache is the shared GET response cache. When nil one is built from CacheConfig.
	Cache Cache
	// CacheConfig selects a cache backend when Cache is nil. Defaults to memory.
	CacheConfig *CacheConfig
	// Metrics, when set, collects per-endpoint call statistics.
	Metrics *MetricsCollector
}
