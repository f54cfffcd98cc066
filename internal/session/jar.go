// Package session keeps the backend's session cookies across CLI invocations.
package session

import (
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"

	"github.com/tourdesk/admin-client/pkg/tourapi"
)

// CookiePersister defines the interface for persisting session cookies.
type CookiePersister interface {
	SaveCookies(endpoint string, cookies []*http.Cookie) error
}

// PersistentJar wraps an in-memory cookie jar and writes the cookies for one
// endpoint through a CookiePersister whenever the backend sets new ones.
type PersistentJar struct {
	jar       *cookiejar.Jar
	endpoint  *url.URL
	persister CookiePersister
	logger    tourapi.Logger
	mutex     sync.Mutex
}

// NewPersistentJar creates a jar for endpoint seeded with previously saved cookies.
func NewPersistentJar(endpoint string, saved []*http.Cookie, persister CookiePersister, logger tourapi.Logger) (*PersistentJar, error) {
	endpointURL, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parsing session endpoint: %w", err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}

	if len(saved) > 0 {
		restored := make([]*http.Cookie, 0, len(saved))
		for _, cookie := range saved {
			copied := *cookie
			// Cookies reported by the jar carry only name and value.
			copied.Path = "/"
			restored = append(restored, &copied)
		}

		jar.SetCookies(endpointURL, restored)
	}

	return &PersistentJar{
		jar:       jar,
		endpoint:  endpointURL,
		persister: persister,
		logger:    logger,
	}, nil
}

// Cookies implements http.CookieJar.
func (j *PersistentJar) Cookies(u *url.URL) []*http.Cookie {
	return j.jar.Cookies(u)
}

// SetCookies implements http.CookieJar. Persistence failures are logged and
// never fail the request that carried the cookies.
func (j *PersistentJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.jar.SetCookies(u, cookies)

	if j.persister == nil || len(cookies) == 0 {
		return
	}

	j.mutex.Lock()
	defer j.mutex.Unlock()

	err := j.persister.SaveCookies(j.endpoint.String(), j.jar.Cookies(j.endpoint))
	if err != nil && j.logger != nil {
		j.logger.Warn("Failed to persist session cookies", map[string]interface{}{
			"endpoint": j.endpoint.String(),
			"error":    err.Error(),
		})
	}
}

// Current returns the cookies the jar would send to the endpoint.
func (j *PersistentJar) Current() []*http.Cookie {
	return j.jar.Cookies(j.endpoint)
}
