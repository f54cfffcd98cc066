package commands

import (
	"net/http"
	"sync"
	"time"
)

// ConfigPersister implements the session.CookiePersister interface.
type ConfigPersister struct {
	mutex    sync.Mutex
	username string
}

// NewConfigPersister creates a new config persister. username is recorded
// alongside the cookies when non-empty.
func NewConfigPersister(username string) *ConfigPersister {
	return &ConfigPersister{username: username}
}

// SaveCookies replaces the saved cookies for endpoint in the config file.
func (p *ConfigPersister) SaveCookies(endpoint string, cookies []*http.Cookie) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	// Load current config
	config := loadConfig()

	session := config.findSession(endpoint)
	if session == nil {
		session = &SessionConfig{Endpoint: endpoint}
		config.Sessions = append(config.Sessions, session)
	}

	session.Cookies = make([]SavedCookie, 0, len(cookies))
	for _, cookie := range cookies {
		session.Cookies = append(session.Cookies, SavedCookie{Name: cookie.Name, Value: cookie.Value})
	}

	if p.username != "" {
		session.Username = p.username
	}

	now := time.Now()
	session.UpdatedAt = &now

	// Save the updated config
	return saveConfigStruct(config)
}

// savedCookies converts a saved session into cookies for the jar.
func savedCookies(session *SessionConfig) []*http.Cookie {
	if session == nil {
		return nil
	}

	cookies := make([]*http.Cookie, 0, len(session.Cookies))
	for _, cookie := range session.Cookies {
		cookies = append(cookies, &http.Cookie{Name: cookie.Name, Value: cookie.Value})
	}

	return cookies
}
