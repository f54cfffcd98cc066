package session_test

import (
	"errors"
	"net/http"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tourdesk/admin-client/internal/session"
)

type recordingPersister struct {
	mutex    sync.Mutex
	endpoint string
	saved    []*http.Cookie
	err      error
}

func (p *recordingPersister) SaveCookies(endpoint string, cookies []*http.Cookie) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.endpoint = endpoint
	p.saved = cookies

	return p.err
}

type warnLogger struct {
	warnings []string
}

func (l *warnLogger) Debug(string, map[string]interface{}) {}
func (l *warnLogger) Info(string, map[string]interface{})  {}
func (l *warnLogger) Warn(msg string, _ map[string]interface{}) {
	l.warnings = append(l.warnings, msg)
}
func (l *warnLogger) Error(string, map[string]interface{}) {}

const endpoint = "http://localhost:8080/api"

func TestPersistentJar_RestoresSavedCookies(t *testing.T) {
	t.Parallel()

	jar, err := session.NewPersistentJar(endpoint, []*http.Cookie{{Name: "session", Value: "abc"}}, nil, nil)
	require.NoError(t, err)

	cookies := jar.Current()
	require.Len(t, cookies, 1)
	assert.Equal(t, "session", cookies[0].Name)
	assert.Equal(t, "abc", cookies[0].Value)

	other, err := url.Parse("http://localhost:8080/api/tour/GetTours")
	require.NoError(t, err)
	assert.Len(t, jar.Cookies(other), 1)
}

func TestPersistentJar_PersistsNewCookies(t *testing.T) {
	t.Parallel()

	persister := &recordingPersister{}

	jar, err := session.NewPersistentJar(endpoint, nil, persister, nil)
	require.NoError(t, err)

	loginURL, err := url.Parse(endpoint + "/auth/login")
	require.NoError(t, err)

	jar.SetCookies(loginURL, []*http.Cookie{{Name: "session", Value: "xyz", Path: "/"}})

	assert.Equal(t, endpoint, persister.endpoint)
	require.Len(t, persister.saved, 1)
	assert.Equal(t, "xyz", persister.saved[0].Value)
}

func TestPersistentJar_PersistFailureIsLogged(t *testing.T) {
	t.Parallel()

	persister := &recordingPersister{err: errors.New("read-only file system")}
	logger := &warnLogger{}

	jar, err := session.NewPersistentJar(endpoint, nil, persister, logger)
	require.NoError(t, err)

	loginURL, err := url.Parse(endpoint + "/auth/login")
	require.NoError(t, err)

	jar.SetCookies(loginURL, []*http.Cookie{{Name: "session", Value: "xyz", Path: "/"}})

	assert.Equal(t, []string{"Failed to persist session cookies"}, logger.warnings)
	assert.Len(t, jar.Current(), 1)
}

func TestNewPersistentJar_InvalidEndpoint(t *testing.T) {
	t.Parallel()

	_, err := session.NewPersistentJar("http://[::1", nil, nil, nil)
	require.Error(t, err)
}
