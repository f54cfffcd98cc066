package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/viper"

	"github.com/tourdesk/admin-client/internal/session"
	"github.com/tourdesk/admin-client/pkg/tourapi"
	"github.com/tourdesk/admin-client/pkg/tourclient"
)

// clientSession bundles a client with the resources the command must release.
type clientSession struct {
	client tourapi.Client
	cache  tourapi.Cache
	jar    *session.PersistentJar
	config *tourapi.Config
}

// Close releases the client and the cache backend connection, if any. The
// cache is built here and injected, so the client leaves it open.
func (s *clientSession) Close() {
	_ = s.client.Close()

	if closer, ok := s.cache.(io.Closer); ok {
		_ = closer.Close()
	}
}

// buildClientConfig turns the CLI configuration into a normalized client config.
func buildClientConfig(config *Config) (*tourapi.Config, error) {
	clientConfig := &tourapi.Config{
		BaseURL: config.API,
		Debug:   viper.GetBool("verbose"),
		Logger:  newLogger(viper.GetBool("verbose")),
	}

	if config.Timeout != "" {
		timeout, err := time.ParseDuration(config.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout %q: %w", config.Timeout, err)
		}

		clientConfig.Timeout = timeout
	}

	normalized, err := tourclient.Normalize(clientConfig)
	if err != nil {
		return nil, fmt.Errorf("invalid client configuration: %w", err)
	}

	return normalized, nil
}

// buildCacheConfig maps the CLI cache settings onto a tourapi.CacheConfig.
func buildCacheConfig(settings CacheSettings) *tourapi.CacheConfig {
	cacheConfig := &tourapi.CacheConfig{Type: tourapi.CacheType(settings.Type)}

	switch cacheConfig.Type {
	case tourapi.CacheTypeNATS:
		cacheConfig.NATS = &tourapi.NATSKVConfig{
			URL:    settings.NATSURL,
			Bucket: settings.NATSBucket,
		}
	case tourapi.CacheTypeRedis:
		cacheConfig.Redis = &tourapi.RedisConfig{
			Addr:      settings.RedisAddr,
			Password:  settings.RedisPassword,
			DB:        settings.RedisDB,
			KeyPrefix: settings.RedisPrefix,
		}
	case tourapi.CacheTypeMemory, tourapi.CacheTypeNone:
	}

	return cacheConfig
}

// createClient builds a client from the CLI configuration with the saved
// session cookies restored. username is recorded with any cookies the backend
// sets during this invocation.
func createClient(ctx context.Context, username string) (*clientSession, error) {
	config := loadConfig()

	clientConfig, err := buildClientConfig(config)
	if err != nil {
		return nil, err
	}

	cache, err := tourapi.NewCacheFromConfig(ctx, buildCacheConfig(config.Cache))
	if err != nil {
		return nil, fmt.Errorf("failed to create cache: %w", err)
	}

	jar, err := session.NewPersistentJar(
		clientConfig.BaseURL,
		savedCookies(config.findSession(clientConfig.BaseURL)),
		NewConfigPersister(username),
		clientConfig.Logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	clientConfig.Cache = cache
	clientConfig.CookieJar = jar

	client, err := tourclient.New(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return &clientSession{
		client: client,
		cache:  cache,
		jar:    jar,
		config: clientConfig,
	}, nil
}

// withClient runs fn with a client and releases it afterwards.
func withClient(ctx context.Context, fn func(tourapi.Client) error) error {
	clientSession, err := createClient(ctx, "")
	if err != nil {
		return err
	}

	defer clientSession.Close()

	return fn(clientSession.client)
}
