package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tourdesk/admin-client/pkg/tourapi"
)

// NewCacheCommand creates the cache command group.
func NewCacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the response cache",
		Long: "Manage the GET response cache. Cached responses are never refreshed; " +
			"clear the cache to see changes made since they were stored.",
	}

	cmd.AddCommand(newCacheClearCommand())

	return cmd
}

func newCacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Drop every cached response",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()
			cacheConfig := buildCacheConfig(config.Cache)

			cache, err := tourapi.NewCacheFromConfig(cmd.Context(), cacheConfig)
			if err != nil {
				return fmt.Errorf("failed to open cache: %w", err)
			}

			if closer, ok := cache.(io.Closer); ok {
				defer func() { _ = closer.Close() }()
			}

			err = cache.Clear(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to clear cache: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Cleared %s cache\n", cacheName(cacheConfig.Type))

			return nil
		},
	}
}

func cacheName(cacheType tourapi.CacheType) string {
	if cacheType == "" {
		return string(tourapi.CacheTypeMemory)
	}

	return string(cacheType)
}
