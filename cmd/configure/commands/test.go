package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/benvon/food-delivery/internal/cache"
	"github.com/spf13/cobra"
)

// NewTestCmd creates the test command
func NewTestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Test backing service connectivity",
		Long:  "Check that the database, and Redis when REDIS_URL is set, are reachable",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			cfg, db, err := openDatabase(cmd.Context())
			if err != nil {
				return err
			}
			defer closeDatabase(db, cmd.ErrOrStderr())
			fmt.Fprintln(out, "✓ Database is reachable")

			if cfg.RedisURL == "" {
				fmt.Fprintln(out, "- Redis not configured, food cache disabled")
				return nil
			}

			redisCache, err := cache.NewRedisFoodCache(cfg.RedisURL, cfg.CacheTTL)
			if err != nil {
				return err
			}
			defer func() { _ = redisCache.Close() }()

			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
			defer cancel()
			if err := redisCache.Ping(ctx); err != nil {
				return fmt.Errorf("redis ping failed: %w", err)
			}
			fmt.Fprintln(out, "✓ Redis is reachable")
			return nil
		},
	}

	return cmd
}
