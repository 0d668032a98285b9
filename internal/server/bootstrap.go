package server

import (
	"context"
	"fmt"
	"time"

	"github.com/benvon/food-delivery/internal/database"
	"go.uber.org/zap"
)

// DatabaseBootstrap returns a BootstrapFunc that connects to databaseURL within
// timeout and, when migrate is set, applies pending migrations.
func DatabaseBootstrap(databaseURL string, timeout time.Duration, migrate bool, logger *zap.Logger) BootstrapFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(ctx context.Context) (*database.DB, error) {
		connectCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		db, err := database.New(connectCtx, databaseURL)
		if err != nil {
			return nil, err
		}

		if !migrate {
			return db, nil
		}

		applied, err := database.Migrate(ctx, db, logger)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to apply migrations: %w", err)
		}
		if len(applied) > 0 {
			logger.Info("applied_migrations", zap.Ints("versions", applied))
		}
		return db, nil
	}
}
