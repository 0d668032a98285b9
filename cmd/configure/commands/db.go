package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/benvon/food-delivery/internal/config"
	"github.com/benvon/food-delivery/internal/database"
)

// openDatabase loads configuration and connects within the configured timeout
func openDatabase(ctx context.Context) (*config.Config, *database.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	connectCtx, cancel := context.WithTimeout(ctx, cfg.DBConnectTimeout)
	defer cancel()

	db, err := database.New(connectCtx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return cfg, db, nil
}

func closeDatabase(db *database.DB, stderr io.Writer) {
	if err := db.Close(); err != nil {
		fmt.Fprintf(stderr, "Warning: failed to close database: %v\n", err)
	}
}
