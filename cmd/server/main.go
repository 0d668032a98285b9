package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/benvon/food-delivery/internal/cache"
	"github.com/benvon/food-delivery/internal/config"
	"github.com/benvon/food-delivery/internal/database"
	"github.com/benvon/food-delivery/internal/gateway"
	"github.com/benvon/food-delivery/internal/handlers"
	"github.com/benvon/food-delivery/internal/logger"
	"github.com/benvon/food-delivery/internal/middleware"
	"github.com/benvon/food-delivery/internal/server"
	"github.com/benvon/food-delivery/internal/telemetry"
	"go.uber.org/zap"
)

func main() {
	debugFlag := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	debugMode := cfg.ServerDebugMode || *debugFlag

	zapLogger, err := logger.New(logger.Format(cfg.LogFormat), debugMode)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() {
		// Ignore sync errors on stdout/stderr
		_ = logger.Sync(zapLogger)
	}()

	zapLogger.Info("starting_server",
		zap.Bool("debug_mode", debugMode),
		zap.String("server_port", cfg.ServerPort),
		zap.Strings("allowed_origins", cfg.AllowedOrigins),
		zap.Bool("cache_enabled", cfg.RedisURL != ""),
		zap.Bool("otel_enabled", cfg.OTELEnabled),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tracing := false
	if cfg.OTELEnabled {
		tp, err := telemetry.InitTracer(ctx, telemetry.Config{
			ServiceName: gateway.DefaultServiceName,
			Endpoint:    cfg.OTELEndpoint,
			Insecure:    true,
		})
		if err != nil {
			zapLogger.Warn("failed_to_initialize_otel_tracer", zap.Error(err))
		} else {
			tracing = true
			zapLogger.Info("otel_tracer_initialized", zap.String("endpoint", cfg.OTELEndpoint))
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := telemetry.Shutdown(shutdownCtx, tp); err != nil {
					zapLogger.Error("failed_to_shutdown_otel_tracer", zap.Error(err))
				}
			}()
		}
	}

	// The catalog cache is optional; the API works without it
	var foodCache cache.FoodCache
	if cfg.RedisURL != "" {
		redisCache, err := cache.NewRedisFoodCache(cfg.RedisURL, cfg.CacheTTL)
		if err != nil {
			zapLogger.Warn("food_cache_disabled", zap.Error(err))
		} else {
			foodCache = redisCache
			zapLogger.Info("connected_to_redis")
			defer func() {
				if err := redisCache.Close(); err != nil {
					zapLogger.Warn("failed_to_close_redis_connection", zap.Error(err))
				}
			}()
		}
	}

	srv := server.New(server.Options{
		Addr:      ":" + cfg.ServerPort,
		Bootstrap: server.DatabaseBootstrap(cfg.DatabaseURL, cfg.DBConnectTimeout, cfg.DBAutoMigrate, zapLogger),
		Handler: func(db *database.DB) (http.Handler, error) {
			return gateway.New(gateway.Options{
				AllowedOrigins: cfg.AllowedOrigins,
				BodyLimits: middleware.BodyLimits{
					JSON: middleware.DefaultMaxJSONBodySize,
					Form: middleware.DefaultMaxFormBodySize,
				},
				Users:   handlers.NewUserHandler(database.NewUserRepository(db)),
				Foods:   handlers.NewFoodHandler(database.NewFoodRepository(db), foodCache, zapLogger),
				Logger:  zapLogger,
				Tracing: tracing,
				Debug:   debugMode,
			}), nil
		},
		Logger: zapLogger,
	})

	if err := srv.Run(ctx); err != nil {
		if errors.Is(err, server.ErrBootstrap) {
			zapLogger.Fatal("failed_to_connect_to_database", zap.Error(err))
		}
		zapLogger.Fatal("server_failed", zap.Error(err))
	}
}
