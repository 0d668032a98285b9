package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultAllowedOrigins are the browser origins allowed to make credentialed requests
var DefaultAllowedOrigins = []string{
	"http://localhost:8462",
	"https://food-delivery-new-client.vercel.app",
}

// Config holds application configuration
type Config struct {
	DatabaseURL      string
	ServerPort       string
	AllowedOrigins   []string
	DBConnectTimeout time.Duration
	DBAutoMigrate    bool
	RedisURL         string
	CacheTTL         time.Duration
	ServerDebugMode  bool
	LogFormat        string
	OTELEnabled      bool
	OTELEndpoint     string
}

// Load reads configuration from the environment, after loading a .env file from the
// working directory if one exists. Variables already set in the environment win.
func Load() (*Config, error) {
	return LoadFile(".env")
}

// LoadFile is Load with an explicit dotenv path. A missing file is not an error.
func LoadFile(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	cfg := &Config{
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		ServerPort:       getEnv("SERVER_PORT", "8462"),
		AllowedOrigins:   getEnvList("CORS_ALLOWED_ORIGINS", DefaultAllowedOrigins),
		DBConnectTimeout: getEnvDuration("DB_CONNECT_TIMEOUT", 30*time.Second),
		DBAutoMigrate:    getEnvBool("DB_AUTO_MIGRATE", true),
		RedisURL:         getEnv("REDIS_URL", ""),
		CacheTTL:         getEnvDuration("CACHE_TTL", time.Minute),
		ServerDebugMode:  getEnvBool("SERVER_DEBUG_MODE", false),
		LogFormat:        getEnv("LOG_FORMAT", "json"),
		OTELEnabled:      getEnvBool("OTEL_ENABLED", false),
		OTELEndpoint:     getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if port, err := strconv.Atoi(cfg.ServerPort); err != nil || port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be a valid TCP port, got %q", cfg.ServerPort)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		switch strings.ToLower(value) {
		case "true", "1", "yes":
			return true
		case "false", "0", "no":
			return false
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return defaultValue
}

// getEnvList parses a comma-separated list, trimming whitespace and dropping
// empty entries and duplicates.
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return append([]string(nil), defaultValue...)
	}

	var out []string
	seen := make(map[string]bool)
	for _, part := range strings.Split(value, ",") {
		s := strings.TrimSpace(part)
		if s != "" && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return append([]string(nil), defaultValue...)
	}
	return out
}
