// Package config loads the runtime configuration for the API from the
// environment, with an optional .env file for local development.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the binary needs to run. All fields have working
// local-development defaults so `go run ./cmd/shoply-api` works out of the box.
type Config struct {
	// Env is the deployment environment label ("development", "production").
	Env string

	// HTTPAddr is the listen address for the API, e.g. ":8080".
	HTTPAddr string

	// MongoURI is the connection string for the document store.
	MongoURI string

	// MongoDB is the database name.
	MongoDB string

	// RedisAddr is the host:port of the Redis cache.
	RedisAddr string

	// JWTSecret signs bearer tokens. Must be overridden outside development.
	JWTSecret string

	// JWTTTL is the lifetime of issued tokens.
	JWTTTL time.Duration

	// OrderLogPath is the SQLite file holding the order event log.
	OrderLogPath string

	// ShippingFee is the flat shipping fee applied to non-empty orders.
	ShippingFee int64
}

// Load reads the .env file (if present) and the process environment.
// Environment variables always win over .env values, which is godotenv's
// default behavior.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("could not read .env file", "error", err)
	}

	return Config{
		Env:          getEnv("ENV", "development"),
		HTTPAddr:     ":" + getEnv("PORT", "8080"),
		MongoURI:     getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:      getEnv("MONGO_DB", "shoply"),
		RedisAddr:    getEnv("REDIS_ADDR", "localhost:6379"),
		JWTSecret:    getEnv("JWT_SECRET", "dev-secret-do-not-use-in-prod"),
		JWTTTL:       getDuration("JWT_TTL", 24*time.Hour),
		OrderLogPath: getEnv("ORDER_LOG_PATH", "./data/orderlog.db"),
		ShippingFee:  getInt64("SHIPPING_FEE", 15000),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		slog.Warn("invalid duration, using fallback", "key", key, "value", raw)
		return fallback
	}
	return d
}

func getInt64(key string, fallback int64) int64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		slog.Warn("invalid integer, using fallback", "key", key, "value", raw)
		return fallback
	}
	return n
}
