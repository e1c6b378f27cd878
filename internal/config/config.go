package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreDriverSQL    = "sql"
	StoreDriverS3     = "s3"
	StoreDriverMemory = "memory"
)

type Config struct {
	// Application
	AppName         string
	AppEnv          string
	Port            string
	ShutdownTimeout time.Duration

	// Document store backend: "sql" (default), "s3" or "memory"
	StoreDriver string

	// Database (sql store; driver switch via ENV, default: sqlite)
	DBDriver     string
	DBConnection string

	// Observability (optional)
	SentryDSN string

	// Storage (s3 store; S3-compatible: MinIO, AWS S3, Cloudflare R2, etc.)
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	S3Endpoint  string // Optional: for S3-compatible services
	S3PathStyle bool   // Required by MinIO and some S3-compatible services
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		// Application
		AppName:         envString("APP_NAME", "Workouts"),
		AppEnv:          envString("APP_ENV", "development"),
		Port:            envString("PORT", "8090"),
		ShutdownTimeout: envDuration("SHUTDOWN_TIMEOUT", 10*time.Second),

		StoreDriver: envString("STORE_DRIVER", StoreDriverSQL),

		// Database
		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/workouts.db?_pragma=journal_mode(WAL)"),

		// Observability
		SentryDSN: envString("SENTRY_DSN", ""),

		S3Region:   envString("S3_REGION", "us-east-1"),
		S3Endpoint: envString("S3_ENDPOINT", ""), // Optional: for non-AWS providers
	}
	cfg.S3PathStyle = envBool("S3_PATH_STYLE", cfg.S3Endpoint != "")

	// The s3 store cannot start without a bucket and credentials
	if cfg.StoreDriver == StoreDriverS3 {
		cfg.S3Bucket = envRequired("S3_BUCKET")
		cfg.S3AccessKey = envRequired("S3_ACCESS_KEY")
		cfg.S3SecretKey = envRequired("S3_SECRET_KEY")
	}

	return cfg
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("config invalid bool, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
