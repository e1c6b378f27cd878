package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("PORT", "")
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("S3_ENDPOINT", "")
	t.Setenv("S3_PATH_STYLE", "")
	t.Setenv("SHUTDOWN_TIMEOUT", "")

	cfg := Load()

	assert.Equal(t, "development", cfg.AppEnv)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, "8090", cfg.Port)
	assert.Equal(t, StoreDriverSQL, cfg.StoreDriver)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.S3PathStyle)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("PORT", "9000")
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("DB_DRIVER", "pgx")
	t.Setenv("DB_CONNECTION", "postgres://localhost/workouts?sslmode=disable")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")

	cfg := Load()

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, StoreDriverMemory, cfg.StoreDriver)
	assert.Equal(t, "pgx", cfg.DBDriver)
	assert.Equal(t, "postgres://localhost/workouts?sslmode=disable", cfg.DBConnection)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_S3Store(t *testing.T) {
	t.Setenv("STORE_DRIVER", "s3")
	t.Setenv("S3_BUCKET", "workouts")
	t.Setenv("S3_ACCESS_KEY", "minio")
	t.Setenv("S3_SECRET_KEY", "minio123")
	t.Setenv("S3_ENDPOINT", "http://localhost:9000")
	t.Setenv("S3_PATH_STYLE", "")

	cfg := Load()

	assert.Equal(t, StoreDriverS3, cfg.StoreDriver)
	assert.Equal(t, "workouts", cfg.S3Bucket)
	assert.Equal(t, "minio", cfg.S3AccessKey)
	assert.Equal(t, "minio123", cfg.S3SecretKey)
	assert.True(t, cfg.S3PathStyle, "custom endpoint implies path-style addressing")
}

func TestEnvHelpers_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("TEST_BOOL", "maybe")
	t.Setenv("TEST_DURATION", "soon")

	assert.True(t, envBool("TEST_BOOL", true))
	assert.Equal(t, time.Minute, envDuration("TEST_DURATION", time.Minute))
}
