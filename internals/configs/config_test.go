package configs

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"DATABASE_URL", "DB_HOST", "STORAGE_DRIVER",
		"GCP_PROJECT_ID", "GCP_SERVICE_ACCOUNT_KEY_PATH", "GCP_BUCKET_NAME",
		"OSS_ENDPOINT", "OSS_ACCESS_KEY_ID", "OSS_ACCESS_KEY_SECRET", "OSS_BUCKET_NAME",
		"CLERK_DEFAULT_ROLE", "CLERK_JWT_KEY", "PORT",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadFailsFastOnMissingGCPSettings(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/msns")
	t.Setenv("GCP_PROJECT_ID", "msns")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GCP_SERVICE_ACCOUNT_KEY_PATH")
	assert.Contains(t, err.Error(), "GCP_BUCKET_NAME")
	assert.NotContains(t, err.Error(), "GCP_PROJECT_ID")
}

func TestLoadMemoryDriverDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/msns")
	t.Setenv("STORAGE_DRIVER", "memory")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.HTTP.Port)
	assert.Equal(t, "teacher", cfg.Clerk.DefaultRole)
	assert.Equal(t, 20, cfg.Database.MaxOpen)
	assert.Equal(t, "ACADEMIC INSTITUTE", cfg.Institute)
	assert.Error(t, cfg.RequireAuth())
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/msns")
	t.Setenv("STORAGE_DRIVER", "s3")

	_, err := Load()
	assert.ErrorContains(t, err, "unknown STORAGE_DRIVER")
}

func TestDatabaseURLFromParts(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_USER", "u")
	t.Setenv("DB_PASSWORD", "p")
	t.Setenv("DB_NAME", "msns")
	t.Setenv("DB_SSLMODE", "disable")

	assert.Equal(t, "postgresql://u:p@db:5432/msns?sslmode=disable&application_name=msns", databaseURL())
}

func TestNewLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(LoggingConfig{Level: "warn"}, &buf)

	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
