package configs

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// =======================
// ENV LOADER
// =======================

// LoadEnv loads .env when present. A missing file is fine; the process
// environment is used as is.
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") != "" {
		return
	}
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file, using process environment")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if (!exists || value == "") && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func getInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

func getBool(key string) bool {
	b, _ := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	return b
}

// =======================
// TYPED CONFIG
// =======================

type Config struct {
	HTTP      HTTPConfig
	Database  DatabaseConfig
	Storage   StorageConfig
	Clerk     ClerkConfig
	Payments  PaymentsConfig
	Logging   LoggingConfig
	Institute string
}

type HTTPConfig struct {
	Port               string
	CORSAllowedOrigins string
	RateLimitPerMinute int
}

type DatabaseConfig struct {
	URL     string
	MaxOpen int
	MaxIdle int
}

const (
	StorageGCS    = "gcs"
	StorageOSS    = "oss"
	StorageMemory = "memory"
)

type StorageConfig struct {
	Driver string

	GCPProjectID         string
	GCPServiceAccountKey string
	GCPBucketName        string

	OSSEndpoint        string
	OSSAccessKeyID     string
	OSSAccessKeySecret string
	OSSBucketName      string
	OSSPublicBaseURL   string
}

type ClerkConfig struct {
	WebhookSecret string
	SecretKey     string
	JWTKey        string
	DefaultRole   string
}

type PaymentsConfig struct {
	MidtransServerKey  string
	MidtransProduction bool
}

// Load reads the environment into Config. Missing required values are
// reported together so a misconfigured deployment fails on the first boot.
func Load() (Config, error) {
	cfg := Config{
		HTTP: HTTPConfig{
			Port:               GetEnv("PORT", "3000"),
			CORSAllowedOrigins: GetEnv("CORS_ALLOWED_ORIGINS", "*"),
			RateLimitPerMinute: getInt("RATE_LIMIT_PER_MINUTE", 100),
		},
		Database: DatabaseConfig{
			URL:     databaseURL(),
			MaxOpen: getInt("DB_MAX_OPEN", 20),
			MaxIdle: getInt("DB_MAX_IDLE", 10),
		},
		Storage: StorageConfig{
			Driver:               strings.ToLower(GetEnv("STORAGE_DRIVER", StorageGCS)),
			GCPProjectID:         GetEnv("GCP_PROJECT_ID"),
			GCPServiceAccountKey: GetEnv("GCP_SERVICE_ACCOUNT_KEY_PATH"),
			GCPBucketName:        GetEnv("GCP_BUCKET_NAME"),
			OSSEndpoint:          GetEnv("OSS_ENDPOINT"),
			OSSAccessKeyID:       GetEnv("OSS_ACCESS_KEY_ID"),
			OSSAccessKeySecret:   GetEnv("OSS_ACCESS_KEY_SECRET"),
			OSSBucketName:        GetEnv("OSS_BUCKET_NAME"),
			OSSPublicBaseURL:     GetEnv("OSS_PUBLIC_BASE_URL"),
		},
		Clerk: ClerkConfig{
			WebhookSecret: GetEnv("CLERK_WEBHOOK_SECRET"),
			SecretKey:     GetEnv("CLERK_SECRET_KEY"),
			JWTKey:        GetEnv("CLERK_JWT_KEY"),
			DefaultRole:   GetEnv("CLERK_DEFAULT_ROLE", "teacher"),
		},
		Payments: PaymentsConfig{
			MidtransServerKey:  GetEnv("MIDTRANS_SERVER_KEY"),
			MidtransProduction: getBool("MIDTRANS_PRODUCTION"),
		},
		Logging: LoggingConfig{
			Level:  GetEnv("LOG_LEVEL", "info"),
			Format: GetEnv("LOG_FORMAT", "json"),
		},
		Institute: GetEnv("INSTITUTE_NAME", "ACADEMIC INSTITUTE"),
	}

	var missing []string
	require := func(key, val string) {
		if strings.TrimSpace(val) == "" {
			missing = append(missing, key)
		}
	}

	require("DATABASE_URL", cfg.Database.URL)
	switch cfg.Storage.Driver {
	case StorageGCS:
		require("GCP_PROJECT_ID", cfg.Storage.GCPProjectID)
		require("GCP_SERVICE_ACCOUNT_KEY_PATH", cfg.Storage.GCPServiceAccountKey)
		require("GCP_BUCKET_NAME", cfg.Storage.GCPBucketName)
	case StorageOSS:
		require("OSS_ENDPOINT", cfg.Storage.OSSEndpoint)
		require("OSS_ACCESS_KEY_ID", cfg.Storage.OSSAccessKeyID)
		require("OSS_ACCESS_KEY_SECRET", cfg.Storage.OSSAccessKeySecret)
		require("OSS_BUCKET_NAME", cfg.Storage.OSSBucketName)
	case StorageMemory:
	default:
		return cfg, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.Storage.Driver)
	}

	if len(missing) > 0 {
		return cfg, fmt.Errorf("missing required environment: %s", strings.Join(missing, ", "))
	}
	return cfg, nil
}

// RequireAuth is checked by the serve command only; migrate and seed run
// without Clerk keys.
func (c Config) RequireAuth() error {
	if strings.TrimSpace(c.Clerk.JWTKey) == "" {
		return errors.New("missing required environment: CLERK_JWT_KEY")
	}
	return nil
}

func databaseURL() string {
	if u := GetEnv("DATABASE_URL"); u != "" {
		return u
	}
	host := GetEnv("DB_HOST")
	if host == "" {
		return ""
	}
	return fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=%s&application_name=msns",
		GetEnv("DB_USER"),
		GetEnv("DB_PASSWORD"),
		host,
		GetEnv("DB_PORT", "5432"),
		GetEnv("DB_NAME"),
		GetEnv("DB_SSLMODE", "require"),
	)
}
