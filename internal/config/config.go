// Package config loads runtime configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config carries every tunable the application reads from the environment.
type Config struct {
	// Storage selects the local durable sink: memory, sqlite, or postgres.
	StorageDriver string
	SQLitePath    string
	PostgresDSN   string

	// Remote autosave service. An empty base URL leaves the store offline.
	RemoteBaseURL string
	RemoteToken   string
	RemoteTimeout time.Duration

	HistoryCapacity int

	// Blob storage for exports: fs, memory, or s3.
	BlobDriver string
	BlobFSRoot string
	S3Bucket   string
	S3Prefix   string
	S3Region   string
	S3Endpoint string

	LogLevel string
}

// Load reads the environment. A .env file in the working directory is applied
// first when present; real environment variables win over it.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		StorageDriver: getEnv("ELECTROPLAN_STORAGE_DRIVER", "sqlite"),
		SQLitePath:    getEnv("ELECTROPLAN_SQLITE_PATH", "electroplan.db"),
		PostgresDSN:   getEnv("ELECTROPLAN_POSTGRES_DSN", ""),

		RemoteBaseURL: getEnv("ELECTROPLAN_REMOTE_URL", ""),
		RemoteToken:   getEnv("ELECTROPLAN_REMOTE_TOKEN", ""),
		RemoteTimeout: getEnvDuration("ELECTROPLAN_REMOTE_TIMEOUT", 15*time.Second),

		HistoryCapacity: getEnvInt("ELECTROPLAN_HISTORY_CAPACITY", 50),

		BlobDriver: getEnv("ELECTROPLAN_BLOB_DRIVER", "fs"),
		BlobFSRoot: getEnv("ELECTROPLAN_BLOB_FS_ROOT", "exports"),
		S3Bucket:   getEnv("ELECTROPLAN_S3_BUCKET", ""),
		S3Prefix:   getEnv("ELECTROPLAN_S3_PREFIX", ""),
		S3Region:   getEnv("ELECTROPLAN_S3_REGION", ""),
		S3Endpoint: getEnv("ELECTROPLAN_S3_ENDPOINT", ""),

		LogLevel: getEnv("ELECTROPLAN_LOG_LEVEL", "info"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
