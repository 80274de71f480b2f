package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Blob store drivers.
const (
	DriverS3    = "s3"
	DriverMinio = "minio"
)

type Config struct {
	Port      string
	DataDir   string
	JWTSecret string

	SessionTTL time.Duration

	BlobDriver           string
	BucketName           string
	BucketEndpoint       string
	BucketPublicEndpoint string
	BucketAccessKey      string
	BucketSecretKey      string
	BucketRegion         string

	AvatarEndpoint string

	// DeleteReplacedAssets controls whether a post update that swaps the
	// image also deletes the previously referenced asset once the document
	// update has committed. Off by default: replaced assets are retained.
	DeleteReplacedAssets bool
}

func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		Port:                 getEnv("PORT", "8080"),
		DataDir:              getEnv("DATA_DIR", "clover-db"),
		JWTSecret:            getEnv("JWT_SECRET", ""),
		SessionTTL:           time.Duration(getEnvInt("SESSION_TTL_HOURS", 24*7)) * time.Hour,
		BlobDriver:           getEnv("BLOB_DRIVER", DriverS3),
		BucketName:           getEnv("BUCKET_NAME", ""),
		BucketEndpoint:       getEnv("BUCKET_ENDPOINT", ""),
		BucketAccessKey:      getEnv("BUCKET_ACCESS_KEY", ""),
		BucketSecretKey:      getEnv("BUCKET_SECRET_KEY", ""),
		BucketRegion:         getEnv("BUCKET_REGION", "us-west-2"),
		AvatarEndpoint:       getEnv("AVATAR_ENDPOINT", "https://ui-avatars.com/api"),
		DeleteReplacedAssets: getEnvBool("DELETE_REPLACED_ASSETS", false),
	}
	cfg.BucketPublicEndpoint = getEnv("BUCKET_PUBLIC_ENDPOINT", cfg.BucketEndpoint)

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}
	if cfg.BucketName == "" {
		log.Fatal("BUCKET_NAME is required")
	}
	if cfg.BucketEndpoint == "" {
		log.Fatal("BUCKET_ENDPOINT is required")
	}
	if cfg.BucketAccessKey == "" || cfg.BucketSecretKey == "" {
		log.Fatal("BUCKET_ACCESS_KEY and BUCKET_SECRET_KEY are required")
	}
	if cfg.BlobDriver != DriverS3 && cfg.BlobDriver != DriverMinio {
		log.Fatalf("BLOB_DRIVER must be %q or %q", DriverS3, DriverMinio)
	}

	return cfg
}

func getEnv(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func getEnvInt(key string, fallback int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return value
}

func getEnvBool(key string, fallback bool) bool {
	value, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return value
}
