package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the portal.
type Config struct {
	// Environment
	RunMode string // Set via flag, not env

	// MongoDB
	MongoURI    string
	MongoDbName string

	// Redis (asynq broker)
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// JWT
	JwtSecret string
	JwtTTL    time.Duration

	// Server
	ApiPort string

	// Redirect gateway
	RedirectFallbackURL string

	// Maintenance
	ListingPurgeRetention time.Duration
	ListingPurgeInterval  time.Duration

	// Rate limiting
	RateLimitBucketSize int
	RateLimitRefillRate int // tokens per second

	// App
	AppName string
}

// Load configuration from environment variables.
// RunMode needs to be passed in as it comes from command-line flags.
func Load(runMode string) (*Config, error) {
	// Load .env file, ignoring errors if it doesn't exist
	godotenv.Load()

	cfg := &Config{
		RunMode: runMode,
	}

	var err error

	getEnv := func(key, defaultValue string) string {
		if value, exists := os.LookupEnv(key); exists {
			return value
		}
		return defaultValue
	}

	getRequiredEnv := func(key string) (string, error) {
		value, exists := os.LookupEnv(key)
		if !exists {
			return "", fmt.Errorf("missing required environment variable: %s", key)
		}
		return value, nil
	}

	cfg.MongoURI, err = getRequiredEnv("MONGO_URI")
	if err != nil {
		return nil, err
	}
	cfg.MongoDbName = getEnv("MONGO_DB_NAME", "housewolf")
	cfg.RedisAddr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	cfg.JwtSecret, err = getRequiredEnv("JWT_SECRET")
	if err != nil {
		return nil, err
	}
	cfg.ApiPort = getEnv("API_PORT", "8080")
	cfg.RedirectFallbackURL = getEnv("REDIRECT_FALLBACK_URL", "/")
	cfg.AppName = getEnv("APP_NAME", "House Wolf")

	cfg.RedisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	jwtTTLSeconds, err := strconv.ParseInt(getEnv("JWT_TTL_SECONDS", "3600"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL_SECONDS: %w", err)
	}
	cfg.JwtTTL = time.Duration(jwtTTLSeconds) * time.Second

	purgeRetentionDays, err := strconv.Atoi(getEnv("LISTING_PURGE_RETENTION_DAYS", "30"))
	if err != nil {
		return nil, fmt.Errorf("invalid LISTING_PURGE_RETENTION_DAYS: %w", err)
	}
	cfg.ListingPurgeRetention = time.Duration(purgeRetentionDays) * 24 * time.Hour

	purgeIntervalMinutes, err := strconv.Atoi(getEnv("LISTING_PURGE_INTERVAL_MINUTES", "60"))
	if err != nil {
		return nil, fmt.Errorf("invalid LISTING_PURGE_INTERVAL_MINUTES: %w", err)
	}
	cfg.ListingPurgeInterval = time.Duration(purgeIntervalMinutes) * time.Minute

	cfg.RateLimitBucketSize, err = strconv.Atoi(getEnv("RATE_LIMIT_BUCKET_SIZE", "8"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_BUCKET_SIZE: %w", err)
	}
	cfg.RateLimitRefillRate, err = strconv.Atoi(getEnv("RATE_LIMIT_REFILL_RATE", "4"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_REFILL_RATE: %w", err)
	}

	return cfg, nil
}
