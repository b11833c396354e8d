package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/random"
)

// Config carries every runtime setting, loaded once at startup.
type Config struct {
	Port        int
	DatabaseURL string
	JWTSecret   string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool

	CORSOrigins []string

	// Streaming settings. SSERetry is pushed to clients in the SSE retry
	// field, so the reconnect delay lives here instead of as a client-side
	// constant.
	SSEQueueSize    int
	SSEPingInterval time.Duration
	SSERetry        time.Duration

	StaleOrderTTL      time.Duration
	StaleSweepInterval time.Duration
	AuditRetention     time.Duration
}

// Load reads configuration from the environment, consulting a .env file when
// present. DATABASE_URL is the only required setting.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:               envInt("PORT", 8080),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		RedisAddr:          envString("REDIS_ADDR", "localhost:6379"),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
		RedisDB:            envInt("REDIS_DB", 0),
		MinioEndpoint:      envString("MINIO_ENDPOINT", "localhost:9000"),
		MinioAccessKey:     envString("MINIO_ACCESS_KEY", "minioadmin"),
		MinioSecretKey:     envString("MINIO_SECRET_KEY", "minioadmin"),
		MinioUseSSL:        os.Getenv("MINIO_USE_SSL") == "true",
		CORSOrigins:        strings.Split(envString("CORS_ORIGINS", "*"), ","),
		SSEQueueSize:       envInt("SSE_QUEUE_SIZE", 32),
		SSEPingInterval:    envDuration("SSE_PING_INTERVAL", 30*time.Second),
		SSERetry:           time.Duration(envInt("SSE_RETRY_MS", 5000)) * time.Millisecond,
		StaleOrderTTL:      envDuration("STALE_ORDER_TTL", 2*time.Hour),
		StaleSweepInterval: envDuration("STALE_SWEEP_INTERVAL", 5*time.Minute),
		AuditRetention:     envDuration("AUDIT_RETENTION", 90*24*time.Hour),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = random.String(32) // Generate random secret for development
		log.Printf("WARNING: Using generated JWT secret: %s", cfg.JWTSecret)
	}

	return cfg, nil
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
