package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr               string
	DatabaseURL        string
	Environment        string
	LogLevel           string
	JWTSecret          string
	JWTTTL             time.Duration
	DataEncryptionKey  string
	Timezone           string
	RedisURL           string
	HolidayCacheTTL    time.Duration
	StorageDir         string
	DeviceServiceURL   string
	DeviceTimeout      time.Duration
	DeviceSyncInterval time.Duration
	RunMigrations      bool
	RunSeed            bool
	SeedAdminEmail     string
	SeedAdminPassword  string
	MaxBodyBytes       int64
	MaxUploadBytes     int64
	RateLimitPerMinute int
	// TrustProxyHeaders takes the client address from X-Forwarded-For and X-Real-IP. Enable it
	// only behind a proxy that overwrites those headers.
	TrustProxyHeaders bool
	MetricsEnabled    bool
}

// LoadEnvFiles loads the dotenv files that exist; missing files are skipped.
func LoadEnvFiles(files ...string) error {
	existing := make([]string, 0, len(files))
	for _, file := range files {
		if _, err := os.Stat(file); err == nil {
			existing = append(existing, file)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

func Load() Config {
	return Config{
		Addr:               getEnv("APP_ADDR", ":8080"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		Environment:        getEnv("APP_ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		JWTTTL:             getEnvDuration("JWT_TTL", 12*time.Hour),
		DataEncryptionKey:  getEnv("DATA_ENCRYPTION_KEY", ""),
		Timezone:           getEnv("APP_TIMEZONE", "UTC"),
		RedisURL:           getEnv("REDIS_URL", ""),
		HolidayCacheTTL:    getEnvDuration("HOLIDAY_CACHE_TTL", time.Hour),
		StorageDir:         getEnv("STORAGE_DIR", "storage"),
		DeviceServiceURL:   getEnv("DEVICE_SERVICE_URL", ""),
		DeviceTimeout:      getEnvDuration("DEVICE_TIMEOUT", 10*time.Second),
		DeviceSyncInterval: getEnvDuration("DEVICE_SYNC_INTERVAL", 0),
		RunMigrations:      getEnvBool("RUN_MIGRATIONS", true),
		RunSeed:            getEnvBool("RUN_SEED", true),
		SeedAdminEmail:     getEnv("SEED_ADMIN_EMAIL", ""),
		SeedAdminPassword:  getEnv("SEED_ADMIN_PASSWORD", ""),
		MaxBodyBytes:       int64(getEnvInt("MAX_BODY_BYTES", 1<<20)),
		MaxUploadBytes:     int64(getEnvInt("MAX_UPLOAD_BYTES", 10<<20)),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 600),
		TrustProxyHeaders:  getEnvBool("TRUST_PROXY_HEADERS", false),
		MetricsEnabled:     getEnvBool("METRICS_ENABLED", true),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

// Location resolves APP_TIMEZONE, falling back to UTC.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Environment == "production" && strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET must be set to a strong value in production")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("APP_TIMEZONE is invalid: %w", err)
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.MaxUploadBytes < c.MaxBodyBytes {
		return fmt.Errorf("MAX_UPLOAD_BYTES must not be below MAX_BODY_BYTES")
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}
	if c.DeviceTimeout <= 0 {
		return fmt.Errorf("DEVICE_TIMEOUT must be positive")
	}
	if c.DeviceSyncInterval > 0 && c.DeviceServiceURL == "" {
		return fmt.Errorf("DEVICE_SERVICE_URL must be set when DEVICE_SYNC_INTERVAL is enabled")
	}
	return nil
}
