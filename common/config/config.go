package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all service configuration
type Config struct {
	Service   ServiceConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Blob      BlobConfig
	Auth      AuthConfig
	Suggest   SuggestConfig
	RateLimit RateLimitConfig
	Telemetry TelemetryConfig
}

// ServiceConfig holds service-specific settings
type ServiceConfig struct {
	Name        string
	Port        int
	Environment string
	LogLevel    string
	LogFormat   string
}

// DatabaseConfig holds Postgres connection settings
type DatabaseConfig struct {
	Host        string
	Port        int
	Database    string
	User        string
	Password    string
	MaxConns    int
	MinConns    int
	MaxIdleTime time.Duration
	MaxLifetime time.Duration
}

// RedisConfig holds Redis connection settings.
// Redis backs the suggestion/session cache and the rate limiter; when disabled
// the service falls back to the in-memory cache and skips rate limiting.
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

// BlobConfig holds object storage settings (S3-compatible)
type BlobConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// PublicBaseURL is the externally resolvable origin under which uploaded
	// objects are served, e.g. https://cdn.memorias.app
	PublicBaseURL string
}

// AuthConfig holds hosted session-provider settings
type AuthConfig struct {
	// ProviderURL is the base URL of the hosted auth service
	ProviderURL string
	// APIKey is the public (anon) key sent alongside user tokens
	APIKey string
	// SessionTTL bounds how long a validated session is cached
	SessionTTL time.Duration
	Timeout    time.Duration
}

// SuggestConfig holds external suggestion API settings
type SuggestConfig struct {
	MusicBaseURL  string
	PlacesBaseURL string
	Timeout       time.Duration
	CacheTTL      time.Duration
	// DebounceQuiet is the quiet period before an interactive query is issued
	DebounceQuiet time.Duration
	MaxResults    int
}

// RateLimitConfig holds limits for the suggestion proxy endpoints
type RateLimitConfig struct {
	Enabled       bool
	GlobalPerMin  int64
	PerUserPerMin int64
}

// TelemetryConfig holds observability settings
type TelemetryConfig struct {
	EnablePprof bool
	PprofPort   int
}

// Load loads configuration from environment variables
func Load(serviceName string) (*Config, error) {
	cfg := &Config{
		Service: ServiceConfig{
			Name:        serviceName,
			Port:        getEnvInt("PORT", 8080),
			Environment: getEnv("ENVIRONMENT", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			LogFormat:   getEnv("LOG_FORMAT", "text"),
		},
		Database: DatabaseConfig{
			Host:        getEnv("POSTGRES_HOST", "localhost"),
			Port:        getEnvInt("POSTGRES_PORT", 5432),
			Database:    getEnv("POSTGRES_DB", "memorias"),
			User:        getEnv("POSTGRES_USER", "memorias"),
			Password:    getEnv("POSTGRES_PASSWORD", "memorias"),
			MaxConns:    getEnvInt("POSTGRES_MAX_CONNS", 25),
			MinConns:    getEnvInt("POSTGRES_MIN_CONNS", 5),
			MaxIdleTime: getEnvDuration("POSTGRES_MAX_IDLE_TIME", 30*time.Minute),
			MaxLifetime: getEnvDuration("POSTGRES_MAX_LIFETIME", 1*time.Hour),
		},
		Redis: RedisConfig{
			Enabled:  getEnvBool("REDIS_ENABLED", true),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Blob: BlobConfig{
			Endpoint:      getEnv("BLOB_ENDPOINT", "localhost:9000"),
			AccessKey:     getEnv("BLOB_ACCESS_KEY", ""),
			SecretKey:     getEnv("BLOB_SECRET_KEY", ""),
			Bucket:        getEnv("BLOB_BUCKET", "album-media"),
			UseSSL:        getEnvBool("BLOB_USE_SSL", false),
			PublicBaseURL: getEnv("BLOB_PUBLIC_BASE_URL", "http://localhost:9000"),
		},
		Auth: AuthConfig{
			ProviderURL: getEnv("AUTH_PROVIDER_URL", "http://localhost:9999"),
			APIKey:      getEnv("AUTH_API_KEY", ""),
			SessionTTL:  getEnvDuration("AUTH_SESSION_TTL", 5*time.Minute),
			Timeout:     getEnvDuration("AUTH_TIMEOUT", 5*time.Second),
		},
		Suggest: SuggestConfig{
			MusicBaseURL:  getEnv("SUGGEST_MUSIC_URL", "https://itunes.apple.com"),
			PlacesBaseURL: getEnv("SUGGEST_PLACES_URL", "https://nominatim.openstreetmap.org"),
			Timeout:       getEnvDuration("SUGGEST_TIMEOUT", 5*time.Second),
			CacheTTL:      getEnvDuration("SUGGEST_CACHE_TTL", 10*time.Minute),
			DebounceQuiet: getEnvDuration("SUGGEST_DEBOUNCE_QUIET", 500*time.Millisecond),
			MaxResults:    getEnvInt("SUGGEST_MAX_RESULTS", 10),
		},
		RateLimit: RateLimitConfig{
			Enabled:       getEnvBool("RATE_LIMIT_ENABLED", true),
			GlobalPerMin:  int64(getEnvInt("RATE_LIMIT_GLOBAL_PER_MIN", 600)),
			PerUserPerMin: int64(getEnvInt("RATE_LIMIT_USER_PER_MIN", 60)),
		},
		Telemetry: TelemetryConfig{
			EnablePprof: getEnvBool("ENABLE_PPROF", false),
			PprofPort:   getEnvInt("PPROF_PORT", 6060),
		},
	}

	return cfg, cfg.Validate()
}

// Validate checks if configuration is valid
func (c *Config) Validate() error {
	if c.Service.Port < 1 || c.Service.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Service.Port)
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Database.MaxConns < c.Database.MinConns {
		return fmt.Errorf("max_conns must be >= min_conns")
	}

	if c.Blob.Bucket == "" {
		return fmt.Errorf("blob bucket is required")
	}

	if c.Suggest.MaxResults < 1 {
		return fmt.Errorf("suggest max_results must be >= 1")
	}

	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
	)
}

// RedisAddr returns the Redis host:port address
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
