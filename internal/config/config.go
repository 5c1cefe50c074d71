package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration values
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	JWT        JWTConfig
	Security   SecurityConfig
	Storage    StorageConfig
	Revalidate RevalidateConfig
	Search     SearchConfig
	Scheduler  SchedulerConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port        string
	Env         string
	CORSOrigins []string
	AutoMigrate bool
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// URL returns the database connection URL
func (c DatabaseConfig) URL() string {
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + strconv.Itoa(c.Port) + "/" + c.DBName + "?sslmode=" + c.SSLMode
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL      string
	Password string
	CacheTTL time.Duration
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// SecurityConfig holds security encryption keys
type SecurityConfig struct {
	SessionEncryptionKey string
	SessionExpiry        time.Duration
}

// StorageConfig selects where uploaded files go.
type StorageConfig struct {
	Driver             string // "local" or "gcs"
	LocalDir           string
	PublicBaseURL      string
	GCSBucket          string
	GCSCredentialsFile string
	MaxUploadBytes     int64
}

// RevalidateConfig holds the public page revalidation settings.
type RevalidateConfig struct {
	Secret  string
	URL     string
	Timeout time.Duration
}

// SearchConfig holds Elasticsearch settings. No URLs disables indexing.
type SearchConfig struct {
	ElasticsearchURLs []string
	Username          string
	Password          string
	Index             string
}

// SchedulerConfig holds background job intervals
type SchedulerConfig struct {
	PublishInterval   time.Duration
	AnalyticsSchedule string
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        getEnv("SERVER_PORT", "8080"),
			Env:         getEnv("SERVER_ENV", "development"),
			CORSOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
			AutoMigrate: getEnvAsBool("DB_AUTO_MIGRATE", true),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "company_site"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "redis://localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			CacheTTL: getEnvAsDuration("CACHE_TTL", 5*time.Minute),
		},
		JWT: JWTConfig{
			Secret:        getEnv("JWT_SECRET", "change-this-in-production"),
			AccessExpiry:  getEnvAsDuration("JWT_ACCESS_EXPIRY", 15*time.Minute),
			RefreshExpiry: getEnvAsDuration("JWT_REFRESH_EXPIRY", 7*24*time.Hour),
		},
		Security: SecurityConfig{
			SessionEncryptionKey: getEnv("SESSION_ENCRYPTION_KEY", "0000000000000000000000000000000000000000000000000000000000000000"), // 32-bytes hex string
			SessionExpiry:        getEnvAsDuration("SESSION_EXPIRY", 24*time.Hour),
		},
		Storage: StorageConfig{
			Driver:             getEnv("STORAGE_DRIVER", "local"),
			LocalDir:           getEnv("STORAGE_LOCAL_DIR", "./uploads"),
			PublicBaseURL:      getEnv("STORAGE_PUBLIC_BASE_URL", "/uploads"),
			GCSBucket:          getEnv("GCS_BUCKET", ""),
			GCSCredentialsFile: getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
			MaxUploadBytes:     int64(getEnvAsInt("MAX_UPLOAD_BYTES", 5*1024*1024)),
		},
		Revalidate: RevalidateConfig{
			Secret:  getEnv("REVALIDATE_SECRET", ""),
			URL:     getEnv("REVALIDATE_URL", ""),
			Timeout: getEnvAsDuration("REVALIDATE_TIMEOUT", 5*time.Second),
		},
		Search: SearchConfig{
			ElasticsearchURLs: getEnvAsList("ELASTICSEARCH_URLS", nil),
			Username:          getEnv("ELASTICSEARCH_USERNAME", ""),
			Password:          getEnv("ELASTICSEARCH_PASSWORD", ""),
			Index:             getEnv("ELASTICSEARCH_INDEX", "site-content"),
		},
		Scheduler: SchedulerConfig{
			PublishInterval:   getEnvAsDuration("PUBLISH_INTERVAL", 30*time.Second),
			AnalyticsSchedule: getEnv("ANALYTICS_SCHEDULE", "@every 5m"),
		},
	}
}

// IsProduction reports whether the server runs with SERVER_ENV=production.
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// getEnvAsList splits a comma separated value, dropping empty entries.
func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
