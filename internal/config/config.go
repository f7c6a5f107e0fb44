package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageCSV      = "csv"
	StoragePostgres = "postgres"

	CacheFlat  = "flat"
	CacheRedis = "redis"

	DirectoryAWS  = "aws"
	DirectoryMock = "mock"
)

// Config holds application configuration.
type Config struct {
	AppName    string
	AppVersion string
	Port       string

	Environment string
	LogLevel    string

	DataDir       string
	StaticDir     string
	DefaultRegion string

	StorageBackend string

	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int
	DBConnMaxIdleTime int

	CacheBackend  string
	RedisURL      string
	RedisPassword string
	RedisDB       int
	RedisCacheKey string
	RedisCacheTTL time.Duration

	CachePolicy         string
	MockFallbackEnabled bool
	DirectoryBackend    string

	SnowflakeNodeID int64
}

// Load loads configuration from environment variables and .env file.
func Load() *Config {
	_ = godotenv.Load()

	cfg := Config{
		AppName:     getenv("APP_SERVICE", "connect-admin-console"),
		AppVersion:  getenv("APP_VERSION", "0.1.0"),
		Port:        getenv("PORT", "8501"),
		Environment: getenv("ENVIRONMENT", "development"),
		LogLevel:    strings.ToLower(getenv("LOG_LEVEL", "info")),

		DataDir:       getenv("DATA_DIR", "data"),
		StaticDir:     getenv("STATIC_DIR", "apps/console/static"),
		DefaultRegion: getenv("DEFAULT_REGION", "us-east-1"),

		StorageBackend: strings.ToLower(getenv("STORAGE_BACKEND", StorageCSV)),

		DBHost:            getenv("DB_HOST", "localhost"),
		DBPort:            getenv("DB_PORT", "5432"),
		DBName:            getenv("DB_NAME", "console"),
		DBUser:            getenv("DB_USER", "postgres"),
		DBPassword:        getenv("DB_PASSWORD", "postgres"),
		DBSSLMode:         getenv("DB_SSL_MODE", "disable"),
		DBMaxIdleConn:     getenvInt("DB_MAX_IDLE_CONN", 2),
		DBMaxOpenConn:     getenvInt("DB_MAX_OPEN_CONN", 10),
		DBConnMaxLifetime: getenvInt("DB_CONN_MAX_LIFETIME", 3600),
		DBConnMaxIdleTime: getenvInt("DB_CONN_MAX_IDLE_TIME", 60),

		CacheBackend:  strings.ToLower(getenv("CACHE_BACKEND", CacheFlat)),
		RedisURL:      strings.TrimSpace(getenv("REDIS_URL", "redis://localhost:6379/0")),
		RedisPassword: strings.TrimSpace(getenv("REDIS_PASSWORD", "")),
		RedisDB:       getenvInt("REDIS_DB", 0),
		RedisCacheKey: getenv("REDIS_CACHE_KEY", "connect_instances_cache"),
		RedisCacheTTL: time.Duration(getenvInt("REDIS_CACHE_TTL", 0)) * time.Second,

		CachePolicy:         strings.ToLower(getenv("CACHE_POLICY", "per_region")),
		MockFallbackEnabled: getenvBool("MOCK_FALLBACK_ENABLED", true),
		DirectoryBackend:    strings.ToLower(getenv("DIRECTORY_BACKEND", DirectoryAWS)),

		SnowflakeNodeID: getenvInt64("SNOWFLAKE_NODE_ID", 1),
	}

	return &cfg
}

// Validate rejects backend selections the application cannot wire.
func (c *Config) Validate() error {
	switch c.StorageBackend {
	case StorageCSV, StoragePostgres:
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend)
	}
	switch c.CacheBackend {
	case CacheFlat, CacheRedis:
	default:
		return fmt.Errorf("unknown CACHE_BACKEND %q", c.CacheBackend)
	}
	switch c.DirectoryBackend {
	case DirectoryAWS, DirectoryMock:
	default:
		return fmt.Errorf("unknown DIRECTORY_BACKEND %q", c.DirectoryBackend)
	}
	if c.SnowflakeNodeID < 0 || c.SnowflakeNodeID > 1023 {
		return fmt.Errorf("SNOWFLAKE_NODE_ID must be between 0 and 1023, got %d", c.SnowflakeNodeID)
	}
	return nil
}

// IsProduction reports whether the service runs with production defaults.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// DatabaseURL returns the postgres connection URL for migrations.
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
		c.DBSSLMode,
	)
}

// DatabaseDSN returns the postgres DSN in key/value form for gorm.
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost,
		c.DBPort,
		c.DBUser,
		c.DBPassword,
		c.DBName,
		c.DBSSLMode,
	)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if value == "" {
		return def
	}
	switch value {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

func getenvInt64(key string, def int64) int64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return def
	}
	return parsed
}

func getenvInt(key string, def int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}
