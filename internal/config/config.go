package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Supported store drivers
const (
	DriverMongo    = "mongo"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// DefaultMongoURI is the non-production fallback used when MONGODB_URI is unset
const DefaultMongoURI = "mongodb://localhost:27017/ndv261"

// Config holds all configuration for the application
type Config struct {
	AppMode   string
	Port      string
	BodyLimit int // bytes
	Store     StoreConfig
	RateLimit RateLimitConfig
	Redis     RedisConfig
	Log       LogConfig
	AMQPURL   string
}

// StoreConfig selects and addresses the record store
type StoreConfig struct {
	Driver        string
	MongoURI      string
	MongoDatabase string
	SQL           DatabaseConfig
	CheckSchedule string

	uriProvided bool
}

// DatabaseConfig holds SQL database configuration
type DatabaseConfig struct {
	DSN      string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// RateLimitConfig holds limiter settings; Max 0 disables the limiter
type RateLimitConfig struct {
	Max int
}

// RedisConfig holds optional limiter storage settings
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LogConfig holds logger settings
type LogConfig struct {
	Level string
	File  string
}

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		logrus.Debug("⚠️ .env file not found, using environment variables")
	}

	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	store, err := loadStoreConfig()
	if err != nil {
		return nil, err
	}

	bodyLimitMB, err := strconv.Atoi(getEnv("BODY_LIMIT_MB", "50"))
	if err != nil || bodyLimitMB <= 0 {
		return nil, fmt.Errorf("invalid BODY_LIMIT_MB: '%s'", os.Getenv("BODY_LIMIT_MB"))
	}

	rateMax, err := strconv.Atoi(getEnv("RATE_LIMIT_MAX", "300"))
	if err != nil || rateMax < 0 {
		return nil, fmt.Errorf("invalid RATE_LIMIT_MAX: '%s'", os.Getenv("RATE_LIMIT_MAX"))
	}

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))

	defaultLevel := "info"
	if appMode == "dev" {
		defaultLevel = "debug"
	}

	return &Config{
		AppMode:   appMode,
		Port:      getEnv("PORT", "3000"),
		BodyLimit: bodyLimitMB * 1024 * 1024,
		Store:     store,
		RateLimit: RateLimitConfig{Max: rateMax},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", defaultLevel),
			File:  getEnv("LOG_FILE", ""),
		},
		AMQPURL: getEnv("AMQP_URL", ""),
	}, nil
}

// loadStoreConfig loads the store selection and its connection settings
func loadStoreConfig() (StoreConfig, error) {
	driver := strings.ToLower(strings.TrimSpace(getEnv("STORE_DRIVER", DriverMongo)))
	switch driver {
	case DriverMongo, DriverMySQL, DriverPostgres, DriverMemory:
	default:
		return StoreConfig{}, fmt.Errorf("invalid STORE_DRIVER: '%s'", driver)
	}

	defaultPort := "3306"
	if driver == DriverPostgres {
		defaultPort = "5432"
	}

	sqlCfg := DatabaseConfig{
		DSN:      getEnv("DB_DSN", ""),
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", defaultPort),
		User:     getEnv("DB_USER", "root"),
		Password: getEnv("DB_PASS", ""),
		DBName:   getEnv("DB_NAME", "ndv261"),
	}

	provided := os.Getenv("MONGODB_URI") != ""
	if driver == DriverMySQL || driver == DriverPostgres {
		provided = sqlCfg.DSN != ""
	}

	// Periodic checks are noise during local development against memory
	check := "@every 1m"
	if driver == DriverMemory {
		check = ""
	}
	if v, ok := os.LookupEnv("STORE_CHECK_SCHEDULE"); ok {
		check = strings.TrimSpace(v)
	}

	return StoreConfig{
		Driver:        driver,
		MongoURI:      getEnv("MONGODB_URI", DefaultMongoURI),
		MongoDatabase: getEnv("MONGODB_DATABASE", ""),
		SQL:           sqlCfg,
		CheckSchedule: check,
		uriProvided:   provided,
	}, nil
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// URIProvided reports whether the store connection string came from the environment
func (s StoreConfig) URIProvided() bool {
	return s.uriProvided
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		return "*"
	}
	return origins
}
