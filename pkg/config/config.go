package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DefaultDatasetURL is the versioned upstream location of the hourly BTC OHLCV feed
const DefaultDatasetURL = "https://raw.githubusercontent.com/mouadja02/bitcoin-hourly-ohclv-dataset/main/btc-hourly-price_2015_2025.csv"

// Config holds all configuration for the application
// ⭐ SSOT: 모든 환경변수는 여기서만 읽음
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Database (optional)
	Database DatabaseConfig

	// Redis (optional)
	Redis RedisConfig

	// Upstream dataset
	Dataset DatasetConfig

	// Raw data validation thresholds
	Validation ValidationConfig

	// Model artifacts
	ModelsDir string

	// Scheduler
	Scheduler SchedulerConfig

	// API
	APIRateLimit float64
	APIRateBurst int

	// Logging
	LogLevel  string
	LogFormat string

	// Monitoring
	MetricsEnabled bool
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	URL string

	// Connection Pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// Enabled reports whether a database connection is configured
func (d DatabaseConfig) Enabled() bool {
	return d.URL != ""
}

// DatasetConfig describes where the raw CSV feed lives and how it is fetched
type DatasetConfig struct {
	URL          string
	FetchTimeout time.Duration
	FetchRetries int // 0 = a failed fetch is final

	// Upstream fetch budget, enforced through Redis when enabled
	RateLimit  int
	RateWindow time.Duration
}

// ValidationConfig holds the raw data validation thresholds
type ValidationConfig struct {
	MinRows      int
	MinTimestamp int64
	MaxPrice     float64
	MinPrice     float64
}

// SchedulerConfig holds periodic revalidation settings
type SchedulerConfig struct {
	ValidationSchedule string
	MaxRetries         int
	RetryDelay         time.Duration
}

// Load reads configuration from environment variables
// ⭐ SSOT: 이 함수만 os.Getenv()를 호출함
func Load() (*Config, error) {
	// Try multiple paths for .env file
	loadEnvFile()

	cfg := &Config{
		// Server
		Port: getEnv("PORT", "8089"),
		Env:  getEnv("ENV", "development"),

		// Database
		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 25),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 2),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		// Redis
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
		},

		Dataset: DatasetConfig{
			URL:          getEnv("DATASET_URL", DefaultDatasetURL),
			FetchTimeout: getEnvAsDuration("DATASET_FETCH_TIMEOUT", "60s"),
			FetchRetries: getEnvAsInt("DATASET_FETCH_RETRIES", 0),
			RateLimit:    getEnvAsInt("DATASET_RATE_LIMIT", 10),
			RateWindow:   getEnvAsDuration("DATASET_RATE_WINDOW", "1h"),
		},

		Validation: ValidationConfig{
			MinRows:      getEnvAsInt("VALIDATION_MIN_ROWS", 96000),
			MinTimestamp: getEnvAsInt64("VALIDATION_MIN_TIMESTAMP", 1416031200), // 2014-11-15
			MaxPrice:     getEnvAsFloat("VALIDATION_MAX_PRICE", 500000),
			MinPrice:     getEnvAsFloat("VALIDATION_MIN_PRICE", 0),
		},

		ModelsDir: getEnv("MODELS_DIR", filepath.Join("outputs", "models")),

		Scheduler: SchedulerConfig{
			ValidationSchedule: getEnv("VALIDATION_SCHEDULE", "0 0 * * * *"),
			MaxRetries:         getEnvAsInt("SCHEDULER_MAX_RETRIES", 0),
			RetryDelay:         getEnvAsDuration("SCHEDULER_RETRY_DELAY", "1m"),
		},

		APIRateLimit: getEnvAsFloat("API_RATE_LIMIT", 1),
		APIRateBurst: getEnvAsInt("API_RATE_BURST", 3),

		// Logging
		LogLevel:  getEnv("LOG_LEVEL", "debug"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		// Monitoring
		MetricsEnabled: getEnvAsBool("METRICS_ENABLED", true),
	}

	// Validate configuration
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if configuration values are usable
func (c *Config) validate() error {
	// Validate environment
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	u, err := url.Parse(c.Dataset.URL)
	if err != nil {
		return fmt.Errorf("DATASET_URL is invalid: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("DATASET_URL must use http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("DATASET_URL has no host")
	}

	if c.Validation.MinRows <= 0 {
		return fmt.Errorf("VALIDATION_MIN_ROWS must be positive")
	}
	if c.Validation.MaxPrice <= c.Validation.MinPrice {
		return fmt.Errorf("VALIDATION_MAX_PRICE must be greater than VALIDATION_MIN_PRICE")
	}

	if c.Dataset.FetchRetries < 0 {
		return fmt.Errorf("DATASET_FETCH_RETRIES must not be negative")
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	// Try paths in order of priority
	paths := []string{
		".env",         // Current directory
		"backend/.env", // From project root
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		// Fallback to default
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
