package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Environment represents the current runtime environment
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	Production  Environment = "production"
)

// GetEnvironment determines the current environment from ENV.
func GetEnvironment() Environment {
	switch os.Getenv("ENV") {
	case "production":
		return Production
	case "test":
		return Test
	default:
		return Development
	}
}

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerHost string
	ServerPort string
	AppURL     string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// JWT configuration
	JWTSecret string

	// Media storage and video worker
	MediaDir      string
	VideoQueueKey string
}

// LoadConfig reads configuration from environment variables. Development and
// test get local defaults; production requires every sensitive value to be
// set explicitly.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerHost:    getEnv("SERVER_HOST", "0.0.0.0"),
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		AppURL:        getEnv("APP_URL", "http://localhost:8080"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        getEnv("DB_NAME", "cookbook"),
		DBSSLMode:     getEnv("DB_SSL_MODE", "disable"),
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		MediaDir:      getEnv("MEDIA_DIR", "static/uploads"),
		VideoQueueKey: getEnv("VIDEO_QUEUE_KEY", "cookbook:video-jobs"),
	}

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	cfg.RedisDB = redisDB

	if GetEnvironment() != Production && cfg.JWTSecret == "" {
		cfg.JWTSecret = "dev-only-jwt-secret"
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	var problems []string

	if cfg.JWTSecret == "" {
		problems = append(problems, "JWT_SECRET is required")
	}
	if GetEnvironment() == Production {
		if cfg.DBPassword == "" {
			problems = append(problems, "DB_PASSWORD is required in production")
		}
		if cfg.DBSSLMode == "disable" {
			problems = append(problems, "DB_SSL_MODE must not be disable in production")
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%s", strings.Join(problems, "; "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
