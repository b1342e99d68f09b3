package config

import (
	"fmt"
	"log"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Placeholder values shipped in .env.example; presence of these means the
// store is NOT configured and the app runs on sample data.
const (
	placeholderStoreURL = "your_store_url"
	placeholderStoreKey = "your_store_access_key"
)

// Config holds application configuration
type Config struct {
	Server ServerConfig
	Store  StoreConfig
	Redis  RedisConfig
	Event  EventConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string
	Host            string
	Environment     string
	AllowedOrigins  []string
	ShutdownTimeout int
}

// StoreConfig holds the hosted record-store connection parameters.
// URL and AccessKey are the two credentials that decide configured state;
// everything else has workable defaults.
type StoreConfig struct {
	URL         string // host[:port] of the hosted Postgres instance
	AccessKey   string // service key, used as the database password
	User        string
	Name        string
	SSLMode     string
	MaxConns    int
	MinConns    int
	AutoMigrate bool
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// EventConfig identifies the active trade event
type EventConfig struct {
	ID string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			Environment:     getEnv("ENVIRONMENT", "development"),
			AllowedOrigins:  []string{getEnv("ALLOWED_ORIGINS", "http://localhost:3000")},
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 10),
		},
		Store: StoreConfig{
			URL:         getEnv("STORE_URL", ""),
			AccessKey:   getEnv("STORE_ACCESS_KEY", ""),
			User:        getEnv("STORE_USER", "postgres"),
			Name:        getEnv("STORE_DB_NAME", "postgres"),
			SSLMode:     getEnv("STORE_SSLMODE", "require"),
			MaxConns:    getEnvAsInt("STORE_MAX_CONNS", 25),
			MinConns:    getEnvAsInt("STORE_MIN_CONNS", 5),
			AutoMigrate: getEnvAsBool("STORE_AUTO_MIGRATE", false),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Event: EventConfig{
			ID: getEnv("EVENT_ID", "sigma-rome-2025"),
		},
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Event.ID == "" {
		return fmt.Errorf("EVENT_ID is required")
	}
	if c.StoreConfigured() && c.Redis.Host == "" {
		return fmt.Errorf("REDIS_HOST is required when the store is configured")
	}
	return nil
}

// StoreConfigured reports whether a real record store is reachable by
// configuration. Both credentials must be present and non-placeholder.
// Every data-access operation branches on this single predicate; mock
// mode is not an error state.
func (c *Config) StoreConfigured() bool {
	if c.Store.URL == "" || c.Store.AccessKey == "" {
		return false
	}
	return c.Store.URL != placeholderStoreURL && c.Store.AccessKey != placeholderStoreKey
}

// GetStoreDSN returns the record store connection string
func (c *Config) GetStoreDSN() string {
	host, port := splitHostPort(c.Store.URL, "5432")
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host,
		port,
		c.Store.User,
		c.Store.AccessKey,
		c.Store.Name,
		c.Store.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

func splitHostPort(url, defaultPort string) (string, string) {
	trimmed := strings.TrimPrefix(strings.TrimPrefix(url, "postgres://"), "postgresql://")
	host, port, err := net.SplitHostPort(trimmed)
	if err != nil {
		return trimmed, defaultPort
	}
	return host, port
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
