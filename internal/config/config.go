package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
)

// Store backends.
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendS3       = "s3"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	Database DatabaseConfig
	S3       S3Config
	Listing  ListingConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	UI       UIConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host string `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	Port int    `env:"SERVER_PORT" envDefault:"8080"`
}

// StoreConfig selects where sessions and user products are persisted.
type StoreConfig struct {
	Backend    string `env:"STORE_BACKEND" envDefault:"sqlite"`
	SQLitePath string `env:"STORE_SQLITE_PATH" envDefault:"data/krisik_bazar.db"`
}

// DatabaseConfig holds PostgreSQL configuration, used by the postgres backend.
type DatabaseConfig struct {
	Host            string `env:"DB_HOST" envDefault:"localhost"`
	Port            int    `env:"DB_PORT" envDefault:"5432"`
	User            string `env:"DB_USER" envDefault:"postgres"`
	Password        string `env:"DB_PASSWORD"`
	Database        string `env:"DB_NAME" envDefault:"krisik_bazar"`
	MaxConnections  int    `env:"DB_MAX_CONNECTIONS" envDefault:"10"`
	MinConnections  int    `env:"DB_MIN_CONNECTIONS" envDefault:"1"`
	MaxConnLifetime int    `env:"DB_MAX_CONN_LIFETIME" envDefault:"300"` // seconds
}

// S3Config holds AWS S3 configuration, used by the s3 backend.
type S3Config struct {
	Bucket string `env:"S3_BUCKET"`
	Region string `env:"S3_REGION" envDefault:"us-east-1"`
	Prefix string `env:"S3_PREFIX" envDefault:"store/"` // key prefix within bucket
}

// ListingConfig points at the remote price board.
type ListingConfig struct {
	URL     string        `env:"LISTING_URL" envDefault:"http://localhost:8000/api/prices/"`
	Timeout time.Duration `env:"LISTING_TIMEOUT" envDefault:"10s"`
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"` // "json" or "console"
}

// AuthConfig guards the JSON API. An empty key leaves it open.
type AuthConfig struct {
	APIKey string `env:"API_KEY"`
}

// UIConfig holds page-level settings.
type UIConfig struct {
	InitialPage string `env:"INITIAL_PAGE" envDefault:"home"`
}

// Load loads configuration from the process environment.
func Load() (*Config, error) {
	return LoadFrom(env.ToMap(os.Environ()))
}

// LoadFrom loads configuration from the given variables instead of the process
// environment.
func LoadFrom(environ map[string]string) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	switch c.Store.Backend {
	case BackendMemory:
	case BackendSQLite:
		if c.Store.SQLitePath == "" {
			return fmt.Errorf("sqlite path is required for the sqlite store")
		}
	case BackendPostgres:
		if err := c.Database.Validate(); err != nil {
			return err
		}
	case BackendS3:
		if c.S3.Bucket == "" {
			return fmt.Errorf("S3 bucket is required for the s3 store")
		}
		if c.S3.Region == "" {
			return fmt.Errorf("S3 region is required for the s3 store")
		}
	default:
		return fmt.Errorf("invalid store backend: %s (must be memory, sqlite, postgres or s3)", c.Store.Backend)
	}

	if c.Listing.URL == "" {
		return fmt.Errorf("listing URL is required")
	}
	if _, err := url.ParseRequestURI(c.Listing.URL); err != nil {
		return fmt.Errorf("invalid listing URL: %w", err)
	}
	if c.Listing.Timeout <= 0 {
		return fmt.Errorf("listing timeout must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	if c.UI.InitialPage == "" {
		return fmt.Errorf("initial page is required")
	}

	return nil
}

// Validate checks the settings the postgres backend needs.
func (c *DatabaseConfig) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", c.Port)
	}

	if c.User == "" {
		return fmt.Errorf("database user is required")
	}

	if c.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.MaxConnections < 1 {
		return fmt.Errorf("database max connections must be at least 1")
	}

	if c.MinConnections < 1 {
		return fmt.Errorf("database min connections must be at least 1")
	}

	if c.MinConnections > c.MaxConnections {
		return fmt.Errorf("database min connections cannot exceed max connections")
	}

	return nil
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
