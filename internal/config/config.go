package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"library-backend/internal/infrastructure/database"
)

// Config holds the whole application configuration.
// Values come from environment variables (optionally seeded from .env by main).
type Config struct {
	App      AppConfig
	HTTP     HTTPConfig
	Database *database.DBConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
	LogLevel    string
}

type HTTPConfig struct {
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
}

var defaults = map[string]any{
	"APP_NAME":    "Library API",
	"APP_ENV":     "development",
	"APP_PORT":    "8080",
	"APP_VERSION": "1.0.0",
	"LOG_LEVEL":   "info",

	"DB_HOST":                "localhost",
	"DB_PORT":                "5432",
	"DB_USER":                "postgres",
	"DB_PASSWORD":            "",
	"DB_NAME":                "library",
	"DB_SSLMODE":             "disable",
	"DB_MAX_CONNS":           "25",
	"DB_MIN_CONNS":           "5",
	"DB_MAX_CONN_LIFETIME":   "5m",
	"DB_MAX_CONN_IDLE_TIME":  "1m",
	"DB_HEALTH_CHECK_PERIOD": "1m",
	"DB_MAX_RETRIES":         "5",
	"DB_RETRY_DELAY":         "1s",
	"DB_CONNECT_TIMEOUT":     "10s",
	"DB_AUTO_MIGRATE":        "true",

	"HTTP_READ_TIMEOUT":     "15s",
	"HTTP_WRITE_TIMEOUT":    "15s",
	"HTTP_IDLE_TIMEOUT":     "60s",
	"HTTP_SHUTDOWN_TIMEOUT": "10s",
	"CORS_ALLOWED_ORIGINS":  "*",
}

func newViper() *viper.Viper {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()
	return v
}

// Load reads the configuration and validates it
func Load() (*Config, error) {
	v := newViper()

	dbCfg, err := loadDatabaseConfig(v)
	if err != nil {
		return nil, err
	}

	httpCfg, err := loadHTTPConfig(v)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Name:        v.GetString("APP_NAME"),
			Environment: v.GetString("APP_ENV"),
			Port:        v.GetString("APP_PORT"),
			Version:     v.GetString("APP_VERSION"),
			LogLevel:    v.GetString("LOG_LEVEL"),
		},
		HTTP:     *httpCfg,
		Database: dbCfg,
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate rejects configurations the server cannot run with
func (c *Config) Validate() error {
	if strings.TrimSpace(c.App.Port) == "" {
		return fmt.Errorf("APP_PORT must not be empty")
	}
	if _, err := strconv.Atoi(c.App.Port); err != nil {
		return fmt.Errorf("invalid APP_PORT %q: %w", c.App.Port, err)
	}

	if c.Database == nil {
		return fmt.Errorf("database config is missing")
	}
	if c.Database.MaxConns < 1 {
		return fmt.Errorf("DB_MAX_CONNS must be at least 1")
	}
	if c.Database.MinConns < 0 || c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS")
	}
	if c.Database.MaxRetries < 1 {
		return fmt.Errorf("DB_MAX_RETRIES must be at least 1")
	}

	if c.IsProduction() && c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD must be set in production")
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func loadHTTPConfig(v *viper.Viper) (*HTTPConfig, error) {
	readTimeout, err := durationValue(v, "HTTP_READ_TIMEOUT")
	if err != nil {
		return nil, err
	}
	writeTimeout, err := durationValue(v, "HTTP_WRITE_TIMEOUT")
	if err != nil {
		return nil, err
	}
	idleTimeout, err := durationValue(v, "HTTP_IDLE_TIMEOUT")
	if err != nil {
		return nil, err
	}
	shutdownTimeout, err := durationValue(v, "HTTP_SHUTDOWN_TIMEOUT")
	if err != nil {
		return nil, err
	}

	return &HTTPConfig{
		ReadTimeout:     readTimeout,
		WriteTimeout:    writeTimeout,
		IdleTimeout:     idleTimeout,
		ShutdownTimeout: shutdownTimeout,
		AllowedOrigins:  splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
	}, nil
}

// Helper functions
func intValue(v *viper.Viper, key string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return value, nil
}

func durationValue(v *viper.Viper, key string) (time.Duration, error) {
	value, err := time.ParseDuration(strings.TrimSpace(v.GetString(key)))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return value, nil
}

func boolValue(v *viper.Viper, key string) (bool, error) {
	value, err := strconv.ParseBool(strings.TrimSpace(v.GetString(key)))
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return value, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
