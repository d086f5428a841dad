package config

import (
	"github.com/spf13/viper"

	"library-backend/internal/infrastructure/database"
)

// LoadDatabaseConfig reads only the DB_* keys, for tools that need a pool without the HTTP side
func LoadDatabaseConfig() (*database.DBConfig, error) {
	return loadDatabaseConfig(newViper())
}

func loadDatabaseConfig(v *viper.Viper) (*database.DBConfig, error) {
	// Parse integers
	port, err := intValue(v, "DB_PORT")
	if err != nil {
		return nil, err
	}
	maxConns, err := intValue(v, "DB_MAX_CONNS")
	if err != nil {
		return nil, err
	}
	minConns, err := intValue(v, "DB_MIN_CONNS")
	if err != nil {
		return nil, err
	}
	maxRetries, err := intValue(v, "DB_MAX_RETRIES")
	if err != nil {
		return nil, err
	}

	// Parse durations
	maxConnLifetime, err := durationValue(v, "DB_MAX_CONN_LIFETIME")
	if err != nil {
		return nil, err
	}
	maxConnIdleTime, err := durationValue(v, "DB_MAX_CONN_IDLE_TIME")
	if err != nil {
		return nil, err
	}
	healthCheckPeriod, err := durationValue(v, "DB_HEALTH_CHECK_PERIOD")
	if err != nil {
		return nil, err
	}
	retryDelay, err := durationValue(v, "DB_RETRY_DELAY")
	if err != nil {
		return nil, err
	}
	connectTimeout, err := durationValue(v, "DB_CONNECT_TIMEOUT")
	if err != nil {
		return nil, err
	}

	autoMigrate, err := boolValue(v, "DB_AUTO_MIGRATE")
	if err != nil {
		return nil, err
	}

	return &database.DBConfig{
		Host:              v.GetString("DB_HOST"),
		Port:              port,
		Username:          v.GetString("DB_USER"),
		Password:          v.GetString("DB_PASSWORD"),
		DBName:            v.GetString("DB_NAME"),
		SSLMode:           v.GetString("DB_SSLMODE"),
		MaxConns:          int32(maxConns),
		MinConns:          int32(minConns),
		MaxConnLifetime:   maxConnLifetime,
		MaxConnIdleTime:   maxConnIdleTime,
		HealthCheckPeriod: healthCheckPeriod,
		MaxRetries:        maxRetries,
		RetryDelay:        retryDelay,
		ConnectTimeout:    connectTimeout,
		AutoMigrate:       autoMigrate,
	}, nil
}
