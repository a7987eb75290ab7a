package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds environment-based settings
type Config struct {
	DatabaseURL    string
	MigrationsPath string
	JWTSecret      string
	ServerAddress  string

	RedisAddress  string
	RedisUsername string
	RedisPassword string

	MQTTBrokerURL string

	// SchedulerInterval is the cadence of the built-in application-job
	// ticker; it doubles as the per-run timeout. Zero disables the ticker
	// (runs then only happen through the trigger endpoint).
	SchedulerInterval time.Duration
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	jwt := os.Getenv("JWT_SECRET")
	if jwt == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	addr := os.Getenv("SERVER_ADDRESS")
	if addr == "" {
		addr = ":8080"
	}
	migrations := os.Getenv("MIGRATIONS_PATH")
	if migrations == "" {
		migrations = "./migrations"
	}

	interval := time.Minute
	if raw := os.Getenv("SCHEDULER_INTERVAL"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid SCHEDULER_INTERVAL: %w", err)
		}
		interval = parsed
	}

	return &Config{
		DatabaseURL:       dbURL,
		MigrationsPath:    migrations,
		JWTSecret:         jwt,
		ServerAddress:     addr,
		RedisAddress:      os.Getenv("REDIS_ADDRESS"),
		RedisUsername:     os.Getenv("REDIS_USERNAME"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		MQTTBrokerURL:     os.Getenv("MQTT_BROKER_URL"),
		SchedulerInterval: interval,
	}, nil
}
