package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config carries the service's runtime settings, read from the environment
// with an optional .env file.
type Config struct {
	Port           string
	Storage        string // "memory" or "postgres"
	PostgresURL    string
	KafkaBrokers   string
	CloserInterval time.Duration
	LockTimeout    time.Duration
}

// Load reads configuration from .env (when present) and the process environment
func Load() Config {
	// Missing .env is fine; the environment wins either way.
	_ = godotenv.Load()

	return Config{
		Port:           getPort(),
		Storage:        getEnv("STORAGE", "memory"),
		PostgresURL:    getEnv("POSTGRES_URL", ""),
		KafkaBrokers:   getEnv("KAFKA_BROKERS", ""),
		CloserInterval: getDuration("CLOSER_INTERVAL", 60*time.Second),
		LockTimeout:    getDuration("LOCK_TIMEOUT", 2*time.Second),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

// getPort returns the server port from env or defaults to ":8080"
func getPort() string {
	if p := os.Getenv("PORT"); p != "" {
		return fmt.Sprintf(":%s", p)
	}
	return ":8080"
}
