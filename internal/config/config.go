package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/passmint/passmint-go/internal/breach"
)

type Config struct {
	Port               string
	Env                string
	BreachCheckEnabled bool
	BreachBaseURL      string
	BreachTimeout      time.Duration
	RateLimitRPS       float64
	RateLimitBurst     int
}

func Load() Config {
	return Config{
		Port:               getEnv("PORT", "8080"),
		Env:                getEnv("ENV", "development"),
		BreachCheckEnabled: getEnvBool("BREACH_CHECK_ENABLED", true),
		BreachBaseURL:      getEnv("BREACH_API_URL", breach.DefaultBaseURL),
		BreachTimeout:      getEnvDuration("BREACH_CHECK_TIMEOUT", 3*time.Second),
		RateLimitRPS:       getEnvFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst:     getEnvInt("RATE_LIMIT_BURST", 10),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid boolean in environment, using default", "key", key, "value", v)
		return fallback
	}
	return b
}

func getEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		slog.Warn("invalid number in environment, using default", "key", key, "value", v)
		return fallback
	}
	return f
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("invalid integer in environment, using default", "key", key, "value", v)
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("invalid duration in environment, using default", "key", key, "value", v)
		return fallback
	}
	return d
}
