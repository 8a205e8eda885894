package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the process settings read from the environment.
type Config struct {
	Port         string
	GinMode      string
	JWTSecret    string
	SessionTTL   time.Duration
	SearchTTL    time.Duration
	CookieSecure bool

	RedisAddr     string
	RedisUser     string
	RedisPassword string
}

const devJWTSecret = "bukarum-dev-secret"

func LoadConfig() Config {
	cfg := Config{
		Port:          envOrDefault("PORT", "8080"),
		GinMode:       envOrDefault("GIN_MODE", "debug"),
		JWTSecret:     envOrDefault("JWT_SECRET", devJWTSecret),
		SessionTTL:    envDuration("SESSION_TTL", 24*time.Hour),
		SearchTTL:     envDuration("SEARCH_TTL", 30*time.Minute),
		CookieSecure:  envBool("COOKIE_SECURE", false),
		RedisAddr:     strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		RedisUser:     strings.TrimSpace(os.Getenv("REDIS_USER")),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
	}
	if cfg.JWTSecret == devJWTSecret {
		log.Println("⚠️  JWT_SECRET not set; using the development secret")
	}
	return cfg
}

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

// envDuration accepts Go durations ("45m") or plain seconds ("2700").
func envDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	if d, err := time.ParseDuration(raw); err == nil && d > 0 {
		return d
	}
	if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	log.Printf("warning: invalid %s=%q, using %s", key, raw, def)
	return def
}

func envBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		log.Printf("warning: invalid %s=%q, using %v", key, raw, def)
		return def
	}
	return b
}
