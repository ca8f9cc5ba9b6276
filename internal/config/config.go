package config

import (
	"os"
	"time"
)

type Config struct {
	HTTPPort          string
	DatabaseURL       string
	JWTSecret         string
	JWTExpiresIn      time.Duration
	LogLevel          string
	SeedAdminEmail    string
	SeedAdminPassword string
}

func Load() *Config {
	return &Config{
		HTTPPort:          getEnv("HTTP_PORT", "8080"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		JWTExpiresIn:      getDuration("JWT_EXPIRES_IN", 24*time.Hour),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		SeedAdminEmail:    getEnv("SEED_ADMIN_EMAIL", "admin@stockflow.local"),
		SeedAdminPassword: getEnv("SEED_ADMIN_PASSWORD", "changeme"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if s := os.Getenv(key); s != "" {
		if d, err := time.ParseDuration(s); err == nil {
			return d
		}
	}
	return def
}
