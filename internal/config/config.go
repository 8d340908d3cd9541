package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds the runtime settings, all overridable via environment
// variables. DATABASE_URL is the only one without a usable default.
type Config struct {
	Port          int
	DatabaseURL   string
	RedisAddr     string
	JWTSecret     string
	ImportWorkers int
}

func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", 8080)
	v.SetDefault("REDIS_ADDR", "catalog-redis:6379")
	v.SetDefault("JWT_SECRET", "super-secret-key") // override in prod
	v.SetDefault("IMPORT_WORKERS", 4)

	cfg := &Config{
		Port:          v.GetInt("PORT"),
		DatabaseURL:   v.GetString("DATABASE_URL"),
		RedisAddr:     v.GetString("REDIS_ADDR"),
		JWTSecret:     v.GetString("JWT_SECRET"),
		ImportWorkers: v.GetInt("IMPORT_WORKERS"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("environment variable DATABASE_URL not found")
	}
	if cfg.ImportWorkers < 1 {
		return nil, fmt.Errorf("IMPORT_WORKERS must be greater than zero")
	}

	return cfg, nil
}
