package config

import (
	"fmt"
	"strconv"
	"strings"

	"rental-backend/internal/infrastructure/database"

	"github.com/spf13/viper"
)

// DefaultDatabaseURL keeps local development dependency-free.
const DefaultDatabaseURL = database.SQLitePrefix + "rental.db"

// Config holds application configuration (env + Viper).
type Config struct {
	Env               string
	Port              string
	DatabaseURL       string // Postgres DSN or "sqlite:<path>"
	RedisURL          string // optional; enables request stats and the error log
	CORSAllowedSuffix string
	DevPassword       string
	HealthAdminKey    string
	LogLevel          string
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DATABASE_URL", DefaultDatabaseURL)
	v.SetDefault("LOG_LEVEL", "info")

	cfg := &Config{
		Env:               v.GetString("APP_ENV"),
		Port:              v.GetString("PORT"),
		DatabaseURL:       v.GetString("DATABASE_URL"),
		RedisURL:          v.GetString("REDIS_URL"),
		CORSAllowedSuffix: v.GetString("CORS_ALLOWED_SUFFIX"),
		DevPassword:       v.GetString("DEV_PASSWORD"),
		HealthAdminKey:    v.GetString("HEALTH_ADMIN_KEY"),
		LogLevel:          v.GetString("LOG_LEVEL"),
	}
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return nil, fmt.Errorf("invalid PORT %q", cfg.Port)
	}
	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
