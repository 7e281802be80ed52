// Package config loads process configuration from the environment.
// It is read once in main and handed to constructors; nothing reads it globally.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config groups application settings.
type Config struct {
	App  AppConfig
	DB   DBConfig
	JWT  JWTConfig
	HTTP HTTPConfig
}

// AppConfig holds general settings.
type AppConfig struct {
	Env      string // development, production
	LogLevel string
}

// Development reports whether pretty logs and verbose errors are wanted.
func (c AppConfig) Development() bool {
	return c.Env == "development"
}

// DBConfig holds PostgreSQL settings.
type DBConfig struct {
	URL              string
	MaxConns         int32
	MinConns         int32
	StatementTimeout time.Duration
	Migrate          bool
}

// JWTConfig holds token settings.
type JWTConfig struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr returns host:port.
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load reads configuration from environment variables and, when present, a .env file
// in the working directory. Environment variables win.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		App: AppConfig{
			Env:      v.GetString("APP_ENV"),
			LogLevel: v.GetString("LOG_LEVEL"),
		},
		DB: DBConfig{
			URL:              v.GetString("DATABASE_URL"),
			MaxConns:         v.GetInt32("DB_MAX_CONNS"),
			MinConns:         v.GetInt32("DB_MIN_CONNS"),
			StatementTimeout: v.GetDuration("DB_STATEMENT_TIMEOUT"),
			Migrate:          v.GetBool("DB_MIGRATE"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("JWT_SECRET"),
			Issuer: v.GetString("JWT_ISSUER"),
			TTL:    v.GetDuration("JWT_TTL"),
		},
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: v.GetInt("HTTP_PORT"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_MAX_CONNS", 25)
	v.SetDefault("DB_MIN_CONNS", 2)
	v.SetDefault("DB_STATEMENT_TIMEOUT", 30*time.Second)
	v.SetDefault("DB_MIGRATE", true)
	v.SetDefault("JWT_ISSUER", "stockkeeper")
	v.SetDefault("JWT_TTL", time.Hour)
	v.SetDefault("HTTP_HOST", "0.0.0.0")
	v.SetDefault("HTTP_PORT", 8080)
}

func (c *Config) validate() error {
	if c.DB.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.DB.MinConns > c.DB.MaxConns {
		return fmt.Errorf("DB_MIN_CONNS (%d) exceeds DB_MAX_CONNS (%d)", c.DB.MinConns, c.DB.MaxConns)
	}
	return nil
}
