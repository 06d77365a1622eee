package cmd

import (
	"fmt"
	"log/slog"
	"strings"
)

type Config struct {
	HTTPPort            string
	DBHost              string
	DBPort              string
	DBUser              string
	DBPassword          string
	DBName              string
	DBSslMode           string
	JWTSecret           string
	RabbitMQURL         string
	RabbitMQExchange    string
	LogLevel            string
	OutboxRelaySchedule string
}

const (
	defaultHTTPPort         = "8080"
	defaultRabbitMQExchange = "foodtruck.orders"
)

// WithDefaults fills optional settings left empty in the environment.
func (c Config) WithDefaults() Config {
	if c.HTTPPort == "" {
		c.HTTPPort = defaultHTTPPort
	}
	if c.DBSslMode == "" {
		c.DBSslMode = "disable"
	}
	if c.RabbitMQExchange == "" {
		c.RabbitMQExchange = defaultRabbitMQExchange
	}
	return c
}

// UsesDatabase reports whether orders are stored in Postgres. Without a DB host
// the process keeps everything in memory.
func (c Config) UsesDatabase() bool {
	return c.DBHost != ""
}

// DSN is the Postgres connection string for gorm.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// SlogLevel maps LOG_LEVEL to a slog level, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
