package config

import (
	"log/slog"
	"time"
)

type LogLeveler string

func (l LogLeveler) Level() slog.Level {
	var level slog.Level

	_ = level.UnmarshalText([]byte(l))

	return level
}

// Config holds the client configuration.
type Config struct {
	LogLevel LogLeveler `mapstructure:"LOG_LEVEL"`
	Currency string     `mapstructure:"CURRENCY"`
	API      API        `mapstructure:",squash"`
	Redis    Redis      `mapstructure:",squash"`
}

// API holds the fare-finder endpoint settings.
type API struct {
	BaseURL       string        `mapstructure:"API_BASE_URL"`
	HomeURL       string        `mapstructure:"API_HOME_URL"`
	Timeout       time.Duration `mapstructure:"API_TIMEOUT"`
	MaxRetries    int           `mapstructure:"API_MAX_RETRIES"`
	BackoffBase   time.Duration `mapstructure:"API_BACKOFF_BASE"`
	SessionWarmup bool          `mapstructure:"API_SESSION_WARMUP"`
}

// Redis holds the settings for the optional distributed rate limiter.
// The limiter is only built when Addr is set and RateLimitRPS is positive.
type Redis struct {
	Addr         string `mapstructure:"REDIS_ADDR"`
	Password     string `mapstructure:"REDIS_PASSWORD"`
	DB           int    `mapstructure:"REDIS_DB"`
	RateLimitRPS int    `mapstructure:"RATE_LIMIT_RPS"`
}
