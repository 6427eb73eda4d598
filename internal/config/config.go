package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration
type Config struct {
	Env           string `envconfig:"APP_ENV" default:"development"`
	HTTPPort      int    `envconfig:"HTTP_PORT" default:"8080"`
	BotToken      string `envconfig:"BOT_TOKEN" required:"true"`
	ChannelID     int64  `envconfig:"CHANNEL_ID" required:"true"`
	CommandPrefix string `envconfig:"COMMAND_PREFIX" default:"!"`
	Timezone      string `envconfig:"BOT_TIMEZONE" default:"Europe/Paris"`
	DB            DBConfig
	Jobs          JobsConfig
}

// database configuration
type DBConfig struct {
	DSN         string        `envconfig:"DATABASE_URL" required:"true"`
	MaxConns    int32         `envconfig:"DB_MAX_CONNS" default:"10"`
	MaxConnLife time.Duration `envconfig:"DB_MAX_CONN_LIFETIME" default:"1h"`
}

// scheduled job configuration, hours are local to Timezone
type JobsConfig struct {
	ReminderHour int `envconfig:"REMINDER_HOUR" default:"8"`
	RankingHour  int `envconfig:"RANKING_HOUR" default:"20"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
		"test":        true,
	}
	if !validEnvs[c.Env] {
		return fmt.Errorf("invalid environment: %s (must be one of: development, staging, production, test)", c.Env)
	}
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid port: %d (must be between 1 and 65535)", c.HTTPPort)
	}
	if c.ChannelID == 0 {
		return fmt.Errorf("CHANNEL_ID must be a non-zero channel identifier")
	}
	if c.CommandPrefix == "" {
		return fmt.Errorf("COMMAND_PREFIX must not be empty")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid BOT_TIMEZONE %q: %w", c.Timezone, err)
	}
	if c.DB.MaxConns < 1 {
		return fmt.Errorf("DB_MAX_CONNS must be at least 1")
	}
	if c.Jobs.ReminderHour < 0 || c.Jobs.ReminderHour > 23 {
		return fmt.Errorf("REMINDER_HOUR must be between 0 and 23")
	}
	if c.Jobs.RankingHour < 0 || c.Jobs.RankingHour > 23 {
		return fmt.Errorf("RANKING_HOUR must be between 0 and 23")
	}

	return nil
}

// Location resolves the configured time zone. Validate guarantees it loads.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
