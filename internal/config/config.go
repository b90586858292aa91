// /internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	DiscordToken string   `env:"DISCORD_TOKEN"`
	GuildIDs     []string `env:"GUILD_IDS" envSeparator:","`
	StoragePath  string   `env:"STORAGE_PATH" envDefault:"data/datastore.json"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"LOG_FILE"`

	SyncWorkers     int           `env:"SYNC_WORKERS" envDefault:"2"`
	SyncMaxAttempts int           `env:"SYNC_MAX_ATTEMPTS" envDefault:"5"`
	SyncDelay       time.Duration `env:"SYNC_DELAY" envDefault:"25ms"`
}

// New loads .env if present, then reads the environment.
func New() (*Config, error) {
	// A missing .env is normal in containers.
	_ = godotenv.Load()
	return parse(env.Options{})
}

func parse(opts env.Options) (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if cfg.SyncWorkers < 1 {
		cfg.SyncWorkers = 1
	}
	if cfg.SyncMaxAttempts < 1 {
		cfg.SyncMaxAttempts = 1
	}
	return &cfg, nil
}

// Validate checks what the bot needs to connect. Offline tools skip it.
func (c *Config) Validate() error {
	if c.DiscordToken == "" {
		return errors.New("DISCORD_TOKEN is not set")
	}
	if c.StoragePath == "" {
		return errors.New("STORAGE_PATH is empty")
	}
	return nil
}
