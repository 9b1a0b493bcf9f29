package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	StageDev  = "dev"
	StageProd = "prod"
)

type Config struct {
	Stage                  string        `env:"STAGE" envDefault:"dev"`
	Port                   int           `env:"PORT" envDefault:"7171"`
	DatabaseUrl            string        `env:"DATABASE_URL"`
	MigrationDir           string        `env:"MIGRATION_DIR" envDefault:"file://db/migration"`
	SessionCleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"20m"`
	ReconnectGracePeriod   time.Duration `env:"RECONNECT_GRACE_PERIOD" envDefault:"2m"`
}

// AnalyticsEnabled reports whether a database was configured.
func (c Config) AnalyticsEnabled() bool {
	return c.DatabaseUrl != ""
}

func (c Config) Validate() error {
	if c.Stage != StageDev && c.Stage != StageProd {
		return fmt.Errorf("stage must be either %s or %s, got: %q", StageDev, StageProd, c.Stage)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.SessionCleanupInterval <= 0 {
		return errors.New("session cleanup interval must be positive")
	}
	if c.ReconnectGracePeriod <= 0 {
		return errors.New("reconnect grace period must be positive")
	}
	return nil
}

// Load reads .env (outside prod) and then the process environment.
func Load(envFiles ...string) (Config, error) {
	if os.Getenv("STAGE") != StageProd {
		if len(envFiles) == 0 {
			envFiles = []string{".env"}
		}
		if err := godotenv.Load(envFiles...); err != nil {
			log.Println("no env file loaded:", err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
