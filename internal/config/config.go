package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Storage backends selectable with DB_DRIVER.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"dev"`
	Host        string `env:"HOST" envDefault:"127.0.0.1"`
	Port        string `env:"PORT" envDefault:"8080"`

	// Storage
	DBDriver    string `env:"DB_DRIVER" envDefault:"sqlite"`
	DBPath      string `env:"DB_PATH"`
	DatabaseURL string `env:"DATABASE_URL"`
	TablePrefix string `env:"TABLE_PREFIX"`

	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:1420,tauri://localhost"`

	// Logging
	LogDir      string `env:"LOG_DIR"`
	LogMaxFiles int    `env:"LOG_MAX_FILES" envDefault:"10"`
	Debug       bool   `env:"DEBUG"`
}

// Load parses the environment into a Config and fills the derived defaults.
// Callers load .env files (godotenv) before calling it.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if cfg.TablePrefix == "" {
		cfg.TablePrefix = getTablePrefix(cfg.Environment, cfg.DBDriver)
	}
	if _, set := os.LookupEnv("DEBUG"); !set {
		cfg.Debug = cfg.Environment != "prod"
	}

	switch cfg.DBDriver {
	case DriverSQLite:
		if cfg.DBPath == "" {
			path, err := defaultDBPath()
			if err != nil {
				return nil, err
			}
			cfg.DBPath = path
		}
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required when DB_DRIVER=%s", DriverPostgres)
		}
	case DriverMemory:
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q (want %s, %s or %s)",
			cfg.DBDriver, DriverSQLite, DriverPostgres, DriverMemory)
	}

	return cfg, nil
}

// Addr is the listen address of the RPC server.
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

// getTablePrefix returns the table prefix based on environment. The local
// SQLite file belongs to one environment, so it has none.
func getTablePrefix(env, driver string) string {
	if driver != DriverPostgres {
		return ""
	}
	switch strings.ToLower(env) {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func defaultDBPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(dir, "lotuslab", "lotuslab.db"), nil
}
