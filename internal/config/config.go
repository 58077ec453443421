// internal/config/config.go
//
// Process configuration.
// Load order:
//   1. .env in the working directory if present, or the files passed to
//      Load, which must exist (godotenv; never overrides variables already
//      set in the environment).
//   2. Environment variables parsed into Config (caarlos0/env).
//   3. Command-line flags applied by the caller (see internal/cli).
//   4. Validate, once every override is in place.
//
// Environment variables:
//   PORT=5175
//   LOG_LEVEL=info            zerolog level name
//   LOG_FORMAT=json           json | console
//   CLIENT_ORIGIN=http://localhost:5173
//   STORE_DRIVER=sqlite       memory | sqlite | postgres
//   DATABASE_URL=./data/gifts.db
//   DIGEST_KEY=               optional, at most 64 bytes
//   REQUEST_TIMEOUT=10s
//   PUBLIC_BASE_URL=http://localhost:5173

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Store drivers.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Port           string        `env:"PORT"            envDefault:"5175"`
	LogLevel       string        `env:"LOG_LEVEL"       envDefault:"info"`
	LogFormat      string        `env:"LOG_FORMAT"      envDefault:"json"`
	ClientOrigin   string        `env:"CLIENT_ORIGIN"   envDefault:"http://localhost:5173"`
	StoreDriver    string        `env:"STORE_DRIVER"    envDefault:"sqlite"`
	DatabaseURL    string        `env:"DATABASE_URL"    envDefault:"./data/gifts.db"`
	DigestKey      string        `env:"DIGEST_KEY"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`
	PublicBaseURL  string        `env:"PUBLIC_BASE_URL" envDefault:"http://localhost:5173"`
}

// Load reads .env files and then the environment. With no arguments it
// reads ./.env when present; files named explicitly must exist.
// The result is not validated; callers apply overrides and then call Validate.
func Load(dotenv ...string) (Config, error) {
	if len(dotenv) == 0 {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load .env: %w", err)
		}
	} else if err := godotenv.Load(dotenv...); err != nil {
		return Config{}, fmt.Errorf("load %v: %w", dotenv, err)
	}
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate checks values the env tags cannot express.
func (c Config) Validate() error {
	switch c.StoreDriver {
	case DriverMemory, DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("STORE_DRIVER must be memory, sqlite or postgres (got %q)", c.StoreDriver)
	}
	if c.Port == "" {
		return errors.New("PORT is empty")
	}
	if len(c.DigestKey) > 64 {
		return errors.New("DIGEST_KEY is longer than 64 bytes")
	}
	if c.RequestTimeout <= 0 {
		return errors.New("REQUEST_TIMEOUT must be positive")
	}
	return nil
}

// Addr is the listen address for Port.
func (c Config) Addr() string { return ":" + c.Port }
