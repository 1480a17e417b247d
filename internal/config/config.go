// Package config handles resolving configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"net"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/adrg/xdg"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/stolasapp/courseware/internal/storage/db"
)

// Config contains the server configuration parameters.
type Config struct {
	// Host is the interface to listen on. Empty listens on all interfaces.
	Host string `env:"HOST"`
	// Port is the TCP port to listen on.
	Port int `env:"PORT" envDefault:"5000"`
	// LogLevel is one of debug, info, warn, or error.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	// LogFormat is text or json. Empty picks text on a terminal and JSON
	// otherwise.
	LogFormat string `env:"LOG_FORMAT"`
	// DevMode enables echo debug output and source locations in logs.
	DevMode bool `env:"DEV_MODE" envDefault:"false"`
	// GlobalErrorLogging writes internal errors and panic stacks to the log.
	GlobalErrorLogging bool `env:"ENABLE_GLOBAL_ERROR_LOGGING" envDefault:"false"`
	// APIPrefix is the path prefix all resource routes are mounted under.
	APIPrefix string `env:"API_PREFIX" envDefault:"/api"`
	// CORSOrigins are the origins allowed to call the API.
	CORSOrigins []string `env:"CORS_ORIGINS" envDefault:"*" envSeparator:","`
	Database    Database `envPrefix:"DATABASE_"`
}

// Database contains database connection parameters.
type Database struct {
	Driver db.Dialect `env:"DRIVER" envDefault:"sqlite"`
	// DSN is the sqlite file path or postgres connection string. For sqlite,
	// it defaults to a file under the XDG data home.
	DSN string `env:"DSN"`
}

// Address returns the host:port the server listens on.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// DefaultSQLitePath is the database file used when no DSN is configured.
func DefaultSQLitePath() string {
	return filepath.Join(xdg.DataHome, "courseware", "db.sqlite")
}

// Load reads the configuration from the environment, after overlaying any
// envFiles (in .env format), and validates it for completeness.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) > 0 {
		if err := godotenv.Overload(envFiles...); err != nil {
			return nil, fmt.Errorf("failed to load env file: %w", err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Database.DSN == "" && cfg.Database.Driver == db.DialectSQLite {
		cfg.Database.DSN = DefaultSQLitePath()
	}
	cfg.APIPrefix = "/" + strings.Trim(cfg.APIPrefix, "/")
	if cfg.APIPrefix == "/" {
		cfg.APIPrefix = ""
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range", c.Port))
	}
	if !c.Database.Driver.Valid() {
		errs = append(errs, fmt.Errorf("unsupported database driver %q", c.Database.Driver))
	}
	if c.Database.DSN == "" {
		errs = append(errs, errors.New("database dsn is required"))
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("unsupported log format %q", c.LogFormat))
	}
	return errors.Join(errs...)
}
