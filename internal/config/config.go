// Package config reads the almanac's settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
// Fields are populated from environment variables.
type Config struct {
	Env string // development, staging, production

	// Ephemeris cache
	CachePath   string // SQLite file for solved crossings, empty disables
	CacheMemory bool   // keep an in-process cache in front of it

	// Engine
	DefaultYear   int // year used when a command is given none, 0 means current
	MaxIterations int // solver iteration cap, 0 means the engine default

	// Logging
	LogLevel  string // debug, info, warn, error
	LogFormat string // json, text
}

// Environment constants
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// Load reads configuration from environment variables. With no arguments it
// first loads ./.env when present; named files must exist. Variables already
// set in the environment win over file values.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		_ = godotenv.Load()
	} else if err := godotenv.Load(envFiles...); err != nil {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	var r reader
	cfg := &Config{
		Env:           r.str("ENV", EnvDevelopment),
		CachePath:     r.str("CACHE_PATH", ""),
		CacheMemory:   r.bool("CACHE_MEMORY", true),
		DefaultYear:   r.int("DEFAULT_YEAR", 0),
		MaxIterations: r.int("MAX_ITERATIONS", 0),
		LogLevel:      r.str("LOG_LEVEL", "info"),
		LogFormat:     r.str("LOG_FORMAT", "text"),
	}

	if err := errors.Join(append(r.errs, cfg.Validate())...); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that all configuration values are valid.
func (c *Config) Validate() error {
	var errs []error

	switch c.Env {
	case EnvDevelopment, EnvStaging, EnvProduction:
	default:
		errs = append(errs, fmt.Errorf("ENV must be one of: development, staging, production; got %q", c.Env))
	}

	// Production runs persist solved crossings
	if c.IsProduction() && c.CachePath == "" {
		errs = append(errs, errors.New("CACHE_PATH is required in production"))
	}

	if c.DefaultYear < 0 || c.DefaultYear > 9999 {
		errs = append(errs, fmt.Errorf("DEFAULT_YEAR must be between 1 and 9999 (or 0), got %d", c.DefaultYear))
	}
	if c.MaxIterations < 0 || c.MaxIterations > 1000 {
		errs = append(errs, fmt.Errorf("MAX_ITERATIONS must be between 0 and 1000, got %d", c.MaxIterations))
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error; got %q", c.LogLevel))
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be one of: json, text; got %q", c.LogFormat))
	}

	return errors.Join(errs...)
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// Year returns DefaultYear, or the year of now when it is unset.
func (c *Config) Year(now time.Time) int {
	if c.DefaultYear != 0 {
		return c.DefaultYear
	}
	return now.Year()
}

// reader looks up variables and remembers values that fail to parse, so a
// typo is reported instead of silently falling back to the default.
type reader struct {
	errs []error
}

func (r *reader) str(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func (r *reader) int(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s must be an integer, got %q", key, v))
		return def
	}
	return n
}

func (r *reader) bool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s must be a boolean, got %q", key, v))
		return def
	}
	return b
}
