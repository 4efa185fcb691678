package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	// Clear any existing env vars that might interfere
	clearEnv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() with defaults failed: %v", err)
	}

	if cfg.Env != EnvDevelopment {
		t.Errorf("Env = %q, want %q", cfg.Env, EnvDevelopment)
	}
	if cfg.CachePath != "" {
		t.Errorf("CachePath = %q, want empty", cfg.CachePath)
	}
	if !cfg.CacheMemory {
		t.Error("CacheMemory = false, want true")
	}
	if cfg.DefaultYear != 0 {
		t.Errorf("DefaultYear = %d, want 0", cfg.DefaultYear)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.LogFormat != "text" {
		t.Errorf("LogFormat = %q, want %q", cfg.LogFormat, "text")
	}
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv()

	t.Setenv("ENV", "production")
	t.Setenv("CACHE_PATH", "/data/ephemeris.db")
	t.Setenv("CACHE_MEMORY", "false")
	t.Setenv("DEFAULT_YEAR", "2024")
	t.Setenv("MAX_ITERATIONS", "40")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Env != EnvProduction {
		t.Errorf("Env = %q, want %q", cfg.Env, EnvProduction)
	}
	if cfg.CachePath != "/data/ephemeris.db" {
		t.Errorf("CachePath = %q, want %q", cfg.CachePath, "/data/ephemeris.db")
	}
	if cfg.CacheMemory {
		t.Error("CacheMemory = true, want false")
	}
	if cfg.DefaultYear != 2024 {
		t.Errorf("DefaultYear = %d, want 2024", cfg.DefaultYear)
	}
	if cfg.MaxIterations != 40 {
		t.Errorf("MaxIterations = %d, want 40", cfg.MaxIterations)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat = %q, want %q", cfg.LogFormat, "json")
	}
}

func TestLoad_Invalid(t *testing.T) {
	clearEnv()
	t.Setenv("DEFAULT_YEAR", "10000")

	if _, err := Load(); err == nil {
		t.Fatal("Load() succeeded with DEFAULT_YEAR=10000")
	}
}

func TestLoad_ParseErrors(t *testing.T) {
	clearEnv()
	t.Setenv("DEFAULT_YEAR", "twenty")
	t.Setenv("CACHE_MEMORY", "maybe")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() succeeded with unparsable values")
	}
	for _, want := range []string{"DEFAULT_YEAR must be an integer", "CACHE_MEMORY must be a boolean"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Load() error = %v, want it to mention %q", err, want)
		}
	}
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv()

	path := filepath.Join(t.TempDir(), "almanac.env")
	content := "DEFAULT_YEAR=1984\nLOG_FORMAT=json\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	// Already-set variables win over the file.
	t.Setenv("LOG_FORMAT", "text")
	t.Cleanup(func() { os.Unsetenv("DEFAULT_YEAR") })

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%q) failed: %v", path, err)
	}
	if cfg.DefaultYear != 1984 {
		t.Errorf("DefaultYear = %d, want 1984", cfg.DefaultYear)
	}
	if cfg.LogFormat != "text" {
		t.Errorf("LogFormat = %q, want %q", cfg.LogFormat, "text")
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Error("Load() succeeded with a missing env file")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name: "valid development config",
			config: Config{
				Env:       EnvDevelopment,
				CachePath: "", // OK in development
				LogLevel:  "info",
				LogFormat: "text",
			},
			wantErr: false,
		},
		{
			name: "valid production config",
			config: Config{
				Env:         EnvProduction,
				CachePath:   "/data/ephemeris.db",
				DefaultYear: 2024,
				LogLevel:    "info",
				LogFormat:   "json",
			},
			wantErr: false,
		},
		{
			name: "production requires cache path",
			config: Config{
				Env:       EnvProduction,
				CachePath: "", // Missing!
				LogLevel:  "info",
				LogFormat: "json",
			},
			wantErr: true,
		},
		{
			name: "default year too high",
			config: Config{
				Env:         EnvDevelopment,
				DefaultYear: 10000,
				LogLevel:    "info",
				LogFormat:   "text",
			},
			wantErr: true,
		},
		{
			name: "negative default year",
			config: Config{
				Env:         EnvDevelopment,
				DefaultYear: -1,
				LogLevel:    "info",
				LogFormat:   "text",
			},
			wantErr: true,
		},
		{
			name: "negative iteration cap",
			config: Config{
				Env:           EnvDevelopment,
				MaxIterations: -5,
				LogLevel:      "info",
				LogFormat:     "text",
			},
			wantErr: true,
		},
		{
			name: "invalid environment",
			config: Config{
				Env:       "invalid",
				LogLevel:  "info",
				LogFormat: "text",
			},
			wantErr: true,
		},
		{
			name: "invalid log level",
			config: Config{
				Env:       EnvDevelopment,
				LogLevel:  "verbose", // Not valid
				LogFormat: "text",
			},
			wantErr: true,
		},
		{
			name: "invalid log format",
			config: Config{
				Env:       EnvDevelopment,
				LogLevel:  "info",
				LogFormat: "xml", // Not valid
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_IsProduction(t *testing.T) {
	cfg := &Config{Env: EnvProduction}
	if !cfg.IsProduction() {
		t.Error("IsProduction() = false, want true")
	}

	cfg.Env = EnvDevelopment
	if cfg.IsProduction() {
		t.Error("IsProduction() = true, want false")
	}
}

func TestConfig_Year(t *testing.T) {
	now := time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)

	cfg := &Config{}
	if got := cfg.Year(now); got != 2026 {
		t.Errorf("Year() = %d, want 2026", got)
	}

	cfg.DefaultYear = 1582
	if got := cfg.Year(now); got != 1582 {
		t.Errorf("Year() = %d, want 1582", got)
	}
}

// clearEnv removes all config-related environment variables
func clearEnv() {
	vars := []string{
		"ENV", "CACHE_PATH", "CACHE_MEMORY", "DEFAULT_YEAR",
		"MAX_ITERATIONS", "LOG_LEVEL", "LOG_FORMAT",
	}
	for _, v := range vars {
		os.Unsetenv(v)
	}
}
