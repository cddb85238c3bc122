// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DataDir             string // Base directory for the client cache database (always absolute)
	LogLevel            string
	Port                int
	DevMode             bool
	AnthropicAPIKey     string        // Optional - narrative analysis falls back to heuristics without it
	NarrativeModel      string        // Claude model for narrative diagnostics
	NarrativeTimeout    time.Duration // Deadline for a single narrative provider call
	CoinGeckoAPIKey     string        // Optional demo API key for higher rate limits
	TopCoinsRefreshCron string        // Cron schedule for warming the top-coins cache
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	// Resolve the data directory for the cache database. Defaults to ./data,
	// always resolved to an absolute path and created if missing.
	dataDir := getEnv("DIAG_DATA_DIR", "data")
	absDataDir, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory path: %w", err)
	}
	if err := os.MkdirAll(absDataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	cfg := &Config{
		DataDir:             absDataDir,
		Port:                getEnvAsInt("PORT", 8080),
		DevMode:             getEnvAsBool("DEV_MODE", false),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		AnthropicAPIKey:     getEnv("ANTHROPIC_API_KEY", ""),
		NarrativeModel:      getEnv("NARRATIVE_MODEL", "claude-sonnet-4-20250514"),
		NarrativeTimeout:    getEnvAsDuration("NARRATIVE_TIMEOUT", 25*time.Second),
		CoinGeckoAPIKey:     getEnv("COINGECKO_API_KEY", ""),
		TopCoinsRefreshCron: getEnv("TOP_COINS_REFRESH_CRON", "@every 1h"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.NarrativeTimeout <= 0 {
		return fmt.Errorf("narrative timeout must be positive, got %s", c.NarrativeTimeout)
	}
	// Anthropic credentials are optional - the engine has a full heuristic
	// fallback path and must work without them.
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
