// Package config loads service configuration from the environment and an optional .env file.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	DefaultPort           = "8080"
	DefaultMaxUploadBytes = 10 << 20
)

// Config holds server configuration
type Config struct {
	Port           string
	GeminiAPIKey   string
	GeminiModel    string
	ProfilePath    string // dashboard profile YAML; empty uses the built-in sample
	LogLevel       string
	GinMode        string
	MaxUploadBytes int64
}

// Load reads .env files (if any) and then the environment. Values already present in the
// environment win over .env entries.
func Load(envFiles ...string) (*Config, error) {
	// Missing .env is normal outside local development
	_ = godotenv.Load(envFiles...)

	cfg := &Config{
		Port:           getenv("PORT", DefaultPort),
		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		GeminiModel:    os.Getenv("GEMINI_MODEL"),
		ProfilePath:    os.Getenv("DASHBOARD_PROFILE"),
		LogLevel:       getenv("LOG_LEVEL", "info"),
		GinMode:        os.Getenv("GIN_MODE"),
		MaxUploadBytes: DefaultMaxUploadBytes,
	}

	if raw := os.Getenv("MAX_UPLOAD_BYTES"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("config error: MAX_UPLOAD_BYTES must be an integer: %w", err)
		}
		cfg.MaxUploadBytes = n
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("config error: invalid PORT %q", c.Port)
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("config error: MAX_UPLOAD_BYTES must be positive")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config error: unknown LOG_LEVEL %q", c.LogLevel)
	}
	switch c.GinMode {
	case "", "debug", "release", "test":
	default:
		return fmt.Errorf("config error: unknown GIN_MODE %q", c.GinMode)
	}
	return nil
}

// DraftingEnabled reports whether persona drafting can reach Gemini.
func (c *Config) DraftingEnabled() bool {
	return c.GeminiAPIKey != ""
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
