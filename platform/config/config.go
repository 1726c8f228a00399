// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultPredictionServiceURL = "https://astrology-application-10.onrender.com/predict"

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
	IsCORSEnabled() bool
}

// PredictionConfig provides settings for the astrology proxy module.
type PredictionConfig interface {
	GetPredictionServiceURL() string
	// GetPredictionTimeout returns zero when no client timeout is enforced.
	GetPredictionTimeout() time.Duration
	IsStrictPayload() bool
}

// ReadingConfig provides settings for the terminal reading client.
type ReadingConfig interface {
	GetProxyURL() string
	GetReadingLogFile() string
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                  string
	HTTPAddr             string
	CORSAllowAll         bool
	CORSOrigins          []string
	CORSAllowCreds       bool
	PredictionServiceURL string
	PredictionTimeout    time.Duration
	StrictPayload        bool
	ProxyURL             string
	ReadingLogFile       string
}

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }
func (c *Config) IsCORSEnabled() bool      { return c.CORSAllowAll || len(c.CORSOrigins) > 0 }

// PredictionConfig implementation
func (c *Config) GetPredictionServiceURL() string     { return c.PredictionServiceURL }
func (c *Config) GetPredictionTimeout() time.Duration { return c.PredictionTimeout }
func (c *Config) IsStrictPayload() bool               { return c.StrictPayload }

// ReadingConfig implementation
func (c *Config) GetProxyURL() string       { return c.ProxyURL }
func (c *Config) GetReadingLogFile() string { return c.ReadingLogFile }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", ""))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	timeout, err := parseDuration(getEnv("PREDICTION_TIMEOUT", "0"))
	if err != nil {
		return nil, fmt.Errorf("PREDICTION_TIMEOUT: %w", err)
	}

	cfg := &Config{
		Env:                  getEnv("APP_ENV", "development"),
		HTTPAddr:             getEnv("HTTP_ADDR", ":8080"),
		CORSAllowAll:         corsAllowAll,
		CORSOrigins:          corsOrigins,
		CORSAllowCreds:       strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "false"), "true"),
		PredictionServiceURL: strings.TrimSpace(getEnv("PREDICTION_SERVICE_URL", defaultPredictionServiceURL)),
		PredictionTimeout:    timeout,
		StrictPayload:        strings.EqualFold(getEnv("PREDICTION_STRICT_PAYLOAD", "false"), "true"),
		ProxyURL:             strings.TrimRight(getEnv("PROXY_URL", "http://localhost:8080"), "/"),
		ReadingLogFile:       getEnv("READING_LOG_FILE", ""),
	}

	if err := requireHTTPURL("PREDICTION_SERVICE_URL", cfg.PredictionServiceURL); err != nil {
		return nil, err
	}
	if err := requireHTTPURL("PROXY_URL", cfg.ProxyURL); err != nil {
		return nil, err
	}
	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func parseDuration(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" || value == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("must not be negative")
	}
	return d, nil
}

func requireHTTPURL(key, value string) error {
	if value == "" {
		return fmt.Errorf("%s is required", key)
	}
	parsed, err := url.Parse(value)
	if err != nil {
		return fmt.Errorf("%s is not a valid URL: %w", key, err)
	}
	if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return fmt.Errorf("%s must be an absolute http(s) URL", key)
	}
	return nil
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
