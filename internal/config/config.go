package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Backend modes.
const (
	BackendModeHTTP   = "http"
	BackendModeMemory = "memory"
)

// Config holds all configuration for the application
// Following 12-factor app principles, all config is loaded from environment variables
type Config struct {
	Server   ServerConfig
	Backend  BackendConfig
	Session  SessionConfig
	CORS     CORSConfig
	LogLevel string
}

type ServerConfig struct {
	Port            string
	Host            string
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

// BackendConfig selects how the remote catalog/order service is reached.
// Mode "http" talks the RPC contract at BaseURL; mode "memory" runs an
// in-process backend seeded with demo data, for local development.
type BackendConfig struct {
	Mode    string
	BaseURL string
	Timeout int // seconds per RPC call
}

type SessionConfig struct {
	TTLMinutes int // idle session expiry; 0 disables expiry
}

type CORSConfig struct {
	AllowedOrigins []string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			ReadTimeout:     getEnvAsInt("READ_TIMEOUT", 15),
			WriteTimeout:    getEnvAsInt("WRITE_TIMEOUT", 15),
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 30),
		},
		Backend: BackendConfig{
			Mode:    getEnv("BACKEND_MODE", BackendModeMemory),
			BaseURL: getEnv("BACKEND_URL", "http://localhost:9090"),
			Timeout: getEnvAsInt("BACKEND_TIMEOUT", 30),
		},
		Session: SessionConfig{
			TTLMinutes: getEnvAsInt("SESSION_TTL_MINUTES", 720),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsSlice("CORS_ORIGINS", []string{"*"}),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	switch c.Backend.Mode {
	case BackendModeHTTP:
		if c.Backend.BaseURL == "" {
			return fmt.Errorf("BACKEND_URL is required when BACKEND_MODE is http")
		}
	case BackendModeMemory:
	default:
		return fmt.Errorf("invalid backend mode: %s (must be http or memory)", c.Backend.Mode)
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	return strings.Split(valueStr, ",")
}
