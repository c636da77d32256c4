package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	Gateway GatewayConfig
	Logger  LoggerConfig
}

// GatewayConfig holds Litle gateway credentials and endpoint selection
type GatewayConfig struct {
	MerchantID string // Litle merchant key
	Username   string // API user for the authentication block
	Password   string // API password for the authentication block
	Test       bool   // Route to the certification endpoints
	Timeout    int    // Request timeout in seconds (default: 30)
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level       string // debug, info, warn, error
	Development bool
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Gateway: GatewayConfig{
			MerchantID: getEnv("LITLE_MERCHANT_ID", ""),
			Username:   getEnv("LITLE_USERNAME", ""),
			Password:   getEnv("LITLE_PASSWORD", ""),
			Test:       getEnvAsBool("LITLE_TEST", true),
			Timeout:    getEnvAsInt("LITLE_TIMEOUT", 30),
		},
		Logger: LoggerConfig{
			Level:       getEnv("LOG_LEVEL", "info"),
			Development: getEnvAsBool("LOG_DEVELOPMENT", false),
		},
	}

	// Validate required fields
	if cfg.Gateway.Username == "" {
		return nil, fmt.Errorf("LITLE_USERNAME is required")
	}
	if cfg.Gateway.Password == "" {
		return nil, fmt.Errorf("LITLE_PASSWORD is required")
	}

	return cfg, nil
}

// getEnv retrieves an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
