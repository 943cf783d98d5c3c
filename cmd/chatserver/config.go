package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the server configuration loaded from environment variables.
type Config struct {
	// Server
	Port     string
	LogLevel string // debug, info, warn, error

	// Agent stream service
	AgentAPIURL      string
	AgentAssistantID string

	// Description service (optional; detail views degrade without it)
	DescriptionAPIURL      string
	DescriptionAssistantID string
	DescriptionLanguage    string

	Timeout time.Duration
}

// LoadConfig loads configuration from environment variables.
// It loads a .env file if present (silent fail if not found).
func LoadConfig() (*Config, error) {
	godotenv.Load() // Load .env file if present

	cfg := &Config{
		Port:                   getEnvOrDefault("CHAT_PORT", "8000"),
		LogLevel:               getEnvOrDefault("CHAT_LOG_LEVEL", "info"),
		AgentAPIURL:            os.Getenv("AGENT_API_URL"),
		AgentAssistantID:       os.Getenv("AGENT_ASSISTANT_ID"),
		DescriptionAPIURL:      os.Getenv("DESCRIPTION_API_URL"),
		DescriptionAssistantID: getEnvOrDefault("DESCRIPTION_ASSISTANT_ID", "agent"),
		DescriptionLanguage:    getEnvOrDefault("DESCRIPTION_LANGUAGE", "english"),
		Timeout:                getEnvDurationOrDefault("CHAT_TIMEOUT", 60*time.Second),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.AgentAPIURL == "" {
		return fmt.Errorf("AGENT_API_URL is required")
	}
	if c.AgentAssistantID == "" {
		return fmt.Errorf("AGENT_ASSISTANT_ID is required")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
