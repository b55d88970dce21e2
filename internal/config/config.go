package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration for the application
type Config struct {
	API     APIConfig
	Redis   RedisConfig
	Content ContentConfig
}

// APIConfig holds HTTP server configuration
type APIConfig struct {
	Addr        string
	BearerToken string
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// ContentConfig holds reference-content configuration
type ContentConfig struct {
	// DataDir is the directory holding the reference-data JSON collections
	DataDir string

	// CoreSources is the allow-list applied when the source filter is on.
	// Comma separated, e.g. "PHB,SRD".
	CoreSources []string

	// FilterSources hides non-core content from listings when true
	FilterSources bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		API: APIConfig{
			Addr:        getEnvOrDefault("API_ADDR", ":8080"),
			BearerToken: os.Getenv("API_BEARER_TOKEN"),
		},
		Redis: RedisConfig{
			Addr:     getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvAsIntOrDefault("REDIS_DB", 0),
		},
		Content: ContentConfig{
			DataDir:       getEnvOrDefault("CONTENT_DIR", "data"),
			CoreSources:   splitList(getEnvOrDefault("CORE_SOURCES", "PHB,SRD")),
			FilterSources: getEnvAsBoolOrDefault("FILTER_SOURCES", true),
		},
	}

	// Validate required fields
	if cfg.API.BearerToken == "" {
		return nil, fmt.Errorf("API_BEARER_TOKEN is required")
	}
	if cfg.Content.DataDir == "" {
		return nil, fmt.Errorf("CONTENT_DIR is required")
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
