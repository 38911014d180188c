package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort int
	LogLevel   string
	API        APIConfig
	CORS       CORSConfig
}

type APIConfig struct {
	BaseURL      string
	Timeout      time.Duration
	SessionToken string
}

type CORSConfig struct {
	AllowedOrigins []string
}

func LoadConfig() Config {
	if os.Getenv("ENV") == "dev" {
		godotenv.Load()
	}

	apiConfig := APIConfig{
		BaseURL:      strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:5000/api"), "/"),
		Timeout:      time.Duration(getEnvInt("API_TIMEOUT_SECONDS", 15)) * time.Second,
		SessionToken: strings.TrimSpace(getEnv("SESSION_TOKEN", "")),
	}

	return Config{
		ServerPort: getEnvInt("SERVER_PORT", 8081),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		API:        apiConfig,
		CORS: CORSConfig{
			AllowedOrigins: getEnvList("CORS_ORIGINS", []string{"*"}),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if valueStr, exists := os.LookupEnv(key); exists {
		var value int
		if _, err := fmt.Sscanf(valueStr, "%d", &value); err != nil {
			return defaultValue
		}
		return value
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	var items []string
	for _, part := range strings.Split(raw, ",") {
		if item := strings.TrimSpace(part); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}
