package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("API_BASE_URL", "http://api.example.com/api/")

	cfg := LoadConfig()

	assert.Equal(t, 8081, cfg.ServerPort)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "http://api.example.com/api", cfg.API.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.API.Timeout)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("API_TIMEOUT_SECONDS", "3")
	t.Setenv("SESSION_TOKEN", "  abc  ")
	t.Setenv("CORS_ORIGINS", "http://a.test, ,http://b.test")

	cfg := LoadConfig()

	assert.Equal(t, 9000, cfg.ServerPort)
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	assert.Equal(t, "abc", cfg.API.SessionToken)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
}

func TestGetEnvIntFallsBackOnGarbage(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-port")

	assert.Equal(t, 8081, LoadConfig().ServerPort)
}
