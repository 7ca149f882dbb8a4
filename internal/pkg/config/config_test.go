package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWith_Defaults(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{}))
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.False(t, cfg.DevMode)
	assert.Equal(t, "http://localhost:8081/api", cfg.API.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Equal(t, 5*time.Minute, cfg.Query.StaleTime)
	assert.Equal(t, 10*time.Minute, cfg.Query.CacheTime)
	assert.Equal(t, "file", cfg.Session.Store)
	assert.False(t, cfg.MockAPI.Enabled)
}

func TestLoadWith_Overrides(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"API_BASE_URL":  "https://api.example.com/v1",
		"SESSION_STORE": "redis",
		"REDIS_DB":      "3",
		"DEV_MODE":      "true",
	}))
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com/v1", cfg.API.BaseURL)
	assert.Equal(t, "redis", cfg.Session.Store)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.True(t, cfg.DevMode)
}

func TestLoadWith_RejectsDevModeInProduction(t *testing.T) {
	_, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"APP_ENV":  "production",
		"DEV_MODE": "true",
	}))
	assert.ErrorContains(t, err, "DEV_MODE")
}

func TestLoadWith_RejectsUnknownSessionStore(t *testing.T) {
	_, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"SESSION_STORE": "memcached",
	}))
	assert.ErrorContains(t, err, "SESSION_STORE")
}
