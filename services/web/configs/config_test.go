package configs

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoad_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg, err := Load(zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "http://127.0.0.1:8000", cfg.BackendBaseURL)
	assert.Equal(t, 60*time.Second, cfg.BackendResponseHeaderTimeout)
	assert.Equal(t, SessionStoreMemory, cfg.SessionStore)
	assert.Zero(t, cfg.SessionTTL)
	assert.Equal(t, 2*time.Minute, cfg.BusyTTL)
	assert.False(t, cfg.CookieSecure)
}

func TestLoad_EnvOverrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("APP_PORT", "9090")
	t.Setenv("APP_BACKEND_BASE_URL", "https://risk.example.com")
	t.Setenv("APP_SESSION_STORE", "redis")
	t.Setenv("APP_REDIS_ADDR", "localhost:6379")
	t.Setenv("APP_SESSION_TTL", "12h")
	t.Setenv("APP_COOKIE_SECURE", "true")

	cfg, err := Load(zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "https://risk.example.com", cfg.BackendBaseURL)
	assert.Equal(t, SessionStoreRedis, cfg.SessionStore)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 12*time.Hour, cfg.SessionTTL)
	assert.True(t, cfg.CookieSecure)
}

func TestLoad_Invalid(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("APP_SESSION_STORE", "redis")
	t.Setenv("APP_BACKEND_BASE_URL", "not-a-url")

	_, err := Load(zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BACKEND_BASE_URL")
	assert.Contains(t, err.Error(), "REDIS_ADDR")
}
