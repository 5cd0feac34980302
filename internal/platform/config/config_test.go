package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{"ONBOARD_ADDR", "ONBOARD_ENV", "REDIS_URL", "ONBOARD_SIGNIN_LIMIT", "ONBOARD_DISABLE_RATE_LIMIT", "ONBOARD_TRUSTED_PROXIES", "ONBOARD_LOCKOUT_ATTEMPTS"} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, ":9090", cfg.MetricsAddr)
	assert.True(t, cfg.IsDevelopment())
	assert.Empty(t, cfg.Redis.URL)
	assert.Equal(t, 10, cfg.RateLimit.AuthLimit)
	assert.Equal(t, time.Minute, cfg.RateLimit.AuthWindow)
	assert.False(t, cfg.RateLimit.Disabled)
	assert.Empty(t, cfg.TrustedProxies)
	assert.Equal(t, 5, cfg.RateLimit.LockoutAttempts)
	assert.Equal(t, 15*time.Minute, cfg.RateLimit.LockoutDuration)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("ONBOARD_ADDR", ":7000")
	t.Setenv("ONBOARD_ENV", "Production")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("REDIS_POOL_SIZE", "32")
	t.Setenv("ONBOARD_SIGNIN_LIMIT", "3")
	t.Setenv("ONBOARD_SIGNIN_WINDOW", "30s")
	t.Setenv("ONBOARD_DISABLE_RATE_LIMIT", "true")
	t.Setenv("ONBOARD_TRUSTED_PROXIES", " 10.0.0.0/8, ,192.0.2.10 ")
	t.Setenv("ONBOARD_LOCKOUT_ATTEMPTS", "3")
	t.Setenv("ONBOARD_LOCKOUT_DURATION", "1h")

	cfg := FromEnv()

	assert.Equal(t, ":7000", cfg.Addr)
	assert.Equal(t, "production", cfg.Environment)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, "redis://localhost:6379/0", cfg.Redis.URL)
	assert.Equal(t, 32, cfg.Redis.PoolSize)
	assert.Equal(t, 3, cfg.RateLimit.AuthLimit)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.AuthWindow)
	assert.True(t, cfg.RateLimit.Disabled)
	assert.Equal(t, []string{"10.0.0.0/8", "192.0.2.10"}, cfg.TrustedProxies)
	assert.Equal(t, 3, cfg.RateLimit.LockoutAttempts)
	assert.Equal(t, time.Hour, cfg.RateLimit.LockoutDuration)
}

func TestFromEnvIgnoresInvalidNumbers(t *testing.T) {
	t.Setenv("ONBOARD_SIGNIN_LIMIT", "-4")
	t.Setenv("ONBOARD_SIGNIN_WINDOW", "soon")

	cfg := FromEnv()

	assert.Equal(t, 10, cfg.RateLimit.AuthLimit)
	assert.Equal(t, time.Minute, cfg.RateLimit.AuthWindow)
}

func TestLoadReadsDotEnv(t *testing.T) {
	t.Setenv("ONBOARD_METRICS_ADDR", "")
	require.NoError(t, os.Unsetenv("ONBOARD_METRICS_ADDR"))

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("ONBOARD_METRICS_ADDR=:9999\n"), 0o600))

	cfg := Load(path)

	assert.Equal(t, ":9999", cfg.MetricsAddr)
}
