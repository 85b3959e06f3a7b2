package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var managedKeys = []string{
	"HTTP_ADDR", "DEFAULT_USER_ID", "DELAY_KYC", "DELAY_PAYMENT",
	"BASIC_LIMIT", "VERIFIED_LIMIT", "CORS_ALLOWED_ORIGINS", "GRPC_ENABLED",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range managedKeys {
		prev, had := os.LookupEnv(key)
		require.NoError(t, os.Unsetenv(key))
		t.Cleanup(func() {
			if had {
				_ = os.Setenv(key, prev)
				return
			}
			_ = os.Unsetenv(key)
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":5000", cfg.HTTPAddr)
	assert.Equal(t, ":50051", cfg.GRPCAddr)
	assert.True(t, cfg.GRPCEnabled)
	assert.Equal(t, "user_123", cfg.DefaultUserID)
	assert.Equal(t, 500*time.Millisecond, cfg.DelayLimitCheck)
	assert.Equal(t, time.Second, cfg.DelayPayment)
	assert.Equal(t, time.Second, cfg.DelayTopUp)
	assert.Equal(t, 1500*time.Millisecond, cfg.DelayKYC)
	assert.Equal(t, int64(2_000_000), cfg.BasicLimit)
	assert.Equal(t, int64(20_000_000), cfg.VerifiedLimit)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Empty(t, cfg.DatabaseURL)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("DELAY_KYC", "0s")
	t.Setenv("VERIFIED_LIMIT", "50000000")
	t.Setenv("GRPC_ENABLED", "false")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, time.Duration(0), cfg.DelayKYC)
	assert.Equal(t, int64(50_000_000), cfg.VerifiedLimit)
	assert.False(t, cfg.GRPCEnabled)
}

func TestLoad_ReadsDotEnvFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DEFAULT_USER_ID=user_456\nDELAY_PAYMENT=250ms\n"), 0o600))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "user_456", cfg.DefaultUserID)
	assert.Equal(t, 250*time.Millisecond, cfg.DelayPayment)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("BASIC_LIMIT", "-1")
	t.Setenv("DELAY_PAYMENT", "-2s")

	_, err := Load(t.TempDir())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "BASIC_LIMIT")
	assert.Contains(t, err.Error(), "DELAY_PAYMENT")
}
