package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "jobs", cfg.DynamoDB.JobsTable)
	assert.Equal(t, "payments", cfg.DynamoDB.PaymentsTable)
	assert.Equal(t, "BRL", cfg.Pricing.Currency)
	assert.Equal(t, 0.15, cfg.Pricing.PlatformFeeRate)
	assert.Equal(t, 3, cfg.Retry.MaxAttempts)
	assert.Equal(t, 50*time.Millisecond, cfg.Retry.Backoff)
	assert.Equal(t, 0.05, cfg.Matching.HubLoadPerJob)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("RETRY_MAX_ATTEMPTS", "5")
	t.Setenv("RETRY_BACKOFF", "10ms")
	t.Setenv("PRICING_STRICT_MATERIALS", "true")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://app.qutlas.io")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.Store.UseMemory())
	assert.Equal(t, 5, cfg.Retry.MaxAttempts)
	assert.Equal(t, 10*time.Millisecond, cfg.Retry.Backoff)
	assert.True(t, cfg.Pricing.StrictMaterials)
	assert.Equal(t, []string{"https://app.qutlas.io"}, cfg.CORS.AllowOrigins)
}

func TestLoadConfig_Invalid(t *testing.T) {
	cases := map[string][2]string{
		"backend":  {"STORE_BACKEND", "postgres"},
		"distance": {"MATCH_DISTANCE_MODE", "manhattan"},
		"load":     {"HUB_LOAD_PER_JOB", "2"},
		"retries":  {"RETRY_MAX_ATTEMPTS", "0"},
		"fee":      {"PLATFORM_FEE_RATE", "-1"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}

func TestNewTestConfig_IsValid(t *testing.T) {
	assert.NoError(t, NewTestConfig().Validate())
}
