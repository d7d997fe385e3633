package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		DatabaseURL:        "postgres://localhost/hr",
		Environment:        "development",
		Timezone:           "UTC",
		MaxBodyBytes:       1 << 20,
		MaxUploadBytes:     4 << 20,
		RateLimitPerMinute: 60,
		DeviceTimeout:      time.Second,
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, validConfig().Validate())

	cfg := validConfig()
	cfg.DatabaseURL = " "
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Environment = "production"
	assert.Error(t, cfg.Validate(), "production needs a jwt secret")

	cfg = validConfig()
	cfg.Timezone = "Mars/Olympus"
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.MaxUploadBytes = 1024
	assert.Error(t, cfg.Validate(), "uploads may not be capped below json bodies")

	cfg = validConfig()
	cfg.DeviceSyncInterval = time.Minute
	assert.Error(t, cfg.Validate(), "sync interval without device service")
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("APP_ADDR", ":9090")
	t.Setenv("DEVICE_TIMEOUT", "3s")
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "not-a-number")

	cfg := Load()
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 3*time.Second, cfg.DeviceTimeout)
	assert.False(t, cfg.MetricsEnabled)
	assert.Equal(t, 600, cfg.RateLimitPerMinute)
}

func TestLoadEnvFilesSkipsMissing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("HRADMIN_TEST_KEY=from-file\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("HRADMIN_TEST_KEY") })

	require.NoError(t, LoadEnvFiles(filepath.Join(dir, "missing.env"), path))
	assert.Equal(t, "from-file", os.Getenv("HRADMIN_TEST_KEY"))
}

func TestLocationFallsBackToUTC(t *testing.T) {
	cfg := Config{Timezone: "nowhere"}
	assert.Equal(t, time.UTC, cfg.Location())
}
