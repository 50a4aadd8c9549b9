package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "on_hand", cfg.Server.CountingMode)
	assert.Equal(t, ";", cfg.Server.ExportDelimiter)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, 3, cfg.Database.MaxRetries)
	assert.Equal(t, "stocktake-exports", cfg.Storage.Bucket)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 30, cfg.Redis.MarkerTTLSeconds)
	assert.Equal(t, "gorm", cfg.Registry.Mode)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfig_EnvFileAndOverrides(t *testing.T) {
	dir := t.TempDir()
	env := "SERVER_COUNTING_MODE=available\nDATABASE_DRIVER=sqlite\nREGISTRY_BASE_URL=http://registry.local/api\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("SERVER_COUNTING_MODE")
		os.Unsetenv("DATABASE_DRIVER")
		os.Unsetenv("REGISTRY_BASE_URL")
	})
	t.Setenv("REDIS_ENABLED", "true")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "available", cfg.Server.CountingMode)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "http://registry.local/api", cfg.Registry.BaseURL)
	assert.True(t, cfg.Redis.Enabled)
}
