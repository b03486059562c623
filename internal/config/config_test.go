package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
app:
  name: links
  mode: production
server:
  port: 9090
database:
  driver: mysql
  host: db.internal
  port: 3306
  user: app
  password: secret
  name: shorturl
cache:
  host: redis.internal
  ttl_seconds: 120
  pool_size: 64
shortcode:
  max_attempts: 7
expiry:
  default_minutes: 45
  sweep_interval: 30
cors:
  allow_origins: ["https://app.example.com"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.App.Mode)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 10, cfg.Server.ReadTimeout, "未配置的字段保持默认值")
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, "redis.internal", cfg.Cache.Host)
	assert.Equal(t, 6379, cfg.Cache.Port)
	assert.Equal(t, 2*time.Minute, cfg.Cache.TTL())
	assert.Equal(t, 64, cfg.Cache.PoolSize)
	assert.Equal(t, 7, cfg.ShortCode.MaxAttempts)
	assert.Equal(t, 45*time.Minute, cfg.Expiry.DefaultValidity())
	assert.Equal(t, 30, cfg.Expiry.SweepInterval)
	assert.Equal(t, []string{"https://app.example.com"}, cfg.CORS.AllowOrigins)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "app:\n  name: x\n"))
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 30*time.Minute, cfg.Expiry.DefaultValidity())
	assert.Equal(t, 5, cfg.ShortCode.MaxAttempts)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "server: [not, a, map]"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "database:\n  driver: oracle\n"))
	assert.ErrorContains(t, err, "oracle")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.ShortCode.MaxAttempts = 0
	cfg.Expiry.DefaultMinutes = 0
	cfg.Database.Driver = "postgres"
	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorContains(t, err, "shortcode.max_attempts")
	assert.ErrorContains(t, err, "default_minutes")
	assert.ErrorContains(t, err, "host")
}
