package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_YAML(t *testing.T) {
	path := writeYAML(t, `
api:
  base_url: "https://api.bazeni.test"
  admin_secret: "s3cret"
storage:
  driver: memory
notifications:
  duration: 2s
log:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://api.bazeni.test", cfg.API.BaseURL)
	assert.Equal(t, "s3cret", cfg.API.AdminSecret)
	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.Equal(t, 2*time.Second, cfg.Notifications.Duration)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 8090, cfg.Bridge.Port)
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	path := writeYAML(t, `
api:
  base_url: "https://from-yaml.test"
`)
	t.Setenv("API_BASE_URL", "https://from-env.test")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://from-env.test", cfg.API.BaseURL)
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CONFIG_PATH", "")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8081", cfg.API.BaseURL)
	assert.Equal(t, "badger", cfg.Storage.Driver)
	assert.Equal(t, 4*time.Second, cfg.Notifications.Duration)
	assert.Equal(t, "memory", cfg.Demo.Images.Driver)
	assert.Equal(t, "127.0.0.1:8090", cfg.Bridge.Addr())
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoad_InvalidDriver(t *testing.T) {
	path := writeYAML(t, `
storage:
  driver: sqlite
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sqlite")
}
