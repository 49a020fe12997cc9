package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ims.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestGettersPanicBeforeLoad(t *testing.T) {
	_loaded = nil
	assert.Panics(t, func() { Http() })
	assert.Panics(t, func() { Get() })
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	Load(filepath.Join(t.TempDir(), "missing.yaml"))

	assert.Equal(t, "info", Logger().Level)
	assert.Equal(t, "json", Logger().Format)
	assert.Equal(t, "0.0.0.0:8080", Http().Addr())
	assert.Equal(t, 30*time.Second, Http().ShutdownGrace())
	assert.Empty(t, Cors().AllowOrigins)
}

func TestLoadPrecedence(t *testing.T) {
	chdir(t, t.TempDir())
	path := writeConfig(t, `
common:
  log:
    level: debug
  http:
    port: 9090
    max_request_size: 2048
  cors:
    allow_origins: ["https://example.com"]
`)

	t.Run("FileOverridesDefaults", func(t *testing.T) {
		Load(path)

		assert.Equal(t, "debug", Logger().Level)
		assert.Equal(t, "json", Logger().Format)
		assert.Equal(t, "0.0.0.0", Http().Host)
		assert.Equal(t, 9090, Http().Port)
		assert.Equal(t, int64(2048), Http().MaxRequestSize)
		assert.Equal(t, []string{"https://example.com"}, Cors().AllowOrigins)
	})

	t.Run("EnvOverridesFile", func(t *testing.T) {
		t.Setenv("IMS_HTTP_PORT", "7070")
		t.Setenv("IMS_LOG_FORMAT", "console")
		t.Setenv("IMS_CORS_ALLOW_ORIGINS", "https://a.test,https://b.test")
		t.Setenv("IMS_HTTP_SHUTDOWN_TIMEOUT", "not-a-number")
		Load(path)

		assert.Equal(t, 7070, Http().Port)
		assert.Equal(t, "console", Logger().Format)
		assert.Equal(t, []string{"https://a.test", "https://b.test"}, Cors().AllowOrigins)
		assert.Equal(t, 30, Http().ShutdownTimeout)
	})

	t.Run("ConfigFileFromEnv", func(t *testing.T) {
		t.Setenv("IMS_CONFIG_FILE", path)
		Load("")

		assert.Equal(t, 9090, Http().Port)
	})
}

func TestDotEnvFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("IMS_LOG_LEVEL=warn\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("IMS_LOG_LEVEL") })

	Load(filepath.Join(dir, "missing.yaml"))

	assert.Equal(t, "warn", Logger().Level)
}

func TestLoadFromFileInvalidYAML(t *testing.T) {
	path := writeConfig(t, "common: [unterminated")
	assert.Error(t, LoadFromFile(path))
}
