package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-validator/framework/config"
	"github.com/km-arc/go-validator/framework/validation"
)

// ── helpers ──────────────────────────────────────────────────────────────────

// unsetEnv clears key for the duration of the test and restores it afterwards.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

// noEnvFile returns a path that does not exist, so Load only sees the
// process environment.
func noEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

// ── Load ─────────────────────────────────────────────────────────────────────

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"APP_NAME", "APP_ENV", "APP_DEBUG", "APP_PORT", "LOG_LEVEL", "LOG_FORMAT",
		"HTTP_READ_TIMEOUT", "HTTP_SHUTDOWN_TIMEOUT", "VALIDATION_LENGTH_MODE", "VALIDATION_RULES_FILE",
	} {
		unsetEnv(t, key)
	}

	cfg, err := config.Load(noEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "go-validator", cfg.App.Name)
	assert.Equal(t, "local", cfg.App.Env)
	assert.True(t, cfg.App.Debug)
	assert.Equal(t, "8000", cfg.App.Port)
	assert.Equal(t, ":8000", cfg.Addr())
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, validation.LengthValue, cfg.LengthMode())
	assert.Empty(t, cfg.Validation.RulesFile)
	assert.True(t, cfg.IsLocal())
}

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	t.Setenv("APP_NAME", "MyValidator")
	t.Setenv("APP_ENV", "production")
	t.Setenv("APP_DEBUG", "false")
	t.Setenv("APP_PORT", "9000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("HTTP_SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("VALIDATION_LENGTH_MODE", "field_name")
	t.Setenv("VALIDATION_RULES_FILE", "/etc/rules.yaml")

	cfg, err := config.Load(noEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "MyValidator", cfg.App.Name)
	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.App.Debug)
	assert.Equal(t, ":9000", cfg.Addr())
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 3*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, validation.LengthFieldName, cfg.LengthMode())
	assert.Equal(t, "/etc/rules.yaml", cfg.Validation.RulesFile)
}

func TestLoad_EnvFile(t *testing.T) {
	unsetEnv(t, "APP_NAME")
	unsetEnv(t, "APP_ENV")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("APP_NAME=FromFile\nAPP_ENV=testing\n"), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "FromFile", cfg.App.Name)
	assert.True(t, cfg.IsTesting())
}

func TestLoad_EnvironmentWinsOverFile(t *testing.T) {
	t.Setenv("APP_NAME", "FromEnv")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("APP_NAME=FromFile\n"), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "FromEnv", cfg.App.Name)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := map[string]string{
		"APP_ENV":                "staging",
		"LOG_FORMAT":             "xml",
		"LOG_LEVEL":              "loud",
		"VALIDATION_LENGTH_MODE": "bytes",
	}
	for key, val := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, val)
			_, err := config.Load(noEnvFile(t))
			assert.ErrorIs(t, err, config.ErrInvalidValue)
		})
	}
}

func TestLoad_ParseError(t *testing.T) {
	t.Setenv("APP_DEBUG", "notabool")
	_, err := config.Load(noEnvFile(t))
	assert.ErrorIs(t, err, config.ErrParsingConfig)
}

func TestMustLoad_Panics(t *testing.T) {
	t.Setenv("HTTP_READ_TIMEOUT", "soon")
	assert.Panics(t, func() { config.MustLoad(noEnvFile(t)) })
}
