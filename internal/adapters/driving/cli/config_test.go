package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jordyarms/everyday/internal/core/domain"
)

func TestConfigCmd_HasSubcommands(t *testing.T) {
	commands := configCmd.Commands()
	names := make([]string, 0, len(commands))
	for _, cmd := range commands {
		names = append(names, cmd.Name())
	}

	assert.Contains(t, names, "show")
	assert.Contains(t, names, "get")
	assert.Contains(t, names, "set")
	assert.Contains(t, names, "reset")
	assert.Contains(t, names, "path")
}

func TestConfigShowCmd_ListsDefaults(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "config", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "[http]")
	assert.Contains(t, out, "[qr]")
	assert.Contains(t, out, "http.timeout_seconds")
	assert.Contains(t, out, "= 10")
	assert.Contains(t, out, "everyday/test")
	assert.Contains(t, out, "# Request timeout in seconds")
}

func TestConfigCmd_DefaultsToShow(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "config")

	require.NoError(t, err)
	assert.Contains(t, out, "Current Settings")
}

func TestConfigSetAndGet(t *testing.T) {
	ts, cleanup := setupTestServicesWith()
	defer cleanup()

	out, err := execute(t, "config", "set", "qr.recovery", "medium")
	require.NoError(t, err)
	assert.Contains(t, out, "qr.recovery = medium")
	assert.Equal(t, "medium", ts.config.GetString("qr.recovery"))

	out, err = execute(t, "config", "get", "qr.recovery")
	require.NoError(t, err)
	assert.Equal(t, "medium\n", out)
}

func TestConfigSet_Invalid(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "config", "set", "http.concurrency", "zero")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = execute(t, "config", "set", "no.such.key", "1")
	assert.ErrorIs(t, err, domain.ErrUnknownSetting)
}

func TestConfigReset(t *testing.T) {
	ts, cleanup := setupTestServicesWith()
	defer cleanup()

	_, err := execute(t, "config", "set", "http.timeout_seconds", "30")
	require.NoError(t, err)

	out, err := execute(t, "config", "reset", "http.timeout_seconds")

	require.NoError(t, err)
	assert.Contains(t, out, "http.timeout_seconds = 10 (default)")
	_, ok := ts.config.Get("http.timeout_seconds")
	assert.False(t, ok)
}

func TestConfigGet_Unknown(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "config", "get", "nope")

	assert.ErrorIs(t, err, domain.ErrUnknownSetting)
}

func TestConfigPathCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "config", "path")

	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestConfigCmd_ServiceNotConfigured(t *testing.T) {
	old := settingsService
	settingsService = nil
	defer func() { settingsService = old }()

	_, err := execute(t, "config", "show")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "settings service not configured")
}

func TestConfigShowCmd_MarksOverriddenKeys(t *testing.T) {
	ts, cleanup := setupTestServicesWith()
	defer cleanup()
	require.NoError(t, ts.config.Set("qr.border", 2))

	out, err := execute(t, "config", "show")

	require.NoError(t, err)
	assert.Regexp(t, `\* qr\.border\s+= 2`, out)
	assert.Regexp(t, `  qr\.box_size\s+= 10`, out)
	assert.Contains(t, out, "* set in the config file")
}

func TestConfigShowCmd_InvalidStoredValueUsesDefaults(t *testing.T) {
	ts, cleanup := setupTestServicesWith()
	defer cleanup()
	require.NoError(t, ts.config.Set("http.concurrency", 0))

	out, err := execute(t, "config", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "Warning:")
	assert.Contains(t, out, "(using defaults)")
	assert.Regexp(t, `\* http\.concurrency\s+= 4`, out)
}

func TestConfigReset_OtherKeyInvalid(t *testing.T) {
	ts, cleanup := setupTestServicesWith()
	defer cleanup()
	require.NoError(t, ts.config.Set("http.concurrency", 0))
	require.NoError(t, ts.config.Set("qr.border", 2))

	out, err := execute(t, "config", "reset", "qr.border")

	require.NoError(t, err)
	assert.Contains(t, out, "qr.border = 4 (default)")
	_, ok := ts.config.Get("qr.border")
	assert.False(t, ok)
}

func TestConfigGet_InvalidStoredValueUsesDefaults(t *testing.T) {
	ts, cleanup := setupTestServicesWith()
	defer cleanup()
	require.NoError(t, ts.config.Set("http.timeout_seconds", -5))

	out, err := execute(t, "config", "get", "qr.recovery")

	require.NoError(t, err)
	assert.Contains(t, out, "Warning:")
	assert.Contains(t, out, "high\n")
}
