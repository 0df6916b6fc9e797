package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"codeberg.org/mutker/sysprobe/internal/config"
	"codeberg.org/mutker/sysprobe/internal/errors"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "sysprobe.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

// isolate keeps the host's config files and environment out of a test.
func isolate(t *testing.T) config.Option {
	t.Helper()

	for _, key := range []string{
		"SYSPROBE_CONFIG", "SYSPROBE_LOG_LEVEL", "SYSPROBE_DEBUG", "SYSPROBE_VERBOSE",
		"SYSPROBE_DOMAINS", "SYSPROBE_DISABLE_BACKEND", "SYSPROBE_VENDOR_IDS", "SYSPROBE_JSON",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	return config.WithSearchPaths(t.TempDir())
}

func TestLoad(t *testing.T) {
	search := isolate(t)
	configPath := writeConfig(t, `
log_level = "info"
verbose = true
domains = ["gpus", "processes"]
disable_backend = ["nvml"]
vendor_ids = "/etc/sysprobe/vendors.yaml"
json = true
`)

	// Set environment variable to point to the test config file
	t.Setenv("SYSPROBE_CONFIG", configPath)

	cfg, err := config.Load(nil, search)
	require.NoError(t, err)

	assert.Equal(t, config.LogLevelInfo, cfg.LogLevel)
	assert.True(t, cfg.Verbose)
	assert.False(t, cfg.Debug)
	assert.Equal(t, []string{"gpus", "processes"}, cfg.Domains)
	assert.Equal(t, []string{"nvml"}, cfg.DisabledBackends)
	assert.Equal(t, "/etc/sysprobe/vendors.yaml", cfg.VendorIDs)
	assert.True(t, cfg.JSON)
	assert.Equal(t, configPath, cfg.ConfigFile)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load(nil, isolate(t))
	require.NoError(t, err, "Failed to load config")

	assert.Equal(t, config.DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, []string{"displays", "gpus", "processes"}, cfg.Domains)
	assert.Empty(t, cfg.DisabledBackends)
	assert.Empty(t, cfg.VendorIDs)
	assert.False(t, cfg.JSON)
	assert.Empty(t, cfg.ConfigFile)
}

func TestLoadSearchPath(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sysprobe.toml"), []byte(`domains = ["displays"]`), 0o600))

	cfg, err := config.Load(nil, config.WithSearchPaths(dir))
	require.NoError(t, err)

	assert.Equal(t, []string{"displays"}, cfg.Domains)
	assert.Equal(t, filepath.Join(dir, "sysprobe.toml"), cfg.ConfigFile)
}

func TestLoadConfigFileInvalidFormat(t *testing.T) {
	search := isolate(t)
	t.Setenv("SYSPROBE_CONFIG", writeConfig(t, `
This is not a valid TOML file
`))

	_, err := config.Load(nil, search)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to read config file")
	assert.True(t, errors.HasCode(err, errors.ErrReadConfig))
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := config.Load(nil, isolate(t), config.WithConfigFile(filepath.Join(t.TempDir(), "missing.toml")))

	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrReadConfig))
}

func TestInvalidLogLevel(t *testing.T) {
	search := isolate(t)
	t.Setenv("SYSPROBE_CONFIG", writeConfig(t, `
log_level = "invalid"
`))

	_, err := config.Load(nil, search)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrInvalidLogLevel))
}

func TestUnknownDomain(t *testing.T) {
	_, err := config.Load([]string{"--domains", "gpus,battery"}, isolate(t))

	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrInvalidDomain))
}

func TestLogLevelFlag(t *testing.T) {
	cfg, err := config.Load([]string{"--log-level", "debug"}, isolate(t))
	require.NoError(t, err)
	assert.Equal(t, config.LogLevelDebug, cfg.LogLevel, "Expected LogLevel to be set by flag")
}

func TestFlagsOverrideEnvAndFile(t *testing.T) {
	search := isolate(t)
	t.Setenv("SYSPROBE_CONFIG", writeConfig(t, `
log_level = "error"
domains = ["gpus"]
json = false
`))
	t.Setenv("SYSPROBE_LOG_LEVEL", "info")
	t.Setenv("SYSPROBE_DOMAINS", "processes,displays")

	cfg, err := config.Load([]string{"--json", "--domains", "GPUs"}, search)
	require.NoError(t, err)

	assert.Equal(t, config.LogLevelInfo, cfg.LogLevel, "env overrides file")
	assert.Equal(t, []string{"gpus"}, cfg.Domains, "flag overrides env")
	assert.True(t, cfg.JSON)
}

func TestEnvList(t *testing.T) {
	search := isolate(t)
	t.Setenv("SYSPROBE_DISABLE_BACKEND", "xrandr, gpus:drm")

	cfg, err := config.Load(nil, search)
	require.NoError(t, err)

	assert.Equal(t, []string{"xrandr", "gpus:drm"}, cfg.DisabledBackends)
}

func TestHelpFlag(t *testing.T) {
	_, err := config.Load([]string{"--help"}, isolate(t))

	require.Error(t, err)
	assert.ErrorIs(t, err, pflag.ErrHelp)
}

func TestGetLogLevel(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
		want config.LogLevel
	}{
		{"configured", config.Config{LogLevel: config.LogLevelError}, config.LogLevelError},
		{"verbose", config.Config{LogLevel: config.LogLevelWarning, Verbose: true}, config.LogLevelInfo},
		{"debug wins", config.Config{LogLevel: config.LogLevelError, Verbose: true, Debug: true}, config.LogLevelDebug},
		{"verbose keeps debug", config.Config{LogLevel: config.LogLevelDebug, Verbose: true}, config.LogLevelDebug},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.GetLogLevel())
		})
	}
}
