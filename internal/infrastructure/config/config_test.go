package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Server config
	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 1024, cfg.Server.MaxConnections)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout.Std())

	// gRPC config
	assert.Equal(t, "50061", cfg.GRPC.Port)
	assert.True(t, cfg.GRPC.Enabled)

	// Logging config
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Development)

	// Rate limit config
	assert.Equal(t, 100, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 200, cfg.RateLimit.Burst)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.False(t, cfg.RateLimit.Global)

	// Compute config
	assert.Equal(t, uint32(10_000_000), cfg.Compute.MaxPrimeBound)
	assert.Equal(t, uint64(100_000_000), cfg.Compute.MaxHashWork)
	assert.Equal(t, 1_000_000, cfg.Compute.MaxArrayLength)
	assert.Equal(t, 0, cfg.Compute.Workers)

	assert.NoError(t, cfg.Validate())
}

func TestLoadOrDefault(t *testing.T) {
	cfg := LoadOrDefault()

	assert.NotNil(t, cfg)
	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	envVars := map[string]string{
		"PORT":                     "9000",
		"HOST":                     "127.0.0.1",
		"MAX_CONNECTIONS":          "64",
		"SHUTDOWN_TIMEOUT":         "3s",
		"GRPC_PORT":                "6000",
		"GRPC_ENABLED":             "false",
		"LOG_LEVEL":                "debug",
		"LOG_DEV":                  "true",
		"RATE_LIMIT_RPS":           "500",
		"RATE_LIMIT_BURST":         "1000",
		"RATE_LIMIT_ENABLED":       "false",
		"RATE_LIMIT_GLOBAL":        "true",
		"COMPUTE_MAX_PRIME_BOUND":  "5000",
		"COMPUTE_MAX_HASH_WORK":    "0",
		"COMPUTE_MAX_ARRAY_LENGTH": "10",
		"COMPUTE_WORKERS":          "4",
	}
	for key, value := range envVars {
		t.Setenv(key, value)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 64, cfg.Server.MaxConnections)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout.Std())

	assert.Equal(t, "6000", cfg.GRPC.Port)
	assert.False(t, cfg.GRPC.Enabled)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)

	assert.Equal(t, 500, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 1000, cfg.RateLimit.Burst)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.True(t, cfg.RateLimit.Global)

	assert.Equal(t, uint32(5000), cfg.Compute.MaxPrimeBound)
	assert.Equal(t, uint64(0), cfg.Compute.MaxHashWork)
	assert.Equal(t, 10, cfg.Compute.MaxArrayLength)
	assert.Equal(t, 4, cfg.Compute.Workers)
}

func TestLoadWithPartialEnvironmentVariables(t *testing.T) {
	t.Setenv("PORT", "3000")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	// Overridden values
	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Logging.Level)

	// Defaults still apply
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "50061", cfg.GRPC.Port)
	assert.True(t, cfg.GRPC.Enabled)
}

func TestLoadInvalidEnvironment(t *testing.T) {
	t.Setenv("COMPUTE_MAX_PRIME_BOUND", "-1")

	_, err := Load()
	assert.Error(t, err)

	// LoadOrDefault falls back
	assert.Equal(t, uint32(10_000_000), LoadOrDefault().Compute.MaxPrimeBound)
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFileYAML(t *testing.T) {
	path := writeFile(t, "addons.yaml", `
server:
  port: "8100"
  shutdown_timeout: 5s
grpc:
  enabled: false
compute:
  max_prime_bound: 1000
  workers: 2
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "8100", cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout.Std())
	assert.False(t, cfg.GRPC.Enabled)
	assert.Equal(t, uint32(1000), cfg.Compute.MaxPrimeBound)
	assert.Equal(t, 2, cfg.Compute.Workers)

	// Untouched keys keep defaults
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 100, cfg.RateLimit.RequestsPerSecond)
}

func TestLoadFileTOML(t *testing.T) {
	path := writeFile(t, "addons.toml", `
[server]
host = "127.0.0.1"
shutdown_timeout = "2s"

[rate_limit]
rps = 7
burst = 14

[logging]
level = "debug"
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 2*time.Second, cfg.Server.ShutdownTimeout.Std())
	assert.Equal(t, 7, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 14, cfg.RateLimit.Burst)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "8000", cfg.Server.Port)
}

func TestLoadFileEnvironmentWins(t *testing.T) {
	path := writeFile(t, "addons.yml", "server:\n  port: \"8100\"\n  host: 10.0.0.1\n")
	t.Setenv("PORT", "8200")

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "8200", cfg.Server.Port)
	assert.Equal(t, "10.0.0.1", cfg.Server.Host)
}

func TestLoadFileErrors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadFile(writeFile(t, "addons.json", "{}"))
	assert.ErrorContains(t, err, "unsupported")

	_, err = LoadFile(writeFile(t, "bad.toml", "[server\nport ="))
	assert.Error(t, err)

	cfg, err := LoadFile("")
	require.NoError(t, err)
	assert.Equal(t, Default().Server, cfg.Server)
}

func TestDurationUnmarshalText(t *testing.T) {
	var d Duration
	require.NoError(t, d.UnmarshalText([]byte("1m30s")))
	assert.Equal(t, 90*time.Second, d.Std())

	require.NoError(t, d.UnmarshalText([]byte("15")))
	assert.Equal(t, 15*time.Second, d.Std())

	assert.Error(t, d.UnmarshalText([]byte("soon")))

	text, err := Duration(2 * time.Second).MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "2s", string(text))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad port", func(c *Config) { c.Server.Port = "http" }},
		{"port out of range", func(c *Config) { c.Server.Port = "70000" }},
		{"bad grpc port", func(c *Config) { c.GRPC.Port = "" }},
		{"negative connections", func(c *Config) { c.Server.MaxConnections = -1 }},
		{"zero rps", func(c *Config) { c.RateLimit.RequestsPerSecond = 0 }},
		{"negative workers", func(c *Config) { c.Compute.Workers = -2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	cfg := Default()
	cfg.GRPC.Enabled = false
	cfg.GRPC.Port = ""
	assert.NoError(t, cfg.Validate())
}
