package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server" toml:"server"`
	GRPC      GRPCConfig      `yaml:"grpc" toml:"grpc"`
	Logging   LogConfig       `yaml:"logging" toml:"logging"`
	RateLimit RateLimitConfig `yaml:"rate_limit" toml:"rate_limit"`
	Compute   ComputeConfig   `yaml:"compute" toml:"compute"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port            string   `envconfig:"PORT" yaml:"port" toml:"port"`
	Host            string   `envconfig:"HOST" yaml:"host" toml:"host"`
	MaxConnections  int      `envconfig:"MAX_CONNECTIONS" yaml:"max_connections" toml:"max_connections"`
	ShutdownTimeout Duration `envconfig:"SHUTDOWN_TIMEOUT" yaml:"shutdown_timeout" toml:"shutdown_timeout"`
}

// GRPCConfig holds gRPC server configuration.
type GRPCConfig struct {
	Port    string `envconfig:"GRPC_PORT" yaml:"port" toml:"port"`
	Enabled bool   `envconfig:"GRPC_ENABLED" yaml:"enabled" toml:"enabled"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" yaml:"level" toml:"level"`
	Development bool   `envconfig:"LOG_DEV" yaml:"development" toml:"development"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" yaml:"rps" toml:"rps"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" yaml:"burst" toml:"burst"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" yaml:"enabled" toml:"enabled"`
	Global            bool `envconfig:"RATE_LIMIT_GLOBAL" yaml:"global" toml:"global"` // one bucket for all clients
}

// ComputeConfig bounds per-call work. Zero disables a limit.
type ComputeConfig struct {
	MaxPrimeBound  uint32 `envconfig:"COMPUTE_MAX_PRIME_BOUND" yaml:"max_prime_bound" toml:"max_prime_bound"`
	MaxHashWork    uint64 `envconfig:"COMPUTE_MAX_HASH_WORK" yaml:"max_hash_work" toml:"max_hash_work"`
	MaxArrayLength int    `envconfig:"COMPUTE_MAX_ARRAY_LENGTH" yaml:"max_array_length" toml:"max_array_length"`
	Workers        int    `envconfig:"COMPUTE_WORKERS" yaml:"workers" toml:"workers"`
}

// Duration is a time.Duration that reads "10s" style strings from env,
// YAML and TOML alike.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	if secs, err := strconv.Atoi(s); err == nil {
		*d = Duration(time.Duration(secs) * time.Second)
		return nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Load loads configuration from environment variables over the defaults.
func Load() (*Config, error) {
	cfg := Default()
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile loads a YAML or TOML file over the defaults, then applies
// environment variables on top. An empty path is the same as Load.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := applyFile(cfg, path); err != nil {
			return nil, err
		}
	}
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8000",
			Host:            "0.0.0.0",
			MaxConnections:  1024,
			ShutdownTimeout: Duration(10 * time.Second),
		},
		GRPC: GRPCConfig{
			Port:    "50061",
			Enabled: true,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
		Compute: ComputeConfig{
			MaxPrimeBound:  10_000_000,
			MaxHashWork:    100_000_000,
			MaxArrayLength: 1_000_000,
			Workers:        0,
		},
	}
}

// Validate checks values that would otherwise fail late, at bind time.
func (c *Config) Validate() error {
	if err := validatePort("server port", c.Server.Port); err != nil {
		return err
	}
	if c.GRPC.Enabled {
		if err := validatePort("grpc port", c.GRPC.Port); err != nil {
			return err
		}
	}
	if c.Server.MaxConnections < 0 {
		return fmt.Errorf("max connections must not be negative")
	}
	if c.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("shutdown timeout must not be negative")
	}
	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("rate limit rps and burst must be positive when enabled")
	}
	if c.Compute.MaxArrayLength < 0 || c.Compute.Workers < 0 {
		return fmt.Errorf("compute limits must not be negative")
	}
	return nil
}

// Only set variables are applied; the struct carries no default tags so
// earlier layers survive.
func applyEnv(cfg *Config) error {
	if err := envconfig.Process("", cfg); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	return nil
}

func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	default:
		return fmt.Errorf("unsupported config file type: %s", path)
	}
	if err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func validatePort(name, port string) error {
	n, err := strconv.Atoi(port)
	if err != nil || n < 0 || n > 65535 {
		return fmt.Errorf("invalid %s: %q", name, port)
	}
	return nil
}
