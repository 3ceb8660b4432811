// Package config provides 12-factor configuration management for the
// addons service.
//
// Precedence, lowest first: Default(), an optional YAML or TOML file,
// environment variables. CLI flags in cmd/server override all three.
//
// Configuration Sections:
//   - Server: HTTP bind address, connection cap, shutdown timeout
//   - GRPC: gRPC bind port and toggle
//   - Logging: Log level and output format
//   - RateLimit: Per-IP rate limiting
//   - Compute: Per-call work limits and parallel worker count
//
// Example Usage:
//
//	cfg, err := config.LoadFile(os.Getenv("CONFIG_FILE"))
//	fmt.Printf("Server running on %s:%s\n", cfg.Server.Host, cfg.Server.Port)
//
// Environment Variables:
//   - PORT, HOST, MAX_CONNECTIONS, SHUTDOWN_TIMEOUT
//   - GRPC_PORT, GRPC_ENABLED
//   - LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
//   - COMPUTE_MAX_PRIME_BOUND, COMPUTE_MAX_HASH_WORK,
//     COMPUTE_MAX_ARRAY_LENGTH, COMPUTE_WORKERS
package config
