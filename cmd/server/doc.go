// Package main is the entry point for the native addons server.
//
// The server exposes the native numeric routines (prime counting,
// primality, fibonacci, the demo password hash and array summation) over
// HTTP and gRPC.
//
// Configuration, lowest to highest precedence:
//   - Built-in defaults
//   - Config file (-config or CONFIG_FILE), YAML or TOML
//   - Environment variables (12-factor)
//   - CLI flags
//
// Usage:
//
//	# Production mode
//	./server -config addons.yaml -port 8000 -grpc-port 50061
//
//	# Development mode (colored logs, debug level)
//	./server -dev
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
