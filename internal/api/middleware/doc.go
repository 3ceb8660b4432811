// Package middleware provides the gin middleware stack for the HTTP API.
//
// Middleware stack includes:
//   - RequestID: ULID per request, echoed in X-Request-ID
//   - AccessLog: one zap line per request, level by status
//   - CORS: Cross-origin resource sharing with configurable origins
//   - RateLimit: Per-IP token bucket rate limiting with idle eviction
//   - BodyLimit: request body size cap
//
// Example Usage:
//
//	router.Use(middleware.RequestID())
//	router.Use(middleware.AccessLog(logger, "/health", "/metrics"))
//	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
//	router.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig()))
package middleware
