// Package http provides HTTP handlers and routing for the addons REST API.
//
// Endpoints:
//   - Health: / and /health
//   - Services: /services, /services/discover, /services/execute
//   - Primitives: /v1/primes/count, /v1/primes/:n, /v1/fibonacci/:n,
//     /v1/hash, /v1/sum
//   - Metrics: /metrics
//
// Every tool call goes through the service registry and is answered in
// the types.Result shape. Rejected input is 400, an unknown service 404,
// and anything else the server's fault.
//
// Example Usage:
//
//	handlers := http.NewHandlers(registry, metrics, "1.0.0")
//	handlers.RegisterRoutes(router)
package http
