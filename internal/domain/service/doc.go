// Package service provides the service registry for provider management.
//
// The registry maintains a catalog of service providers and handles
// discovery, `service.tool` routing and per-call instrumentation.
//
// Discovery Algorithm:
//   - Service ID or name in the intent: +10
//   - Each description word found in the intent: +5
//   - Each capability found in the intent: +3
//   - Category found in the intent: +2
//
// Example Usage:
//
//	registry := service.NewRegistry(service.WithMetrics(metrics), service.WithLogger(logger))
//	registry.Register(native.NewProvider(limits))
//	services := registry.Discover("count primes", 5)
//	result, err := registry.Execute(ctx, "native.count_primes", params, appCtx)
package service
