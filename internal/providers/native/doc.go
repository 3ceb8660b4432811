// Package native exposes the numeric core as a service provider.
//
// The provider is the host boundary: it takes loosely typed parameters
// (decoded JSON, protobuf Struct values, Go literals), validates them
// into the core's primitive types, applies size limits and wraps the
// outcome in a types.Result.
//
// Modules:
//   - primes: count_primes, count_primes_parallel, is_prime
//   - sequence: fibonacci
//   - digest: hash_password (demo only, not a security primitive)
//   - arrays: sum_array
//
// Invalid input never produces a Go error. It produces a failed Result
// whose message says which parameter was wrong. Go errors are reserved
// for the call itself failing, e.g. a cancelled context.
//
// Example Usage:
//
//	p := native.NewProvider(native.DefaultLimits())
//	result, err := p.Execute(ctx, "native.count_primes",
//	    map[string]interface{}{"max": 100}, nil)
//	// result.Data["result"] == uint32(25)
package native
