// Package compute holds the numeric core exposed by the native addons.
//
// Every function here is pure: no shared state, no I/O, no allocation
// beyond its own locals. All of them are total over their input domain.
// Overflow wraps, floating-point special values propagate.
//
// Operations:
//   - IsPrime: trial division up to floor(sqrt(n))
//   - CountPrimes: sequential count over [2, max]
//   - CountPrimesParallel: the same count fanned out over a worker pool
//   - Fibonacci: iterative, uint64 with wraparound
//   - HashPassword: demo 64-bit string digest (NOT cryptographic)
//   - SumArray: in-order float64 summation
//
// Example Usage:
//
//	n := compute.CountPrimes(100)          // 25
//	f := compute.Fibonacci(20)             // 6765
//	h := compute.HashPassword("secret", 3) // 16 lowercase hex digits
package compute
