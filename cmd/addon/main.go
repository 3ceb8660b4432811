// Command addon is the native routines compiled as a WASM module.
//
// Build:
//
//	GOOS=wasip1 GOARCH=wasm go build -buildmode=c-shared -o addon.wasm ./cmd/addon
//
// Exports (see internal/abi for the memory convention):
//
//	is_prime(n u32) u32                      1 if prime, else 0
//	count_primes(max u32) u32                primes in [2, max]
//	fibonacci(n u32) u64                     F(n) mod 2^64
//	hash_password(ptr, len, iters u32) u64   packed ptr/len of 16 hex digits
//	sum_array(ptr, count u32) f64            in-order sum of count doubles
//	allocate(size u32) u32
//	deallocate(ptr, size u32)
//
// The digest returned by hash_password is guest memory; the host frees it
// with deallocate once read. hash_password is a demonstration digest, not
// a password hashing function.
package main

// main is empty: a c-shared WASM module is driven through its exports.
func main() {}
