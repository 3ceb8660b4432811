//go:build wasip1

package main

import (
	"math"

	"github.com/GriffinCanCode/AgentOS/addons/internal/abi"
	"github.com/GriffinCanCode/AgentOS/addons/internal/compute"
)

//go:wasmexport is_prime
func isPrime(n uint32) uint32 {
	if compute.IsPrime(n) {
		return 1
	}
	return 0
}

//go:wasmexport count_primes
func countPrimes(max uint32) uint32 {
	return compute.CountPrimes(max)
}

//go:wasmexport fibonacci
func fibonacci(n uint32) uint64 {
	return compute.Fibonacci(n)
}

//go:wasmexport hash_password
func hashPassword(ptr, length, iterations uint32) uint64 {
	password := abi.BytesFromPtr(abi.PackPtrLen(ptr, length))
	return abi.PtrFromBytes([]byte(compute.HashPassword(string(password), iterations)))
}

// sum_array returns NaN for an array too large to address or decode
//
//go:wasmexport sum_array
func sumArray(ptr, count uint32) float64 {
	if count > abi.MaxFloat64s {
		return math.NaN()
	}
	raw := abi.BytesFromPtr(abi.PackPtrLen(ptr, count*abi.Float64Size))
	values, err := abi.DecodeFloat64s(raw)
	if err != nil {
		return math.NaN()
	}
	return compute.SumArray(values)
}

//go:wasmexport allocate
func allocate(size uint32) uint32 {
	return abi.Allocate(size)
}

//go:wasmexport deallocate
func deallocate(ptr, size uint32) {
	abi.Deallocate(ptr, size)
}
