package compute

// Fibonacci returns F(n) with F(0)=0, F(1)=1. Values past F(93) wrap
// modulo 2^64.
func Fibonacci(n uint32) uint64 {
	if n <= 1 {
		return uint64(n)
	}

	var prev, cur uint64 = 0, 1
	// n-1 steps; counting up from 1 avoids i <= n looping forever at MaxUint32
	for i := uint32(1); i < n; i++ {
		prev, cur = cur, prev+cur
	}
	return cur
}

// MaxExactFibonacci is the largest n whose Fibonacci number fits in a
// uint64 without wrapping.
const MaxExactFibonacci = 93
