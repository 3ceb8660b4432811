package compute

import "fmt"

// HashPassword folds the bytes of password into a 64-bit accumulator
// iterations times and returns it as 16 lowercase hex digits.
//
// This is a demonstration digest. It has no salt, no work factor and no
// collision resistance. Never use it to store or verify credentials.
func HashPassword(password string, iterations uint32) string {
	return fmt.Sprintf("%016x", hashBytes([]byte(password), iterations))
}

// hashBytes is the accumulator loop behind HashPassword. Every step
// wraps modulo 2^64.
func hashBytes(data []byte, iterations uint32) uint64 {
	if len(data) == 0 {
		return 0
	}
	var acc uint64
	for iter := uint32(0); iter < iterations; iter++ {
		for i, b := range data {
			acc = acc*31 + uint64(b) + uint64(i)
		}
	}
	return acc
}
