package compute

import "math"

// IsPrime reports whether n is prime using trial division by odd
// candidates up to floor(sqrt(n)).
func IsPrime(n uint32) bool {
	if n < 2 {
		return false
	}
	if n == 2 {
		return true
	}
	if n%2 == 0 {
		return false
	}

	bound := isqrt(n)
	for i := uint32(3); i <= bound; i += 2 {
		if n%i == 0 {
			return false
		}
	}
	return true
}

// CountPrimes returns how many integers in [2, max] are prime.
func CountPrimes(max uint32) uint32 {
	return countRange(2, uint64(max))
}

// countRange counts primes in [lo, hi]. uint64 bounds keep the loop
// from wrapping when hi == math.MaxUint32.
func countRange(lo, hi uint64) uint32 {
	var count uint32
	for i := lo; i <= hi; i++ {
		if IsPrime(uint32(i)) {
			count++
		}
	}
	return count
}

// isqrt returns floor(sqrt(n)). The float estimate is corrected in both
// directions so perfect squares are never missed.
func isqrt(n uint32) uint32 {
	r := uint64(math.Sqrt(float64(n)))
	v := uint64(n)
	for r*r > v {
		r--
	}
	for (r+1)*(r+1) <= v {
		r++
	}
	return uint32(r)
}
