package native

import (
	"errors"
	"fmt"
)

// ErrLimitExceeded marks input rejected for size rather than shape
var ErrLimitExceeded = errors.New("limit exceeded")

// MaxWorkers caps the per-call worker count a caller may request
const MaxWorkers = 256

// Limits bounds the work a single call may request. The core functions
// are total; these exist so one request cannot pin a server for minutes.
// Zero means unlimited.
type Limits struct {
	MaxPrimeBound  uint32
	MaxHashWork    uint64 // max(len(password), 1) * iterations
	MaxArrayLength int
	Workers        int // default parallelism for count_primes_parallel, 0 = GOMAXPROCS
}

// DefaultLimits returns production-ready limits
func DefaultLimits() Limits {
	return Limits{
		MaxPrimeBound:  10_000_000,
		MaxHashWork:    100_000_000,
		MaxArrayLength: 1_000_000,
	}
}

// CheckPrimeBound rejects a prime-counting bound above MaxPrimeBound
func (l Limits) CheckPrimeBound(max uint32) error {
	if l.MaxPrimeBound > 0 && max > l.MaxPrimeBound {
		return fmt.Errorf("%w: max %d is above %d", ErrLimitExceeded, max, l.MaxPrimeBound)
	}
	return nil
}

// CheckHashWork rejects hashes whose byte-iterations exceed MaxHashWork.
// An empty password still costs one unit per iteration.
func (l Limits) CheckHashWork(length int, iterations uint32) error {
	work := uint64(max(length, 1)) * uint64(iterations)
	if l.MaxHashWork > 0 && work > l.MaxHashWork {
		return fmt.Errorf("%w: %d bytes x %d iterations is above %d", ErrLimitExceeded, length, iterations, l.MaxHashWork)
	}
	return nil
}

// CheckArrayLength rejects arrays longer than MaxArrayLength
func (l Limits) CheckArrayLength(n int) error {
	if l.MaxArrayLength > 0 && n > l.MaxArrayLength {
		return fmt.Errorf("%w: %d numbers is above %d", ErrLimitExceeded, n, l.MaxArrayLength)
	}
	return nil
}
