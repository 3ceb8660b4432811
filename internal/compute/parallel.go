package compute

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

const (
	// minChunk keeps goroutine overhead small relative to the work per chunk
	minChunk = 4096
	// chunksPerWorker gives the scheduler room to balance uneven chunks
	// (larger candidates take longer to test)
	chunksPerWorker = 4
	// cancelCheckInterval is how many candidates are tested between ctx checks
	cancelCheckInterval = 1024
)

// CountPrimesParallel counts primes in [2, max] by splitting the range
// into contiguous chunks counted on at most workers goroutines. The
// result is always equal to CountPrimes(max). workers <= 0 uses
// GOMAXPROCS. The only error is ctx's, if it ends before the count does.
func CountPrimesParallel(ctx context.Context, max uint32, workers int) (uint32, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if max < 2 {
		return 0, nil
	}

	span := uint64(max) - 1
	chunk := span / uint64(workers*chunksPerWorker)
	if chunk < minChunk {
		chunk = minChunk
	}
	chunks := (span + chunk - 1) / chunk

	partial := make([]uint32, chunks)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for c := uint64(0); c < chunks; c++ {
		lo := 2 + c*chunk
		hi := min(lo+chunk-1, uint64(max))
		g.Go(func() error {
			n, err := countRangeContext(gctx, lo, hi)
			if err != nil {
				return err
			}
			partial[c] = n
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return 0, err
	}

	var total uint32
	for _, n := range partial {
		total += n
	}
	return total, nil
}

func countRangeContext(ctx context.Context, lo, hi uint64) (uint32, error) {
	var count uint32
	for i := lo; i <= hi; i++ {
		if (i-lo)%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
		}
		if IsPrime(uint32(i)) {
			count++
		}
	}
	return count, nil
}
