package native

import (
	"context"
	"fmt"
	"runtime"

	"github.com/GriffinCanCode/AgentOS/addons/internal/compute"
	"github.com/GriffinCanCode/AgentOS/addons/internal/shared/types"
)

// PrimeOps handles primality and prime counting
type PrimeOps struct {
	limits *Limits
}

// GetTools returns prime tool definitions
func (p *PrimeOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "native.count_primes",
			Name:        "Count Primes",
			Description: "Count primes in [2, max] by trial division",
			Parameters: []types.Parameter{
				{Name: "max", Type: "integer", Description: "Inclusive upper bound (uint32)", Required: true},
			},
			Returns: "integer",
		},
		{
			ID:          "native.count_primes_parallel",
			Name:        "Count Primes (Parallel)",
			Description: "Count primes in [2, max] across a bounded worker pool",
			Parameters: []types.Parameter{
				{Name: "max", Type: "integer", Description: "Inclusive upper bound (uint32)", Required: true},
				{Name: "workers", Type: "integer", Description: "Worker count, defaults to the server setting", Required: false},
			},
			Returns: "integer",
		},
		{
			ID:          "native.is_prime",
			Name:        "Is Prime",
			Description: "Test whether n is prime",
			Parameters: []types.Parameter{
				{Name: "n", Type: "integer", Description: "Candidate (uint32)", Required: true},
			},
			Returns: "boolean",
		},
	}
}

// CountPrimes counts primes up to max
func (p *PrimeOps) CountPrimes(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	max, err := GetUint32(params, "max")
	if err != nil {
		return Failure(err.Error())
	}
	if err := p.limits.CheckPrimeBound(max); err != nil {
		return Failure(err.Error())
	}

	return Success(map[string]interface{}{"result": compute.CountPrimes(max)})
}

// CountPrimesParallel counts primes up to max on several goroutines
func (p *PrimeOps) CountPrimesParallel(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	max, err := GetUint32(params, "max")
	if err != nil {
		return Failure(err.Error())
	}
	if err := p.limits.CheckPrimeBound(max); err != nil {
		return Failure(err.Error())
	}

	workers, err := GetOptionalUint32(params, "workers", uint32(p.defaultWorkers()))
	if err != nil {
		return Failure(err.Error())
	}
	if workers == 0 || workers > MaxWorkers {
		return Failuref("workers must be between 1 and %d", MaxWorkers)
	}

	count, err := compute.CountPrimesParallel(ctx, max, int(workers))
	if err != nil {
		return nil, fmt.Errorf("count primes: %w", err)
	}

	return Success(map[string]interface{}{
		"result":  count,
		"workers": int(workers),
	})
}

// IsPrime tests a single candidate
func (p *PrimeOps) IsPrime(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	n, err := GetUint32(params, "n")
	if err != nil {
		return Failure(err.Error())
	}

	return Success(map[string]interface{}{"result": compute.IsPrime(n)})
}

func (p *PrimeOps) defaultWorkers() int {
	if p.limits.Workers > 0 {
		return min(p.limits.Workers, MaxWorkers)
	}
	return min(runtime.GOMAXPROCS(0), MaxWorkers)
}
