package native

import (
	"context"

	"github.com/GriffinCanCode/AgentOS/addons/internal/shared/types"
)

// ServiceID is the registry ID of the native provider
const ServiceID = "native"

// Provider implements the native numeric operations
type Provider struct {
	limits Limits

	primes   *PrimeOps
	sequence *SequenceOps
	digest   *DigestOps
	arrays   *ArrayOps
}

// NewProvider creates a native provider with the given limits
func NewProvider(limits Limits) *Provider {
	p := &Provider{limits: limits}
	p.primes = &PrimeOps{limits: &p.limits}
	p.sequence = &SequenceOps{limits: &p.limits}
	p.digest = &DigestOps{limits: &p.limits}
	p.arrays = &ArrayOps{limits: &p.limits}
	return p
}

// Limits returns the limits the provider enforces
func (p *Provider) Limits() Limits {
	return p.limits
}

// Definition returns service metadata with all module tools
func (p *Provider) Definition() types.Service {
	tools := []types.Tool{}
	tools = append(tools, p.primes.GetTools()...)
	tools = append(tools, p.sequence.GetTools()...)
	tools = append(tools, p.digest.GetTools()...)
	tools = append(tools, p.arrays.GetTools()...)

	return types.Service{
		ID:          ServiceID,
		Name:        "Native Compute Service",
		Description: "CPU-bound numeric routines: prime counting, primality, fibonacci, demo password hash, array sum",
		Version:     "1.0.0",
		Category:    types.CategoryNative,
		Capabilities: []string{
			"primes",
			"fibonacci",
			"hashing",
			"summation",
			"parallel",
		},
		Tools: tools,
	}
}

// Execute routes to appropriate module
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if params == nil {
		params = map[string]interface{}{}
	}

	switch toolID {
	case "native.count_primes":
		return p.primes.CountPrimes(ctx, params, appCtx)
	case "native.count_primes_parallel":
		return p.primes.CountPrimesParallel(ctx, params, appCtx)
	case "native.is_prime":
		return p.primes.IsPrime(ctx, params, appCtx)

	case "native.fibonacci":
		return p.sequence.Fibonacci(ctx, params, appCtx)

	case "native.hash_password":
		return p.digest.HashPassword(ctx, params, appCtx)

	case "native.sum_array":
		return p.arrays.SumArray(ctx, params, appCtx)

	default:
		return Failure("unknown tool: " + toolID)
	}
}
