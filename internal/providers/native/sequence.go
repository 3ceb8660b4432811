package native

import (
	"context"
	"strconv"

	"github.com/GriffinCanCode/AgentOS/addons/internal/compute"
	"github.com/GriffinCanCode/AgentOS/addons/internal/shared/types"
)

// maxSafeInteger is the largest integer a JSON (IEEE double) consumer
// can represent exactly.
const maxSafeInteger = 1<<53 - 1

// SequenceOps handles integer sequences
type SequenceOps struct {
	limits *Limits
}

// GetTools returns sequence tool definitions
func (s *SequenceOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "native.fibonacci",
			Name:        "Fibonacci",
			Description: "nth Fibonacci number modulo 2^64 (exact for n <= 93)",
			Parameters: []types.Parameter{
				{Name: "n", Type: "integer", Description: "Index (uint32), F(0)=0", Required: true},
			},
			Returns: "integer",
		},
	}
}

// Fibonacci computes F(n). The result is also returned in decimal since
// values above 2^53 lose precision as JSON numbers.
func (s *SequenceOps) Fibonacci(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	n, err := GetUint32(params, "n")
	if err != nil {
		return Failure(err.Error())
	}

	fib := compute.Fibonacci(n)
	return Success(map[string]interface{}{
		"result":       fib,
		"decimal":      strconv.FormatUint(fib, 10),
		"exact":        n <= compute.MaxExactFibonacci,
		"safe_integer": fib <= maxSafeInteger,
	})
}
