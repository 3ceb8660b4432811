package native

import (
	"context"
	"math"

	"github.com/GriffinCanCode/AgentOS/addons/internal/compute"
	"github.com/GriffinCanCode/AgentOS/addons/internal/shared/types"
	"gonum.org/v1/gonum/floats"
)

// ArrayOps handles numeric array reductions
type ArrayOps struct {
	limits *Limits
}

// GetTools returns array tool definitions
func (a *ArrayOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "native.sum_array",
			Name:        "Sum Array",
			Description: "Sum numbers left to right in float64",
			Parameters: []types.Parameter{
				{Name: "numbers", Type: "array", Description: "Numbers to sum", Required: true},
			},
			Returns: "number",
		},
	}
}

// SumArray sums numbers in input order. error_bound is the worst-case
// rounding error of a recursive sum, (n-1)*eps*sum(|x|).
func (a *ArrayOps) SumArray(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	numbers, err := GetNumbers(params, "numbers")
	if err != nil {
		return Failure(err.Error())
	}
	if err := a.limits.CheckArrayLength(len(numbers)); err != nil {
		return Failure(err.Error())
	}

	bound := 0.0
	if len(numbers) > 1 {
		bound = float64(len(numbers)-1) * epsilon * floats.Norm(numbers, 1)
	}

	return Success(map[string]interface{}{
		"result":      compute.SumArray(numbers),
		"count":       len(numbers),
		"error_bound": bound,
	})
}

// epsilon is the float64 unit roundoff, 2^-52.
var epsilon = math.Nextafter(1, 2) - 1
