package native

import (
	"context"

	"github.com/GriffinCanCode/AgentOS/addons/internal/compute"
	"github.com/GriffinCanCode/AgentOS/addons/internal/shared/types"
)

// DigestOps handles the demonstration hash
type DigestOps struct {
	limits *Limits
}

// GetTools returns digest tool definitions
func (d *DigestOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "native.hash_password",
			Name:        "Hash Password (demo)",
			Description: "Iterated multiply-add digest as 16 hex digits. Not for real credentials",
			Parameters: []types.Parameter{
				{Name: "password", Type: "string", Description: "Input text", Required: true},
				{Name: "iterations", Type: "integer", Description: "Rounds (uint32), 0 yields all zeros", Required: true},
			},
			Returns: "string",
		},
	}
}

// HashPassword digests a password
func (d *DigestOps) HashPassword(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	password, err := GetString(params, "password")
	if err != nil {
		return Failure(err.Error())
	}
	iterations, err := GetUint32(params, "iterations")
	if err != nil {
		return Failure(err.Error())
	}
	if err := d.limits.CheckHashWork(len(password), iterations); err != nil {
		return Failure(err.Error())
	}

	return Success(map[string]interface{}{
		"result": compute.HashPassword(password, iterations),
		"demo":   true,
	})
}
