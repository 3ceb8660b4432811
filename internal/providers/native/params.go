package native

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/GriffinCanCode/AgentOS/addons/internal/shared/types"
)

// Success creates a successful result
func Success(data map[string]interface{}) (*types.Result, error) {
	return &types.Result{Success: true, Data: data}, nil
}

// Failure creates a failed result
func Failure(message string) (*types.Result, error) {
	msg := message
	return &types.Result{Success: false, Error: &msg}, nil
}

// Failuref creates a failed result from a format string
func Failuref(format string, args ...interface{}) (*types.Result, error) {
	return Failure(fmt.Sprintf(format, args...))
}

// GetUint32 extracts an unsigned 32-bit integer. Decoded JSON numbers
// arrive as float64, so integral floats are accepted; negative,
// fractional or out-of-range values are not.
func GetUint32(params map[string]interface{}, key string) (uint32, error) {
	val, ok := params[key]
	if !ok || val == nil {
		return 0, fmt.Errorf("%s is required", key)
	}

	switch v := val.(type) {
	case uint32:
		return v, nil
	case uint:
		return checkUint(key, uint64(v))
	case uint64:
		return checkUint(key, v)
	case int:
		return checkInt(key, int64(v))
	case int32:
		return checkInt(key, int64(v))
	case int64:
		return checkInt(key, v)
	case float32:
		return checkFloat(key, float64(v))
	case float64:
		return checkFloat(key, v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, fmt.Errorf("%s must be a number", key)
		}
		return checkFloat(key, f)
	default:
		return 0, fmt.Errorf("%s must be a number, got %T", key, val)
	}
}

// GetOptionalUint32 is GetUint32 for parameters that may be omitted
func GetOptionalUint32(params map[string]interface{}, key string, fallback uint32) (uint32, error) {
	if val, ok := params[key]; !ok || val == nil {
		return fallback, nil
	}
	return GetUint32(params, key)
}

// GetString extracts a string parameter
func GetString(params map[string]interface{}, key string) (string, error) {
	val, ok := params[key]
	if !ok || val == nil {
		return "", fmt.Errorf("%s is required", key)
	}
	s, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("%s must be a string, got %T", key, val)
	}
	return s, nil
}

// GetNumbers extracts an array of numbers. Every element must be
// numeric; nothing is skipped.
func GetNumbers(params map[string]interface{}, key string) ([]float64, error) {
	val, ok := params[key]
	if !ok || val == nil {
		return nil, fmt.Errorf("%s array required", key)
	}

	switch arr := val.(type) {
	case []float64:
		return arr, nil
	case []interface{}:
		numbers := make([]float64, 0, len(arr))
		for i, v := range arr {
			switch num := v.(type) {
			case float64:
				numbers = append(numbers, num)
			case float32:
				numbers = append(numbers, float64(num))
			case int:
				numbers = append(numbers, float64(num))
			case int64:
				numbers = append(numbers, float64(num))
			case json.Number:
				f, err := num.Float64()
				if err != nil {
					return nil, fmt.Errorf("%s[%d] must be a number", key, i)
				}
				numbers = append(numbers, f)
			default:
				return nil, fmt.Errorf("%s[%d] must be a number, got %T", key, i, v)
			}
		}
		return numbers, nil
	default:
		return nil, fmt.Errorf("%s must be an array, got %T", key, val)
	}
}

func checkUint(key string, v uint64) (uint32, error) {
	if v > math.MaxUint32 {
		return 0, fmt.Errorf("%s must not exceed %d", key, uint32(math.MaxUint32))
	}
	return uint32(v), nil
}

func checkInt(key string, v int64) (uint32, error) {
	if v < 0 {
		return 0, fmt.Errorf("%s must not be negative", key)
	}
	return checkUint(key, uint64(v))
}

func checkFloat(key string, v float64) (uint32, error) {
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		return 0, fmt.Errorf("%s must be finite", key)
	case v < 0:
		return 0, fmt.Errorf("%s must not be negative", key)
	case v != math.Trunc(v):
		return 0, fmt.Errorf("%s must be an integer", key)
	case v > math.MaxUint32:
		return 0, fmt.Errorf("%s must not exceed %d", key, uint32(math.MaxUint32))
	}
	return uint32(v), nil
}
