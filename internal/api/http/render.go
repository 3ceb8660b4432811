package http

import (
	"context"
	"errors"
	"math"
	"net/http"

	"github.com/GriffinCanCode/AgentOS/addons/internal/domain/service"
	"github.com/GriffinCanCode/AgentOS/addons/internal/shared/types"
	"github.com/gin-gonic/gin"
)

// respond writes a registry outcome. A failed Result is the caller's
// fault (400); a Go error is routing (404) or the server's (500/503).
func respond(c *gin.Context, result *types.Result, err error) {
	if err != nil {
		_ = c.Error(err)
		fail(c, statusFor(err), err.Error())
		return
	}
	if !result.Success {
		c.JSON(http.StatusBadRequest, result)
		return
	}
	c.JSON(http.StatusOK, types.Result{Success: true, Data: jsonSafe(result.Data)})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrServiceNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidToolID):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func fail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, types.Result{Success: false, Error: &message})
}

// jsonSafe replaces NaN and ±Inf, which JSON cannot carry, with the
// strings "NaN", "+Inf" and "-Inf".
func jsonSafe(data map[string]interface{}) map[string]interface{} {
	var out map[string]interface{}
	for k, v := range data {
		f, ok := v.(float64)
		if !ok || !(math.IsNaN(f) || math.IsInf(f, 0)) {
			continue
		}
		if out == nil {
			out = make(map[string]interface{}, len(data))
			for k2, v2 := range data {
				out[k2] = v2
			}
		}
		switch {
		case math.IsNaN(f):
			out[k] = "NaN"
		case f > 0:
			out[k] = "+Inf"
		default:
			out[k] = "-Inf"
		}
	}
	if out == nil {
		return data
	}
	return out
}
