package http

import (
	"net/http"
	"strconv"

	"github.com/GriffinCanCode/AgentOS/addons/internal/shared/types"
	"github.com/gin-gonic/gin"
)

// CountPrimes handles GET /v1/primes/count?max=N[&parallel=true&workers=W]
func (h *Handlers) CountPrimes(c *gin.Context) {
	max, ok := uintQuery(c, "max", true)
	if !ok {
		return
	}
	params := map[string]interface{}{"max": max}

	toolID := "native.count_primes"
	if parallel, _ := strconv.ParseBool(c.Query("parallel")); parallel {
		toolID = "native.count_primes_parallel"
		workers, ok := uintQuery(c, "workers", false)
		if !ok {
			return
		}
		if c.Query("workers") != "" {
			params["workers"] = workers
		}
	}

	h.execute(c, toolID, params, nil)
}

// IsPrime handles GET /v1/primes/:n
func (h *Handlers) IsPrime(c *gin.Context) {
	n, ok := uintParam(c, "n")
	if !ok {
		return
	}
	h.execute(c, "native.is_prime", map[string]interface{}{"n": n}, nil)
}

// Fibonacci handles GET /v1/fibonacci/:n
func (h *Handlers) Fibonacci(c *gin.Context) {
	n, ok := uintParam(c, "n")
	if !ok {
		return
	}
	h.execute(c, "native.fibonacci", map[string]interface{}{"n": n}, nil)
}

// HashPassword handles POST /v1/hash
func (h *Handlers) HashPassword(c *gin.Context) {
	var req types.HashRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	h.execute(c, "native.hash_password", map[string]interface{}{
		"password":   *req.Password,
		"iterations": *req.Iterations,
	}, nil)
}

// SumArray handles POST /v1/sum
func (h *Handlers) SumArray(c *gin.Context) {
	var req types.SumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	h.execute(c, "native.sum_array", map[string]interface{}{"numbers": req.Numbers}, nil)
}

// Range checks are left to the provider so messages match across surfaces.
func uintParam(c *gin.Context, name string) (uint64, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, name+" must be a non-negative integer")
		return 0, false
	}
	return v, true
}

func uintQuery(c *gin.Context, name string, required bool) (uint64, bool) {
	raw := c.Query(name)
	if raw == "" {
		if required {
			fail(c, http.StatusBadRequest, name+" is required")
			return 0, false
		}
		return 0, true
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, name+" must be a non-negative integer")
		return 0, false
	}
	return v, true
}
