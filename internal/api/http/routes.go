package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts every endpoint on router
func (h *Handlers) RegisterRoutes(router gin.IRouter) {
	router.GET("/", h.Root)
	router.GET("/health", h.Health)

	// Service management
	router.GET("/services", h.ListServices)
	router.POST("/services/discover", h.DiscoverServices)
	router.POST("/services/execute", h.ExecuteService)

	// Versioned primitive routes
	v1 := router.Group("/v1")
	v1.GET("/primes/count", h.CountPrimes)
	v1.GET("/primes/:n", h.IsPrime)
	v1.GET("/fibonacci/:n", h.Fibonacci)
	v1.POST("/hash", h.HashPassword)
	v1.POST("/sum", h.SumArray)

	if h.metrics != nil {
		router.GET("/metrics", gin.WrapH(h.metrics.Handler()))
	}
}
