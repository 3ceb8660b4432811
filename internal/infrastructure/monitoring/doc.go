/*
Package monitoring provides Prometheus metrics for the addons service.

# Overview

Each Metrics value owns a private prometheus.Registry holding HTTP
request metrics, tool execution metrics, gRPC call metrics, circuit
breaker state, uptime and the Go/process collectors.

# Usage

	metrics := monitoring.NewMetrics()

	// Add middleware to Gin router
	router.Use(monitoring.Middleware(metrics))

	// Time a tool call
	timer := monitoring.NewTimer(metrics, "native", "count_primes")
	// ... perform operation ...
	timer.Stop(monitoring.StatusSuccess)

# Metrics Endpoint

	router.GET("/metrics", gin.WrapH(metrics.Handler()))
*/
package monitoring
