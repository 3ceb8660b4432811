// Package types provides shared data structures for the addons service.
//
// These types describe the boundary between a host and the native
// numeric operations: what a service offers, how a tool is called, and
// what comes back.
//
// Core Types:
//   - Service: Service provider definition
//   - Tool, Parameter: Tool specification
//   - Context: Execution context for a call
//   - Result: Standard operation result
//
// Request Types:
//   - ExecuteRequest: Generic tool execution
//   - DiscoverRequest: Intent-based service discovery
//   - HashRequest, SumRequest: Bodies of the versioned endpoints
//
// Example Usage:
//
//	result, err := registry.Execute(ctx, "native.is_prime",
//	    map[string]interface{}{"n": 97}, &types.Context{CallID: id})
package types
