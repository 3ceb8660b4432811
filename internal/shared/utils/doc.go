// Package utils holds input validation shared by the HTTP and gRPC
// surfaces: tool and app IDs, categories, discovery queries and
// parameter nesting.
package utils
