// Package server wires the addons service together and runs it.
//
// NewServer builds, from a config.Config:
//   - zap logger and Prometheus metrics
//   - the service registry with the native provider, limits from config
//   - the gin router: recovery, request ID, access log, metrics, CORS,
//     optional per-IP rate limit, body cap, then the API routes
//   - gzip compression (gzhttp) over the router
//   - the gRPC server with the logging and metrics interceptor
//
// Run listens on both ports, caps HTTP connections with
// netutil.LimitListener and serves until its context is cancelled.
// Shutdown drains both servers within the configured timeout.
//
// Example Usage:
//
//	cfg, err := config.LoadFile(path)
//	srv, err := server.NewServer(cfg)
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer stop()
//	err = srv.Run(ctx)
package server
