// Package grpc exposes the native service over gRPC and provides a client
// for it.
//
// The service is addons.native.v1.Native. Its messages are protobuf
// well-known types (wrapperspb, structpb), so the service descriptor is
// written by hand instead of generated from a .proto file.
//
// Every server method routes through the service registry. A rejected
// input becomes codes.InvalidArgument, an unknown service codes.NotFound,
// a cancelled or expired context codes.Canceled or codes.DeadlineExceeded,
// and anything else codes.Internal.
//
// Example Usage:
//
//	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(
//		addonsgrpc.UnaryServerInterceptor(logger, metrics)))
//	addonsgrpc.RegisterNativeServer(srv, addonsgrpc.NewServer(registry))
//
//	client, err := addonsgrpc.NewClient("localhost:50061")
//	n, err := client.CountPrimes(ctx, 1_000_000)
package grpc
