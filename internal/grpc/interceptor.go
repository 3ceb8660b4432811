package grpc

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/GriffinCanCode/AgentOS/addons/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AgentOS/addons/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/addons/internal/shared/id"
)

// RequestIDKey is the metadata key carrying the request ID, the gRPC
// counterpart of the X-Request-ID header.
const RequestIDKey = "x-request-id"

type requestIDCtxKey struct{}

// WithRequestID stores a request ID on ctx. Client calls made with ctx
// forward it as metadata.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDCtxKey{}, requestID)
}

// RequestIDFromContext returns the request ID stored on ctx, or "".
func RequestIDFromContext(ctx context.Context) string {
	v, _ := ctx.Value(requestIDCtxKey{}).(string)
	return v
}

// incomingRequestID keeps an acceptable caller-supplied ID or mints one
func incomingRequestID(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if vals := md.Get(RequestIDKey); len(vals) > 0 && id.IsAcceptableExternal(vals[0]) {
			return vals[0]
		}
	}
	return string(id.NewRequestID())
}

// UnaryServerInterceptor assigns a request ID, recovers panics, records
// metrics and logs each call. metrics may be nil.
func UnaryServerInterceptor(logger *logging.Logger, metrics *monitoring.Metrics) grpc.UnaryServerInterceptor {
	if logger == nil {
		logger = logging.NewNop()
	}
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (resp interface{}, err error) {
		start := time.Now()
		requestID := incomingRequestID(ctx)
		ctx = WithRequestID(ctx, requestID)
		_ = grpc.SetHeader(ctx, metadata.Pairs(RequestIDKey, requestID))

		defer func() {
			if r := recover(); r != nil {
				logger.Error("Panic in gRPC handler",
					zap.String("method", info.FullMethod),
					zap.String("request_id", requestID),
					zap.String("panic", fmt.Sprint(r)))
				resp, err = nil, status.Error(codes.Internal, "internal error")
			}

			code := status.Code(err)
			duration := time.Since(start)
			if metrics != nil {
				metrics.RecordGRPCCall(info.FullMethod, code.String(), duration)
			}

			fields := []zap.Field{
				zap.String("method", info.FullMethod),
				zap.String("code", code.String()),
				zap.Duration("duration", duration),
				zap.String("request_id", requestID),
			}
			switch code {
			case codes.OK:
				logger.Info("gRPC call", fields...)
			case codes.InvalidArgument, codes.NotFound, codes.Canceled:
				logger.Warn("gRPC call", append(fields, zap.Error(err))...)
			default:
				logger.Error("gRPC call", append(fields, zap.Error(err))...)
			}
		}()

		return handler(ctx, req)
	}
}

// requestIDClientInterceptor forwards the ctx request ID as metadata
func requestIDClientInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if rid := RequestIDFromContext(ctx); rid != "" {
		ctx = metadata.AppendToOutgoingContext(ctx, RequestIDKey, rid)
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}
