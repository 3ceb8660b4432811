package grpc

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/GriffinCanCode/AgentOS/addons/internal/domain/service"
	"github.com/GriffinCanCode/AgentOS/addons/internal/shared/id"
	"github.com/GriffinCanCode/AgentOS/addons/internal/shared/types"
	"github.com/GriffinCanCode/AgentOS/addons/internal/shared/utils"
)

// Server implements NativeServer on top of the service registry
type Server struct {
	registry *service.Registry
}

var _ NativeServer = (*Server)(nil)

// NewServer creates a server that routes every call through registry
func NewServer(registry *service.Registry) *Server {
	return &Server{registry: registry}
}

// IsPrime reports whether n is prime
func (s *Server) IsPrime(ctx context.Context, in *wrapperspb.UInt32Value) (*wrapperspb.BoolValue, error) {
	data, err := s.call(ctx, "native.is_prime", map[string]interface{}{"n": in.GetValue()}, nil)
	if err != nil {
		return nil, err
	}
	v, err := field[bool](data, "result")
	if err != nil {
		return nil, err
	}
	return wrapperspb.Bool(v), nil
}

// CountPrimes counts primes in [2, max]
func (s *Server) CountPrimes(ctx context.Context, in *wrapperspb.UInt32Value) (*wrapperspb.UInt32Value, error) {
	return s.count(ctx, "native.count_primes", in)
}

// CountPrimesParallel counts primes in [2, max] using the server's default
// worker count
func (s *Server) CountPrimesParallel(ctx context.Context, in *wrapperspb.UInt32Value) (*wrapperspb.UInt32Value, error) {
	return s.count(ctx, "native.count_primes_parallel", in)
}

func (s *Server) count(ctx context.Context, toolID string, in *wrapperspb.UInt32Value) (*wrapperspb.UInt32Value, error) {
	data, err := s.call(ctx, toolID, map[string]interface{}{"max": in.GetValue()}, nil)
	if err != nil {
		return nil, err
	}
	v, err := field[uint32](data, "result")
	if err != nil {
		return nil, err
	}
	return wrapperspb.UInt32(v), nil
}

// Fibonacci returns F(n) modulo 2^64
func (s *Server) Fibonacci(ctx context.Context, in *wrapperspb.UInt32Value) (*wrapperspb.UInt64Value, error) {
	data, err := s.call(ctx, "native.fibonacci", map[string]interface{}{"n": in.GetValue()}, nil)
	if err != nil {
		return nil, err
	}
	v, err := field[uint64](data, "result")
	if err != nil {
		return nil, err
	}
	return wrapperspb.UInt64(v), nil
}

// HashPassword takes {password, iterations} and returns the demo digest
func (s *Server) HashPassword(ctx context.Context, in *structpb.Struct) (*wrapperspb.StringValue, error) {
	data, err := s.call(ctx, "native.hash_password", in.AsMap(), nil)
	if err != nil {
		return nil, err
	}
	v, err := field[string](data, "result")
	if err != nil {
		return nil, err
	}
	return wrapperspb.String(v), nil
}

// SumArray sums the list in order. Every element must be a number.
func (s *Server) SumArray(ctx context.Context, in *structpb.ListValue) (*wrapperspb.DoubleValue, error) {
	data, err := s.call(ctx, "native.sum_array", map[string]interface{}{"numbers": in.AsSlice()}, nil)
	if err != nil {
		return nil, err
	}
	v, err := field[float64](data, "result")
	if err != nil {
		return nil, err
	}
	return wrapperspb.Double(v), nil
}

// Execute runs any registered tool. The request is
// {tool_id, params, app_id?}; the response is the tool's data.
func (s *Server) Execute(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	fields := in.GetFields()

	toolID := fields["tool_id"].GetStringValue()
	if err := utils.ValidateToolID(toolID, "tool_id", true); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	params := fields["params"].GetStructValue().AsMap()
	if err := utils.ValidateParams(params); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	var appID *string
	if v, ok := fields["app_id"]; ok {
		app := v.GetStringValue()
		if err := utils.ValidateID(app, "app_id", true); err != nil {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		appID = &app
	}

	data, err := s.call(ctx, toolID, params, appID)
	if err != nil {
		return nil, err
	}

	out, err := structpb.NewStruct(data)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode result: %v", err)
	}
	return out, nil
}

func (s *Server) call(ctx context.Context, toolID string, params map[string]interface{}, appID *string) (map[string]interface{}, error) {
	appCtx := &types.Context{
		AppID:     appID,
		CallID:    string(id.NewCallID()),
		RequestID: RequestIDFromContext(ctx),
	}

	result, err := s.registry.Execute(ctx, toolID, params, appCtx)
	if err != nil {
		return nil, toStatus(err)
	}
	if !result.Success {
		return nil, status.Error(codes.InvalidArgument, result.ErrorMessage())
	}
	return result.Data, nil
}

// toStatus maps registry errors onto gRPC codes
func toStatus(err error) error {
	switch {
	case errors.Is(err, service.ErrServiceNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, service.ErrInvalidToolID):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

func field[T any](data map[string]interface{}, key string) (T, error) {
	v, ok := data[key].(T)
	if !ok {
		var zero T
		return zero, status.Error(codes.Internal, fmt.Sprintf("unexpected %s type %T", key, data[key]))
	}
	return v, nil
}
