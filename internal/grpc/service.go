package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "addons.native.v1.Native"

// Full method names, as seen by interceptors and metrics
const (
	MethodIsPrime             = "/" + ServiceName + "/IsPrime"
	MethodCountPrimes         = "/" + ServiceName + "/CountPrimes"
	MethodCountPrimesParallel = "/" + ServiceName + "/CountPrimesParallel"
	MethodFibonacci           = "/" + ServiceName + "/Fibonacci"
	MethodHashPassword        = "/" + ServiceName + "/HashPassword"
	MethodSumArray            = "/" + ServiceName + "/SumArray"
	MethodExecute             = "/" + ServiceName + "/Execute"
)

// NativeServer is the server API for the native service. Messages are
// protobuf well-known types, so no generated code is needed.
type NativeServer interface {
	IsPrime(context.Context, *wrapperspb.UInt32Value) (*wrapperspb.BoolValue, error)
	CountPrimes(context.Context, *wrapperspb.UInt32Value) (*wrapperspb.UInt32Value, error)
	CountPrimesParallel(context.Context, *wrapperspb.UInt32Value) (*wrapperspb.UInt32Value, error)
	Fibonacci(context.Context, *wrapperspb.UInt32Value) (*wrapperspb.UInt64Value, error)
	HashPassword(context.Context, *structpb.Struct) (*wrapperspb.StringValue, error)
	SumArray(context.Context, *structpb.ListValue) (*wrapperspb.DoubleValue, error)
	Execute(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// ServiceDesc describes the native service for grpc.Server.RegisterService
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*NativeServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("IsPrime", newUInt32, NativeServer.IsPrime),
		unary("CountPrimes", newUInt32, NativeServer.CountPrimes),
		unary("CountPrimesParallel", newUInt32, NativeServer.CountPrimesParallel),
		unary("Fibonacci", newUInt32, NativeServer.Fibonacci),
		unary("HashPassword", newStruct, NativeServer.HashPassword),
		unary("SumArray", newList, NativeServer.SumArray),
		unary("Execute", newStruct, NativeServer.Execute),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "addons/native/v1/native.proto",
}

// RegisterNativeServer registers srv on s
func RegisterNativeServer(s grpc.ServiceRegistrar, srv NativeServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func newUInt32() *wrapperspb.UInt32Value { return new(wrapperspb.UInt32Value) }
func newStruct() *structpb.Struct        { return new(structpb.Struct) }
func newList() *structpb.ListValue       { return new(structpb.ListValue) }

// unary builds the method handler protoc-gen-go-grpc would generate
func unary[Req, Resp proto.Message](
	name string,
	newReq func() Req,
	call func(NativeServer, context.Context, Req) (Resp, error),
) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := newReq()
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(NativeServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: "/" + ServiceName + "/" + name,
			}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(srv.(NativeServer), ctx, req.(Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}
