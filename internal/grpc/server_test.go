package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/GriffinCanCode/AgentOS/addons/internal/domain/service"
	"github.com/GriffinCanCode/AgentOS/addons/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AgentOS/addons/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/addons/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/AgentOS/addons/internal/providers/native"
)

type testEnv struct {
	client  *Client
	metrics *monitoring.Metrics
	logs    *observer.ObservedLogs
}

func bufDialer(lis *bufconn.Listener) ClientOption {
	return WithDialOptions(grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
		return lis.DialContext(ctx)
	}))
}

func startServer(t *testing.T, limits native.Limits, opts ...ClientOption) *testEnv {
	t.Helper()

	metrics := monitoring.NewMetrics()
	core, logs := observer.New(zap.DebugLevel)
	logger := logging.Wrap(zap.New(core))
	registry := service.NewRegistry(service.WithMetrics(metrics), service.WithLogger(logger))
	require.NoError(t, registry.Register(native.NewProvider(limits)))

	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(
		UnaryServerInterceptor(logger, metrics),
	))
	RegisterNativeServer(srv, NewServer(registry))

	lis := bufconn.Listen(1 << 20)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	opts = append([]ClientOption{bufDialer(lis), WithClientMetrics(metrics)}, opts...)
	client, err := NewClient("passthrough:///bufnet", opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return &testEnv{client: client, metrics: metrics, logs: logs}
}

func TestClientRoundTrip(t *testing.T) {
	env := startServer(t, native.DefaultLimits())
	ctx := context.Background()

	prime, err := env.client.IsPrime(ctx, 97)
	require.NoError(t, err)
	assert.True(t, prime)

	prime, err = env.client.IsPrime(ctx, 4294967291)
	require.NoError(t, err)
	assert.True(t, prime)

	count, err := env.client.CountPrimes(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, uint32(25), count)

	count, err = env.client.CountPrimesParallel(ctx, 10000)
	require.NoError(t, err)
	assert.Equal(t, uint32(1229), count)

	fib, err := env.client.Fibonacci(ctx, 93)
	require.NoError(t, err)
	assert.Equal(t, uint64(12200160415121876738), fib)

	digest, err := env.client.HashPassword(ctx, "ab", 2)
	require.NoError(t, err)
	assert.Equal(t, "00000000002d97c4", digest)

	sum, err := env.client.SumArray(ctx, []float64{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, 6.0, sum)

	sum, err = env.client.SumArray(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, sum)

	data, err := env.client.Execute(ctx, "native.count_primes", map[string]interface{}{"max": 10})
	require.NoError(t, err)
	assert.Equal(t, 4.0, data["result"])
}

func TestStatusCodes(t *testing.T) {
	env := startServer(t, native.Limits{MaxPrimeBound: 100})
	ctx := context.Background()

	tests := []struct {
		name     string
		call     func() error
		wantCode codes.Code
		wantMsg  string
	}{
		{
			name: "limit exceeded",
			call: func() error {
				_, err := env.client.CountPrimes(ctx, 1000)
				return err
			},
			wantCode: codes.InvalidArgument,
			wantMsg:  native.ErrLimitExceeded.Error(),
		},
		{
			name: "unknown service",
			call: func() error {
				_, err := env.client.Execute(ctx, "storage.get", nil)
				return err
			},
			wantCode: codes.NotFound,
			wantMsg:  "service not found",
		},
		{
			name: "unknown tool",
			call: func() error {
				_, err := env.client.Execute(ctx, "native.sqrt", nil)
				return err
			},
			wantCode: codes.InvalidArgument,
			wantMsg:  "unknown tool",
		},
		{
			name: "malformed tool id",
			call: func() error {
				_, err := env.client.Execute(ctx, "nodot", nil)
				return err
			},
			wantCode: codes.InvalidArgument,
		},
		{
			name: "empty tool id",
			call: func() error {
				_, err := env.client.Execute(ctx, "", nil)
				return err
			},
			wantCode: codes.InvalidArgument,
			wantMsg:  "tool_id is required",
		},
		{
			name: "password not a string",
			call: func() error {
				in := &structpb.Struct{Fields: map[string]*structpb.Value{
					"password":   structpb.NewNumberValue(5),
					"iterations": structpb.NewNumberValue(1),
				}}
				return env.client.conn.Invoke(ctx, MethodHashPassword, in, new(wrapperspb.StringValue))
			},
			wantCode: codes.InvalidArgument,
			wantMsg:  "password must be a string",
		},
		{
			name: "fractional iterations",
			call: func() error {
				in := &structpb.Struct{Fields: map[string]*structpb.Value{
					"password":   structpb.NewStringValue("x"),
					"iterations": structpb.NewNumberValue(1.5),
				}}
				return env.client.conn.Invoke(ctx, MethodHashPassword, in, new(wrapperspb.StringValue))
			},
			wantCode: codes.InvalidArgument,
			wantMsg:  "must be an integer",
		},
		{
			name: "non-number element",
			call: func() error {
				in := &structpb.ListValue{Values: []*structpb.Value{
					structpb.NewNumberValue(1),
					structpb.NewStringValue("two"),
				}}
				return env.client.conn.Invoke(ctx, MethodSumArray, in, new(wrapperspb.DoubleValue))
			},
			wantCode: codes.InvalidArgument,
			wantMsg:  "numbers[1] must be a number",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, status.Code(err), err.Error())
			if tt.wantMsg != "" {
				assert.Contains(t, status.Convert(err).Message(), tt.wantMsg)
			}
		})
	}

	// Rejected input says nothing about the server's health
	assert.Equal(t, resilience.StateClosed, env.client.Breaker().State())
}

func TestInterceptorRecordsCalls(t *testing.T) {
	env := startServer(t, native.DefaultLimits())

	ctx := WithRequestID(context.Background(), "upstream-7")
	_, err := env.client.IsPrime(ctx, 7)
	require.NoError(t, err)
	_, err = env.client.Fibonacci(ctx, 10)
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.GRPCCalls.WithLabelValues(MethodIsPrime, "OK")))
	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.GRPCCalls.WithLabelValues(MethodFibonacci, "OK")))
	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.ToolCalls.WithLabelValues("native", "is_prime", monitoring.StatusSuccess)))

	entries := env.logs.FilterMessage("gRPC call").All()
	require.Len(t, entries, 2)
	fields := entries[0].ContextMap()
	assert.Equal(t, MethodIsPrime, fields["method"])
	assert.Equal(t, "OK", fields["code"])
	assert.Equal(t, "upstream-7", fields["request_id"])

	calls := env.logs.FilterMessage("Tool executed").All()
	require.Len(t, calls, 2)
	assert.Equal(t, "upstream-7", calls[0].ContextMap()["request_id"])
}

func TestInterceptorMintsRequestID(t *testing.T) {
	env := startServer(t, native.DefaultLimits())

	_, err := env.client.IsPrime(context.Background(), 7)
	require.NoError(t, err)

	entries := env.logs.FilterMessage("gRPC call").All()
	require.Len(t, entries, 1)
	assert.Regexp(t, `^req_[0-9A-Z]{26}$`, entries[0].ContextMap()["request_id"])
}

func TestInterceptorRecoversPanic(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	interceptor := UnaryServerInterceptor(logging.Wrap(zap.New(core)), nil)

	resp, err := interceptor(context.Background(), nil,
		&grpc.UnaryServerInfo{FullMethod: "/test/Panic"},
		func(ctx context.Context, req interface{}) (interface{}, error) {
			panic("boom")
		})

	assert.Nil(t, resp)
	assert.Equal(t, codes.Internal, status.Code(err))
	assert.Equal(t, 1, logs.FilterMessage("Panic in gRPC handler").Len())
}

func TestBreakerOpensWhenServerUnreachable(t *testing.T) {
	lis := bufconn.Listen(1 << 10)
	require.NoError(t, lis.Close())

	metrics := monitoring.NewMetrics()
	client, err := NewClient("passthrough:///bufnet",
		bufDialer(lis),
		WithClientMetrics(metrics),
		WithCallTimeout(2*time.Second),
		WithBreakerSettings(resilience.Settings{
			Timeout: time.Minute,
			ReadyToTrip: func(counts resilience.Counts) bool {
				return counts.ConsecutiveFailures >= 2
			},
		}),
	)
	require.NoError(t, err)
	defer client.Close()

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		_, err := client.IsPrime(ctx, 7)
		require.Error(t, err)
		assert.NotErrorIs(t, err, resilience.ErrCircuitOpen)
	}

	_, err = client.IsPrime(ctx, 7)
	assert.ErrorIs(t, err, resilience.ErrCircuitOpen)
	assert.Contains(t, err.Error(), "native service unavailable")

	assert.Equal(t, resilience.StateOpen, client.Breaker().State())
	assert.Equal(t, float64(resilience.StateOpen),
		testutil.ToFloat64(metrics.BreakerState.WithLabelValues(client.Breaker().Name())))
}

func TestIsHealthy(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, true},
		{status.Error(codes.InvalidArgument, "bad"), true},
		{status.Error(codes.NotFound, "missing"), true},
		{status.Error(codes.Canceled, "gone"), true},
		{status.Error(codes.Unavailable, "down"), false},
		{status.Error(codes.Internal, "bug"), false},
		{status.Error(codes.DeadlineExceeded, "slow"), false},
		{context.DeadlineExceeded, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, isHealthy(tt.err), "%v", tt.err)
	}
}

func TestServerExecuteValidation(t *testing.T) {
	registry := service.NewRegistry()
	require.NoError(t, registry.Register(native.NewProvider(native.DefaultLimits())))
	srv := NewServer(registry)
	ctx := context.Background()

	in, err := structpb.NewStruct(map[string]interface{}{
		"tool_id": "native.is_prime",
		"params":  map[string]interface{}{"n": 13},
		"app_id":  "my-app",
	})
	require.NoError(t, err)
	out, err := srv.Execute(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, true, out.AsMap()["result"])

	in.Fields["app_id"] = structpb.NewStringValue("bad id")
	_, err = srv.Execute(ctx, in)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = srv.IsPrime(cancelled, wrapperspb.UInt32(3))
	assert.Equal(t, codes.Canceled, status.Code(err))
}

func TestToStatus(t *testing.T) {
	assert.Equal(t, codes.NotFound, status.Code(toStatus(service.ErrServiceNotFound)))
	assert.Equal(t, codes.InvalidArgument, status.Code(toStatus(service.ErrInvalidToolID)))
	assert.Equal(t, codes.DeadlineExceeded, status.Code(toStatus(context.DeadlineExceeded)))
	assert.Equal(t, codes.Internal, status.Code(toStatus(assert.AnError)))
}
