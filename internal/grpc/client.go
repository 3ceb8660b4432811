package grpc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/GriffinCanCode/AgentOS/addons/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AgentOS/addons/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/addons/internal/infrastructure/resilience"
)

const (
	defaultCallTimeout = 30 * time.Second
	maxMessageSize     = 16 * 1024 * 1024
)

// Client calls a remote native service through a circuit breaker
type Client struct {
	conn    *grpc.ClientConn
	addr    string
	timeout time.Duration
	breaker *resilience.Breaker
}

type clientOptions struct {
	metrics     *monitoring.Metrics
	logger      *logging.Logger
	timeout     time.Duration
	breaker     resilience.Settings
	dialOptions []grpc.DialOption
}

// ClientOption configures a Client
type ClientOption func(*clientOptions)

// WithClientMetrics exports the breaker state as a gauge
func WithClientMetrics(m *monitoring.Metrics) ClientOption {
	return func(o *clientOptions) { o.metrics = m }
}

// WithClientLogger logs breaker state changes
func WithClientLogger(l *logging.Logger) ClientOption {
	return func(o *clientOptions) { o.logger = l }
}

// WithCallTimeout bounds each call
func WithCallTimeout(d time.Duration) ClientOption {
	return func(o *clientOptions) { o.timeout = d }
}

// WithBreakerSettings overrides the trip policy. IsSuccessful and
// OnStateChange are always set by the client.
func WithBreakerSettings(s resilience.Settings) ClientOption {
	return func(o *clientOptions) { o.breaker = s }
}

// WithDialOptions appends raw dial options, e.g. a bufconn dialer
func WithDialOptions(opts ...grpc.DialOption) ClientOption {
	return func(o *clientOptions) { o.dialOptions = append(o.dialOptions, opts...) }
}

// NewClient creates a client for addr. The connection is lazy; the first
// call dials.
func NewClient(addr string, opts ...ClientOption) (*Client, error) {
	o := clientOptions{
		logger:  logging.NewNop(),
		timeout: defaultCallTimeout,
		breaker: resilience.Settings{
			MaxRequests: 3,
			Interval:    30 * time.Second,
			Timeout:     10 * time.Second,
			ReadyToTrip: func(counts resilience.Counts) bool {
				// 5+ consecutive failures or over half of 10+ requests
				return counts.ConsecutiveFailures >= 5 ||
					(counts.Requests >= 10 && float64(counts.TotalFailures)/float64(counts.Requests) > 0.5)
			},
		},
	}
	for _, opt := range opts {
		opt(&o)
	}

	dialOpts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithKeepaliveParams(keepalive.ClientParameters{
			Time:                60 * time.Second,
			Timeout:             20 * time.Second,
			PermitWithoutStream: false,
		}),
		grpc.WithDefaultCallOptions(
			grpc.MaxCallRecvMsgSize(maxMessageSize),
			grpc.MaxCallSendMsgSize(maxMessageSize),
		),
		grpc.WithChainUnaryInterceptor(requestIDClientInterceptor),
	}
	dialOpts = append(dialOpts, o.dialOptions...)

	conn, err := grpc.NewClient(addr, dialOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create native client: %w", err)
	}

	settings := o.breaker
	settings.IsSuccessful = isHealthy
	settings.OnStateChange = func(name string, from, to resilience.State) {
		o.logger.Warn("Circuit breaker state changed",
			zap.String("breaker", name),
			zap.String("from", from.String()),
			zap.String("to", to.String()))
		if o.metrics != nil {
			o.metrics.SetBreakerState(name, int(to))
		}
	}

	return &Client{
		conn:    conn,
		addr:    addr,
		timeout: o.timeout,
		breaker: resilience.New("native:"+addr, settings),
	}, nil
}

// isHealthy treats errors that blame the request, not the remote, as
// successes for the breaker.
func isHealthy(err error) bool {
	switch status.Code(err) {
	case codes.OK, codes.InvalidArgument, codes.NotFound, codes.Canceled:
		return true
	default:
		return false
	}
}

// Close closes the connection
func (c *Client) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// Breaker exposes the client's circuit breaker
func (c *Client) Breaker() *resilience.Breaker {
	return c.breaker
}

// IsPrime reports whether n is prime
func (c *Client) IsPrime(ctx context.Context, n uint32) (bool, error) {
	out, err := invoke(ctx, c, MethodIsPrime, wrapperspb.UInt32(n), new(wrapperspb.BoolValue))
	return out.GetValue(), err
}

// CountPrimes counts primes in [2, max]
func (c *Client) CountPrimes(ctx context.Context, max uint32) (uint32, error) {
	out, err := invoke(ctx, c, MethodCountPrimes, wrapperspb.UInt32(max), new(wrapperspb.UInt32Value))
	return out.GetValue(), err
}

// CountPrimesParallel counts primes in [2, max] on the server's workers
func (c *Client) CountPrimesParallel(ctx context.Context, max uint32) (uint32, error) {
	out, err := invoke(ctx, c, MethodCountPrimesParallel, wrapperspb.UInt32(max), new(wrapperspb.UInt32Value))
	return out.GetValue(), err
}

// Fibonacci returns F(n) modulo 2^64
func (c *Client) Fibonacci(ctx context.Context, n uint32) (uint64, error) {
	out, err := invoke(ctx, c, MethodFibonacci, wrapperspb.UInt32(n), new(wrapperspb.UInt64Value))
	return out.GetValue(), err
}

// HashPassword returns the demo digest of password
func (c *Client) HashPassword(ctx context.Context, password string, iterations uint32) (string, error) {
	in := &structpb.Struct{Fields: map[string]*structpb.Value{
		"password":   structpb.NewStringValue(password),
		"iterations": structpb.NewNumberValue(float64(iterations)),
	}}
	out, err := invoke(ctx, c, MethodHashPassword, in, new(wrapperspb.StringValue))
	return out.GetValue(), err
}

// SumArray sums numbers in order
func (c *Client) SumArray(ctx context.Context, numbers []float64) (float64, error) {
	in := &structpb.ListValue{Values: make([]*structpb.Value, len(numbers))}
	for i, n := range numbers {
		in.Values[i] = structpb.NewNumberValue(n)
	}
	out, err := invoke(ctx, c, MethodSumArray, in, new(wrapperspb.DoubleValue))
	return out.GetValue(), err
}

// Execute runs any tool on the remote registry
func (c *Client) Execute(ctx context.Context, toolID string, params map[string]interface{}) (map[string]interface{}, error) {
	paramsStruct, err := structpb.NewStruct(params)
	if err != nil {
		return nil, fmt.Errorf("encode params: %w", err)
	}
	in := &structpb.Struct{Fields: map[string]*structpb.Value{
		"tool_id": structpb.NewStringValue(toolID),
		"params":  structpb.NewStructValue(paramsStruct),
	}}
	out, err := invoke(ctx, c, MethodExecute, in, new(structpb.Struct))
	if err != nil {
		return nil, err
	}
	return out.AsMap(), nil
}

// invoke runs one unary call through the breaker
func invoke[T proto.Message](ctx context.Context, c *Client, method string, in proto.Message, out T) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	res, err := resilience.Call(c.breaker, func() (T, error) {
		return out, c.conn.Invoke(ctx, method, in, out)
	})
	if errors.Is(err, resilience.ErrCircuitOpen) || errors.Is(err, resilience.ErrTooManyRequests) {
		return res, fmt.Errorf("native service unavailable: %w", err)
	}
	return res, err
}
