package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzhttp"
	"go.uber.org/zap"
	"golang.org/x/net/netutil"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/keepalive"

	apihttp "github.com/GriffinCanCode/AgentOS/addons/internal/api/http"
	"github.com/GriffinCanCode/AgentOS/addons/internal/api/middleware"
	"github.com/GriffinCanCode/AgentOS/addons/internal/domain/service"
	addonsgrpc "github.com/GriffinCanCode/AgentOS/addons/internal/grpc"
	"github.com/GriffinCanCode/AgentOS/addons/internal/infrastructure/config"
	"github.com/GriffinCanCode/AgentOS/addons/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AgentOS/addons/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/addons/internal/providers/native"
	"github.com/GriffinCanCode/AgentOS/addons/internal/shared/utils"
)

// Version is reported by the root endpoint
const Version = "1.0.0"

// maxGRPCMessageSize fits a ListValue of a million doubles
const maxGRPCMessageSize = 16 * 1024 * 1024

// Server wraps the HTTP and gRPC servers and their dependencies
type Server struct {
	config   *config.Config
	logger   *logging.Logger
	metrics  *monitoring.Metrics
	registry *service.Registry

	router *gin.Engine
	http   *http.Server
	grpc   *grpc.Server
}

// Option configures a Server
type Option func(*Server)

// WithLogger replaces the logger built from the logging config
func WithLogger(l *logging.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, opts ...Option) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	s := &Server{config: cfg}
	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		logger, err := logging.New(logging.Config{
			Level:       cfg.Logging.Level,
			Development: cfg.Logging.Development,
			OutputPaths: []string{"stdout"},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create logger: %w", err)
		}
		s.logger = logger
	}

	s.logger.Info("Initializing addons server",
		zap.String("port", cfg.Server.Port),
		zap.String("grpc_port", cfg.GRPC.Port),
		zap.Bool("grpc_enabled", cfg.GRPC.Enabled),
	)

	// Metrics first, the registry records into them
	s.metrics = monitoring.NewMetrics()
	s.registry = service.NewRegistry(
		service.WithMetrics(s.metrics),
		service.WithLogger(s.logger.Named("registry")),
	)

	s.logger.Info("Registering service providers...")
	if err := s.registry.Register(native.NewProvider(limitsFrom(cfg.Compute))); err != nil {
		return nil, fmt.Errorf("register native provider: %w", err)
	}
	stats := s.registry.Stats()
	s.logger.Info("Service providers registered",
		zap.Any("services", stats["total_services"]),
		zap.Any("tools", stats["total_tools"]))

	s.router = s.buildRouter()
	s.http = &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	if cfg.GRPC.Enabled {
		s.grpc = grpc.NewServer(
			grpc.ChainUnaryInterceptor(addonsgrpc.UnaryServerInterceptor(s.logger.Named("grpc"), s.metrics)),
			grpc.MaxRecvMsgSize(maxGRPCMessageSize),
			// Clients ping every 60s; anything faster is a misbehaving peer
			grpc.KeepaliveEnforcementPolicy(keepalive.EnforcementPolicy{
				MinTime: 30 * time.Second,
			}),
		)
		addonsgrpc.RegisterNativeServer(s.grpc, addonsgrpc.NewServer(s.registry))
	}

	s.logger.Info("Server initialized successfully")
	return s, nil
}

func limitsFrom(c config.ComputeConfig) native.Limits {
	return native.Limits{
		MaxPrimeBound:  c.MaxPrimeBound,
		MaxHashWork:    c.MaxHashWork,
		MaxArrayLength: c.MaxArrayLength,
		Workers:        c.Workers,
	}
}

func (s *Server) buildRouter() *gin.Engine {
	if !s.config.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.AccessLog(s.logger.Named("http"), "/health", "/metrics"))
	router.Use(monitoring.Middleware(s.metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if s.config.RateLimit.Enabled {
		s.logger.Info("Rate limiting enabled",
			zap.Int("rps", s.config.RateLimit.RequestsPerSecond),
			zap.Int("burst", s.config.RateLimit.Burst),
			zap.Bool("global", s.config.RateLimit.Global),
		)
		limits := middleware.RateLimitConfig{
			RequestsPerSecond: s.config.RateLimit.RequestsPerSecond,
			Burst:             s.config.RateLimit.Burst,
		}
		if s.config.RateLimit.Global {
			router.Use(middleware.GlobalRateLimit(limits))
		} else {
			router.Use(middleware.RateLimit(limits))
		}
	}
	router.Use(middleware.BodyLimit(utils.MaxJSONSize))

	apihttp.NewHandlers(s.registry, s.metrics, Version).RegisterRoutes(router)
	return router
}

// Handler returns the HTTP handler with response compression
func (s *Server) Handler() http.Handler {
	return gzhttp.GzipHandler(s.router)
}

// Registry returns the service registry
func (s *Server) Registry() *service.Registry {
	return s.registry
}

// Metrics returns the server's metrics
func (s *Server) Metrics() *monitoring.Metrics {
	return s.metrics
}

// Run binds the configured addresses and serves until ctx is done
func (s *Server) Run(ctx context.Context) error {
	httpLis, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return fmt.Errorf("listen http: %w", err)
	}

	var grpcLis net.Listener
	if s.grpc != nil {
		addr := net.JoinHostPort(s.config.Server.Host, s.config.GRPC.Port)
		grpcLis, err = net.Listen("tcp", addr)
		if err != nil {
			httpLis.Close()
			return fmt.Errorf("listen grpc: %w", err)
		}
	}

	return s.Serve(ctx, httpLis, grpcLis)
}

// Serve serves on the given listeners until ctx is done or a server
// fails, then shuts both down. grpcLis is ignored when gRPC is disabled.
func (s *Server) Serve(ctx context.Context, httpLis, grpcLis net.Listener) error {
	if limit := s.config.Server.MaxConnections; limit > 0 {
		httpLis = netutil.LimitListener(httpLis, limit)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("Starting HTTP server", zap.String("addr", httpLis.Addr().String()))
		if err := s.http.Serve(httpLis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	if s.grpc != nil && grpcLis != nil {
		g.Go(func() error {
			s.logger.Info("Starting gRPC server", zap.String("addr", grpcLis.Addr().String()))
			if err := s.grpc.Serve(grpcLis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
				return fmt.Errorf("grpc server: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		return s.Shutdown(context.Background())
	})

	return g.Wait()
}

// Shutdown stops both servers, waiting for in-flight calls up to the
// configured shutdown timeout
func (s *Server) Shutdown(ctx context.Context) error {
	if timeout := s.config.Server.ShutdownTimeout.Std(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	s.logger.Info("Shutting down server...")

	var errs []error
	if s.grpc != nil {
		done := make(chan struct{})
		go func() {
			s.grpc.GracefulStop()
			close(done)
		}()
		select {
		case <-done:
		case <-ctx.Done():
			s.logger.Warn("gRPC graceful stop timed out, forcing")
			s.grpc.Stop()
			<-done
		}
	}

	if err := s.http.Shutdown(ctx); err != nil {
		s.logger.Error("Failed to shut down HTTP server", zap.Error(err))
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}

	_ = s.logger.Sync()
	return errors.Join(errs...)
}
