package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/GriffinCanCode/AgentOS/addons/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AgentOS/addons/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/addons/internal/shared/types"
	"go.uber.org/zap"
)

var (
	// ErrServiceNotFound is returned when no provider owns the tool's service
	ErrServiceNotFound = errors.New("service not found")
	// ErrInvalidToolID is returned for tool IDs not shaped like service.tool
	ErrInvalidToolID = errors.New("invalid tool ID format")
)

const unknownTool = "unknown"

// Provider interface for service implementations
type Provider interface {
	Definition() types.Service
	Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error)
}

// Registry manages service discovery and execution
type Registry struct {
	services sync.Map
	metrics  *monitoring.Metrics
	logger   *logging.Logger
}

// Option configures a Registry
type Option func(*Registry)

// WithMetrics records a counter and a histogram per tool call
func WithMetrics(m *monitoring.Metrics) Option {
	return func(r *Registry) { r.metrics = m }
}

// WithLogger logs every tool call at debug level
func WithLogger(l *logging.Logger) Option {
	return func(r *Registry) { r.logger = l }
}

// NewRegistry creates a new service registry
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a service provider, replacing any provider with the same ID
func (r *Registry) Register(provider Provider) error {
	def := provider.Definition()
	if def.ID == "" {
		return fmt.Errorf("service ID cannot be empty")
	}

	r.services.Store(def.ID, provider)
	r.logger.Info("Service registered",
		zap.String("service", def.ID),
		zap.Int("tools", len(def.Tools)))
	return nil
}

// Unregister removes a service provider
func (r *Registry) Unregister(serviceID string) {
	r.services.Delete(serviceID)
}

// Get retrieves a service by ID
func (r *Registry) Get(serviceID string) (Provider, bool) {
	val, ok := r.services.Load(serviceID)
	if !ok {
		return nil, false
	}
	return val.(Provider), true
}

// List returns registered services sorted by ID
func (r *Registry) List(category *types.Category) []types.Service {
	services := []types.Service{}
	r.services.Range(func(_, value interface{}) bool {
		def := value.(Provider).Definition()
		if category == nil || def.Category == *category {
			services = append(services, def)
		}
		return true
	})

	sort.Slice(services, func(i, j int) bool {
		return services[i].ID < services[j].ID
	})
	return services
}

// Discover finds relevant services for a given intent. limit <= 0 returns
// every match.
func (r *Registry) Discover(intent string, limit int) []types.Service {
	type scoredService struct {
		service types.Service
		score   float64
	}

	intentLower := strings.ToLower(intent)
	var results []scoredService

	r.services.Range(func(_, value interface{}) bool {
		def := value.(Provider).Definition()
		if score := calculateRelevance(intentLower, def); score > 0 {
			results = append(results, scoredService{service: def, score: score})
		}
		return true
	})

	// Score descending, ID for ties
	sort.Slice(results, func(i, j int) bool {
		if results[i].score != results[j].score {
			return results[i].score > results[j].score
		}
		return results[i].service.ID < results[j].service.ID
	})

	if limit <= 0 || limit > len(results) {
		limit = len(results)
	}
	output := make([]types.Service, 0, limit)
	for i := 0; i < limit; i++ {
		output = append(output, results[i].service)
	}
	return output
}

// Execute runs a service tool. A rejected input is a failed Result with a
// nil error; the error return is for routing and call failures.
func (r *Registry) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	serviceID, tool, ok := strings.Cut(toolID, ".")
	if !ok || serviceID == "" || tool == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidToolID, toolID)
	}

	provider, ok := r.Get(serviceID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrServiceNotFound, serviceID)
	}

	timer := monitoring.NewTimer(r.metrics, serviceID, toolLabel(provider.Definition(), toolID, tool))
	result, err := provider.Execute(ctx, toolID, params, appCtx)

	status := monitoring.StatusSuccess
	switch {
	case err != nil:
		status = monitoring.StatusError
	case result == nil || !result.Success:
		status = monitoring.StatusFailure
	}
	duration := timer.Stop(status)

	r.logCall(toolID, status, duration, appCtx, result, err)

	if err != nil {
		return nil, fmt.Errorf("execute %s: %w", toolID, err)
	}
	if result == nil {
		return nil, fmt.Errorf("execute %s: provider returned no result", toolID)
	}
	return result, nil
}

// toolLabel keeps metric label values bounded to the tools a provider
// declares. Anything else is recorded as unknownTool.
func toolLabel(def types.Service, toolID, tool string) string {
	for _, t := range def.Tools {
		if t.ID == toolID {
			return tool
		}
	}
	return unknownTool
}

func (r *Registry) logCall(toolID, status string, duration time.Duration, appCtx *types.Context, result *types.Result, err error) {
	fields := []zap.Field{
		zap.String("tool", toolID),
		zap.String("status", status),
		zap.Duration("duration", duration),
	}
	if appCtx != nil {
		if appCtx.CallID != "" {
			fields = append(fields, zap.String("call_id", appCtx.CallID))
		}
		if appCtx.RequestID != "" {
			fields = append(fields, zap.String("request_id", appCtx.RequestID))
		}
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	} else if msg := result.ErrorMessage(); msg != "" {
		fields = append(fields, zap.String("reason", msg))
	}
	r.logger.Debug("Tool executed", fields...)
}

// Stats returns registry statistics
func (r *Registry) Stats() map[string]interface{} {
	var total, totalTools int
	categories := make(map[string]int)

	r.services.Range(func(_, value interface{}) bool {
		def := value.(Provider).Definition()
		total++
		totalTools += len(def.Tools)
		categories[string(def.Category)]++
		return true
	})

	return map[string]interface{}{
		"total_services": total,
		"total_tools":    totalTools,
		"categories":     categories,
	}
}

func calculateRelevance(intent string, service types.Service) float64 {
	score := 0.0

	// Check service name and ID
	if strings.Contains(intent, service.ID) || strings.Contains(intent, strings.ToLower(service.Name)) {
		score += 10.0
	}

	// Check description words
	for _, word := range strings.Fields(strings.ToLower(service.Description)) {
		word = strings.Trim(word, ",.:;()")
		if len(word) > 2 && strings.Contains(intent, word) {
			score += 5.0
		}
	}

	// Check capabilities
	for _, cap := range service.Capabilities {
		capClean := strings.ReplaceAll(strings.ToLower(cap), "_", " ")
		if strings.Contains(intent, capClean) {
			score += 3.0
		}
	}

	// Check category
	if service.Category != "" && strings.Contains(intent, string(service.Category)) {
		score += 2.0
	}

	return score
}
