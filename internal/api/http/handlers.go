package http

import (
	"net/http"

	"github.com/GriffinCanCode/AgentOS/addons/internal/api/middleware"
	"github.com/GriffinCanCode/AgentOS/addons/internal/domain/service"
	"github.com/GriffinCanCode/AgentOS/addons/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/addons/internal/shared/id"
	"github.com/GriffinCanCode/AgentOS/addons/internal/shared/types"
	"github.com/GriffinCanCode/AgentOS/addons/internal/shared/utils"
	"github.com/gin-gonic/gin"
)

const defaultDiscoverLimit = 5

// Handlers contains all HTTP handlers
type Handlers struct {
	registry *service.Registry
	metrics  *monitoring.Metrics
	version  string
}

// NewHandlers creates a new handler set. metrics may be nil.
func NewHandlers(registry *service.Registry, metrics *monitoring.Metrics, version string) *Handlers {
	return &Handlers{
		registry: registry,
		metrics:  metrics,
		version:  version,
	}
}

// Root handles the banner
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "Native Addons Service (Go)",
		"version": h.version,
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	body := gin.H{
		"status":           "healthy",
		"service_registry": h.registry.Stats(),
	}
	if h.metrics != nil {
		body["metrics"] = h.metrics.Snapshot()
	}
	c.JSON(http.StatusOK, body)
}

// ListServices lists all available services
func (h *Handlers) ListServices(c *gin.Context) {
	categoryStr := c.Query("category")
	if err := utils.ValidateCategory(categoryStr, false); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	var category *types.Category
	if categoryStr != "" {
		cat := types.Category(categoryStr)
		category = &cat
	}

	c.JSON(http.StatusOK, gin.H{
		"services": h.registry.List(category),
		"stats":    h.registry.Stats(),
	})
}

// DiscoverServices ranks services against a free-text intent
func (h *Handlers) DiscoverServices(c *gin.Context) {
	var req types.DiscoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := utils.ValidateQuery(req.Query); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	limit := req.Limit
	if limit == 0 {
		limit = defaultDiscoverLimit
	}

	services := h.registry.Discover(req.Query, limit)
	c.JSON(http.StatusOK, gin.H{
		"services": services,
		"count":    len(services),
	})
}

// ExecuteService executes a service tool
func (h *Handlers) ExecuteService(c *gin.Context) {
	var req types.ExecuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := utils.ValidateToolID(req.ToolID, "tool_id", true); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if req.AppID != nil {
		if err := utils.ValidateID(*req.AppID, "app_id", false); err != nil {
			fail(c, http.StatusBadRequest, err.Error())
			return
		}
	}
	if err := utils.ValidateParams(req.Params); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	appCtx := &types.Context{
		AppID:     req.AppID,
		CallID:    string(id.NewCallID()),
		RequestID: middleware.GetRequestID(c),
	}

	h.execute(c, req.ToolID, req.Params, appCtx)
}

func (h *Handlers) execute(c *gin.Context, toolID string, params map[string]interface{}, appCtx *types.Context) {
	if appCtx == nil {
		appCtx = &types.Context{
			CallID:    string(id.NewCallID()),
			RequestID: middleware.GetRequestID(c),
		}
	}
	result, err := h.registry.Execute(c.Request.Context(), toolID, params, appCtx)
	respond(c, result, err)
}
