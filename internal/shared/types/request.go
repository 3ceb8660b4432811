package types

// ExecuteRequest represents a service execution request
type ExecuteRequest struct {
	ToolID string                 `json:"tool_id" binding:"required"`
	Params map[string]interface{} `json:"params"`
	AppID  *string                `json:"app_id,omitempty"`
}

// DiscoverRequest asks the registry for services matching a free-text intent
type DiscoverRequest struct {
	Query string `json:"query" binding:"required,max=1024"`
	Limit int    `json:"limit" binding:"omitempty,min=1,max=50"`
}

// HashRequest is the body of the demo hash endpoint
type HashRequest struct {
	Password   *string `json:"password" binding:"required"`
	Iterations *uint32 `json:"iterations" binding:"required"`
}

// SumRequest is the body of the summation endpoint. Elements stay
// untyped so a null or string element is reported instead of read as 0.
type SumRequest struct {
	Numbers []interface{} `json:"numbers" binding:"required"`
}
