package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthChecker reports whether a dependency is reachable.
type HealthChecker func(ctx context.Context) error

// HealthController handles health check endpoints.
type HealthController struct {
	database HealthChecker
	cache    HealthChecker
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Cache     string `json:"cache"`
	Timestamp string `json:"timestamp"`
}

// NewHealthController creates a new health controller instance.
// A nil cache checker reports the cache as disabled.
func NewHealthController(database, cache HealthChecker) *HealthController {
	return &HealthController{database: database, cache: cache}
}

// Check handles GET /health requests.
// Status is degraded when the storage engine is unreachable; the cache is optional.
func (h *HealthController) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	response := HealthResponse{
		Status:    "ok",
		Database:  probe(ctx, h.database, "disconnected"),
		Cache:     probe(ctx, h.cache, "disabled"),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	if response.Database != "connected" {
		response.Status = "degraded"
	}

	c.JSON(http.StatusOK, response)
}

func probe(ctx context.Context, check HealthChecker, missing string) string {
	if check == nil {
		return missing
	}
	if err := check(ctx); err != nil {
		return "disconnected"
	}
	return "connected"
}
