package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stwalsh4118/vidhub/internal/db"
)

const healthTimeout = 2 * time.Second

// HealthResponse represents the response from the health check endpoint
type HealthResponse struct {
	Status   string            `json:"status"`
	Database string            `json:"database"`
	Redis    string            `json:"redis,omitempty"`
	Time     string            `json:"time"`
	Details  map[string]string `json:"details,omitempty"`
}

// HealthHandler handles health check requests
type HealthHandler struct {
	db    *db.DB
	redis redis.Cmdable
}

// NewHealthHandler creates a new health check handler. rdb may be nil when
// the rate limiter runs in memory.
func NewHealthHandler(database *db.DB, rdb redis.Cmdable) *HealthHandler {
	return &HealthHandler{db: database, redis: rdb}
}

// Check handles GET /api/health
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	response := HealthResponse{
		Status:   "ok",
		Database: "healthy",
		Time:     time.Now().UTC().Format(time.RFC3339),
		Details:  map[string]string{"driver": h.db.Driver()},
	}

	if err := h.db.Health(ctx); err != nil {
		response.Status = "degraded"
		response.Database = "unhealthy"
		response.Details["database_error"] = err.Error()
		c.JSON(http.StatusServiceUnavailable, response)
		return
	}

	// The limiter fails open, so an unreachable redis degrades nothing
	if h.redis != nil {
		response.Redis = "healthy"
		if err := h.redis.Ping(ctx).Err(); err != nil {
			response.Redis = "unhealthy"
			response.Details["redis_error"] = err.Error()
		}
	}

	c.JSON(http.StatusOK, response)
}

// SetupHealthRoutes registers health check routes
func SetupHealthRoutes(apiGroup *gin.RouterGroup, database *db.DB, rdb redis.Cmdable) {
	handler := NewHealthHandler(database, rdb)
	apiGroup.GET("/health", handler.Check)
}
