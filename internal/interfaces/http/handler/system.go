package handler

import (
	"database/sql"
	"net/http"
	"runtime"
	"time"

	"github.com/chronodo/backend/internal/interfaces/http/dto"
	"github.com/chronodo/backend/internal/pkg/transform"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SystemHandler handles health and system endpoints
type SystemHandler struct {
	BaseHandler
	db        *gorm.DB
	startTime time.Time
}

// NewSystemHandler creates a new system handler
func NewSystemHandler(db *gorm.DB) *SystemHandler {
	return &SystemHandler{
		db:        db,
		startTime: time.Now(),
	}
}

// HealthResponse reports service and database health
type HealthResponse struct {
	Status    string         `json:"status"`
	Database  string         `json:"database"`
	GoVersion string         `json:"goVersion"`
	Uptime    string         `json:"uptime"`
	Pool      map[string]any `json:"pool,omitempty"`
}

// Health reports liveness and database connectivity
func (h *SystemHandler) Health(c *gin.Context) {
	response := HealthResponse{
		Status:    "ok",
		Database:  "ok",
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	}

	if h.db != nil {
		sqlDB, err := h.db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			response.Status = "degraded"
			response.Database = "unreachable"
			c.JSON(http.StatusServiceUnavailable, dto.NewSuccessResponse(response))
			return
		}
		response.Pool = poolStats(sqlDB.Stats())
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// poolStats reshapes the driver's metric names, which follow the
// snake_case convention of the metrics pipeline, into the API's casing.
func poolStats(s sql.DBStats) map[string]any {
	raw := map[string]any{
		"open_connections": s.OpenConnections,
		"in_use":           s.InUse,
		"idle":             s.Idle,
		"wait_count":       s.WaitCount,
		"wait_duration_ms": s.WaitDuration.Milliseconds(),
	}
	stats, _ := transform.KeysToCamel(raw).(map[string]any)
	return stats
}

// Ping answers with a timestamped pong
func (h *SystemHandler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{
		"message":   "pong",
		"timestamp": time.Now().Format(time.RFC3339),
	}))
}
