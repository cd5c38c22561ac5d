package handler

import (
	"strconv"

	"github.com/chronodo/backend/internal/application/dashboard"
	"github.com/gin-gonic/gin"
)

// DashboardHandler handles dashboard and reporting HTTP requests
type DashboardHandler struct {
	BaseHandler
	dashboardService *dashboard.DashboardService
	defaultTrendDays int
}

// NewDashboardHandler creates a new dashboard handler. defaultTrendDays is
// used when the trend endpoint is called without a days parameter.
func NewDashboardHandler(dashboardService *dashboard.DashboardService, defaultTrendDays int) *DashboardHandler {
	if defaultTrendDays <= 0 {
		defaultTrendDays = 7
	}
	return &DashboardHandler{
		dashboardService: dashboardService,
		defaultTrendDays: defaultTrendDays,
	}
}

// Employee returns the authenticated user's dashboard summary
func (h *DashboardHandler) Employee(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	result, err := h.dashboardService.GetEmployeeDashboard(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ByProject returns the time breakdown per project for a period
func (h *DashboardHandler) ByProject(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	result, err := h.dashboardService.GetByProject(c.Request.Context(), userID, periodParam(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ByCategory returns the time breakdown per category for a period
func (h *DashboardHandler) ByCategory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	result, err := h.dashboardService.GetByCategory(c.Request.Context(), userID, periodParam(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// maxTrendDays bounds the trend window to one year; the response holds
// one bucket per day.
const maxTrendDays = 366

// Trend returns the daily hours trend over the last N days
func (h *DashboardHandler) Trend(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	days := h.defaultTrendDays
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxTrendDays {
			h.BadRequest(c, "days must be between 1 and 366")
			return
		}
		days = parsed
	}

	result, err := h.dashboardService.GetTrend(c.Request.Context(), userID, days)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

func periodParam(c *gin.Context) string {
	period := c.Query("period")
	if period == "" {
		return dashboard.PeriodWeek
	}
	return period
}
