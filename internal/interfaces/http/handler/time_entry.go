package handler

import (
	"time"

	trackingapp "github.com/chronodo/backend/internal/application/tracking"
	"github.com/chronodo/backend/internal/domain/tracking"
	"github.com/chronodo/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TimeEntryHandler handles time entry HTTP requests
type TimeEntryHandler struct {
	BaseHandler
	entryService *trackingapp.TimeEntryService
}

// NewTimeEntryHandler creates a new time entry handler
func NewTimeEntryHandler(entryService *trackingapp.TimeEntryService) *TimeEntryHandler {
	return &TimeEntryHandler{
		entryService: entryService,
	}
}

// TimeEntryResponse is the time entry payload returned by the API
type TimeEntryResponse struct {
	ID              uuid.UUID  `json:"id"`
	UserID          uuid.UUID  `json:"userId"`
	ProjectID       *uuid.UUID `json:"projectId,omitempty"`
	CategoryID      *uuid.UUID `json:"categoryId,omitempty"`
	StartTime       time.Time  `json:"startTime"`
	DurationMinutes int        `json:"durationMinutes"`
	Description     string     `json:"description,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
}

func toTimeEntryResponse(e *tracking.TimeEntry) TimeEntryResponse {
	return TimeEntryResponse{
		ID:              e.ID,
		UserID:          e.UserID,
		ProjectID:       e.ProjectID,
		CategoryID:      e.CategoryID,
		StartTime:       e.StartTime,
		DurationMinutes: e.DurationMinutes,
		Description:     e.Description,
		CreatedAt:       e.CreatedAt,
	}
}

// CreateTimeEntryRequest is the time logging payload
type CreateTimeEntryRequest struct {
	ProjectID       string    `json:"projectId" binding:"omitempty,uuid"`
	CategoryID      string    `json:"categoryId" binding:"omitempty,uuid"`
	StartTime       time.Time `json:"startTime" binding:"required"`
	DurationMinutes int       `json:"durationMinutes" binding:"required,gt=0"`
	Description     string    `json:"description"`
}

// ListTimeEntriesRequest carries the list query parameters. From and To
// select a half-open [from, to) window on the entry start time.
type ListTimeEntriesRequest struct {
	dto.ListRequest
	From *time.Time `form:"from" time_format:"2006-01-02"`
	To   *time.Time `form:"to" time_format:"2006-01-02"`
}

// List returns the authenticated user's entries
func (h *TimeEntryHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req ListTimeEntriesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}
	req.Normalize()

	entries, total, err := h.entryService.List(c.Request.Context(), trackingapp.ListTimeEntriesInput{
		UserID:   userID,
		Page:     req.Page,
		PageSize: req.Limit,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
		From:     req.From,
		To:       req.To,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := make([]TimeEntryResponse, len(entries))
	for i := range entries {
		responses[i] = toTimeEntryResponse(&entries[i])
	}

	h.Paginated(c, responses, req.Page, req.Limit, total)
}

// Create logs a new time block for the authenticated user
func (h *TimeEntryHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req CreateTimeEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	input := trackingapp.CreateTimeEntryInput{
		UserID:          userID,
		StartTime:       req.StartTime,
		DurationMinutes: req.DurationMinutes,
		Description:     req.Description,
	}
	if req.ProjectID != "" {
		projectID := uuid.MustParse(req.ProjectID)
		input.ProjectID = &projectID
	}
	if req.CategoryID != "" {
		categoryID := uuid.MustParse(req.CategoryID)
		input.CategoryID = &categoryID
	}

	entry, err := h.entryService.Create(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toTimeEntryResponse(entry))
}

// Delete removes one of the authenticated user's entries
func (h *TimeEntryHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid time entry ID")
		return
	}

	if err := h.entryService.Delete(c.Request.Context(), userID, uuid.MustParse(req.ID)); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
