package handler

import (
	"time"

	trackingapp "github.com/chronodo/backend/internal/application/tracking"
	"github.com/chronodo/backend/internal/domain/shared"
	"github.com/chronodo/backend/internal/domain/tracking"
	"github.com/chronodo/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TimesheetHandler handles weekly timesheet HTTP requests
type TimesheetHandler struct {
	BaseHandler
	timesheetService *trackingapp.TimesheetService
}

// NewTimesheetHandler creates a new timesheet handler
func NewTimesheetHandler(timesheetService *trackingapp.TimesheetService) *TimesheetHandler {
	return &TimesheetHandler{
		timesheetService: timesheetService,
	}
}

// TimesheetResponse is the timesheet payload returned by the API
type TimesheetResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	WeekStart string    `json:"weekStart"`
	Status    string    `json:"status"`
	Comment   string    `json:"comment,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toTimesheetResponse(t *tracking.Timesheet) TimesheetResponse {
	return TimesheetResponse{
		ID:        t.ID,
		UserID:    t.UserID,
		WeekStart: t.WeekStart.Format("2006-01-02"),
		Status:    string(t.Status),
		Comment:   t.Comment,
		UpdatedAt: t.UpdatedAt,
	}
}

// SubmitTimesheetRequest identifies the week being submitted
type SubmitTimesheetRequest struct {
	WeekStart string `json:"weekStart" binding:"required,datetime=2006-01-02"`
}

// RejectTimesheetRequest carries the mandatory rejection comment
type RejectTimesheetRequest struct {
	Comment string `json:"comment" binding:"required"`
}

// ListReviewQueueRequest carries the review queue query parameters
type ListReviewQueueRequest struct {
	dto.ListRequest
	Status string `form:"status" binding:"omitempty,oneof=draft submitted validated rejected"`
}

// ListOwn returns the authenticated user's timesheets
func (h *TimesheetHandler) ListOwn(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	sheets, err := h.timesheetService.ListOwn(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := make([]TimesheetResponse, len(sheets))
	for i := range sheets {
		responses[i] = toTimesheetResponse(&sheets[i])
	}

	h.Success(c, responses)
}

// Submit submits the authenticated user's timesheet for a week
func (h *TimesheetHandler) Submit(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req SubmitTimesheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	weekStart, err := time.Parse("2006-01-02", req.WeekStart)
	if err != nil {
		h.BadRequest(c, "Invalid week start date")
		return
	}

	sheet, err := h.timesheetService.Submit(c.Request.Context(), trackingapp.SubmitTimesheetInput{
		UserID:    userID,
		WeekStart: weekStart,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toTimesheetResponse(sheet))
}

// ReviewQueue returns timesheets awaiting review (manager operation).
// Defaults to submitted sheets when no status is given.
func (h *TimesheetHandler) ReviewQueue(c *gin.Context) {
	var req ListReviewQueueRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}
	req.Normalize()

	status := tracking.TimesheetSubmitted
	if req.Status != "" {
		status = tracking.TimesheetStatus(req.Status)
	}

	sheets, err := h.timesheetService.ListByStatus(c.Request.Context(), status, shared.Filter{
		Page:     req.Page,
		PageSize: req.Limit,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := make([]TimesheetResponse, len(sheets))
	for i := range sheets {
		responses[i] = toTimesheetResponse(&sheets[i])
	}

	h.Success(c, responses)
}

// Validate approves a submitted timesheet (manager operation)
func (h *TimesheetHandler) Validate(c *gin.Context) {
	reviewerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid timesheet ID")
		return
	}

	sheet, err := h.timesheetService.Validate(c.Request.Context(), trackingapp.ReviewTimesheetInput{
		TimesheetID: uuid.MustParse(req.ID),
		ReviewerID:  reviewerID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toTimesheetResponse(sheet))
}

// Reject sends a submitted timesheet back with a comment (manager operation)
func (h *TimesheetHandler) Reject(c *gin.Context) {
	reviewerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid timesheet ID")
		return
	}

	var req RejectTimesheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "A rejection comment is required")
		return
	}

	sheet, err := h.timesheetService.Reject(c.Request.Context(), trackingapp.ReviewTimesheetInput{
		TimesheetID: uuid.MustParse(idReq.ID),
		ReviewerID:  reviewerID,
		Comment:     req.Comment,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toTimesheetResponse(sheet))
}
