package handler

import (
	"context"
	"time"

	projectapp "github.com/chronodo/backend/internal/application/project"
	"github.com/chronodo/backend/internal/domain/project"
	"github.com/chronodo/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProjectHandler handles project management HTTP requests
type ProjectHandler struct {
	BaseHandler
	projectService *projectapp.ProjectService
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projectService *projectapp.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// ProjectResponse is the project payload returned by the API
type ProjectResponse struct {
	ID          uuid.UUID        `json:"id"`
	Code        string           `json:"code"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	BudgetHours *decimal.Decimal `json:"budgetHours,omitempty"`
	Status      string           `json:"status"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

func toProjectResponse(p *project.Project) ProjectResponse {
	return ProjectResponse{
		ID:          p.ID,
		Code:        p.Code,
		Name:        p.Name,
		Description: p.Description,
		BudgetHours: p.BudgetHours,
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// CreateProjectRequest is the project creation payload. The code is
// allocated server-side and cannot be chosen by the caller.
type CreateProjectRequest struct {
	Name        string           `json:"name" binding:"required"`
	Description string           `json:"description"`
	BudgetHours *decimal.Decimal `json:"budgetHours"`
}

// UpdateProjectRequest carries the updatable project fields
type UpdateProjectRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	BudgetHours *decimal.Decimal `json:"budgetHours"`
}

// ListProjectsRequest carries the list query parameters
type ListProjectsRequest struct {
	dto.ListRequest
	Status string `form:"status" binding:"omitempty,oneof=active archived"`
}

// List returns projects matching the query
func (h *ProjectHandler) List(c *gin.Context) {
	var req ListProjectsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}
	req.Normalize()

	projects, total, err := h.projectService.List(c.Request.Context(), projectapp.ListProjectsInput{
		Page:     req.Page,
		PageSize: req.Limit,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
		Search:   req.Search,
		Status:   req.Status,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := make([]ProjectResponse, len(projects))
	for i := range projects {
		responses[i] = toProjectResponse(&projects[i])
	}

	h.Paginated(c, responses, req.Page, req.Limit, total)
}

// Get returns one project by ID
func (h *ProjectHandler) Get(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid project ID")
		return
	}

	p, err := h.projectService.Get(c.Request.Context(), uuid.MustParse(req.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toProjectResponse(p))
}

// Create registers a new project with a generated code (manager operation)
func (h *ProjectHandler) Create(c *gin.Context) {
	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	p, err := h.projectService.Create(c.Request.Context(), projectapp.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		BudgetHours: req.BudgetHours,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toProjectResponse(p))
}

// Update changes a project's fields; the code is immutable (manager operation)
func (h *ProjectHandler) Update(c *gin.Context) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid project ID")
		return
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	p, err := h.projectService.Update(c.Request.Context(), uuid.MustParse(idReq.ID), projectapp.UpdateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		BudgetHours: req.BudgetHours,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toProjectResponse(p))
}

// Archive retires a project from time logging (manager operation)
func (h *ProjectHandler) Archive(c *gin.Context) {
	h.transition(c, h.projectService.Archive)
}

// Restore brings an archived project back (manager operation)
func (h *ProjectHandler) Restore(c *gin.Context) {
	h.transition(c, h.projectService.Restore)
}

func (h *ProjectHandler) transition(c *gin.Context, apply func(ctx context.Context, id uuid.UUID) (*project.Project, error)) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid project ID")
		return
	}

	p, err := apply(c.Request.Context(), uuid.MustParse(req.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toProjectResponse(p))
}

// Delete removes a project (manager operation)
func (h *ProjectHandler) Delete(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid project ID")
		return
	}

	if err := h.projectService.Delete(c.Request.Context(), uuid.MustParse(req.ID)); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
