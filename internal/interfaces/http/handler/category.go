package handler

import (
	trackingapp "github.com/chronodo/backend/internal/application/tracking"
	"github.com/chronodo/backend/internal/domain/shared"
	"github.com/chronodo/backend/internal/domain/tracking"
	"github.com/chronodo/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CategoryHandler handles time entry category HTTP requests
type CategoryHandler struct {
	BaseHandler
	categoryService *trackingapp.CategoryService
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categoryService *trackingapp.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
	}
}

// CategoryResponse is the category payload returned by the API
type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color,omitempty"`
}

func toCategoryResponse(cat *tracking.Category) CategoryResponse {
	return CategoryResponse{
		ID:          cat.ID,
		Name:        cat.Name,
		Description: cat.Description,
		Color:       cat.Color,
	}
}

// CreateCategoryRequest is the category creation payload
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// UpdateCategoryRequest carries the updatable category fields
type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
}

// List returns all categories
func (h *CategoryHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}
	req.Normalize()

	categories, total, err := h.categoryService.List(c.Request.Context(), shared.Filter{
		Page:     req.Page,
		PageSize: req.Limit,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
		Search:   req.Search,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := make([]CategoryResponse, len(categories))
	for i := range categories {
		responses[i] = toCategoryResponse(&categories[i])
	}

	h.Paginated(c, responses, req.Page, req.Limit, total)
}

// Get returns one category by ID
func (h *CategoryHandler) Get(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	category, err := h.categoryService.Get(c.Request.Context(), uuid.MustParse(req.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toCategoryResponse(category))
}

// Create registers a new category (manager operation)
func (h *CategoryHandler) Create(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), trackingapp.CreateCategoryInput{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toCategoryResponse(category))
}

// Update changes a category's fields (manager operation)
func (h *CategoryHandler) Update(c *gin.Context) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	category, err := h.categoryService.Update(c.Request.Context(), uuid.MustParse(idReq.ID), trackingapp.UpdateCategoryInput{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toCategoryResponse(category))
}

// Delete removes a category (manager operation)
func (h *CategoryHandler) Delete(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	if err := h.categoryService.Delete(c.Request.Context(), uuid.MustParse(req.ID)); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
