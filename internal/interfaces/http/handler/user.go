package handler

import (
	"time"

	identityapp "github.com/chronodo/backend/internal/application/identity"
	"github.com/chronodo/backend/internal/domain/identity"
	"github.com/chronodo/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UserHandler handles user management HTTP requests
type UserHandler struct {
	BaseHandler
	userService *identityapp.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *identityapp.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// UserResponse is the user payload returned by the API
type UserResponse struct {
	ID                uuid.UUID  `json:"id"`
	Email             string     `json:"email"`
	FirstName         string     `json:"firstName"`
	LastName          string     `json:"lastName"`
	Role              string     `json:"role"`
	WeeklyHoursTarget float64    `json:"weeklyHoursTarget"`
	TeamID            *uuid.UUID `json:"teamId,omitempty"`
	Active            bool       `json:"active"`
	CreatedAt         time.Time  `json:"createdAt,omitempty"`
	UpdatedAt         time.Time  `json:"updatedAt,omitempty"`
}

func toUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:                u.ID,
		Email:             u.Email,
		FirstName:         u.FirstName,
		LastName:          u.LastName,
		Role:              string(u.Role),
		WeeklyHoursTarget: u.WeeklyHoursTarget,
		TeamID:            u.TeamID,
		Active:            u.Active,
		CreatedAt:         u.CreatedAt,
		UpdatedAt:         u.UpdatedAt,
	}
}

func toUserResponseFromInfo(info identityapp.UserInfo) UserResponse {
	return UserResponse{
		ID:                info.ID,
		Email:             info.Email,
		FirstName:         info.FirstName,
		LastName:          info.LastName,
		Role:              string(info.Role),
		WeeklyHoursTarget: info.WeeklyHoursTarget,
		TeamID:            info.TeamID,
		Active:            true,
	}
}

// CreateUserRequest is the administrative user creation payload
type CreateUserRequest struct {
	Email             string   `json:"email" binding:"required,email"`
	Password          string   `json:"password" binding:"required,min=8"`
	FirstName         string   `json:"firstName" binding:"required"`
	LastName          string   `json:"lastName" binding:"required"`
	Role              string   `json:"role" binding:"omitempty,oneof=employee manager"`
	WeeklyHoursTarget *float64 `json:"weeklyHoursTarget" binding:"omitempty,gt=0"`
}

// UpdateProfileRequest carries the self-service profile fields. Email and
// role changes are not accepted here; unknown fields are ignored.
type UpdateProfileRequest struct {
	FirstName         *string  `json:"firstName"`
	LastName          *string  `json:"lastName"`
	WeeklyHoursTarget *float64 `json:"weeklyHoursTarget" binding:"omitempty,gt=0"`
}

// AdminUpdateUserRequest carries the administrative update fields
type AdminUpdateUserRequest struct {
	FirstName         *string  `json:"firstName"`
	LastName          *string  `json:"lastName"`
	WeeklyHoursTarget *float64 `json:"weeklyHoursTarget" binding:"omitempty,gt=0"`
	Role              *string  `json:"role" binding:"omitempty,oneof=employee manager"`
	Active            *bool    `json:"active"`
}

// ListUsersRequest carries the list query parameters
type ListUsersRequest struct {
	dto.ListRequest
	Role   string `form:"role" binding:"omitempty,oneof=employee manager"`
	TeamID string `form:"teamId" binding:"omitempty,uuid"`
}

// List returns users matching the query (manager operation)
func (h *UserHandler) List(c *gin.Context) {
	var req ListUsersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}
	req.Normalize()

	input := identityapp.ListUsersInput{
		Page:     req.Page,
		PageSize: req.Limit,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
		Search:   req.Search,
		Role:     req.Role,
	}
	if req.TeamID != "" {
		teamID, err := uuid.Parse(req.TeamID)
		if err != nil {
			h.BadRequest(c, "Invalid team ID")
			return
		}
		input.TeamID = &teamID
	}

	users, total, err := h.userService.List(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = toUserResponse(&users[i])
	}

	h.Paginated(c, responses, req.Page, req.Limit, total)
}

// Get returns one user by ID (manager operation)
func (h *UserHandler) Get(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	user, err := h.userService.Get(c.Request.Context(), uuid.MustParse(req.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toUserResponse(user))
}

// Create registers a new user (manager operation)
func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	role := identity.RoleEmployee
	if req.Role != "" {
		role = identity.Role(req.Role)
	}

	user, err := h.userService.Create(c.Request.Context(), identityapp.CreateUserInput{
		Email:             req.Email,
		Password:          req.Password,
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Role:              role,
		WeeklyHoursTarget: req.WeeklyHoursTarget,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toUserResponse(user))
}

// UpdateProfile updates the authenticated user's own profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), userID, identityapp.UpdateProfileInput{
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		WeeklyHoursTarget: req.WeeklyHoursTarget,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toUserResponse(user))
}

// AdminUpdate updates another user's account (manager operation)
func (h *UserHandler) AdminUpdate(c *gin.Context) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	var req AdminUpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	input := identityapp.AdminUpdateUserInput{
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		WeeklyHoursTarget: req.WeeklyHoursTarget,
		Active:            req.Active,
	}
	if req.Role != nil {
		role := identity.Role(*req.Role)
		input.Role = &role
	}

	user, err := h.userService.AdminUpdate(c.Request.Context(), uuid.MustParse(idReq.ID), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toUserResponse(user))
}

// Delete removes a user (manager operation)
func (h *UserHandler) Delete(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.userService.Delete(c.Request.Context(), uuid.MustParse(req.ID)); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
