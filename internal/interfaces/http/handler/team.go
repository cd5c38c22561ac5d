package handler

import (
	identityapp "github.com/chronodo/backend/internal/application/identity"
	"github.com/chronodo/backend/internal/domain/identity"
	"github.com/chronodo/backend/internal/domain/shared"
	"github.com/chronodo/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TeamHandler handles team management HTTP requests
type TeamHandler struct {
	BaseHandler
	teamService *identityapp.TeamService
}

// NewTeamHandler creates a new team handler
func NewTeamHandler(teamService *identityapp.TeamService) *TeamHandler {
	return &TeamHandler{
		teamService: teamService,
	}
}

// TeamResponse is the team payload returned by the API
type TeamResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	ManagerID   *uuid.UUID `json:"managerId,omitempty"`
	MemberCount int64      `json:"memberCount,omitempty"`
}

// TeamDetailResponse is a team with its members
type TeamDetailResponse struct {
	TeamResponse
	Members []UserResponse `json:"members"`
}

func toTeamResponse(t *identity.Team) TeamResponse {
	return TeamResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		ManagerID:   t.ManagerID,
	}
}

// CreateTeamRequest is the team creation payload
type CreateTeamRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	ManagerID   string `json:"managerId" binding:"omitempty,uuid"`
}

// UpdateTeamRequest carries the updatable team fields
type UpdateTeamRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	ManagerID   *string `json:"managerId" binding:"omitempty,uuid"`
}

// MemberRequest identifies a team member
type MemberRequest struct {
	UserID string `json:"userId" binding:"required,uuid"`
}

// List returns all teams with their member counts
func (h *TeamHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}
	req.Normalize()

	filter := shared.Filter{
		Page:     req.Page,
		PageSize: req.Limit,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
		Search:   req.Search,
	}

	teams, total, err := h.teamService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := make([]TeamResponse, len(teams))
	for i, t := range teams {
		resp := toTeamResponse(&t.Team)
		resp.MemberCount = t.MemberCount
		responses[i] = resp
	}

	h.Paginated(c, responses, req.Page, req.Limit, total)
}

// Get returns one team with its members
func (h *TeamHandler) Get(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid team ID")
		return
	}

	detail, err := h.teamService.Get(c.Request.Context(), uuid.MustParse(req.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	members := make([]UserResponse, len(detail.Members))
	for i := range detail.Members {
		members[i] = toUserResponse(&detail.Members[i])
	}

	h.Success(c, TeamDetailResponse{
		TeamResponse: toTeamResponse(&detail.Team),
		Members:      members,
	})
}

// Create registers a new team (manager operation)
func (h *TeamHandler) Create(c *gin.Context) {
	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	input := identityapp.CreateTeamInput{
		Name:        req.Name,
		Description: req.Description,
	}
	if req.ManagerID != "" {
		managerID := uuid.MustParse(req.ManagerID)
		input.ManagerID = &managerID
	}

	team, err := h.teamService.Create(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toTeamResponse(team))
}

// Update changes a team's fields (manager operation)
func (h *TeamHandler) Update(c *gin.Context) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid team ID")
		return
	}

	var req UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	input := identityapp.UpdateTeamInput{
		Name:        req.Name,
		Description: req.Description,
	}
	if req.ManagerID != nil {
		managerID := uuid.MustParse(*req.ManagerID)
		input.ManagerID = &managerID
	}

	team, err := h.teamService.Update(c.Request.Context(), uuid.MustParse(idReq.ID), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toTeamResponse(team))
}

// Delete removes a team, detaching its members first (manager operation)
func (h *TeamHandler) Delete(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid team ID")
		return
	}

	if err := h.teamService.Delete(c.Request.Context(), uuid.MustParse(req.ID)); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// AddMember assigns a user to the team (manager operation)
func (h *TeamHandler) AddMember(c *gin.Context) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid team ID")
		return
	}

	var req MemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.teamService.AddMember(c.Request.Context(), uuid.MustParse(idReq.ID), uuid.MustParse(req.UserID)); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Member added"})
}

// RemoveMember detaches a user from the team (manager operation)
func (h *TeamHandler) RemoveMember(c *gin.Context) {
	teamIDStr := c.Param("id")
	userIDStr := c.Param("userId")

	teamID, err := uuid.Parse(teamIDStr)
	if err != nil {
		h.BadRequest(c, "Invalid team ID")
		return
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.teamService.RemoveMember(c.Request.Context(), teamID, userID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
