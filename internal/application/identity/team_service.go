package identity

import (
	"context"
	"errors"

	"github.com/chronodo/backend/internal/domain/identity"
	"github.com/chronodo/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TeamService handles team management operations
type TeamService struct {
	teamRepo identity.TeamRepository
	userRepo identity.UserRepository
	logger   *zap.Logger
}

// NewTeamService creates a new team service
func NewTeamService(teamRepo identity.TeamRepository, userRepo identity.UserRepository, logger *zap.Logger) *TeamService {
	return &TeamService{
		teamRepo: teamRepo,
		userRepo: userRepo,
		logger:   logger,
	}
}

// List returns teams with their member counts
func (s *TeamService) List(ctx context.Context, filter shared.Filter) ([]TeamWithCount, int64, error) {
	teams, err := s.teamRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list teams", zap.Error(err))
		return nil, 0, shared.NewDomainError("FETCH_FAILED", "Failed to list teams")
	}

	total, err := s.teamRepo.Count(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to count teams", zap.Error(err))
		return nil, 0, shared.NewDomainError("FETCH_FAILED", "Failed to count teams")
	}

	result := make([]TeamWithCount, 0, len(teams))
	for _, team := range teams {
		count, err := s.userRepo.CountByTeam(ctx, team.ID)
		if err != nil {
			s.logger.Error("Failed to count team members", zap.String("team_id", team.ID.String()), zap.Error(err))
			return nil, 0, shared.NewDomainError("FETCH_FAILED", "Failed to count team members")
		}
		result = append(result, TeamWithCount{Team: team, MemberCount: count})
	}

	return result, total, nil
}

// Get returns one team with its members
func (s *TeamService) Get(ctx context.Context, id uuid.UUID) (*TeamDetail, error) {
	team, err := s.teamRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Team not found")
		}
		s.logger.Error("Failed to load team", zap.String("team_id", id.String()), zap.Error(err))
		return nil, shared.NewDomainError("FETCH_FAILED", "Failed to load team")
	}

	members, err := s.userRepo.FindByTeam(ctx, id)
	if err != nil {
		s.logger.Error("Failed to load team members", zap.String("team_id", id.String()), zap.Error(err))
		return nil, shared.NewDomainError("FETCH_FAILED", "Failed to load team members")
	}

	return &TeamDetail{Team: *team, Members: members}, nil
}

// Create registers a new team
func (s *TeamService) Create(ctx context.Context, input CreateTeamInput) (*identity.Team, error) {
	exists, err := s.teamRepo.ExistsByName(ctx, input.Name)
	if err != nil {
		s.logger.Error("Failed to check team name", zap.Error(err))
		return nil, shared.NewDomainError("CREATE_FAILED", "Failed to create team")
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A team with this name already exists")
	}

	team, err := identity.NewTeam(input.Name, input.Description)
	if err != nil {
		return nil, err
	}
	if input.ManagerID != nil {
		team.SetManager(*input.ManagerID)
	}

	if err := s.teamRepo.Save(ctx, team); err != nil {
		s.logger.Error("Failed to save team", zap.Error(err))
		return nil, shared.NewDomainError("CREATE_FAILED", "Failed to create team")
	}

	s.logger.Info("Team created", zap.String("team_id", team.ID.String()), zap.String("name", team.Name))
	return team, nil
}

// Update changes the team's basic information
func (s *TeamService) Update(ctx context.Context, id uuid.UUID, input UpdateTeamInput) (*identity.Team, error) {
	team, err := s.teamRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Team not found")
		}
		s.logger.Error("Failed to load team", zap.String("team_id", id.String()), zap.Error(err))
		return nil, shared.NewDomainError("FETCH_FAILED", "Failed to load team")
	}

	if err := team.Update(input.Name, input.Description); err != nil {
		return nil, err
	}
	if input.ManagerID != nil {
		team.SetManager(*input.ManagerID)
	}

	if err := s.teamRepo.Save(ctx, team); err != nil {
		s.logger.Error("Failed to save team", zap.String("team_id", id.String()), zap.Error(err))
		return nil, shared.NewDomainError("UPDATE_FAILED", "Failed to update team")
	}
	return team, nil
}

// Delete removes a team; its members are detached first
func (s *TeamService) Delete(ctx context.Context, id uuid.UUID) error {
	members, err := s.userRepo.FindByTeam(ctx, id)
	if err != nil {
		s.logger.Error("Failed to load team members", zap.String("team_id", id.String()), zap.Error(err))
		return shared.NewDomainError("DELETE_FAILED", "Failed to delete team")
	}
	for i := range members {
		members[i].LeaveTeam()
		if err := s.userRepo.Save(ctx, &members[i]); err != nil {
			s.logger.Error("Failed to detach team member",
				zap.String("team_id", id.String()),
				zap.String("user_id", members[i].ID.String()),
				zap.Error(err))
			return shared.NewDomainError("DELETE_FAILED", "Failed to delete team")
		}
	}

	if err := s.teamRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("NOT_FOUND", "Team not found")
		}
		s.logger.Error("Failed to delete team", zap.String("team_id", id.String()), zap.Error(err))
		return shared.NewDomainError("DELETE_FAILED", "Failed to delete team")
	}
	return nil
}

// AddMember places a user in the team
func (s *TeamService) AddMember(ctx context.Context, teamID, userID uuid.UUID) error {
	if _, err := s.teamRepo.FindByID(ctx, teamID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("NOT_FOUND", "Team not found")
		}
		return shared.NewDomainError("FETCH_FAILED", "Failed to load team")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("NOT_FOUND", "User not found")
		}
		return shared.NewDomainError("FETCH_FAILED", "Failed to load user")
	}

	user.AssignTeam(teamID)
	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to add team member",
			zap.String("team_id", teamID.String()),
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return shared.NewDomainError("UPDATE_FAILED", "Failed to add team member")
	}
	return nil
}

// RemoveMember detaches a user from the team
func (s *TeamService) RemoveMember(ctx context.Context, teamID, userID uuid.UUID) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("NOT_FOUND", "User not found")
		}
		return shared.NewDomainError("FETCH_FAILED", "Failed to load user")
	}

	if user.TeamID == nil || *user.TeamID != teamID {
		return shared.NewDomainError("INVALID_STATE", "User is not a member of this team")
	}

	user.LeaveTeam()
	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to remove team member",
			zap.String("team_id", teamID.String()),
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return shared.NewDomainError("UPDATE_FAILED", "Failed to remove team member")
	}
	return nil
}
