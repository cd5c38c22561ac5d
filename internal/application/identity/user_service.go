package identity

import (
	"context"
	"errors"

	"github.com/chronodo/backend/internal/domain/identity"
	"github.com/chronodo/backend/internal/domain/shared"
	"github.com/chronodo/backend/internal/infrastructure/cache"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserService handles user management operations
type UserService struct {
	userRepo  identity.UserRepository
	roleCache cache.RoleCache
	logger    *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo identity.UserRepository, roleCache cache.RoleCache, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo:  userRepo,
		roleCache: roleCache,
		logger:    logger,
	}
}

// List returns users matching the filter together with the total count
func (s *UserService) List(ctx context.Context, input ListUsersInput) ([]identity.User, int64, error) {
	filter := shared.Filter{
		Page:     input.Page,
		PageSize: input.PageSize,
		OrderBy:  input.OrderBy,
		OrderDir: input.OrderDir,
		Search:   input.Search,
		Filters:  make(map[string]interface{}),
	}
	if input.Role != "" {
		filter.Filters["role"] = input.Role
	}
	if input.TeamID != nil {
		filter.Filters["teamId"] = *input.TeamID
	}

	users, err := s.userRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list users", zap.Error(err))
		return nil, 0, shared.NewDomainError("FETCH_FAILED", "Failed to list users")
	}

	total, err := s.userRepo.Count(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to count users", zap.Error(err))
		return nil, 0, shared.NewDomainError("FETCH_FAILED", "Failed to count users")
	}

	return users, total, nil
}

// Get returns one user by ID
func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "User not found")
		}
		s.logger.Error("Failed to load user", zap.String("user_id", id.String()), zap.Error(err))
		return nil, shared.NewDomainError("FETCH_FAILED", "Failed to load user")
	}
	return user, nil
}

// Create registers a new user (administrative operation)
func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*identity.User, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		s.logger.Error("Failed to check email uniqueness", zap.Error(err))
		return nil, shared.NewDomainError("CREATE_FAILED", "Failed to create user")
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A user with this email already exists")
	}

	if len(input.Password) < 8 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create user")
	}

	user, err := identity.NewUser(input.Email, string(hash), input.FirstName, input.LastName, input.Role)
	if err != nil {
		return nil, err
	}
	if input.WeeklyHoursTarget != nil {
		if err := user.UpdateProfile(nil, nil, input.WeeklyHoursTarget); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to save user", zap.Error(err))
		return nil, shared.NewDomainError("CREATE_FAILED", "Failed to create user")
	}

	s.logger.Info("User created", zap.String("user_id", user.ID.String()), zap.String("role", string(user.Role)))
	return user, nil
}

// UpdateProfile applies the self-service whitelist to the user's own
// profile. Email and role cannot be changed here.
func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*identity.User, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := user.UpdateProfile(input.FirstName, input.LastName, input.WeeklyHoursTarget); err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to save profile", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, shared.NewDomainError("UPDATE_FAILED", "Failed to update profile")
	}
	return user, nil
}

// AdminUpdate applies the administrative update, which may change the role.
// A role or activity change invalidates the user's cached role.
func (s *UserService) AdminUpdate(ctx context.Context, userID uuid.UUID, input AdminUpdateUserInput) (*identity.User, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := user.UpdateProfile(input.FirstName, input.LastName, input.WeeklyHoursTarget); err != nil {
		return nil, err
	}
	if input.Role != nil {
		if err := user.ChangeRole(*input.Role); err != nil {
			return nil, err
		}
	}
	if input.Active != nil {
		if *input.Active {
			user.Activate()
		} else {
			user.Deactivate()
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to save user", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, shared.NewDomainError("UPDATE_FAILED", "Failed to update user")
	}

	if input.Role != nil || input.Active != nil {
		if err := s.roleCache.Invalidate(ctx, userID.String()); err != nil {
			s.logger.Warn("Failed to invalidate role cache", zap.String("user_id", userID.String()), zap.Error(err))
		}
	}

	return user, nil
}

// Delete removes a user and drops their cached role
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("NOT_FOUND", "User not found")
		}
		s.logger.Error("Failed to delete user", zap.String("user_id", id.String()), zap.Error(err))
		return shared.NewDomainError("DELETE_FAILED", "Failed to delete user")
	}

	if err := s.roleCache.Invalidate(ctx, id.String()); err != nil {
		s.logger.Warn("Failed to invalidate role cache", zap.String("user_id", id.String()), zap.Error(err))
	}
	return nil
}
