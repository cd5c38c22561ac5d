package identity

import (
	"time"

	"github.com/chronodo/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// LoginInput contains the input for user login
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult contains the result of a successful login
type LoginResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
	User                  UserInfo
}

// UserInfo contains basic user information returned after login
type UserInfo struct {
	ID                uuid.UUID
	Email             string
	FirstName         string
	LastName          string
	Role              identity.Role
	WeeklyHoursTarget float64
	TeamID            *uuid.UUID
}

// RefreshTokenInput contains the input for token refresh
type RefreshTokenInput struct {
	RefreshToken string
}

// RefreshTokenResult contains the result of a token refresh
type RefreshTokenResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
}

// LogoutInput contains the input for user logout
type LogoutInput struct {
	UserID   uuid.UUID
	TokenJTI string
	TokenTTL time.Duration
}

// ChangePasswordInput contains the input for password change
type ChangePasswordInput struct {
	UserID      uuid.UUID
	OldPassword string
	NewPassword string
}

// CreateUserInput contains the input for administrative user creation
type CreateUserInput struct {
	Email             string
	Password          string
	FirstName         string
	LastName          string
	Role              identity.Role
	WeeklyHoursTarget *float64
}

// UpdateProfileInput contains the self-service whitelist. Email and role
// are deliberately absent; the handler drops them silently.
type UpdateProfileInput struct {
	FirstName         *string
	LastName          *string
	WeeklyHoursTarget *float64
}

// AdminUpdateUserInput contains the administrative update fields
type AdminUpdateUserInput struct {
	FirstName         *string
	LastName          *string
	WeeklyHoursTarget *float64
	Role              *identity.Role
	Active            *bool
}

// ListUsersInput contains pagination and filter options
type ListUsersInput struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
	Role     string
	TeamID   *uuid.UUID
}

// CreateTeamInput contains the input for team creation
type CreateTeamInput struct {
	Name        string
	Description string
	ManagerID   *uuid.UUID
}

// UpdateTeamInput contains the updatable team fields
type UpdateTeamInput struct {
	Name        *string
	Description *string
	ManagerID   *uuid.UUID
}

// TeamWithCount pairs a team with its member count
type TeamWithCount struct {
	Team        identity.Team
	MemberCount int64
}

// TeamDetail pairs a team with its members
type TeamDetail struct {
	Team    identity.Team
	Members []identity.User
}
