package identity

import (
	"strings"
	"time"

	"github.com/chronodo/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Role represents a user's role in the system
type Role string

const (
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
)

// DefaultWeeklyHoursTarget is the contractual weekly hours applied when none is set
const DefaultWeeklyHoursTarget = 35.0

// User represents an authenticated person tracking time.
// It is the aggregate root of the identity context.
type User struct {
	shared.BaseEntity
	Email             string     `gorm:"type:varchar(200);not null;uniqueIndex"`
	PasswordHash      string     `gorm:"type:varchar(200);not null"`
	FirstName         string     `gorm:"type:varchar(100);not null"`
	LastName          string     `gorm:"type:varchar(100);not null"`
	Role              Role       `gorm:"type:varchar(20);not null;default:'employee'"`
	WeeklyHoursTarget float64    `gorm:"not null;default:35"`
	TeamID            *uuid.UUID `gorm:"type:uuid;index"`
	Active            bool       `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a new user with required fields
func NewUser(email, passwordHash, firstName, lastName string, role Role) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if passwordHash == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Password hash cannot be empty")
	}
	if err := validateRole(role); err != nil {
		return nil, err
	}

	return &User{
		BaseEntity:        shared.NewBaseEntity(),
		Email:             email,
		PasswordHash:      passwordHash,
		FirstName:         strings.TrimSpace(firstName),
		LastName:          strings.TrimSpace(lastName),
		Role:              role,
		WeeklyHoursTarget: DefaultWeeklyHoursTarget,
		Active:            true,
	}, nil
}

// UpdateProfile updates the self-service editable fields.
// Email and role are deliberately not part of this method: they can only
// change through administrative operations.
func (u *User) UpdateProfile(firstName, lastName *string, weeklyHoursTarget *float64) error {
	if firstName != nil {
		if strings.TrimSpace(*firstName) == "" {
			return shared.NewDomainError("INVALID_INPUT", "First name cannot be empty")
		}
		u.FirstName = strings.TrimSpace(*firstName)
	}
	if lastName != nil {
		if strings.TrimSpace(*lastName) == "" {
			return shared.NewDomainError("INVALID_INPUT", "Last name cannot be empty")
		}
		u.LastName = strings.TrimSpace(*lastName)
	}
	if weeklyHoursTarget != nil {
		if *weeklyHoursTarget <= 0 {
			return shared.NewDomainError("INVALID_INPUT", "Weekly hours target must be positive")
		}
		u.WeeklyHoursTarget = *weeklyHoursTarget
	}
	u.UpdatedAt = time.Now()
	return nil
}

// ChangeRole changes the user's role (administrative operation)
func (u *User) ChangeRole(role Role) error {
	if err := validateRole(role); err != nil {
		return err
	}
	u.Role = role
	u.UpdatedAt = time.Now()
	return nil
}

// ChangePassword replaces the stored password hash
func (u *User) ChangePassword(passwordHash string) error {
	if passwordHash == "" {
		return shared.NewDomainError("INVALID_INPUT", "Password hash cannot be empty")
	}
	u.PasswordHash = passwordHash
	u.UpdatedAt = time.Now()
	return nil
}

// AssignTeam places the user in a team
func (u *User) AssignTeam(teamID uuid.UUID) {
	u.TeamID = &teamID
	u.UpdatedAt = time.Now()
}

// LeaveTeam removes the user from their team
func (u *User) LeaveTeam() {
	u.TeamID = nil
	u.UpdatedAt = time.Now()
}

// Deactivate marks the user as inactive
func (u *User) Deactivate() {
	u.Active = false
	u.UpdatedAt = time.Now()
}

// Activate marks the user as active
func (u *User) Activate() {
	u.Active = true
	u.UpdatedAt = time.Now()
}

// FullName returns the display name
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// IsManager reports whether the user has the manager role
func (u *User) IsManager() bool {
	return u.Role == RoleManager
}

func validateEmail(email string) error {
	if email == "" {
		return shared.NewDomainError("INVALID_INPUT", "Email cannot be empty")
	}
	if !strings.Contains(email, "@") || len(email) > 200 {
		return shared.NewDomainError("INVALID_INPUT", "Invalid email address")
	}
	return nil
}

func validateRole(role Role) error {
	switch role {
	case RoleEmployee, RoleManager:
		return nil
	default:
		return shared.NewDomainError("INVALID_INPUT", "Role must be employee or manager")
	}
}
