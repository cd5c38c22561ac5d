package identity

import (
	"strings"
	"time"

	"github.com/chronodo/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Team groups users under an optional manager
type Team struct {
	shared.BaseEntity
	Name        string     `gorm:"type:varchar(200);not null;uniqueIndex"`
	Description string     `gorm:"type:text"`
	ManagerID   *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (Team) TableName() string {
	return "teams"
}

// NewTeam creates a new team
func NewTeam(name, description string) (*Team, error) {
	if err := validateTeamName(name); err != nil {
		return nil, err
	}
	return &Team{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        strings.TrimSpace(name),
		Description: description,
	}, nil
}

// Update updates the team's basic information
func (t *Team) Update(name, description *string) error {
	if name != nil {
		if err := validateTeamName(*name); err != nil {
			return err
		}
		t.Name = strings.TrimSpace(*name)
	}
	if description != nil {
		t.Description = *description
	}
	t.UpdatedAt = time.Now()
	return nil
}

// SetManager assigns the managing user
func (t *Team) SetManager(managerID uuid.UUID) {
	t.ManagerID = &managerID
	t.UpdatedAt = time.Now()
}

func validateTeamName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_INPUT", "Team name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_INPUT", "Team name cannot exceed 200 characters")
	}
	return nil
}
