package project

import (
	"strings"
	"time"

	"github.com/chronodo/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Status represents the lifecycle status of a project
type Status string

const (
	StatusActive   Status = "active"
	StatusArchived Status = "archived"
)

// Project represents a billable or internal project that time is logged against.
// The code is allocated once at creation and never changes afterwards.
type Project struct {
	shared.BaseEntity
	Code        string           `gorm:"type:varchar(20);not null;uniqueIndex"`
	Name        string           `gorm:"type:varchar(200);not null"`
	Description string           `gorm:"type:text"`
	BudgetHours *decimal.Decimal `gorm:"type:numeric(10,2)"`
	Status      Status           `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Project) TableName() string {
	return "projects"
}

// NewProject creates a new project with an already-allocated code
func NewProject(code, name, description string, budgetHours *decimal.Decimal) (*Project, error) {
	if !codePattern.MatchString(code) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Project code must match PRJ-<number>")
	}
	if err := validateProjectName(name); err != nil {
		return nil, err
	}
	if budgetHours != nil && budgetHours.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Budget hours cannot be negative")
	}

	return &Project{
		BaseEntity:  shared.NewBaseEntity(),
		Code:        code,
		Name:        strings.TrimSpace(name),
		Description: description,
		BudgetHours: budgetHours,
		Status:      StatusActive,
	}, nil
}

// Update updates the editable fields. The code is immutable and therefore
// not accepted here.
func (p *Project) Update(name, description *string, budgetHours *decimal.Decimal) error {
	if name != nil {
		if err := validateProjectName(*name); err != nil {
			return err
		}
		p.Name = strings.TrimSpace(*name)
	}
	if description != nil {
		p.Description = *description
	}
	if budgetHours != nil {
		if budgetHours.IsNegative() {
			return shared.NewDomainError("INVALID_INPUT", "Budget hours cannot be negative")
		}
		p.BudgetHours = budgetHours
	}
	p.UpdatedAt = time.Now()
	return nil
}

// Archive moves the project to the archived status
func (p *Project) Archive() error {
	if p.Status == StatusArchived {
		return shared.NewDomainError("INVALID_STATE", "Project is already archived")
	}
	p.Status = StatusArchived
	p.UpdatedAt = time.Now()
	return nil
}

// Restore moves an archived project back to active
func (p *Project) Restore() error {
	if p.Status == StatusActive {
		return shared.NewDomainError("INVALID_STATE", "Project is already active")
	}
	p.Status = StatusActive
	p.UpdatedAt = time.Now()
	return nil
}

// IsActive reports whether the project accepts new time entries
func (p *Project) IsActive() bool {
	return p.Status == StatusActive
}

func validateProjectName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_INPUT", "Project name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_INPUT", "Project name cannot exceed 200 characters")
	}
	return nil
}
