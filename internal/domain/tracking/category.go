package tracking

import (
	"regexp"
	"strings"
	"time"

	"github.com/chronodo/backend/internal/domain/shared"
)

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Category classifies time entries that are not tied to a project, such as
// meetings, support or training.
type Category struct {
	shared.BaseEntity
	Name        string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Description string `gorm:"type:text"`
	Color       string `gorm:"type:varchar(7)"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a new time entry category
func NewCategory(name, description, color string) (*Category, error) {
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}
	if err := validateCategoryColor(color); err != nil {
		return nil, err
	}

	return &Category{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        strings.TrimSpace(name),
		Description: description,
		Color:       color,
	}, nil
}

// Update updates the category fields
func (c *Category) Update(name, description, color *string) error {
	if name != nil {
		if err := validateCategoryName(*name); err != nil {
			return err
		}
		c.Name = strings.TrimSpace(*name)
	}
	if description != nil {
		c.Description = *description
	}
	if color != nil {
		if err := validateCategoryColor(*color); err != nil {
			return err
		}
		c.Color = *color
	}
	c.UpdatedAt = time.Now()
	return nil
}

func validateCategoryName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_INPUT", "Category name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_INPUT", "Category name cannot exceed 100 characters")
	}
	return nil
}

func validateCategoryColor(color string) error {
	if color == "" {
		return nil
	}
	if !colorPattern.MatchString(color) {
		return shared.NewDomainError("INVALID_INPUT", "Color must be a hex value like #3366FF")
	}
	return nil
}
