package tracking

import (
	"strings"
	"time"

	"github.com/chronodo/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// TimeEntry represents a single block of logged work time. Entries are
// immutable once logged; corrections are made by deleting and re-logging.
type TimeEntry struct {
	shared.BaseEntity
	UserID          uuid.UUID  `gorm:"type:uuid;not null;index"`
	ProjectID       *uuid.UUID `gorm:"type:uuid;index"`
	CategoryID      *uuid.UUID `gorm:"type:uuid;index"`
	StartTime       time.Time  `gorm:"not null;index"`
	DurationMinutes int        `gorm:"not null"`
	Description     string     `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (TimeEntry) TableName() string {
	return "time_entries"
}

// NewTimeEntry creates a new time entry for a user
func NewTimeEntry(userID uuid.UUID, projectID, categoryID *uuid.UUID, startTime time.Time, durationMinutes int, description string) (*TimeEntry, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "User ID is required")
	}
	if startTime.IsZero() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Start time is required")
	}
	if durationMinutes < 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Duration cannot be negative")
	}

	return &TimeEntry{
		BaseEntity:      shared.NewBaseEntity(),
		UserID:          userID,
		ProjectID:       projectID,
		CategoryID:      categoryID,
		StartTime:       startTime,
		DurationMinutes: durationMinutes,
		Description:     strings.TrimSpace(description),
	}, nil
}

// Day returns the calendar day the entry belongs to, in the entry's location
func (e *TimeEntry) Day() time.Time {
	y, m, d := e.StartTime.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, e.StartTime.Location())
}
