package tracking

import (
	"time"

	"github.com/chronodo/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// TimesheetStatus represents the review state of a weekly timesheet
type TimesheetStatus string

const (
	TimesheetDraft     TimesheetStatus = "draft"
	TimesheetSubmitted TimesheetStatus = "submitted"
	TimesheetValidated TimesheetStatus = "validated"
	TimesheetRejected  TimesheetStatus = "rejected"
)

// TimesheetStatusNone is reported when a user has no timesheet for the
// current week. It is never stored.
const TimesheetStatusNone = "none"

// Timesheet represents one user's weekly submission. WeekStart is always
// the Monday of the covered week at midnight.
type Timesheet struct {
	shared.BaseEntity
	UserID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_timesheet_user_week"`
	WeekStart time.Time       `gorm:"not null;uniqueIndex:idx_timesheet_user_week"`
	Status    TimesheetStatus `gorm:"type:varchar(20);not null;default:'draft'"`
	Comment   string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Timesheet) TableName() string {
	return "timesheets"
}

// WeekStartKey normalizes a week start to its canonical stored form:
// midnight UTC of the calendar date. Writes and lookups must both go
// through this, otherwise the same logical week maps to different keys
// depending on the server's zone.
func WeekStartKey(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NewTimesheet creates a draft timesheet for the week starting at weekStart
func NewTimesheet(userID uuid.UUID, weekStart time.Time) (*Timesheet, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "User ID is required")
	}
	weekStart = WeekStartKey(weekStart)
	if weekStart.Weekday() != time.Monday {
		return nil, shared.NewDomainError("INVALID_INPUT", "Week start must be a Monday")
	}

	return &Timesheet{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		WeekStart:  weekStart,
		Status:     TimesheetDraft,
	}, nil
}

// Submit moves a draft or rejected timesheet into review
func (t *Timesheet) Submit() error {
	if t.Status != TimesheetDraft && t.Status != TimesheetRejected {
		return shared.NewDomainError("INVALID_STATE", "Only draft or rejected timesheets can be submitted")
	}
	t.Status = TimesheetSubmitted
	t.UpdatedAt = time.Now()
	return nil
}

// Validate approves a submitted timesheet
func (t *Timesheet) Validate() error {
	if t.Status != TimesheetSubmitted {
		return shared.NewDomainError("INVALID_STATE", "Only submitted timesheets can be validated")
	}
	t.Status = TimesheetValidated
	t.UpdatedAt = time.Now()
	return nil
}

// Reject sends a submitted timesheet back to its owner with a comment
func (t *Timesheet) Reject(comment string) error {
	if t.Status != TimesheetSubmitted {
		return shared.NewDomainError("INVALID_STATE", "Only submitted timesheets can be rejected")
	}
	t.Status = TimesheetRejected
	t.Comment = comment
	t.UpdatedAt = time.Now()
	return nil
}
