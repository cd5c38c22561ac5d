package tracking

import (
	"time"

	"github.com/google/uuid"
)

// CreateTimeEntryInput contains the input for logging a time block
type CreateTimeEntryInput struct {
	UserID          uuid.UUID
	ProjectID       *uuid.UUID
	CategoryID      *uuid.UUID
	StartTime       time.Time
	DurationMinutes int
	Description     string
}

// ListTimeEntriesInput contains pagination and filter options for one user's
// entries
type ListTimeEntriesInput struct {
	UserID   uuid.UUID
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	From     *time.Time
	To       *time.Time
}

// CreateCategoryInput contains the input for category creation
type CreateCategoryInput struct {
	Name        string
	Description string
	Color       string
}

// UpdateCategoryInput contains the updatable category fields
type UpdateCategoryInput struct {
	Name        *string
	Description *string
	Color       *string
}

// SubmitTimesheetInput identifies the week being submitted
type SubmitTimesheetInput struct {
	UserID    uuid.UUID
	WeekStart time.Time
}

// ReviewTimesheetInput contains the manager's review decision context
type ReviewTimesheetInput struct {
	TimesheetID uuid.UUID
	ReviewerID  uuid.UUID
	Comment     string
}
