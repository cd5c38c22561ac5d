package tracking

import (
	"context"
	"time"

	"github.com/chronodo/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// LabeledEntry is a read model of a time entry joined with the labels of
// its project and category relations. Rows with a null relation carry nil
// IDs and empty labels.
type LabeledEntry struct {
	ProjectID       *uuid.UUID
	ProjectName     string
	ProjectCode     string
	CategoryID      *uuid.UUID
	CategoryName    string
	StartTime       time.Time
	DurationMinutes int
}

// DailyMinutes is the total logged minutes of one calendar day
type DailyMinutes struct {
	Day     time.Time
	Minutes int
}

// TimeEntryRepository defines persistence operations for time entries
type TimeEntryRepository interface {
	shared.Repository[TimeEntry]
	FindByUserBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]TimeEntry, error)
	// FindLabeledBetween returns the user's entries in [from, to) together
	// with their project and category labels.
	FindLabeledBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]LabeledEntry, error)
	// SumMinutes returns the total logged minutes for the user in [from, to)
	SumMinutes(ctx context.Context, userID uuid.UUID, from, to time.Time) (int, error)
	// SumMinutesPerDay returns one row per calendar day with logged time,
	// ordered by day ascending. Days without entries are absent.
	SumMinutesPerDay(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]DailyMinutes, error)
}
