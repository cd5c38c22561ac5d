package tracking

import (
	"context"
	"time"

	"github.com/chronodo/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// TimesheetRepository defines persistence operations for timesheets
type TimesheetRepository interface {
	shared.Repository[Timesheet]
	FindByUser(ctx context.Context, userID uuid.UUID) ([]Timesheet, error)
	FindByUserAndWeek(ctx context.Context, userID uuid.UUID, weekStart time.Time) (*Timesheet, error)
	// CountByStatus returns how many timesheets the user owns per status
	CountByStatus(ctx context.Context, userID uuid.UUID) (map[TimesheetStatus]int64, error)
	FindByStatus(ctx context.Context, status TimesheetStatus, filter shared.Filter) ([]Timesheet, error)
}
