package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/chronodo/backend/internal/domain/shared"
	"github.com/chronodo/backend/internal/domain/tracking"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormTimesheetRepository implements TimesheetRepository using GORM
type GormTimesheetRepository struct {
	db *gorm.DB
}

// NewGormTimesheetRepository creates a new GormTimesheetRepository
func NewGormTimesheetRepository(db *gorm.DB) *GormTimesheetRepository {
	return &GormTimesheetRepository{db: db}
}

// FindByID finds a timesheet by its ID
func (r *GormTimesheetRepository) FindByID(ctx context.Context, id uuid.UUID) (*tracking.Timesheet, error) {
	var sheet tracking.Timesheet
	if err := r.db.WithContext(ctx).First(&sheet, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sheet, nil
}

// FindAll finds all timesheets matching the filter
func (r *GormTimesheetRepository) FindAll(ctx context.Context, filter shared.Filter) ([]tracking.Timesheet, error) {
	var sheets []tracking.Timesheet
	query := r.applyFilter(r.db.WithContext(ctx).Model(&tracking.Timesheet{}), filter)

	if err := query.Find(&sheets).Error; err != nil {
		return nil, err
	}
	return sheets, nil
}

// FindByUser finds all timesheets owned by a user
func (r *GormTimesheetRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]tracking.Timesheet, error) {
	var sheets []tracking.Timesheet
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("week_start DESC").
		Find(&sheets).Error; err != nil {
		return nil, err
	}
	return sheets, nil
}

// FindByUserAndWeek finds the user's timesheet for the given week start
func (r *GormTimesheetRepository) FindByUserAndWeek(ctx context.Context, userID uuid.UUID, weekStart time.Time) (*tracking.Timesheet, error) {
	var sheet tracking.Timesheet
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND week_start = ?", userID, weekStart).
		First(&sheet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sheet, nil
}

// statusCountRow is the scan target for the status count query
type statusCountRow struct {
	Status tracking.TimesheetStatus
	Count  int64
}

// CountByStatus returns how many timesheets the user owns per status
func (r *GormTimesheetRepository) CountByStatus(ctx context.Context, userID uuid.UUID) (map[tracking.TimesheetStatus]int64, error) {
	var rows []statusCountRow
	if err := r.db.WithContext(ctx).
		Model(&tracking.Timesheet{}).
		Select("status, COUNT(*) AS count").
		Where("user_id = ?", userID).
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[tracking.TimesheetStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// FindByStatus finds timesheets in the given status
func (r *GormTimesheetRepository) FindByStatus(ctx context.Context, status tracking.TimesheetStatus, filter shared.Filter) ([]tracking.Timesheet, error) {
	var sheets []tracking.Timesheet
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&tracking.Timesheet{}).Where("status = ?", status),
		filter,
	)

	if err := query.Find(&sheets).Error; err != nil {
		return nil, err
	}
	return sheets, nil
}

// Save creates or updates a timesheet
func (r *GormTimesheetRepository) Save(ctx context.Context, sheet *tracking.Timesheet) error {
	return r.db.WithContext(ctx).Save(sheet).Error
}

// Delete deletes a timesheet
func (r *GormTimesheetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&tracking.Timesheet{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts timesheets matching the filter
func (r *GormTimesheetRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&tracking.Timesheet{})

	for key, value := range ColumnFilters(filter.Filters) {
		switch key {
		case "user_id":
			query = query.Where("user_id = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		}
	}

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormTimesheetRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range ColumnFilters(filter.Filters) {
		switch key {
		case "user_id":
			query = query.Where("user_id = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		}
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, TimesheetSortFields, "week_start")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// Ensure GormTimesheetRepository implements TimesheetRepository
var _ tracking.TimesheetRepository = (*GormTimesheetRepository)(nil)
