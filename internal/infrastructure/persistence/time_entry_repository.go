package persistence

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/chronodo/backend/internal/domain/shared"
	"github.com/chronodo/backend/internal/domain/tracking"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormTimeEntryRepository implements TimeEntryRepository using GORM
type GormTimeEntryRepository struct {
	db *gorm.DB
}

// NewGormTimeEntryRepository creates a new GormTimeEntryRepository
func NewGormTimeEntryRepository(db *gorm.DB) *GormTimeEntryRepository {
	return &GormTimeEntryRepository{db: db}
}

// FindByID finds a time entry by its ID
func (r *GormTimeEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*tracking.TimeEntry, error) {
	var entry tracking.TimeEntry
	if err := r.db.WithContext(ctx).First(&entry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// FindAll finds all time entries matching the filter
func (r *GormTimeEntryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]tracking.TimeEntry, error) {
	var entries []tracking.TimeEntry
	query := r.applyFilter(r.db.WithContext(ctx).Model(&tracking.TimeEntry{}), filter)

	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// FindByUserBetween finds the user's entries whose start time falls in [from, to)
func (r *GormTimeEntryRepository) FindByUserBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]tracking.TimeEntry, error) {
	var entries []tracking.TimeEntry
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND start_time >= ? AND start_time < ?", userID, from, to).
		Order("start_time ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// labeledEntryRow is the scan target for the label join query
type labeledEntryRow struct {
	ProjectID       *uuid.UUID
	ProjectName     *string
	ProjectCode     *string
	CategoryID      *uuid.UUID
	CategoryName    *string
	StartTime       time.Time
	DurationMinutes int
}

// FindLabeledBetween returns entries joined with project and category labels
func (r *GormTimeEntryRepository) FindLabeledBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]tracking.LabeledEntry, error) {
	var rows []labeledEntryRow
	if err := r.db.WithContext(ctx).
		Table("time_entries").
		Select("time_entries.project_id, projects.name AS project_name, projects.code AS project_code, " +
			"time_entries.category_id, categories.name AS category_name, " +
			"time_entries.start_time, time_entries.duration_minutes").
		Joins("LEFT JOIN projects ON projects.id = time_entries.project_id").
		Joins("LEFT JOIN categories ON categories.id = time_entries.category_id").
		Where("time_entries.user_id = ? AND time_entries.start_time >= ? AND time_entries.start_time < ?", userID, from, to).
		Order("time_entries.start_time ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	entries := make([]tracking.LabeledEntry, len(rows))
	for i, row := range rows {
		entry := tracking.LabeledEntry{
			ProjectID:       row.ProjectID,
			CategoryID:      row.CategoryID,
			StartTime:       row.StartTime,
			DurationMinutes: row.DurationMinutes,
		}
		if row.ProjectName != nil {
			entry.ProjectName = *row.ProjectName
		}
		if row.ProjectCode != nil {
			entry.ProjectCode = *row.ProjectCode
		}
		if row.CategoryName != nil {
			entry.CategoryName = *row.CategoryName
		}
		entries[i] = entry
	}
	return entries, nil
}

// SumMinutes returns the total logged minutes for the user in [from, to)
func (r *GormTimeEntryRepository) SumMinutes(ctx context.Context, userID uuid.UUID, from, to time.Time) (int, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&tracking.TimeEntry{}).
		Where("user_id = ? AND start_time >= ? AND start_time < ?", userID, from, to).
		Select("COALESCE(SUM(duration_minutes), 0)").
		Scan(&total).Error; err != nil {
		return 0, err
	}
	return int(total), nil
}

// SumMinutesPerDay returns one row per calendar day with logged time,
// ordered by day ascending. Grouping happens in process to keep day
// bucketing independent of the SQL dialect's date functions; the row
// count per user and window is small.
func (r *GormTimeEntryRepository) SumMinutesPerDay(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]tracking.DailyMinutes, error) {
	entries, err := r.FindByUserBetween(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	byDay := make(map[time.Time]int)
	for _, entry := range entries {
		byDay[entry.Day()] += entry.DurationMinutes
	}

	days := make([]tracking.DailyMinutes, 0, len(byDay))
	for day, minutes := range byDay {
		days = append(days, tracking.DailyMinutes{Day: day, Minutes: minutes})
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Day.Before(days[j].Day)
	})
	return days, nil
}

// Save creates or updates a time entry
func (r *GormTimeEntryRepository) Save(ctx context.Context, entry *tracking.TimeEntry) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

// Delete deletes a time entry
func (r *GormTimeEntryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&tracking.TimeEntry{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts time entries matching the filter
func (r *GormTimeEntryRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&tracking.TimeEntry{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormTimeEntryRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, TimeEntrySortFields, "start_time")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormTimeEntryRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range ColumnFilters(filter.Filters) {
		switch key {
		case "user_id":
			query = query.Where("user_id = ?", value)
		case "project_id":
			query = query.Where("project_id = ?", value)
		case "category_id":
			query = query.Where("category_id = ?", value)
		}
	}
	return query
}

// Ensure GormTimeEntryRepository implements TimeEntryRepository
var _ tracking.TimeEntryRepository = (*GormTimeEntryRepository)(nil)
