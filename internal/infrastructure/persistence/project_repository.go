package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/chronodo/backend/internal/domain/project"
	"github.com/chronodo/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormProjectRepository implements ProjectRepository using GORM
type GormProjectRepository struct {
	db *gorm.DB
}

// NewGormProjectRepository creates a new GormProjectRepository
func NewGormProjectRepository(db *gorm.DB) *GormProjectRepository {
	return &GormProjectRepository{db: db}
}

// FindByID finds a project by its ID
func (r *GormProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*project.Project, error) {
	var p project.Project
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// FindByCode finds a project by its code
func (r *GormProjectRepository) FindByCode(ctx context.Context, code string) (*project.Project, error) {
	var p project.Project
	if err := r.db.WithContext(ctx).
		Where("code = ?", code).
		First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// FindAll finds all projects matching the filter
func (r *GormProjectRepository) FindAll(ctx context.Context, filter shared.Filter) ([]project.Project, error) {
	var projects []project.Project
	query := r.applyFilter(r.db.WithContext(ctx).Model(&project.Project{}), filter)

	if err := query.Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// ListCodes returns every project code currently in use
func (r *GormProjectRepository) ListCodes(ctx context.Context) ([]string, error) {
	var codes []string
	if err := r.db.WithContext(ctx).
		Model(&project.Project{}).
		Pluck("code", &codes).Error; err != nil {
		return nil, err
	}
	return codes, nil
}

// Create inserts a new project. A unique violation on the code column is
// reported as shared.ErrAlreadyExists so the caller can retry allocation.
func (r *GormProjectRepository) Create(ctx context.Context, p *project.Project) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Save creates or updates a project
func (r *GormProjectRepository) Save(ctx context.Context, p *project.Project) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// Delete deletes a project
func (r *GormProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&project.Project{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts projects matching the filter
func (r *GormProjectRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&project.Project{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormProjectRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, ProjectSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormProjectRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("lower(name) LIKE ? OR lower(code) LIKE ?", searchPattern, searchPattern)
	}

	for key, value := range ColumnFilters(filter.Filters) {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		}
	}

	return query
}

// Ensure GormProjectRepository implements ProjectRepository
var _ project.ProjectRepository = (*GormProjectRepository)(nil)
