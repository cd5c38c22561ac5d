package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/chronodo/backend/internal/domain/identity"
	"github.com/chronodo/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormTeamRepository implements TeamRepository using GORM
type GormTeamRepository struct {
	db *gorm.DB
}

// NewGormTeamRepository creates a new GormTeamRepository
func NewGormTeamRepository(db *gorm.DB) *GormTeamRepository {
	return &GormTeamRepository{db: db}
}

// FindByID finds a team by its ID
func (r *GormTeamRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Team, error) {
	var team identity.Team
	if err := r.db.WithContext(ctx).First(&team, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &team, nil
}

// FindByName finds a team by name
func (r *GormTeamRepository) FindByName(ctx context.Context, name string) (*identity.Team, error) {
	var team identity.Team
	if err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&team).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &team, nil
}

// FindAll finds all teams matching the filter
func (r *GormTeamRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.Team, error) {
	var teams []identity.Team
	query := r.applyFilter(r.db.WithContext(ctx).Model(&identity.Team{}), filter)

	if err := query.Find(&teams).Error; err != nil {
		return nil, err
	}
	return teams, nil
}

// Save creates or updates a team
func (r *GormTeamRepository) Save(ctx context.Context, team *identity.Team) error {
	return r.db.WithContext(ctx).Save(team).Error
}

// Delete deletes a team
func (r *GormTeamRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&identity.Team{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts teams matching the filter
func (r *GormTeamRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&identity.Team{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByName checks if a team with the given name exists
func (r *GormTeamRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&identity.Team{}).
		Where("name = ?", name).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyFilter applies filter options to the query
func (r *GormTeamRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, TeamSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormTeamRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("lower(name) LIKE ?", searchPattern)
	}
	return query
}

// Ensure GormTeamRepository implements TeamRepository
var _ identity.TeamRepository = (*GormTeamRepository)(nil)
