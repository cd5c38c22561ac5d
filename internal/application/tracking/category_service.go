package tracking

import (
	"context"
	"errors"

	"github.com/chronodo/backend/internal/domain/shared"
	"github.com/chronodo/backend/internal/domain/tracking"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CategoryService handles time entry category management
type CategoryService struct {
	categoryRepo tracking.CategoryRepository
	logger       *zap.Logger
}

// NewCategoryService creates a new category service
func NewCategoryService(categoryRepo tracking.CategoryRepository, logger *zap.Logger) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

// List returns categories matching the filter
func (s *CategoryService) List(ctx context.Context, filter shared.Filter) ([]tracking.Category, int64, error) {
	categories, err := s.categoryRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list categories", zap.Error(err))
		return nil, 0, shared.NewDomainError("FETCH_FAILED", "Failed to list categories")
	}

	total, err := s.categoryRepo.Count(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to count categories", zap.Error(err))
		return nil, 0, shared.NewDomainError("FETCH_FAILED", "Failed to count categories")
	}

	return categories, total, nil
}

// Get returns one category by ID
func (s *CategoryService) Get(ctx context.Context, id uuid.UUID) (*tracking.Category, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Category not found")
		}
		s.logger.Error("Failed to load category", zap.String("category_id", id.String()), zap.Error(err))
		return nil, shared.NewDomainError("FETCH_FAILED", "Failed to load category")
	}
	return category, nil
}

// Create registers a new category
func (s *CategoryService) Create(ctx context.Context, input CreateCategoryInput) (*tracking.Category, error) {
	exists, err := s.categoryRepo.ExistsByName(ctx, input.Name)
	if err != nil {
		s.logger.Error("Failed to check category name", zap.Error(err))
		return nil, shared.NewDomainError("CREATE_FAILED", "Failed to create category")
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A category with this name already exists")
	}

	category, err := tracking.NewCategory(input.Name, input.Description, input.Color)
	if err != nil {
		return nil, err
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		s.logger.Error("Failed to save category", zap.Error(err))
		return nil, shared.NewDomainError("CREATE_FAILED", "Failed to create category")
	}

	return category, nil
}

// Update changes a category's fields
func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, input UpdateCategoryInput) (*tracking.Category, error) {
	category, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := category.Update(input.Name, input.Description, input.Color); err != nil {
		return nil, err
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		s.logger.Error("Failed to update category", zap.String("category_id", id.String()), zap.Error(err))
		return nil, shared.NewDomainError("UPDATE_FAILED", "Failed to update category")
	}
	return category, nil
}

// Delete removes a category
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("NOT_FOUND", "Category not found")
		}
		s.logger.Error("Failed to delete category", zap.String("category_id", id.String()), zap.Error(err))
		return shared.NewDomainError("DELETE_FAILED", "Failed to delete category")
	}
	return nil
}
