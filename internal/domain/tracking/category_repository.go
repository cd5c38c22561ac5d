package tracking

import (
	"context"

	"github.com/chronodo/backend/internal/domain/shared"
)

// CategoryRepository defines persistence operations for categories
type CategoryRepository interface {
	shared.Repository[Category]
	FindByName(ctx context.Context, name string) (*Category, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
}
