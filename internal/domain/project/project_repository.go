package project

import (
	"context"

	"github.com/chronodo/backend/internal/domain/shared"
)

// ProjectRepository defines persistence operations for projects
type ProjectRepository interface {
	shared.Repository[Project]
	FindByCode(ctx context.Context, code string) (*Project, error)
	// ListCodes returns every project code currently in use. Used by the
	// sequential code allocator; a full scan is acceptable at the current
	// table size.
	ListCodes(ctx context.Context) ([]string, error)
	// Create inserts a new project and returns shared.ErrAlreadyExists when
	// the code collides with a concurrently inserted one.
	Create(ctx context.Context, project *Project) error
}
