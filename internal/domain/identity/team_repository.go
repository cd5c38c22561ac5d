package identity

import (
	"context"

	"github.com/chronodo/backend/internal/domain/shared"
)

// TeamRepository defines persistence operations for teams
type TeamRepository interface {
	shared.Repository[Team]
	FindByName(ctx context.Context, name string) (*Team, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
}
