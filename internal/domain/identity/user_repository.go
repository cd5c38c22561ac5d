package identity

import (
	"context"

	"github.com/chronodo/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// UserRepository defines persistence operations for users
type UserRepository interface {
	shared.Repository[User]
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByTeam(ctx context.Context, teamID uuid.UUID) ([]User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	CountByTeam(ctx context.Context, teamID uuid.UUID) (int64, error)
}
