package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/chronodo/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockUserRepository creates a GormUserRepository with a mocked SQL connection
func newMockUserRepository(t *testing.T) (*GormUserRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormUserRepository(gormDB), mock, mockDB
}

func userRows(id uuid.UUID, email string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "created_at", "updated_at",
		"email", "password_hash", "first_name", "last_name",
		"role", "weekly_hours_target", "team_id", "active",
	}).AddRow(id, now, now, email, "$2a$10$hash", "Ada", "Lovelace", "employee", 35.0, nil, true)
}

func TestGormUserRepository_FindByID(t *testing.T) {
	t.Run("finds existing user", func(t *testing.T) {
		repo, mock, mockDB := newMockUserRepository(t)
		defer mockDB.Close()

		userID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(userID, 1).
			WillReturnRows(userRows(userID, "ada@example.com"))

		user, err := repo.FindByID(context.Background(), userID)

		assert.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, userID, user.ID)
		assert.Equal(t, "ada@example.com", user.Email)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps missing user to not found", func(t *testing.T) {
		repo, mock, mockDB := newMockUserRepository(t)
		defer mockDB.Close()

		userID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(userID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		user, err := repo.FindByID(context.Background(), userID)

		assert.Nil(t, user)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormUserRepository_FindByEmail(t *testing.T) {
	t.Run("lowercases the lookup email", func(t *testing.T) {
		repo, mock, mockDB := newMockUserRepository(t)
		defer mockDB.Close()

		userID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("ada@example.com", 1).
			WillReturnRows(userRows(userID, "ada@example.com"))

		user, err := repo.FindByEmail(context.Background(), "Ada@Example.COM")

		assert.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, userID, user.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormUserRepository_ExistsByEmail(t *testing.T) {
	repo, mock, mockDB := newMockUserRepository(t)
	defer mockDB.Close()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "users" WHERE email = \$1`).
		WithArgs("ada@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repo.ExistsByEmail(context.Background(), "ada@example.com")

	assert.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormUserRepository_FindAll_FilterVocabulary(t *testing.T) {
	t.Run("camelCase filter keys reach the query as column names", func(t *testing.T) {
		repo, mock, mockDB := newMockUserRepository(t)
		defer mockDB.Close()

		teamID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "users" WHERE team_id = \$1 ORDER BY created_at DESC LIMIT \$2`).
			WithArgs(teamID, 20).
			WillReturnRows(userRows(uuid.New(), "ada@example.com"))

		filter := shared.Filter{
			Page:     1,
			PageSize: 20,
			Filters:  map[string]interface{}{"teamId": teamID},
		}
		users, err := repo.FindAll(context.Background(), filter)

		assert.NoError(t, err)
		assert.Len(t, users, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("column-form keys pass through unchanged", func(t *testing.T) {
		repo, mock, mockDB := newMockUserRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "users" WHERE role = \$1 ORDER BY created_at DESC LIMIT \$2`).
			WithArgs("manager", 20).
			WillReturnRows(userRows(uuid.New(), "grace@example.com"))

		filter := shared.Filter{
			Page:     1,
			PageSize: 20,
			Filters:  map[string]interface{}{"role": "manager"},
		}
		users, err := repo.FindAll(context.Background(), filter)

		assert.NoError(t, err)
		assert.Len(t, users, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormUserRepository_Delete(t *testing.T) {
	t.Run("returns not found when nothing was deleted", func(t *testing.T) {
		repo, mock, mockDB := newMockUserRepository(t)
		defer mockDB.Close()

		userID := uuid.New()
		mock.ExpectExec(`DELETE FROM "users" WHERE id = \$1`).
			WithArgs(userID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), userID)

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
