package project

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/chronodo/backend/internal/domain/project"
	"github.com/chronodo/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockProjectRepository is a mock implementation of project.ProjectRepository
type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*project.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*project.Project), args.Error(1)
}

func (m *MockProjectRepository) FindByCode(ctx context.Context, code string) (*project.Project, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*project.Project), args.Error(1)
}

func (m *MockProjectRepository) FindAll(ctx context.Context, filter shared.Filter) ([]project.Project, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]project.Project), args.Error(1)
}

func (m *MockProjectRepository) ListCodes(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockProjectRepository) Create(ctx context.Context, p *project.Project) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProjectRepository) Save(ctx context.Context, p *project.Project) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProjectRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func newTestService(repo *MockProjectRepository) (*ProjectService, *[]time.Duration) {
	var delays []time.Duration
	service := NewProjectService(repo, zap.NewNop(), WithSleep(func(d time.Duration) {
		delays = append(delays, d)
	}))
	return service, &delays
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("allocates the next code from the scan", func(t *testing.T) {
		repo := new(MockProjectRepository)
		service, _ := newTestService(repo)

		repo.On("ListCodes", ctx).Return([]string{"PRJ-999", "PRJ-1000", "PRJ-100"}, nil).Once()
		repo.On("Create", ctx, mock.Anything).Return(nil).Once()

		p, err := service.Create(ctx, CreateProjectInput{Name: "New Project"})
		require.NoError(t, err)
		assert.Equal(t, "PRJ-1001", p.Code)
		repo.AssertExpectations(t)
	})

	t.Run("starts at PRJ-001 when no codes exist", func(t *testing.T) {
		repo := new(MockProjectRepository)
		service, _ := newTestService(repo)

		repo.On("ListCodes", ctx).Return([]string{}, nil).Once()
		repo.On("Create", ctx, mock.Anything).Return(nil).Once()

		p, err := service.Create(ctx, CreateProjectInput{Name: "First"})
		require.NoError(t, err)
		assert.Equal(t, "PRJ-001", p.Code)
	})

	t.Run("rescans and retries on a code collision", func(t *testing.T) {
		repo := new(MockProjectRepository)
		service, delays := newTestService(repo)

		// another creator inserted PRJ-001 between our scan and insert
		repo.On("ListCodes", ctx).Return([]string{}, nil).Once()
		repo.On("Create", ctx, mock.MatchedBy(func(p *project.Project) bool {
			return p.Code == "PRJ-001"
		})).Return(shared.ErrAlreadyExists).Once()

		repo.On("ListCodes", ctx).Return([]string{"PRJ-001"}, nil).Once()
		repo.On("Create", ctx, mock.MatchedBy(func(p *project.Project) bool {
			return p.Code == "PRJ-002"
		})).Return(nil).Once()

		p, err := service.Create(ctx, CreateProjectInput{Name: "Raced"})
		require.NoError(t, err)
		assert.Equal(t, "PRJ-002", p.Code)

		require.Len(t, *delays, 1)
		assert.Less(t, (*delays)[0], 100*time.Millisecond)
		repo.AssertExpectations(t)
	})

	t.Run("gives up with a conflict after exhausting retries", func(t *testing.T) {
		repo := new(MockProjectRepository)
		service, delays := newTestService(repo)

		repo.On("ListCodes", ctx).Return([]string{}, nil).Times(4)
		repo.On("Create", ctx, mock.Anything).Return(shared.ErrAlreadyExists).Times(4)

		_, err := service.Create(ctx, CreateProjectInput{Name: "Contended"})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "DUPLICATE_CODE", domainErr.Code)
		// initial attempt plus 3 retries, with a delay before each retry
		assert.Len(t, *delays, 3)
		repo.AssertExpectations(t)
	})

	t.Run("non-conflict insert failures are not retried", func(t *testing.T) {
		repo := new(MockProjectRepository)
		service, delays := newTestService(repo)

		repo.On("ListCodes", ctx).Return([]string{}, nil).Once()
		repo.On("Create", ctx, mock.Anything).Return(errors.New("connection reset")).Once()

		_, err := service.Create(ctx, CreateProjectInput{Name: "Doomed"})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "CREATE_FAILED", domainErr.Code)
		assert.Empty(t, *delays)
		repo.AssertExpectations(t)
	})

	t.Run("rejects invalid input before inserting", func(t *testing.T) {
		repo := new(MockProjectRepository)
		service, _ := newTestService(repo)

		repo.On("ListCodes", ctx).Return([]string{}, nil).Once()

		_, err := service.Create(ctx, CreateProjectInput{Name: "   "})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_INPUT", domainErr.Code)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("applies whitelisted fields and keeps the code", func(t *testing.T) {
		repo := new(MockProjectRepository)
		service, _ := newTestService(repo)

		existing, err := project.NewProject("PRJ-042", "Old Name", "old", nil)
		require.NoError(t, err)

		repo.On("FindByID", ctx, existing.ID).Return(existing, nil)
		repo.On("Save", ctx, existing).Return(nil)

		newName := "New Name"
		updated, err := service.Update(ctx, existing.ID, UpdateProjectInput{Name: &newName})
		require.NoError(t, err)
		assert.Equal(t, "New Name", updated.Name)
		assert.Equal(t, "PRJ-042", updated.Code)
		assert.Equal(t, "old", updated.Description)
	})

	t.Run("missing project fails with not found", func(t *testing.T) {
		repo := new(MockProjectRepository)
		service, _ := newTestService(repo)

		id := uuid.New()
		repo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		_, err := service.Update(ctx, id, UpdateProjectInput{})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NOT_FOUND", domainErr.Code)
	})
}

func TestArchiveRestore(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProjectRepository)
	service, _ := newTestService(repo)

	p, err := project.NewProject("PRJ-001", "Lifecycle", "", nil)
	require.NoError(t, err)

	repo.On("FindByID", ctx, p.ID).Return(p, nil)
	repo.On("Save", ctx, p).Return(nil)

	archived, err := service.Archive(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, project.StatusArchived, archived.Status)

	restored, err := service.Restore(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, project.StatusActive, restored.Status)

	// archiving twice is a state error
	_, err = service.Restore(ctx, p.ID)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
}

func TestList(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProjectRepository)
	service, _ := newTestService(repo)

	p, err := project.NewProject("PRJ-001", "Only One", "", nil)
	require.NoError(t, err)

	repo.On("FindAll", ctx, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Filters["status"] == "active" && f.Search == "only"
	})).Return([]project.Project{*p}, nil)
	repo.On("Count", ctx, mock.Anything).Return(int64(1), nil)

	projects, total, err := service.List(ctx, ListProjectsInput{
		Page: 1, PageSize: 20, Search: "only", Status: "active",
	})
	require.NoError(t, err)
	assert.Len(t, projects, 1)
	assert.Equal(t, int64(1), total)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProjectRepository)
	service, _ := newTestService(repo)

	id := uuid.New()
	repo.On("Delete", ctx, id).Return(shared.ErrNotFound)

	err := service.Delete(ctx, id)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}
