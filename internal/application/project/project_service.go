package project

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/chronodo/backend/internal/domain/project"
	"github.com/chronodo/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxCreateRetries bounds the optimistic retry loop of code allocation
const maxCreateRetries = 3

// maxRetryJitter bounds the randomized delay between retries
const maxRetryJitter = 100 * time.Millisecond

// ProjectService handles project operations, including sequential code
// allocation under concurrent creation.
type ProjectService struct {
	repo   project.ProjectRepository
	logger *zap.Logger
	sleep  func(time.Duration)
}

// Option configures the project service
type Option func(*ProjectService)

// WithSleep overrides the retry delay function, used in tests
func WithSleep(sleep func(time.Duration)) Option {
	return func(s *ProjectService) {
		s.sleep = sleep
	}
}

// NewProjectService creates a new project service
func NewProjectService(repo project.ProjectRepository, logger *zap.Logger, opts ...Option) *ProjectService {
	s := &ProjectService{
		repo:   repo,
		logger: logger,
		sleep:  time.Sleep,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns projects matching the filter together with the total count
func (s *ProjectService) List(ctx context.Context, input ListProjectsInput) ([]project.Project, int64, error) {
	filter := shared.Filter{
		Page:     input.Page,
		PageSize: input.PageSize,
		OrderBy:  input.OrderBy,
		OrderDir: input.OrderDir,
		Search:   input.Search,
		Filters:  make(map[string]interface{}),
	}
	if input.Status != "" {
		filter.Filters["status"] = input.Status
	}

	projects, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list projects", zap.Error(err))
		return nil, 0, shared.NewDomainError("FETCH_FAILED", "Failed to list projects")
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to count projects", zap.Error(err))
		return nil, 0, shared.NewDomainError("FETCH_FAILED", "Failed to count projects")
	}

	return projects, total, nil
}

// Get returns one project by ID
func (s *ProjectService) Get(ctx context.Context, id uuid.UUID) (*project.Project, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Project not found")
		}
		s.logger.Error("Failed to load project", zap.String("project_id", id.String()), zap.Error(err))
		return nil, shared.NewDomainError("FETCH_FAILED", "Failed to load project")
	}
	return p, nil
}

// Create allocates the next sequential code and inserts the project. When a
// concurrent creator wins the race for a code, the scan and insert are
// retried with a randomized delay, up to maxCreateRetries times. The scan is
// redone on every attempt, never reused.
func (s *ProjectService) Create(ctx context.Context, input CreateProjectInput) (*project.Project, error) {
	for attempt := 0; ; attempt++ {
		codes, err := s.repo.ListCodes(ctx)
		if err != nil {
			s.logger.Error("Failed to scan project codes", zap.Error(err))
			return nil, shared.NewDomainError("CREATE_FAILED", "Failed to allocate project code")
		}

		code := project.NextCode(codes)
		p, err := project.NewProject(code, input.Name, input.Description, input.BudgetHours)
		if err != nil {
			return nil, err
		}

		err = s.repo.Create(ctx, p)
		if err == nil {
			s.logger.Info("Project created",
				zap.String("project_id", p.ID.String()),
				zap.String("code", p.Code),
				zap.Int("attempts", attempt+1))
			return p, nil
		}

		if !errors.Is(err, shared.ErrAlreadyExists) {
			s.logger.Error("Failed to insert project", zap.String("code", code), zap.Error(err))
			return nil, shared.NewDomainError("CREATE_FAILED", "Failed to create project")
		}

		if attempt >= maxCreateRetries {
			s.logger.Warn("Exhausted code allocation retries", zap.String("code", code))
			return nil, shared.NewDomainError("DUPLICATE_CODE", "Could not allocate a unique project code")
		}

		jitter := time.Duration(rand.Int63n(int64(maxRetryJitter)))
		s.logger.Debug("Project code collision, retrying",
			zap.String("code", code),
			zap.Int("attempt", attempt+1),
			zap.Duration("delay", jitter))
		s.sleep(jitter)
	}
}

// Update applies the whitelisted fields to a project. The code cannot be
// changed through this operation.
func (s *ProjectService) Update(ctx context.Context, id uuid.UUID, input UpdateProjectInput) (*project.Project, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := p.Update(input.Name, input.Description, input.BudgetHours); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, p); err != nil {
		s.logger.Error("Failed to update project", zap.String("project_id", id.String()), zap.Error(err))
		return nil, shared.NewDomainError("UPDATE_FAILED", "Failed to update project")
	}
	return p, nil
}

// Archive flips a project to the archived status
func (s *ProjectService) Archive(ctx context.Context, id uuid.UUID) (*project.Project, error) {
	return s.transition(ctx, id, (*project.Project).Archive)
}

// Restore flips an archived project back to active
func (s *ProjectService) Restore(ctx context.Context, id uuid.UUID) (*project.Project, error) {
	return s.transition(ctx, id, (*project.Project).Restore)
}

func (s *ProjectService) transition(ctx context.Context, id uuid.UUID, apply func(*project.Project) error) (*project.Project, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := apply(p); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, p); err != nil {
		s.logger.Error("Failed to save project status", zap.String("project_id", id.String()), zap.Error(err))
		return nil, shared.NewDomainError("UPDATE_FAILED", "Failed to update project")
	}
	return p, nil
}

// Delete removes a project
func (s *ProjectService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("NOT_FOUND", "Project not found")
		}
		s.logger.Error("Failed to delete project", zap.String("project_id", id.String()), zap.Error(err))
		return shared.NewDomainError("DELETE_FAILED", "Failed to delete project")
	}
	return nil
}
