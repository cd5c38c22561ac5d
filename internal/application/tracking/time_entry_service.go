package tracking

import (
	"context"
	"errors"

	"github.com/chronodo/backend/internal/domain/project"
	"github.com/chronodo/backend/internal/domain/shared"
	"github.com/chronodo/backend/internal/domain/tracking"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TimeEntryService handles time entry operations. Entries are immutable
// once logged; corrections are delete-and-relog.
type TimeEntryService struct {
	entryRepo   tracking.TimeEntryRepository
	projectRepo project.ProjectRepository
	logger      *zap.Logger
}

// NewTimeEntryService creates a new time entry service
func NewTimeEntryService(
	entryRepo tracking.TimeEntryRepository,
	projectRepo project.ProjectRepository,
	logger *zap.Logger,
) *TimeEntryService {
	return &TimeEntryService{
		entryRepo:   entryRepo,
		projectRepo: projectRepo,
		logger:      logger,
	}
}

// List returns the user's own entries, optionally restricted to a date range
func (s *TimeEntryService) List(ctx context.Context, input ListTimeEntriesInput) ([]tracking.TimeEntry, int64, error) {
	if input.From != nil && input.To != nil {
		entries, err := s.entryRepo.FindByUserBetween(ctx, input.UserID, *input.From, *input.To)
		if err != nil {
			s.logger.Error("Failed to list time entries", zap.Error(err))
			return nil, 0, shared.NewDomainError("FETCH_FAILED", "Failed to list time entries")
		}
		return entries, int64(len(entries)), nil
	}

	filter := shared.Filter{
		Page:     input.Page,
		PageSize: input.PageSize,
		OrderBy:  input.OrderBy,
		OrderDir: input.OrderDir,
		Filters:  map[string]interface{}{"userId": input.UserID},
	}

	entries, err := s.entryRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list time entries", zap.Error(err))
		return nil, 0, shared.NewDomainError("FETCH_FAILED", "Failed to list time entries")
	}

	total, err := s.entryRepo.Count(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to count time entries", zap.Error(err))
		return nil, 0, shared.NewDomainError("FETCH_FAILED", "Failed to count time entries")
	}

	return entries, total, nil
}

// Create logs a new time block. Entries can only reference active projects.
func (s *TimeEntryService) Create(ctx context.Context, input CreateTimeEntryInput) (*tracking.TimeEntry, error) {
	if input.ProjectID != nil {
		p, err := s.projectRepo.FindByID(ctx, *input.ProjectID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("NOT_FOUND", "Project not found")
			}
			s.logger.Error("Failed to load project for time entry", zap.Error(err))
			return nil, shared.NewDomainError("CREATE_FAILED", "Failed to log time entry")
		}
		if !p.IsActive() {
			return nil, shared.NewDomainError("INVALID_STATE", "Cannot log time against an archived project")
		}
	}

	entry, err := tracking.NewTimeEntry(
		input.UserID,
		input.ProjectID,
		input.CategoryID,
		input.StartTime,
		input.DurationMinutes,
		input.Description,
	)
	if err != nil {
		return nil, err
	}

	if err := s.entryRepo.Save(ctx, entry); err != nil {
		s.logger.Error("Failed to save time entry", zap.Error(err))
		return nil, shared.NewDomainError("CREATE_FAILED", "Failed to log time entry")
	}

	return entry, nil
}

// Delete removes one of the user's own entries. Deleting another user's
// entry is forbidden.
func (s *TimeEntryService) Delete(ctx context.Context, userID, entryID uuid.UUID) error {
	entry, err := s.entryRepo.FindByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("NOT_FOUND", "Time entry not found")
		}
		s.logger.Error("Failed to load time entry", zap.Error(err))
		return shared.NewDomainError("FETCH_FAILED", "Failed to load time entry")
	}

	if entry.UserID != userID {
		return shared.NewDomainError("FORBIDDEN", "Cannot delete another user's time entry")
	}

	if err := s.entryRepo.Delete(ctx, entryID); err != nil {
		s.logger.Error("Failed to delete time entry", zap.Error(err))
		return shared.NewDomainError("DELETE_FAILED", "Failed to delete time entry")
	}
	return nil
}
