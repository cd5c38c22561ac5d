package tracking

import (
	"context"
	"errors"

	"github.com/chronodo/backend/internal/domain/shared"
	"github.com/chronodo/backend/internal/domain/tracking"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TimesheetService handles the weekly submission and review workflow
type TimesheetService struct {
	timesheetRepo tracking.TimesheetRepository
	logger        *zap.Logger
}

// NewTimesheetService creates a new timesheet service
func NewTimesheetService(timesheetRepo tracking.TimesheetRepository, logger *zap.Logger) *TimesheetService {
	return &TimesheetService{
		timesheetRepo: timesheetRepo,
		logger:        logger,
	}
}

// ListOwn returns all timesheets owned by the user
func (s *TimesheetService) ListOwn(ctx context.Context, userID uuid.UUID) ([]tracking.Timesheet, error) {
	sheets, err := s.timesheetRepo.FindByUser(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to list timesheets", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, shared.NewDomainError("FETCH_FAILED", "Failed to list timesheets")
	}
	return sheets, nil
}

// ListByStatus returns timesheets in the given status (manager review queue)
func (s *TimesheetService) ListByStatus(ctx context.Context, status tracking.TimesheetStatus, filter shared.Filter) ([]tracking.Timesheet, error) {
	sheets, err := s.timesheetRepo.FindByStatus(ctx, status, filter)
	if err != nil {
		s.logger.Error("Failed to list timesheets by status", zap.String("status", string(status)), zap.Error(err))
		return nil, shared.NewDomainError("FETCH_FAILED", "Failed to list timesheets")
	}
	return sheets, nil
}

// Submit creates or re-submits the user's timesheet for a week. A rejected
// sheet can be submitted again; a validated one cannot.
func (s *TimesheetService) Submit(ctx context.Context, input SubmitTimesheetInput) (*tracking.Timesheet, error) {
	weekStart := tracking.WeekStartKey(input.WeekStart)
	sheet, err := s.timesheetRepo.FindByUserAndWeek(ctx, input.UserID, weekStart)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			s.logger.Error("Failed to load timesheet", zap.Error(err))
			return nil, shared.NewDomainError("FETCH_FAILED", "Failed to load timesheet")
		}
		sheet, err = tracking.NewTimesheet(input.UserID, weekStart)
		if err != nil {
			return nil, err
		}
	}

	if err := sheet.Submit(); err != nil {
		return nil, err
	}

	if err := s.timesheetRepo.Save(ctx, sheet); err != nil {
		s.logger.Error("Failed to save timesheet", zap.Error(err))
		return nil, shared.NewDomainError("UPDATE_FAILED", "Failed to submit timesheet")
	}

	s.logger.Info("Timesheet submitted",
		zap.String("user_id", input.UserID.String()),
		zap.Time("week_start", weekStart))
	return sheet, nil
}

// Validate approves a submitted timesheet (manager operation)
func (s *TimesheetService) Validate(ctx context.Context, input ReviewTimesheetInput) (*tracking.Timesheet, error) {
	return s.review(ctx, input, func(sheet *tracking.Timesheet) error {
		return sheet.Validate()
	})
}

// Reject sends a submitted timesheet back with a comment (manager operation)
func (s *TimesheetService) Reject(ctx context.Context, input ReviewTimesheetInput) (*tracking.Timesheet, error) {
	if input.Comment == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "A rejection comment is required")
	}
	return s.review(ctx, input, func(sheet *tracking.Timesheet) error {
		return sheet.Reject(input.Comment)
	})
}

func (s *TimesheetService) review(ctx context.Context, input ReviewTimesheetInput, apply func(*tracking.Timesheet) error) (*tracking.Timesheet, error) {
	sheet, err := s.timesheetRepo.FindByID(ctx, input.TimesheetID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Timesheet not found")
		}
		s.logger.Error("Failed to load timesheet", zap.Error(err))
		return nil, shared.NewDomainError("FETCH_FAILED", "Failed to load timesheet")
	}

	if sheet.UserID == input.ReviewerID {
		return nil, shared.NewDomainError("FORBIDDEN", "Cannot review your own timesheet")
	}

	if err := apply(sheet); err != nil {
		return nil, err
	}

	if err := s.timesheetRepo.Save(ctx, sheet); err != nil {
		s.logger.Error("Failed to save timesheet review", zap.Error(err))
		return nil, shared.NewDomainError("UPDATE_FAILED", "Failed to update timesheet")
	}

	s.logger.Info("Timesheet reviewed",
		zap.String("timesheet_id", sheet.ID.String()),
		zap.String("reviewer_id", input.ReviewerID.String()),
		zap.String("status", string(sheet.Status)))
	return sheet, nil
}
