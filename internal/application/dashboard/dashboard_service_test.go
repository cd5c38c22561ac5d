package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/chronodo/backend/internal/domain/identity"
	"github.com/chronodo/backend/internal/domain/shared"
	"github.com/chronodo/backend/internal/domain/tracking"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.User, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByTeam(ctx context.Context, teamID uuid.UUID) ([]identity.User, error) {
	args := m.Called(ctx, teamID)
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) CountByTeam(ctx context.Context, teamID uuid.UUID) (int64, error) {
	args := m.Called(ctx, teamID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

// MockTimeEntryRepository is a mock implementation of tracking.TimeEntryRepository
type MockTimeEntryRepository struct {
	mock.Mock
}

func (m *MockTimeEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*tracking.TimeEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tracking.TimeEntry), args.Error(1)
}

func (m *MockTimeEntryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]tracking.TimeEntry, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]tracking.TimeEntry), args.Error(1)
}

func (m *MockTimeEntryRepository) FindByUserBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]tracking.TimeEntry, error) {
	args := m.Called(ctx, userID, from, to)
	return args.Get(0).([]tracking.TimeEntry), args.Error(1)
}

func (m *MockTimeEntryRepository) FindLabeledBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]tracking.LabeledEntry, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]tracking.LabeledEntry), args.Error(1)
}

func (m *MockTimeEntryRepository) SumMinutes(ctx context.Context, userID uuid.UUID, from, to time.Time) (int, error) {
	args := m.Called(ctx, userID, from, to)
	return args.Int(0), args.Error(1)
}

func (m *MockTimeEntryRepository) SumMinutesPerDay(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]tracking.DailyMinutes, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]tracking.DailyMinutes), args.Error(1)
}

func (m *MockTimeEntryRepository) Save(ctx context.Context, entry *tracking.TimeEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockTimeEntryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTimeEntryRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockTimesheetRepository is a mock implementation of tracking.TimesheetRepository
type MockTimesheetRepository struct {
	mock.Mock
}

func (m *MockTimesheetRepository) FindByID(ctx context.Context, id uuid.UUID) (*tracking.Timesheet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tracking.Timesheet), args.Error(1)
}

func (m *MockTimesheetRepository) FindAll(ctx context.Context, filter shared.Filter) ([]tracking.Timesheet, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]tracking.Timesheet), args.Error(1)
}

func (m *MockTimesheetRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]tracking.Timesheet, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]tracking.Timesheet), args.Error(1)
}

func (m *MockTimesheetRepository) FindByUserAndWeek(ctx context.Context, userID uuid.UUID, weekStart time.Time) (*tracking.Timesheet, error) {
	args := m.Called(ctx, userID, weekStart)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tracking.Timesheet), args.Error(1)
}

func (m *MockTimesheetRepository) CountByStatus(ctx context.Context, userID uuid.UUID) (map[tracking.TimesheetStatus]int64, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[tracking.TimesheetStatus]int64), args.Error(1)
}

func (m *MockTimesheetRepository) FindByStatus(ctx context.Context, status tracking.TimesheetStatus, filter shared.Filter) ([]tracking.Timesheet, error) {
	args := m.Called(ctx, status, filter)
	return args.Get(0).([]tracking.Timesheet), args.Error(1)
}

func (m *MockTimesheetRepository) Save(ctx context.Context, sheet *tracking.Timesheet) error {
	args := m.Called(ctx, sheet)
	return args.Error(0)
}

func (m *MockTimesheetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTimesheetRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// fixedNow is a Wednesday afternoon, so the current week and month windows
// are unambiguous
var fixedNow = time.Date(2026, 3, 4, 15, 30, 0, 0, time.UTC)

func newTestService(userRepo *MockUserRepository, entryRepo *MockTimeEntryRepository, sheetRepo *MockTimesheetRepository) *DashboardService {
	return NewDashboardService(userRepo, entryRepo, sheetRepo, zap.NewNop(), WithClock(func() time.Time {
		return fixedNow
	}))
}

func testUser(userID uuid.UUID, weeklyTarget float64) *identity.User {
	return &identity.User{
		BaseEntity:        shared.BaseEntity{ID: userID},
		Email:             "jean@example.com",
		FirstName:         "Jean",
		LastName:          "Dupont",
		Role:              identity.RoleEmployee,
		WeeklyHoursTarget: weeklyTarget,
		Active:            true,
	}
}

func TestGetEmployeeDashboard(t *testing.T) {
	userID := uuid.New()

	weekStart := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	weekEnd := weekStart.AddDate(0, 0, 7)
	monthStart := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	elapsedEnd := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	prevWeekStart := weekStart.AddDate(0, 0, -7)
	prevMonthStart := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	t.Run("computes summary, comparison and timesheet status", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		entryRepo := new(MockTimeEntryRepository)
		sheetRepo := new(MockTimesheetRepository)
		service := newTestService(userRepo, entryRepo, sheetRepo)

		userRepo.On("FindByID", mock.Anything, userID).Return(testUser(userID, 35), nil)
		entryRepo.On("SumMinutes", mock.Anything, userID, weekStart, weekEnd).Return(1200, nil)
		entryRepo.On("SumMinutes", mock.Anything, userID, monthStart, elapsedEnd).Return(1500, nil)
		entryRepo.On("SumMinutes", mock.Anything, userID, prevWeekStart, weekStart).Return(600, nil)
		entryRepo.On("SumMinutes", mock.Anything, userID, prevMonthStart, monthStart).Return(3000, nil)
		sheetRepo.On("CountByStatus", mock.Anything, userID).Return(map[tracking.TimesheetStatus]int64{
			tracking.TimesheetDraft:     1,
			tracking.TimesheetValidated: 2,
		}, nil)
		currentSheet := &tracking.Timesheet{Status: tracking.TimesheetSubmitted}
		sheetRepo.On("FindByUserAndWeek", mock.Anything, userID, weekStart).Return(currentSheet, nil)

		result, err := service.GetEmployeeDashboard(context.Background(), userID)
		require.NoError(t, err)

		assert.Equal(t, 20.0, result.Summary.HoursThisWeek)
		assert.Equal(t, 25.0, result.Summary.HoursThisMonth)
		assert.Equal(t, 35.0, result.Summary.WeeklyTarget)
		assert.Equal(t, 140.0, result.Summary.MonthlyTarget)
		assert.Equal(t, 57.1, result.Summary.WeeklyProgress)
		assert.Equal(t, 17.9, result.Summary.MonthlyProgress)

		assert.Equal(t, 100.0, result.Comparison.WeekOverWeek)
		assert.Equal(t, -50.0, result.Comparison.MonthOverMonth)
		assert.Equal(t, 10.0, result.Comparison.PreviousWeekHours)
		assert.Equal(t, 50.0, result.Comparison.PreviousMonthHours)

		assert.Equal(t, "submitted", result.TimesheetStatus.Current)
		assert.Equal(t, int64(1), result.TimesheetStatus.Draft)
		assert.Equal(t, int64(2), result.TimesheetStatus.Validated)
		assert.Equal(t, int64(0), result.TimesheetStatus.Submitted)

		entryRepo.AssertExpectations(t)
		sheetRepo.AssertExpectations(t)
	})

	t.Run("empty previous periods give zero deltas", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		entryRepo := new(MockTimeEntryRepository)
		sheetRepo := new(MockTimesheetRepository)
		service := newTestService(userRepo, entryRepo, sheetRepo)

		userRepo.On("FindByID", mock.Anything, userID).Return(testUser(userID, 35), nil)
		entryRepo.On("SumMinutes", mock.Anything, userID, weekStart, weekEnd).Return(600, nil)
		entryRepo.On("SumMinutes", mock.Anything, userID, monthStart, elapsedEnd).Return(600, nil)
		entryRepo.On("SumMinutes", mock.Anything, userID, prevWeekStart, weekStart).Return(0, nil)
		entryRepo.On("SumMinutes", mock.Anything, userID, prevMonthStart, monthStart).Return(0, nil)
		sheetRepo.On("CountByStatus", mock.Anything, userID).Return(map[tracking.TimesheetStatus]int64{}, nil)
		sheetRepo.On("FindByUserAndWeek", mock.Anything, userID, weekStart).Return(nil, shared.ErrNotFound)

		result, err := service.GetEmployeeDashboard(context.Background(), userID)
		require.NoError(t, err)

		assert.Equal(t, 0.0, result.Comparison.WeekOverWeek)
		assert.Equal(t, 0.0, result.Comparison.MonthOverMonth)
		assert.Equal(t, tracking.TimesheetStatusNone, result.TimesheetStatus.Current)
	})

	t.Run("non-UTC server clock still finds the stored week", func(t *testing.T) {
		// Submitted sheets are keyed by UTC midnight of the Monday. A
		// clock in another zone must not produce a different lookup key.
		userRepo := new(MockUserRepository)
		entryRepo := new(MockTimeEntryRepository)
		sheetRepo := new(MockTimesheetRepository)
		paris := time.FixedZone("CET", 3600)
		service := NewDashboardService(userRepo, entryRepo, sheetRepo, zap.NewNop(), WithClock(func() time.Time {
			return time.Date(2026, 3, 4, 15, 30, 0, 0, paris)
		}))

		userRepo.On("FindByID", mock.Anything, userID).Return(testUser(userID, 35), nil)
		entryRepo.On("SumMinutes", mock.Anything, userID, mock.Anything, mock.Anything).Return(0, nil)
		sheetRepo.On("CountByStatus", mock.Anything, userID).Return(map[tracking.TimesheetStatus]int64{}, nil)
		sheetRepo.On("FindByUserAndWeek", mock.Anything, userID, weekStart).
			Return(&tracking.Timesheet{Status: tracking.TimesheetSubmitted}, nil)

		result, err := service.GetEmployeeDashboard(context.Background(), userID)
		require.NoError(t, err)

		assert.Equal(t, "submitted", result.TimesheetStatus.Current)
		sheetRepo.AssertExpectations(t)
	})

	t.Run("timesheet read failure is tolerated", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		entryRepo := new(MockTimeEntryRepository)
		sheetRepo := new(MockTimesheetRepository)
		service := newTestService(userRepo, entryRepo, sheetRepo)

		userRepo.On("FindByID", mock.Anything, userID).Return(testUser(userID, 35), nil)
		entryRepo.On("SumMinutes", mock.Anything, userID, mock.Anything, mock.Anything).Return(0, nil)
		sheetRepo.On("CountByStatus", mock.Anything, userID).Return(nil, errors.New("connection reset"))

		result, err := service.GetEmployeeDashboard(context.Background(), userID)
		require.NoError(t, err)

		assert.Equal(t, tracking.TimesheetStatusNone, result.TimesheetStatus.Current)
		assert.Equal(t, int64(0), result.TimesheetStatus.Draft)
		sheetRepo.AssertNotCalled(t, "FindByUserAndWeek", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("time entry read failure aborts", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		entryRepo := new(MockTimeEntryRepository)
		sheetRepo := new(MockTimesheetRepository)
		service := newTestService(userRepo, entryRepo, sheetRepo)

		userRepo.On("FindByID", mock.Anything, userID).Return(testUser(userID, 35), nil)
		entryRepo.On("SumMinutes", mock.Anything, userID, mock.Anything, mock.Anything).Return(0, errors.New("connection reset"))

		_, err := service.GetEmployeeDashboard(context.Background(), userID)
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "DATABASE_ERROR", domainErr.Code)
	})

	t.Run("unknown user fails with not found", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := newTestService(userRepo, new(MockTimeEntryRepository), new(MockTimesheetRepository))

		userRepo.On("FindByID", mock.Anything, userID).Return(nil, shared.ErrNotFound)

		_, err := service.GetEmployeeDashboard(context.Background(), userID)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NOT_FOUND", domainErr.Code)
	})
}

func TestGetByProject(t *testing.T) {
	userID := uuid.New()
	weekStart := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	weekEnd := weekStart.AddDate(0, 0, 7)

	t.Run("buckets entries and computes percentages", func(t *testing.T) {
		entryRepo := new(MockTimeEntryRepository)
		service := newTestService(new(MockUserRepository), entryRepo, new(MockTimesheetRepository))

		projectID := uuid.New()
		entryRepo.On("FindLabeledBetween", mock.Anything, userID, weekStart, weekEnd).Return([]tracking.LabeledEntry{
			{ProjectID: &projectID, ProjectName: "Mobile App", ProjectCode: "PRJ-001", DurationMinutes: 400},
			{ProjectID: &projectID, ProjectName: "Mobile App", ProjectCode: "PRJ-001", DurationMinutes: 200},
			{DurationMinutes: 200},
		}, nil)

		result, err := service.GetByProject(context.Background(), userID, PeriodWeek)
		require.NoError(t, err)

		assert.Equal(t, PeriodWeek, result.Period)
		assert.Equal(t, weekStart, result.PeriodStart)
		assert.Equal(t, weekEnd, result.PeriodEnd)
		require.Len(t, result.Breakdown, 2)

		top := result.Breakdown[0]
		assert.Equal(t, projectID.String(), top.ID)
		assert.Equal(t, "Mobile App", top.Label)
		assert.Equal(t, "PRJ-001", top.Code)
		assert.Equal(t, 10.0, top.Hours)
		assert.Equal(t, 75.0, top.Percentage)

		rest := result.Breakdown[1]
		assert.Equal(t, BucketNoProject, rest.ID)
		assert.Equal(t, LabelNoProject, rest.Label)
		assert.Equal(t, 25.0, rest.Percentage)

		assert.Equal(t, 13.3, result.TotalHours)
	})

	t.Run("no entries gives empty breakdown and zero total", func(t *testing.T) {
		entryRepo := new(MockTimeEntryRepository)
		service := newTestService(new(MockUserRepository), entryRepo, new(MockTimesheetRepository))

		entryRepo.On("FindLabeledBetween", mock.Anything, userID, weekStart, weekEnd).Return([]tracking.LabeledEntry{}, nil)

		result, err := service.GetByProject(context.Background(), userID, PeriodWeek)
		require.NoError(t, err)
		assert.Empty(t, result.Breakdown)
		assert.Equal(t, 0.0, result.TotalHours)
	})

	t.Run("ties are ordered by bucket ID", func(t *testing.T) {
		entryRepo := new(MockTimeEntryRepository)
		service := newTestService(new(MockUserRepository), entryRepo, new(MockTimesheetRepository))

		idA := uuid.MustParse("11111111-1111-1111-1111-111111111111")
		idB := uuid.MustParse("22222222-2222-2222-2222-222222222222")
		entryRepo.On("FindLabeledBetween", mock.Anything, userID, weekStart, weekEnd).Return([]tracking.LabeledEntry{
			{ProjectID: &idB, ProjectName: "B", DurationMinutes: 60},
			{ProjectID: &idA, ProjectName: "A", DurationMinutes: 60},
		}, nil)

		result, err := service.GetByProject(context.Background(), userID, PeriodWeek)
		require.NoError(t, err)
		require.Len(t, result.Breakdown, 2)
		assert.Equal(t, idA.String(), result.Breakdown[0].ID)
		assert.Equal(t, idB.String(), result.Breakdown[1].ID)
	})

	t.Run("invalid period fails with validation error", func(t *testing.T) {
		service := newTestService(new(MockUserRepository), new(MockTimeEntryRepository), new(MockTimesheetRepository))

		_, err := service.GetByProject(context.Background(), userID, "quarter")

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "VALIDATION_ERROR", domainErr.Code)
	})
}

func TestGetByCategory(t *testing.T) {
	userID := uuid.New()
	monthStart := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	entryRepo := new(MockTimeEntryRepository)
	service := newTestService(new(MockUserRepository), entryRepo, new(MockTimesheetRepository))

	categoryID := uuid.New()
	entryRepo.On("FindLabeledBetween", mock.Anything, userID, monthStart, monthEnd).Return([]tracking.LabeledEntry{
		{CategoryID: &categoryID, CategoryName: "Meetings", DurationMinutes: 90},
		{DurationMinutes: 30},
	}, nil)

	result, err := service.GetByCategory(context.Background(), userID, PeriodMonth)
	require.NoError(t, err)
	require.Len(t, result.Breakdown, 2)

	assert.Equal(t, categoryID.String(), result.Breakdown[0].ID)
	assert.Equal(t, "Meetings", result.Breakdown[0].Label)
	assert.Empty(t, result.Breakdown[0].Code)
	assert.Equal(t, BucketNoCategory, result.Breakdown[1].ID)
	assert.Equal(t, LabelNoCategory, result.Breakdown[1].Label)
}

func TestGetTrend(t *testing.T) {
	userID := uuid.New()
	windowStart := time.Date(2026, 2, 26, 0, 0, 0, 0, time.UTC)
	windowEnd := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)

	t.Run("zero-fills days without entries", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		entryRepo := new(MockTimeEntryRepository)
		service := newTestService(userRepo, entryRepo, new(MockTimesheetRepository))

		userRepo.On("FindByID", mock.Anything, userID).Return(testUser(userID, 35), nil)
		entryRepo.On("SumMinutesPerDay", mock.Anything, userID, windowStart, windowEnd).Return([]tracking.DailyMinutes{}, nil)

		result, err := service.GetTrend(context.Background(), userID, 7)
		require.NoError(t, err)

		assert.Equal(t, 7, result.Period)
		assert.Equal(t, 7.0, result.DailyTarget)
		require.Len(t, result.Trend, 7)
		for _, day := range result.Trend {
			assert.Equal(t, 0.0, day.Hours)
		}
		assert.Equal(t, "Thursday", result.Trend[0].Weekday)
		assert.Equal(t, "2026-02-26", result.Trend[0].Date)
		assert.Equal(t, "Wednesday", result.Trend[6].Weekday)
		assert.Equal(t, "2026-03-04", result.Trend[6].Date)
		assert.Equal(t, 0.0, result.Average)
		assert.Equal(t, 0.0, result.Total)
	})

	t.Run("rounds per day before summing", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		entryRepo := new(MockTimeEntryRepository)
		service := newTestService(userRepo, entryRepo, new(MockTimesheetRepository))

		userRepo.On("FindByID", mock.Anything, userID).Return(testUser(userID, 35), nil)
		// 44 minutes rounds to 0.7h per day; summing the raw 88 minutes
		// first would give 1.5h instead of 1.4h
		entryRepo.On("SumMinutesPerDay", mock.Anything, userID, windowStart, windowEnd).Return([]tracking.DailyMinutes{
			{Day: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), Minutes: 44},
			{Day: time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC), Minutes: 44},
		}, nil)

		result, err := service.GetTrend(context.Background(), userID, 7)
		require.NoError(t, err)
		assert.Equal(t, 1.4, result.Total)
		// 5 non-weekend days in the window
		assert.Equal(t, 0.3, result.Average)
	})

	t.Run("rejects non-positive day counts", func(t *testing.T) {
		service := newTestService(new(MockUserRepository), new(MockTimeEntryRepository), new(MockTimesheetRepository))

		_, err := service.GetTrend(context.Background(), userID, 0)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "VALIDATION_ERROR", domainErr.Code)
	})
}
