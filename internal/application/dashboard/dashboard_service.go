package dashboard

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/chronodo/backend/internal/domain/identity"
	"github.com/chronodo/backend/internal/domain/shared"
	"github.com/chronodo/backend/internal/domain/tracking"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DashboardService computes derived aggregates over time entries. It holds
// no state of its own; every call reads and computes.
type DashboardService struct {
	userRepo      identity.UserRepository
	entryRepo     tracking.TimeEntryRepository
	timesheetRepo tracking.TimesheetRepository
	logger        *zap.Logger
	now           func() time.Time
}

// Option configures the dashboard service
type Option func(*DashboardService)

// WithClock overrides the time source, used in tests
func WithClock(now func() time.Time) Option {
	return func(s *DashboardService) {
		s.now = now
	}
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	userRepo identity.UserRepository,
	entryRepo tracking.TimeEntryRepository,
	timesheetRepo tracking.TimesheetRepository,
	logger *zap.Logger,
	opts ...Option,
) *DashboardService {
	s := &DashboardService{
		userRepo:      userRepo,
		entryRepo:     entryRepo,
		timesheetRepo: timesheetRepo,
		logger:        logger,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetEmployeeDashboard produces the summary, comparison and timesheet
// status block for one user.
func (s *DashboardService) GetEmployeeDashboard(ctx context.Context, userID uuid.UUID) (*EmployeeDashboard, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "User not found")
		}
		s.logger.Error("Failed to load user for dashboard", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, shared.NewDomainError("DATABASE_ERROR", "Failed to load user")
	}

	weeklyTarget := user.WeeklyHoursTarget
	if weeklyTarget <= 0 {
		weeklyTarget = identity.DefaultWeeklyHoursTarget
	}
	// fixed approximation, not calendar-accurate
	monthlyTarget := weeklyTarget * 4

	now := s.now()
	windows := []Window{
		currentWeek(now),
		elapsedMonth(now),
		previousWeek(now),
		previousMonth(now),
	}

	minutes := make([]int, len(windows))
	for i, w := range windows {
		sum, err := s.entryRepo.SumMinutes(ctx, userID, w.Start, w.End)
		if err != nil {
			s.logger.Error("Failed to sum time entries",
				zap.String("user_id", userID.String()),
				zap.Time("window_start", w.Start),
				zap.Error(err))
			return nil, shared.NewDomainError("DATABASE_ERROR", "Failed to load time entries")
		}
		minutes[i] = sum
	}

	hoursThisWeek := hoursFromMinutes(minutes[0])
	hoursThisMonth := hoursFromMinutes(minutes[1])
	hoursPrevWeek := hoursFromMinutes(minutes[2])
	hoursPrevMonth := hoursFromMinutes(minutes[3])

	return &EmployeeDashboard{
		Summary: Summary{
			HoursThisWeek:   hoursThisWeek,
			HoursThisMonth:  hoursThisMonth,
			WeeklyTarget:    weeklyTarget,
			MonthlyTarget:   monthlyTarget,
			WeeklyProgress:  progress(hoursThisWeek, weeklyTarget),
			MonthlyProgress: progress(hoursThisMonth, monthlyTarget),
		},
		Comparison: Comparison{
			WeekOverWeek:       delta(hoursThisWeek, hoursPrevWeek),
			MonthOverMonth:     delta(hoursThisMonth, hoursPrevMonth),
			PreviousWeekHours:  hoursPrevWeek,
			PreviousMonthHours: hoursPrevMonth,
		},
		TimesheetStatus: s.timesheetStatus(ctx, userID, tracking.WeekStartKey(currentWeek(now).Start)),
	}, nil
}

// timesheetStatus loads the per-status counts and the current week's status.
// A read failure here is tolerated: the dashboard is served with zero counts
// rather than failing the whole request.
func (s *DashboardService) timesheetStatus(ctx context.Context, userID uuid.UUID, weekStart time.Time) TimesheetStatus {
	status := TimesheetStatus{Current: tracking.TimesheetStatusNone}

	counts, err := s.timesheetRepo.CountByStatus(ctx, userID)
	if err != nil {
		s.logger.Warn("Failed to count timesheets, serving dashboard without them",
			zap.String("user_id", userID.String()), zap.Error(err))
		return status
	}
	status.Draft = counts[tracking.TimesheetDraft]
	status.Submitted = counts[tracking.TimesheetSubmitted]
	status.Validated = counts[tracking.TimesheetValidated]
	status.Rejected = counts[tracking.TimesheetRejected]

	current, err := s.timesheetRepo.FindByUserAndWeek(ctx, userID, weekStart)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("Failed to load current week timesheet",
				zap.String("user_id", userID.String()), zap.Error(err))
		}
		return status
	}
	status.Current = string(current.Status)
	return status
}

// GetByProject aggregates the user's time entries per project over the period
func (s *DashboardService) GetByProject(ctx context.Context, userID uuid.UUID, period string) (*Breakdown, error) {
	return s.breakdown(ctx, userID, period, func(e tracking.LabeledEntry) (string, string, string) {
		if e.ProjectID == nil {
			return BucketNoProject, LabelNoProject, ""
		}
		return e.ProjectID.String(), e.ProjectName, e.ProjectCode
	})
}

// GetByCategory aggregates the user's time entries per category over the period
func (s *DashboardService) GetByCategory(ctx context.Context, userID uuid.UUID, period string) (*Breakdown, error) {
	return s.breakdown(ctx, userID, period, func(e tracking.LabeledEntry) (string, string, string) {
		if e.CategoryID == nil {
			return BucketNoCategory, LabelNoCategory, ""
		}
		return e.CategoryID.String(), e.CategoryName, ""
	})
}

// breakdown groups entries by the key function and computes hours and
// percentage per bucket. Buckets are sorted by descending time, ties broken
// by bucket ID so the order is deterministic.
func (s *DashboardService) breakdown(
	ctx context.Context,
	userID uuid.UUID,
	period string,
	key func(tracking.LabeledEntry) (id, label, code string),
) (*Breakdown, error) {
	window, err := s.periodWindow(period)
	if err != nil {
		return nil, err
	}

	entries, err := s.entryRepo.FindLabeledBetween(ctx, userID, window.Start, window.End)
	if err != nil {
		s.logger.Error("Failed to load labeled time entries",
			zap.String("user_id", userID.String()), zap.Error(err))
		return nil, shared.NewDomainError("DATABASE_ERROR", "Failed to load time entries")
	}

	type bucketAcc struct {
		label   string
		code    string
		minutes int
	}
	acc := make(map[string]*bucketAcc)
	total := 0
	for _, e := range entries {
		id, label, code := key(e)
		b, ok := acc[id]
		if !ok {
			b = &bucketAcc{label: label, code: code}
			acc[id] = b
		}
		b.minutes += e.DurationMinutes
		total += e.DurationMinutes
	}

	buckets := make([]Bucket, 0, len(acc))
	for id, b := range acc {
		buckets = append(buckets, Bucket{
			ID:         id,
			Label:      b.label,
			Code:       b.code,
			Minutes:    b.minutes,
			Hours:      hoursFromMinutes(b.minutes),
			Percentage: percentage(b.minutes, total),
		})
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Minutes != buckets[j].Minutes {
			return buckets[i].Minutes > buckets[j].Minutes
		}
		return buckets[i].ID < buckets[j].ID
	})

	return &Breakdown{
		Period:      period,
		PeriodStart: window.Start,
		PeriodEnd:   window.End,
		Breakdown:   buckets,
		TotalHours:  hoursFromMinutes(total),
	}, nil
}

// periodWindow resolves a period name to its current window
func (s *DashboardService) periodWindow(period string) (Window, error) {
	now := s.now()
	switch period {
	case PeriodWeek:
		return currentWeek(now), nil
	case PeriodMonth:
		return currentMonth(now), nil
	default:
		return Window{}, shared.NewDomainError("VALIDATION_ERROR", "Period must be week or month")
	}
}

// GetTrend produces one bucket per calendar day over the most recent days,
// ending today. Days without entries are zero-filled.
func (s *DashboardService) GetTrend(ctx context.Context, userID uuid.UUID, days int) (*Trend, error) {
	if days < 1 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Days must be at least 1")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "User not found")
		}
		s.logger.Error("Failed to load user for trend", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, shared.NewDomainError("DATABASE_ERROR", "Failed to load user")
	}
	weeklyTarget := user.WeeklyHoursTarget
	if weeklyTarget <= 0 {
		weeklyTarget = identity.DefaultWeeklyHoursTarget
	}

	window := trendWindow(s.now(), days)
	perDay, err := s.entryRepo.SumMinutesPerDay(ctx, userID, window.Start, window.End)
	if err != nil {
		s.logger.Error("Failed to load daily sums",
			zap.String("user_id", userID.String()), zap.Error(err))
		return nil, shared.NewDomainError("DATABASE_ERROR", "Failed to load time entries")
	}

	minutesByDay := make(map[string]int, len(perDay))
	for _, d := range perDay {
		minutesByDay[d.Day.Format("2006-01-02")] = d.Minutes
	}

	trend := make([]TrendDay, 0, days)
	total := 0.0
	weekdays := 0
	for day := window.Start; day.Before(window.End); day = day.AddDate(0, 0, 1) {
		date := day.Format("2006-01-02")
		// rounded per day before summing, so the total matches what the
		// daily figures display
		hours := hoursFromMinutes(minutesByDay[date])
		trend = append(trend, TrendDay{
			Date:    date,
			Weekday: day.Weekday().String(),
			Hours:   hours,
		})
		total += hours
		if day.Weekday() != time.Saturday && day.Weekday() != time.Sunday {
			weekdays++
		}
	}

	average := 0.0
	if weekdays > 0 {
		average = round1(total / float64(weekdays))
	}

	return &Trend{
		Period:      days,
		DailyTarget: round1(weeklyTarget / 5),
		Trend:       trend,
		Average:     average,
		Total:       round1(total),
	}, nil
}
