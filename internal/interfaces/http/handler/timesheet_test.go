package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	trackingapp "github.com/chronodo/backend/internal/application/tracking"
	"github.com/chronodo/backend/internal/domain/shared"
	"github.com/chronodo/backend/internal/domain/tracking"
	"github.com/chronodo/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

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

// asUser injects JWT context the way the auth middleware would
func asUser(userID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.JWTUserIDKey, userID.String())
		c.Next()
	}
}

func newTimesheetTestRouter(repo tracking.TimesheetRepository, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewTimesheetHandler(trackingapp.NewTimesheetService(repo, zap.NewNop()))

	router := gin.New()
	router.Use(asUser(userID))
	router.GET("/timesheets", h.ListOwn)
	router.POST("/timesheets/submit", h.Submit)
	router.POST("/timesheets/:id/validate", h.Validate)
	router.POST("/timesheets/:id/reject", h.Reject)
	return router
}

func TestSubmitTimesheetEndpoint(t *testing.T) {
	userID := uuid.New()
	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	t.Run("submits a new week", func(t *testing.T) {
		repo := new(MockTimesheetRepository)
		repo.On("FindByUserAndWeek", mock.Anything, userID, monday).Return(nil, shared.ErrNotFound)
		repo.On("Save", mock.Anything, mock.Anything).Return(nil)
		router := newTimesheetTestRouter(repo, userID)

		w := postJSON(router, "/timesheets/submit", gin.H{"weekStart": "2026-03-02"})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"submitted"`)
		assert.Contains(t, w.Body.String(), `"weekStart":"2026-03-02"`)
	})

	t.Run("rejects a malformed date", func(t *testing.T) {
		repo := new(MockTimesheetRepository)
		router := newTimesheetTestRouter(repo, userID)

		w := postJSON(router, "/timesheets/submit", gin.H{"weekStart": "March 2nd"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestReviewTimesheetEndpoints(t *testing.T) {
	ownerID := uuid.New()
	reviewerID := uuid.New()
	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	submitted := func(t *testing.T) *tracking.Timesheet {
		t.Helper()
		sheet, err := tracking.NewTimesheet(ownerID, monday)
		require.NoError(t, err)
		require.NoError(t, sheet.Submit())
		return sheet
	}

	t.Run("validate succeeds for a reviewer", func(t *testing.T) {
		sheet := submitted(t)
		repo := new(MockTimesheetRepository)
		repo.On("FindByID", mock.Anything, sheet.ID).Return(sheet, nil)
		repo.On("Save", mock.Anything, sheet).Return(nil)
		router := newTimesheetTestRouter(repo, reviewerID)

		w := postJSON(router, "/timesheets/"+sheet.ID.String()+"/validate", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"validated"`)
	})

	t.Run("self-review yields 403", func(t *testing.T) {
		sheet := submitted(t)
		repo := new(MockTimesheetRepository)
		repo.On("FindByID", mock.Anything, sheet.ID).Return(sheet, nil)
		router := newTimesheetTestRouter(repo, ownerID)

		w := postJSON(router, "/timesheets/"+sheet.ID.String()+"/validate", nil)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("reject without a comment yields 400", func(t *testing.T) {
		sheet := submitted(t)
		repo := new(MockTimesheetRepository)
		router := newTimesheetTestRouter(repo, reviewerID)

		w := postJSON(router, "/timesheets/"+sheet.ID.String()+"/reject", gin.H{})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("reject with a comment succeeds", func(t *testing.T) {
		sheet := submitted(t)
		repo := new(MockTimesheetRepository)
		repo.On("FindByID", mock.Anything, sheet.ID).Return(sheet, nil)
		repo.On("Save", mock.Anything, sheet).Return(nil)
		router := newTimesheetTestRouter(repo, reviewerID)

		w := postJSON(router, "/timesheets/"+sheet.ID.String()+"/reject", gin.H{"comment": "Friday is missing"})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"rejected"`)
		assert.Contains(t, w.Body.String(), "Friday is missing")
	})
}
