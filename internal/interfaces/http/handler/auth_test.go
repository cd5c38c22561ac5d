package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	identityapp "github.com/chronodo/backend/internal/application/identity"
	"github.com/chronodo/backend/internal/domain/identity"
	"github.com/chronodo/backend/internal/domain/shared"
	"github.com/chronodo/backend/internal/infrastructure/auth"
	"github.com/chronodo/backend/internal/infrastructure/config"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
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

func (m *MockUserRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.User, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByTeam(ctx context.Context, teamID uuid.UUID) ([]identity.User, error) {
	args := m.Called(ctx, teamID)
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) CountByTeam(ctx context.Context, teamID uuid.UUID) (int64, error) {
	args := m.Called(ctx, teamID)
	return args.Get(0).(int64), args.Error(1)
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

func newAuthTestRouter(t *testing.T, userRepo identity.UserRepository) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-that-is-long-enough",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "chronodo-test",
	})
	service := identityapp.NewAuthService(userRepo, jwtService, auth.NewInMemoryTokenRevocations(), zap.NewNop())
	h := NewAuthHandler(service)

	router := gin.New()
	router.POST("/auth/login", h.Login)
	router.POST("/auth/refresh", h.RefreshToken)
	return router
}

func postJSON(router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestLoginEndpoint(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)
	user, err := identity.NewUser("ada@example.com", string(hash), "Ada", "Lovelace", identity.RoleEmployee)
	require.NoError(t, err)

	t.Run("valid credentials return tokens and the user", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("FindByEmail", mock.Anything, "ada@example.com").Return(user, nil)
		router := newAuthTestRouter(t, userRepo)

		w := postJSON(router, "/auth/login", gin.H{
			"email":    "ada@example.com",
			"password": "correct-horse",
		})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "accessToken")
		assert.Contains(t, w.Body.String(), "ada@example.com")
		assert.NotContains(t, w.Body.String(), "passwordHash")
	})

	t.Run("wrong password yields 401", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("FindByEmail", mock.Anything, "ada@example.com").Return(user, nil)
		router := newAuthTestRouter(t, userRepo)

		w := postJSON(router, "/auth/login", gin.H{
			"email":    "ada@example.com",
			"password": "wrong",
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_CREDENTIALS")
	})

	t.Run("malformed email is rejected before the service runs", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		router := newAuthTestRouter(t, userRepo)

		w := postJSON(router, "/auth/login", gin.H{
			"email":    "not-an-email",
			"password": "whatever",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		userRepo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
	})

	t.Run("garbage refresh token yields 401", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		router := newAuthTestRouter(t, userRepo)

		w := postJSON(router, "/auth/refresh", gin.H{"refreshToken": "garbage"})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
