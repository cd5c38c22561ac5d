package auth

import (
	"testing"
	"time"

	"github.com/chronodo/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-for-unit-tests-only",
		RefreshSecret:          "test-refresh-secret-for-unit-tests",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 168 * time.Hour,
		Issuer:                 "chronodo-test",
	})
}

func testInput() GenerateTokenInput {
	return GenerateTokenInput{
		UserID: uuid.New(),
		Email:  "jean@example.com",
		Role:   "employee",
	}
}

func TestGenerateTokenPair(t *testing.T) {
	svc := newTestService()
	input := testInput()

	pair, err := svc.GenerateTokenPair(input)
	require.NoError(t, err)

	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.True(t, pair.AccessTokenExpiresAt.Before(pair.RefreshTokenExpiresAt))
}

func TestValidateAccessToken(t *testing.T) {
	svc := newTestService()
	input := testInput()

	pair, err := svc.GenerateTokenPair(input)
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)

	assert.Equal(t, input.UserID.String(), claims.UserID)
	assert.Equal(t, input.Email, claims.Email)
	assert.Equal(t, input.Role, claims.Role)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)

	userID, err := claims.GetUserUUID()
	require.NoError(t, err)
	assert.Equal(t, input.UserID, userID)
}

func TestValidateAccessToken_RejectsRefreshToken(t *testing.T) {
	svc := newTestService()

	pair, err := svc.GenerateTokenPair(testInput())
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(pair.RefreshToken)
	assert.Error(t, err)
}

func TestValidateAccessToken_RejectsGarbage(t *testing.T) {
	svc := newTestService()

	_, err := svc.ValidateAccessToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateAccessToken_RejectsExpired(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-for-unit-tests-only",
		AccessTokenExpiration:  -time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "chronodo-test",
	})

	pair, err := svc.GenerateTokenPair(testInput())
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateAccessToken_RejectsWrongSecret(t *testing.T) {
	svc := newTestService()
	other := NewJWTService(config.JWTConfig{
		Secret:                 "completely-different-secret-value",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "chronodo-test",
	})

	pair, err := svc.GenerateTokenPair(testInput())
	require.NoError(t, err)

	_, err = other.ValidateAccessToken(pair.AccessToken)
	assert.Error(t, err)
}

func TestValidateRefreshToken(t *testing.T) {
	svc := newTestService()
	input := testInput()

	pair, err := svc.GenerateTokenPair(input)
	require.NoError(t, err)

	claims, err := svc.ValidateRefreshToken(pair.RefreshToken)
	require.NoError(t, err)

	assert.Equal(t, input.UserID.String(), claims.UserID)
	assert.Equal(t, TokenTypeRefresh, claims.TokenType)
	// Refresh tokens carry no email or role
	assert.Empty(t, claims.Email)
	assert.Empty(t, claims.Role)
}

func TestRefreshTokenPair(t *testing.T) {
	svc := newTestService()
	input := testInput()

	pair, err := svc.GenerateTokenPair(input)
	require.NoError(t, err)

	newPair, err := svc.RefreshTokenPair(pair.RefreshToken, "jean@example.com", "manager")
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(newPair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, input.UserID.String(), claims.UserID)
	assert.Equal(t, "manager", claims.Role)
}

func TestRefreshTokenPair_RejectsAccessToken(t *testing.T) {
	svc := newTestService()

	pair, err := svc.GenerateTokenPair(testInput())
	require.NoError(t, err)

	_, err = svc.RefreshTokenPair(pair.AccessToken, "jean@example.com", "employee")
	assert.Error(t, err)
}

func TestClaims_GetRemainingTTL(t *testing.T) {
	svc := newTestService()

	pair, err := svc.GenerateTokenPair(testInput())
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)

	ttl := claims.GetRemainingTTL()
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, 15*time.Minute)
}
