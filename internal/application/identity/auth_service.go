package identity

import (
	"context"
	"errors"

	"github.com/chronodo/backend/internal/domain/identity"
	"github.com/chronodo/backend/internal/domain/shared"
	"github.com/chronodo/backend/internal/infrastructure/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles authentication operations
type AuthService struct {
	userRepo    identity.UserRepository
	jwtService  *auth.JWTService
	revocations auth.TokenRevocations
	logger      *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	revocations auth.TokenRevocations,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		jwtService:  jwtService,
		revocations: revocations,
		logger:      logger,
	}
}

// Login authenticates a user by email and password and returns a token pair
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		s.logger.Warn("Login for unknown email", zap.String("email", input.Email))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	if !user.Active {
		s.logger.Warn("Login for deactivated account", zap.String("user_id", user.ID.String()))
		return nil, shared.NewDomainError("FORBIDDEN", "Account has been deactivated")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		s.logger.Warn("Invalid password attempt", zap.String("user_id", user.ID.String()))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID: user.ID,
		Email:  user.Email,
		Role:   string(user.Role),
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	s.logger.Info("User logged in", zap.String("user_id", user.ID.String()))

	return &LoginResult{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
		User:                  toUserInfo(user),
	}, nil
}

// RefreshToken exchanges a valid refresh token for a new token pair. The
// email and role are reloaded so role changes take effect on refresh.
func (s *AuthService) RefreshToken(ctx context.Context, input RefreshTokenInput) (*RefreshTokenResult, error) {
	claims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		return nil, mapTokenError(err)
	}

	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid user ID in token")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		s.logger.Warn("Refresh for unknown user", zap.String("user_id", userID.String()))
		return nil, shared.NewDomainError("UNAUTHORIZED", "User not found")
	}
	if !user.Active {
		return nil, shared.NewDomainError("FORBIDDEN", "Account has been deactivated")
	}

	tokenPair, err := s.jwtService.RefreshTokenPair(input.RefreshToken, user.Email, string(user.Role))
	if err != nil {
		return nil, mapTokenError(err)
	}

	s.logger.Info("Token refreshed", zap.String("user_id", userID.String()))

	return &RefreshTokenResult{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
	}, nil
}

// Logout revokes the current access token for its remaining lifetime
func (s *AuthService) Logout(ctx context.Context, input LogoutInput) error {
	if input.TokenJTI != "" && input.TokenTTL > 0 {
		if err := s.revocations.Revoke(ctx, input.TokenJTI, input.TokenTTL); err != nil {
			s.logger.Error("Failed to revoke token", zap.Error(err))
			return shared.NewDomainError("INTERNAL_ERROR", "Failed to log out")
		}
	}
	s.logger.Info("User logged out", zap.String("user_id", input.UserID.String()))
	return nil
}

// GetCurrentUser returns the authenticated user's profile
func (s *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "User not found")
		}
		s.logger.Error("Failed to load current user", zap.Error(err))
		return nil, shared.NewDomainError("FETCH_FAILED", "Failed to load user")
	}
	info := toUserInfo(user)
	return &info, nil
}

// ChangePassword verifies the old password and stores a new hash
func (s *AuthService) ChangePassword(ctx context.Context, input ChangePasswordInput) error {
	user, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return shared.NewDomainError("NOT_FOUND", "User not found")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.OldPassword)); err != nil {
		return shared.NewDomainError("INVALID_CREDENTIALS", "Current password is incorrect")
	}

	if len(input.NewPassword) < 8 {
		return shared.NewDomainError("VALIDATION_ERROR", "Password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to change password")
	}

	if err := user.ChangePassword(string(hash)); err != nil {
		return err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to save password change", zap.Error(err))
		return shared.NewDomainError("UPDATE_FAILED", "Failed to change password")
	}

	// Existing sessions die with the old password. The cutoff only needs
	// to outlive the longest token still in circulation.
	ttl := s.jwtService.GetRefreshTokenExpiration()
	if err := s.revocations.RevokeUser(ctx, input.UserID.String(), ttl); err != nil {
		s.logger.Error("Failed to revoke sessions after password change",
			zap.String("user_id", input.UserID.String()), zap.Error(err))
	}

	s.logger.Info("Password changed", zap.String("user_id", input.UserID.String()))
	return nil
}

// mapTokenError maps JWT validation errors to domain errors
func mapTokenError(err error) error {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return shared.NewDomainError("TOKEN_EXPIRED", "Token has expired")
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrInvalidTokenType),
		errors.Is(err, auth.ErrInvalidClaims),
		errors.Is(err, auth.ErrMissingUserID):
		return shared.NewDomainError("TOKEN_INVALID", "Invalid token")
	default:
		return shared.NewDomainError("UNAUTHORIZED", "Token validation failed")
	}
}

// toUserInfo maps a user entity to its application-layer view
func toUserInfo(user *identity.User) UserInfo {
	return UserInfo{
		ID:                user.ID,
		Email:             user.Email,
		FirstName:         user.FirstName,
		LastName:          user.LastName,
		Role:              user.Role,
		WeeklyHoursTarget: user.WeeklyHoursTarget,
		TeamID:            user.TeamID,
	}
}
