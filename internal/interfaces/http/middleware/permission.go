package middleware

import (
	"context"
	"net/http"

	"github.com/chronodo/backend/internal/infrastructure/cache"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RoleResolver loads the user's current role from the source of truth.
// The permission middleware calls it on a cache miss.
type RoleResolver func(ctx context.Context, userID string) (string, error)

// RoleConfig holds configuration for role middleware
type RoleConfig struct {
	// Cache avoids a user lookup on every request. Optional.
	Cache cache.RoleCache
	// Resolver is consulted when the cache has no entry. Optional; when
	// absent the role from the token claims is trusted as-is.
	Resolver RoleResolver
	// Logger for middleware logging
	Logger *zap.Logger
}

// RequireRole creates middleware that only lets the listed roles through.
// The effective role is resolved through the cache and resolver when
// configured, so role changes apply before the access token expires.
func RequireRole(cfg RoleConfig, roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Authentication required",
				},
			})
			return
		}

		role := resolveRole(c, cfg, claims.UserID, claims.Role)
		if _, ok := allowed[role]; !ok {
			if cfg.Logger != nil {
				cfg.Logger.Warn("Role check failed",
					zap.String("user_id", claims.UserID),
					zap.String("role", role),
					zap.Strings("required", roles),
					zap.String("path", c.Request.URL.Path))
			}
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "FORBIDDEN",
					"message": "Access denied: insufficient role",
				},
			})
			return
		}

		c.Next()
	}
}

// resolveRole returns the user's effective role. It prefers the cache,
// falls back to the resolver, and finally to the role baked into the
// token claims. Lookup failures degrade to the claims role rather than
// denying the request.
func resolveRole(c *gin.Context, cfg RoleConfig, userID, claimsRole string) string {
	ctx := c.Request.Context()

	if cfg.Cache != nil {
		if role, found, err := cfg.Cache.Get(ctx, userID); err == nil && found {
			return role
		}
	}

	if cfg.Resolver != nil {
		role, err := cfg.Resolver(ctx, userID)
		if err != nil {
			if cfg.Logger != nil {
				cfg.Logger.Warn("Failed to resolve role, falling back to token claims",
					zap.String("user_id", userID),
					zap.Error(err))
			}
			return claimsRole
		}
		if cfg.Cache != nil {
			if err := cfg.Cache.Set(ctx, userID, role); err != nil && cfg.Logger != nil {
				cfg.Logger.Warn("Failed to cache role", zap.String("user_id", userID), zap.Error(err))
			}
		}
		return role
	}

	return claimsRole
}
