package middleware

import (
	"context"
	"errors"
	"strings"

	domainerrors "company-site.backend/internal/domain/errors"
	"company-site.backend/internal/interfaces/http/response"
	"company-site.backend/pkg/jwt"
	"company-site.backend/pkg/logger"
	"company-site.backend/pkg/redis"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// SessionHeader carries a server side session id instead of a token
	SessionHeader = "X-Session-Id"
	// AdminIDKey is the context key for admin ID
	AdminIDKey = "adminId"
	// AdminEmailKey is the context key for admin email
	AdminEmailKey = "adminEmail"
	// AdminRoleKey is the context key for admin role
	AdminRoleKey = "adminRole"
	// SessionIDKey is the context key for the session id used, if any
	SessionIDKey = "sessionId"
)

// SessionReader resolves a session id to its stored tokens.
type SessionReader interface {
	GetSession(ctx context.Context, sessionID string) (*redis.SessionData, error)
}

// AuthMiddleware accepts a Bearer access token, or a session id when a
// session store is configured. The session is checked first.
func AuthMiddleware(jwtService *jwt.JWTService, sessions SessionReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		tokenString := ""

		if sessionID := c.GetHeader(SessionHeader); sessionID != "" && sessions != nil {
			session, err := sessions.GetSession(ctx, sessionID)
			if err != nil {
				if !errors.Is(err, redis.ErrSessionNotFound) {
					logger.Warn(ctx, "Session lookup failed", zap.Error(err))
				}
				response.Error(c, domainerrors.Unauthorized("Session is invalid or has expired"))
				return
			}
			tokenString = session.AccessToken
			c.Set(SessionIDKey, sessionID)
		}

		if tokenString == "" {
			authHeader := c.GetHeader(AuthorizationHeader)
			if authHeader == "" {
				response.Error(c, domainerrors.Unauthorized("Authorization header is required"))
				return
			}
			if !strings.HasPrefix(authHeader, BearerPrefix) {
				response.Error(c, domainerrors.Unauthorized("Invalid authorization format. Use: Bearer <token>"))
				return
			}
			tokenString = strings.TrimPrefix(authHeader, BearerPrefix)
		}

		claims, err := jwtService.ValidateAccessToken(tokenString)
		if err != nil {
			logger.Debug(ctx, "Token rejected", zap.String("path", c.Request.URL.Path), zap.Error(err))
			if errors.Is(err, jwt.ErrExpiredToken) {
				response.Error(c, domainerrors.Unauthorized("Token has expired"))
				return
			}
			response.Error(c, domainerrors.Unauthorized("Invalid token"))
			return
		}

		c.Set(AdminIDKey, claims.AdminID)
		c.Set(AdminEmailKey, claims.Email)
		c.Set(AdminRoleKey, claims.Role)
		c.Request = c.Request.WithContext(context.WithValue(ctx, logger.AdminIDKey, claims.AdminID.String()))

		c.Next()
	}
}

// GetAdminID gets the admin ID from context
func GetAdminID(c *gin.Context) (uuid.UUID, bool) {
	adminID, exists := c.Get(AdminIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := adminID.(uuid.UUID)
	return id, ok
}

// GetAdminRole gets the admin role from context
func GetAdminRole(c *gin.Context) (string, bool) {
	role, exists := c.Get(AdminRoleKey)
	if !exists {
		return "", false
	}
	s, ok := role.(string)
	return s, ok
}

// RequireRole creates a middleware that requires one of roles
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		adminRole, exists := GetAdminRole(c)
		if !exists {
			response.Error(c, domainerrors.Unauthorized("Admin role not found"))
			return
		}

		for _, role := range roles {
			if adminRole == role {
				c.Next()
				return
			}
		}

		response.Error(c, domainerrors.Forbidden("Insufficient permissions"))
	}
}

// RequireStaff lets admins and editors through.
func RequireStaff() gin.HandlerFunc {
	return RequireRole("admin", "editor")
}

// RequireAdmin creates a middleware that requires admin role
func RequireAdmin() gin.HandlerFunc {
	return RequireRole("admin")
}
