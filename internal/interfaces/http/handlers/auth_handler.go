package handlers

import (
	"errors"
	"net/http"

	domainerrors "company-site.backend/internal/domain/errors"
	"company-site.backend/internal/interfaces/http/middleware"
	"company-site.backend/internal/interfaces/http/response"
	"company-site.backend/internal/usecases"
	"company-site.backend/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const refreshCookie = "refresh_token"

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authUsecase  *usecases.AuthUsecase
	secureCookie bool
}

// NewAuthHandler creates a new auth handler. secureCookie marks the refresh
// cookie HTTPS only.
func NewAuthHandler(authUsecase *usecases.AuthUsecase, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		authUsecase:  authUsecase,
		secureCookie: secureCookie,
	}
}

// Login handles admin login
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var input usecases.LoginInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("email and password are required"))
		return
	}

	authResponse, err := h.authUsecase.Login(c.Request.Context(), &input)
	if err != nil {
		if errors.Is(err, domainerrors.ErrInvalidCredentials) {
			response.Error(c, domainerrors.NewAppError(http.StatusUnauthorized, domainerrors.CodeUnauthorized, "Invalid email or password", err))
			return
		}
		response.Error(c, err)
		return
	}

	h.setRefreshCookie(c, authResponse.RefreshToken, 3600*24*7)
	response.Success(c, http.StatusOK, authResponse)
}

// RefreshToken handles token refresh
// POST /api/auth/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var refreshToken string

	if c.Request.ContentLength > 0 {
		var input struct {
			RefreshToken string `json:"refreshToken"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			logger.Debug(c.Request.Context(), "Refresh body ignored", zap.Error(err))
		}
		refreshToken = input.RefreshToken
	}
	if refreshToken == "" {
		if cookie, err := c.Cookie(refreshCookie); err == nil {
			refreshToken = cookie
		}
	}
	if refreshToken == "" {
		response.Error(c, domainerrors.BadRequest("Refresh token is required"))
		return
	}

	tokenPair, err := h.authUsecase.RefreshToken(c.Request.Context(), refreshToken)
	if err != nil {
		response.Error(c, domainerrors.NewAppError(http.StatusUnauthorized, domainerrors.CodeUnauthorized, "Invalid or expired refresh token", err))
		return
	}

	h.setRefreshCookie(c, tokenPair.RefreshToken, 3600*24*7)
	response.Success(c, http.StatusOK, tokenPair)
}

// Logout drops the server side session and the refresh cookie.
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authUsecase.Logout(c.Request.Context(), c.GetString(middleware.SessionIDKey)); err != nil {
		logger.Warn(c.Request.Context(), "Session not removed", zap.Error(err))
	}
	h.setRefreshCookie(c, "", -1)
	response.Success(c, http.StatusOK, gin.H{"message": "Logged out"})
}

// GetMe returns current authenticated admin details
// GET /api/auth/me
func (h *AuthHandler) GetMe(c *gin.Context) {
	adminID, ok := middleware.GetAdminID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Unauthorized"))
		return
	}

	admin, err := h.authUsecase.GetAdminByID(c.Request.Context(), adminID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			response.Error(c, domainerrors.Unauthorized("Account no longer exists"))
			return
		}
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"admin": admin})
}

func (h *AuthHandler) setRefreshCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(refreshCookie, value, maxAge, "/api/auth", "", h.secureCookie, true)
}
