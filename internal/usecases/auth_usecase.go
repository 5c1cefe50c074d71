package usecases

import (
	"context"
	"errors"
	"strings"
	"time"

	"company-site.backend/internal/domain/entities"
	domainerrors "company-site.backend/internal/domain/errors"
	"company-site.backend/internal/domain/repositories"
	"company-site.backend/pkg/crypto"
	"company-site.backend/pkg/jwt"
	"company-site.backend/pkg/logger"
	"company-site.backend/pkg/redis"
	"company-site.backend/pkg/validation"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LoginInput is the admin sign in form.
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	// Session asks for a server side session id next to the tokens.
	Session bool `json:"session"`
}

// CreateAdminInput describes a new back-office account.
type CreateAdminInput struct {
	Email    string             `json:"email" validate:"notblank,email"`
	Name     string             `json:"name" validate:"notblank,max=120"`
	Password string             `json:"password" validate:"min=8"`
	Role     entities.AdminRole `json:"role"`
}

// AuthResponse is returned by a successful login.
type AuthResponse struct {
	AccessToken  string              `json:"accessToken"`
	RefreshToken string              `json:"refreshToken"`
	ExpiresAt    time.Time           `json:"expiresAt"`
	SessionID    string              `json:"sessionId,omitempty"`
	Admin        *entities.AdminUser `json:"admin"`
}

var newSessionID = crypto.GenerateSessionID

// AuthUsecase handles back-office authentication
type AuthUsecase struct {
	adminRepo     repositories.AdminUserRepository
	jwtService    *jwt.JWTService
	sessionStore  *redis.SessionStore
	sessionExpiry time.Duration
	now           func() time.Time
}

// NewAuthUsecase creates a new auth usecase. sessionStore may be nil, in which
// case logins only return tokens.
func NewAuthUsecase(
	adminRepo repositories.AdminUserRepository,
	jwtService *jwt.JWTService,
	sessionStore *redis.SessionStore,
	sessionExpiry time.Duration,
) *AuthUsecase {
	return &AuthUsecase{
		adminRepo:     adminRepo,
		jwtService:    jwtService,
		sessionStore:  sessionStore,
		sessionExpiry: sessionExpiry,
		now:           time.Now,
	}
}

// Login authenticates an admin and returns tokens
func (u *AuthUsecase) Login(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	admin, err := u.adminRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}
		return nil, err
	}
	if !crypto.CheckPassword(input.Password, admin.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	pair, err := u.jwtService.GenerateTokenPair(admin.ID, admin.Email, string(admin.Role))
	if err != nil {
		return nil, err
	}

	now := u.now().UTC()
	if err := u.adminRepo.TouchLastLogin(ctx, admin.ID, now); err != nil {
		logger.Warn(ctx, "Last login not recorded", zap.String("admin_id", admin.ID.String()), zap.Error(err))
	}

	resp := &AuthResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    pair.ExpiresAt,
		Admin:        admin,
	}
	if input.Session && u.sessionStore != nil {
		sessionID, err := newSessionID()
		if err != nil {
			return nil, err
		}
		err = u.sessionStore.CreateSession(ctx, sessionID, &redis.SessionData{
			AdminID:      admin.ID.String(),
			Email:        admin.Email,
			Role:         string(admin.Role),
			AccessToken:  pair.AccessToken,
			RefreshToken: pair.RefreshToken,
			CreatedAt:    now,
		}, u.sessionExpiry)
		if err != nil {
			return nil, err
		}
		resp.SessionID = sessionID
	}
	return resp, nil
}

// RefreshToken issues a new pair for a valid refresh token of an existing admin.
func (u *AuthUsecase) RefreshToken(ctx context.Context, refreshToken string) (*jwt.TokenPair, error) {
	claims, err := u.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrExpiredToken) {
			return nil, domainerrors.ErrTokenExpired
		}
		return nil, domainerrors.ErrUnauthorized
	}

	admin, err := u.adminRepo.GetByID(ctx, claims.AdminID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrUnauthorized
		}
		return nil, err
	}
	return u.jwtService.GenerateTokenPair(admin.ID, admin.Email, string(admin.Role))
}

// Logout forgets a server side session; without one there is nothing to do.
func (u *AuthUsecase) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" || u.sessionStore == nil {
		return nil
	}
	return u.sessionStore.DeleteSession(ctx, sessionID)
}

// GetAdminByID gets an admin by ID
func (u *AuthUsecase) GetAdminByID(ctx context.Context, id uuid.UUID) (*entities.AdminUser, error) {
	return u.adminRepo.GetByID(ctx, id)
}

// CreateAdmin hashes the password and stores a new account.
func (u *AuthUsecase) CreateAdmin(ctx context.Context, input *CreateAdminInput) (*entities.AdminUser, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Name = strings.TrimSpace(input.Name)
	if input.Role == "" {
		input.Role = entities.AdminRoleEditor
	}
	errs := validation.Struct(input)
	if !input.Role.Valid() {
		if errs == nil {
			errs = validation.Errors{}
		}
		errs["role"] = "Role must be one of: admin, editor"
	}
	if len(errs) > 0 {
		return nil, domainerrors.Validation(errs)
	}

	hash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}
	admin := &entities.AdminUser{
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: hash,
		Role:         input.Role,
	}
	if err := u.adminRepo.Create(ctx, admin); err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return nil, domainerrors.Conflict("an admin with this email already exists")
		}
		return nil, err
	}
	return admin, nil
}
