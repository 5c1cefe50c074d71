package repositories

import (
	"context"
	"strings"
	"time"

	"company-site.backend/internal/domain/entities"
	domainerrors "company-site.backend/internal/domain/errors"
	domainrepos "company-site.backend/internal/domain/repositories"
	"company-site.backend/internal/infrastructure/models"
	"company-site.backend/pkg/utils"
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
)

// AdminUserRepository implements back-office account storage
type AdminUserRepository struct {
	db *gorm.DB
}

var _ domainrepos.AdminUserRepository = (*AdminUserRepository)(nil)

// NewAdminUserRepository creates a new admin user repository
func NewAdminUserRepository(db *gorm.DB) *AdminUserRepository {
	return &AdminUserRepository{db: db}
}

// Create creates a new admin user; emails are stored lowercased.
func (r *AdminUserRepository) Create(ctx context.Context, user *entities.AdminUser) error {
	if user.ID == uuid.Nil {
		user.ID = utils.GenerateUUIDv7()
	}
	now := time.Now().UTC()
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	user.CreatedAt = now
	user.UpdatedAt = now

	m := &models.AdminUser{
		ID:           user.ID,
		Email:        user.Email,
		Name:         user.Name,
		PasswordHash: user.PasswordHash,
		Role:         string(user.Role),
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return translateError(err)
	}
	return nil
}

// GetByID gets an admin user by ID
func (r *AdminUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.AdminUser, error) {
	var m models.AdminUser
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translateError(err)
	}
	return r.toEntity(&m), nil
}

// GetByEmail gets an admin user by email, case-insensitively
func (r *AdminUserRepository) GetByEmail(ctx context.Context, email string) (*entities.AdminUser, error) {
	var m models.AdminUser
	email = strings.ToLower(strings.TrimSpace(email))
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		return nil, translateError(err)
	}
	return r.toEntity(&m), nil
}

// UpdatePassword replaces the stored bcrypt hash
func (r *AdminUserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return r.updateColumns(ctx, id, map[string]interface{}{
		"password_hash": passwordHash,
		"updated_at":    time.Now().UTC(),
	})
}

// TouchLastLogin records a successful sign-in
func (r *AdminUserRepository) TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.updateColumns(ctx, id, map[string]interface{}{
		"last_login_at": at,
	})
}

func (r *AdminUserRepository) updateColumns(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.AdminUser{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *AdminUserRepository) toEntity(m *models.AdminUser) *entities.AdminUser {
	return &entities.AdminUser{
		ID:           m.ID,
		Email:        m.Email,
		Name:         m.Name,
		PasswordHash: m.PasswordHash,
		Role:         entities.AdminRole(m.Role),
		LastLoginAt:  null.TimeFromPtr(m.LastLoginAt),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
