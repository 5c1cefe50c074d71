package repositories

import (
	"context"
	"time"

	"company-site.backend/internal/domain/entities"
	"github.com/google/uuid"
)

// AdminUserRepository defines back-office account operations
type AdminUserRepository interface {
	Create(ctx context.Context, user *entities.AdminUser) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.AdminUser, error)
	GetByEmail(ctx context.Context, email string) (*entities.AdminUser, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}
