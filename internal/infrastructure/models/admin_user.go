package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AdminUser struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_admin_users_email,where:deleted_at IS NULL"`
	Name         string    `gorm:"type:varchar(120);not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	Role         string    `gorm:"type:varchar(20);not null"`
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (AdminUser) TableName() string { return "admin_users" }

// All lists every model migrated at startup.
func All() []interface{} {
	return []interface{}{
		&AdminUser{},
		&BlogPost{},
		&Job{},
		&JobApplication{},
		&Venture{},
		&TeamMember{},
		&Message{},
		&MediaAsset{},
	}
}
