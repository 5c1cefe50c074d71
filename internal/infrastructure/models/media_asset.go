package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MediaAsset struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Version     int       `gorm:"not null;default:1"`
	Filename    string    `gorm:"type:varchar(255);not null"`
	URL         string    `gorm:"type:text;not null"`
	Type        string    `gorm:"type:varchar(20);not null;index"`
	Size        int64     `gorm:"not null;default:0"`
	Folder      string    `gorm:"type:varchar(120);index"`
	ContentType string    `gorm:"type:varchar(120)"`
	StorageKey  string    `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (MediaAsset) TableName() string { return "media_assets" }
