package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Venture struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Version       int            `gorm:"not null;default:1"`
	Name          string         `gorm:"type:varchar(120);not null"`
	Slug          string         `gorm:"type:varchar(200);not null;uniqueIndex:idx_ventures_slug,where:deleted_at IS NULL"`
	Description   string         `gorm:"type:text;not null"`
	Tagline       string         `gorm:"type:varchar(200);not null"`
	Category      string         `gorm:"type:varchar(80);index"`
	Status        string         `gorm:"type:varchar(20);not null;index"`
	FoundedYear   *int           `gorm:"type:integer"`
	TeamSize      string         `gorm:"type:varchar(40)"`
	Growth        string         `gorm:"type:varchar(60)"`
	Website       string         `gorm:"type:text"`
	Metrics       datatypes.JSON `gorm:"type:jsonb"`
	Technologies  pq.StringArray `gorm:"type:text[];default:'{}'"`
	Features      pq.StringArray `gorm:"type:text[];default:'{}'"`
	Achievements  pq.StringArray `gorm:"type:text[];default:'{}'"`
	Testimonials  datatypes.JSON `gorm:"type:jsonb"`
	Logo          string         `gorm:"type:text"`
	FeaturedImage string         `gorm:"type:text"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

func (Venture) TableName() string { return "ventures" }
