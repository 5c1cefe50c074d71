package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type Job struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Version          int            `gorm:"not null;default:1"`
	Title            string         `gorm:"type:varchar(200);not null"`
	Slug             string         `gorm:"type:varchar(200);not null;uniqueIndex:idx_jobs_slug,where:deleted_at IS NULL"`
	Description      string         `gorm:"type:text;not null"`
	ShortDescription string         `gorm:"type:text"`
	Department       string         `gorm:"type:varchar(120);not null;index"`
	Location         string         `gorm:"type:varchar(120);not null"`
	Type             string         `gorm:"type:varchar(20);not null"`
	Salary           string         `gorm:"type:varchar(120)"`
	ExperienceLevel  string         `gorm:"type:varchar(60);not null"`
	Technologies     pq.StringArray `gorm:"type:text[];default:'{}'"`
	Responsibilities pq.StringArray `gorm:"type:text[];default:'{}'"`
	Requirements     pq.StringArray `gorm:"type:text[];default:'{}'"`
	Benefits         pq.StringArray `gorm:"type:text[];default:'{}'"`
	Status           string         `gorm:"type:varchar(20);not null;index"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}

func (Job) TableName() string { return "jobs" }
