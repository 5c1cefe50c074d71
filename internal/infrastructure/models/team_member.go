package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type TeamMember struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Version      int            `gorm:"not null;default:1"`
	Name         string         `gorm:"type:varchar(120);not null"`
	Email        string         `gorm:"type:varchar(255);not null"`
	Role         string         `gorm:"type:varchar(120);not null"`
	Department   string         `gorm:"type:varchar(120);index"`
	Location     string         `gorm:"type:varchar(120)"`
	JoinDate     *time.Time     `gorm:"type:date"`
	Bio          string         `gorm:"type:text"`
	Skills       pq.StringArray `gorm:"type:text[];default:'{}'"`
	LinkedInURL  string         `gorm:"column:linkedin_url;type:text"`
	TwitterURL   string         `gorm:"type:text"`
	GithubURL    string         `gorm:"type:text"`
	ProfileImage string         `gorm:"type:text"`
	Status       string         `gorm:"type:varchar(20);not null;index"`
	DisplayOrder int            `gorm:"not null;default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (TeamMember) TableName() string { return "team_members" }
