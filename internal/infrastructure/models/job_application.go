package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type JobApplication struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Version        int            `gorm:"not null;default:1"`
	JobID          uuid.UUID      `gorm:"type:uuid;not null;index"`
	JobTitle       string         `gorm:"type:varchar(200);not null"`
	JobSlug        string         `gorm:"type:varchar(200);not null"`
	FullName       string         `gorm:"type:varchar(120);not null"`
	Email          string         `gorm:"type:varchar(255);not null;index"`
	Phone          string         `gorm:"type:varchar(40);not null"`
	LinkedInURL    string         `gorm:"column:linkedin_url;type:text"`
	PortfolioURL   string         `gorm:"type:text"`
	CoverLetter    string         `gorm:"type:text;not null"`
	Experience     string         `gorm:"type:text"`
	ExpectedSalary string         `gorm:"type:varchar(120)"`
	AvailableFrom  string         `gorm:"type:varchar(60)"`
	Attachments    datatypes.JSON `gorm:"type:jsonb"`
	Status         string         `gorm:"type:varchar(20);not null;index"`
	AdminNotes     *string        `gorm:"type:text"`
	AppliedAt      time.Time      `gorm:"not null;index"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (JobApplication) TableName() string { return "job_applications" }
