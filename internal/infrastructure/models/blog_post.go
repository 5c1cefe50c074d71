package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type BlogPost struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Version       int            `gorm:"not null;default:1"`
	Title         string         `gorm:"type:varchar(200);not null"`
	Slug          string         `gorm:"type:varchar(200);not null;uniqueIndex:idx_blog_posts_slug,where:deleted_at IS NULL"`
	Content       string         `gorm:"type:text;not null"`
	Excerpt       string         `gorm:"type:text"`
	AuthorName    string         `gorm:"type:varchar(120);not null"`
	AuthorRole    string         `gorm:"type:varchar(120)"`
	AuthorImage   string         `gorm:"type:text"`
	Category      string         `gorm:"type:varchar(80);index"`
	Tags          pq.StringArray `gorm:"type:text[];default:'{}'"`
	Status        string         `gorm:"type:varchar(20);not null;index"`
	FeaturedImage string         `gorm:"type:text"`
	PublishedAt   *time.Time     `gorm:"index"`
	ReadTime      string         `gorm:"type:varchar(40)"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

func (BlogPost) TableName() string { return "blog_posts" }
