package repositories

import (
	"context"
	"time"

	"company-site.backend/internal/domain/entities"
	domainrepos "company-site.backend/internal/domain/repositories"
	"company-site.backend/internal/infrastructure/models"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
)

type BlogPostRepository struct {
	*ResourceRepository[*entities.BlogPost, models.BlogPost]
}

var _ domainrepos.BlogPostRepository = (*BlogPostRepository)(nil)

func NewBlogPostRepository(db *gorm.DB) *BlogPostRepository {
	return &BlogPostRepository{newResourceRepository(db, resourceMapping[*entities.BlogPost, models.BlogPost]{
		toEntity:       blogPostToEntity,
		toModel:        blogPostToModel,
		updates:        blogPostUpdates,
		searchColumns:  []string{"title", "excerpt", "author_name"},
		categoryColumn: "category",
		slugColumn:     "slug",
		order:          "created_at DESC",
		publicScope: func(db *gorm.DB) *gorm.DB {
			return db.Where("status = ?", entities.BlogPostPublished)
		},
	})}
}

// ListDueScheduled returns scheduled posts whose publish time has passed, oldest first.
func (r *BlogPostRepository) ListDueScheduled(ctx context.Context, now time.Time, limit int) ([]*entities.BlogPost, error) {
	var ms []models.BlogPost
	query := r.conn(ctx).
		Where("status = ? AND published_at IS NOT NULL AND published_at <= ?", entities.BlogPostScheduled, now).
		Order("published_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}

	items := make([]*entities.BlogPost, 0, len(ms))
	for i := range ms {
		items = append(items, blogPostToEntity(&ms[i]))
	}
	return items, nil
}

func blogPostToEntity(m *models.BlogPost) *entities.BlogPost {
	return &entities.BlogPost{
		Record: entities.Record{
			ID:        m.ID,
			Version:   m.Version,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		Title:   m.Title,
		Slug:    m.Slug,
		Content: m.Content,
		Excerpt: m.Excerpt,
		Author: entities.Author{
			Name:  m.AuthorName,
			Role:  m.AuthorRole,
			Image: m.AuthorImage,
		},
		Category:      m.Category,
		Tags:          []string(m.Tags),
		Status:        m.Status,
		FeaturedImage: m.FeaturedImage,
		PublishedAt:   null.TimeFromPtr(m.PublishedAt),
		ReadTime:      m.ReadTime,
	}
}

func blogPostToModel(e *entities.BlogPost) *models.BlogPost {
	return &models.BlogPost{
		ID:            e.ID,
		Version:       e.Version,
		Title:         e.Title,
		Slug:          e.Slug,
		Content:       e.Content,
		Excerpt:       e.Excerpt,
		AuthorName:    e.Author.Name,
		AuthorRole:    e.Author.Role,
		AuthorImage:   e.Author.Image,
		Category:      e.Category,
		Tags:          e.Tags,
		Status:        e.Status,
		FeaturedImage: e.FeaturedImage,
		PublishedAt:   e.PublishedAt.Ptr(),
		ReadTime:      e.ReadTime,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func blogPostUpdates(e *entities.BlogPost) map[string]interface{} {
	m := blogPostToModel(e)
	return map[string]interface{}{
		"title":          m.Title,
		"slug":           m.Slug,
		"content":        m.Content,
		"excerpt":        m.Excerpt,
		"author_name":    m.AuthorName,
		"author_role":    m.AuthorRole,
		"author_image":   m.AuthorImage,
		"category":       m.Category,
		"tags":           m.Tags,
		"status":         m.Status,
		"featured_image": m.FeaturedImage,
		"published_at":   m.PublishedAt,
		"read_time":      m.ReadTime,
	}
}
