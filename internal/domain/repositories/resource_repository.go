package repositories

import (
	"context"
	"time"

	"company-site.backend/internal/domain/entities"
	"github.com/google/uuid"
)

// ListQuery narrows a resource listing. Empty strings and "all" disable a filter.
type ListQuery struct {
	Search   string `json:"search,omitempty"`
	Status   string `json:"status,omitempty"`
	Category string `json:"category,omitempty"`
	Page     int    `json:"page"`
	Limit    int    `json:"limit"`
	// PublicOnly restricts the listing to records public endpoints may serve.
	PublicOnly bool `json:"publicOnly,omitempty"`
}

// ResourceRepository stores one resource kind. P is a pointer entity type.
type ResourceRepository[P entities.Resource] interface {
	Create(ctx context.Context, item P) error
	GetByID(ctx context.Context, id uuid.UUID) (P, error)
	// GetBySlug returns ErrNotFound for kinds without slugs.
	GetBySlug(ctx context.Context, slug string) (P, error)
	SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error)
	List(ctx context.Context, q ListQuery) ([]P, int64, error)
	// Update writes every field when item.Version matches the stored version
	// (or is zero) and bumps the version. A stale version yields ErrConflict.
	// The stored record is returned.
	Update(ctx context.Context, item P) (P, error)
	// UpdateStatus writes the status column only; extra carries kind specific
	// columns such as admin notes. Like Update, a non-zero version must match.
	UpdateStatus(ctx context.Context, id uuid.UUID, version int, status string, extra map[string]interface{}) (P, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
	CountByStatus(ctx context.Context) (map[string]int64, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
}

// BlogPostRepository adds scheduled publishing queries.
type BlogPostRepository interface {
	ResourceRepository[*entities.BlogPost]
	ListDueScheduled(ctx context.Context, now time.Time, limit int) ([]*entities.BlogPost, error)
}
