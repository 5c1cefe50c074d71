package usecases

import (
	"context"

	"company-site.backend/internal/domain/entities"
	"github.com/google/uuid"
)

// ListCache stores list responses per resource; Invalidate drops every entry of
// a resource at once. Load returns the key a miss must be stored under.
type ListCache interface {
	Load(ctx context.Context, resource string, query, dst interface{}) (key string, hit bool, err error)
	StoreAt(ctx context.Context, key string, value interface{}) error
	Invalidate(ctx context.Context, resource string) (string, error)
}

// SearchIndex keeps public records searchable.
type SearchIndex interface {
	Index(ctx context.Context, doc entities.SearchDocument) error
	Remove(ctx context.Context, kind entities.Kind, id uuid.UUID) error
	Search(ctx context.Context, query string, kinds []entities.Kind, limit int) ([]entities.SearchHit, error)
	Enabled() bool
}

// Revalidator refreshes the rendered public page at path.
type Revalidator interface {
	Revalidate(ctx context.Context, path string) error
}

// RevalidatorFunc adapts a function to Revalidator.
type RevalidatorFunc func(ctx context.Context, path string) error

func (f RevalidatorFunc) Revalidate(ctx context.Context, path string) error { return f(ctx, path) }
