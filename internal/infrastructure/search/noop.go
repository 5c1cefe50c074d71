package search

import (
	"context"

	"company-site.backend/internal/domain/entities"
	"github.com/google/uuid"
)

// NoopIndex is used when no cluster is configured. Search reports no hits so
// callers fall back to database listing.
type NoopIndex struct{}

func (NoopIndex) Index(context.Context, entities.SearchDocument) error   { return nil }
func (NoopIndex) Remove(context.Context, entities.Kind, uuid.UUID) error { return nil }
func (NoopIndex) Enabled() bool                                          { return false }
func (NoopIndex) Search(context.Context, string, []entities.Kind, int) ([]entities.SearchHit, error) {
	return nil, nil
}

// Enabled reports that the index answers real queries.
func (i *ElasticsearchIndex) Enabled() bool { return i != nil }
