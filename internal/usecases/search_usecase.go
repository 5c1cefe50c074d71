package usecases

import (
	"context"
	"strings"

	"company-site.backend/internal/domain/entities"
	domainerrors "company-site.backend/internal/domain/errors"
	"company-site.backend/internal/domain/repositories"
	"company-site.backend/pkg/logger"
	"go.uber.org/zap"
)

const maxSearchResults = 50

// SearchFallback answers a search for one kind from the database.
type SearchFallback func(ctx context.Context, query string, limit int) ([]entities.SearchHit, error)

// ListFallback searches the public records of uc with the list filter.
func ListFallback[P entities.Resource](uc *ResourceUsecase[P]) SearchFallback {
	return func(ctx context.Context, query string, limit int) ([]entities.SearchHit, error) {
		res, err := uc.List(ctx, repositories.ListQuery{Search: query, Limit: limit, PublicOnly: true})
		if err != nil {
			return nil, err
		}
		hits := make([]entities.SearchHit, 0, len(res.Items))
		for _, item := range res.Items {
			doc, ok := entities.NewSearchDocument(item)
			if !ok {
				continue
			}
			hits = append(hits, entities.SearchHit{
				Kind:    doc.Kind,
				ID:      doc.RecordID,
				Slug:    doc.Slug,
				Title:   doc.Title,
				Summary: doc.Summary,
				Path:    doc.Path,
			})
		}
		return hits, nil
	}
}

// SearchUsecase searches public content, through the index when one is
// configured and the database otherwise.
type SearchUsecase struct {
	index     SearchIndex
	fallbacks map[entities.Kind]SearchFallback
}

func NewSearchUsecase(index SearchIndex, fallbacks map[entities.Kind]SearchFallback) *SearchUsecase {
	return &SearchUsecase{index: index, fallbacks: fallbacks}
}

// Search returns at most limit hits for query among kinds; no kinds means all
// searchable kinds.
func (u *SearchUsecase) Search(ctx context.Context, query string, kinds []entities.Kind, limit int) ([]entities.SearchHit, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domainerrors.Validation(map[string]string{"q": "Search query is required"})
	}
	if limit <= 0 || limit > maxSearchResults {
		limit = 10
	}
	for _, k := range kinds {
		if _, ok := u.fallbacks[k]; !ok {
			return nil, domainerrors.BadRequest("unsupported search kind: " + string(k))
		}
	}
	if len(kinds) == 0 {
		kinds = u.searchableKinds()
	}

	if u.index != nil && u.index.Enabled() {
		hits, err := u.index.Search(ctx, query, kinds, limit)
		if err == nil {
			return hits, nil
		}
		logger.Warn(ctx, "Search index unavailable, using database", zap.Error(err))
	}

	var hits []entities.SearchHit
	for _, k := range kinds {
		found, err := u.fallbacks[k](ctx, query, limit)
		if err != nil {
			return nil, err
		}
		hits = append(hits, found...)
		if len(hits) >= limit {
			return hits[:limit], nil
		}
	}
	return hits, nil
}

func (u *SearchUsecase) searchableKinds() []entities.Kind {
	var kinds []entities.Kind
	for _, k := range entities.AllKinds {
		if _, ok := u.fallbacks[k]; ok {
			kinds = append(kinds, k)
		}
	}
	return kinds
}
