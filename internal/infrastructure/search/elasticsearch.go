package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"company-site.backend/internal/domain/entities"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
)

const indexMapping = `{
	"settings": {
		"analysis": {
			"analyzer": {
				"content_analyzer": {
					"type": "custom",
					"tokenizer": "standard",
					"filter": ["lowercase", "asciifolding"]
				}
			}
		}
	},
	"mappings": {
		"properties": {
			"id": {"type": "keyword"},
			"recordId": {"type": "keyword"},
			"kind": {"type": "keyword"},
			"slug": {"type": "keyword"},
			"title": {
				"type": "text",
				"analyzer": "content_analyzer",
				"fields": {"keyword": {"type": "keyword"}}
			},
			"summary": {"type": "text", "analyzer": "content_analyzer"},
			"body": {"type": "text", "analyzer": "content_analyzer"},
			"tags": {"type": "keyword"},
			"path": {"type": "keyword"},
			"publishedAt": {"type": "date"}
		}
	}
}`

// Config selects the cluster and index used for public content search.
type Config struct {
	Addresses []string
	Username  string
	Password  string
	Index     string
	Transport http.RoundTripper
}

// ElasticsearchIndex keeps public content searchable.
type ElasticsearchIndex struct {
	client    *elasticsearch.Client
	indexName string
}

// NewElasticsearchIndex connects to the cluster and checks it answers.
func NewElasticsearchIndex(cfg Config) (*ElasticsearchIndex, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: cfg.Addresses,
		Username:  cfg.Username,
		Password:  cfg.Password,
		Transport: cfg.Transport,
	})
	if err != nil {
		return nil, fmt.Errorf("create es client: %w", err)
	}

	res, err := client.Info()
	if err != nil {
		return nil, fmt.Errorf("es info: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("es error: %s", res.Status())
	}

	name := cfg.Index
	if name == "" {
		name = "site-content"
	}
	return &ElasticsearchIndex{client: client, indexName: name}, nil
}

// EnsureIndex creates the index with its mapping when it is missing.
func (i *ElasticsearchIndex) EnsureIndex(ctx context.Context) error {
	res, err := i.client.Indices.Exists([]string{i.indexName}, i.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("check index: %w", err)
	}
	res.Body.Close()
	if res.StatusCode == http.StatusOK {
		return nil
	}

	res, err = i.client.Indices.Create(
		i.indexName,
		i.client.Indices.Create.WithContext(ctx),
		i.client.Indices.Create.WithBody(bytes.NewReader([]byte(indexMapping))),
	)
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("create index error: %s", res.Status())
	}
	return nil
}

// Index upserts one document.
func (i *ElasticsearchIndex) Index(ctx context.Context, doc entities.SearchDocument) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	req := esapi.IndexRequest{
		Index:      i.indexName,
		DocumentID: doc.ID,
		Body:       bytes.NewReader(data),
		Refresh:    "false",
	}
	res, err := req.Do(ctx, i.client)
	if err != nil {
		return fmt.Errorf("index request: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index error: %s", res.Status())
	}
	return nil
}

// Remove deletes a document; a document that is already gone is not an error.
func (i *ElasticsearchIndex) Remove(ctx context.Context, kind entities.Kind, id uuid.UUID) error {
	req := esapi.DeleteRequest{
		Index:      i.indexName,
		DocumentID: entities.SearchDocumentID(kind, id),
	}
	res, err := req.Do(ctx, i.client)
	if err != nil {
		return fmt.Errorf("delete request: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("delete error: %s", res.Status())
	}
	return nil
}

// Search runs a weighted full text query, optionally restricted to kinds.
func (i *ElasticsearchIndex) Search(ctx context.Context, query string, kinds []entities.Kind, limit int) ([]entities.SearchHit, error) {
	if limit <= 0 {
		limit = 10
	}
	body, err := json.Marshal(searchBody(query, kinds, limit))
	if err != nil {
		return nil, fmt.Errorf("marshal query: %w", err)
	}

	res, err := i.client.Search(
		i.client.Search.WithContext(ctx),
		i.client.Search.WithIndex(i.indexName),
		i.client.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("search error: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Score  float64                 `json:"_score"`
				Source entities.SearchDocument `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("parse search response: %w", err)
	}

	hits := make([]entities.SearchHit, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		hits = append(hits, entities.SearchHit{
			Kind:    h.Source.Kind,
			ID:      h.Source.RecordID,
			Slug:    h.Source.Slug,
			Title:   h.Source.Title,
			Summary: h.Source.Summary,
			Path:    h.Source.Path,
			Score:   h.Score,
		})
	}
	return hits, nil
}

func searchBody(query string, kinds []entities.Kind, limit int) map[string]any {
	boolQuery := map[string]any{
		"must": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"title^3", "summary^2", "body", "tags"},
				"fuzziness": "AUTO",
			},
		},
	}
	if len(kinds) > 0 {
		boolQuery["filter"] = []any{
			map[string]any{"terms": map[string]any{"kind": kinds}},
		}
	}
	return map[string]any{
		"size":  limit,
		"query": map[string]any{"bool": boolQuery},
	}
}
