package adminclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"company-site.backend/internal/domain/entities"
	"company-site.backend/pkg/utils"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// bulkDeleteConcurrency bounds the DELETE calls a bulk delete has in flight.
const bulkDeleteConcurrency = 4

// ErrDeleteNotConfirmed is returned when the operator declines a delete prompt.
var ErrDeleteNotConfirmed = errors.New("delete not confirmed")

// Confirmer asks the operator to approve a destructive action.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a plain function to Confirmer.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// Page is one page of a listing.
type Page[P any] struct {
	Items      []P                  `json:"items"`
	Pagination utils.PaginationMeta `json:"pagination"`
}

// ListParams are the list filters. Empty values are left out of the query.
type ListParams struct {
	Search   string
	Status   string
	Category string
	Page     int
	Limit    int
}

// Query serializes the filters the way the list endpoints read them.
func (p ListParams) Query() url.Values {
	q := url.Values{}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if p.Status != "" {
		q.Set("status", p.Status)
	}
	if p.Category != "" {
		q.Set("category", p.Category)
	}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	return q
}

// Resource is the admin API of one collection, e.g. /api/admin/jobs.
type Resource[P entities.Resource] struct {
	c       *Client
	kind    entities.Kind
	newItem func() P
}

// NewResource binds a collection; newItem returns an empty record of its kind.
func NewResource[P entities.Resource](c *Client, newItem func() P) *Resource[P] {
	return &Resource[P]{c: c, kind: newItem().Kind(), newItem: newItem}
}

func (r *Resource[P]) Kind() entities.Kind { return r.kind }

func (r *Resource[P]) path(parts ...string) string {
	p := "/api/admin/" + string(r.kind)
	for _, part := range parts {
		p += "/" + part
	}
	return p
}

// decodeItem unwraps the single record responses, e.g. {"job": {...}}.
func (r *Resource[P]) decodeItem(body map[string]json.RawMessage) (P, error) {
	item := r.newItem()
	raw, ok := body[r.kind.Singular()]
	if !ok {
		var zero P
		return zero, fmt.Errorf("response has no %q object", r.kind.Singular())
	}
	if err := json.Unmarshal(raw, item); err != nil {
		var zero P
		return zero, fmt.Errorf("decode %s: %w", r.kind.Singular(), err)
	}
	return item, nil
}

func (r *Resource[P]) send(ctx context.Context, method, path string, in interface{}) (P, error) {
	var body map[string]json.RawMessage
	if err := r.c.doJSON(ctx, method, path, nil, in, &body); err != nil {
		var zero P
		return zero, err
	}
	return r.decodeItem(body)
}

func (r *Resource[P]) List(ctx context.Context, params ListParams) (*Page[P], error) {
	var page Page[P]
	if err := r.c.doJSON(ctx, http.MethodGet, r.path(), params.Query(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (r *Resource[P]) Get(ctx context.Context, id uuid.UUID) (P, error) {
	return r.send(ctx, http.MethodGet, r.path(id.String()), nil)
}

func (r *Resource[P]) Create(ctx context.Context, item P) (P, error) {
	return r.send(ctx, http.MethodPost, r.path(), item)
}

// Update saves item over id. A non-zero item version makes the save conditional.
func (r *Resource[P]) Update(ctx context.Context, id uuid.UUID, item P) (P, error) {
	return r.send(ctx, http.MethodPut, r.path(id.String()), item)
}

// StatusUpdate is the body of a status change.
type StatusUpdate struct {
	Status     string  `json:"status"`
	AdminNotes *string `json:"adminNotes,omitempty"`
	Version    int     `json:"version,omitempty"`
}

func (r *Resource[P]) UpdateStatus(ctx context.Context, id uuid.UUID, change StatusUpdate) (P, error) {
	return r.send(ctx, http.MethodPatch, r.path(id.String(), "status"), change)
}

// BulkStatus moves every id to status in one request.
func (r *Resource[P]) BulkStatus(ctx context.Context, ids []uuid.UUID, status string) ([]entities.BulkResult, error) {
	var out struct {
		Results []entities.BulkResult `json:"results"`
	}
	body := map[string]interface{}{"ids": ids, "status": status}
	if err := r.c.doJSON(ctx, http.MethodPost, r.path("bulk-status"), nil, body, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// Delete removes one record once confirm approves a prompt naming it. Without
// approval no request is made.
func (r *Resource[P]) Delete(ctx context.Context, id uuid.UUID, label string, confirm Confirmer) error {
	prompt := fmt.Sprintf("Delete %s %q? This cannot be undone.", r.kind.Singular(), label)
	if confirm == nil || !confirm.Confirm(prompt) {
		return ErrDeleteNotConfirmed
	}
	return r.delete(ctx, id)
}

func (r *Resource[P]) delete(ctx context.Context, id uuid.UUID) error {
	return r.c.doJSON(ctx, http.MethodDelete, r.path(id.String()), nil, nil, nil)
}

// BulkDelete asks once for the whole selection, then deletes each id with its
// own call. Results follow the order of ids.
func (r *Resource[P]) BulkDelete(ctx context.Context, ids []uuid.UUID, confirm Confirmer) ([]entities.BulkResult, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	prompt := fmt.Sprintf("Delete %d %s? This cannot be undone.", len(ids), r.kind)
	if confirm == nil || !confirm.Confirm(prompt) {
		return nil, ErrDeleteNotConfirmed
	}

	results := make([]entities.BulkResult, len(ids))
	var g errgroup.Group
	g.SetLimit(bulkDeleteConcurrency)
	for i, id := range ids {
		g.Go(func() error {
			results[i] = entities.BulkResult{ID: id, OK: true}
			if err := r.delete(ctx, id); err != nil {
				results[i] = entities.BulkResult{ID: id, Error: err.Error()}
			}
			// one failed id must not stop the others
			return nil
		})
	}
	_ = g.Wait()
	return results, nil
}
