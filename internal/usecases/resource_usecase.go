package usecases

import (
	"context"
	"errors"
	"net/http"
	"path"
	"strings"
	"sync"
	"time"

	"company-site.backend/internal/domain/entities"
	domainerrors "company-site.backend/internal/domain/errors"
	"company-site.backend/internal/domain/repositories"
	"company-site.backend/internal/infrastructure/storage"
	"company-site.backend/pkg/content"
	"company-site.backend/pkg/logger"
	"company-site.backend/pkg/utils"
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
)

const defaultRevalidateTimeout = 5 * time.Second

// ListResult is one page of a resource listing.
type ListResult[P any] struct {
	Items      []P                  `json:"items"`
	Pagination utils.PaginationMeta `json:"pagination"`
}

// ResourceDeps are the collaborators shared by resource usecases. A nil field
// switches the matching behaviour off.
type ResourceDeps struct {
	UnitOfWork        repositories.UnitOfWork
	Cache             ListCache
	Sanitizer         *content.Sanitizer
	Index             SearchIndex
	Revalidator       Revalidator
	RevalidateTimeout time.Duration
	// Files removes the stored object when a media asset is deleted.
	Files storage.Uploader
}

// ResourceUsecase runs the admin workflow (list, create, edit, status change,
// delete) for one resource kind.
type ResourceUsecase[P entities.Resource] struct {
	kind    entities.Kind
	repo    repositories.ResourceRepository[P]
	newItem func() P
	deps    ResourceDeps

	detached sync.WaitGroup
}

func NewResourceUsecase[P entities.Resource](repo repositories.ResourceRepository[P], newItem func() P, deps ResourceDeps) *ResourceUsecase[P] {
	if deps.RevalidateTimeout <= 0 {
		deps.RevalidateTimeout = defaultRevalidateTimeout
	}
	return &ResourceUsecase[P]{
		kind:    newItem().Kind(),
		repo:    repo,
		newItem: newItem,
		deps:    deps,
	}
}

func (u *ResourceUsecase[P]) Kind() entities.Kind { return u.kind }

// New allocates an empty record to decode a request into.
func (u *ResourceUsecase[P]) New() P { return u.newItem() }

// List returns one page of records. Results are cached per query until the
// next write to the resource; the cache key is fixed before the read so a
// page read across a write is filed under the superseded version.
func (u *ResourceUsecase[P]) List(ctx context.Context, q repositories.ListQuery) (*ListResult[P], error) {
	q = normalizeListQuery(q)

	var (
		cached   ListResult[P]
		cacheKey string
	)
	if u.deps.Cache != nil {
		key, hit, err := u.deps.Cache.Load(ctx, string(u.kind), q, &cached)
		cacheKey = key
		if err != nil {
			logger.Warn(ctx, "List cache lookup failed", zap.String("resource", string(u.kind)), zap.Error(err))
		} else if hit {
			return &cached, nil
		}
	}

	items, total, err := u.repo.List(ctx, q)
	if err != nil {
		return nil, err
	}
	result := &ListResult[P]{
		Items:      items,
		Pagination: utils.CalculateMeta(total, q.Page, q.Limit),
	}

	if cacheKey != "" {
		if err := u.deps.Cache.StoreAt(ctx, cacheKey, result); err != nil {
			logger.Warn(ctx, "List cache store failed", zap.String("resource", string(u.kind)), zap.Error(err))
		}
	}
	return result, nil
}

// normalizeListQuery maps equivalent filters onto one query so they share a
// cache entry; "all" and "" both disable a filter.
func normalizeListQuery(q repositories.ListQuery) repositories.ListQuery {
	params := utils.GetPaginationParams(q.Page, q.Limit)
	q.Page, q.Limit = params.Page, params.Limit
	q.Search = strings.TrimSpace(q.Search)
	if utils.IsFilterAll(q.Status) {
		q.Status = ""
	}
	if utils.IsFilterAll(q.Category) {
		q.Category = ""
	}
	return q
}

func (u *ResourceUsecase[P]) Get(ctx context.Context, id uuid.UUID) (P, error) {
	return u.repo.GetByID(ctx, id)
}

// GetPublic returns a record by id only when public pages may show it.
func (u *ResourceUsecase[P]) GetPublic(ctx context.Context, id uuid.UUID) (P, error) {
	item, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return item, err
	}
	if !item.IsPublic() {
		var zero P
		return zero, domainerrors.ErrNotFound
	}
	return item, nil
}

// GetPublicBySlug returns a record by slug only when public pages may show it.
func (u *ResourceUsecase[P]) GetPublicBySlug(ctx context.Context, slug string) (P, error) {
	item, err := u.repo.GetBySlug(ctx, strings.ToLower(strings.TrimSpace(slug)))
	if err != nil {
		return item, err
	}
	if !item.IsPublic() {
		var zero P
		return zero, domainerrors.ErrNotFound
	}
	return item, nil
}

// Create normalizes, validates and stores a new record.
func (u *ResourceUsecase[P]) Create(ctx context.Context, item P) (P, error) {
	var zero P
	*item.Base() = entities.Record{}
	if err := u.prepare(item); err != nil {
		return zero, err
	}

	err := u.inTx(ctx, func(ctx context.Context) error {
		if err := u.checkSlug(ctx, item, uuid.Nil); err != nil {
			return err
		}
		return u.repo.Create(ctx, item)
	})
	if err != nil {
		return zero, u.writeError(err)
	}

	u.afterSave(ctx, item)
	return item, nil
}

// Update replaces the record id with item. item.Version is the version the
// editor started from; zero skips the concurrency check.
func (u *ResourceUsecase[P]) Update(ctx context.Context, id uuid.UUID, item P) (P, error) {
	var zero P
	base := item.Base()
	base.ID = id
	if err := u.prepare(item); err != nil {
		return zero, err
	}

	var stored P
	err := u.inTx(ctx, func(ctx context.Context) error {
		if err := u.checkSlug(ctx, item, id); err != nil {
			return err
		}
		var err error
		stored, err = u.repo.Update(ctx, item)
		return err
	})
	if err != nil {
		return zero, u.writeError(err)
	}

	u.afterSave(ctx, stored)
	return stored, nil
}

// StatusChange moves a record to another value of its status enum. Any status
// may follow any other.
type StatusChange struct {
	Status string `json:"status"`
	// AdminNotes is stored on job applications; nil leaves the notes untouched.
	AdminNotes *string `json:"adminNotes,omitempty"`
	Version    int     `json:"version,omitempty"`
}

func (u *ResourceUsecase[P]) UpdateStatus(ctx context.Context, id uuid.UUID, change StatusChange) (P, error) {
	var zero P
	item, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return zero, err
	}
	if change.Version > 0 && change.Version != item.Base().Version {
		return zero, domainerrors.ErrConflict
	}
	if err := item.SetStatus(strings.TrimSpace(change.Status)); err != nil {
		return zero, err
	}
	if app, ok := any(item).(*entities.JobApplication); ok && change.AdminNotes != nil {
		notes := strings.TrimSpace(*change.AdminNotes)
		app.AdminNotes = null.NewString(notes, notes != "")
	}
	// the new status may need fields the record does not have yet, such as a
	// publish date for a scheduled post
	if errs := item.Validate(); len(errs) > 0 {
		return zero, domainerrors.Validation(errs)
	}

	stored, err := u.repo.Update(ctx, item)
	if err != nil {
		return zero, err
	}
	u.afterSave(ctx, stored)
	return stored, nil
}

func (u *ResourceUsecase[P]) Delete(ctx context.Context, id uuid.UUID) error {
	item, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := u.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	u.afterDelete(ctx, item)
	return nil
}

// BulkDelete deletes every id independently and reports each outcome.
func (u *ResourceUsecase[P]) BulkDelete(ctx context.Context, ids []uuid.UUID) []entities.BulkResult {
	results := make([]entities.BulkResult, 0, len(ids))
	for _, id := range ids {
		results = append(results, u.bulkResult(ctx, id, u.Delete(ctx, id)))
	}
	return results
}

// BulkStatus applies one status to every id independently.
func (u *ResourceUsecase[P]) BulkStatus(ctx context.Context, ids []uuid.UUID, status string) []entities.BulkResult {
	results := make([]entities.BulkResult, 0, len(ids))
	for _, id := range ids {
		_, err := u.UpdateStatus(ctx, id, StatusChange{Status: status})
		results = append(results, u.bulkResult(ctx, id, err))
	}
	return results
}

// Wait blocks until detached revalidation calls have finished.
func (u *ResourceUsecase[P]) Wait() {
	u.detached.Wait()
}

func (u *ResourceUsecase[P]) bulkResult(ctx context.Context, id uuid.UUID, err error) entities.BulkResult {
	if err == nil {
		return entities.BulkResult{ID: id, OK: true}
	}
	appErr := domainerrors.FromError(err)
	if appErr.Status >= http.StatusInternalServerError {
		logger.Error(ctx, "Bulk operation failed", zap.String("resource", string(u.kind)), zap.String("id", id.String()), zap.Error(err))
	}
	return entities.BulkResult{ID: id, OK: false, Error: appErr.Message}
}

func (u *ResourceUsecase[P]) prepare(item P) error {
	item.Normalize()
	if s, ok := any(item).(entities.Sanitizable); ok && u.deps.Sanitizer != nil {
		s.Sanitize(u.deps.Sanitizer)
	}
	if errs := item.Validate(); len(errs) > 0 {
		return domainerrors.Validation(errs)
	}
	return nil
}

func (u *ResourceUsecase[P]) checkSlug(ctx context.Context, item P, excludeID uuid.UUID) error {
	s, ok := any(item).(entities.Sluggable)
	if !ok {
		return nil
	}
	exists, err := u.repo.SlugExists(ctx, s.SlugValue(), excludeID)
	if err != nil {
		return err
	}
	if exists {
		return slugConflict()
	}
	return nil
}

func slugConflict() *domainerrors.AppError {
	e := domainerrors.Conflict("slug is already in use")
	e.Fields = map[string]string{"slug": "Slug is already in use"}
	return e
}

// writeError turns a unique index violation into the slug conflict editors see.
func (u *ResourceUsecase[P]) writeError(err error) error {
	if errors.Is(err, domainerrors.ErrAlreadyExists) && u.kind.Sluggable() {
		return slugConflict()
	}
	return err
}

func (u *ResourceUsecase[P]) inTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if u.deps.UnitOfWork == nil {
		return fn(ctx)
	}
	return u.deps.UnitOfWork.Do(ctx, fn)
}

func (u *ResourceUsecase[P]) afterSave(ctx context.Context, item P) {
	u.invalidate(ctx)
	u.syncIndex(ctx, item, item.IsPublic())
	u.revalidate(ctx, item)
}

func (u *ResourceUsecase[P]) afterDelete(ctx context.Context, item P) {
	u.invalidate(ctx)
	u.syncIndex(ctx, item, false)
	u.revalidate(ctx, item)

	if asset, ok := any(item).(*entities.MediaAsset); ok && u.deps.Files != nil && asset.StorageKey != "" {
		if err := u.deps.Files.Delete(ctx, asset.StorageKey); err != nil {
			logger.Warn(ctx, "Stored file not removed", zap.String("key", asset.StorageKey), zap.Error(err))
		}
	}
}

func (u *ResourceUsecase[P]) invalidate(ctx context.Context) {
	if u.deps.Cache == nil {
		return
	}
	if _, err := u.deps.Cache.Invalidate(ctx, string(u.kind)); err != nil {
		logger.Warn(ctx, "List cache invalidation failed", zap.String("resource", string(u.kind)), zap.Error(err))
	}
}

func (u *ResourceUsecase[P]) syncIndex(ctx context.Context, item P, keep bool) {
	if u.deps.Index == nil || !u.deps.Index.Enabled() {
		return
	}
	doc, ok := entities.NewSearchDocument(item)
	if !ok {
		return
	}

	var err error
	if keep {
		err = u.deps.Index.Index(ctx, doc)
	} else {
		err = u.deps.Index.Remove(ctx, u.kind, item.Base().ID)
	}
	if err != nil {
		logger.Warn(ctx, "Search index not updated", zap.String("document", doc.ID), zap.Error(err))
	}
}

// revalidate refreshes the record's page and its listing in the background.
// Failures are logged and never reach the caller.
func (u *ResourceUsecase[P]) revalidate(ctx context.Context, item P) {
	p, ok := any(item).(entities.Publishable)
	if !ok || u.deps.Revalidator == nil {
		return
	}
	page := p.PublicPath()
	paths := []string{page, path.Dir(page)}

	ctx = context.WithoutCancel(ctx)
	u.detached.Add(1)
	go func() {
		defer u.detached.Done()
		ctx, cancel := context.WithTimeout(ctx, u.deps.RevalidateTimeout)
		defer cancel()

		for _, p := range paths {
			if err := u.deps.Revalidator.Revalidate(ctx, p); err != nil {
				logger.Warn(ctx, "Revalidation failed", zap.String("path", p), zap.Error(err))
			}
		}
	}()
}
