package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"company-site.backend/internal/domain/entities"
	domainerrors "company-site.backend/internal/domain/errors"
	domainrepos "company-site.backend/internal/domain/repositories"
	"company-site.backend/pkg/utils"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// resourceMapping describes how one entity kind maps onto its table.
type resourceMapping[P entities.Resource, M any] struct {
	toEntity func(m *M) P
	toModel  func(e P) *M
	// columns rewritten by a full update
	updates func(e P) map[string]interface{}

	searchColumns  []string
	statusColumn   string
	categoryColumn string
	slugColumn     string
	order          string
	// publicScope restricts queries to rows public endpoints may serve
	publicScope func(db *gorm.DB) *gorm.DB
}

// ResourceRepository is the GORM implementation shared by every resource kind.
type ResourceRepository[P entities.Resource, M any] struct {
	db      *gorm.DB
	mapping resourceMapping[P, M]
	now     func() time.Time
}

func newResourceRepository[P entities.Resource, M any](db *gorm.DB, mapping resourceMapping[P, M]) *ResourceRepository[P, M] {
	if mapping.statusColumn == "" {
		mapping.statusColumn = "status"
	}
	if mapping.order == "" {
		mapping.order = "created_at DESC"
	}
	return &ResourceRepository[P, M]{db: db, mapping: mapping, now: time.Now}
}

func (r *ResourceRepository[P, M]) conn(ctx context.Context) *gorm.DB {
	return GetDB(ctx, r.db).WithContext(ctx)
}

func (r *ResourceRepository[P, M]) Create(ctx context.Context, item P) error {
	base := item.Base()
	if base.ID == uuid.Nil {
		base.ID = utils.GenerateUUIDv7()
	}
	now := r.now().UTC()
	base.Version = 1
	base.CreatedAt = now
	base.UpdatedAt = now

	if err := r.conn(ctx).Create(r.mapping.toModel(item)).Error; err != nil {
		return translateError(err)
	}
	return nil
}

func (r *ResourceRepository[P, M]) GetByID(ctx context.Context, id uuid.UUID) (P, error) {
	var m M
	if err := r.conn(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		var zero P
		return zero, translateError(err)
	}
	return r.mapping.toEntity(&m), nil
}

func (r *ResourceRepository[P, M]) GetBySlug(ctx context.Context, slug string) (P, error) {
	var zero P
	if r.mapping.slugColumn == "" {
		return zero, domainerrors.ErrNotFound
	}
	var m M
	if err := r.conn(ctx).Where(r.mapping.slugColumn+" = ?", slug).First(&m).Error; err != nil {
		return zero, translateError(err)
	}
	return r.mapping.toEntity(&m), nil
}

func (r *ResourceRepository[P, M]) SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	if r.mapping.slugColumn == "" || slug == "" {
		return false, nil
	}
	var count int64
	query := r.conn(ctx).Model(new(M)).Where(r.mapping.slugColumn+" = ?", slug)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ResourceRepository[P, M]) List(ctx context.Context, q domainrepos.ListQuery) ([]P, int64, error) {
	query := r.conn(ctx).Model(new(M))

	if term := strings.ToLower(strings.TrimSpace(q.Search)); term != "" && len(r.mapping.searchColumns) > 0 {
		like := "%" + term + "%"
		clauses := make([]string, len(r.mapping.searchColumns))
		args := make([]interface{}, len(r.mapping.searchColumns))
		for i, col := range r.mapping.searchColumns {
			clauses[i] = "LOWER(" + col + ") LIKE ?"
			args[i] = like
		}
		query = query.Where(strings.Join(clauses, " OR "), args...)
	}
	if !utils.IsFilterAll(q.Status) {
		query = query.Where(r.mapping.statusColumn+" = ?", q.Status)
	}
	if !utils.IsFilterAll(q.Category) && r.mapping.categoryColumn != "" {
		query = query.Where(r.mapping.categoryColumn+" = ?", q.Category)
	}
	if q.PublicOnly {
		query = r.public(query)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order(r.mapping.order)
	if q.Limit > 0 {
		page := utils.PaginationParams{Page: q.Page, Limit: q.Limit}
		query = query.Offset(page.CalculateOffset()).Limit(q.Limit)
	}

	var ms []M
	if err := query.Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	items := make([]P, 0, len(ms))
	for i := range ms {
		items = append(items, r.mapping.toEntity(&ms[i]))
	}
	return items, total, nil
}

func (r *ResourceRepository[P, M]) Update(ctx context.Context, item P) (P, error) {
	var zero P
	base := item.Base()

	updates := r.mapping.updates(item)
	updates["version"] = gorm.Expr("version + 1")
	updates["updated_at"] = r.now().UTC()

	query := r.conn(ctx).Model(new(M)).Where("id = ?", base.ID)
	if base.Version > 0 {
		query = query.Where("version = ?", base.Version)
	}
	result := query.Updates(updates)
	if result.Error != nil {
		return zero, translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return zero, r.missingOrStale(ctx, base.ID)
	}
	return r.GetByID(ctx, base.ID)
}

func (r *ResourceRepository[P, M]) UpdateStatus(ctx context.Context, id uuid.UUID, version int, status string, extra map[string]interface{}) (P, error) {
	var zero P
	updates := map[string]interface{}{
		r.mapping.statusColumn: status,
		"version":              gorm.Expr("version + 1"),
		"updated_at":           r.now().UTC(),
	}
	for k, v := range extra {
		updates[k] = v
	}

	query := r.conn(ctx).Model(new(M)).Where("id = ?", id)
	if version > 0 {
		query = query.Where("version = ?", version)
	}
	result := query.Updates(updates)
	if result.Error != nil {
		return zero, translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return zero, r.missingOrStale(ctx, id)
	}
	return r.GetByID(ctx, id)
}

func (r *ResourceRepository[P, M]) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := r.conn(ctx).Delete(new(M), "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *ResourceRepository[P, M]) CountByStatus(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	col := r.mapping.statusColumn
	if err := r.conn(ctx).Model(new(M)).
		Select(col + " AS status, COUNT(*) AS count").
		Group(col).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Count
	}
	return out, nil
}

func (r *ResourceRepository[P, M]) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.conn(ctx).Model(new(M)).Where("created_at >= ?", since).Count(&count).Error
	return count, err
}

func (r *ResourceRepository[P, M]) public(db *gorm.DB) *gorm.DB {
	if r.mapping.publicScope == nil {
		return db.Where("1 = 0")
	}
	return r.mapping.publicScope(db)
}

// missingOrStale tells a deleted row apart from a concurrent edit.
func (r *ResourceRepository[P, M]) missingOrStale(ctx context.Context, id uuid.UUID) error {
	var count int64
	if err := r.conn(ctx).Model(new(M)).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return domainerrors.ErrNotFound
	}
	return domainerrors.ErrConflict
}

func translateError(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domainerrors.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domainerrors.ErrAlreadyExists
	}
	return err
}

// encodeJSON stores nil values as SQL NULL.
func encodeJSON(v interface{}) datatypes.JSON {
	raw, err := json.Marshal(v)
	if err != nil || string(raw) == "null" {
		return nil
	}
	return datatypes.JSON(raw)
}

// decodeJSON leaves out untouched when raw is empty or malformed.
func decodeJSON[T any](raw datatypes.JSON, out *T) {
	if len(raw) == 0 {
		return
	}
	_ = json.Unmarshal(raw, out)
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
