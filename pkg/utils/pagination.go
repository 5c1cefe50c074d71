package utils

import (
	"fmt"
	"math"
)

const (
	// MaxLimit caps page sizes requested by clients
	MaxLimit = 100
)

// PaginationParams holds pagination request parameters
type PaginationParams struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

// PaginationMeta is the `pagination` object returned next to list items.
type PaginationMeta struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// GetPaginationParams extracts page and limit with defaults.
// page defaults to 1; limit=0 means no limit (all items); limit is capped at MaxLimit.
func GetPaginationParams(page, limit int) PaginationParams {
	if page < 1 {
		page = 1
	}
	if limit < 0 {
		limit = 0
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return PaginationParams{
		Page:  page,
		Limit: limit,
	}
}

// CalculateOffset returns the SQL offset
func (p PaginationParams) CalculateOffset() int {
	if p.Page < 1 || p.Limit <= 0 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// CalculateMeta generates pagination metadata
func CalculateMeta(total int64, page, limit int) PaginationMeta {
	if limit <= 0 {
		return PaginationMeta{
			Page:  1,
			Limit: int(total),
			Total: total,
			Pages: 1,
		}
	}
	if page < 1 {
		page = 1
	}

	pages := int(math.Ceil(float64(total) / float64(limit)))
	if pages < 0 {
		pages = 0
	}

	return PaginationMeta{
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: pages,
	}
}

// HasPrev reports whether a "Previous" control should be enabled.
func (m PaginationMeta) HasPrev() bool {
	return m.Page > 1
}

// HasNext reports whether a "Next" control should be enabled.
func (m PaginationMeta) HasNext() bool {
	return m.Page < m.Pages
}

// RangeBounds returns the 1-based first and last item shown on the page:
// (page-1)*limit+1 through min(page*limit, total).
func (m PaginationMeta) RangeBounds() (from, to int64) {
	if m.Total <= 0 || m.Limit <= 0 {
		return 0, m.Total
	}
	from = int64((m.Page-1)*m.Limit) + 1
	to = int64(m.Page * m.Limit)
	if to > m.Total {
		to = m.Total
	}
	if from > m.Total {
		from = m.Total
	}
	return from, to
}

// DisplayRange renders the "11 to 20 of 25" label.
func (m PaginationMeta) DisplayRange() string {
	from, to := m.RangeBounds()
	return fmt.Sprintf("%d to %d of %d", from, to, m.Total)
}
