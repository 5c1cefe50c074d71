package adminclient

import (
	"context"

	"company-site.backend/pkg/utils"
)

// ListState is what a list screen shows.
type ListState int

const (
	StateIdle ListState = iota
	StateLoading
	StateError
	StateEmpty
	StateReady
)

func (s ListState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateError:
		return "error"
	case StateEmpty:
		return "empty"
	case StateReady:
		return "ready"
	default:
		return "idle"
	}
}

// Lister fetches one page; Resource implements it.
type Lister[P any] interface {
	List(ctx context.Context, params ListParams) (*Page[P], error)
}

// ListView holds a paginated, filtered listing. Each load replaces the local
// items with the server's page; a failed load shows the error until Retry.
type ListView[P any] struct {
	lister Lister[P]
	params ListParams

	state      ListState
	items      []P
	pagination utils.PaginationMeta
	err        error
}

func NewListView[P any](lister Lister[P], params ListParams) *ListView[P] {
	if params.Page < 1 {
		params.Page = 1
	}
	return &ListView[P]{lister: lister, params: params}
}

func (v *ListView[P]) Load(ctx context.Context) error {
	v.state = StateLoading
	v.err = nil

	page, err := v.lister.List(ctx, v.params)
	if err != nil {
		v.state = StateError
		v.err = err
		v.items = nil
		return err
	}
	v.items = page.Items
	v.pagination = page.Pagination
	if len(v.items) == 0 {
		v.state = StateEmpty
	} else {
		v.state = StateReady
	}
	return nil
}

// Retry repeats the last load with the same filters.
func (v *ListView[P]) Retry(ctx context.Context) error { return v.Load(ctx) }

// SetSearch, SetStatus and SetCategory change a filter and go back to page one.
func (v *ListView[P]) SetSearch(ctx context.Context, term string) error {
	v.params.Search = term
	v.params.Page = 1
	return v.Load(ctx)
}

func (v *ListView[P]) SetStatus(ctx context.Context, status string) error {
	v.params.Status = status
	v.params.Page = 1
	return v.Load(ctx)
}

func (v *ListView[P]) SetCategory(ctx context.Context, category string) error {
	v.params.Category = category
	v.params.Page = 1
	return v.Load(ctx)
}

func (v *ListView[P]) GoToPage(ctx context.Context, page int) error {
	if page < 1 {
		page = 1
	}
	v.params.Page = page
	return v.Load(ctx)
}

// NextPage does nothing on the last page.
func (v *ListView[P]) NextPage(ctx context.Context) error {
	if !v.HasNext() {
		return nil
	}
	return v.GoToPage(ctx, v.pagination.Page+1)
}

// PrevPage does nothing on the first page.
func (v *ListView[P]) PrevPage(ctx context.Context) error {
	if !v.HasPrev() {
		return nil
	}
	return v.GoToPage(ctx, v.pagination.Page-1)
}

func (v *ListView[P]) State() ListState                 { return v.state }
func (v *ListView[P]) Items() []P                       { return v.items }
func (v *ListView[P]) Err() error                       { return v.err }
func (v *ListView[P]) Params() ListParams               { return v.params }
func (v *ListView[P]) Pagination() utils.PaginationMeta { return v.pagination }
func (v *ListView[P]) HasPrev() bool                    { return v.pagination.HasPrev() }
func (v *ListView[P]) HasNext() bool                    { return v.pagination.HasNext() }

// Range is the "Showing" label, e.g. "11 to 20 of 25".
func (v *ListView[P]) Range() string { return v.pagination.DisplayRange() }

// FilterLocal narrows already loaded items the way the list endpoints do:
// a case-insensitive search over fields plus an exact status match where
// "all" or "" selects everything.
func FilterLocal[P any](items []P, search, status string, fields func(P) []string, statusOf func(P) string) []P {
	return utils.Filter(items, func(item P) bool {
		return utils.MatchesSearch(search, fields(item)...) && utils.MatchesFilter(status, statusOf(item))
	})
}
