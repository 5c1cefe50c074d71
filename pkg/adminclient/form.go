package adminclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"company-site.backend/internal/domain/entities"
	"company-site.backend/pkg/content"
	"company-site.backend/pkg/utils"
	"github.com/google/uuid"
)

// ErrInvalidDraft is returned by Submit when required fields are missing. The
// per-field messages are on Form.Errors.
var ErrInvalidDraft = errors.New("draft has invalid fields")

// Mutator saves records; Resource implements it.
type Mutator[P any] interface {
	Create(ctx context.Context, item P) (P, error)
	Update(ctx context.Context, id uuid.UUID, item P) (P, error)
}

// SlugBinding connects a form to the draft's title and slug fields.
type SlugBinding[P any] struct {
	TitleField string
	SetTitle   func(P, string)
	SetSlug    func(P, string)
}

var (
	BlogPostSlug = SlugBinding[*entities.BlogPost]{
		TitleField: "title",
		SetTitle:   func(p *entities.BlogPost, v string) { p.Title = v },
		SetSlug:    func(p *entities.BlogPost, v string) { p.Slug = v },
	}
	JobSlug = SlugBinding[*entities.Job]{
		TitleField: "title",
		SetTitle:   func(j *entities.Job, v string) { j.Title = v },
		SetSlug:    func(j *entities.Job, v string) { j.Slug = v },
	}
	VentureSlug = SlugBinding[*entities.Venture]{
		TitleField: "name",
		SetTitle:   func(v *entities.Venture, s string) { v.Name = s },
		SetSlug:    func(v *entities.Venture, s string) { v.Slug = s },
	}
)

type attachment[P any] struct {
	field  string
	folder string
	name   string
	open   func() (io.ReadCloser, error)
	assign func(P, string)
}

// Form is a create or edit form over one record. Field errors and the
// submission error are tracked separately, and a failed Submit keeps the draft.
type Form[P entities.Resource] struct {
	mutator  Mutator[P]
	uploader Uploader
	newItem  func() P

	draft P
	id    uuid.UUID

	slug     content.SlugField
	bindings *SlugBinding[P]

	pending   []attachment[P]
	fieldErrs map[string]string
	submitErr error
}

// NewForm starts a create form with an empty draft.
func NewForm[P entities.Resource](mutator Mutator[P], uploader Uploader, newItem func() P) *Form[P] {
	return &Form[P]{
		mutator:  mutator,
		uploader: uploader,
		newItem:  newItem,
		draft:    newItem(),
		slug:     content.NewSlugField(""),
	}
}

// NewFormFrom starts a create form prefilled with a copy of draft, as when a
// record is duplicated or imported. Identity and version are dropped.
func NewFormFrom[P entities.Resource](mutator Mutator[P], uploader Uploader, newItem func() P, draft P) (*Form[P], error) {
	f := NewForm(mutator, uploader, newItem)
	d, err := f.clone(draft)
	if err != nil {
		return nil, err
	}
	d.Base().ID = uuid.Nil
	d.Base().Version = 0
	f.draft = d
	f.slug = content.NewSlugField(slugOf(d))
	return f, nil
}

// EditForm starts an edit form over a copy of existing.
func EditForm[P entities.Resource](mutator Mutator[P], uploader Uploader, newItem func() P, existing P) (*Form[P], error) {
	f := &Form[P]{mutator: mutator, uploader: uploader, newItem: newItem}
	draft, err := f.clone(existing)
	if err != nil {
		return nil, err
	}
	f.draft = draft
	f.id = existing.Base().ID
	f.slug = content.NewSlugField(slugOf(existing))
	return f, nil
}

// WithSlug makes the slug follow the title until it is edited directly.
func (f *Form[P]) WithSlug(b SlugBinding[P]) *Form[P] {
	f.bindings = &b
	return f
}

func slugOf(item entities.Resource) string {
	if s, ok := item.(entities.Sluggable); ok {
		return s.SlugValue()
	}
	return ""
}

func (f *Form[P]) clone(item P) (P, error) {
	out := f.newItem()
	raw, err := json.Marshal(item)
	if err != nil {
		return out, fmt.Errorf("copy draft: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return out, fmt.Errorf("copy draft: %w", err)
	}
	return out, nil
}

func (f *Form[P]) Draft() P           { return f.draft }
func (f *Form[P]) IsEdit() bool       { return f.id != uuid.Nil }
func (f *Form[P]) Slug() string       { return f.slug.Value() }
func (f *Form[P]) Pending() int       { return len(f.pending) }
func (f *Form[P]) SubmitError() error { return f.submitErr }

// Errors returns a copy of the current field errors.
func (f *Form[P]) Errors() map[string]string {
	out := make(map[string]string, len(f.fieldErrs))
	for k, v := range f.fieldErrs {
		out[k] = v
	}
	return out
}

func (f *Form[P]) FieldError(field string) string { return f.fieldErrs[field] }

// SetField applies an edit to the draft and clears that field's error.
func (f *Form[P]) SetField(field string, apply func(P)) {
	apply(f.draft)
	delete(f.fieldErrs, field)
}

// AppendTo adds item to the end of the nested list that list points at and
// clears field's error.
func AppendTo[P entities.Resource, T any](f *Form[P], field string, list func(P) *[]T, item T) {
	l := list(f.draft)
	*l = utils.AppendItem(*l, item)
	delete(f.fieldErrs, field)
}

// RemoveFrom drops entry i of the nested list, keeping the order of the rest.
func RemoveFrom[P entities.Resource, T any](f *Form[P], field string, list func(P) *[]T, i int) {
	l := list(f.draft)
	*l = utils.RemoveAt(*l, i)
	delete(f.fieldErrs, field)
}

// SetTitle updates the title and, unless the slug was edited, the slug.
func (f *Form[P]) SetTitle(title string) {
	if f.bindings == nil {
		return
	}
	f.bindings.SetTitle(f.draft, title)
	delete(f.fieldErrs, f.bindings.TitleField)
	f.slug.TitleChanged(title)
	f.bindings.SetSlug(f.draft, f.slug.Value())
	delete(f.fieldErrs, "slug")
}

// SetSlug records a direct slug edit; the title no longer drives it.
func (f *Form[P]) SetSlug(slug string) {
	if f.bindings == nil {
		return
	}
	f.slug.Edit(slug)
	f.bindings.SetSlug(f.draft, slug)
	delete(f.fieldErrs, "slug")
}

// ResetSlug hands the slug back to the title.
func (f *Form[P]) ResetSlug(title string) {
	if f.bindings == nil {
		return
	}
	f.slug.Reset(title)
	f.bindings.SetSlug(f.draft, f.slug.Value())
	delete(f.fieldErrs, "slug")
}

// Attach queues a file for field. It is uploaded during Submit and its URL is
// written to the draft with assign before the record is saved. A second
// attachment for the same field replaces the first.
func (f *Form[P]) Attach(field, folder, name string, open func() (io.ReadCloser, error), assign func(P, string)) {
	a := attachment[P]{field: field, folder: folder, name: name, open: open, assign: assign}
	for i := range f.pending {
		if f.pending[i].field == field {
			f.pending[i] = a
			delete(f.fieldErrs, field)
			return
		}
	}
	f.pending = append(f.pending, a)
	delete(f.fieldErrs, field)
}

// Validate checks a normalized copy of the draft. Fields waiting on an
// attachment count as filled, and a slug the user cleared is required.
func (f *Form[P]) Validate() (map[string]string, error) {
	draft, err := f.clone(f.draft)
	if err != nil {
		return nil, err
	}
	draft.Normalize()
	errs := draft.Validate()
	for _, a := range f.pending {
		delete(errs, a.field)
	}
	// Normalize rebuilds an empty slug from the title, so check the draft itself.
	if f.bindings != nil && f.slug.ManuallyEdited() && strings.TrimSpace(slugOf(f.draft)) == "" {
		if errs == nil {
			errs = map[string]string{}
		}
		errs["slug"] = "Slug is required"
	}
	if len(errs) == 0 {
		return nil, nil
	}
	return errs, nil
}

// Submit validates without touching the network, uploads every pending
// attachment in order, then creates or updates the record. On success the
// draft is replaced by the saved record.
func (f *Form[P]) Submit(ctx context.Context) (P, error) {
	var zero P
	f.submitErr = nil

	errs, err := f.Validate()
	if err != nil {
		f.submitErr = err
		return zero, err
	}
	if len(errs) > 0 {
		f.fieldErrs = errs
		return zero, ErrInvalidDraft
	}
	f.fieldErrs = nil

	if err := f.uploadPending(ctx); err != nil {
		f.submitErr = err
		return zero, err
	}
	if post, ok := any(f.draft).(*entities.BlogPost); ok {
		post.ReadTime = content.ReadTime(post.Content)
	}

	var saved P
	if f.IsEdit() {
		saved, err = f.mutator.Update(ctx, f.id, f.draft)
	} else {
		saved, err = f.mutator.Create(ctx, f.draft)
	}
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && len(apiErr.Fields) > 0 {
			f.fieldErrs = make(map[string]string, len(apiErr.Fields))
			for k, v := range apiErr.Fields {
				f.fieldErrs[k] = v
			}
		}
		f.submitErr = err
		return zero, err
	}

	f.draft = saved
	f.id = saved.Base().ID
	f.slug = content.NewSlugField(slugOf(saved))
	return saved, nil
}

// uploadPending drains the queue front to back. An attachment leaves the queue
// only once its URL is on the draft, so a retry resumes where a failure stopped.
func (f *Form[P]) uploadPending(ctx context.Context) error {
	if len(f.pending) > 0 && f.uploader == nil {
		return errors.New("form has attachments but no uploader")
	}
	for len(f.pending) > 0 {
		a := f.pending[0]
		url, err := f.upload(ctx, a)
		if err != nil {
			return fmt.Errorf("upload %s: %w", a.name, err)
		}
		a.assign(f.draft, url)
		f.pending = f.pending[1:]
	}
	return nil
}

func (f *Form[P]) upload(ctx context.Context, a attachment[P]) (string, error) {
	rc, err := a.open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	asset, err := f.uploader.Upload(ctx, a.folder, a.name, rc)
	if err != nil {
		return "", err
	}
	return asset.URL, nil
}
