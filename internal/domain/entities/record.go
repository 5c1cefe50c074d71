package entities

import (
	"time"

	domainerrors "company-site.backend/internal/domain/errors"
	"company-site.backend/pkg/content"
	"company-site.backend/pkg/validation"
	"github.com/google/uuid"
)

// Record is the identity and bookkeeping shared by every stored resource.
type Record struct {
	ID        uuid.UUID `json:"id"`
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Base gives generic code access to the embedded record.
func (r *Record) Base() *Record { return r }

// Resource is implemented by pointers to every managed entity.
type Resource interface {
	Base() *Record
	Kind() Kind
	// Normalize trims input and fills derived fields before validation.
	Normalize()
	Validate() validation.Errors
	StatusValue() string
	SetStatus(status string) error
	// IsPublic reports whether the record may be served by public endpoints.
	IsPublic() bool
}

// Sluggable resources are addressable by a unique slug.
type Sluggable interface {
	Resource
	SlugValue() string
}

// Sanitizable resources scrub user supplied markup before they are stored.
type Sanitizable interface {
	Sanitize(s *content.Sanitizer)
}

// BulkResult reports the outcome of one id in a bulk operation.
type BulkResult struct {
	ID    uuid.UUID `json:"id"`
	OK    bool      `json:"ok"`
	Error string    `json:"error,omitempty"`
}

func validateStatus(errs validation.Errors, set StatusSet, status string) validation.Errors {
	if set.Contains(status) {
		return errs
	}
	if errs == nil {
		errs = validation.Errors{}
	}
	errs["status"] = "Status must be one of: " + set.String()
	return errs
}

func deriveSlugIfEmpty(slug, title string) string {
	if slug = content.DeriveSlug(slug); slug != "" {
		return slug
	}
	return content.DeriveSlug(title)
}

func invalidStatus(set StatusSet) error {
	return domainerrors.Validation(map[string]string{"status": "Status must be one of: " + set.String()})
}
