package entities

import (
	"strings"

	"company-site.backend/pkg/content"
	"company-site.backend/pkg/utils"
	"company-site.backend/pkg/validation"
	"github.com/volatiletech/null/v8"
)

type Metric struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type Testimonial struct {
	Quote   string `json:"quote"`
	Author  string `json:"author"`
	Role    string `json:"role"`
	Company string `json:"company"`
	Image   string `json:"image"`
}

type Venture struct {
	Record
	Name          string        `json:"name" validate:"notblank,max=120"`
	Slug          string        `json:"slug" validate:"notblank,max=200"`
	Description   string        `json:"description" validate:"notblank"`
	Tagline       string        `json:"tagline" validate:"notblank,max=200"`
	Category      string        `json:"category"`
	Status        string        `json:"status"`
	FoundedYear   null.Int      `json:"foundedYear"`
	TeamSize      string        `json:"teamSize"`
	Growth        string        `json:"growth"`
	Website       string        `json:"website" validate:"omitempty,url"`
	Metrics       []Metric      `json:"metrics"`
	Technologies  []string      `json:"technologies"`
	Features      []string      `json:"features"`
	Achievements  []string      `json:"achievements"`
	Testimonials  []Testimonial `json:"testimonials"`
	Logo          string        `json:"logo"`
	FeaturedImage string        `json:"featuredImage"`
}

func (v *Venture) Kind() Kind          { return KindVenture }
func (v *Venture) StatusValue() string { return v.Status }
func (v *Venture) SlugValue() string   { return v.Slug }
func (v *Venture) IsPublic() bool      { return v.Status != VentureInactive }

func (v *Venture) Normalize() {
	v.Name = strings.TrimSpace(v.Name)
	v.Slug = deriveSlugIfEmpty(v.Slug, v.Name)
	v.Tagline = strings.TrimSpace(v.Tagline)
	v.Category = strings.TrimSpace(v.Category)
	v.Website = strings.TrimSpace(v.Website)
	v.Technologies = utils.CompactStrings(v.Technologies)
	v.Features = utils.CompactStrings(v.Features)
	v.Achievements = utils.CompactStrings(v.Achievements)
	v.Metrics = utils.Filter(v.Metrics, func(m Metric) bool {
		return strings.TrimSpace(m.Label) != "" || strings.TrimSpace(m.Value) != ""
	})
	v.Testimonials = utils.Filter(v.Testimonials, func(t Testimonial) bool {
		return strings.TrimSpace(t.Quote) != ""
	})
	if v.Status == "" {
		v.Status = VentureStatuses.Default()
	}
}

func (v *Venture) Validate() validation.Errors {
	errs := validateStatus(validation.Struct(v), VentureStatuses, v.Status)
	if v.FoundedYear.Valid {
		if msg := validation.Var(v.FoundedYear.Int, "gte=1900,lte=2100"); msg != "" {
			if errs == nil {
				errs = validation.Errors{}
			}
			errs["foundedYear"] = "Founded year must be between 1900 and 2100"
		}
	}
	return errs
}

func (v *Venture) SetStatus(status string) error {
	if !VentureStatuses.Contains(status) {
		return invalidStatus(VentureStatuses)
	}
	v.Status = status
	return nil
}

func (v *Venture) Sanitize(s *content.Sanitizer) {
	v.Description = s.RichText(v.Description)
}

func (v *Venture) PublicPath() string {
	return "/ventures/" + v.Slug
}
