package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Publishable resources are rendered on a public page at PublicPath.
type Publishable interface {
	Resource
	PublicPath() string
}

// SearchDocument is the indexed projection of a public record.
type SearchDocument struct {
	ID          string     `json:"id"`
	RecordID    uuid.UUID  `json:"recordId"`
	Kind        Kind       `json:"kind"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Summary     string     `json:"summary"`
	Body        string     `json:"body"`
	Tags        []string   `json:"tags"`
	Path        string     `json:"path"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
}

// SearchHit is one result of a content search.
type SearchHit struct {
	Kind    Kind      `json:"kind"`
	ID      uuid.UUID `json:"id"`
	Slug    string    `json:"slug"`
	Title   string    `json:"title"`
	Summary string    `json:"summary"`
	Path    string    `json:"path"`
	Score   float64   `json:"score"`
}

// SearchDocumentID is the index id of a record; ids are unique across kinds.
func SearchDocumentID(kind Kind, id uuid.UUID) string {
	return string(kind) + ":" + id.String()
}

// NewSearchDocument projects r for the search index. The boolean is false for
// kinds that are not searchable.
func NewSearchDocument(r Resource) (SearchDocument, bool) {
	doc := SearchDocument{
		ID:       SearchDocumentID(r.Kind(), r.Base().ID),
		RecordID: r.Base().ID,
		Kind:     r.Kind(),
	}
	switch v := r.(type) {
	case *BlogPost:
		doc.Slug = v.Slug
		doc.Title = v.Title
		doc.Summary = v.Excerpt
		doc.Body = v.Content
		doc.Tags = append(append([]string{}, v.Tags...), v.Category)
		doc.Path = v.PublicPath()
		if v.PublishedAt.Valid {
			t := v.PublishedAt.Time
			doc.PublishedAt = &t
		}
	case *Job:
		doc.Slug = v.Slug
		doc.Title = v.Title
		doc.Summary = v.ShortDescription
		doc.Body = v.Description
		doc.Tags = append(append([]string{}, v.Technologies...), v.Department, v.Location)
		doc.Path = v.PublicPath()
	case *Venture:
		doc.Slug = v.Slug
		doc.Title = v.Name
		doc.Summary = v.Tagline
		doc.Body = v.Description
		doc.Tags = append(append([]string{}, v.Technologies...), v.Category)
		doc.Path = v.PublicPath()
	default:
		return SearchDocument{}, false
	}
	doc.Tags = nonBlank(doc.Tags)
	return doc, true
}

func nonBlank(in []string) []string {
	out := in[:0]
	for _, s := range in {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}
