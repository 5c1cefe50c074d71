// Package content holds the text derivations shared by the admin forms and the API:
// slugs, read time, excerpts and HTML sanitizing.
package content

import (
	"regexp"
	"strings"
)

var (
	slugStrip      = regexp.MustCompile(`[^a-z0-9\s]`)
	slugWhitespace = regexp.MustCompile(`\s+`)
)

// DeriveSlug lowercases title, strips every character outside [a-z0-9\s] and
// collapses whitespace runs into single hyphens.
//
//	DeriveSlug("My Awesome Post!") == "my-awesome-post"
func DeriveSlug(title string) string {
	s := strings.ToLower(title)
	s = slugStrip.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	return slugWhitespace.ReplaceAllString(s, "-")
}

// SlugField tracks a slug that follows its title until someone edits it by hand.
// The manual flag is explicit, so clearing the slug does not resume derivation.
type SlugField struct {
	value          string
	manuallyEdited bool
}

// NewSlugField seeds the field. An existing slug (edit form) counts as manually set.
func NewSlugField(existing string) SlugField {
	return SlugField{value: existing, manuallyEdited: existing != ""}
}

// TitleChanged re-derives the slug unless it was edited by hand.
func (f *SlugField) TitleChanged(title string) {
	if f.manuallyEdited {
		return
	}
	f.value = DeriveSlug(title)
}

// Edit records a direct edit of the slug, including clearing it.
func (f *SlugField) Edit(v string) {
	f.value = v
	f.manuallyEdited = true
}

// Reset hands the slug back to title derivation.
func (f *SlugField) Reset(title string) {
	f.manuallyEdited = false
	f.TitleChanged(title)
}

func (f SlugField) Value() string        { return f.value }
func (f SlugField) ManuallyEdited() bool { return f.manuallyEdited }
