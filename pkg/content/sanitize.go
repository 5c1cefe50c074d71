package content

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer cleans user and editor supplied HTML before it is stored.
type Sanitizer struct {
	rich   *bluemonday.Policy
	strict *bluemonday.Policy
}

// NewSanitizer builds the rich-text policy used for blog and job bodies and the
// strict policy used for contact form text.
func NewSanitizer() *Sanitizer {
	rich := bluemonday.UGCPolicy()
	rich.AllowElements("figure", "figcaption")
	rich.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code", "pre", "span")
	rich.RequireNoFollowOnLinks(true)
	rich.AllowURLSchemes("http", "https", "mailto")

	return &Sanitizer{
		rich:   rich,
		strict: bluemonday.StrictPolicy(),
	}
}

// RichText keeps formatting, links and images and drops scripts and handlers.
func (s *Sanitizer) RichText(markup string) string {
	return strings.TrimSpace(s.rich.Sanitize(markup))
}

// PlainText strips all markup and returns unescaped text; renderers escape it on output.
func (s *Sanitizer) PlainText(text string) string {
	return strings.TrimSpace(html.UnescapeString(s.strict.Sanitize(text)))
}
