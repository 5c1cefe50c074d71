package content

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DefaultExcerptLength is the rune budget of generated excerpts.
const DefaultExcerptLength = 160

const blockElements = "p, div, br, li, h1, h2, h3, h4, h5, h6, blockquote, pre, figcaption, tr, td, th"

// PlainText extracts the visible text of an HTML fragment. Plain text passes through.
func PlainText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return strings.TrimSpace(html)
	}
	doc.Find("script, style").Remove()
	// keep words of adjacent blocks apart
	doc.Find(blockElements).AfterHtml(" ")
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// Excerpt returns at most max runes of the content's plain text, cut on a word
// boundary and suffixed with an ellipsis when shortened.
func Excerpt(html string, max int) string {
	if max <= 0 {
		max = DefaultExcerptLength
	}
	text := PlainText(html)
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}

	cut := string(runes[:max])
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:") + "…"
}
