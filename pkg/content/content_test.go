package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveSlug(t *testing.T) {
	cases := map[string]string{
		"My Awesome Post!":           "my-awesome-post",
		"  Hello   World  ":          "hello-world",
		"Go 1.24: what's new?":       "go-124-whats-new",
		"snake_case & dashes - fine": "snakecase-dashes-fine",
		"":                           "",
		"!!!":                        "",
		"Tabs\tand\nnewlines":        "tabs-and-newlines",
	}
	for in, want := range cases {
		assert.Equal(t, want, DeriveSlug(in), "title %q", in)
	}
}

func TestSlugField_FollowsTitleUntilEdited(t *testing.T) {
	f := NewSlugField("")
	f.TitleChanged("Hello World")
	assert.Equal(t, "hello-world", f.Value())
	assert.False(t, f.ManuallyEdited())

	f.Edit("custom")
	f.TitleChanged("Another Title")
	assert.Equal(t, "custom", f.Value())

	// Clearing the slug by hand must not resume derivation.
	f.Edit("")
	f.TitleChanged("Third Title")
	assert.Equal(t, "", f.Value())
	assert.True(t, f.ManuallyEdited())

	f.Reset("Third Title")
	assert.Equal(t, "third-title", f.Value())
	assert.False(t, f.ManuallyEdited())
}

func TestSlugField_ExistingSlugIsManual(t *testing.T) {
	f := NewSlugField("kept")
	f.TitleChanged("New Title")
	assert.Equal(t, "kept", f.Value())
}

func TestReadTime(t *testing.T) {
	assert.Equal(t, "1 min read", ReadTime(""))
	assert.Equal(t, "1 min read", ReadTime("   "))
	assert.Equal(t, "1 min read", ReadTime(strings.Repeat("word ", 200)))
	assert.Equal(t, "2 min read", ReadTime(strings.Repeat("word ", 201)))
	assert.Equal(t, "2 min read", ReadTime(strings.Repeat("word ", 350)))
	assert.Equal(t, 350, WordCount("  "+strings.Repeat("w\n", 350)+"  "))
}

func TestExcerpt(t *testing.T) {
	html := "<h1>Title</h1><p>Some <strong>bold</strong> text.</p><script>alert(1)</script>"
	assert.Equal(t, "Title Some bold text.", PlainText(html))
	assert.Equal(t, "Title Some bold text.", Excerpt(html, 100))

	long := "<p>" + strings.Repeat("alpha beta ", 40) + "</p>"
	ex := Excerpt(long, 30)
	assert.True(t, strings.HasSuffix(ex, "…"))
	assert.LessOrEqual(t, len([]rune(ex)), 31)
	assert.NotContains(t, ex, "  ")
}

func TestSanitizer(t *testing.T) {
	s := NewSanitizer()

	rich := s.RichText(`<p onclick="x()">Hi <a href="javascript:alert(1)">bad</a> <a href="https://example.com">ok</a></p><script>alert(1)</script>`)
	assert.NotContains(t, rich, "onclick")
	assert.NotContains(t, rich, "javascript:")
	assert.NotContains(t, rich, "<script>")
	assert.Contains(t, rich, `href="https://example.com"`)

	assert.Equal(t, "Hello I'm here & there", s.PlainText("<b>Hello</b> I'm here & there"))
}
