package entities

import (
	"strings"
	"time"

	"company-site.backend/pkg/content"
	"company-site.backend/pkg/utils"
	"company-site.backend/pkg/validation"
	"github.com/volatiletech/null/v8"
)

type Author struct {
	Name  string `json:"name" validate:"notblank,max=120"`
	Role  string `json:"role"`
	Image string `json:"image"`
}

type BlogPost struct {
	Record
	Title         string    `json:"title" validate:"notblank,max=200"`
	Slug          string    `json:"slug" validate:"notblank,max=200"`
	Content       string    `json:"content" validate:"notblank"`
	Excerpt       string    `json:"excerpt"`
	Author        Author    `json:"author"`
	Category      string    `json:"category"`
	Tags          []string  `json:"tags"`
	Status        string    `json:"status"`
	FeaturedImage string    `json:"featuredImage"`
	PublishedAt   null.Time `json:"publishedAt"`
	ReadTime      string    `json:"readTime"`
}

func (p *BlogPost) Kind() Kind          { return KindBlogPost }
func (p *BlogPost) StatusValue() string { return p.Status }
func (p *BlogPost) SlugValue() string   { return p.Slug }

func (p *BlogPost) Normalize() {
	p.Title = strings.TrimSpace(p.Title)
	p.Slug = deriveSlugIfEmpty(p.Slug, p.Title)
	p.Excerpt = strings.TrimSpace(p.Excerpt)
	p.Author.Name = strings.TrimSpace(p.Author.Name)
	p.Author.Role = strings.TrimSpace(p.Author.Role)
	p.Category = strings.TrimSpace(p.Category)
	p.Tags = utils.CompactStrings(p.Tags)
	if p.Status == "" {
		p.Status = BlogPostStatuses.Default()
	}
	if p.Excerpt == "" && strings.TrimSpace(p.Content) != "" {
		p.Excerpt = content.Excerpt(p.Content, content.DefaultExcerptLength)
	}
	p.ReadTime = content.ReadTime(p.Content)
	if p.Status == BlogPostPublished && !p.PublishedAt.Valid {
		p.PublishedAt = null.TimeFrom(time.Now().UTC())
	}
}

func (p *BlogPost) Validate() validation.Errors {
	errs := validation.Struct(p)
	errs = validateStatus(errs, BlogPostStatuses, p.Status)
	if p.Status == BlogPostScheduled && !p.PublishedAt.Valid {
		if errs == nil {
			errs = validation.Errors{}
		}
		errs["publishedAt"] = "Scheduled posts need a publish date"
	}
	return errs
}

func (p *BlogPost) SetStatus(status string) error {
	if !BlogPostStatuses.Contains(status) {
		return invalidStatus(BlogPostStatuses)
	}
	p.Status = status
	if status == BlogPostPublished && !p.PublishedAt.Valid {
		p.PublishedAt = null.TimeFrom(time.Now().UTC())
	}
	return nil
}

func (p *BlogPost) IsPublic() bool { return p.Status == BlogPostPublished }

// DueForPublishing reports whether a scheduled post has reached its publish time.
func (p *BlogPost) DueForPublishing(now time.Time) bool {
	return p.Status == BlogPostScheduled && p.PublishedAt.Valid && !p.PublishedAt.Time.After(now)
}

func (p *BlogPost) Sanitize(s *content.Sanitizer) {
	p.Content = s.RichText(p.Content)
	p.Excerpt = s.PlainText(p.Excerpt)
}

// PublicPath is the site path whose cached rendering shows this post.
func (p *BlogPost) PublicPath() string {
	return "/blog/" + p.Slug
}
