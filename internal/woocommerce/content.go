package woocommerce

import (
	"strings"

	"github.com/jafarshop/storemigrate/internal/domain"
)

const (
	taxonomyTag      = "post_tag"
	taxonomyCategory = "category"
)

func pageToCanonical(p Page) (domain.Canonical, error) {
	if p.ID == 0 && p.Slug == "" && strings.TrimSpace(p.Title.Text()) == "" {
		return nil, ErrUnidentifiable
	}

	page := domain.Page{
		Origin:  origin(p.ID),
		Title:   p.Title.Text(),
		Content: p.Content.Text(),
		Slug:    p.Slug,
		Status:  readStatus(p.Status),
	}
	if t, ok := parseTime(p.DateGMT); ok {
		page.CreatedAt = t
	}
	if t, ok := parseTime(p.ModifiedGMT); ok {
		page.UpdatedAt = t
	}

	return page, nil
}

func pageToNative(c domain.Page) Page {
	return Page{
		Slug:        c.Slug,
		Status:      writeStatus(c.Status),
		Title:       renderedOf(c.Title),
		Content:     renderedOf(c.Content),
		DateGMT:     formatTime(c.CreatedAt),
		ModifiedGMT: formatTime(c.UpdatedAt),
	}
}

func postToCanonical(p Post) (domain.Canonical, error) {
	if p.ID == 0 && p.Slug == "" && strings.TrimSpace(p.Title.Text()) == "" {
		return nil, ErrUnidentifiable
	}

	post := domain.BlogPost{
		Origin:     origin(p.ID),
		Title:      p.Title.Text(),
		Content:    p.Content.Text(),
		Excerpt:    p.Excerpt.Text(),
		Slug:       p.Slug,
		Status:     readStatus(p.Status),
		Author:     p.AuthorName,
		Tags:       p.TagNames,
		Categories: p.CategoryNames,
	}

	if p.Embedded != nil {
		if len(p.Embedded.Author) > 0 && p.Embedded.Author[0].Name != "" {
			post.Author = p.Embedded.Author[0].Name
		}
		if tags := embeddedTerms(p.Embedded, taxonomyTag); len(tags) > 0 {
			post.Tags = tags
		}
		if cats := embeddedTerms(p.Embedded, taxonomyCategory); len(cats) > 0 {
			post.Categories = cats
		}
	}

	if t, ok := parseTime(p.DateGMT); ok {
		post.CreatedAt = t
		if post.Status == domain.ContentStatusPublished {
			published := t
			post.PublishedAt = &published
		}
	}
	if t, ok := parseTime(p.ModifiedGMT); ok {
		post.UpdatedAt = t
	}

	return post, nil
}

// postToNative carries tags, categories and author by name; the client
// resolves them to ids before the write.
func postToNative(c domain.BlogPost) Post {
	post := Post{
		Slug:          c.Slug,
		Status:        writeStatus(c.Status),
		Title:         renderedOf(c.Title),
		Content:       renderedOf(c.Content),
		Excerpt:       renderedOf(c.Excerpt),
		DateGMT:       formatTime(c.CreatedAt),
		ModifiedGMT:   formatTime(c.UpdatedAt),
		TagNames:      c.Tags,
		CategoryNames: c.Categories,
		AuthorName:    c.Author,
	}
	if c.PublishedAt != nil {
		post.DateGMT = formatTime(*c.PublishedAt)
	}
	return post
}

func embeddedTerms(e *Embedded, taxonomy string) []string {
	var names []string
	for _, group := range e.Terms {
		for _, term := range group {
			if term.Taxonomy == taxonomy && term.Name != "" {
				names = append(names, term.Name)
			}
		}
	}
	return names
}
