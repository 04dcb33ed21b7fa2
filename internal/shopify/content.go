package shopify

import (
	"strings"

	"github.com/jafarshop/storemigrate/internal/domain"
)

func contentStatus(published bool) domain.ContentStatus {
	if published {
		return domain.ContentStatusPublished
	}
	return domain.ContentStatusDraft
}

func pageToCanonical(p Page) (domain.Canonical, error) {
	if p.ID == "" && p.Handle == "" && strings.TrimSpace(p.Title) == "" {
		return nil, ErrUnidentifiable
	}
	return domain.Page{
		Origin:    origin(p.ID),
		Title:     p.Title,
		Content:   p.Body,
		Slug:      p.Handle,
		Status:    contentStatus(p.IsPublished),
		CreatedAt: timeOf(p.CreatedAt),
		UpdatedAt: timeOf(p.UpdatedAt),
	}, nil
}

func pageToNative(c domain.Page) Page {
	return Page{
		Title:       c.Title,
		Handle:      c.Slug,
		Body:        c.Content,
		IsPublished: c.Status == domain.ContentStatusPublished,
		CreatedAt:   formatTime(c.CreatedAt),
		UpdatedAt:   formatTime(c.UpdatedAt),
	}
}

func articleToCanonical(a Article) (domain.Canonical, error) {
	if a.ID == "" && a.Handle == "" && strings.TrimSpace(a.Title) == "" {
		return nil, ErrUnidentifiable
	}

	post := domain.BlogPost{
		Origin:      origin(a.ID),
		Title:       a.Title,
		Content:     a.Body,
		Excerpt:     a.Summary,
		Slug:        a.Handle,
		Status:      contentStatus(a.IsPublished),
		Author:      a.Author,
		Tags:        a.Tags,
		PublishedAt: timePtr(a.PublishedAt),
		CreatedAt:   timeOf(a.CreatedAt),
		UpdatedAt:   timeOf(a.UpdatedAt),
	}
	// The blog an article lives in is the closest thing to a category
	if a.BlogTitle != "" {
		post.Categories = []string{a.BlogTitle}
	}
	return post, nil
}

func articleToNative(c domain.BlogPost) Article {
	a := Article{
		Title:       c.Title,
		Handle:      c.Slug,
		Body:        c.Content,
		Summary:     c.Excerpt,
		Author:      c.Author,
		Tags:        c.Tags,
		IsPublished: c.Status == domain.ContentStatusPublished,
		CreatedAt:   formatTime(c.CreatedAt),
		UpdatedAt:   formatTime(c.UpdatedAt),
	}
	if c.PublishedAt != nil {
		a.PublishedAt = formatTime(*c.PublishedAt)
	}
	if len(c.Categories) > 0 {
		a.BlogTitle = c.Categories[0]
	}
	return a
}
