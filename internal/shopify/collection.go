package shopify

import (
	"github.com/jafarshop/storemigrate/internal/domain"
)

func collectionToCanonical(c Collection) (domain.Canonical, error) {
	if c.ID == "" && c.Title == "" && c.Handle == "" {
		return nil, ErrUnidentifiable
	}

	collection := domain.Collection{
		Origin:      origin(c.ID),
		Name:        c.Title,
		Description: c.DescriptionHTML,
		Slug:        c.Handle,
		ProductIDs:  c.ProductIDs,
		SEO:         seoToCanonical(c.SEO),
	}
	if c.Image != nil && c.Image.URL != "" {
		collection.Image = &domain.Image{Src: c.Image.URL, Alt: c.Image.AltText}
	}
	return collection, nil
}

func collectionToNative(c domain.Collection) Collection {
	collection := Collection{
		Title:           c.Name,
		Handle:          c.Slug,
		DescriptionHTML: c.Description,
		SEO:             seoToNative(c.SEO),
	}
	for _, id := range c.ProductIDs {
		if IsGID(id, "Product") {
			collection.ProductIDs = append(collection.ProductIDs, id)
		}
	}
	if c.Image != nil && c.Image.Src != "" {
		collection.Image = &Image{URL: c.Image.Src, AltText: c.Image.Alt}
	}
	return collection
}
