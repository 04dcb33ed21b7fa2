package woocommerce

import (
	"github.com/jafarshop/storemigrate/internal/domain"
)

// categoryToCanonical maps a product category. Membership lives on the
// products in WooCommerce, so ProductIDs stay empty.
func categoryToCanonical(c Category) (domain.Canonical, error) {
	if c.ID == 0 && c.Name == "" && c.Slug == "" {
		return nil, ErrUnidentifiable
	}

	collection := domain.Collection{
		Origin:      origin(c.ID),
		Name:        c.Name,
		Description: c.Description,
		Slug:        c.Slug,
	}
	if c.Image != nil && c.Image.Src != "" {
		collection.Image = &domain.Image{Src: c.Image.Src, Alt: c.Image.Alt}
	}

	return collection, nil
}

func categoryToNative(c domain.Collection) Category {
	category := Category{
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
	}
	if c.Image != nil && c.Image.Src != "" {
		category.Image = &Image{Src: c.Image.Src, Alt: c.Image.Alt}
	}
	return category
}
