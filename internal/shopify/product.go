package shopify

import (
	"github.com/jafarshop/storemigrate/internal/domain"
)

func productToCanonical(p Product) (domain.Canonical, error) {
	if p.ID == "" && p.Title == "" && len(p.Variants) == 0 {
		return nil, ErrUnidentifiable
	}

	product := domain.Product{
		Origin:      origin(p.ID),
		Name:        p.Title,
		Description: p.DescriptionHTML,
		Slug:        p.Handle,
		Status:      productStatus(p.Status),
		Tags:        p.Tags,
		Metafields:  metafieldsToCanonical(p.Metafields),
		SEO:         seoToCanonical(p.SEO),
	}
	if p.ProductType != "" {
		product.Categories = []string{p.ProductType}
	}

	for i, img := range p.Images {
		product.Images = append(product.Images, domain.Image{Src: img.URL, Alt: img.AltText, Position: i})
	}

	switch {
	case len(p.Variants) == 0:
		product.Variants = []domain.Variant{domain.DefaultVariant("", "", "", "", 0)}
	case isDefaultVariant(p.Variants):
		v := p.Variants[0]
		product.SKU = v.SKU
		product.Variants = []domain.Variant{
			domain.DefaultVariant(v.ID, v.SKU, v.Price, v.CompareAtPrice, v.InventoryQuantity),
		}
	default:
		for _, v := range p.Variants {
			variant := domain.Variant{
				OriginalID:        v.ID,
				Title:             v.Title,
				SKU:               v.SKU,
				Price:             v.Price,
				CompareAtPrice:    v.CompareAtPrice,
				InventoryQuantity: v.InventoryQuantity,
			}
			for _, opt := range v.SelectedOptions {
				variant.Options = append(variant.Options, domain.VariantOption{Name: opt.Name, Value: opt.Value})
			}
			product.Variants = append(product.Variants, variant)
		}
	}

	if len(p.Variants) > 0 {
		first := p.Variants[0]
		product.Price = first.Price
		product.CompareAtPrice = first.CompareAtPrice
		product.Barcode = first.Barcode
	}

	return product, nil
}

// productToNative keeps the first category as product type and at most
// MaxVariants variants.
func productToNative(c domain.Product) Product {
	p := Product{
		Title:           c.Name,
		DescriptionHTML: c.Description,
		Handle:          c.Slug,
		Status:          productStatusToNative(c.Status),
		Tags:            c.Tags,
		Metafields:      metafieldsToNative(c.Metafields),
		SEO:             seoToNative(c.SEO),
	}
	if len(c.Categories) > 0 {
		p.ProductType = c.Categories[0]
	}

	for _, img := range c.Images {
		p.Images = append(p.Images, Image{URL: img.Src, AltText: img.Alt})
	}

	if len(c.Variants) == 0 || (len(c.Variants) == 1 && c.Variants[0].IsDefault()) {
		v := domain.DefaultVariant("", c.SKU, c.Price, c.CompareAtPrice, 0)
		if len(c.Variants) == 1 {
			v = c.Variants[0]
		}
		p.Variants = []Variant{{
			Title:             defaultOptionValue,
			SKU:               firstNonEmpty(v.SKU, c.SKU),
			Barcode:           c.Barcode,
			Price:             firstNonEmpty(v.Price, c.Price),
			CompareAtPrice:    firstNonEmpty(v.CompareAtPrice, c.CompareAtPrice),
			InventoryQuantity: v.InventoryQuantity,
			SelectedOptions:   []SelectedOption{{Name: defaultOptionName, Value: defaultOptionValue}},
		}}
		return p
	}

	variants := c.Variants
	if len(variants) > MaxVariants {
		variants = variants[:MaxVariants]
	}
	for i, v := range variants {
		variant := Variant{
			Title:             v.Title,
			SKU:               v.SKU,
			Price:             v.Price,
			CompareAtPrice:    v.CompareAtPrice,
			InventoryQuantity: v.InventoryQuantity,
		}
		if i == 0 {
			variant.Barcode = c.Barcode
		}
		for _, opt := range v.Options {
			variant.SelectedOptions = append(variant.SelectedOptions, SelectedOption{Name: opt.Name, Value: opt.Value})
		}
		p.Variants = append(p.Variants, variant)
	}

	return p
}

// isDefaultVariant reports whether variants is the single placeholder
// variant Shopify creates for products without options.
func isDefaultVariant(variants []Variant) bool {
	if len(variants) != 1 {
		return false
	}
	opts := variants[0].SelectedOptions
	if len(opts) == 0 {
		return true
	}
	return len(opts) == 1 && opts[0].Name == defaultOptionName && opts[0].Value == defaultOptionValue
}

func productStatus(status string) domain.ProductStatus {
	switch status {
	case StatusActive:
		return domain.ProductStatusPublished
	case StatusArchived:
		return domain.ProductStatusArchived
	default:
		return domain.ProductStatusDraft
	}
}

func productStatusToNative(status domain.ProductStatus) string {
	switch status {
	case domain.ProductStatusPublished:
		return StatusActive
	case domain.ProductStatusArchived:
		return StatusArchived
	default:
		return StatusDraft
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
