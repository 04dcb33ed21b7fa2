package woocommerce

import (
	"strings"

	"github.com/jafarshop/storemigrate/internal/domain"
)

func productToCanonical(p Product) (domain.Canonical, error) {
	if p.ID == 0 && p.Name == "" && p.SKU == "" {
		return nil, ErrUnidentifiable
	}

	price, compareAt := splitPrice(p.RegularPrice, p.SalePrice, p.Price)

	product := domain.Product{
		Origin:         origin(p.ID),
		Name:           p.Name,
		Description:    p.Description,
		Slug:           p.Slug,
		Status:         productStatus(p.Status),
		Price:          price,
		CompareAtPrice: compareAt,
		SKU:            p.SKU,
		Barcode:        p.GlobalUniqueID,
		Weight:         p.Weight,
		Categories:     termNames(p.Categories),
		Tags:           termNames(p.Tags),
		Metafields:     metaToCanonical(p.MetaData),
	}

	for _, img := range p.Images {
		product.Images = append(product.Images, domain.Image{
			Src:      img.Src,
			Alt:      img.Alt,
			Position: img.Position,
		})
	}

	if len(p.Variations) == 0 {
		// Simple products keep stock on the product itself
		product.Variants = []domain.Variant{
			domain.DefaultVariant("", p.SKU, price, compareAt, intValue(p.StockQuantity)),
		}
	} else {
		for _, v := range p.Variations {
			product.Variants = append(product.Variants, variationToCanonical(v))
		}
	}

	title := metaLookup(p.MetaData, yoastTitleKey)
	desc := metaLookup(p.MetaData, yoastDescKey)
	if title != "" || desc != "" {
		product.SEO = &domain.SEO{Title: title, Description: desc}
	}

	return product, nil
}

func variationToCanonical(v Variation) domain.Variant {
	price, compareAt := splitPrice(v.RegularPrice, v.SalePrice, v.Price)

	variant := domain.Variant{
		OriginalID:        idString(v.ID),
		SKU:               v.SKU,
		Price:             price,
		CompareAtPrice:    compareAt,
		InventoryQuantity: intValue(v.StockQuantity),
	}

	values := make([]string, 0, len(v.Attributes))
	for _, attr := range v.Attributes {
		variant.Options = append(variant.Options, domain.VariantOption{Name: attr.Name, Value: attr.Option})
		values = append(values, attr.Option)
	}
	variant.Title = strings.Join(values, " / ")
	if len(variant.Options) == 0 {
		variant.Title = domain.DefaultVariantTitle
	}

	return variant
}

func productToNative(c domain.Product) Product {
	p := Product{
		Name:           c.Name,
		Slug:           c.Slug,
		Status:         productStatusToNative(c.Status),
		Description:    c.Description,
		SKU:            c.SKU,
		GlobalUniqueID: c.Barcode,
		Weight:         c.Weight,
		Categories:     termsOf(c.Categories),
		Tags:           termsOf(c.Tags),
		MetaData:       metaFromCanonical(c.Metafields),
	}
	p.RegularPrice, p.SalePrice = joinPrice(c.Price, c.CompareAtPrice)

	for _, img := range c.Images {
		p.Images = append(p.Images, Image{Src: img.Src, Alt: img.Alt, Position: img.Position})
	}

	if c.SEO != nil {
		if c.SEO.Title != "" {
			p.MetaData = append(p.MetaData, MetaData{Key: yoastTitleKey, Value: c.SEO.Title})
		}
		if c.SEO.Description != "" {
			p.MetaData = append(p.MetaData, MetaData{Key: yoastDescKey, Value: c.SEO.Description})
		}
	}

	if isSimple(c.Variants) {
		p.Type = "simple"
		p.ManageStock = true
		qty := 0
		if len(c.Variants) == 1 {
			qty = c.Variants[0].InventoryQuantity
			if p.SKU == "" {
				p.SKU = c.Variants[0].SKU
			}
		}
		p.StockQuantity = &qty
		return p
	}

	p.Type = "variable"
	p.Attributes = variantAttributes(c.Variants)
	for _, v := range c.Variants {
		qty := v.InventoryQuantity
		variation := Variation{
			SKU:           v.SKU,
			ManageStock:   true,
			StockQuantity: &qty,
		}
		variation.RegularPrice, variation.SalePrice = joinPrice(v.Price, v.CompareAtPrice)
		for _, opt := range v.Options {
			variation.Attributes = append(variation.Attributes, VariationAttribute{Name: opt.Name, Option: opt.Value})
		}
		p.Variations = append(p.Variations, variation)
	}

	return p
}

// variantAttributes collects the option axes in first-seen order
func variantAttributes(variants []domain.Variant) []Attribute {
	var attrs []Attribute
	index := make(map[string]int)
	for _, v := range variants {
		for _, opt := range v.Options {
			i, ok := index[opt.Name]
			if !ok {
				i = len(attrs)
				index[opt.Name] = i
				attrs = append(attrs, Attribute{
					Name:      opt.Name,
					Position:  i,
					Visible:   true,
					Variation: true,
				})
			}
			if !contains(attrs[i].Options, opt.Value) {
				attrs[i].Options = append(attrs[i].Options, opt.Value)
			}
		}
	}
	return attrs
}

func isSimple(variants []domain.Variant) bool {
	return len(variants) == 0 || (len(variants) == 1 && variants[0].IsDefault())
}

// splitPrice returns the selling price and, when on sale, the regular price
func splitPrice(regular, sale, current string) (price, compareAt string) {
	if sale != "" {
		return sale, regular
	}
	if regular != "" {
		return regular, ""
	}
	return current, ""
}

func joinPrice(price, compareAt string) (regular, sale string) {
	if compareAt != "" {
		return compareAt, price
	}
	return price, ""
}

func productStatus(status string) domain.ProductStatus {
	if status == "publish" {
		return domain.ProductStatusPublished
	}
	return domain.ProductStatusDraft
}

// productStatusToNative maps archived to draft; WooCommerce has no archive
func productStatusToNative(status domain.ProductStatus) string {
	switch status {
	case domain.ProductStatusPublished:
		return "publish"
	default:
		return "draft"
	}
}

func intValue(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
