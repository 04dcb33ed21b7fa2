package shopify

import (
	"fmt"

	"github.com/jafarshop/storemigrate/internal/domain"
	"github.com/jafarshop/storemigrate/internal/normalize"
)

const shortcodeWarning = "content contains shortcodes that will not render on the destination platform"

// LossyConversions lists what a Shopify write of c cannot carry
func (Normalizer) LossyConversions(c domain.Canonical) []string {
	var warnings []string

	switch v := c.(type) {
	case domain.Product:
		if len(v.Categories) > 1 {
			warnings = append(warnings, fmt.Sprintf("product has %d categories, only %q will be kept as product type", len(v.Categories), v.Categories[0]))
		}
		if len(v.Variants) > MaxVariants {
			warnings = append(warnings, fmt.Sprintf("product has %d variants, only %d will be migrated", len(v.Variants), MaxVariants))
		}
		if v.Weight != "" {
			warnings = append(warnings, "product weight is not migrated")
		}
		if hasShortcodes(v.Description) {
			warnings = append(warnings, shortcodeWarning)
		}
	case domain.Order:
		warnings = append(warnings, "order will be created as a draft order")
		custom := 0
		for _, li := range v.LineItems {
			if !IsGID(li.VariantID, "ProductVariant") {
				custom++
			}
		}
		if custom > 0 {
			warnings = append(warnings, fmt.Sprintf("%d line items have no Shopify variant and will be created as custom items", custom))
		}
	case domain.Collection:
		if foreign := countForeign(v.ProductIDs, "Product"); foreign > 0 {
			warnings = append(warnings, fmt.Sprintf("%d product assignments reference another platform and will be dropped", foreign))
		}
	case domain.Coupon:
		limits := len(v.ProductIDs) + len(v.CategoryIDs)
		if foreign := countForeign(v.ProductIDs, "Product") + countForeign(v.CategoryIDs, "Collection"); foreign == limits && limits > 0 {
			warnings = append(warnings, fmt.Sprintf("coupon is limited to %d products or categories from another platform; the discount will apply to all items", limits))
		} else if foreign > 0 {
			warnings = append(warnings, fmt.Sprintf("%d coupon product or category limits reference another platform and will be dropped", foreign))
		}
		if len(v.ExcludedProductIDs) > 0 || len(v.ExcludedCategoryIDs) > 0 {
			warnings = append(warnings, "coupon exclusions are not supported and will be dropped")
		}
		if v.FreeShipping != nil && *v.FreeShipping && !normalize.IsZeroMoney(v.Amount) {
			warnings = append(warnings, "free shipping cannot be combined with an amount discount and will be dropped")
		}
	case domain.Page:
		if hasShortcodes(v.Content) {
			warnings = append(warnings, shortcodeWarning)
		}
	case domain.BlogPost:
		if hasShortcodes(v.Content) {
			warnings = append(warnings, shortcodeWarning)
		}
		if len(v.Categories) > 1 {
			warnings = append(warnings, fmt.Sprintf("post has %d categories, only the blog %q will be used", len(v.Categories), v.Categories[0]))
		}
	}

	return warnings
}

// countForeign counts ids that are not Shopify GIDs of kind
func countForeign(ids []string, kind string) int {
	n := 0
	for _, id := range ids {
		if !IsGID(id, kind) {
			n++
		}
	}
	return n
}
