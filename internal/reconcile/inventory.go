package reconcile

import (
	"fmt"

	"github.com/jafarshop/storemigrate/internal/domain"
)

// InventoryReport lists stock divergences between matched products
type InventoryReport struct {
	Deltas          []domain.InventoryDifference `json:"deltas" yaml:"deltas"`
	MatchedProducts int                          `json:"matchedProducts" yaml:"matchedProducts"`
	Warnings        []string                     `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// FindInventoryDeltas matches products like a gap report, then pairs their
// variants and emits one delta per pair whose quantities differ.
func FindInventoryDeltas(source, destination []domain.Product) *InventoryReport {
	dst := make([]domain.Canonical, len(destination))
	for i, p := range destination {
		dst[i] = p
	}
	idx := newIndex(dst)

	report := &InventoryReport{Deltas: []domain.InventoryDifference{}}
	for _, sp := range source {
		i, ok := idx.lookup(sp)
		if !ok {
			continue
		}
		dp := destination[i]
		report.MatchedProducts++

		pairs := pairVariants(sp, dp)
		for _, pair := range pairs {
			diff := pair.source.InventoryQuantity - pair.destination.InventoryQuantity
			if diff == 0 {
				continue
			}
			report.Deltas = append(report.Deltas, domain.InventoryDifference{
				ProductName:          sp.Name,
				SKU:                  firstSKU(pair.source.SKU, pair.destination.SKU, sp.SKU),
				VariantTitle:         pair.destination.Title,
				SourceProductID:      sp.OriginalID,
				SourceVariantID:      pair.source.OriginalID,
				DestinationProductID: dp.OriginalID,
				DestinationVariantID: pair.destination.OriginalID,
				SourceQuantity:       pair.source.InventoryQuantity,
				DestinationQuantity:  pair.destination.InventoryQuantity,
				Difference:           diff,
			})
		}

		if len(pairs) < len(sp.Variants) {
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("product %q: %d of %d variants have no destination counterpart", sp.Name, len(sp.Variants)-len(pairs), len(sp.Variants)))
		}
	}

	return report
}

type variantPair struct {
	source      domain.Variant
	destination domain.Variant
}

// pairVariants matches the variants of two matched products. A scalar
// stock product (one default variant) is compared against the destination
// variant with its SKU, else the first one. Other variants pair by SKU,
// then by title. A destination variant is paired at most once.
func pairVariants(sp, dp domain.Product) []variantPair {
	if len(sp.Variants) == 0 || len(dp.Variants) == 0 {
		return nil
	}

	if len(sp.Variants) == 1 && sp.Variants[0].IsDefault() {
		sv := sp.Variants[0]
		if i, ok := variantBySKU(dp.Variants, firstSKU(sv.SKU, sp.SKU), nil); ok {
			return []variantPair{{source: sv, destination: dp.Variants[i]}}
		}
		return []variantPair{{source: sv, destination: dp.Variants[0]}}
	}

	var pairs []variantPair
	paired := make(map[int]bool, len(dp.Variants))
	for _, sv := range sp.Variants {
		i, ok := variantBySKU(dp.Variants, sv.SKU, paired)
		if !ok {
			i, ok = variantByTitle(dp.Variants, sv.Title, paired)
		}
		if !ok {
			continue
		}
		paired[i] = true
		pairs = append(pairs, variantPair{source: sv, destination: dp.Variants[i]})
	}
	return pairs
}

// variantBySKU returns the position of the first variant with sku that is
// not in skip
func variantBySKU(variants []domain.Variant, sku string, skip map[int]bool) (int, bool) {
	key := NormalizeKey(sku)
	if key == "" {
		return 0, false
	}
	for i, v := range variants {
		if !skip[i] && NormalizeKey(v.SKU) == key {
			return i, true
		}
	}
	return 0, false
}

func variantByTitle(variants []domain.Variant, title string, skip map[int]bool) (int, bool) {
	key := NormalizeKey(title)
	if key == "" {
		return 0, false
	}
	for i, v := range variants {
		if !skip[i] && NormalizeKey(v.Title) == key {
			return i, true
		}
	}
	return 0, false
}

func firstSKU(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
