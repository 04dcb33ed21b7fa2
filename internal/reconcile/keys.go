package reconcile

import (
	"strings"

	"github.com/jafarshop/storemigrate/internal/domain"
	"github.com/jafarshop/storemigrate/internal/normalize"
)

// NormalizeKey lower-cases and trims a match key. Internal runs of
// whitespace are kept.
func NormalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Keys returns the normalized primary and secondary match keys of c.
// Either may be empty, in which case that key family never matches.
func Keys(c domain.Canonical) (primary, secondary string) {
	switch r := c.(type) {
	case domain.Product:
		return NormalizeKey(productSKU(r)), NormalizeKey(r.Name)
	case domain.Customer:
		return NormalizeKey(r.Email), ""
	case domain.Order:
		return NormalizeKey(orderNumber(r)), orderSecondaryKey(r)
	case domain.Collection:
		return NormalizeKey(r.Slug), NormalizeKey(r.Name)
	case domain.Coupon:
		return NormalizeKey(r.Code), ""
	case domain.Page:
		return NormalizeKey(r.Slug), NormalizeKey(r.Title)
	case domain.BlogPost:
		return NormalizeKey(r.Slug), NormalizeKey(r.Title)
	default:
		return "", ""
	}
}

// productSKU is the product SKU, else the first variant SKU
func productSKU(p domain.Product) string {
	if strings.TrimSpace(p.SKU) != "" {
		return p.SKU
	}
	if len(p.Variants) > 0 {
		return p.Variants[0].SKU
	}
	return ""
}

// orderNumber is the order's own number without a leading "#". Migrated
// drafts already carry the source number here after normalization.
func orderNumber(o domain.Order) string {
	return strings.TrimPrefix(strings.TrimSpace(o.OrderNumber), "#")
}

// orderSecondaryKey combines email and total; both must be present
func orderSecondaryKey(o domain.Order) string {
	email := NormalizeKey(o.Email)
	if email == "" || !normalize.IsMoney(o.TotalPrice) {
		return ""
	}
	return email + "\x00" + normalize.CanonicalMoney(o.TotalPrice)
}

// index maps both key families of a record set to positions in it.
// Collisions overwrite.
type index struct {
	byPrimary   map[string]int
	bySecondary map[string]int
}

func newIndex(records []domain.Canonical) *index {
	idx := &index{
		byPrimary:   make(map[string]int, len(records)),
		bySecondary: make(map[string]int, len(records)),
	}
	for i, rec := range records {
		primary, secondary := Keys(rec)
		if primary != "" {
			idx.byPrimary[primary] = i
		}
		if secondary != "" {
			idx.bySecondary[secondary] = i
		}
	}
	return idx
}

// lookup tries the primary key, then the secondary key
func (idx *index) lookup(c domain.Canonical) (int, bool) {
	primary, secondary := Keys(c)
	if primary != "" {
		if i, ok := idx.byPrimary[primary]; ok {
			return i, true
		}
	}
	if secondary != "" {
		if i, ok := idx.bySecondary[secondary]; ok {
			return i, true
		}
	}
	return 0, false
}
