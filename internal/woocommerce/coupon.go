package woocommerce

import (
	"strings"

	"github.com/jafarshop/storemigrate/internal/domain"
)

// WooCommerce discount_type values
const (
	discountPercent      = "percent"
	discountFixedCart    = "fixed_cart"
	discountFixedProduct = "fixed_product"
)

func couponToCanonical(c Coupon) (domain.Canonical, error) {
	if c.ID == 0 && strings.TrimSpace(c.Code) == "" {
		return nil, ErrUnidentifiable
	}

	usageCount := c.UsageCount
	freeShipping := c.FreeShipping

	coupon := domain.Coupon{
		Origin:              origin(c.ID),
		Code:                c.Code,
		DiscountType:        discountType(c.DiscountType),
		Amount:              c.Amount,
		Description:         c.Description,
		ExpiryDate:          timePtr(c.DateExpiresGMT),
		UsageLimit:          c.UsageLimit,
		UsageCount:          &usageCount,
		FreeShipping:        &freeShipping,
		MinimumAmount:       c.MinimumAmount,
		ProductIDs:          formatIDs(c.ProductIDs),
		ExcludedProductIDs:  formatIDs(c.ExcludedProductIDs),
		CategoryIDs:         formatIDs(c.ProductCategories),
		ExcludedCategoryIDs: formatIDs(c.ExcludedProductCategories),
	}

	return coupon, nil
}

func couponToNative(c domain.Coupon) Coupon {
	coupon := Coupon{
		Code:                      c.Code,
		Amount:                    c.Amount,
		DiscountType:              discountTypeToNative(c.DiscountType),
		Description:               c.Description,
		UsageLimit:                c.UsageLimit,
		MinimumAmount:             c.MinimumAmount,
		ProductIDs:                parseIDs(c.ProductIDs),
		ExcludedProductIDs:        parseIDs(c.ExcludedProductIDs),
		ProductCategories:         parseIDs(c.CategoryIDs),
		ExcludedProductCategories: parseIDs(c.ExcludedCategoryIDs),
	}
	if c.ExpiryDate != nil {
		coupon.DateExpiresGMT = formatTime(*c.ExpiryDate)
	}
	if c.UsageCount != nil {
		coupon.UsageCount = *c.UsageCount
	}
	if c.FreeShipping != nil {
		coupon.FreeShipping = *c.FreeShipping
	}
	return coupon
}

func discountType(t string) domain.DiscountType {
	switch t {
	case discountPercent:
		return domain.DiscountTypePercentage
	case discountFixedProduct:
		return domain.DiscountTypeFixedProduct
	default:
		return domain.DiscountTypeFixedCart
	}
}

func discountTypeToNative(t domain.DiscountType) string {
	switch t {
	case domain.DiscountTypePercentage:
		return discountPercent
	case domain.DiscountTypeFixedProduct:
		return discountFixedProduct
	default:
		return discountFixedCart
	}
}
