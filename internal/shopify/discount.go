package shopify

import (
	"strings"

	"github.com/jafarshop/storemigrate/internal/domain"
	"github.com/jafarshop/storemigrate/internal/normalize"
)

func discountToCanonical(d DiscountCode) (domain.Canonical, error) {
	if d.ID == "" && strings.TrimSpace(d.Code) == "" {
		return nil, ErrUnidentifiable
	}

	usageCount := d.UsageCount
	freeShipping := d.FreeShipping

	coupon := domain.Coupon{
		Origin:        origin(d.ID),
		Code:          d.Code,
		DiscountType:  domain.DiscountTypeFixedCart,
		Amount:        d.Value,
		ExpiryDate:    timePtr(d.EndsAt),
		UsageLimit:    d.UsageLimit,
		UsageCount:    &usageCount,
		FreeShipping:  &freeShipping,
		MinimumAmount: d.MinimumSubtotal,
		ProductIDs:    d.ProductIDs,
		CategoryIDs:   d.CollectionIDs,
	}
	if d.Title != d.Code {
		coupon.Description = d.Title
	}

	switch {
	case d.ValueType == ValuePercentage:
		coupon.DiscountType = domain.DiscountTypePercentage
		coupon.Amount = normalize.FractionToPercent(d.Value)
	case d.AppliesOnEachItem:
		coupon.DiscountType = domain.DiscountTypeFixedProduct
	}

	return coupon, nil
}

// discountToNative drops exclusion lists; Shopify code discounts only
// select what they apply to.
func discountToNative(c domain.Coupon) DiscountCode {
	d := DiscountCode{
		Title:           firstNonEmpty(c.Description, c.Code),
		Code:            c.Code,
		ValueType:       ValueFixedAmount,
		Value:           c.Amount,
		UsageLimit:      c.UsageLimit,
		MinimumSubtotal: c.MinimumAmount,
		ProductIDs:      c.ProductIDs,
		CollectionIDs:   c.CategoryIDs,
	}

	switch c.DiscountType {
	case domain.DiscountTypePercentage:
		d.ValueType = ValuePercentage
		d.Value = normalize.PercentToFraction(c.Amount)
	case domain.DiscountTypeFixedProduct:
		d.AppliesOnEachItem = true
	}

	if c.ExpiryDate != nil {
		d.EndsAt = formatTime(*c.ExpiryDate)
	}
	if c.UsageCount != nil {
		d.UsageCount = *c.UsageCount
	}
	if c.FreeShipping != nil {
		d.FreeShipping = *c.FreeShipping
	}
	return d
}
