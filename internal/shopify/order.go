package shopify

import (
	"strings"

	"github.com/jafarshop/storemigrate/internal/domain"
	"github.com/jafarshop/storemigrate/internal/normalize"
)

const (
	shippingLineTitle   = "Shipping"
	discountFixedAmount = "FIXED_AMOUNT"
	discountCodeSep     = ", "
)

// orderRef resolves the number of the order a Shopify order was migrated
// from: the dedicated attribute first, then the note header. ok is false
// for orders that were not migrated.
func orderRef(attrs []Attribute, note string) (normalize.OrderRef, bool) {
	ref, fromNote := normalize.ParseOrderNote(note)
	if n := attributeValue(attrs, normalize.AttrSourceOrderNumber); n != "" {
		ref.Number = n
		return ref, true
	}
	return ref, fromNote
}

func orderToCanonical(o Order) (domain.Canonical, error) {
	if o.ID == "" && o.Name == "" && len(o.LineItems) == 0 {
		return nil, ErrUnidentifiable
	}

	order := domain.Order{
		Origin:            origin(o.ID),
		OrderNumber:       strings.TrimPrefix(o.Name, "#"),
		Email:             o.Email,
		LineItems:         lineItemsToCanonical(o.LineItems),
		ShippingAddress:   optionalAddress(o.ShippingAddress),
		BillingAddress:    optionalAddress(o.BillingAddress),
		FinancialStatus:   financialStatus(o.FinancialStatus),
		FulfillmentStatus: fulfillmentStatus(o.FulfillmentStatus),
		Currency:          o.CurrencyCode,
		TotalPrice:        normalize.CanonicalMoney(o.TotalPrice),
		SubtotalPrice:     normalize.CanonicalMoney(o.SubtotalPrice),
		TotalTax:          normalize.CanonicalMoney(o.TotalTax),
		TotalShipping:     normalize.CanonicalMoney(o.TotalShipping),
		TotalDiscounts:    normalize.CanonicalMoney(o.TotalDiscounts),
		DiscountCodes:     o.DiscountCodes,
		Tags:              o.Tags,
		Notes:             o.Note,
		CreatedAt:         timeOf(o.CreatedAt),
	}

	if ref, ok := orderRef(o.CustomAttributes, o.Note); ok {
		order.OrderNumber = ref.Number
		order.Notes = ref.Notes
		if !ref.OriginalDate.IsZero() {
			order.CreatedAt = ref.OriginalDate
		}
	}

	return order, nil
}

// draftOrderToCanonical reads a draft order back. Statuses come from the
// attributes written by orderToNative; a draft without them is pending.
func draftOrderToCanonical(d DraftOrder) (domain.Canonical, error) {
	if d.ID == "" && d.Name == "" && len(d.LineItems) == 0 {
		return nil, ErrUnidentifiable
	}

	order := domain.Order{
		Origin:            origin(d.ID),
		OrderNumber:       strings.TrimPrefix(d.Name, "#"),
		Email:             d.Email,
		LineItems:         lineItemsToCanonical(d.LineItems),
		ShippingAddress:   optionalAddress(d.ShippingAddress),
		BillingAddress:    optionalAddress(d.BillingAddress),
		FinancialStatus:   domain.FinancialStatusPending,
		FulfillmentStatus: domain.FulfillmentStatusUnfulfilled,
		Currency:          d.CurrencyCode,
		TotalPrice:        normalize.CanonicalMoney(d.TotalPrice),
		SubtotalPrice:     normalize.CanonicalMoney(d.SubtotalPrice),
		TotalTax:          normalize.CanonicalMoney(d.TotalTax),
		TotalDiscounts:    normalize.CanonicalMoney(d.TotalDiscounts),
		Tags:              d.Tags,
		Notes:             d.Note,
		CreatedAt:         timeOf(d.CreatedAt),
	}

	if fs := domain.FinancialStatus(d.Attribute(normalize.AttrFinancialStatus)); fs.IsValid() {
		order.FinancialStatus = fs
	}
	if fs := domain.FulfillmentStatus(d.Attribute(normalize.AttrFulfillmentStatus)); fs.IsValid() {
		order.FulfillmentStatus = fs
	}

	if d.ShippingLine != nil {
		order.TotalShipping = normalize.CanonicalMoney(d.ShippingLine.Price)
	}
	if d.AppliedDiscount != nil {
		if d.AppliedDiscount.Title != "" {
			order.DiscountCodes = strings.Split(d.AppliedDiscount.Title, discountCodeSep)
		}
		if order.TotalDiscounts == "" && d.AppliedDiscount.ValueType == discountFixedAmount {
			order.TotalDiscounts = normalize.CanonicalMoney(d.AppliedDiscount.Value)
		}
	}

	if ref, ok := orderRef(d.CustomAttributes, d.Note); ok {
		order.OrderNumber = ref.Number
		order.Notes = ref.Notes
		if !ref.OriginalDate.IsZero() {
			order.CreatedAt = ref.OriginalDate
		}
	}

	return order, nil
}

// orderToNative builds a draft order carrying the source reference in both
// the note and the custom attributes.
func orderToNative(c domain.Order) DraftOrder {
	d := DraftOrder{
		Email:          c.Email,
		Note:           normalize.FormatOrderNote(c.Platform, c.OrderNumber, c.CreatedAt, c.Notes),
		Tags:           c.Tags,
		CurrencyCode:   c.Currency,
		TotalPrice:     c.TotalPrice,
		SubtotalPrice:  c.SubtotalPrice,
		TotalTax:       c.TotalTax,
		TotalDiscounts: c.TotalDiscounts,
		CustomAttributes: []Attribute{
			{Key: normalize.AttrSourcePlatform, Value: c.Platform.String()},
			{Key: normalize.AttrSourceOrderNumber, Value: c.OrderNumber},
			{Key: normalize.AttrFinancialStatus, Value: string(c.FinancialStatus)},
			{Key: normalize.AttrFulfillmentStatus, Value: string(c.FulfillmentStatus)},
		},
		ShippingAddress: optionalMailingAddress(c.ShippingAddress),
		BillingAddress:  optionalMailingAddress(c.BillingAddress),
	}

	for _, li := range c.LineItems {
		item := LineItem{
			Title:    li.Title,
			Quantity: li.Quantity,
			SKU:      li.SKU,
			Price:    li.Price,
		}
		// Ids from another platform cannot reference Shopify variants
		if IsGID(li.VariantID, "ProductVariant") {
			item.VariantID = li.VariantID
		}
		if IsGID(li.ProductID, "Product") {
			item.ProductID = li.ProductID
		}
		d.LineItems = append(d.LineItems, item)
	}

	if c.TotalShipping != "" {
		d.ShippingLine = &ShippingLine{Title: shippingLineTitle, Price: c.TotalShipping}
	}
	if len(c.DiscountCodes) > 0 || !normalize.IsZeroMoney(c.TotalDiscounts) {
		value := c.TotalDiscounts
		if value == "" {
			value = "0.00"
		}
		d.AppliedDiscount = &AppliedDiscount{
			Title:     strings.Join(c.DiscountCodes, discountCodeSep),
			Value:     value,
			ValueType: discountFixedAmount,
		}
	}

	return d
}

func lineItemsToCanonical(items []LineItem) []domain.LineItem {
	var out []domain.LineItem
	for _, li := range items {
		out = append(out, domain.LineItem{
			ProductID: li.ProductID,
			VariantID: li.VariantID,
			Title:     li.Title,
			Quantity:  li.Quantity,
			Price:     li.Price,
			SKU:       li.SKU,
		})
	}
	return out
}

func financialStatus(status string) domain.FinancialStatus {
	switch status {
	case "AUTHORIZED":
		return domain.FinancialStatusAuthorized
	case "PAID":
		return domain.FinancialStatusPaid
	case "PARTIALLY_PAID":
		return domain.FinancialStatusPartiallyPaid
	case "PARTIALLY_REFUNDED":
		return domain.FinancialStatusPartiallyRefunded
	case "REFUNDED":
		return domain.FinancialStatusRefunded
	case "VOIDED", "EXPIRED":
		return domain.FinancialStatusVoided
	default:
		return domain.FinancialStatusPending
	}
}

func fulfillmentStatus(status string) domain.FulfillmentStatus {
	switch status {
	case "FULFILLED":
		return domain.FulfillmentStatusFulfilled
	case "PARTIALLY_FULFILLED", "IN_PROGRESS":
		return domain.FulfillmentStatusPartial
	default:
		return domain.FulfillmentStatusUnfulfilled
	}
}
