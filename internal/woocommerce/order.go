package woocommerce

import (
	"encoding/json"

	"github.com/jafarshop/storemigrate/internal/domain"
	"github.com/jafarshop/storemigrate/internal/normalize"
)

const (
	shippingMethodID    = "flat_rate"
	shippingMethodTitle = "Shipping"
)

func orderToCanonical(o Order) (domain.Canonical, error) {
	if o.ID == 0 && o.Number == "" && len(o.LineItems) == 0 {
		return nil, ErrUnidentifiable
	}

	number := o.Number
	if number == "" {
		number = idString(o.ID)
	}

	order := domain.Order{
		Origin:            origin(o.ID),
		OrderNumber:       number,
		Email:             o.Billing.Email,
		FinancialStatus:   financialStatus(o.Status),
		FulfillmentStatus: fulfillmentStatus(o.Status),
		Currency:          o.Currency,
		TotalPrice:        normalize.CanonicalMoney(o.Total),
		TotalTax:          normalize.CanonicalMoney(o.TotalTax),
		TotalDiscounts:    normalize.CanonicalMoney(o.DiscountTotal),
		Notes:             o.CustomerNote,
	}

	if t, ok := parseTime(o.DateCreatedGMT); ok {
		order.CreatedAt = t
	}

	subtotals := make([]string, 0, len(o.LineItems))
	for _, li := range o.LineItems {
		price := li.Price.String()
		if price == "" && li.Quantity > 0 {
			price = normalize.DivMoney(li.Subtotal, li.Quantity)
		}
		order.LineItems = append(order.LineItems, domain.LineItem{
			ProductID: idString(li.ProductID),
			VariantID: idString(li.VariationID),
			Title:     li.Name,
			Quantity:  li.Quantity,
			Price:     price,
			SKU:       li.SKU,
		})
		subtotals = append(subtotals, li.Subtotal)
	}
	if len(o.LineItems) > 0 {
		order.SubtotalPrice = normalize.SumMoney(subtotals...)
	}

	if o.ShippingTotal != "" {
		order.TotalShipping = normalize.CanonicalMoney(o.ShippingTotal)
	} else if len(o.ShippingLines) > 0 {
		totals := make([]string, 0, len(o.ShippingLines))
		for _, sl := range o.ShippingLines {
			totals = append(totals, sl.Total)
		}
		order.TotalShipping = normalize.SumMoney(totals...)
	}

	for _, cl := range o.CouponLines {
		order.DiscountCodes = append(order.DiscountCodes, cl.Code)
	}

	if billing := addressToCanonical(o.Billing); !billing.IsEmpty() {
		billing.Phone = o.Billing.Phone
		order.BillingAddress = &billing
	}
	if shipping := addressToCanonical(o.Shipping); !shipping.IsEmpty() {
		shipping.Phone = o.Shipping.Phone
		order.ShippingAddress = &shipping
	}

	return order, nil
}

func orderToNative(c domain.Order) Order {
	o := Order{
		Status:        orderStatusToNative(c.FinancialStatus, c.FulfillmentStatus),
		Currency:      c.Currency,
		Total:         c.TotalPrice,
		TotalTax:      c.TotalTax,
		ShippingTotal: c.TotalShipping,
		DiscountTotal: c.TotalDiscounts,
		CustomerNote:  c.Notes,
		SetPaid:       c.FinancialStatus == domain.FinancialStatusPaid,
	}
	if !c.CreatedAt.IsZero() {
		o.DateCreatedGMT = formatTime(c.CreatedAt)
	}

	if c.BillingAddress != nil {
		o.Billing = addressToNative(*c.BillingAddress)
	}
	if c.ShippingAddress != nil {
		o.Shipping = addressToNative(*c.ShippingAddress)
	}
	o.Billing.Email = c.Email

	for _, li := range c.LineItems {
		o.LineItems = append(o.LineItems, OrderLineItem{
			Name:        li.Title,
			ProductID:   parseID(li.ProductID),
			VariationID: parseID(li.VariantID),
			Quantity:    li.Quantity,
			SKU:         li.SKU,
			Price:       json.Number(li.Price),
			Subtotal:    normalize.MulMoney(li.Price, li.Quantity),
			Total:       normalize.MulMoney(li.Price, li.Quantity),
		})
	}

	if !normalize.IsZeroMoney(c.TotalShipping) {
		o.ShippingLines = []ShippingLine{{
			MethodID:    shippingMethodID,
			MethodTitle: shippingMethodTitle,
			Total:       c.TotalShipping,
		}}
	}

	for _, code := range c.DiscountCodes {
		o.CouponLines = append(o.CouponLines, CouponLine{Code: code})
	}

	return o
}

// financialStatus derives the payment state from the single WooCommerce status
func financialStatus(status string) domain.FinancialStatus {
	switch status {
	case "processing", "completed":
		return domain.FinancialStatusPaid
	case "refunded":
		return domain.FinancialStatusRefunded
	case "cancelled":
		return domain.FinancialStatusVoided
	default:
		return domain.FinancialStatusPending
	}
}

func fulfillmentStatus(status string) domain.FulfillmentStatus {
	if status == "completed" {
		return domain.FulfillmentStatusFulfilled
	}
	return domain.FulfillmentStatusUnfulfilled
}

func orderStatusToNative(fin domain.FinancialStatus, ful domain.FulfillmentStatus) string {
	switch {
	case fin == domain.FinancialStatusRefunded:
		return "refunded"
	case fin == domain.FinancialStatusVoided:
		return "cancelled"
	case ful == domain.FulfillmentStatusFulfilled:
		return "completed"
	case fin == domain.FinancialStatusPaid || fin == domain.FinancialStatusPartiallyRefunded:
		return "processing"
	case fin == domain.FinancialStatusAuthorized || fin == domain.FinancialStatusPartiallyPaid:
		return "on-hold"
	default:
		return "pending"
	}
}
