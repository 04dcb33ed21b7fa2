package reconcile

import (
	"github.com/jafarshop/storemigrate/internal/domain"
)

// Difference builds the review record for an unmatched c. Unknown types
// are returned unchanged.
func Difference(c domain.Canonical) interface{} {
	switch r := c.(type) {
	case domain.Product:
		return domain.ProductDifference{
			ID:           r.OriginalID,
			Name:         r.Name,
			SKU:          productSKU(r),
			Status:       r.Status,
			Price:        r.Price,
			Tags:         r.Tags,
			VariantCount: len(r.Variants),
			ImageCount:   len(r.Images),
		}
	case domain.Customer:
		return domain.CustomerDifference{
			ID:          r.OriginalID,
			Email:       r.Email,
			FirstName:   r.FirstName,
			LastName:    r.LastName,
			OrdersCount: r.OrdersCount,
			TotalSpent:  r.TotalSpent,
			Tags:        r.Tags,
		}
	case domain.Order:
		return domain.OrderDifference{
			ID:                r.OriginalID,
			OrderNumber:       r.OrderNumber,
			Email:             r.Email,
			TotalPrice:        r.TotalPrice,
			FinancialStatus:   r.FinancialStatus,
			FulfillmentStatus: r.FulfillmentStatus,
			LineItemCount:     len(r.LineItems),
			CreatedAt:         r.CreatedAt,
		}
	case domain.Collection:
		return domain.CollectionDifference{
			ID:           r.OriginalID,
			Name:         r.Name,
			Slug:         r.Slug,
			ProductCount: len(r.ProductIDs),
		}
	case domain.Coupon:
		d := domain.CouponDifference{
			ID:           r.OriginalID,
			Code:         r.Code,
			DiscountType: r.DiscountType,
			Amount:       r.Amount,
			ExpiryDate:   r.ExpiryDate,
		}
		if r.UsageCount != nil {
			d.UsageCount = *r.UsageCount
		}
		return d
	case domain.Page:
		return domain.PageDifference{
			ID:     r.OriginalID,
			Title:  r.Title,
			Slug:   r.Slug,
			Status: r.Status,
		}
	case domain.BlogPost:
		return domain.BlogPostDifference{
			ID:          r.OriginalID,
			Title:       r.Title,
			Slug:        r.Slug,
			Status:      r.Status,
			Tags:        r.Tags,
			Categories:  r.Categories,
			PublishedAt: r.PublishedAt,
		}
	default:
		return c
	}
}
