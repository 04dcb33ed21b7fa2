package mapper

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jafarshop/storemigrate/internal/domain"
	"github.com/jafarshop/storemigrate/internal/normalize"
	"github.com/jafarshop/storemigrate/internal/shopify"
	"github.com/jafarshop/storemigrate/internal/woocommerce"
)

func intPtr(n int) *int { return &n }

// withoutIDs clears what a platform assigns on create: record ids, variant
// ids, order numbers and customer statistics.
func withoutIDs(c domain.Canonical) domain.Canonical {
	switch v := c.(type) {
	case domain.Product:
		v.Origin = domain.Origin{}
		if v.Variants != nil {
			variants := make([]domain.Variant, len(v.Variants))
			copy(variants, v.Variants)
			for i := range variants {
				variants[i].OriginalID = ""
			}
			v.Variants = variants
		}
		return v
	case domain.Customer:
		v.Origin = domain.Origin{}
		v.OrdersCount = 0
		v.TotalSpent = ""
		return v
	case domain.Order:
		v.Origin = domain.Origin{}
		v.OrderNumber = ""
		return v
	case domain.Collection:
		v.Origin = domain.Origin{}
		return v
	case domain.Coupon:
		v.Origin = domain.Origin{}
		return v
	case domain.Page:
		v.Origin = domain.Origin{}
		return v
	case domain.BlogPost:
		v.Origin = domain.Origin{}
		return v
	}
	return c
}

func TestRoundTripEveryEntity(t *testing.T) {
	registry := normalize.NewRegistry(woocommerce.Normalizer{}, shopify.Normalizer{})

	tests := []struct {
		name   string
		entity domain.EntityType
		record domain.NativeRecord
	}{
		{
			name:   "woocommerce simple product",
			entity: domain.EntityProduct,
			record: woocommerce.Product{
				ID:            10,
				Name:          "Linen Shirt",
				Slug:          "linen-shirt",
				Status:        "publish",
				Description:   "<p>Soft</p>",
				SKU:           "LS-1",
				RegularPrice:  "30.00",
				SalePrice:     "25.00",
				StockQuantity: intPtr(7),
				Categories:    []woocommerce.Term{{ID: 3, Name: "Shirts"}},
				Tags:          []woocommerce.Term{{ID: 4, Name: "summer"}},
				Images:        []woocommerce.Image{{ID: 5, Src: "https://shop.example.com/shirt.jpg", Alt: "Shirt"}},
				MetaData: []woocommerce.MetaData{
					{ID: 1, Key: "fabric", Value: "linen"},
					{ID: 2, Key: "_yoast_wpseo_title", Value: "Linen Shirt | Shop"},
				},
			},
		},
		{
			name:   "woocommerce variable product",
			entity: domain.EntityProduct,
			record: woocommerce.Product{
				ID:           20,
				Name:         "Tee",
				Status:       "draft",
				RegularPrice: "15.00",
				Variations: []woocommerce.Variation{
					{ID: 21, SKU: "TEE-M", RegularPrice: "15.00", StockQuantity: intPtr(3),
						Attributes: []woocommerce.VariationAttribute{{Name: "Size", Option: "M"}}},
					{ID: 22, SKU: "TEE-L", RegularPrice: "16.00", SalePrice: "14.00", StockQuantity: intPtr(0),
						Attributes: []woocommerce.VariationAttribute{{Name: "Size", Option: "L"}}},
				},
			},
		},
		{
			name:   "woocommerce customer",
			entity: domain.EntityCustomer,
			record: woocommerce.Customer{
				ID:        3,
				Email:     "ana@example.com",
				FirstName: "Ana",
				LastName:  "Haddad",
				Billing: woocommerce.Address{FirstName: "Ana", Address1: "1 Main St", City: "Amman", Country: "JO",
					Postcode: "11118", Email: "ana@example.com", Phone: "+962700000000"},
				Shipping:    woocommerce.Address{FirstName: "Ana", Address1: "9 Side St", City: "Irbid", Country: "JO"},
				MetaData:    []woocommerce.MetaData{{Key: "loyalty_tier", Value: "gold"}},
				OrdersCount: 4,
				TotalSpent:  "120.00",
			},
		},
		{
			name:   "woocommerce order",
			entity: domain.EntityOrder,
			record: woocommerce.Order{
				ID:             77,
				Number:         "4821",
				Status:         "completed",
				Currency:       "USD",
				DateCreatedGMT: "2024-03-01T10:00:00",
				Total:          "55.00",
				ShippingTotal:  "5.00",
				CustomerNote:   "Leave at door",
				Billing: woocommerce.Address{FirstName: "Jo", Address1: "1 Main St", City: "Austin", Country: "US",
					Postcode: "78701", Email: "jo@example.com", Phone: "555-0100"},
				LineItems: []woocommerce.OrderLineItem{
					{ID: 1, Name: "Hat", ProductID: 10, Quantity: 2, SKU: "HAT", Price: json.Number("25.00"), Subtotal: "50.00", Total: "50.00"},
				},
				CouponLines: []woocommerce.CouponLine{{ID: 2, Code: "SAVE"}},
			},
		},
		{
			name:   "woocommerce category",
			entity: domain.EntityCollection,
			record: woocommerce.Category{ID: 4, Name: "Hats", Slug: "hats", Description: "Warm hats",
				Image: &woocommerce.Image{ID: 9, Src: "https://shop.example.com/hats.jpg", Alt: "Hats"}},
		},
		{
			name:   "woocommerce coupon",
			entity: domain.EntityCoupon,
			record: woocommerce.Coupon{
				ID:                        1,
				Code:                      "SAVE15",
				Amount:                    "15",
				DiscountType:              "percent",
				Description:               "Spring",
				DateExpiresGMT:            "2025-12-31T23:59:59",
				UsageCount:                3,
				UsageLimit:                intPtr(100),
				MinimumAmount:             "20.00",
				ProductIDs:                []int64{10},
				ExcludedProductCategories: []int64{4},
			},
		},
		{
			name:   "woocommerce page",
			entity: domain.EntityPage,
			record: woocommerce.Page{ID: 3, Slug: "about", Status: "publish",
				Title: woocommerce.Rendered{Raw: "About"}, Content: woocommerce.Rendered{Raw: "<p>Hi</p>"},
				DateGMT: "2024-01-02T03:04:05", ModifiedGMT: "2024-01-03T03:04:05"},
		},
		{
			name:   "woocommerce post",
			entity: domain.EntityBlogPost,
			record: woocommerce.Post{ID: 9, Slug: "hello", Status: "publish",
				Title: woocommerce.Rendered{Raw: "Hello"}, Content: woocommerce.Rendered{Raw: "<p>First</p>"},
				Excerpt: woocommerce.Rendered{Raw: "First"}, DateGMT: "2024-01-02T03:04:05", ModifiedGMT: "2024-01-03T03:04:05",
				AuthorName: "Rana", TagNames: []string{"news"}, CategoryNames: []string{"Updates"}},
		},
		{
			name:   "shopify default variant product",
			entity: domain.EntityProduct,
			record: shopify.Product{
				ID:              "gid://shopify/Product/1",
				Title:           "Hat",
				DescriptionHTML: "<p>Wool</p>",
				Handle:          "hat",
				Status:          shopify.StatusActive,
				ProductType:     "Accessories",
				Tags:            []string{"wool"},
				Images:          []shopify.Image{{ID: "gid://shopify/ProductImage/1", URL: "https://cdn.example.com/hat.jpg", AltText: "Hat"}},
				Variants: []shopify.Variant{{
					ID: "gid://shopify/ProductVariant/11", Title: "Default Title", SKU: "HAT-1", Barcode: "123",
					Price: "20.00", CompareAtPrice: "25.00", InventoryQuantity: 4,
					SelectedOptions: []shopify.SelectedOption{{Name: "Title", Value: "Default Title"}},
				}},
				Metafields: []shopify.Metafield{{Namespace: "custom", Key: "fabric", Value: "wool", Type: "single_line_text_field"}},
				SEO:        &shopify.SEO{Title: "Wool Hat"},
			},
		},
		{
			name:   "shopify product with options",
			entity: domain.EntityProduct,
			record: shopify.Product{
				ID:     "gid://shopify/Product/2",
				Title:  "Tee",
				Status: shopify.StatusDraft,
				Variants: []shopify.Variant{
					{ID: "gid://shopify/ProductVariant/21", Title: "M", SKU: "TEE-M", Price: "15.00", InventoryQuantity: 3,
						SelectedOptions: []shopify.SelectedOption{{Name: "Size", Value: "M"}}},
					{ID: "gid://shopify/ProductVariant/22", Title: "L", SKU: "TEE-L", Price: "14.00", CompareAtPrice: "16.00",
						SelectedOptions: []shopify.SelectedOption{{Name: "Size", Value: "L"}}},
				},
			},
		},
		{
			name:   "shopify customer",
			entity: domain.EntityCustomer,
			record: shopify.Customer{
				ID:        "gid://shopify/Customer/5",
				Email:     "jo@example.com",
				FirstName: "Jo",
				Phone:     "+15550100",
				Note:      "VIP",
				Tags:      []string{"wholesale"},
				Addresses: []shopify.MailingAddress{
					{ID: "gid://shopify/MailingAddress/1", Address1: "1 Main St", City: "Austin", Country: "US", Zip: "78701"},
					{ID: "gid://shopify/MailingAddress/2", Address1: "2 Oak Ave", City: "Dallas", Country: "US", Zip: "75201"},
				},
				DefaultAddressID: "gid://shopify/MailingAddress/2",
				NumberOfOrders:   2,
				AmountSpent:      "80.00",
			},
		},
		{
			name:   "shopify order",
			entity: domain.EntityOrder,
			record: shopify.Order{
				ID:                "gid://shopify/Order/9",
				Name:              "#1001",
				Email:             "jo@example.com",
				Note:              "Leave at door",
				Tags:              []string{"gift"},
				CreatedAt:         "2024-03-01T10:00:00Z",
				FinancialStatus:   "PAID",
				FulfillmentStatus: "FULFILLED",
				CurrencyCode:      "USD",
				TotalPrice:        "55.00",
				SubtotalPrice:     "50.00",
				TotalTax:          "0.00",
				TotalShipping:     "5.00",
				TotalDiscounts:    "0.00",
				DiscountCodes:     []string{"SAVE"},
				LineItems: []shopify.LineItem{{Title: "Hat", Quantity: 2, SKU: "HAT-1", Price: "25.00",
					VariantID: "gid://shopify/ProductVariant/11", ProductID: "gid://shopify/Product/1"}},
				ShippingAddress: &shopify.MailingAddress{Address1: "1 Main St", City: "Austin", Country: "US", Zip: "78701"},
			},
		},
		{
			name:   "shopify collection",
			entity: domain.EntityCollection,
			record: shopify.Collection{
				ID:              "gid://shopify/Collection/5",
				Title:           "Hats",
				Handle:          "hats",
				DescriptionHTML: "<p>Warm</p>",
				Image:           &shopify.Image{URL: "https://cdn.example.com/hats.jpg", AltText: "Hats"},
				ProductIDs:      []string{"gid://shopify/Product/1"},
				SEO:             &shopify.SEO{Title: "Hats", Description: "Warm hats"},
			},
		},
		{
			name:   "shopify discount",
			entity: domain.EntityCoupon,
			record: shopify.DiscountCode{
				ID:              "gid://shopify/DiscountCodeNode/3",
				Title:           "Spring sale",
				Code:            "SPRING",
				ValueType:       shopify.ValuePercentage,
				Value:           "0.15",
				EndsAt:          "2025-12-31T23:59:59Z",
				UsageLimit:      intPtr(50),
				UsageCount:      2,
				MinimumSubtotal: "20.00",
				CollectionIDs:   []string{"gid://shopify/Collection/5"},
			},
		},
		{
			name:   "shopify page",
			entity: domain.EntityPage,
			record: shopify.Page{ID: "gid://shopify/Page/4", Title: "About", Handle: "about", Body: "<p>Hi</p>",
				IsPublished: true, CreatedAt: "2024-01-02T03:04:05Z", UpdatedAt: "2024-01-03T03:04:05Z"},
		},
		{
			name:   "shopify article",
			entity: domain.EntityBlogPost,
			record: shopify.Article{ID: "gid://shopify/Article/4", Title: "Hello", Handle: "hello", Body: "<p>First</p>",
				Summary: "First", Author: "Rana", Tags: []string{"news"}, IsPublished: true,
				PublishedAt: "2024-01-02T03:04:05Z", CreatedAt: "2024-01-02T03:04:05Z", UpdatedAt: "2024-01-03T03:04:05Z",
				BlogTitle: "News"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := registry.Lookup(tt.record.Platform(), tt.entity)
			require.NoError(t, err)

			first, err := n.ToCanonical(tt.record)
			require.NoError(t, err)
			native, err := n.ToNative(first)
			require.NoError(t, err)
			second, err := n.ToCanonical(native)
			require.NoError(t, err)

			assert.Equal(t, withoutIDs(first), withoutIDs(second))
		})
	}
}
