package domain

import "time"

// Differences are transient comparison results. They are never persisted;
// a reviewer approves them before anything is written.

// ProductDifference is a source product with no destination counterpart
type ProductDifference struct {
	ID           string        `json:"id" yaml:"id"`
	Name         string        `json:"name" yaml:"name"`
	SKU          string        `json:"sku,omitempty" yaml:"sku,omitempty"`
	Status       ProductStatus `json:"status" yaml:"status"`
	Price        string        `json:"price" yaml:"price"`
	Tags         []string      `json:"tags,omitempty" yaml:"tags,omitempty"`
	VariantCount int           `json:"variantCount" yaml:"variantCount"`
	ImageCount   int           `json:"imageCount" yaml:"imageCount"`
}

// CustomerDifference is a source customer with no destination counterpart
type CustomerDifference struct {
	ID          string   `json:"id" yaml:"id"`
	Email       string   `json:"email" yaml:"email"`
	FirstName   string   `json:"firstName,omitempty" yaml:"firstName,omitempty"`
	LastName    string   `json:"lastName,omitempty" yaml:"lastName,omitempty"`
	OrdersCount int      `json:"ordersCount" yaml:"ordersCount"`
	TotalSpent  string   `json:"totalSpent,omitempty" yaml:"totalSpent,omitempty"`
	Tags        []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// OrderDifference is a source order with no destination counterpart
type OrderDifference struct {
	ID                string            `json:"id" yaml:"id"`
	OrderNumber       string            `json:"orderNumber" yaml:"orderNumber"`
	Email             string            `json:"email,omitempty" yaml:"email,omitempty"`
	TotalPrice        string            `json:"totalPrice" yaml:"totalPrice"`
	FinancialStatus   FinancialStatus   `json:"financialStatus" yaml:"financialStatus"`
	FulfillmentStatus FulfillmentStatus `json:"fulfillmentStatus" yaml:"fulfillmentStatus"`
	LineItemCount     int               `json:"lineItemCount" yaml:"lineItemCount"`
	CreatedAt         time.Time         `json:"createdAt" yaml:"createdAt"`
}

// CollectionDifference is a source collection with no destination counterpart
type CollectionDifference struct {
	ID           string `json:"id" yaml:"id"`
	Name         string `json:"name" yaml:"name"`
	Slug         string `json:"slug,omitempty" yaml:"slug,omitempty"`
	ProductCount int    `json:"productCount" yaml:"productCount"`
}

// CouponDifference is a source coupon with no destination counterpart
type CouponDifference struct {
	ID           string       `json:"id" yaml:"id"`
	Code         string       `json:"code" yaml:"code"`
	DiscountType DiscountType `json:"discountType" yaml:"discountType"`
	Amount       string       `json:"amount" yaml:"amount"`
	UsageCount   int          `json:"usageCount" yaml:"usageCount"`
	ExpiryDate   *time.Time   `json:"expiryDate,omitempty" yaml:"expiryDate,omitempty"`
}

// PageDifference is a source page with no destination counterpart
type PageDifference struct {
	ID     string        `json:"id" yaml:"id"`
	Title  string        `json:"title" yaml:"title"`
	Slug   string        `json:"slug,omitempty" yaml:"slug,omitempty"`
	Status ContentStatus `json:"status" yaml:"status"`
}

// BlogPostDifference is a source blog post with no destination counterpart
type BlogPostDifference struct {
	ID          string        `json:"id" yaml:"id"`
	Title       string        `json:"title" yaml:"title"`
	Slug        string        `json:"slug,omitempty" yaml:"slug,omitempty"`
	Status      ContentStatus `json:"status" yaml:"status"`
	Tags        []string      `json:"tags,omitempty" yaml:"tags,omitempty"`
	Categories  []string      `json:"categories,omitempty" yaml:"categories,omitempty"`
	PublishedAt *time.Time    `json:"publishedAt,omitempty" yaml:"publishedAt,omitempty"`
}

// InventoryDifference is a stock divergence between a matched variant pair.
// Difference is SourceQuantity - DestinationQuantity; positive means the
// destination should increase.
type InventoryDifference struct {
	ProductName          string `json:"productName" yaml:"productName"`
	SKU                  string `json:"sku,omitempty" yaml:"sku,omitempty"`
	VariantTitle         string `json:"variantTitle,omitempty" yaml:"variantTitle,omitempty"`
	SourceProductID      string `json:"sourceProductId" yaml:"sourceProductId"`
	SourceVariantID      string `json:"sourceVariantId,omitempty" yaml:"sourceVariantId,omitempty"`
	DestinationProductID string `json:"destinationProductId" yaml:"destinationProductId"`
	DestinationVariantID string `json:"destinationVariantId,omitempty" yaml:"destinationVariantId,omitempty"`
	SourceQuantity       int    `json:"sourceQuantity" yaml:"sourceQuantity"`
	DestinationQuantity  int    `json:"destinationQuantity" yaml:"destinationQuantity"`
	Difference           int    `json:"difference" yaml:"difference"`
}
