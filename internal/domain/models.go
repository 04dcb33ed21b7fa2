package domain

import (
	"time"
)

// Origin traces a canonical record back to the record it was read from
type Origin struct {
	Platform   Platform `json:"platform" yaml:"platform"`
	OriginalID string   `json:"originalId,omitempty" yaml:"originalId,omitempty"`
}

// Source returns the origin of the record
func (o Origin) Source() Origin {
	return o
}

// Canonical is implemented by every canonical entity
type Canonical interface {
	EntityType() EntityType
	Source() Origin
}

// Image is an ordered product or collection image
type Image struct {
	Src      string `json:"src"`
	Alt      string `json:"alt,omitempty"`
	Position int    `json:"position"`
}

// VariantOption is one axis value of a variant, e.g. Size=M
type VariantOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Variant is a purchasable configuration of a product
type Variant struct {
	OriginalID        string          `json:"originalId,omitempty"`
	Title             string          `json:"title,omitempty"`
	SKU               string          `json:"sku,omitempty"`
	Price             string          `json:"price"`
	CompareAtPrice    string          `json:"compareAtPrice,omitempty"`
	InventoryQuantity int             `json:"inventoryQuantity"`
	Options           []VariantOption `json:"options,omitempty"`
}

// DefaultVariantTitle marks the synthetic variant of a product without variants
const DefaultVariantTitle = "Default"

// IsDefault reports whether the variant is the synthetic single variant
func (v Variant) IsDefault() bool {
	return len(v.Options) == 0
}

// Metafield is a namespaced custom attribute
type Metafield struct {
	Namespace string `json:"namespace"`
	Key       string `json:"key"`
	Value     string `json:"value"`
	Type      string `json:"type"`
}

// SEO holds search engine overrides
type SEO struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// Product is the canonical product
type Product struct {
	Origin
	Name           string        `json:"name"`
	Description    string        `json:"description,omitempty"`
	Slug           string        `json:"slug,omitempty"`
	Status         ProductStatus `json:"status"`
	Price          string        `json:"price"`
	CompareAtPrice string        `json:"compareAtPrice,omitempty"`
	SKU            string        `json:"sku,omitempty"`
	Barcode        string        `json:"barcode,omitempty"`
	Weight         string        `json:"weight,omitempty"`
	Images         []Image       `json:"images,omitempty"`
	Variants       []Variant     `json:"variants"`
	Categories     []string      `json:"categories,omitempty"`
	Tags           []string      `json:"tags,omitempty"`
	Metafields     []Metafield   `json:"metafields,omitempty"`
	SEO            *SEO          `json:"seo,omitempty"`
}

func (Product) EntityType() EntityType { return EntityProduct }

// DefaultVariant builds the synthetic variant for a product without variants
func DefaultVariant(id, sku, price, compareAtPrice string, quantity int) Variant {
	return Variant{
		OriginalID:        id,
		Title:             DefaultVariantTitle,
		SKU:               sku,
		Price:             price,
		CompareAtPrice:    compareAtPrice,
		InventoryQuantity: quantity,
	}
}

// Address belongs to exactly one customer or order
type Address struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Company   string `json:"company,omitempty"`
	Address1  string `json:"address1,omitempty"`
	Address2  string `json:"address2,omitempty"`
	City      string `json:"city,omitempty"`
	Province  string `json:"province,omitempty"`
	Country   string `json:"country,omitempty"`
	Zip       string `json:"zip,omitempty"`
	Phone     string `json:"phone,omitempty"`
	IsDefault bool   `json:"isDefault,omitempty"`
}

// IsEmpty reports whether the address has no street line at all
func (a Address) IsEmpty() bool {
	return a.Address1 == "" && a.City == "" && a.Zip == "" && a.Country == ""
}

// Customer is the canonical customer. Email is the identity across platforms.
type Customer struct {
	Origin
	Email      string      `json:"email"`
	FirstName  string      `json:"firstName,omitempty"`
	LastName   string      `json:"lastName,omitempty"`
	Phone      string      `json:"phone,omitempty"`
	Addresses  []Address   `json:"addresses,omitempty"`
	Tags       []string    `json:"tags,omitempty"`
	Notes      string      `json:"notes,omitempty"`
	Metafields []Metafield `json:"metafields,omitempty"`

	// Platform-generated statistics; never written to a destination.
	OrdersCount int    `json:"ordersCount,omitempty"`
	TotalSpent  string `json:"totalSpent,omitempty"`
}

func (Customer) EntityType() EntityType { return EntityCustomer }

// LineItem is one product line of an order
type LineItem struct {
	ProductID string `json:"productId,omitempty"`
	VariantID string `json:"variantId,omitempty"`
	Title     string `json:"title"`
	Quantity  int    `json:"quantity"`
	Price     string `json:"price"`
	SKU       string `json:"sku,omitempty"`
}

// Order is the canonical order. OrderNumber is platform-assigned and not
// unique across platforms.
type Order struct {
	Origin
	OrderNumber       string            `json:"orderNumber"`
	Email             string            `json:"email,omitempty"`
	LineItems         []LineItem        `json:"lineItems"`
	ShippingAddress   *Address          `json:"shippingAddress,omitempty"`
	BillingAddress    *Address          `json:"billingAddress,omitempty"`
	FinancialStatus   FinancialStatus   `json:"financialStatus"`
	FulfillmentStatus FulfillmentStatus `json:"fulfillmentStatus"`
	Currency          string            `json:"currency,omitempty"`
	TotalPrice        string            `json:"totalPrice"`
	SubtotalPrice     string            `json:"subtotalPrice,omitempty"`
	TotalTax          string            `json:"totalTax,omitempty"`
	TotalShipping     string            `json:"totalShipping,omitempty"`
	TotalDiscounts    string            `json:"totalDiscounts,omitempty"`
	DiscountCodes     []string          `json:"discountCodes,omitempty"`
	Tags              []string          `json:"tags,omitempty"`
	Notes             string            `json:"notes,omitempty"`
	CreatedAt         time.Time         `json:"createdAt"`
}

func (Order) EntityType() EntityType { return EntityOrder }

// Collection groups products (a WooCommerce category or a Shopify collection)
type Collection struct {
	Origin
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Slug        string   `json:"slug,omitempty"`
	Image       *Image   `json:"image,omitempty"`
	ProductIDs  []string `json:"productIds,omitempty"`
	SEO         *SEO     `json:"seo,omitempty"`
}

func (Collection) EntityType() EntityType { return EntityCollection }

// Coupon is the canonical discount code. Amount stays a decimal string.
type Coupon struct {
	Origin
	Code                string       `json:"code"`
	DiscountType        DiscountType `json:"discountType"`
	Amount              string       `json:"amount"`
	Description         string       `json:"description,omitempty"`
	ExpiryDate          *time.Time   `json:"expiryDate,omitempty"`
	UsageLimit          *int         `json:"usageLimit,omitempty"`
	UsageCount          *int         `json:"usageCount,omitempty"`
	FreeShipping        *bool        `json:"freeShipping,omitempty"`
	MinimumAmount       string       `json:"minimumAmount,omitempty"`
	ProductIDs          []string     `json:"productIds,omitempty"`
	ExcludedProductIDs  []string     `json:"excludedProductIds,omitempty"`
	CategoryIDs         []string     `json:"categoryIds,omitempty"`
	ExcludedCategoryIDs []string     `json:"excludedCategoryIds,omitempty"`
}

func (Coupon) EntityType() EntityType { return EntityCoupon }

// Page is a static content page
type Page struct {
	Origin
	Title     string        `json:"title"`
	Content   string        `json:"content"`
	Slug      string        `json:"slug,omitempty"`
	Status    ContentStatus `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

func (Page) EntityType() EntityType { return EntityPage }

// BlogPost is a dated article
type BlogPost struct {
	Origin
	Title       string        `json:"title"`
	Content     string        `json:"content"`
	Excerpt     string        `json:"excerpt,omitempty"`
	Slug        string        `json:"slug,omitempty"`
	Status      ContentStatus `json:"status"`
	Author      string        `json:"author,omitempty"`
	Tags        []string      `json:"tags,omitempty"`
	Categories  []string      `json:"categories,omitempty"`
	PublishedAt *time.Time    `json:"publishedAt,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

func (BlogPost) EntityType() EntityType { return EntityBlogPost }

// Review is a product review
type Review struct {
	Origin
	ProductID     string    `json:"productId"`
	Reviewer      string    `json:"reviewer,omitempty"`
	ReviewerEmail string    `json:"reviewerEmail,omitempty"`
	Rating        int       `json:"rating"`
	Content       string    `json:"content,omitempty"`
	Verified      bool      `json:"verified,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (Review) EntityType() EntityType { return EntityReview }
