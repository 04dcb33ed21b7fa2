package shopify

import (
	"github.com/jafarshop/storemigrate/internal/domain"
)

// Native records are the flattened form of the Admin GraphQL objects: the
// client unwraps connections and money bags before handing them out, and
// maps them to mutation inputs on write. IDs are GIDs.

// Product statuses
const (
	StatusActive   = "ACTIVE"
	StatusDraft    = "DRAFT"
	StatusArchived = "ARCHIVED"
)

// Image is a product or collection image
type Image struct {
	ID      string `json:"id,omitempty"`
	URL     string `json:"url"`
	AltText string `json:"altText,omitempty"`
}

// SelectedOption is one option value of a variant
type SelectedOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Variant is a product variant
type Variant struct {
	ID                string           `json:"id,omitempty"`
	Title             string           `json:"title,omitempty"`
	SKU               string           `json:"sku,omitempty"`
	Barcode           string           `json:"barcode,omitempty"`
	Price             string           `json:"price"`
	CompareAtPrice    string           `json:"compareAtPrice,omitempty"`
	InventoryQuantity int              `json:"inventoryQuantity"`
	InventoryItemID   string           `json:"inventoryItemId,omitempty"`
	SelectedOptions   []SelectedOption `json:"selectedOptions,omitempty"`
}

// Metafield is a namespaced custom field
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

// Product is a Shopify product
type Product struct {
	ID              string      `json:"id,omitempty"`
	Title           string      `json:"title"`
	DescriptionHTML string      `json:"descriptionHtml,omitempty"`
	Handle          string      `json:"handle,omitempty"`
	Status          string      `json:"status"`
	ProductType     string      `json:"productType,omitempty"`
	Vendor          string      `json:"vendor,omitempty"`
	Tags            []string    `json:"tags,omitempty"`
	Images          []Image     `json:"images,omitempty"`
	Variants        []Variant   `json:"variants"`
	Metafields      []Metafield `json:"metafields,omitempty"`
	SEO             *SEO        `json:"seo,omitempty"`
}

// MailingAddress is a customer or order address
type MailingAddress struct {
	ID        string `json:"id,omitempty"`
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
}

// Customer is a Shopify customer. NumberOfOrders and AmountSpent are read-only.
type Customer struct {
	ID               string           `json:"id,omitempty"`
	Email            string           `json:"email"`
	FirstName        string           `json:"firstName,omitempty"`
	LastName         string           `json:"lastName,omitempty"`
	Phone            string           `json:"phone,omitempty"`
	Note             string           `json:"note,omitempty"`
	Tags             []string         `json:"tags,omitempty"`
	Addresses        []MailingAddress `json:"addresses,omitempty"`
	DefaultAddressID string           `json:"defaultAddressId,omitempty"`
	NumberOfOrders   int              `json:"numberOfOrders,omitempty"`
	AmountSpent      string           `json:"amountSpent,omitempty"`
	Metafields       []Metafield      `json:"metafields,omitempty"`
}

// Attribute is a key/value custom attribute on an order or draft order
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// LineItem is an order or draft order line. VariantID is empty for custom
// lines.
type LineItem struct {
	Title     string `json:"title"`
	Quantity  int    `json:"quantity"`
	SKU       string `json:"sku,omitempty"`
	VariantID string `json:"variantId,omitempty"`
	ProductID string `json:"productId,omitempty"`
	Price     string `json:"price"`
}

// Order is a placed Shopify order
type Order struct {
	ID                string          `json:"id,omitempty"`
	Name              string          `json:"name"`
	Email             string          `json:"email,omitempty"`
	Note              string          `json:"note,omitempty"`
	Tags              []string        `json:"tags,omitempty"`
	CreatedAt         string          `json:"createdAt,omitempty"`
	FinancialStatus   string          `json:"displayFinancialStatus,omitempty"`
	FulfillmentStatus string          `json:"displayFulfillmentStatus,omitempty"`
	CurrencyCode      string          `json:"currencyCode,omitempty"`
	TotalPrice        string          `json:"totalPrice"`
	SubtotalPrice     string          `json:"subtotalPrice,omitempty"`
	TotalTax          string          `json:"totalTax,omitempty"`
	TotalShipping     string          `json:"totalShipping,omitempty"`
	TotalDiscounts    string          `json:"totalDiscounts,omitempty"`
	DiscountCodes     []string        `json:"discountCodes,omitempty"`
	CustomAttributes  []Attribute     `json:"customAttributes,omitempty"`
	LineItems         []LineItem      `json:"lineItems"`
	ShippingAddress   *MailingAddress `json:"shippingAddress,omitempty"`
	BillingAddress    *MailingAddress `json:"billingAddress,omitempty"`
}

// AppliedDiscount is an order-level discount on a draft order
type AppliedDiscount struct {
	Title     string `json:"title,omitempty"`
	Value     string `json:"value"`
	ValueType string `json:"valueType"`
}

// ShippingLine is the shipping charge of a draft order
type ShippingLine struct {
	Title string `json:"title"`
	Price string `json:"price"`
}

// DraftOrder is the write form of every migrated order. The source order
// reference travels in Note and CustomAttributes.
type DraftOrder struct {
	ID               string           `json:"id,omitempty"`
	Name             string           `json:"name,omitempty"`
	Email            string           `json:"email,omitempty"`
	Note             string           `json:"note,omitempty"`
	Tags             []string         `json:"tags,omitempty"`
	CreatedAt        string           `json:"createdAt,omitempty"`
	CurrencyCode     string           `json:"currencyCode,omitempty"`
	TotalPrice       string           `json:"totalPrice,omitempty"`
	SubtotalPrice    string           `json:"subtotalPrice,omitempty"`
	TotalTax         string           `json:"totalTax,omitempty"`
	TotalDiscounts   string           `json:"totalDiscounts,omitempty"`
	CustomAttributes []Attribute      `json:"customAttributes,omitempty"`
	LineItems        []LineItem       `json:"lineItems"`
	AppliedDiscount  *AppliedDiscount `json:"appliedDiscount,omitempty"`
	ShippingLine     *ShippingLine    `json:"shippingLine,omitempty"`
	ShippingAddress  *MailingAddress  `json:"shippingAddress,omitempty"`
	BillingAddress   *MailingAddress  `json:"billingAddress,omitempty"`
}

// Attribute returns the value of the custom attribute key
func (d DraftOrder) Attribute(key string) string {
	return attributeValue(d.CustomAttributes, key)
}

func attributeValue(attrs []Attribute, key string) string {
	for _, a := range attrs {
		if a.Key == key {
			return a.Value
		}
	}
	return ""
}

// Collection is a custom collection
type Collection struct {
	ID              string   `json:"id,omitempty"`
	Title           string   `json:"title"`
	Handle          string   `json:"handle,omitempty"`
	DescriptionHTML string   `json:"descriptionHtml,omitempty"`
	Image           *Image   `json:"image,omitempty"`
	ProductIDs      []string `json:"productIds,omitempty"`
	SEO             *SEO     `json:"seo,omitempty"`
}

// Discount value types
const (
	ValuePercentage  = "percentage"
	ValueFixedAmount = "fixed_amount"
)

// DiscountCode is a basic or free shipping code discount. Percentage values
// are fractions ("0.15").
type DiscountCode struct {
	ID                string   `json:"id,omitempty"`
	Title             string   `json:"title,omitempty"`
	Code              string   `json:"code"`
	ValueType         string   `json:"valueType"`
	Value             string   `json:"value"`
	AppliesOnEachItem bool     `json:"appliesOnEachItem,omitempty"`
	FreeShipping      bool     `json:"freeShipping,omitempty"`
	StartsAt          string   `json:"startsAt,omitempty"`
	EndsAt            string   `json:"endsAt,omitempty"`
	UsageLimit        *int     `json:"usageLimit,omitempty"`
	UsageCount        int      `json:"usageCount,omitempty"`
	MinimumSubtotal   string   `json:"minimumSubtotal,omitempty"`
	ProductIDs        []string `json:"productIds,omitempty"`
	CollectionIDs     []string `json:"collectionIds,omitempty"`
}

// Page is an online store page
type Page struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title"`
	Handle      string `json:"handle,omitempty"`
	Body        string `json:"body"`
	IsPublished bool   `json:"isPublished"`
	PublishedAt string `json:"publishedAt,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}

// Article is a blog article. BlogTitle selects the blog on write.
type Article struct {
	ID          string   `json:"id,omitempty"`
	Title       string   `json:"title"`
	Handle      string   `json:"handle,omitempty"`
	Body        string   `json:"body"`
	Summary     string   `json:"summary,omitempty"`
	Author      string   `json:"author,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	IsPublished bool     `json:"isPublished"`
	PublishedAt string   `json:"publishedAt,omitempty"`
	CreatedAt   string   `json:"createdAt,omitempty"`
	UpdatedAt   string   `json:"updatedAt,omitempty"`
	BlogID      string   `json:"blogId,omitempty"`
	BlogTitle   string   `json:"blogTitle,omitempty"`
}

func (Product) Platform() domain.Platform      { return domain.PlatformShopify }
func (Product) Entity() domain.EntityType      { return domain.EntityProduct }
func (p Product) NativeID() string             { return p.ID }
func (Customer) Platform() domain.Platform     { return domain.PlatformShopify }
func (Customer) Entity() domain.EntityType     { return domain.EntityCustomer }
func (c Customer) NativeID() string            { return c.ID }
func (Order) Platform() domain.Platform        { return domain.PlatformShopify }
func (Order) Entity() domain.EntityType        { return domain.EntityOrder }
func (o Order) NativeID() string               { return o.ID }
func (DraftOrder) Platform() domain.Platform   { return domain.PlatformShopify }
func (DraftOrder) Entity() domain.EntityType   { return domain.EntityOrder }
func (d DraftOrder) NativeID() string          { return d.ID }
func (Collection) Platform() domain.Platform   { return domain.PlatformShopify }
func (Collection) Entity() domain.EntityType   { return domain.EntityCollection }
func (c Collection) NativeID() string          { return c.ID }
func (DiscountCode) Platform() domain.Platform { return domain.PlatformShopify }
func (DiscountCode) Entity() domain.EntityType { return domain.EntityCoupon }
func (d DiscountCode) NativeID() string        { return d.ID }
func (Page) Platform() domain.Platform         { return domain.PlatformShopify }
func (Page) Entity() domain.EntityType         { return domain.EntityPage }
func (p Page) NativeID() string                { return p.ID }
func (Article) Platform() domain.Platform      { return domain.PlatformShopify }
func (Article) Entity() domain.EntityType      { return domain.EntityBlogPost }
func (a Article) NativeID() string             { return a.ID }
