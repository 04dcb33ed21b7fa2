package woocommerce

import (
	"encoding/json"
	"strconv"

	"github.com/jafarshop/storemigrate/internal/domain"
)

// Native record shapes follow the WooCommerce REST API v3 and the WordPress
// REST API (pages and posts). The same structs are decoded from list
// responses and encoded as create payloads; read-only fields are omitted
// by WooCommerce on write.

// Term is a category or tag reference
type Term struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
	Slug string `json:"slug,omitempty"`
}

// Image is a product or category image
type Image struct {
	ID       int64  `json:"id,omitempty"`
	Src      string `json:"src"`
	Name     string `json:"name,omitempty"`
	Alt      string `json:"alt,omitempty"`
	Position int    `json:"position"`
}

// Attribute is a product attribute; Variation marks it as a variant axis
type Attribute struct {
	ID        int64    `json:"id,omitempty"`
	Name      string   `json:"name"`
	Position  int      `json:"position"`
	Visible   bool     `json:"visible"`
	Variation bool     `json:"variation"`
	Options   []string `json:"options"`
}

// VariationAttribute is the chosen option of a variation
type VariationAttribute struct {
	ID     int64  `json:"id,omitempty"`
	Name   string `json:"name"`
	Option string `json:"option"`
}

// MetaData is a custom field. Keys starting with "_" are private.
type MetaData struct {
	ID    int64       `json:"id,omitempty"`
	Key   string      `json:"key"`
	Value interface{} `json:"value"`
}

// Variation is a variable product's purchasable child
type Variation struct {
	ID            int64                `json:"id,omitempty"`
	SKU           string               `json:"sku,omitempty"`
	Price         string               `json:"price,omitempty"`
	RegularPrice  string               `json:"regular_price,omitempty"`
	SalePrice     string               `json:"sale_price,omitempty"`
	ManageStock   bool                 `json:"manage_stock"`
	StockQuantity *int                 `json:"stock_quantity,omitempty"`
	Weight        string               `json:"weight,omitempty"`
	Attributes    []VariationAttribute `json:"attributes,omitempty"`
}

// Product is a WooCommerce product. Variations are fetched from the
// variations sub-resource and attached by the client.
type Product struct {
	ID               int64       `json:"id,omitempty"`
	Name             string      `json:"name"`
	Slug             string      `json:"slug,omitempty"`
	Type             string      `json:"type,omitempty"`
	Status           string      `json:"status,omitempty"`
	Description      string      `json:"description,omitempty"`
	ShortDescription string      `json:"short_description,omitempty"`
	SKU              string      `json:"sku,omitempty"`
	GlobalUniqueID   string      `json:"global_unique_id,omitempty"`
	Price            string      `json:"price,omitempty"`
	RegularPrice     string      `json:"regular_price,omitempty"`
	SalePrice        string      `json:"sale_price,omitempty"`
	ManageStock      bool        `json:"manage_stock"`
	StockQuantity    *int        `json:"stock_quantity,omitempty"`
	Weight           string      `json:"weight,omitempty"`
	Categories       []Term      `json:"categories,omitempty"`
	Tags             []Term      `json:"tags,omitempty"`
	Images           []Image     `json:"images,omitempty"`
	Attributes       []Attribute `json:"attributes,omitempty"`
	VariationIDs     []int64     `json:"variations,omitempty"`
	Variations       []Variation `json:"variation_items,omitempty"`
	MetaData         []MetaData  `json:"meta_data,omitempty"`
}

// Address is a billing or shipping address
type Address struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Company   string `json:"company"`
	Address1  string `json:"address_1"`
	Address2  string `json:"address_2"`
	City      string `json:"city"`
	State     string `json:"state"`
	Postcode  string `json:"postcode"`
	Country   string `json:"country"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// Customer is a WooCommerce customer. OrdersCount and TotalSpent are only
// returned by stores exposing the legacy statistics fields.
type Customer struct {
	ID             int64      `json:"id,omitempty"`
	Email          string     `json:"email"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	Username       string     `json:"username,omitempty"`
	Billing        Address    `json:"billing"`
	Shipping       Address    `json:"shipping"`
	MetaData       []MetaData `json:"meta_data,omitempty"`
	OrdersCount    int        `json:"orders_count,omitempty"`
	TotalSpent     string     `json:"total_spent,omitempty"`
	DateCreatedGMT string     `json:"date_created_gmt,omitempty"`
}

// OrderLineItem is one line of an order. Price is a JSON number on read.
type OrderLineItem struct {
	ID          int64       `json:"id,omitempty"`
	Name        string      `json:"name"`
	ProductID   int64       `json:"product_id,omitempty"`
	VariationID int64       `json:"variation_id,omitempty"`
	Quantity    int         `json:"quantity"`
	SKU         string      `json:"sku,omitempty"`
	Price       json.Number `json:"price,omitempty"`
	Subtotal    string      `json:"subtotal,omitempty"`
	Total       string      `json:"total,omitempty"`
}

// ShippingLine is a shipping charge on an order
type ShippingLine struct {
	ID          int64  `json:"id,omitempty"`
	MethodID    string `json:"method_id"`
	MethodTitle string `json:"method_title"`
	Total       string `json:"total"`
}

// CouponLine is a coupon applied to an order
type CouponLine struct {
	ID       int64  `json:"id,omitempty"`
	Code     string `json:"code"`
	Discount string `json:"discount,omitempty"`
}

// Order is a WooCommerce order
type Order struct {
	ID             int64           `json:"id,omitempty"`
	Number         string          `json:"number,omitempty"`
	Status         string          `json:"status,omitempty"`
	Currency       string          `json:"currency,omitempty"`
	DateCreatedGMT string          `json:"date_created_gmt,omitempty"`
	Total          string          `json:"total,omitempty"`
	TotalTax       string          `json:"total_tax,omitempty"`
	ShippingTotal  string          `json:"shipping_total,omitempty"`
	DiscountTotal  string          `json:"discount_total,omitempty"`
	CustomerNote   string          `json:"customer_note,omitempty"`
	Billing        Address         `json:"billing"`
	Shipping       Address         `json:"shipping"`
	LineItems      []OrderLineItem `json:"line_items"`
	ShippingLines  []ShippingLine  `json:"shipping_lines,omitempty"`
	CouponLines    []CouponLine    `json:"coupon_lines,omitempty"`
	MetaData       []MetaData      `json:"meta_data,omitempty"`
	SetPaid        bool            `json:"set_paid,omitempty"`
}

// Category is a product category, the WooCommerce counterpart of a collection
type Category struct {
	ID          int64  `json:"id,omitempty"`
	Name        string `json:"name"`
	Slug        string `json:"slug,omitempty"`
	Parent      int64  `json:"parent,omitempty"`
	Description string `json:"description,omitempty"`
	Image       *Image `json:"image,omitempty"`
	Count       int    `json:"count,omitempty"`
}

// Coupon is a WooCommerce coupon
type Coupon struct {
	ID                        int64   `json:"id,omitempty"`
	Code                      string  `json:"code"`
	Amount                    string  `json:"amount"`
	DiscountType              string  `json:"discount_type"`
	Description               string  `json:"description,omitempty"`
	DateExpiresGMT            string  `json:"date_expires_gmt,omitempty"`
	UsageCount                int     `json:"usage_count,omitempty"`
	UsageLimit                *int    `json:"usage_limit,omitempty"`
	FreeShipping              bool    `json:"free_shipping"`
	MinimumAmount             string  `json:"minimum_amount,omitempty"`
	ProductIDs                []int64 `json:"product_ids,omitempty"`
	ExcludedProductIDs        []int64 `json:"excluded_product_ids,omitempty"`
	ProductCategories         []int64 `json:"product_categories,omitempty"`
	ExcludedProductCategories []int64 `json:"excluded_product_categories,omitempty"`
}

// Rendered is a WordPress text field. Raw is only returned with context=edit.
type Rendered struct {
	Rendered string `json:"rendered,omitempty"`
	Raw      string `json:"raw,omitempty"`
}

// Text prefers the raw source over the rendered HTML
func (r Rendered) Text() string {
	if r.Raw != "" {
		return r.Raw
	}
	return r.Rendered
}

func renderedOf(s string) Rendered {
	return Rendered{Rendered: s, Raw: s}
}

// Page is a WordPress page
type Page struct {
	ID          int64    `json:"id,omitempty"`
	Slug        string   `json:"slug,omitempty"`
	Status      string   `json:"status,omitempty"`
	Title       Rendered `json:"title"`
	Content     Rendered `json:"content"`
	DateGMT     string   `json:"date_gmt,omitempty"`
	ModifiedGMT string   `json:"modified_gmt,omitempty"`
}

// EmbeddedTerm is a taxonomy term returned with _embed
type EmbeddedTerm struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Taxonomy string `json:"taxonomy"`
}

// Embedded holds the _embed expansion of a post
type Embedded struct {
	Author []struct {
		Name string `json:"name"`
	} `json:"author,omitempty"`
	Terms [][]EmbeddedTerm `json:"wp:term,omitempty"`
}

// Post is a WordPress blog post. TagNames, CategoryNames and AuthorName are
// resolved to ids by the client before a write.
type Post struct {
	ID            int64     `json:"id,omitempty"`
	Slug          string    `json:"slug,omitempty"`
	Status        string    `json:"status,omitempty"`
	Title         Rendered  `json:"title"`
	Content       Rendered  `json:"content"`
	Excerpt       Rendered  `json:"excerpt"`
	DateGMT       string    `json:"date_gmt,omitempty"`
	ModifiedGMT   string    `json:"modified_gmt,omitempty"`
	Tags          []int64   `json:"tags,omitempty"`
	Categories    []int64   `json:"categories,omitempty"`
	TagNames      []string  `json:"tag_names,omitempty"`
	CategoryNames []string  `json:"category_names,omitempty"`
	AuthorName    string    `json:"author_name,omitempty"`
	Embedded      *Embedded `json:"_embedded,omitempty"`
}

// Review is a product review
type Review struct {
	ID             int64  `json:"id,omitempty"`
	ProductID      int64  `json:"product_id"`
	Status         string `json:"status,omitempty"`
	Reviewer       string `json:"reviewer"`
	ReviewerEmail  string `json:"reviewer_email"`
	Review         string `json:"review"`
	Rating         int    `json:"rating"`
	Verified       bool   `json:"verified,omitempty"`
	DateCreatedGMT string `json:"date_created_gmt,omitempty"`
}

func idString(id int64) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}

func (Product) Platform() domain.Platform  { return domain.PlatformWooCommerce }
func (Product) Entity() domain.EntityType  { return domain.EntityProduct }
func (p Product) NativeID() string         { return idString(p.ID) }
func (Customer) Platform() domain.Platform { return domain.PlatformWooCommerce }
func (Customer) Entity() domain.EntityType { return domain.EntityCustomer }
func (c Customer) NativeID() string        { return idString(c.ID) }
func (Order) Platform() domain.Platform    { return domain.PlatformWooCommerce }
func (Order) Entity() domain.EntityType    { return domain.EntityOrder }
func (o Order) NativeID() string           { return idString(o.ID) }
func (Category) Platform() domain.Platform { return domain.PlatformWooCommerce }
func (Category) Entity() domain.EntityType { return domain.EntityCollection }
func (c Category) NativeID() string        { return idString(c.ID) }
func (Coupon) Platform() domain.Platform   { return domain.PlatformWooCommerce }
func (Coupon) Entity() domain.EntityType   { return domain.EntityCoupon }
func (c Coupon) NativeID() string          { return idString(c.ID) }
func (Page) Platform() domain.Platform     { return domain.PlatformWooCommerce }
func (Page) Entity() domain.EntityType     { return domain.EntityPage }
func (p Page) NativeID() string            { return idString(p.ID) }
func (Post) Platform() domain.Platform     { return domain.PlatformWooCommerce }
func (Post) Entity() domain.EntityType     { return domain.EntityBlogPost }
func (p Post) NativeID() string            { return idString(p.ID) }
func (Review) Platform() domain.Platform   { return domain.PlatformWooCommerce }
func (Review) Entity() domain.EntityType   { return domain.EntityReview }
func (r Review) NativeID() string          { return idString(r.ID) }
