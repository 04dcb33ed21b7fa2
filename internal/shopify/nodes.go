package shopify

import (
	"encoding/json"
)

// Raw GraphQL shapes. flatten* turn them into the native records.

type pageInfo struct {
	HasNextPage bool   `json:"hasNextPage"`
	EndCursor   string `json:"endCursor"`
}

type connection[T any] struct {
	PageInfo pageInfo `json:"pageInfo"`
	Nodes    []T      `json:"nodes"`
}

type idRef struct {
	ID string `json:"id"`
}

type moneyV2 struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode,omitempty"`
}

type moneyBag struct {
	ShopMoney moneyV2 `json:"shopMoney"`
}

func refID(r *idRef) string {
	if r == nil {
		return ""
	}
	return r.ID
}

func ids(refs []idRef) []string {
	if len(refs) == 0 {
		return nil
	}
	out := make([]string, len(refs))
	for i, r := range refs {
		out[i] = r.ID
	}
	return out
}

type variantNode struct {
	ID                string           `json:"id"`
	Title             string           `json:"title"`
	SKU               string           `json:"sku"`
	Barcode           string           `json:"barcode"`
	Price             string           `json:"price"`
	CompareAtPrice    string           `json:"compareAtPrice"`
	InventoryQuantity int              `json:"inventoryQuantity"`
	InventoryItem     *idRef           `json:"inventoryItem"`
	SelectedOptions   []SelectedOption `json:"selectedOptions"`
}

type productNode struct {
	ID              string                  `json:"id"`
	Title           string                  `json:"title"`
	DescriptionHTML string                  `json:"descriptionHtml"`
	Handle          string                  `json:"handle"`
	Status          string                  `json:"status"`
	ProductType     string                  `json:"productType"`
	Vendor          string                  `json:"vendor"`
	Tags            []string                `json:"tags"`
	SEO             *SEO                    `json:"seo"`
	Images          connection[Image]       `json:"images"`
	Variants        connection[variantNode] `json:"variants"`
	Metafields      connection[Metafield]   `json:"metafields"`
}

func (n productNode) flatten() Product {
	p := Product{
		ID:              n.ID,
		Title:           n.Title,
		DescriptionHTML: n.DescriptionHTML,
		Handle:          n.Handle,
		Status:          n.Status,
		ProductType:     n.ProductType,
		Vendor:          n.Vendor,
		Tags:            n.Tags,
		Images:          n.Images.Nodes,
		Metafields:      n.Metafields.Nodes,
	}
	if n.SEO != nil && (n.SEO.Title != "" || n.SEO.Description != "") {
		p.SEO = n.SEO
	}
	for _, v := range n.Variants.Nodes {
		p.Variants = append(p.Variants, Variant{
			ID:                v.ID,
			Title:             v.Title,
			SKU:               v.SKU,
			Barcode:           v.Barcode,
			Price:             v.Price,
			CompareAtPrice:    v.CompareAtPrice,
			InventoryQuantity: v.InventoryQuantity,
			InventoryItemID:   refID(v.InventoryItem),
			SelectedOptions:   v.SelectedOptions,
		})
	}
	return p
}

type customerNode struct {
	ID             string                `json:"id"`
	Email          string                `json:"email"`
	FirstName      string                `json:"firstName"`
	LastName       string                `json:"lastName"`
	Phone          string                `json:"phone"`
	Note           string                `json:"note"`
	Tags           []string              `json:"tags"`
	NumberOfOrders string                `json:"numberOfOrders"`
	AmountSpent    *moneyV2              `json:"amountSpent"`
	DefaultAddress *idRef                `json:"defaultAddress"`
	Addresses      []MailingAddress      `json:"addresses"`
	Metafields     connection[Metafield] `json:"metafields"`
}

func (n customerNode) flatten() Customer {
	c := Customer{
		ID:               n.ID,
		Email:            n.Email,
		FirstName:        n.FirstName,
		LastName:         n.LastName,
		Phone:            n.Phone,
		Note:             n.Note,
		Tags:             n.Tags,
		Addresses:        n.Addresses,
		DefaultAddressID: refID(n.DefaultAddress),
		NumberOfOrders:   parseCount(n.NumberOfOrders),
		Metafields:       n.Metafields.Nodes,
	}
	if n.AmountSpent != nil {
		c.AmountSpent = n.AmountSpent.Amount
	}
	return c
}

type lineItemNode struct {
	Title                string   `json:"title"`
	Quantity             int      `json:"quantity"`
	SKU                  string   `json:"sku"`
	Variant              *idRef   `json:"variant"`
	Product              *idRef   `json:"product"`
	OriginalUnitPriceSet moneyBag `json:"originalUnitPriceSet"`
}

func flattenLineItems(nodes []lineItemNode) []LineItem {
	items := make([]LineItem, 0, len(nodes))
	for _, n := range nodes {
		items = append(items, LineItem{
			Title:     n.Title,
			Quantity:  n.Quantity,
			SKU:       n.SKU,
			VariantID: refID(n.Variant),
			ProductID: refID(n.Product),
			Price:     n.OriginalUnitPriceSet.ShopMoney.Amount,
		})
	}
	return items
}

type orderNode struct {
	ID                       string                   `json:"id"`
	Name                     string                   `json:"name"`
	Email                    string                   `json:"email"`
	Note                     string                   `json:"note"`
	Tags                     []string                 `json:"tags"`
	CreatedAt                string                   `json:"createdAt"`
	DisplayFinancialStatus   string                   `json:"displayFinancialStatus"`
	DisplayFulfillmentStatus string                   `json:"displayFulfillmentStatus"`
	CurrencyCode             string                   `json:"currencyCode"`
	DiscountCodes            []string                 `json:"discountCodes"`
	CustomAttributes         []Attribute              `json:"customAttributes"`
	TotalPriceSet            moneyBag                 `json:"totalPriceSet"`
	SubtotalPriceSet         *moneyBag                `json:"subtotalPriceSet"`
	TotalTaxSet              *moneyBag                `json:"totalTaxSet"`
	TotalShippingPriceSet    *moneyBag                `json:"totalShippingPriceSet"`
	TotalDiscountsSet        *moneyBag                `json:"totalDiscountsSet"`
	ShippingAddress          *MailingAddress          `json:"shippingAddress"`
	BillingAddress           *MailingAddress          `json:"billingAddress"`
	LineItems                connection[lineItemNode] `json:"lineItems"`
}

func amountOf(b *moneyBag) string {
	if b == nil {
		return ""
	}
	return b.ShopMoney.Amount
}

func (n orderNode) flatten() Order {
	return Order{
		ID:                n.ID,
		Name:              n.Name,
		Email:             n.Email,
		Note:              n.Note,
		Tags:              n.Tags,
		CreatedAt:         n.CreatedAt,
		FinancialStatus:   n.DisplayFinancialStatus,
		FulfillmentStatus: n.DisplayFulfillmentStatus,
		CurrencyCode:      n.CurrencyCode,
		TotalPrice:        n.TotalPriceSet.ShopMoney.Amount,
		SubtotalPrice:     amountOf(n.SubtotalPriceSet),
		TotalTax:          amountOf(n.TotalTaxSet),
		TotalShipping:     amountOf(n.TotalShippingPriceSet),
		TotalDiscounts:    amountOf(n.TotalDiscountsSet),
		DiscountCodes:     n.DiscountCodes,
		CustomAttributes:  n.CustomAttributes,
		LineItems:         flattenLineItems(n.LineItems.Nodes),
		ShippingAddress:   n.ShippingAddress,
		BillingAddress:    n.BillingAddress,
	}
}

type appliedDiscountNode struct {
	Title     string      `json:"title"`
	Value     json.Number `json:"value"`
	ValueType string      `json:"valueType"`
}

type shippingLineNode struct {
	Title            string   `json:"title"`
	OriginalPriceSet moneyBag `json:"originalPriceSet"`
}

type draftOrderNode struct {
	ID                string                   `json:"id"`
	Name              string                   `json:"name"`
	Email             string                   `json:"email"`
	Note              string                   `json:"note2"`
	Tags              []string                 `json:"tags"`
	CreatedAt         string                   `json:"createdAt"`
	CurrencyCode      string                   `json:"currencyCode"`
	CustomAttributes  []Attribute              `json:"customAttributes"`
	TotalPriceSet     moneyBag                 `json:"totalPriceSet"`
	SubtotalPriceSet  *moneyBag                `json:"subtotalPriceSet"`
	TotalTaxSet       *moneyBag                `json:"totalTaxSet"`
	TotalDiscountsSet *moneyBag                `json:"totalDiscountsSet"`
	AppliedDiscount   *appliedDiscountNode     `json:"appliedDiscount"`
	ShippingLine      *shippingLineNode        `json:"shippingLine"`
	ShippingAddress   *MailingAddress          `json:"shippingAddress"`
	BillingAddress    *MailingAddress          `json:"billingAddress"`
	LineItems         connection[lineItemNode] `json:"lineItems"`
}

func (n draftOrderNode) flatten() DraftOrder {
	d := DraftOrder{
		ID:               n.ID,
		Name:             n.Name,
		Email:            n.Email,
		Note:             n.Note,
		Tags:             n.Tags,
		CreatedAt:        n.CreatedAt,
		CurrencyCode:     n.CurrencyCode,
		TotalPrice:       n.TotalPriceSet.ShopMoney.Amount,
		SubtotalPrice:    amountOf(n.SubtotalPriceSet),
		TotalTax:         amountOf(n.TotalTaxSet),
		TotalDiscounts:   amountOf(n.TotalDiscountsSet),
		CustomAttributes: n.CustomAttributes,
		LineItems:        flattenLineItems(n.LineItems.Nodes),
		ShippingAddress:  n.ShippingAddress,
		BillingAddress:   n.BillingAddress,
	}
	if n.AppliedDiscount != nil {
		d.AppliedDiscount = &AppliedDiscount{
			Title:     n.AppliedDiscount.Title,
			Value:     n.AppliedDiscount.Value.String(),
			ValueType: n.AppliedDiscount.ValueType,
		}
	}
	if n.ShippingLine != nil {
		d.ShippingLine = &ShippingLine{
			Title: n.ShippingLine.Title,
			Price: n.ShippingLine.OriginalPriceSet.ShopMoney.Amount,
		}
	}
	return d
}

type collectionNode struct {
	ID              string            `json:"id"`
	Title           string            `json:"title"`
	Handle          string            `json:"handle"`
	DescriptionHTML string            `json:"descriptionHtml"`
	Image           *Image            `json:"image"`
	SEO             *SEO              `json:"seo"`
	Products        connection[idRef] `json:"products"`
}

func (n collectionNode) flatten() Collection {
	c := Collection{
		ID:              n.ID,
		Title:           n.Title,
		Handle:          n.Handle,
		DescriptionHTML: n.DescriptionHTML,
		Image:           n.Image,
		ProductIDs:      ids(n.Products.Nodes),
	}
	if n.SEO != nil && (n.SEO.Title != "" || n.SEO.Description != "") {
		c.SEO = n.SEO
	}
	return c
}

type discountValueNode struct {
	Typename          string      `json:"__typename"`
	Percentage        json.Number `json:"percentage"`
	Amount            *moneyV2    `json:"amount"`
	AppliesOnEachItem bool        `json:"appliesOnEachItem"`
}

type discountItemsNode struct {
	Typename    string            `json:"__typename"`
	Products    connection[idRef] `json:"products"`
	Collections connection[idRef] `json:"collections"`
}

type codeDiscountNode struct {
	Typename        string `json:"__typename"`
	Title           string `json:"title"`
	StartsAt        string `json:"startsAt"`
	EndsAt          string `json:"endsAt"`
	UsageLimit      *int   `json:"usageLimit"`
	AsyncUsageCount int    `json:"asyncUsageCount"`
	Codes           connection[struct {
		Code string `json:"code"`
	}] `json:"codes"`
	CustomerGets *struct {
		Value discountValueNode `json:"value"`
		Items discountItemsNode `json:"items"`
	} `json:"customerGets"`
	MinimumRequirement *struct {
		Typename                     string   `json:"__typename"`
		GreaterThanOrEqualToSubtotal *moneyV2 `json:"greaterThanOrEqualToSubtotal"`
	} `json:"minimumRequirement"`
}

type discountNode struct {
	ID           string           `json:"id"`
	CodeDiscount codeDiscountNode `json:"codeDiscount"`
}

// Code discount typenames
const (
	typeDiscountBasic        = "DiscountCodeBasic"
	typeDiscountFreeShipping = "DiscountCodeFreeShipping"
	typeDiscountPercentage   = "DiscountPercentage"
)

// flatten returns false for discount kinds that have no coupon form, such
// as buy-x-get-y and app discounts.
func (n discountNode) flatten() (DiscountCode, bool) {
	cd := n.CodeDiscount
	if cd.Typename != typeDiscountBasic && cd.Typename != typeDiscountFreeShipping {
		return DiscountCode{}, false
	}

	d := DiscountCode{
		ID:         n.ID,
		Title:      cd.Title,
		ValueType:  ValueFixedAmount,
		StartsAt:   cd.StartsAt,
		EndsAt:     cd.EndsAt,
		UsageLimit: cd.UsageLimit,
		UsageCount: cd.AsyncUsageCount,
	}
	if len(cd.Codes.Nodes) > 0 {
		d.Code = cd.Codes.Nodes[0].Code
	}
	if cd.MinimumRequirement != nil && cd.MinimumRequirement.GreaterThanOrEqualToSubtotal != nil {
		d.MinimumSubtotal = cd.MinimumRequirement.GreaterThanOrEqualToSubtotal.Amount
	}

	if cd.Typename == typeDiscountFreeShipping {
		d.FreeShipping = true
		d.Value = "0"
		return d, true
	}

	if gets := cd.CustomerGets; gets != nil {
		if gets.Value.Typename == typeDiscountPercentage {
			d.ValueType = ValuePercentage
			d.Value = gets.Value.Percentage.String()
		} else if gets.Value.Amount != nil {
			d.Value = gets.Value.Amount.Amount
			d.AppliesOnEachItem = gets.Value.AppliesOnEachItem
		}
		d.ProductIDs = ids(gets.Items.Products.Nodes)
		d.CollectionIDs = ids(gets.Items.Collections.Nodes)
	}
	return d, true
}

type articleNode struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Handle      string   `json:"handle"`
	Body        string   `json:"body"`
	Summary     string   `json:"summary"`
	Tags        []string `json:"tags"`
	IsPublished bool     `json:"isPublished"`
	PublishedAt string   `json:"publishedAt"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt"`
	Author      *struct {
		Name string `json:"name"`
	} `json:"author"`
	Blog *struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	} `json:"blog"`
}

func (n articleNode) flatten() Article {
	a := Article{
		ID:          n.ID,
		Title:       n.Title,
		Handle:      n.Handle,
		Body:        n.Body,
		Summary:     n.Summary,
		Tags:        n.Tags,
		IsPublished: n.IsPublished,
		PublishedAt: n.PublishedAt,
		CreatedAt:   n.CreatedAt,
		UpdatedAt:   n.UpdatedAt,
	}
	if n.Author != nil {
		a.Author = n.Author.Name
	}
	if n.Blog != nil {
		a.BlogID = n.Blog.ID
		a.BlogTitle = n.Blog.Title
	}
	return a
}
