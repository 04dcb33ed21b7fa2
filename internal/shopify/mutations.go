package shopify

import (
	"encoding/json"
)

// ProductSetMutation creates a product with its options and variants in one call
const ProductSetMutation = `
mutation productSet($input: ProductSetInput!) {
  productSet(synchronous: true, input: $input) {
    product {
      id
    }
    userErrors {
      field
      message
    }
  }
}
`

// CustomerCreateMutation creates a customer
const CustomerCreateMutation = `
mutation customerCreate($input: CustomerInput!) {
  customerCreate(input: $input) {
    customer {
      id
    }
    userErrors {
      field
      message
    }
  }
}
`

// DraftOrderCreateMutation creates a draft order
const DraftOrderCreateMutation = `
mutation draftOrderCreate($input: DraftOrderInput!) {
  draftOrderCreate(input: $input) {
    draftOrder {
      id
      name
    }
    userErrors {
      field
      message
    }
  }
}
`

// CollectionCreateMutation creates a custom collection
const CollectionCreateMutation = `
mutation collectionCreate($input: CollectionInput!) {
  collectionCreate(input: $input) {
    collection {
      id
    }
    userErrors {
      field
      message
    }
  }
}
`

// DiscountCodeBasicCreateMutation creates an amount or percentage code discount
const DiscountCodeBasicCreateMutation = `
mutation discountCodeBasicCreate($basicCodeDiscount: DiscountCodeBasicInput!) {
  discountCodeBasicCreate(basicCodeDiscount: $basicCodeDiscount) {
    codeDiscountNode {
      id
    }
    userErrors {
      field
      message
    }
  }
}
`

// DiscountCodeFreeShippingCreateMutation creates a free shipping code discount
const DiscountCodeFreeShippingCreateMutation = `
mutation discountCodeFreeShippingCreate($freeShippingCodeDiscount: DiscountCodeFreeShippingInput!) {
  discountCodeFreeShippingCreate(freeShippingCodeDiscount: $freeShippingCodeDiscount) {
    codeDiscountNode {
      id
    }
    userErrors {
      field
      message
    }
  }
}
`

// PageCreateMutation creates an online store page
const PageCreateMutation = `
mutation pageCreate($page: PageCreateInput!) {
  pageCreate(page: $page) {
    page {
      id
    }
    userErrors {
      field
      message
    }
  }
}
`

// BlogCreateMutation creates a blog for articles whose blog does not exist yet
const BlogCreateMutation = `
mutation blogCreate($blog: BlogCreateInput!) {
  blogCreate(blog: $blog) {
    blog {
      id
    }
    userErrors {
      field
      message
    }
  }
}
`

// ArticleCreateMutation creates a blog article
const ArticleCreateMutation = `
mutation articleCreate($article: ArticleCreateInput!) {
  articleCreate(article: $article) {
    article {
      id
    }
    userErrors {
      field
      message
    }
  }
}
`

// InventorySetOnHandMutation sets absolute on-hand quantities at a location
const InventorySetOnHandMutation = `
mutation inventorySetOnHandQuantities($input: InventorySetOnHandQuantitiesInput!) {
  inventorySetOnHandQuantities(input: $input) {
    inventoryAdjustmentGroup {
      reason
    }
    userErrors {
      field
      message
    }
  }
}
`

// ProductSetInput represents the input for productSet
type ProductSetInput struct {
	Title           string                   `json:"title"`
	DescriptionHTML *string                  `json:"descriptionHtml,omitempty"`
	Handle          *string                  `json:"handle,omitempty"`
	Status          string                   `json:"status"`
	ProductType     *string                  `json:"productType,omitempty"`
	Vendor          *string                  `json:"vendor,omitempty"`
	Tags            []string                 `json:"tags,omitempty"`
	ProductOptions  []OptionSetInput         `json:"productOptions,omitempty"`
	Variants        []ProductVariantSetInput `json:"variants,omitempty"`
	Files           []FileSetInput           `json:"files,omitempty"`
	Metafields      []MetafieldInput         `json:"metafields,omitempty"`
	SEO             *SEOInput                `json:"seo,omitempty"`
}

type OptionSetInput struct {
	Name   string                `json:"name"`
	Values []OptionValueSetInput `json:"values"`
}

type OptionValueSetInput struct {
	Name string `json:"name"`
}

type ProductVariantSetInput struct {
	OptionValues        []VariantOptionValueInput `json:"optionValues"`
	Price               string                    `json:"price,omitempty"`
	CompareAtPrice      *string                   `json:"compareAtPrice,omitempty"`
	Barcode             *string                   `json:"barcode,omitempty"`
	SKU                 *string                   `json:"sku,omitempty"`
	InventoryQuantities []InventoryQuantityInput  `json:"inventoryQuantities,omitempty"`
}

type VariantOptionValueInput struct {
	OptionName string `json:"optionName"`
	Name       string `json:"name"`
}

type InventoryQuantityInput struct {
	LocationID string `json:"locationId"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
}

type FileSetInput struct {
	OriginalSource string  `json:"originalSource"`
	Alt            *string `json:"alt,omitempty"`
	ContentType    string  `json:"contentType"`
}

type MetafieldInput struct {
	Namespace string `json:"namespace"`
	Key       string `json:"key"`
	Value     string `json:"value"`
	Type      string `json:"type"`
}

type SEOInput struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

// CustomerInput represents the input for customerCreate
type CustomerInput struct {
	Email      *string               `json:"email,omitempty"`
	FirstName  *string               `json:"firstName,omitempty"`
	LastName   *string               `json:"lastName,omitempty"`
	Phone      *string               `json:"phone,omitempty"`
	Note       *string               `json:"note,omitempty"`
	Tags       []string              `json:"tags,omitempty"`
	Addresses  []MailingAddressInput `json:"addresses,omitempty"`
	Metafields []MetafieldInput      `json:"metafields,omitempty"`
}

type MailingAddressInput struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Company   *string `json:"company,omitempty"`
	Address1  *string `json:"address1,omitempty"`
	Address2  *string `json:"address2,omitempty"`
	City      *string `json:"city,omitempty"`
	Province  *string `json:"province,omitempty"`
	Country   *string `json:"country,omitempty"`
	Zip       *string `json:"zip,omitempty"`
	Phone     *string `json:"phone,omitempty"`
}

// DraftOrderInput represents the input for creating a draft order
type DraftOrderInput struct {
	LineItems        []DraftOrderLineItemInput  `json:"lineItems"`
	Email            *string                    `json:"email,omitempty"`
	ShippingAddress  *MailingAddressInput       `json:"shippingAddress,omitempty"`
	BillingAddress   *MailingAddressInput       `json:"billingAddress,omitempty"`
	Tags             []string                   `json:"tags,omitempty"`
	Note             *string                    `json:"note,omitempty"`
	CustomAttributes []DraftOrderAttributeInput `json:"customAttributes,omitempty"`
	AppliedDiscount  *AppliedDiscountInput      `json:"appliedDiscount,omitempty"`
	ShippingLine     *ShippingLineInput         `json:"shippingLine,omitempty"`
}

type DraftOrderLineItemInput struct {
	VariantID         *string `json:"variantId,omitempty"`
	Title             *string `json:"title,omitempty"`
	SKU               *string `json:"sku,omitempty"`
	OriginalUnitPrice *string `json:"originalUnitPrice,omitempty"`
	Quantity          int     `json:"quantity"`
}

type DraftOrderAttributeInput struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// AppliedDiscountInput carries Value as a JSON number (GraphQL Float)
type AppliedDiscountInput struct {
	Title     *string     `json:"title,omitempty"`
	Value     json.Number `json:"value"`
	ValueType string      `json:"valueType"`
}

type ShippingLineInput struct {
	Title string `json:"title"`
	Price string `json:"price"`
}

// CollectionInput represents the input for collectionCreate
type CollectionInput struct {
	Title           string      `json:"title"`
	Handle          *string     `json:"handle,omitempty"`
	DescriptionHTML *string     `json:"descriptionHtml,omitempty"`
	Image           *ImageInput `json:"image,omitempty"`
	Products        []string    `json:"products,omitempty"`
	SEO             *SEOInput   `json:"seo,omitempty"`
}

type ImageInput struct {
	Src     string  `json:"src"`
	AltText *string `json:"altText,omitempty"`
}

// DiscountCodeBasicInput represents the input for discountCodeBasicCreate
type DiscountCodeBasicInput struct {
	Title              string                   `json:"title"`
	Code               string                   `json:"code"`
	StartsAt           string                   `json:"startsAt"`
	EndsAt             *string                  `json:"endsAt,omitempty"`
	UsageLimit         *int                     `json:"usageLimit,omitempty"`
	CustomerSelection  CustomerSelectionInput   `json:"customerSelection"`
	CustomerGets       CustomerGetsInput        `json:"customerGets"`
	MinimumRequirement *MinimumRequirementInput `json:"minimumRequirement,omitempty"`
}

// DiscountCodeFreeShippingInput represents the input for discountCodeFreeShippingCreate
type DiscountCodeFreeShippingInput struct {
	Title              string                   `json:"title"`
	Code               string                   `json:"code"`
	StartsAt           string                   `json:"startsAt"`
	EndsAt             *string                  `json:"endsAt,omitempty"`
	UsageLimit         *int                     `json:"usageLimit,omitempty"`
	CustomerSelection  CustomerSelectionInput   `json:"customerSelection"`
	Destination        DestinationInput         `json:"destination"`
	MinimumRequirement *MinimumRequirementInput `json:"minimumRequirement,omitempty"`
}

type CustomerSelectionInput struct {
	All bool `json:"all"`
}

type DestinationInput struct {
	All bool `json:"all"`
}

type CustomerGetsInput struct {
	Value DiscountValueInput `json:"value"`
	Items DiscountItemsInput `json:"items"`
}

type DiscountValueInput struct {
	Percentage     *json.Number         `json:"percentage,omitempty"`
	DiscountAmount *DiscountAmountInput `json:"discountAmount,omitempty"`
}

type DiscountAmountInput struct {
	Amount            string `json:"amount"`
	AppliesOnEachItem bool   `json:"appliesOnEachItem"`
}

type DiscountItemsInput struct {
	All         *bool                     `json:"all,omitempty"`
	Products    *DiscountProductsInput    `json:"products,omitempty"`
	Collections *DiscountCollectionsInput `json:"collections,omitempty"`
}

type DiscountProductsInput struct {
	ProductsToAdd []string `json:"productsToAdd"`
}

type DiscountCollectionsInput struct {
	Add []string `json:"add"`
}

type MinimumRequirementInput struct {
	Subtotal MinimumSubtotalInput `json:"subtotal"`
}

type MinimumSubtotalInput struct {
	GreaterThanOrEqualToSubtotal string `json:"greaterThanOrEqualToSubtotal"`
}

// PageCreateInput represents the input for pageCreate
type PageCreateInput struct {
	Title       string  `json:"title"`
	Handle      *string `json:"handle,omitempty"`
	Body        string  `json:"body"`
	IsPublished bool    `json:"isPublished"`
	PublishDate *string `json:"publishDate,omitempty"`
}

// ArticleCreateInput represents the input for articleCreate
type ArticleCreateInput struct {
	BlogID      string             `json:"blogId"`
	Title       string             `json:"title"`
	Handle      *string            `json:"handle,omitempty"`
	Body        string             `json:"body"`
	Summary     *string            `json:"summary,omitempty"`
	Author      ArticleAuthorInput `json:"author"`
	Tags        []string           `json:"tags,omitempty"`
	IsPublished bool               `json:"isPublished"`
	PublishDate *string            `json:"publishDate,omitempty"`
}

type ArticleAuthorInput struct {
	Name string `json:"name"`
}

type InventorySetOnHandQuantitiesInput struct {
	Reason        string                      `json:"reason"`
	SetQuantities []InventorySetQuantityInput `json:"setQuantities"`
}

type InventorySetQuantityInput struct {
	InventoryItemID string `json:"inventoryItemId"`
	LocationID      string `json:"locationId"`
	Quantity        int    `json:"quantity"`
}

// optional returns nil for an empty string so omitempty drops the field
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
