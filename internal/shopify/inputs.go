package shopify

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/jafarshop/storemigrate/internal/normalize"
)

const (
	fileContentTypeImage = "IMAGE"
	onHandQuantityName   = "available"
	inventoryReason      = "correction"
)

// productSetInput builds the productSet input. Quantities are only set when
// a location is configured.
func productSetInput(p Product, locationID string) ProductSetInput {
	input := ProductSetInput{
		Title:           p.Title,
		DescriptionHTML: optional(p.DescriptionHTML),
		Handle:          optional(p.Handle),
		Status:          firstNonEmpty(p.Status, StatusDraft),
		ProductType:     optional(p.ProductType),
		Vendor:          optional(p.Vendor),
		Tags:            p.Tags,
		SEO:             seoInput(p.SEO),
	}

	for _, img := range p.Images {
		input.Files = append(input.Files, FileSetInput{
			OriginalSource: img.URL,
			Alt:            optional(img.AltText),
			ContentType:    fileContentTypeImage,
		})
	}
	for _, m := range p.Metafields {
		input.Metafields = append(input.Metafields, MetafieldInput(m))
	}

	// Options keep first-seen order of names and values
	var optionNames []string
	optionValues := map[string][]string{}
	seen := map[string]bool{}

	for _, v := range p.Variants {
		opts := v.SelectedOptions
		if len(opts) == 0 {
			opts = []SelectedOption{{Name: defaultOptionName, Value: firstNonEmpty(v.Title, defaultOptionValue)}}
		}

		variant := ProductVariantSetInput{
			Price:          v.Price,
			CompareAtPrice: optional(v.CompareAtPrice),
			Barcode:        optional(v.Barcode),
			SKU:            optional(v.SKU),
		}
		if locationID != "" {
			variant.InventoryQuantities = []InventoryQuantityInput{{
				LocationID: locationID,
				Name:       onHandQuantityName,
				Quantity:   v.InventoryQuantity,
			}}
		}

		for _, o := range opts {
			variant.OptionValues = append(variant.OptionValues, VariantOptionValueInput{OptionName: o.Name, Name: o.Value})
			if _, ok := optionValues[o.Name]; !ok {
				optionNames = append(optionNames, o.Name)
			}
			key := o.Name + "\x00" + o.Value
			if !seen[key] {
				seen[key] = true
				optionValues[o.Name] = append(optionValues[o.Name], o.Value)
			}
		}
		input.Variants = append(input.Variants, variant)
	}

	for _, name := range optionNames {
		opt := OptionSetInput{Name: name}
		for _, v := range optionValues[name] {
			opt.Values = append(opt.Values, OptionValueSetInput{Name: v})
		}
		input.ProductOptions = append(input.ProductOptions, opt)
	}

	return input
}

func seoInput(s *SEO) *SEOInput {
	if s == nil {
		return nil
	}
	return &SEOInput{Title: optional(s.Title), Description: optional(s.Description)}
}

func mailingAddressInput(a MailingAddress) MailingAddressInput {
	return MailingAddressInput{
		FirstName: optional(a.FirstName),
		LastName:  optional(a.LastName),
		Company:   optional(a.Company),
		Address1:  optional(a.Address1),
		Address2:  optional(a.Address2),
		City:      optional(a.City),
		Province:  optional(a.Province),
		Country:   optional(a.Country),
		Zip:       optional(a.Zip),
		Phone:     optional(a.Phone),
	}
}

func optionalAddressInput(a *MailingAddress) *MailingAddressInput {
	if a == nil {
		return nil
	}
	in := mailingAddressInput(*a)
	return &in
}

func customerInput(c Customer) CustomerInput {
	input := CustomerInput{
		Email:     optional(c.Email),
		FirstName: optional(c.FirstName),
		LastName:  optional(c.LastName),
		Phone:     optional(c.Phone),
		Note:      optional(c.Note),
		Tags:      c.Tags,
	}
	for _, a := range c.Addresses {
		input.Addresses = append(input.Addresses, mailingAddressInput(a))
	}
	for _, m := range c.Metafields {
		input.Metafields = append(input.Metafields, MetafieldInput(m))
	}
	return input
}

// draftOrderInput keeps variant references only for variants that exist on
// the shop; other lines become custom lines priced from the source order.
func draftOrderInput(d DraftOrder) DraftOrderInput {
	input := DraftOrderInput{
		LineItems:       []DraftOrderLineItemInput{},
		Email:           optional(d.Email),
		ShippingAddress: optionalAddressInput(d.ShippingAddress),
		BillingAddress:  optionalAddressInput(d.BillingAddress),
		Tags:            d.Tags,
		Note:            optional(d.Note),
	}

	for _, li := range d.LineItems {
		item := DraftOrderLineItemInput{Quantity: li.Quantity}
		if IsGID(li.VariantID, "ProductVariant") {
			item.VariantID = optional(li.VariantID)
		} else {
			item.Title = optional(firstNonEmpty(li.Title, li.SKU))
			item.SKU = optional(li.SKU)
			item.OriginalUnitPrice = optional(firstNonEmpty(li.Price, "0"))
		}
		input.LineItems = append(input.LineItems, item)
	}

	for _, a := range d.CustomAttributes {
		input.CustomAttributes = append(input.CustomAttributes, DraftOrderAttributeInput(a))
	}

	if ad := d.AppliedDiscount; ad != nil {
		value := ad.Value
		if !normalize.IsMoney(value) {
			value = "0"
		}
		input.AppliedDiscount = &AppliedDiscountInput{
			Title:     optional(ad.Title),
			Value:     json.Number(value),
			ValueType: strings.ToUpper(ad.ValueType),
		}
	}
	if sl := d.ShippingLine; sl != nil {
		input.ShippingLine = &ShippingLineInput{Title: sl.Title, Price: firstNonEmpty(sl.Price, "0")}
	}

	return input
}

func collectionInput(c Collection) CollectionInput {
	input := CollectionInput{
		Title:           c.Title,
		Handle:          optional(c.Handle),
		DescriptionHTML: optional(c.DescriptionHTML),
		SEO:             seoInput(c.SEO),
	}
	if c.Image != nil && c.Image.URL != "" {
		input.Image = &ImageInput{Src: c.Image.URL, AltText: optional(c.Image.AltText)}
	}
	for _, id := range c.ProductIDs {
		if IsGID(id, "Product") {
			input.Products = append(input.Products, id)
		}
	}
	return input
}

// usesFreeShipping reports whether d is written as a free shipping
// discount. Free shipping with a non-zero amount keeps the amount.
func usesFreeShipping(d DiscountCode) bool {
	return d.FreeShipping && normalize.IsZeroMoney(d.Value)
}

func discountStart(d DiscountCode, now time.Time) string {
	if d.StartsAt != "" {
		return d.StartsAt
	}
	return now.UTC().Format(time.RFC3339)
}

func minimumRequirement(d DiscountCode) *MinimumRequirementInput {
	if d.MinimumSubtotal == "" || normalize.IsZeroMoney(d.MinimumSubtotal) {
		return nil
	}
	return &MinimumRequirementInput{Subtotal: MinimumSubtotalInput{GreaterThanOrEqualToSubtotal: d.MinimumSubtotal}}
}

func discountBasicInput(d DiscountCode, now time.Time) DiscountCodeBasicInput {
	input := DiscountCodeBasicInput{
		Title:              firstNonEmpty(d.Title, d.Code),
		Code:               d.Code,
		StartsAt:           discountStart(d, now),
		EndsAt:             optional(d.EndsAt),
		UsageLimit:         d.UsageLimit,
		CustomerSelection:  CustomerSelectionInput{All: true},
		MinimumRequirement: minimumRequirement(d),
	}

	if d.ValueType == ValuePercentage {
		pct := json.Number(firstNonEmpty(d.Value, "0"))
		input.CustomerGets.Value.Percentage = &pct
	} else {
		input.CustomerGets.Value.DiscountAmount = &DiscountAmountInput{
			Amount:            firstNonEmpty(d.Value, "0"),
			AppliesOnEachItem: d.AppliesOnEachItem,
		}
	}

	products := filterGIDs(d.ProductIDs, "Product")
	collections := filterGIDs(d.CollectionIDs, "Collection")
	switch {
	case len(products) > 0:
		input.CustomerGets.Items.Products = &DiscountProductsInput{ProductsToAdd: products}
	case len(collections) > 0:
		input.CustomerGets.Items.Collections = &DiscountCollectionsInput{Add: collections}
	default:
		all := true
		input.CustomerGets.Items.All = &all
	}

	return input
}

func discountFreeShippingInput(d DiscountCode, now time.Time) DiscountCodeFreeShippingInput {
	return DiscountCodeFreeShippingInput{
		Title:              firstNonEmpty(d.Title, d.Code),
		Code:               d.Code,
		StartsAt:           discountStart(d, now),
		EndsAt:             optional(d.EndsAt),
		UsageLimit:         d.UsageLimit,
		CustomerSelection:  CustomerSelectionInput{All: true},
		Destination:        DestinationInput{All: true},
		MinimumRequirement: minimumRequirement(d),
	}
}

func filterGIDs(values []string, kind string) []string {
	var out []string
	for _, v := range values {
		if IsGID(v, kind) {
			out = append(out, v)
		}
	}
	return out
}

func pageCreateInput(p Page) PageCreateInput {
	input := PageCreateInput{
		Title:       p.Title,
		Handle:      optional(p.Handle),
		Body:        p.Body,
		IsPublished: p.IsPublished,
	}
	if p.IsPublished {
		input.PublishDate = optional(p.PublishedAt)
	}
	return input
}

func articleCreateInput(a Article, blogID string) ArticleCreateInput {
	input := ArticleCreateInput{
		BlogID:      blogID,
		Title:       a.Title,
		Handle:      optional(a.Handle),
		Body:        a.Body,
		Summary:     optional(a.Summary),
		Author:      ArticleAuthorInput{Name: firstNonEmpty(a.Author, defaultAuthor)},
		Tags:        a.Tags,
		IsPublished: a.IsPublished,
	}
	if a.IsPublished {
		input.PublishDate = optional(a.PublishedAt)
	}
	return input
}
