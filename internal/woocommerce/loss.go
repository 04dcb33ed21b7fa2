package woocommerce

import (
	"fmt"

	"github.com/jafarshop/storemigrate/internal/domain"
)

// LossyConversions lists what a WooCommerce write of c cannot carry
func (Normalizer) LossyConversions(c domain.Canonical) []string {
	var warnings []string

	switch v := c.(type) {
	case domain.Product:
		if v.Status == domain.ProductStatusArchived {
			warnings = append(warnings, "archived status will be written as draft")
		}
	case domain.Customer:
		if len(v.Addresses) > maxCustomerAddresses {
			warnings = append(warnings, fmt.Sprintf("customer has %d addresses, only %d will be migrated", len(v.Addresses), maxCustomerAddresses))
		}
		if len(v.Tags) > 0 {
			warnings = append(warnings, "customer tags are not supported and will be dropped")
		}
		if v.Notes != "" {
			warnings = append(warnings, "customer notes are not supported and will be dropped")
		}
	case domain.Order:
		if len(v.Tags) > 0 {
			warnings = append(warnings, "order tags are not supported and will be dropped")
		}
		if v.FulfillmentStatus == domain.FulfillmentStatusPartial {
			warnings = append(warnings, "partial fulfillment will be written as processing")
		}
	case domain.Collection:
		if len(v.ProductIDs) > 0 {
			warnings = append(warnings, fmt.Sprintf("%d product assignments must be set on the products themselves", len(v.ProductIDs)))
		}
		if v.SEO != nil {
			warnings = append(warnings, "collection SEO fields will be dropped")
		}
	}

	return warnings
}
