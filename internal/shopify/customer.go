package shopify

import (
	"strconv"

	"github.com/jafarshop/storemigrate/internal/domain"
)

func customerToCanonical(c Customer) (domain.Canonical, error) {
	if c.ID == "" && c.Email == "" {
		return nil, ErrUnidentifiable
	}

	customer := domain.Customer{
		Origin:      origin(c.ID),
		Email:       c.Email,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		Phone:       c.Phone,
		Tags:        c.Tags,
		Notes:       c.Note,
		Metafields:  metafieldsToCanonical(c.Metafields),
		OrdersCount: c.NumberOfOrders,
		TotalSpent:  c.AmountSpent,
	}

	// The default address leads; the rest keep their order
	defaultIdx := 0
	for i, a := range c.Addresses {
		if c.DefaultAddressID != "" && a.ID == c.DefaultAddressID {
			defaultIdx = i
			break
		}
	}
	for i, a := range c.Addresses {
		if i != defaultIdx {
			continue
		}
		addr := addressToCanonical(a)
		addr.IsDefault = true
		customer.Addresses = append(customer.Addresses, addr)
	}
	for i, a := range c.Addresses {
		if i == defaultIdx {
			continue
		}
		customer.Addresses = append(customer.Addresses, addressToCanonical(a))
	}

	return customer, nil
}

// customerToNative writes every address; Shopify makes the first one the
// default.
func customerToNative(c domain.Customer) Customer {
	customer := Customer{
		Email:          c.Email,
		FirstName:      c.FirstName,
		LastName:       c.LastName,
		Phone:          c.Phone,
		Note:           c.Notes,
		Tags:           c.Tags,
		Metafields:     metafieldsToNative(c.Metafields),
		NumberOfOrders: c.OrdersCount,
		AmountSpent:    c.TotalSpent,
	}

	ordered := make([]domain.Address, 0, len(c.Addresses))
	for _, a := range c.Addresses {
		if a.IsDefault {
			ordered = append([]domain.Address{a}, ordered...)
			continue
		}
		ordered = append(ordered, a)
	}
	for _, a := range ordered {
		customer.Addresses = append(customer.Addresses, addressToNative(a))
	}

	return customer
}

// parseCount reads the UnsignedInt64 scalars Shopify sends as strings
func parseCount(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
