package woocommerce

import (
	"github.com/jafarshop/storemigrate/internal/domain"
)

// maxCustomerAddresses is billing plus shipping
const maxCustomerAddresses = 2

func customerToCanonical(c Customer) (domain.Canonical, error) {
	if c.ID == 0 && c.Email == "" {
		return nil, ErrUnidentifiable
	}

	customer := domain.Customer{
		Origin:      origin(c.ID),
		Email:       c.Email,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		Phone:       c.Billing.Phone,
		Metafields:  metaToCanonical(c.MetaData),
		OrdersCount: c.OrdersCount,
		TotalSpent:  c.TotalSpent,
	}

	billing := addressToCanonical(c.Billing)
	shipping := addressToCanonical(c.Shipping)
	if !billing.IsEmpty() {
		billing.IsDefault = true
		customer.Addresses = append(customer.Addresses, billing)
	}
	if !shipping.IsEmpty() && !sameAddress(billing, shipping) {
		if len(customer.Addresses) == 0 {
			shipping.IsDefault = true
		}
		customer.Addresses = append(customer.Addresses, shipping)
	}

	return customer, nil
}

// customerToNative keeps the first address as billing and the second as
// shipping; further addresses are dropped.
func customerToNative(c domain.Customer) Customer {
	customer := Customer{
		Email:     c.Email,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		MetaData:  metaFromCanonical(c.Metafields),
	}

	if len(c.Addresses) > 0 {
		customer.Billing = addressToNative(c.Addresses[0])
		customer.Shipping = customer.Billing
		if len(c.Addresses) > 1 {
			customer.Shipping = addressToNative(c.Addresses[1])
		}
	}
	customer.Billing.Email = c.Email
	customer.Billing.Phone = c.Phone
	customer.Shipping.Email = ""
	customer.Shipping.Phone = ""

	return customer
}

func addressToCanonical(a Address) domain.Address {
	return domain.Address{
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Company:   a.Company,
		Address1:  a.Address1,
		Address2:  a.Address2,
		City:      a.City,
		Province:  a.State,
		Country:   a.Country,
		Zip:       a.Postcode,
	}
}

func addressToNative(a domain.Address) Address {
	return Address{
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Company:   a.Company,
		Address1:  a.Address1,
		Address2:  a.Address2,
		City:      a.City,
		State:     a.Province,
		Postcode:  a.Zip,
		Country:   a.Country,
		Phone:     a.Phone,
	}
}

func sameAddress(a, b domain.Address) bool {
	a.IsDefault, b.IsDefault = false, false
	a.Phone, b.Phone = "", ""
	return a == b
}
