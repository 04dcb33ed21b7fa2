package reconcile

import (
	"fmt"
	"strings"

	"github.com/jafarshop/storemigrate/internal/domain"
	"github.com/jafarshop/storemigrate/internal/normalize"
)

// CustomerFilter is the outcome of FilterCustomers
type CustomerFilter struct {
	Customers       []domain.Customer
	Dropped         int
	FallbackApplied bool
	Warning         string
}

// FilterCustomers drops nameless customers as spam. When sourceOfTruth is
// WooCommerce it also drops customers that never ordered nor spent, unless
// that would drop every remaining customer; the inactivity filter is then
// skipped and FallbackApplied is set.
func FilterCustomers(customers []domain.Customer, sourceOfTruth domain.Platform) CustomerFilter {
	named := make([]domain.Customer, 0, len(customers))
	for _, c := range customers {
		if strings.TrimSpace(c.FirstName) == "" && strings.TrimSpace(c.LastName) == "" {
			continue
		}
		named = append(named, c)
	}

	result := CustomerFilter{Customers: named, Dropped: len(customers) - len(named)}
	if sourceOfTruth != domain.PlatformWooCommerce || len(named) == 0 {
		return result
	}

	active := make([]domain.Customer, 0, len(named))
	for _, c := range named {
		if c.OrdersCount > 0 || !normalize.IsZeroMoney(c.TotalSpent) {
			active = append(active, c)
		}
	}

	if len(active) == 0 {
		result.FallbackApplied = true
		result.Warning = fmt.Sprintf("all %d %s customers have no orders and no spend; the inactivity filter was skipped, order statistics may be missing from the source",
			len(named), sourceOfTruth.DisplayName())
		return result
	}

	result.Customers = active
	result.Dropped = len(customers) - len(active)
	return result
}

// FilterCanonicalCustomers applies FilterCustomers to a canonical record
// set. Records that are not customers pass through.
func FilterCanonicalCustomers(records []domain.Canonical, sourceOfTruth domain.Platform) ([]domain.Canonical, CustomerFilter) {
	var customers []domain.Customer
	var others []domain.Canonical
	for _, rec := range records {
		if c, ok := rec.(domain.Customer); ok {
			customers = append(customers, c)
		} else {
			others = append(others, rec)
		}
	}

	filter := FilterCustomers(customers, sourceOfTruth)
	out := make([]domain.Canonical, 0, len(filter.Customers)+len(others))
	for _, c := range filter.Customers {
		out = append(out, c)
	}
	return append(out, others...), filter
}
