package validator

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jafarshop/storemigrate/internal/domain"
)

func validProduct() domain.Product {
	return domain.Product{
		Name:     "Hoodie",
		Price:    "49.99",
		Status:   domain.ProductStatusPublished,
		Variants: []domain.Variant{domain.DefaultVariant("1", "HD-1", "49.99", "", 3)},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		record     domain.Canonical
		entity     domain.EntityType
		wantErrors int
		contains   string
	}{
		{
			name:   "valid product",
			record: validProduct(),
			entity: domain.EntityProduct,
		},
		{
			name:       "product without variants",
			record:     domain.Product{Name: "Hoodie", Price: "49.99"},
			entity:     domain.EntityProduct,
			wantErrors: 1,
			contains:   "variant",
		},
		{
			name:       "product with malformed price",
			record:     domain.Product{Name: "Hoodie", Price: "abc", Variants: validProduct().Variants},
			entity:     domain.EntityProduct,
			wantErrors: 1,
			contains:   "price",
		},
		{
			name:       "empty product reports every required field",
			record:     domain.Product{},
			entity:     domain.EntityProduct,
			wantErrors: 3,
		},
		{
			name:   "customer with last name only",
			record: domain.Customer{Email: "jo@example.com", LastName: "Doe"},
			entity: domain.EntityCustomer,
		},
		{
			name:       "customer with bad email",
			record:     domain.Customer{Email: "not-an-email", FirstName: "Jo"},
			entity:     domain.EntityCustomer,
			wantErrors: 1,
			contains:   "email",
		},
		{
			name:       "customer without names",
			record:     domain.Customer{Email: "jo@example.com"},
			entity:     domain.EntityCustomer,
			wantErrors: 1,
			contains:   "firstName or lastName",
		},
		{
			name: "valid order",
			record: domain.Order{
				OrderNumber: "1001",
				LineItems:   []domain.LineItem{{Title: "Hoodie", Quantity: 1, Price: "49.99"}},
				TotalPrice:  "49.99",
			},
			entity: domain.EntityOrder,
		},
		{
			name:       "order without line items",
			record:     domain.Order{TotalPrice: "10.00"},
			entity:     domain.EntityOrder,
			wantErrors: 1,
			contains:   "line item",
		},
		{
			name: "order with unknown financial status",
			record: domain.Order{
				LineItems:       []domain.LineItem{{Title: "Hoodie", Quantity: 1, Price: "1"}},
				TotalPrice:      "1",
				FinancialStatus: "lost",
			},
			entity:     domain.EntityOrder,
			wantErrors: 1,
			contains:   "financialStatus",
		},
		{
			name:       "collection without name",
			record:     domain.Collection{Slug: "summer"},
			entity:     domain.EntityCollection,
			wantErrors: 1,
			contains:   "name",
		},
		{
			name:   "valid coupon",
			record: domain.Coupon{Code: "SAVE15", Amount: "15", DiscountType: domain.DiscountTypePercentage},
			entity: domain.EntityCoupon,
		},
		{
			name:       "coupon percentage above 100",
			record:     domain.Coupon{Code: "X", Amount: "150", DiscountType: domain.DiscountTypePercentage},
			entity:     domain.EntityCoupon,
			wantErrors: 1,
			contains:   "between 0 and 100",
		},
		{
			name:       "coupon with unknown type",
			record:     domain.Coupon{Code: "X", Amount: "5", DiscountType: "bogo"},
			entity:     domain.EntityCoupon,
			wantErrors: 1,
			contains:   "discountType",
		},
		{
			name:       "page without title",
			record:     domain.Page{Content: "<p>hi</p>"},
			entity:     domain.EntityPage,
			wantErrors: 1,
			contains:   "title",
		},
		{
			name:   "blog post",
			record: domain.BlogPost{Title: "News", Status: domain.ContentStatusPublished},
			entity: domain.EntityBlogPost,
		},
		{
			name:       "review rating out of range",
			record:     domain.Review{ProductID: "5", Rating: 6},
			entity:     domain.EntityReview,
			wantErrors: 1,
			contains:   "rating",
		},
		{
			name:       "review without product",
			record:     domain.Review{Rating: 4},
			entity:     domain.EntityReview,
			wantErrors: 1,
			contains:   "productId",
		},
		{
			name:       "entity mismatch",
			record:     validProduct(),
			entity:     domain.EntityCustomer,
			wantErrors: 1,
			contains:   "expected a customer record",
		},
		{
			name:       "nil record",
			record:     nil,
			entity:     domain.EntityOrder,
			wantErrors: 1,
			contains:   "missing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Validate(tt.record, tt.entity)

			assert.Equal(t, tt.wantErrors == 0, result.Valid)
			require.Len(t, result.Errors, tt.wantErrors, "errors: %v", result.Errors)
			if tt.contains != "" {
				assert.Contains(t, result.Errors[0], tt.contains)
			}
		})
	}
}

func TestValidateIsPure(t *testing.T) {
	v := New()
	record := domain.Coupon{Code: "", Amount: "x"}

	first := v.Validate(record, domain.EntityCoupon)
	second := v.Validate(record, domain.EntityCoupon)

	assert.Equal(t, first, second)
	assert.Equal(t, domain.Coupon{Code: "", Amount: "x"}, record)
}

// Each missing coupon field yields exactly one error
func TestValidateCouponMissingFieldsProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("error count equals missing field count", prop.ForAll(
		func(mask int) bool {
			coupon := domain.Coupon{Code: "SAVE", Amount: "10", DiscountType: domain.DiscountTypeFixedCart}
			missing := 0
			if mask&1 != 0 {
				coupon.Code = ""
				missing++
			}
			if mask&2 != 0 {
				coupon.Amount = ""
				missing++
			}
			if mask&4 != 0 {
				coupon.DiscountType = ""
				missing++
			}

			result := Validate(coupon, domain.EntityCoupon)
			return len(result.Errors) == missing && result.Valid == (missing == 0)
		},
		gen.IntRange(0, 7),
	))

	properties.TestingRun(t)
}
