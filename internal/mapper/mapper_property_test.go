package mapper

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/jafarshop/storemigrate/internal/domain"
	"github.com/jafarshop/storemigrate/internal/normalize"
	"github.com/jafarshop/storemigrate/internal/shopify"
	"github.com/jafarshop/storemigrate/internal/woocommerce"
)

func TestPercentageCouponRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)
	m := newMapper()

	properties.Property("woocommerce to shopify and back keeps code and percent", prop.ForAll(
		func(code string, percent int, cents int) bool {
			amount := fmt.Sprintf("%d.%02d", percent, cents)
			out, err := m.Migrate(woocommerce.Coupon{ID: 1, Code: code, Amount: amount, DiscountType: "percent"},
				domain.EntityCoupon, domain.PlatformWooCommerce, domain.PlatformShopify)
			if err != nil {
				return false
			}
			discount, ok := out.(shopify.DiscountCode)
			if !ok || discount.ValueType != shopify.ValuePercentage {
				return false
			}

			back, err := m.Migrate(discount, domain.EntityCoupon, domain.PlatformShopify, domain.PlatformWooCommerce)
			if err != nil {
				return false
			}
			coupon, ok := back.(woocommerce.Coupon)
			return ok &&
				coupon.Code == code &&
				coupon.DiscountType == "percent" &&
				normalize.CanonicalMoney(coupon.Amount) == amount
		},
		gen.Identifier(),
		gen.IntRange(0, 99),
		gen.IntRange(0, 99),
	))

	properties.TestingRun(t)
}
