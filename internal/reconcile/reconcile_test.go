package reconcile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jafarshop/storemigrate/internal/domain"
	"github.com/jafarshop/storemigrate/internal/normalize"
	"github.com/jafarshop/storemigrate/internal/shopify"
	"github.com/jafarshop/storemigrate/internal/woocommerce"
)

func product(id, sku, name string, quantity int) domain.Product {
	return domain.Product{
		Origin:   domain.Origin{OriginalID: id},
		Name:     name,
		SKU:      sku,
		Price:    "10.00",
		Variants: []domain.Variant{domain.DefaultVariant(id, sku, "10.00", "", quantity)},
	}
}

func canonicals[T domain.Canonical](records ...T) []domain.Canonical {
	out := make([]domain.Canonical, len(records))
	for i, r := range records {
		out[i] = r
	}
	return out
}

func TestFindGapsMatchesSKUCaseInsensitively(t *testing.T) {
	source := canonicals(product("1", "A1", "Red Hat", 0), product("2", "B2", "Blue Hat", 0))
	destination := canonicals(product("gid://shopify/Product/9", "a1", "Red Hat (new)", 0))

	report := FindGaps(domain.EntityProduct, source, destination)

	require.Len(t, report.Differences, 1)
	diff := report.Differences[0].(domain.ProductDifference)
	assert.Equal(t, "B2", diff.SKU)
	assert.Equal(t, "Blue Hat", diff.Name)
	assert.Equal(t, 1, report.Summary.Matched)
	assert.Equal(t, 1, report.Summary.OnlyInSource)
	assert.Equal(t, 0, report.Summary.OnlyInDestination)
}

func TestFindGapsFallsBackToSecondaryKey(t *testing.T) {
	source := canonicals(product("1", "", "Blue Widget ", 0))
	destination := canonicals(product("2", "BW-9", "blue widget", 0))

	report := FindGaps(domain.EntityProduct, source, destination)

	assert.Empty(t, report.Differences)
	assert.Equal(t, 1, report.Summary.Matched)
}

func TestFindGapsPrimaryWinsOverSecondary(t *testing.T) {
	source := canonicals(product("1", "SKU-1", "Shared Name", 0))
	destination := canonicals(
		product("a", "OTHER", "Shared Name", 0),
		product("b", "sku-1", "Different", 0),
	)

	idx := newIndex(destination)
	i, ok := idx.lookup(source[0])

	require.True(t, ok)
	assert.Equal(t, 1, i)
}

func TestIndexLastWriteWins(t *testing.T) {
	destination := canonicals(
		domain.Coupon{Origin: domain.Origin{OriginalID: "first"}, Code: "SAVE"},
		domain.Coupon{Origin: domain.Origin{OriginalID: "second"}, Code: "save"},
	)

	i, ok := newIndex(destination).lookup(domain.Coupon{Code: " SAVE "})

	require.True(t, ok)
	assert.Equal(t, 1, i)
}

func TestRecordsWithoutKeysNeverMatch(t *testing.T) {
	source := canonicals(domain.Customer{FirstName: "No", LastName: "Email"})
	destination := canonicals(domain.Customer{FirstName: "No", LastName: "Email"})

	report := FindGaps(domain.EntityCustomer, source, destination)

	assert.Len(t, report.Differences, 1)
	assert.Equal(t, 1, report.Summary.OnlyInDestination)
}

func TestOrderKeys(t *testing.T) {
	t.Run("notes never replace the number", func(t *testing.T) {
		primary, _ := Keys(domain.Order{OrderNumber: "100", Notes: "Gift Order #7 for grandma"})
		assert.Equal(t, "100", primary)
	})

	t.Run("hash prefix stripped", func(t *testing.T) {
		primary, _ := Keys(domain.Order{OrderNumber: "#1001"})
		assert.Equal(t, "1001", primary)
	})

	t.Run("email and normalized total", func(t *testing.T) {
		_, a := Keys(domain.Order{Email: "Jo@Example.com ", TotalPrice: "10.5"})
		_, b := Keys(domain.Order{Email: "jo@example.com", TotalPrice: "10.50"})
		assert.NotEmpty(t, a)
		assert.Equal(t, a, b)
	})

	t.Run("no secondary without total", func(t *testing.T) {
		_, secondary := Keys(domain.Order{Email: "jo@example.com"})
		assert.Empty(t, secondary)
	})
}

func TestFindOrphans(t *testing.T) {
	source := canonicals(
		domain.Collection{Origin: domain.Origin{OriginalID: "1"}, Name: "Hats", Slug: "hats"},
	)
	destination := canonicals(
		domain.Collection{Origin: domain.Origin{OriginalID: "g1"}, Name: "Hats", Slug: "hats-1"},
		domain.Collection{Origin: domain.Origin{OriginalID: "g2"}, Name: "Old Sale", Slug: "old-sale"},
	)

	report := FindOrphans(domain.EntityCollection, source, destination)

	require.Len(t, report.Orphans, 1)
	orphan := report.Orphans[0].(domain.CollectionDifference)
	assert.Equal(t, "g2", orphan.ID)
	assert.Equal(t, 1, report.Summary.OnlyInDestination)
	assert.Equal(t, 0, report.Summary.OnlyInSource)
}

func TestFindInventoryDeltas(t *testing.T) {
	t.Run("sign convention", func(t *testing.T) {
		report := FindInventoryDeltas(
			[]domain.Product{product("1", "A1", "Hat", 10)},
			[]domain.Product{product("g1", "A1", "Hat", 4)},
		)
		require.Len(t, report.Deltas, 1)
		assert.Equal(t, 6, report.Deltas[0].Difference)

		report = FindInventoryDeltas(
			[]domain.Product{product("1", "A1", "Hat", 4)},
			[]domain.Product{product("g1", "A1", "Hat", 10)},
		)
		require.Len(t, report.Deltas, 1)
		assert.Equal(t, -6, report.Deltas[0].Difference)
	})

	t.Run("equal stock emits nothing", func(t *testing.T) {
		report := FindInventoryDeltas(
			[]domain.Product{product("1", "A1", "Hat", 3)},
			[]domain.Product{product("g1", "A1", "Hat", 3)},
		)
		assert.Empty(t, report.Deltas)
		assert.Equal(t, 1, report.MatchedProducts)
	})

	t.Run("scalar stock compared against sku variant", func(t *testing.T) {
		source := product("1", "HAT-M", "Hat", 7)
		destination := domain.Product{
			Origin: domain.Origin{OriginalID: "g1"},
			Name:   "Hat",
			Variants: []domain.Variant{
				{OriginalID: "v1", Title: "S", SKU: "HAT-S", InventoryQuantity: 1, Options: []domain.VariantOption{{Name: "Size", Value: "S"}}},
				{OriginalID: "v2", Title: "M", SKU: "hat-m", InventoryQuantity: 2, Options: []domain.VariantOption{{Name: "Size", Value: "M"}}},
			},
		}

		report := FindInventoryDeltas([]domain.Product{source}, []domain.Product{destination})

		require.Len(t, report.Deltas, 1)
		delta := report.Deltas[0]
		assert.Equal(t, "v2", delta.DestinationVariantID)
		assert.Equal(t, 5, delta.Difference)
		assert.Equal(t, "1", delta.SourceProductID)
		assert.Equal(t, "g1", delta.DestinationProductID)
	})

	t.Run("scalar stock falls back to first variant", func(t *testing.T) {
		source := domain.Product{Name: "Scarf", Variants: []domain.Variant{domain.DefaultVariant("", "", "5", "", 9)}}
		destination := domain.Product{
			Name: "scarf",
			Variants: []domain.Variant{
				{OriginalID: "v1", Title: "Red", InventoryQuantity: 4, Options: []domain.VariantOption{{Name: "Color", Value: "Red"}}},
				{OriginalID: "v2", Title: "Blue", InventoryQuantity: 0, Options: []domain.VariantOption{{Name: "Color", Value: "Blue"}}},
			},
		}

		report := FindInventoryDeltas([]domain.Product{source}, []domain.Product{destination})

		require.Len(t, report.Deltas, 1)
		assert.Equal(t, "v1", report.Deltas[0].DestinationVariantID)
		assert.Equal(t, 5, report.Deltas[0].Difference)
	})

	t.Run("variants pair by sku then title", func(t *testing.T) {
		source := domain.Product{
			Name: "Tee",
			SKU:  "TEE",
			Variants: []domain.Variant{
				{OriginalID: "s1", Title: "S", SKU: "TEE-S", InventoryQuantity: 5, Options: []domain.VariantOption{{Name: "Size", Value: "S"}}},
				{OriginalID: "s2", Title: "L", InventoryQuantity: 2, Options: []domain.VariantOption{{Name: "Size", Value: "L"}}},
				{OriginalID: "s3", Title: "XL", InventoryQuantity: 1, Options: []domain.VariantOption{{Name: "Size", Value: "XL"}}},
			},
		}
		destination := domain.Product{
			Name: "Tee",
			SKU:  "tee",
			Variants: []domain.Variant{
				{OriginalID: "d1", Title: "Small", SKU: "tee-s", InventoryQuantity: 5, Options: []domain.VariantOption{{Name: "Size", Value: "S"}}},
				{OriginalID: "d2", Title: "l", InventoryQuantity: 6, Options: []domain.VariantOption{{Name: "Size", Value: "L"}}},
			},
		}

		report := FindInventoryDeltas([]domain.Product{source}, []domain.Product{destination})

		require.Len(t, report.Deltas, 1)
		assert.Equal(t, "s2", report.Deltas[0].SourceVariantID)
		assert.Equal(t, "d2", report.Deltas[0].DestinationVariantID)
		assert.Equal(t, -4, report.Deltas[0].Difference)
		require.Len(t, report.Warnings, 1)
		assert.Contains(t, report.Warnings[0], "1 of 3 variants")
	})

	t.Run("destination variant paired once", func(t *testing.T) {
		source := domain.Product{
			Name: "Tee",
			Variants: []domain.Variant{
				{OriginalID: "s1", Title: "M", SKU: "TEE-M", InventoryQuantity: 5, Options: []domain.VariantOption{{Name: "Size", Value: "M"}}},
				{OriginalID: "s2", Title: "M Tall", SKU: "TEE-M", InventoryQuantity: 3, Options: []domain.VariantOption{{Name: "Size", Value: "M Tall"}}},
			},
		}
		destination := domain.Product{
			Name: "Tee",
			Variants: []domain.Variant{
				{OriginalID: "d1", Title: "M", SKU: "tee-m", InventoryQuantity: 5, Options: []domain.VariantOption{{Name: "Size", Value: "M"}}},
				{OriginalID: "d2", Title: "M Tall", InventoryQuantity: 1, Options: []domain.VariantOption{{Name: "Size", Value: "M Tall"}}},
			},
		}

		report := FindInventoryDeltas([]domain.Product{source}, []domain.Product{destination})

		require.Len(t, report.Deltas, 1)
		assert.Equal(t, "s2", report.Deltas[0].SourceVariantID)
		assert.Equal(t, "d2", report.Deltas[0].DestinationVariantID)
		assert.Equal(t, 2, report.Deltas[0].Difference)
		assert.Empty(t, report.Warnings)
	})

	t.Run("duplicate sku without a second counterpart", func(t *testing.T) {
		source := domain.Product{
			Name: "Mug",
			Variants: []domain.Variant{
				{OriginalID: "s1", Title: "White", SKU: "MUG", InventoryQuantity: 2, Options: []domain.VariantOption{{Name: "Color", Value: "White"}}},
				{OriginalID: "s2", Title: "Black", SKU: "MUG", InventoryQuantity: 9, Options: []domain.VariantOption{{Name: "Color", Value: "Black"}}},
			},
		}
		destination := domain.Product{
			Name: "Mug",
			Variants: []domain.Variant{
				{OriginalID: "d1", Title: "White", SKU: "MUG", InventoryQuantity: 1, Options: []domain.VariantOption{{Name: "Color", Value: "White"}}},
			},
		}

		report := FindInventoryDeltas([]domain.Product{source}, []domain.Product{destination})

		require.Len(t, report.Deltas, 1)
		assert.Equal(t, "s1", report.Deltas[0].SourceVariantID)
		assert.Equal(t, "d1", report.Deltas[0].DestinationVariantID)
		require.Len(t, report.Warnings, 1)
		assert.Contains(t, report.Warnings[0], "1 of 2 variants")
	})

	t.Run("unmatched products are ignored", func(t *testing.T) {
		report := FindInventoryDeltas(
			[]domain.Product{product("1", "A1", "Hat", 10)},
			[]domain.Product{product("g1", "Z9", "Boot", 4)},
		)
		assert.Empty(t, report.Deltas)
		assert.Equal(t, 0, report.MatchedProducts)
	})
}

func TestFilterCustomers(t *testing.T) {
	t.Run("nameless customers are dropped", func(t *testing.T) {
		result := FilterCustomers([]domain.Customer{
			{Email: "bot@spam.io"},
			{Email: "jo@example.com", FirstName: "Jo"},
		}, domain.PlatformShopify)

		require.Len(t, result.Customers, 1)
		assert.Equal(t, "jo@example.com", result.Customers[0].Email)
		assert.Equal(t, 1, result.Dropped)
		assert.False(t, result.FallbackApplied)
	})

	t.Run("inactive customers dropped for woocommerce", func(t *testing.T) {
		result := FilterCustomers([]domain.Customer{
			{Email: "a@example.com", FirstName: "A", OrdersCount: 2, TotalSpent: "40.00"},
			{Email: "b@example.com", FirstName: "B", TotalSpent: "0.00"},
			{Email: "c@example.com", LastName: "C", TotalSpent: "12.00"},
		}, domain.PlatformWooCommerce)

		require.Len(t, result.Customers, 2)
		assert.Equal(t, 1, result.Dropped)
		assert.False(t, result.FallbackApplied)
	})

	t.Run("inactive customers kept for shopify", func(t *testing.T) {
		result := FilterCustomers([]domain.Customer{
			{Email: "b@example.com", FirstName: "B"},
		}, domain.PlatformShopify)

		assert.Len(t, result.Customers, 1)
		assert.False(t, result.FallbackApplied)
	})

	t.Run("fallback when every customer would be dropped", func(t *testing.T) {
		result := FilterCustomers([]domain.Customer{
			{Email: "a@example.com", FirstName: "A"},
			{Email: "b@example.com", FirstName: "B"},
		}, domain.PlatformWooCommerce)

		assert.Len(t, result.Customers, 2)
		assert.True(t, result.FallbackApplied)
		assert.NotEmpty(t, result.Warning)
		assert.Equal(t, 0, result.Dropped)
	})
}

func newEngine() *Engine {
	return NewEngine(normalize.NewRegistry(woocommerce.Normalizer{}, shopify.Normalizer{}), zap.NewNop())
}

func TestEngineRecognizesMigratedDraftOrder(t *testing.T) {
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	source := []domain.NativeRecord{
		woocommerce.Order{ID: 77, Number: "4821", Status: "completed", Total: "25.00",
			LineItems: []woocommerce.OrderLineItem{{Name: "Hat", Quantity: 1, Total: "25.00"}}},
		woocommerce.Order{ID: 78, Number: "4822", Status: "processing", Total: "12.00",
			LineItems: []woocommerce.OrderLineItem{{Name: "Scarf", Quantity: 1, Total: "12.00"}}},
	}
	destination := []domain.NativeRecord{
		shopify.DraftOrder{
			ID:         "gid://shopify/DraftOrder/1",
			Name:       "#D1",
			Note:       normalize.FormatOrderNote(domain.PlatformWooCommerce, "4821", created, ""),
			TotalPrice: "25.00",
			LineItems:  []shopify.LineItem{{Title: "Hat", Quantity: 1, Price: "25.00"}},
		},
	}

	report, err := newEngine().Gaps(Input{Entity: domain.EntityOrder, Source: source, Destination: destination})

	require.NoError(t, err)
	require.Len(t, report.Differences, 1)
	assert.Equal(t, "4822", report.Differences[0].(domain.OrderDifference).OrderNumber)
	assert.Equal(t, 1, report.Summary.Matched)
}

func TestEngineIgnoresOrderNumbersInCustomerNotes(t *testing.T) {
	source := []domain.NativeRecord{
		woocommerce.Order{ID: 1, Number: "100", Status: "completed", Total: "10.00",
			CustomerNote: "Gift Order #7 for grandma",
			LineItems:    []woocommerce.OrderLineItem{{Name: "Hat", Quantity: 1, Total: "10.00"}}},
	}
	destination := []domain.NativeRecord{
		shopify.Order{ID: "gid://shopify/Order/1", Name: "#100", TotalPrice: "10.00",
			LineItems: []shopify.LineItem{{Title: "Hat", Quantity: 1, Price: "10.00"}}},
	}

	gaps, err := newEngine().Gaps(Input{Entity: domain.EntityOrder, Source: source, Destination: destination})
	require.NoError(t, err)
	assert.Empty(t, gaps.Differences)
	assert.Equal(t, 1, gaps.Summary.Matched)

	orphans, err := newEngine().Orphans(Input{Entity: domain.EntityOrder, Source: source, Destination: destination})
	require.NoError(t, err)
	assert.Empty(t, orphans.Orphans)
	assert.Equal(t, 0, orphans.Summary.OnlyInDestination)
}

func TestEngineCustomerFallbackWarning(t *testing.T) {
	source := []domain.NativeRecord{
		woocommerce.Customer{ID: 1, Email: "a@example.com", FirstName: "A"},
		woocommerce.Customer{ID: 2, Email: "b@example.com", FirstName: "B"},
	}

	report, err := newEngine().Gaps(Input{
		Entity:        domain.EntityCustomer,
		Source:        source,
		SourceOfTruth: domain.PlatformWooCommerce,
	})

	require.NoError(t, err)
	assert.Len(t, report.Differences, 2)
	require.Len(t, report.Warnings, 1)
	assert.Contains(t, report.Warnings[0], "inactivity filter was skipped")
}

func TestEngineReviewsOnShopifyAreAMismatch(t *testing.T) {
	_, err := newEngine().Orphans(Input{
		Entity:      domain.EntityReview,
		Source:      []domain.NativeRecord{woocommerce.Review{ID: 1, ProductID: 2, Rating: 5}},
		Destination: []domain.NativeRecord{shopify.Product{ID: "gid://shopify/Product/1", Title: "Hat"}},
	})
	assert.Error(t, err)
}

func TestEngineInventoryDeltas(t *testing.T) {
	qty := 10
	source := []domain.NativeRecord{
		woocommerce.Product{ID: 5, Name: "Hat", SKU: "A1", RegularPrice: "9.00", ManageStock: true, StockQuantity: &qty},
	}
	destination := []domain.NativeRecord{
		shopify.Product{ID: "gid://shopify/Product/9", Title: "Hat", Status: shopify.StatusActive,
			Variants: []shopify.Variant{{ID: "gid://shopify/ProductVariant/3", SKU: "a1", Price: "9.00", InventoryQuantity: 4}}},
	}

	report, err := newEngine().InventoryDeltas(source, destination)

	require.NoError(t, err)
	require.Len(t, report.Deltas, 1)
	delta := report.Deltas[0]
	assert.Equal(t, 6, delta.Difference)
	assert.Equal(t, "5", delta.SourceProductID)
	assert.Equal(t, "gid://shopify/Product/9", delta.DestinationProductID)
	assert.Equal(t, "gid://shopify/ProductVariant/3", delta.DestinationVariantID)
}
