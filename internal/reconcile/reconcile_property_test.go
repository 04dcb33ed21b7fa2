package reconcile

import (
	"fmt"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/jafarshop/storemigrate/internal/domain"
)

// Property: case and surrounding whitespace never affect a match
func TestKeyNormalizationProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("decorated name matches plain name", prop.ForAll(
		func(name string, pad int) bool {
			if strings.TrimSpace(name) == "" {
				return true
			}
			space := strings.Repeat(" ", pad)
			source := canonicals(domain.Collection{Name: space + strings.ToUpper(name) + space + "\t"})
			destination := canonicals(domain.Collection{Name: strings.ToLower(name)})

			return len(FindGaps(domain.EntityCollection, source, destination).Differences) == 0
		},
		gen.AlphaString(),
		gen.IntRange(0, 3),
	))

	properties.TestingRun(t)
}

// Property: a gap report and an orphan report over the same pair partition
// both sides into matched and unmatched records
func TestReportSymmetryProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	toCoupons := func(codes []int) []domain.Canonical {
		out := make([]domain.Canonical, len(codes))
		for i, c := range codes {
			out[i] = domain.Coupon{Code: fmt.Sprintf("CODE%d", c)}
		}
		return out
	}

	properties.Property("matched plus unmatched covers each side", prop.ForAll(
		func(a, b []int) bool {
			source, destination := toCoupons(a), toCoupons(b)

			gaps := FindGaps(domain.EntityCoupon, source, destination)
			orphans := FindOrphans(domain.EntityCoupon, source, destination)

			sourceCovered := gaps.Summary.Matched+len(gaps.Differences) == len(source)
			destinationCovered := len(orphans.Orphans) == orphans.Summary.OnlyInDestination &&
				orphans.Summary.OnlyInDestination <= len(destination)
			sameSummary := gaps.Summary == orphans.Summary

			// with the roles swapped, orphans become gaps
			swapped := FindGaps(domain.EntityCoupon, destination, source)
			mirrored := len(swapped.Differences) == len(orphans.Orphans)

			return sourceCovered && destinationCovered && sameSummary && mirrored
		},
		gen.SliceOf(gen.IntRange(0, 20)),
		gen.SliceOf(gen.IntRange(0, 20)),
	))

	properties.TestingRun(t)
}

// Property: difference is always source minus destination
func TestInventoryDeltaSignProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("difference equals source minus destination", prop.ForAll(
		func(src, dst int) bool {
			report := FindInventoryDeltas(
				[]domain.Product{product("1", "SKU", "Hat", src)},
				[]domain.Product{product("2", "sku", "Hat", dst)},
			)
			if src == dst {
				return len(report.Deltas) == 0
			}
			return len(report.Deltas) == 1 && report.Deltas[0].Difference == src-dst
		},
		gen.IntRange(-50, 500),
		gen.IntRange(-50, 500),
	))

	properties.TestingRun(t)
}
