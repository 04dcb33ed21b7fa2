package normalize

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jafarshop/storemigrate/internal/domain"
)

// Custom attribute keys written on migrated draft orders
const (
	AttrSourcePlatform    = "source_platform"
	AttrSourceOrderNumber = "source_order_number"
	AttrFinancialStatus   = "source_financial_status"
	AttrFulfillmentStatus = "source_fulfillment_status"
)

var (
	// Drafts created before the attributes existed only carry this note
	legacyOrderRef  = regexp.MustCompile(`WooCommerce Order #(\S+)`)
	genericOrderRef = regexp.MustCompile(`^\s*(?:WooCommerce|Shopify) Order #(\S+)`)
	originalDate    = regexp.MustCompile(`(?m)^Original Date: (\S+)\s*$`)
)

// OrderRef is the cross reference parsed out of a migrated order note
type OrderRef struct {
	Number       string
	OriginalDate time.Time
	// Notes is whatever followed the reference header
	Notes string
}

// FormatOrderNote renders the reference header for an order migrated from
// platform, followed by the original notes.
func FormatOrderNote(platform domain.Platform, number string, created time.Time, notes string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s Order #%s", platform.DisplayName(), number)
	if !created.IsZero() {
		fmt.Fprintf(&b, "\nOriginal Date: %s", created.UTC().Format(time.RFC3339))
	}
	if notes != "" {
		b.WriteString("\n\n")
		b.WriteString(notes)
	}
	return b.String()
}

// ParseOrderNote extracts the source order number from a note. The
// WooCommerce form is tried first, then a "<Platform> Order #" header on
// the first line.
func ParseOrderNote(note string) (OrderRef, bool) {
	var ref OrderRef

	m := legacyOrderRef.FindStringSubmatch(note)
	if m == nil {
		m = genericOrderRef.FindStringSubmatch(note)
	}
	if m == nil {
		return ref, false
	}
	ref.Number = m[1]

	if d := originalDate.FindStringSubmatch(note); d != nil {
		if t, err := time.Parse(time.RFC3339, d[1]); err == nil {
			ref.OriginalDate = t.UTC()
		}
	}

	header, rest, found := strings.Cut(note, "\n\n")
	if found && strings.Contains(header, "Order #"+ref.Number) {
		ref.Notes = rest
	}
	return ref, true
}
