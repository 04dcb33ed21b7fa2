package woocommerce

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jafarshop/storemigrate/internal/domain"
	"github.com/jafarshop/storemigrate/internal/normalize"
)

// ErrUnidentifiable is returned for a record without any identifying field
var ErrUnidentifiable = errors.New("woocommerce: record has no identifying field")

const (
	dateLayout = "2006-01-02T15:04:05"

	metaNamespace = "woocommerce"
	metaType      = "single_line_text_field"

	yoastTitleKey = "_yoast_wpseo_title"
	yoastDescKey  = "_yoast_wpseo_metadesc"
)

// Normalizer converts WooCommerce records to and from canonical records
type Normalizer struct{}

var (
	_ normalize.Normalizer   = Normalizer{}
	_ normalize.LossReporter = Normalizer{}
)

// Platform returns the WooCommerce platform code
func (Normalizer) Platform() domain.Platform {
	return domain.PlatformWooCommerce
}

// Supports reports whether entity has a WooCommerce mapping
func (Normalizer) Supports(entity domain.EntityType) bool {
	switch entity {
	case domain.EntityProduct, domain.EntityCustomer, domain.EntityOrder,
		domain.EntityCollection, domain.EntityCoupon, domain.EntityPage,
		domain.EntityBlogPost, domain.EntityReview:
		return true
	default:
		return false
	}
}

// ToCanonical maps a WooCommerce record to its canonical form
func (Normalizer) ToCanonical(rec domain.NativeRecord) (domain.Canonical, error) {
	switch r := rec.(type) {
	case Product:
		return productToCanonical(r)
	case Customer:
		return customerToCanonical(r)
	case Order:
		return orderToCanonical(r)
	case Category:
		return categoryToCanonical(r)
	case Coupon:
		return couponToCanonical(r)
	case Page:
		return pageToCanonical(r)
	case Post:
		return postToCanonical(r)
	case Review:
		return reviewToCanonical(r)
	default:
		return nil, normalize.UnexpectedRecord(domain.PlatformWooCommerce, rec)
	}
}

// ToNative builds the WooCommerce create payload for a canonical record
func (Normalizer) ToNative(c domain.Canonical) (domain.NativeRecord, error) {
	switch v := c.(type) {
	case domain.Product:
		return productToNative(v), nil
	case domain.Customer:
		return customerToNative(v), nil
	case domain.Order:
		return orderToNative(v), nil
	case domain.Collection:
		return categoryToNative(v), nil
	case domain.Coupon:
		return couponToNative(v), nil
	case domain.Page:
		return pageToNative(v), nil
	case domain.BlogPost:
		return postToNative(v), nil
	case domain.Review:
		return reviewToNative(v)
	default:
		return nil, normalize.UnexpectedRecord(domain.PlatformWooCommerce, c)
	}
}

func origin(id int64) domain.Origin {
	return domain.Origin{Platform: domain.PlatformWooCommerce, OriginalID: idString(id)}
}

func parseID(s string) int64 {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

func parseIDs(ids []string) []int64 {
	if len(ids) == 0 {
		return nil
	}
	out := make([]int64, 0, len(ids))
	for _, s := range ids {
		if id := parseID(s); id != 0 {
			out = append(out, id)
		}
	}
	return out
}

func formatIDs(ids []int64) []string {
	if len(ids) == 0 {
		return nil
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, idString(id))
	}
	return out
}

// parseTime reads the GMT timestamps WordPress emits without a zone suffix
func parseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), true
	}
	return time.Time{}, false
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(dateLayout)
}

func timePtr(s string) *time.Time {
	t, ok := parseTime(s)
	if !ok {
		return nil
	}
	return &t
}

// metaString flattens a meta value to a string
func metaString(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(b)
	}
}

func metaToCanonical(meta []MetaData) []domain.Metafield {
	var out []domain.Metafield
	for _, m := range meta {
		if m.Key == "" || strings.HasPrefix(m.Key, "_") {
			continue
		}
		out = append(out, domain.Metafield{
			Namespace: metaNamespace,
			Key:       m.Key,
			Value:     metaString(m.Value),
			Type:      metaType,
		})
	}
	return out
}

// metaFromCanonical flattens namespaces; keys from foreign namespaces keep
// their namespace as a prefix so two namespaces cannot collide.
func metaFromCanonical(fields []domain.Metafield) []MetaData {
	var out []MetaData
	for _, f := range fields {
		key := f.Key
		if f.Namespace != "" && f.Namespace != metaNamespace {
			key = f.Namespace + "." + f.Key
		}
		out = append(out, MetaData{Key: key, Value: f.Value})
	}
	return out
}

func metaLookup(meta []MetaData, key string) string {
	for _, m := range meta {
		if m.Key == key {
			return metaString(m.Value)
		}
	}
	return ""
}

func termNames(terms []Term) []string {
	if len(terms) == 0 {
		return nil
	}
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if t.Name != "" {
			out = append(out, t.Name)
		}
	}
	return out
}

func termsOf(names []string) []Term {
	if len(names) == 0 {
		return nil
	}
	out := make([]Term, 0, len(names))
	for _, n := range names {
		out = append(out, Term{Name: n})
	}
	return out
}

// readStatus maps WordPress post statuses; everything but publish is draft
func readStatus(status string) domain.ContentStatus {
	if status == "publish" {
		return domain.ContentStatusPublished
	}
	return domain.ContentStatusDraft
}

func writeStatus(status domain.ContentStatus) string {
	if status == domain.ContentStatusPublished {
		return "publish"
	}
	return "draft"
}
