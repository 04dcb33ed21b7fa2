package shopify

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/jafarshop/storemigrate/internal/domain"
	"github.com/jafarshop/storemigrate/internal/normalize"
)

// ErrUnidentifiable is returned for a record without any identifying field
var ErrUnidentifiable = errors.New("shopify: record has no identifying field")

const (
	// MaxVariants is the variant count productSet accepts for one product
	MaxVariants = 100

	defaultOptionName  = "Title"
	defaultOptionValue = "Default Title"

	defaultMetaNamespace = "custom"
	defaultMetaType      = "single_line_text_field"
)

var shortcodePattern = regexp.MustCompile(`\[/?[a-zA-Z][\w-]*(?:\s[^\]]*)?\]`)

// Normalizer converts Shopify records to and from canonical records
type Normalizer struct{}

var (
	_ normalize.Normalizer   = Normalizer{}
	_ normalize.LossReporter = Normalizer{}
)

// Platform returns the Shopify platform code
func (Normalizer) Platform() domain.Platform {
	return domain.PlatformShopify
}

// Supports reports whether entity has a Shopify mapping. Shopify has no
// reviews API.
func (Normalizer) Supports(entity domain.EntityType) bool {
	switch entity {
	case domain.EntityProduct, domain.EntityCustomer, domain.EntityOrder,
		domain.EntityCollection, domain.EntityCoupon, domain.EntityPage,
		domain.EntityBlogPost:
		return true
	default:
		return false
	}
}

// ToCanonical maps a Shopify record to its canonical form
func (Normalizer) ToCanonical(rec domain.NativeRecord) (domain.Canonical, error) {
	switch r := rec.(type) {
	case Product:
		return productToCanonical(r)
	case Customer:
		return customerToCanonical(r)
	case Order:
		return orderToCanonical(r)
	case DraftOrder:
		return draftOrderToCanonical(r)
	case Collection:
		return collectionToCanonical(r)
	case DiscountCode:
		return discountToCanonical(r)
	case Page:
		return pageToCanonical(r)
	case Article:
		return articleToCanonical(r)
	default:
		return nil, normalize.UnexpectedRecord(domain.PlatformShopify, rec)
	}
}

// ToNative builds the Shopify create payload for a canonical record. Orders
// always become draft orders.
func (Normalizer) ToNative(c domain.Canonical) (domain.NativeRecord, error) {
	switch v := c.(type) {
	case domain.Product:
		return productToNative(v), nil
	case domain.Customer:
		return customerToNative(v), nil
	case domain.Order:
		return orderToNative(v), nil
	case domain.Collection:
		return collectionToNative(v), nil
	case domain.Coupon:
		return discountToNative(v), nil
	case domain.Page:
		return pageToNative(v), nil
	case domain.BlogPost:
		return articleToNative(v), nil
	default:
		return nil, normalize.UnexpectedRecord(domain.PlatformShopify, c)
	}
}

func origin(id string) domain.Origin {
	return domain.Origin{Platform: domain.PlatformShopify, OriginalID: id}
}

func parseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}

func timeOf(s string) time.Time {
	t, _ := parseTime(s)
	return t
}

func timePtr(s string) *time.Time {
	t, ok := parseTime(s)
	if !ok {
		return nil
	}
	return &t
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func metafieldsToCanonical(fields []Metafield) []domain.Metafield {
	var out []domain.Metafield
	for _, f := range fields {
		out = append(out, domain.Metafield{Namespace: f.Namespace, Key: f.Key, Value: f.Value, Type: f.Type})
	}
	return out
}

func metafieldsToNative(fields []domain.Metafield) []Metafield {
	var out []Metafield
	for _, f := range fields {
		m := Metafield{Namespace: f.Namespace, Key: f.Key, Value: f.Value, Type: f.Type}
		if m.Namespace == "" {
			m.Namespace = defaultMetaNamespace
		}
		if m.Type == "" {
			m.Type = defaultMetaType
		}
		out = append(out, m)
	}
	return out
}

func seoToCanonical(s *SEO) *domain.SEO {
	if s == nil || (s.Title == "" && s.Description == "") {
		return nil
	}
	return &domain.SEO{Title: s.Title, Description: s.Description}
}

func seoToNative(s *domain.SEO) *SEO {
	if s == nil {
		return nil
	}
	return &SEO{Title: s.Title, Description: s.Description}
}

func addressToCanonical(a MailingAddress) domain.Address {
	return domain.Address{
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Company:   a.Company,
		Address1:  a.Address1,
		Address2:  a.Address2,
		City:      a.City,
		Province:  a.Province,
		Country:   a.Country,
		Zip:       a.Zip,
		Phone:     a.Phone,
	}
}

func addressToNative(a domain.Address) MailingAddress {
	return MailingAddress{
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Company:   a.Company,
		Address1:  a.Address1,
		Address2:  a.Address2,
		City:      a.City,
		Province:  a.Province,
		Country:   a.Country,
		Zip:       a.Zip,
		Phone:     a.Phone,
	}
}

func optionalAddress(a *MailingAddress) *domain.Address {
	if a == nil {
		return nil
	}
	addr := addressToCanonical(*a)
	return &addr
}

func optionalMailingAddress(a *domain.Address) *MailingAddress {
	if a == nil {
		return nil
	}
	addr := addressToNative(*a)
	return &addr
}

func hasShortcodes(html string) bool {
	return shortcodePattern.MatchString(html)
}
