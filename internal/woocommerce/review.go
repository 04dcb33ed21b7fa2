package woocommerce

import (
	"fmt"

	"github.com/jafarshop/storemigrate/internal/domain"
)

func reviewToCanonical(r Review) (domain.Canonical, error) {
	if r.ID == 0 && r.ProductID == 0 {
		return nil, ErrUnidentifiable
	}

	review := domain.Review{
		Origin:        origin(r.ID),
		ProductID:     idString(r.ProductID),
		Reviewer:      r.Reviewer,
		ReviewerEmail: r.ReviewerEmail,
		Rating:        r.Rating,
		Content:       r.Review,
		Verified:      r.Verified,
	}
	if t, ok := parseTime(r.DateCreatedGMT); ok {
		review.CreatedAt = t
	}
	return review, nil
}

// reviewToNative needs a numeric product id; the caller is expected to have
// remapped it to a WooCommerce product first.
func reviewToNative(c domain.Review) (domain.NativeRecord, error) {
	productID := parseID(c.ProductID)
	if productID == 0 {
		return nil, fmt.Errorf("woocommerce: review product id %q is not numeric", c.ProductID)
	}
	return Review{
		ProductID:      productID,
		Status:         "approved",
		Reviewer:       c.Reviewer,
		ReviewerEmail:  c.ReviewerEmail,
		Review:         c.Content,
		Rating:         c.Rating,
		Verified:       c.Verified,
		DateCreatedGMT: formatTime(c.CreatedAt),
	}, nil
}
