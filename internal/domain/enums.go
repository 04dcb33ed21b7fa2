package domain

// Platform identifies the commerce system a record was read from
type Platform string

const (
	PlatformWooCommerce Platform = "woocommerce"
	PlatformShopify     Platform = "shopify"
)

// IsValid checks if the platform is known
func (p Platform) IsValid() bool {
	switch p {
	case PlatformWooCommerce, PlatformShopify:
		return true
	default:
		return false
	}
}

func (p Platform) String() string {
	return string(p)
}

// DisplayName returns the vendor's product name
func (p Platform) DisplayName() string {
	switch p {
	case PlatformWooCommerce:
		return "WooCommerce"
	case PlatformShopify:
		return "Shopify"
	default:
		return string(p)
	}
}

// EntityType names a kind of record that can be migrated or compared
type EntityType string

const (
	EntityProduct    EntityType = "product"
	EntityCustomer   EntityType = "customer"
	EntityOrder      EntityType = "order"
	EntityCollection EntityType = "collection"
	EntityCoupon     EntityType = "coupon"
	EntityPage       EntityType = "page"
	EntityBlogPost   EntityType = "blog_post"
	EntityReview     EntityType = "review"
	// EntityInventory is only used for destination updates
	EntityInventory EntityType = "inventory"
)

// IsValid checks if the entity type is known
func (t EntityType) IsValid() bool {
	switch t {
	case EntityProduct, EntityCustomer, EntityOrder, EntityCollection,
		EntityCoupon, EntityPage, EntityBlogPost, EntityReview, EntityInventory:
		return true
	default:
		return false
	}
}

func (t EntityType) String() string {
	return string(t)
}

// ProductStatus is the canonical publication state of a product
type ProductStatus string

const (
	ProductStatusDraft     ProductStatus = "draft"
	ProductStatusPublished ProductStatus = "published"
	ProductStatusArchived  ProductStatus = "archived"
)

// IsValid checks if the product status is known
func (s ProductStatus) IsValid() bool {
	return s == ProductStatusDraft || s == ProductStatusPublished || s == ProductStatusArchived
}

// ContentStatus is the publication state of pages and blog posts
type ContentStatus string

const (
	ContentStatusDraft     ContentStatus = "draft"
	ContentStatusPublished ContentStatus = "published"
)

// IsValid checks if the content status is known
func (s ContentStatus) IsValid() bool {
	return s == ContentStatusDraft || s == ContentStatusPublished
}

// DiscountType is the canonical coupon discount kind
type DiscountType string

const (
	DiscountTypePercentage   DiscountType = "percentage"
	DiscountTypeFixedCart    DiscountType = "fixed_cart"
	DiscountTypeFixedProduct DiscountType = "fixed_product"
)

// IsValid checks if the discount type is known
func (d DiscountType) IsValid() bool {
	switch d {
	case DiscountTypePercentage, DiscountTypeFixedCart, DiscountTypeFixedProduct:
		return true
	default:
		return false
	}
}

// FinancialStatus is the canonical payment state of an order
type FinancialStatus string

const (
	FinancialStatusPending           FinancialStatus = "pending"
	FinancialStatusAuthorized        FinancialStatus = "authorized"
	FinancialStatusPaid              FinancialStatus = "paid"
	FinancialStatusPartiallyPaid     FinancialStatus = "partially_paid"
	FinancialStatusPartiallyRefunded FinancialStatus = "partially_refunded"
	FinancialStatusRefunded          FinancialStatus = "refunded"
	FinancialStatusVoided            FinancialStatus = "voided"
)

// IsValid checks if the financial status is known
func (s FinancialStatus) IsValid() bool {
	switch s {
	case FinancialStatusPending, FinancialStatusAuthorized, FinancialStatusPaid,
		FinancialStatusPartiallyPaid, FinancialStatusPartiallyRefunded,
		FinancialStatusRefunded, FinancialStatusVoided:
		return true
	default:
		return false
	}
}

// FulfillmentStatus is the canonical shipping state of an order
type FulfillmentStatus string

const (
	FulfillmentStatusUnfulfilled FulfillmentStatus = "unfulfilled"
	FulfillmentStatusPartial     FulfillmentStatus = "partial"
	FulfillmentStatusFulfilled   FulfillmentStatus = "fulfilled"
)

// IsValid checks if the fulfillment status is known
func (s FulfillmentStatus) IsValid() bool {
	return s == FulfillmentStatusUnfulfilled || s == FulfillmentStatusPartial || s == FulfillmentStatusFulfilled
}

// JobStatus represents the status of a migration job
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusPartial    JobStatus = "partial"
	JobStatusFailed     JobStatus = "failed"
)

// IsValid checks if the job status is valid
func (s JobStatus) IsValid() bool {
	switch s {
	case JobStatusPending,
		JobStatusProcessing,
		JobStatusCompleted,
		JobStatusPartial,
		JobStatusFailed:
		return true
	default:
		return false
	}
}

func (s JobStatus) String() string {
	return string(s)
}

// IsTerminal reports whether no further transition is possible
func (s JobStatus) IsTerminal() bool {
	return s == JobStatusCompleted || s == JobStatusPartial || s == JobStatusFailed
}

// CanTransitionTo checks if a status transition is valid
func (s JobStatus) CanTransitionTo(newStatus JobStatus) bool {
	switch s {
	case JobStatusPending:
		return newStatus == JobStatusProcessing
	case JobStatusProcessing:
		return newStatus == JobStatusCompleted ||
			newStatus == JobStatusPartial ||
			newStatus == JobStatusFailed
	case JobStatusCompleted, JobStatusPartial, JobStatusFailed:
		return false // Terminal states
	default:
		return false
	}
}

// ItemStatus is the outcome of one job item
type ItemStatus string

const (
	ItemStatusSuccess ItemStatus = "success"
	ItemStatusFailed  ItemStatus = "failed"
)
