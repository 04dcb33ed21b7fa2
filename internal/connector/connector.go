// Package connector declares how the engine reads from and writes to a
// commerce platform. Implementations live in the platform packages.
package connector

import (
	"context"

	"github.com/jafarshop/storemigrate/internal/domain"
)

// Source reads native records. FetchAll pages through the whole entity and
// stops at the configured page cap; a capped listing returns the records
// read so far together with an errors.ErrTruncated.
type Source interface {
	Platform() domain.Platform
	FetchAll(ctx context.Context, entity domain.EntityType) ([]domain.NativeRecord, error)
	Fetch(ctx context.Context, entity domain.EntityType, id string) (domain.NativeRecord, error)
}

// Destination writes native records and returns the platform id of a
// created record.
type Destination interface {
	Platform() domain.Platform
	Create(ctx context.Context, entity domain.EntityType, payload domain.NativeRecord) (string, error)
	Update(ctx context.Context, entity domain.EntityType, id string, patch domain.Patch) error
}

// Connector is a platform that can be both read and written
type Connector interface {
	Source
	Destination
}

// Inventory patch keys understood by every Destination for EntityInventory.
// PatchInventoryItemID is optional and saves a lookup where the platform
// stocks inventory items rather than variants.
const (
	PatchQuantity        = "quantity"
	PatchProductID       = "product_id"
	PatchInventoryItemID = "inventory_item_id"
)

// Set picks connectors by platform
type Set map[domain.Platform]Connector

// Get returns the connector for platform
func (s Set) Get(platform domain.Platform) (Connector, bool) {
	c, ok := s[platform]
	return c, ok
}
