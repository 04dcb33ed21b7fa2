package service

import (
	"github.com/jafarshop/storemigrate/internal/domain"
)

// PreviewRequest asks for the conversion of one source item
type PreviewRequest struct {
	Type        domain.EntityType `json:"type" binding:"required"`
	Source      domain.Platform   `json:"source" binding:"required"`
	Destination domain.Platform   `json:"destination" binding:"required"`
	ItemID      string            `json:"itemId" binding:"required"`
}

// CompareRequest selects the two sides of a comparison. SourceOfTruth is
// optional and defaults to Source.
type CompareRequest struct {
	Type          domain.EntityType `form:"-"`
	Source        domain.Platform   `form:"source"`
	Destination   domain.Platform   `form:"destination"`
	SourceOfTruth domain.Platform   `form:"source_of_truth"`
}

// ApplyInventoryRequest carries the deltas a reviewer approved
type ApplyInventoryRequest struct {
	Destination domain.Platform              `json:"destination" binding:"required"`
	Deltas      []domain.InventoryDifference `json:"deltas" binding:"required,min=1"`
}

// InventoryUpdateResult is the outcome of one approved delta
type InventoryUpdateResult struct {
	SKU                  string `json:"sku,omitempty"`
	DestinationProductID string `json:"destinationProductId"`
	DestinationVariantID string `json:"destinationVariantId,omitempty"`
	Quantity             int    `json:"quantity"`
	Status               string `json:"status"`
	Error                string `json:"error,omitempty"`
}

// ApplyInventoryResponse summarizes an inventory apply
type ApplyInventoryResponse struct {
	Updated int                     `json:"updated"`
	Failed  int                     `json:"failed"`
	Results []InventoryUpdateResult `json:"results"`
}
