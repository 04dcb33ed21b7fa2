package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jafarshop/storemigrate/internal/connector"
	"github.com/jafarshop/storemigrate/internal/domain"
	"github.com/jafarshop/storemigrate/internal/normalize"
	"github.com/jafarshop/storemigrate/internal/reconcile"
	apperrors "github.com/jafarshop/storemigrate/pkg/errors"
)

// Inventory update outcomes
const (
	UpdateStatusSuccess = "success"
	UpdateStatusFailed  = "failed"
)

type compareService struct {
	connectors connector.Set
	registry   *normalize.Registry
	engine     *reconcile.Engine
	logger     *zap.Logger
}

// NewCompareService creates the service behind gap, orphan and inventory
// reports
func NewCompareService(connectors connector.Set, registry *normalize.Registry, engine *reconcile.Engine, logger *zap.Logger) *compareService {
	return &compareService{
		connectors: connectors,
		registry:   registry,
		engine:     engine,
		logger:     logger,
	}
}

// withDefaults fills the WooCommerce to Shopify direction and checks both
// platforms can read the entity before anything is fetched
func (s *compareService) withDefaults(req CompareRequest) (CompareRequest, error) {
	if req.Source == "" {
		req.Source = domain.PlatformWooCommerce
	}
	if req.Destination == "" {
		req.Destination = domain.PlatformShopify
	}
	if req.SourceOfTruth == "" {
		req.SourceOfTruth = req.Source
	}

	if !req.Type.IsValid() {
		return req, fmt.Errorf("unknown entity type %q", req.Type)
	}
	for _, p := range []domain.Platform{req.Source, req.Destination, req.SourceOfTruth} {
		if !p.IsValid() {
			return req, fmt.Errorf("unknown platform %q", p)
		}
	}
	if req.Source == req.Destination {
		return req, fmt.Errorf("source and destination are both %s", req.Source)
	}
	if req.SourceOfTruth != req.Source && req.SourceOfTruth != req.Destination {
		return req, fmt.Errorf("source of truth %s is not part of the comparison", req.SourceOfTruth)
	}

	if _, err := s.registry.Lookup(req.Source, req.Type); err != nil {
		return req, err
	}
	if _, err := s.registry.Lookup(req.Destination, req.Type); err != nil {
		return req, err
	}
	return req, nil
}

// fetchBoth reads both sides. A side cut short by the page cap is still
// compared; the returned warnings say which.
func (s *compareService) fetchBoth(ctx context.Context, req CompareRequest) (reconcile.Input, []string, error) {
	in := reconcile.Input{Entity: req.Type, SourceOfTruth: req.SourceOfTruth}

	src, ok := s.connectors.Get(req.Source)
	if !ok {
		return in, nil, fmt.Errorf("no connector configured for %s", req.Source)
	}
	dst, ok := s.connectors.Get(req.Destination)
	if !ok {
		return in, nil, fmt.Errorf("no connector configured for %s", req.Destination)
	}

	var warnings []string
	var err error
	if in.Source, err = s.fetchAll(ctx, src, req.Type, "source", &warnings); err != nil {
		return in, nil, err
	}
	if in.Destination, err = s.fetchAll(ctx, dst, req.Type, "destination", &warnings); err != nil {
		return in, nil, err
	}

	s.logger.Info("Fetched records for comparison",
		zap.String("type", req.Type.String()),
		zap.Int("source_count", len(in.Source)),
		zap.Int("destination_count", len(in.Destination)),
	)
	return in, warnings, nil
}

func (s *compareService) fetchAll(ctx context.Context, c connector.Source, entity domain.EntityType, side string, warnings *[]string) ([]domain.NativeRecord, error) {
	platform := c.Platform()
	records, err := c.FetchAll(ctx, entity)
	if truncated, ok := apperrors.AsTruncated(err); ok {
		s.logger.Warn("Comparing a truncated record set",
			zap.String("side", side),
			zap.String("platform", platform.String()),
			zap.String("type", entity.String()),
			zap.Int("fetched", truncated.Fetched),
		)
		*warnings = append(*warnings, fmt.Sprintf("%s %s records are incomplete: only %d were read before the %d page cap, so results may list false differences",
			platform.DisplayName(), entity, truncated.Fetched, truncated.Pages))
		return records, nil
	}
	if err != nil {
		s.logger.Error("Failed to fetch records",
			zap.String("side", side),
			zap.String("platform", platform.String()),
			zap.String("type", entity.String()),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to fetch %s %s records: %w", platform.DisplayName(), entity, err)
	}
	return records, nil
}

// Gaps lists source records that are missing from the destination
func (s *compareService) Gaps(ctx context.Context, req CompareRequest) (*reconcile.GapReport, error) {
	if req.Type == domain.EntityInventory {
		return nil, fmt.Errorf("inventory is compared with the inventory report")
	}
	req, err := s.withDefaults(req)
	if err != nil {
		return nil, err
	}

	in, warnings, err := s.fetchBoth(ctx, req)
	if err != nil {
		return nil, err
	}
	report, err := s.engine.Gaps(in)
	if err != nil {
		return nil, err
	}
	report.Warnings = append(warnings, report.Warnings...)
	return report, nil
}

// Orphans lists destination records with no source counterpart
func (s *compareService) Orphans(ctx context.Context, req CompareRequest) (*reconcile.OrphanReport, error) {
	if req.Type == domain.EntityInventory {
		return nil, fmt.Errorf("inventory is compared with the inventory report")
	}
	req, err := s.withDefaults(req)
	if err != nil {
		return nil, err
	}

	in, warnings, err := s.fetchBoth(ctx, req)
	if err != nil {
		return nil, err
	}
	report, err := s.engine.Orphans(in)
	if err != nil {
		return nil, err
	}
	report.Warnings = append(warnings, report.Warnings...)
	return report, nil
}

// InventoryDeltas compares stock of matched products. req.Type is ignored.
func (s *compareService) InventoryDeltas(ctx context.Context, req CompareRequest) (*reconcile.InventoryReport, error) {
	req.Type = domain.EntityProduct
	req, err := s.withDefaults(req)
	if err != nil {
		return nil, err
	}

	in, warnings, err := s.fetchBoth(ctx, req)
	if err != nil {
		return nil, err
	}
	report, err := s.engine.InventoryDeltas(in.Source, in.Destination)
	if err != nil {
		return nil, err
	}
	report.Warnings = append(warnings, report.Warnings...)
	return report, nil
}

// ApplyInventory sets destination stock to the source quantity of each
// approved delta. A failed update never stops the others.
func (s *compareService) ApplyInventory(ctx context.Context, req ApplyInventoryRequest) (*ApplyInventoryResponse, error) {
	dst, ok := s.connectors.Get(req.Destination)
	if !ok {
		return nil, fmt.Errorf("no connector configured for %s", req.Destination)
	}

	resp := &ApplyInventoryResponse{Results: make([]InventoryUpdateResult, 0, len(req.Deltas))}
	for _, d := range req.Deltas {
		result := InventoryUpdateResult{
			SKU:                  d.SKU,
			DestinationProductID: d.DestinationProductID,
			DestinationVariantID: d.DestinationVariantID,
			Quantity:             d.SourceQuantity,
			Status:               UpdateStatusSuccess,
		}

		if err := s.applyDelta(ctx, dst, d); err != nil {
			s.logger.Warn("Failed to update inventory",
				zap.String("destination", req.Destination.String()),
				zap.String("product_id", d.DestinationProductID),
				zap.String("variant_id", d.DestinationVariantID),
				zap.Error(err),
			)
			result.Status = UpdateStatusFailed
			result.Error = err.Error()
			resp.Failed++
		} else {
			resp.Updated++
		}
		resp.Results = append(resp.Results, result)
	}

	s.logger.Info("Inventory applied",
		zap.String("destination", req.Destination.String()),
		zap.Int("updated", resp.Updated),
		zap.Int("failed", resp.Failed),
	)
	return resp, nil
}

func (s *compareService) applyDelta(ctx context.Context, dst connector.Destination, d domain.InventoryDifference) error {
	if d.DestinationProductID == "" {
		return fmt.Errorf("delta for %q has no destination product", d.ProductName)
	}

	id := d.DestinationVariantID
	if id == "" {
		id = d.DestinationProductID
	}
	patch := domain.Patch{
		connector.PatchQuantity:  d.SourceQuantity,
		connector.PatchProductID: d.DestinationProductID,
	}
	return dst.Update(ctx, domain.EntityInventory, id, patch)
}
