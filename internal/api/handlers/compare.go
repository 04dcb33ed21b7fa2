package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/storemigrate/internal/domain"
	"github.com/jafarshop/storemigrate/internal/reconcile"
	"github.com/jafarshop/storemigrate/internal/service"
)

// CompareService builds reconciliation reports and applies approved
// inventory deltas
type CompareService interface {
	Gaps(ctx context.Context, req service.CompareRequest) (*reconcile.GapReport, error)
	Orphans(ctx context.Context, req service.CompareRequest) (*reconcile.OrphanReport, error)
	InventoryDeltas(ctx context.Context, req service.CompareRequest) (*reconcile.InventoryReport, error)
	ApplyInventory(ctx context.Context, req service.ApplyInventoryRequest) (*service.ApplyInventoryResponse, error)
}

// compareRequest reads the query of a report route. Omitted platforms
// compare WooCommerce against Shopify.
func compareRequest(c *gin.Context, entity domain.EntityType) (service.CompareRequest, bool) {
	var req service.CompareRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query", "details": err.Error()})
		return req, false
	}
	req.Type = entity

	source, destination := req.Source, req.Destination
	if source == "" {
		source = domain.PlatformWooCommerce
	}
	if destination == "" {
		destination = domain.PlatformShopify
	}
	if err := checkDirection(entity, source, destination); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return req, false
	}
	if req.SourceOfTruth != "" && req.SourceOfTruth != source && req.SourceOfTruth != destination {
		c.JSON(http.StatusBadRequest, gin.H{"error": "source_of_truth must be the source or the destination"})
		return req, false
	}
	return req, true
}

// HandleGaps handles GET /v1/compare/:type
func HandleGaps(svc CompareService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, ok := compareRequest(c, domain.EntityType(c.Param("type")))
		if !ok {
			return
		}

		report, err := svc.Gaps(c.Request.Context(), req)
		if err != nil {
			respondError(c, logger, err, "failed to build gap report")
			return
		}

		c.JSON(http.StatusOK, report)
	}
}

// HandleOrphans handles GET /v1/orphans/:type
func HandleOrphans(svc CompareService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, ok := compareRequest(c, domain.EntityType(c.Param("type")))
		if !ok {
			return
		}

		report, err := svc.Orphans(c.Request.Context(), req)
		if err != nil {
			respondError(c, logger, err, "failed to build orphan report")
			return
		}

		c.JSON(http.StatusOK, report)
	}
}

// HandleInventoryDeltas handles GET /v1/inventory/deltas
func HandleInventoryDeltas(svc CompareService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, ok := compareRequest(c, domain.EntityProduct)
		if !ok {
			return
		}

		report, err := svc.InventoryDeltas(c.Request.Context(), req)
		if err != nil {
			respondError(c, logger, err, "failed to build inventory report")
			return
		}

		c.JSON(http.StatusOK, report)
	}
}

// HandleApplyInventory handles POST /v1/inventory/apply. The deltas are
// the ones a reviewer approved from the inventory report.
func HandleApplyInventory(svc CompareService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.ApplyInventoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
			return
		}
		if !req.Destination.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown destination platform"})
			return
		}

		resp, err := svc.ApplyInventory(c.Request.Context(), req)
		if err != nil {
			respondError(c, logger, err, "failed to apply inventory")
			return
		}

		status := http.StatusOK
		if resp.Updated == 0 && resp.Failed > 0 {
			status = http.StatusBadGateway
		}
		c.JSON(status, resp)
	}
}
