package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/storemigrate/internal/domain"
	apperrors "github.com/jafarshop/storemigrate/pkg/errors"
)

// respondError maps typed errors to a status; anything else is a 500
// carrying fallback
func respondError(c *gin.Context, logger *zap.Logger, err error, fallback string) {
	var (
		mismatch   *apperrors.ErrCapabilityMismatch
		validation *apperrors.ErrValidation
		notFound   *apperrors.ErrNotFound
		running    *apperrors.ErrJobAlreadyRunning
		transition *apperrors.ErrInvalidStateTransition
		denied     *apperrors.ErrUnauthorized
	)

	switch {
	case errors.As(err, &mismatch):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": validation.Errors})
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &running), errors.As(err, &transition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &denied):
		// a platform rejected our credentials, not the caller's
		logger.Error(fallback, zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		logger.Error(fallback, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback, "details": err.Error()})
	}
}

// checkDirection rejects unknown entity types and platforms before any
// service call
func checkDirection(entity domain.EntityType, source, destination domain.Platform) error {
	if !entity.IsValid() || entity == domain.EntityInventory {
		return fmt.Errorf("unknown entity type %q", entity)
	}
	if !source.IsValid() {
		return fmt.Errorf("unknown source platform %q", source)
	}
	if !destination.IsValid() {
		return fmt.Errorf("unknown destination platform %q", destination)
	}
	if source == destination {
		return fmt.Errorf("source and destination are both %s", source)
	}
	return nil
}
