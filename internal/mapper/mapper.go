// Package mapper composes two platform normalizers into a one-step
// conversion from a source record to a destination payload.
package mapper

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/jafarshop/storemigrate/internal/domain"
	"github.com/jafarshop/storemigrate/internal/normalize"
)

// Preview is a conversion together with what the destination will lose
type Preview struct {
	Source      domain.NativeRecord `json:"source"`
	Canonical   domain.Canonical    `json:"canonical"`
	Destination domain.NativeRecord `json:"destination"`
	Warnings    []string            `json:"warnings"`
}

// Mapper converts records between platforms through the canonical model.
// It never validates; callers validate the canonical record between
// Canonicalize and Denormalize.
type Mapper struct {
	registry *normalize.Registry
	logger   *zap.Logger
}

// New creates a Mapper over the normalizers in registry
func New(registry *normalize.Registry, logger *zap.Logger) *Mapper {
	return &Mapper{registry: registry, logger: logger}
}

// Supports reports a capability mismatch when either platform has no
// normalizer for entity
func (m *Mapper) Supports(entity domain.EntityType, src, dst domain.Platform) error {
	if _, err := m.registry.Lookup(src, entity); err != nil {
		return err
	}
	if _, err := m.registry.Lookup(dst, entity); err != nil {
		return err
	}
	return nil
}

// Canonicalize converts a native src record of type entity
func (m *Mapper) Canonicalize(rec domain.NativeRecord, entity domain.EntityType, src domain.Platform) (domain.Canonical, error) {
	n, err := m.registry.Lookup(src, entity)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("no %s record to convert", entity)
	}
	if rec.Entity() != entity {
		return nil, fmt.Errorf("expected a %s record, got %s", entity, rec.Entity())
	}

	c, err := n.ToCanonical(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s %s %s: %w", src.DisplayName(), entity, rec.NativeID(), err)
	}
	return c, nil
}

// Denormalize builds the dst create payload for c
func (m *Mapper) Denormalize(c domain.Canonical, dst domain.Platform) (domain.NativeRecord, error) {
	if c == nil {
		return nil, fmt.Errorf("no canonical record to write to %s", dst.DisplayName())
	}
	n, err := m.registry.Lookup(dst, c.EntityType())
	if err != nil {
		return nil, err
	}

	rec, err := n.ToNative(c)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s %s payload: %w", dst.DisplayName(), c.EntityType(), err)
	}
	return rec, nil
}

// Migrate converts a src record of type entity into a dst create payload
func (m *Mapper) Migrate(rec domain.NativeRecord, entity domain.EntityType, src, dst domain.Platform) (domain.NativeRecord, error) {
	if err := m.Supports(entity, src, dst); err != nil {
		return nil, err
	}

	c, err := m.Canonicalize(rec, entity, src)
	if err != nil {
		return nil, err
	}
	return m.Denormalize(c, dst)
}

// Preview runs Migrate and collects advisory warnings about data the
// destination cannot hold
func (m *Mapper) Preview(rec domain.NativeRecord, entity domain.EntityType, src, dst domain.Platform) (*Preview, error) {
	if err := m.Supports(entity, src, dst); err != nil {
		return nil, err
	}

	c, err := m.Canonicalize(rec, entity, src)
	if err != nil {
		return nil, err
	}
	out, err := m.Denormalize(c, dst)
	if err != nil {
		return nil, err
	}

	warnings := m.Warnings(c, dst)
	if len(warnings) > 0 {
		m.logger.Debug("Lossy conversion",
			zap.String("entity", entity.String()),
			zap.String("source_id", rec.NativeID()),
			zap.String("destination", dst.String()),
			zap.Strings("warnings", warnings),
		)
	}

	return &Preview{
		Source:      rec,
		Canonical:   c,
		Destination: out,
		Warnings:    warnings,
	}, nil
}

// Warnings lists what writing c to dst will drop. It is empty, never nil.
func (m *Mapper) Warnings(c domain.Canonical, dst domain.Platform) []string {
	warnings := []string{}
	n, err := m.registry.Lookup(dst, c.EntityType())
	if err != nil {
		return warnings
	}
	if lr, ok := n.(normalize.LossReporter); ok {
		warnings = append(warnings, lr.LossyConversions(c)...)
	}
	return warnings
}
