// Package normalize defines the contract between platform record shapes and
// the canonical model, and a registry to pick a normalizer by platform.
package normalize

import (
	"fmt"

	"github.com/jafarshop/storemigrate/internal/domain"
	"github.com/jafarshop/storemigrate/pkg/errors"
)

// Normalizer converts one platform's native records to and from canonical
// records. Both directions are total over missing optional data.
type Normalizer interface {
	Platform() domain.Platform
	Supports(entity domain.EntityType) bool
	ToCanonical(rec domain.NativeRecord) (domain.Canonical, error)
	ToNative(c domain.Canonical) (domain.NativeRecord, error)
}

// LossReporter is implemented by normalizers that drop data on write. The
// returned messages are advisory and never block a migration.
type LossReporter interface {
	LossyConversions(c domain.Canonical) []string
}

// Registry maps platforms to their normalizer
type Registry struct {
	normalizers map[domain.Platform]Normalizer
}

// NewRegistry creates a registry from the given normalizers
func NewRegistry(normalizers ...Normalizer) *Registry {
	r := &Registry{normalizers: make(map[domain.Platform]Normalizer, len(normalizers))}
	for _, n := range normalizers {
		r.normalizers[n.Platform()] = n
	}
	return r
}

// Lookup returns the normalizer for platform that can handle entity
func (r *Registry) Lookup(platform domain.Platform, entity domain.EntityType) (Normalizer, error) {
	n, ok := r.normalizers[platform]
	if !ok || !n.Supports(entity) {
		return nil, &errors.ErrCapabilityMismatch{Entity: entity.String(), Platform: platform.String()}
	}
	return n, nil
}

// UnexpectedRecord reports a record whose concrete type the normalizer cannot handle
func UnexpectedRecord(platform domain.Platform, v interface{}) error {
	return fmt.Errorf("%s normalizer: unexpected record type %T", platform, v)
}
