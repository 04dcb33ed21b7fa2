// Package reconcile matches two fetched record sets and reports what is
// missing on either side and where inventory diverges. Everything here is
// synchronous over records the caller has already fetched.
package reconcile

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/jafarshop/storemigrate/internal/domain"
	"github.com/jafarshop/storemigrate/internal/normalize"
)

// Summary counts matches on both sides of a comparison
type Summary struct {
	SourceTotal       int `json:"sourceTotal" yaml:"sourceTotal"`
	DestinationTotal  int `json:"destinationTotal" yaml:"destinationTotal"`
	Matched           int `json:"matched" yaml:"matched"`
	OnlyInSource      int `json:"onlyInSource" yaml:"onlyInSource"`
	OnlyInDestination int `json:"onlyInDestination" yaml:"onlyInDestination"`
}

// GapReport lists source records without a destination counterpart
type GapReport struct {
	Entity      domain.EntityType `json:"entity" yaml:"entity"`
	Differences []interface{}     `json:"differences" yaml:"differences"`
	Summary     Summary           `json:"summary" yaml:"summary"`
	Warnings    []string          `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// OrphanReport lists destination records without a source counterpart
type OrphanReport struct {
	Entity   domain.EntityType `json:"entity" yaml:"entity"`
	Orphans  []interface{}     `json:"orphans" yaml:"orphans"`
	Summary  Summary           `json:"summary" yaml:"summary"`
	Warnings []string          `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// unmatched returns the positions in from with no counterpart in to
func unmatched(from, to []domain.Canonical) []int {
	idx := newIndex(to)
	var out []int
	for i, rec := range from {
		if _, ok := idx.lookup(rec); !ok {
			out = append(out, i)
		}
	}
	return out
}

func summarize(source, destination []domain.Canonical, onlySource, onlyDestination int) Summary {
	return Summary{
		SourceTotal:       len(source),
		DestinationTotal:  len(destination),
		Matched:           len(source) - onlySource,
		OnlyInSource:      onlySource,
		OnlyInDestination: onlyDestination,
	}
}

// FindGaps reports every source record that matches no destination record
func FindGaps(entity domain.EntityType, source, destination []domain.Canonical) *GapReport {
	missing := unmatched(source, destination)
	orphaned := unmatched(destination, source)

	report := &GapReport{
		Entity:      entity,
		Differences: make([]interface{}, 0, len(missing)),
		Summary:     summarize(source, destination, len(missing), len(orphaned)),
	}
	for _, i := range missing {
		report.Differences = append(report.Differences, Difference(source[i]))
	}
	return report
}

// FindOrphans reports every destination record that matches no source
// record. The source is the source of truth.
func FindOrphans(entity domain.EntityType, source, destination []domain.Canonical) *OrphanReport {
	missing := unmatched(source, destination)
	orphaned := unmatched(destination, source)

	report := &OrphanReport{
		Entity:  entity,
		Orphans: make([]interface{}, 0, len(orphaned)),
		Summary: summarize(source, destination, len(missing), len(orphaned)),
	}
	for _, i := range orphaned {
		report.Orphans = append(report.Orphans, Difference(destination[i]))
	}
	return report
}

// Engine canonicalizes native records before matching them
type Engine struct {
	registry *normalize.Registry
	logger   *zap.Logger
}

// NewEngine creates an Engine over the normalizers in registry
func NewEngine(registry *normalize.Registry, logger *zap.Logger) *Engine {
	return &Engine{registry: registry, logger: logger}
}

// Canonicalize converts records of type entity. Records that cannot be
// read are skipped; they would never match anything.
func (e *Engine) Canonicalize(entity domain.EntityType, records []domain.NativeRecord) ([]domain.Canonical, []string, error) {
	out := make([]domain.Canonical, 0, len(records))
	var warnings []string

	for _, rec := range records {
		n, err := e.registry.Lookup(rec.Platform(), entity)
		if err != nil {
			return nil, nil, err
		}
		c, err := n.ToCanonical(rec)
		if err != nil {
			e.logger.Warn("Skipping unreadable record",
				zap.String("platform", rec.Platform().String()),
				zap.String("entity", entity.String()),
				zap.String("id", rec.NativeID()),
				zap.Error(err),
			)
			warnings = append(warnings, fmt.Sprintf("%s %s %s skipped: %v", rec.Platform().DisplayName(), entity, rec.NativeID(), err))
			continue
		}
		out = append(out, c)
	}

	return out, warnings, nil
}

// Input is one comparison. SourceOfTruth defaults to the platform of the
// source records and selects which side the customer filter applies to.
type Input struct {
	Entity        domain.EntityType
	Source        []domain.NativeRecord
	Destination   []domain.NativeRecord
	SourceOfTruth domain.Platform
}

func (in Input) sourceOfTruth() domain.Platform {
	if in.SourceOfTruth != "" {
		return in.SourceOfTruth
	}
	if len(in.Source) > 0 {
		return in.Source[0].Platform()
	}
	return ""
}

func platformOf(records []domain.NativeRecord) domain.Platform {
	if len(records) == 0 {
		return ""
	}
	return records[0].Platform()
}

func (e *Engine) both(in Input) ([]domain.Canonical, []domain.Canonical, []string, error) {
	src, srcWarnings, err := e.Canonicalize(in.Entity, in.Source)
	if err != nil {
		return nil, nil, nil, err
	}
	dst, dstWarnings, err := e.Canonicalize(in.Entity, in.Destination)
	if err != nil {
		return nil, nil, nil, err
	}
	warnings := append(srcWarnings, dstWarnings...)

	if in.Entity == domain.EntityCustomer {
		truth := in.sourceOfTruth()
		var filter CustomerFilter
		switch truth {
		case platformOf(in.Source):
			src, filter = FilterCanonicalCustomers(src, truth)
		case platformOf(in.Destination):
			dst, filter = FilterCanonicalCustomers(dst, truth)
		}
		if filter.Dropped > 0 {
			e.logger.Info("Filtered customers",
				zap.String("source_of_truth", truth.String()),
				zap.Int("dropped", filter.Dropped),
			)
		}
		if filter.FallbackApplied {
			e.logger.Warn("Customer filter fallback applied", zap.String("source_of_truth", truth.String()))
			warnings = append(warnings, filter.Warning)
		}
	}

	return src, dst, warnings, nil
}

// Gaps builds the gap report for native records
func (e *Engine) Gaps(in Input) (*GapReport, error) {
	src, dst, warnings, err := e.both(in)
	if err != nil {
		return nil, err
	}

	report := FindGaps(in.Entity, src, dst)
	report.Warnings = warnings
	e.logger.Info("Gap report built",
		zap.String("entity", in.Entity.String()),
		zap.Int("matched", report.Summary.Matched),
		zap.Int("only_in_source", report.Summary.OnlyInSource),
	)
	return report, nil
}

// Orphans builds the orphan report for native records
func (e *Engine) Orphans(in Input) (*OrphanReport, error) {
	src, dst, warnings, err := e.both(in)
	if err != nil {
		return nil, err
	}

	report := FindOrphans(in.Entity, src, dst)
	report.Warnings = warnings
	e.logger.Info("Orphan report built",
		zap.String("entity", in.Entity.String()),
		zap.Int("matched", report.Summary.Matched),
		zap.Int("only_in_destination", report.Summary.OnlyInDestination),
	)
	return report, nil
}

// InventoryDeltas builds the inventory report for native product records
func (e *Engine) InventoryDeltas(source, destination []domain.NativeRecord) (*InventoryReport, error) {
	src, dst, warnings, err := e.both(Input{Entity: domain.EntityProduct, Source: source, Destination: destination})
	if err != nil {
		return nil, err
	}

	report := FindInventoryDeltas(products(src), products(dst))
	report.Warnings = append(warnings, report.Warnings...)
	e.logger.Info("Inventory report built",
		zap.Int("matched_products", report.MatchedProducts),
		zap.Int("deltas", len(report.Deltas)),
	)
	return report, nil
}

func products(records []domain.Canonical) []domain.Product {
	out := make([]domain.Product, 0, len(records))
	for _, rec := range records {
		if p, ok := rec.(domain.Product); ok {
			out = append(out, p)
		}
	}
	return out
}
