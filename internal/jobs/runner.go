package jobs

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jafarshop/storemigrate/internal/connector"
	"github.com/jafarshop/storemigrate/internal/domain"
	"github.com/jafarshop/storemigrate/internal/mapper"
	"github.com/jafarshop/storemigrate/internal/validator"
	"github.com/jafarshop/storemigrate/pkg/errors"
)

// CreateRequest describes a batch of source items to migrate
type CreateRequest struct {
	Type        domain.EntityType `json:"type" binding:"required"`
	Source      domain.Platform   `json:"source" binding:"required"`
	Destination domain.Platform   `json:"destination" binding:"required"`
	Items       []string          `json:"items" binding:"required,min=1"`
}

// Runner migrates the items of a job one at a time. Each running job has
// its own goroutine; a job id can only be processing once.
type Runner struct {
	store      Store
	connectors connector.Set
	mapper     *mapper.Mapper
	validator  *validator.Validator
	logger     *zap.Logger
	now        func() time.Time

	mu         sync.Mutex
	processing map[string]struct{}
	wg         sync.WaitGroup
}

// NewRunner creates a job runner
func NewRunner(store Store, connectors connector.Set, m *mapper.Mapper, v *validator.Validator, logger *zap.Logger) *Runner {
	return &Runner{
		store:      store,
		connectors: connectors,
		mapper:     m,
		validator:  v,
		logger:     logger,
		now:        time.Now,
		processing: make(map[string]struct{}),
	}
}

// Create checks that the migration is possible and stores a pending job
func (r *Runner) Create(ctx context.Context, req CreateRequest) (*domain.Job, error) {
	if !req.Type.IsValid() || req.Type == domain.EntityInventory {
		return nil, fmt.Errorf("unknown entity type %q", req.Type)
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("a job needs at least one item")
	}
	if err := r.mapper.Supports(req.Type, req.Source, req.Destination); err != nil {
		return nil, err
	}
	if _, ok := r.connectors.Get(req.Source); !ok {
		return nil, fmt.Errorf("no connector configured for %s", req.Source)
	}
	if _, ok := r.connectors.Get(req.Destination); !ok {
		return nil, fmt.Errorf("no connector configured for %s", req.Destination)
	}

	job := &domain.Job{
		ID:          uuid.New().String(),
		Type:        req.Type,
		Source:      req.Source,
		Destination: req.Destination,
		Items:       append([]string(nil), req.Items...),
		Status:      domain.JobStatusPending,
		Total:       len(req.Items),
		Results:     []domain.ItemResult{},
		CreatedAt:   r.now().UTC(),
	}

	if err := r.store.Put(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to store job: %w", err)
	}

	r.logger.Info("Job created",
		zap.String("job_id", job.ID),
		zap.String("type", job.Type.String()),
		zap.String("source", job.Source.String()),
		zap.String("destination", job.Destination.String()),
		zap.Int("total", job.Total),
	)
	return job, nil
}

// Start moves a pending job to processing and runs it in the background.
// The job outlives ctx's cancellation.
func (r *Runner) Start(ctx context.Context, id string) (*domain.Job, error) {
	job, err := r.begin(ctx, id)
	if err != nil {
		return nil, err
	}

	snapshot := cloneJob(job)
	bg := context.WithoutCancel(ctx)
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.execute(bg, job)
	}()
	return snapshot, nil
}

// Run processes a pending job to completion in the calling goroutine
func (r *Runner) Run(ctx context.Context, id string) (*domain.Job, error) {
	job, err := r.begin(ctx, id)
	if err != nil {
		return nil, err
	}
	r.execute(ctx, job)
	return cloneJob(job), nil
}

// Wait blocks until every job started with Start has finished
func (r *Runner) Wait() {
	r.wg.Wait()
}

// IsProcessing reports whether id is currently running in this process
func (r *Runner) IsProcessing(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.processing[id]
	return ok
}

// begin claims id and persists the processing status. A stored processing
// job that no goroutine here owns is resumed.
func (r *Runner) begin(ctx context.Context, id string) (*domain.Job, error) {
	r.mu.Lock()
	if _, running := r.processing[id]; running {
		r.mu.Unlock()
		return nil, &errors.ErrJobAlreadyRunning{JobID: id}
	}
	r.processing[id] = struct{}{}
	r.mu.Unlock()

	job, err := r.store.Get(ctx, id)
	if err == nil {
		switch {
		case job.Status == domain.JobStatusProcessing:
			// Stored as processing but not claimed here: the process running
			// it stopped. Continue after the last persisted item.
			r.logger.Info("Resuming interrupted job",
				zap.String("job_id", id),
				zap.Int("progress", job.Progress),
				zap.Int("total", job.Total),
			)
		case !job.Status.CanTransitionTo(domain.JobStatusProcessing):
			err = &errors.ErrInvalidStateTransition{From: job.Status, To: domain.JobStatusProcessing}
		}
	}
	if err == nil {
		if job.Progress > len(job.Items) {
			job.Progress = len(job.Items)
		}
		job.Status = domain.JobStatusProcessing
		err = r.store.Put(ctx, job)
	}
	if err != nil {
		r.release(id)
		return nil, err
	}
	return job, nil
}

func (r *Runner) release(id string) {
	r.mu.Lock()
	delete(r.processing, id)
	r.mu.Unlock()
}

func (r *Runner) execute(ctx context.Context, job *domain.Job) {
	defer r.release(job.ID)

	logger := r.logger.With(zap.String("job_id", job.ID))
	logger.Info("Job started", zap.Int("total", job.Total))

	src, _ := r.connectors.Get(job.Source)
	dst, _ := r.connectors.Get(job.Destination)

	for _, itemID := range job.Items[job.Progress:] {
		result := r.processItem(ctx, job, src, dst, itemID)
		if result.Status == domain.ItemStatusFailed {
			logger.Warn("Item failed", zap.String("item_id", itemID), zap.String("error", result.Error))
		} else {
			logger.Debug("Item migrated", zap.String("item_id", itemID), zap.String("destination_id", result.DestinationID))
		}

		job.Results = append(job.Results, result)
		job.Progress++
		if err := r.store.Put(ctx, job); err != nil {
			logger.Error("Failed to persist job progress", zap.Int("progress", job.Progress), zap.Error(err))
		}
	}

	succeeded, failed := job.Counts()
	switch {
	case failed == 0:
		job.Status = domain.JobStatusCompleted
	case succeeded == 0:
		job.Status = domain.JobStatusFailed
		job.Error = fmt.Sprintf("all %d items failed", failed)
	default:
		job.Status = domain.JobStatusPartial
	}
	completed := r.now().UTC()
	job.CompletedAt = &completed

	if err := r.store.Put(ctx, job); err != nil {
		logger.Error("Failed to persist job result", zap.Error(err))
	}
	logger.Info("Job finished",
		zap.String("status", job.Status.String()),
		zap.Int("succeeded", succeeded),
		zap.Int("failed", failed),
	)
}

// processItem never panics; every failure becomes the item's result
func (r *Runner) processItem(ctx context.Context, job *domain.Job, src connector.Source, dst connector.Destination, itemID string) (result domain.ItemResult) {
	result = domain.ItemResult{ItemID: itemID, Status: domain.ItemStatusFailed}

	defer func() {
		if p := recover(); p != nil {
			r.logger.Error("Recovered from panic while migrating item",
				zap.String("job_id", job.ID),
				zap.String("item_id", itemID),
				zap.Any("panic", p),
			)
			result.Status = domain.ItemStatusFailed
			result.DestinationID = ""
			result.Error = fmt.Sprintf("unexpected failure: %v", p)
		}
	}()

	rec, err := src.Fetch(ctx, job.Type, itemID)
	if err != nil {
		result.Error = fmt.Sprintf("failed to fetch %s %s: %v", job.Type, itemID, err)
		return result
	}

	c, err := r.mapper.Canonicalize(rec, job.Type, job.Source)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	if v := r.validator.Validate(c, job.Type); !v.Valid {
		result.ValidationErrors = v.Errors
		result.Error = (&errors.ErrValidation{Entity: job.Type.String(), Errors: v.Errors}).Error()
		return result
	}

	payload, err := r.mapper.Denormalize(c, job.Destination)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	if warnings := r.mapper.Warnings(c, job.Destination); len(warnings) > 0 {
		result.Warnings = warnings
	}

	id, err := dst.Create(ctx, job.Type, payload)
	if err != nil {
		result.Error = fmt.Sprintf("failed to create %s on %s: %v", job.Type, job.Destination.DisplayName(), err)
		return result
	}

	result.Status = domain.ItemStatusSuccess
	result.DestinationID = id
	return result
}

// Summary renders a one-line outcome of a finished job
func Summary(job *domain.Job) string {
	succeeded, failed := job.Counts()
	parts := []string{fmt.Sprintf("%d/%d items", job.Progress, job.Total)}
	if succeeded > 0 {
		parts = append(parts, fmt.Sprintf("%d succeeded", succeeded))
	}
	if failed > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", failed))
	}
	return fmt.Sprintf("%s: %s", job.Status, strings.Join(parts, ", "))
}
