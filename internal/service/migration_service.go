package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jafarshop/storemigrate/internal/connector"
	"github.com/jafarshop/storemigrate/internal/domain"
	"github.com/jafarshop/storemigrate/internal/jobs"
	"github.com/jafarshop/storemigrate/internal/mapper"
)

type migrationService struct {
	connectors connector.Set
	mapper     *mapper.Mapper
	runner     *jobs.Runner
	store      jobs.Store
	logger     *zap.Logger
}

// NewMigrationService creates the service behind previews and jobs
func NewMigrationService(connectors connector.Set, m *mapper.Mapper, runner *jobs.Runner, store jobs.Store, logger *zap.Logger) *migrationService {
	return &migrationService{
		connectors: connectors,
		mapper:     m,
		runner:     runner,
		store:      store,
		logger:     logger,
	}
}

// Preview fetches one source item and shows what the destination would
// receive. Nothing is written.
func (s *migrationService) Preview(ctx context.Context, req PreviewRequest) (*mapper.Preview, error) {
	if err := s.mapper.Supports(req.Type, req.Source, req.Destination); err != nil {
		return nil, err
	}

	src, ok := s.connectors.Get(req.Source)
	if !ok {
		return nil, fmt.Errorf("no connector configured for %s", req.Source)
	}

	rec, err := src.Fetch(ctx, req.Type, req.ItemID)
	if err != nil {
		s.logger.Error("Failed to fetch preview item",
			zap.String("source", req.Source.String()),
			zap.String("type", req.Type.String()),
			zap.String("item_id", req.ItemID),
			zap.Error(err),
		)
		return nil, err
	}

	return s.mapper.Preview(rec, req.Type, req.Source, req.Destination)
}

// CreateJob stores a migration job and starts it in the background
func (s *migrationService) CreateJob(ctx context.Context, req jobs.CreateRequest) (*domain.Job, error) {
	job, err := s.runner.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.runner.Start(ctx, job.ID)
}

// StartJob starts a pending job, for example one created before a restart
func (s *migrationService) StartJob(ctx context.Context, id string) (*domain.Job, error) {
	return s.runner.Start(ctx, id)
}

// GetJob returns the stored state of a job
func (s *migrationService) GetJob(ctx context.Context, id string) (*domain.Job, error) {
	return s.store.Get(ctx, id)
}
