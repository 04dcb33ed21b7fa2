package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/jafarshop/storemigrate/internal/domain"
	"github.com/jafarshop/storemigrate/pkg/errors"
)

// Schema creates the jobs table
const Schema = `
	CREATE TABLE IF NOT EXISTS migration_jobs (
		id           UUID PRIMARY KEY,
		type         TEXT NOT NULL,
		source       TEXT NOT NULL,
		destination  TEXT NOT NULL,
		items        TEXT[] NOT NULL,
		status       TEXT NOT NULL,
		progress     INTEGER NOT NULL DEFAULT 0,
		total        INTEGER NOT NULL,
		results      JSONB NOT NULL DEFAULT '[]',
		created_at   TIMESTAMPTZ NOT NULL,
		completed_at TIMESTAMPTZ,
		error        TEXT
	)
`

type jobRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewJobRepository creates a job store backed by Postgres
func NewJobRepository(db *sql.DB, logger *zap.Logger) *jobRepository {
	return &jobRepository{
		db:     db,
		logger: logger,
	}
}

// EnsureSchema creates the jobs table if it does not exist
func (r *jobRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, Schema); err != nil {
		r.logger.Error("Failed to create jobs table", zap.Error(err))
		return err
	}
	return nil
}

func (r *jobRepository) Get(ctx context.Context, id string) (*domain.Job, error) {
	query := `
		SELECT id, type, source, destination, items, status, progress, total, results, created_at, completed_at, error
		FROM migration_jobs
		WHERE id = $1
	`

	var job domain.Job
	var results []byte
	var completedAt sql.NullTime
	var jobErr sql.NullString

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&job.ID,
		&job.Type,
		&job.Source,
		&job.Destination,
		pq.Array(&job.Items),
		&job.Status,
		&job.Progress,
		&job.Total,
		&results,
		&job.CreatedAt,
		&completedAt,
		&jobErr,
	)

	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "job", ID: id}
	}
	if err != nil {
		r.logger.Error("Failed to get job by ID", zap.String("job_id", id), zap.Error(err))
		return nil, err
	}

	job.Results = []domain.ItemResult{}
	if len(results) > 0 {
		if err := json.Unmarshal(results, &job.Results); err != nil {
			return nil, fmt.Errorf("failed to decode results of job %s: %w", id, err)
		}
	}
	if completedAt.Valid {
		t := completedAt.Time
		job.CompletedAt = &t
	}
	if jobErr.Valid {
		job.Error = jobErr.String
	}

	return &job, nil
}

// Put inserts the job or replaces its mutable columns
func (r *jobRepository) Put(ctx context.Context, job *domain.Job) error {
	query := `
		INSERT INTO migration_jobs (id, type, source, destination, items, status, progress, total, results, created_at, completed_at, error)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE
		SET status = EXCLUDED.status,
			progress = EXCLUDED.progress,
			results = EXCLUDED.results,
			completed_at = EXCLUDED.completed_at,
			error = EXCLUDED.error
	`

	results := job.Results
	if results == nil {
		results = []domain.ItemResult{}
	}
	encoded, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("failed to encode results of job %s: %w", job.ID, err)
	}

	var jobErr sql.NullString
	if job.Error != "" {
		jobErr = sql.NullString{String: job.Error, Valid: true}
	}

	_, err = r.db.ExecContext(ctx, query,
		job.ID,
		string(job.Type),
		string(job.Source),
		string(job.Destination),
		pq.Array(job.Items),
		string(job.Status),
		job.Progress,
		job.Total,
		encoded,
		job.CreatedAt,
		job.CompletedAt,
		jobErr,
	)

	if err != nil {
		r.logger.Error("Failed to save job", zap.String("job_id", job.ID), zap.Error(err))
		return err
	}

	return nil
}
