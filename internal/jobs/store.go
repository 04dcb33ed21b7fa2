// Package jobs runs migration batches item by item and persists their
// progress through a Store.
package jobs

import (
	"context"
	"sync"

	"github.com/jafarshop/storemigrate/internal/domain"
	"github.com/jafarshop/storemigrate/pkg/errors"
)

// Store persists job records. Put replaces the whole record; Get returns
// *errors.ErrNotFound for an unknown id.
type Store interface {
	Get(ctx context.Context, id string) (*domain.Job, error)
	Put(ctx context.Context, job *domain.Job) error
}

// MemoryStore keeps jobs in process memory
type MemoryStore struct {
	mu   sync.RWMutex
	jobs map[string]*domain.Job
}

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{jobs: make(map[string]*domain.Job)}
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*domain.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.jobs[id]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "job", ID: id}
	}
	return cloneJob(job), nil
}

func (s *MemoryStore) Put(ctx context.Context, job *domain.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs[job.ID] = cloneJob(job)
	return nil
}

// cloneJob copies the slices so callers never share state with the store
func cloneJob(job *domain.Job) *domain.Job {
	c := *job
	c.Items = append([]string(nil), job.Items...)
	c.Results = make([]domain.ItemResult, len(job.Results))
	for i, r := range job.Results {
		r.ValidationErrors = append([]string(nil), r.ValidationErrors...)
		r.Warnings = append([]string(nil), r.Warnings...)
		c.Results[i] = r
	}
	if job.CompletedAt != nil {
		t := *job.CompletedAt
		c.CompletedAt = &t
	}
	return &c
}
