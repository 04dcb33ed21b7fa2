// Package redis stores job records as JSON documents in Redis
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/jafarshop/storemigrate/internal/domain"
	apperrors "github.com/jafarshop/storemigrate/pkg/errors"
)

const defaultKeyPrefix = "storemigrate:job:"

// Config holds Redis connection configuration
type Config struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
	// TTL expires finished and abandoned jobs; zero keeps them forever
	TTL time.Duration
}

// JobStore keeps one JSON document per job
type JobStore struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
	logger    *zap.Logger
}

// NewJobStore connects to Redis and verifies the connection
func NewJobStore(ctx context.Context, cfg Config, logger *zap.Logger) (*JobStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewJobStoreWithClient(client, cfg.KeyPrefix, cfg.TTL, logger), nil
}

// NewJobStoreWithClient creates a store over an existing client
func NewJobStoreWithClient(client *redis.Client, keyPrefix string, ttl time.Duration, logger *zap.Logger) *JobStore {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	return &JobStore{
		client:    client,
		keyPrefix: keyPrefix,
		ttl:       ttl,
		logger:    logger,
	}
}

func (s *JobStore) key(id string) string {
	return s.keyPrefix + id
}

func (s *JobStore) Get(ctx context.Context, id string) (*domain.Job, error) {
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, &apperrors.ErrNotFound{Resource: "job", ID: id}
	}
	if err != nil {
		s.logger.Error("Failed to read job", zap.String("job_id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to read job %s: %w", id, err)
	}

	var job domain.Job
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("failed to decode job %s: %w", id, err)
	}
	return &job, nil
}

func (s *JobStore) Put(ctx context.Context, job *domain.Job) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to encode job %s: %w", job.ID, err)
	}

	if err := s.client.Set(ctx, s.key(job.ID), data, s.ttl).Err(); err != nil {
		s.logger.Error("Failed to save job", zap.String("job_id", job.ID), zap.Error(err))
		return fmt.Errorf("failed to save job %s: %w", job.ID, err)
	}
	return nil
}

// Close closes the Redis client
func (s *JobStore) Close() error {
	return s.client.Close()
}
