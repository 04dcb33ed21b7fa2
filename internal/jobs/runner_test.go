package jobs

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jafarshop/storemigrate/internal/connector"
	"github.com/jafarshop/storemigrate/internal/domain"
	"github.com/jafarshop/storemigrate/internal/mapper"
	"github.com/jafarshop/storemigrate/internal/normalize"
	"github.com/jafarshop/storemigrate/internal/shopify"
	"github.com/jafarshop/storemigrate/internal/validator"
	"github.com/jafarshop/storemigrate/internal/woocommerce"
	apperrors "github.com/jafarshop/storemigrate/pkg/errors"
)

// fakeSource serves WooCommerce categories; fetch can be overridden per id
type fakeSource struct {
	fetch map[string]func() (domain.NativeRecord, error)
	gate  chan struct{}
}

func (f *fakeSource) Platform() domain.Platform { return domain.PlatformWooCommerce }

func (f *fakeSource) FetchAll(ctx context.Context, entity domain.EntityType) ([]domain.NativeRecord, error) {
	return nil, nil
}

func (f *fakeSource) Fetch(ctx context.Context, entity domain.EntityType, id string) (domain.NativeRecord, error) {
	if f.gate != nil {
		<-f.gate
	}
	if fn, ok := f.fetch[id]; ok {
		return fn()
	}
	n, _ := strconv.ParseInt(id, 10, 64)
	return woocommerce.Category{ID: n, Name: "Category " + id, Slug: "category-" + id}, nil
}

func (f *fakeSource) Create(ctx context.Context, entity domain.EntityType, payload domain.NativeRecord) (string, error) {
	return "", errors.New("read only")
}

func (f *fakeSource) Update(ctx context.Context, entity domain.EntityType, id string, patch domain.Patch) error {
	return errors.New("read only")
}

// fakeDestination records created Shopify payloads
type fakeDestination struct {
	mu      sync.Mutex
	created []domain.NativeRecord
	fail    map[string]error
}

func (f *fakeDestination) Platform() domain.Platform { return domain.PlatformShopify }

func (f *fakeDestination) FetchAll(ctx context.Context, entity domain.EntityType) ([]domain.NativeRecord, error) {
	return nil, nil
}

func (f *fakeDestination) Fetch(ctx context.Context, entity domain.EntityType, id string) (domain.NativeRecord, error) {
	return nil, &apperrors.ErrNotFound{Resource: string(entity), ID: id}
}

func (f *fakeDestination) Create(ctx context.Context, entity domain.EntityType, payload domain.NativeRecord) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if c, ok := payload.(shopify.Collection); ok {
		if err, ok := f.fail[c.Title]; ok {
			return "", err
		}
	}
	f.created = append(f.created, payload)
	return fmt.Sprintf("gid://shopify/Collection/%d", len(f.created)), nil
}

func (f *fakeDestination) Update(ctx context.Context, entity domain.EntityType, id string, patch domain.Patch) error {
	return nil
}

// countingStore counts writes on top of a MemoryStore
type countingStore struct {
	*MemoryStore
	mu       sync.Mutex
	progress []int
}

func (s *countingStore) Put(ctx context.Context, job *domain.Job) error {
	s.mu.Lock()
	s.progress = append(s.progress, job.Progress)
	s.mu.Unlock()
	return s.MemoryStore.Put(ctx, job)
}

func newRunner(t *testing.T, src *fakeSource, dst *fakeDestination, store Store) *Runner {
	t.Helper()
	registry := normalize.NewRegistry(woocommerce.Normalizer{}, shopify.Normalizer{})
	connectors := connector.Set{
		domain.PlatformWooCommerce: src,
		domain.PlatformShopify:     dst,
	}
	r := NewRunner(store, connectors, mapper.New(registry, zap.NewNop()), validator.New(), zap.NewNop())
	r.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return r
}

func collectionRequest(items ...string) CreateRequest {
	return CreateRequest{
		Type:        domain.EntityCollection,
		Source:      domain.PlatformWooCommerce,
		Destination: domain.PlatformShopify,
		Items:       items,
	}
}

func TestRunPartialWhenOneItemPanics(t *testing.T) {
	ctx := context.Background()
	src := &fakeSource{fetch: map[string]func() (domain.NativeRecord, error){
		"2": func() (domain.NativeRecord, error) { panic("connection reset") },
	}}
	dst := &fakeDestination{}
	store := &countingStore{MemoryStore: NewMemoryStore()}
	r := newRunner(t, src, dst, store)

	job, err := r.Create(ctx, collectionRequest("1", "2", "3"))
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusPending, job.Status)

	done, err := r.Run(ctx, job.ID)
	require.NoError(t, err)

	assert.Equal(t, domain.JobStatusPartial, done.Status)
	assert.Equal(t, 3, done.Progress)
	require.Len(t, done.Results, 3)
	assert.Equal(t, domain.ItemStatusSuccess, done.Results[0].Status)
	assert.Equal(t, domain.ItemStatusFailed, done.Results[1].Status)
	assert.Contains(t, done.Results[1].Error, "connection reset")
	assert.Equal(t, domain.ItemStatusSuccess, done.Results[2].Status)
	assert.Equal(t, "gid://shopify/Collection/2", done.Results[2].DestinationID)
	require.NotNil(t, done.CompletedAt)
	assert.Len(t, dst.created, 2)

	// pending, processing, one write per item, final
	assert.Equal(t, []int{0, 0, 1, 2, 3, 3}, store.progress)

	stored, err := store.Get(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusPartial, stored.Status)
	assert.False(t, r.IsProcessing(job.ID))
}

func TestRunCompleted(t *testing.T) {
	ctx := context.Background()
	r := newRunner(t, &fakeSource{}, &fakeDestination{}, NewMemoryStore())

	job, err := r.Create(ctx, collectionRequest("1", "2"))
	require.NoError(t, err)

	done, err := r.Run(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusCompleted, done.Status)
	assert.Empty(t, done.Error)
}

func TestRunFailedWhenEveryItemFails(t *testing.T) {
	ctx := context.Background()
	src := &fakeSource{fetch: map[string]func() (domain.NativeRecord, error){
		"1": func() (domain.NativeRecord, error) { return nil, &apperrors.ErrNotFound{Resource: "category", ID: "1"} },
		"2": func() (domain.NativeRecord, error) { return woocommerce.Category{ID: 2}, nil },
	}}
	dst := &fakeDestination{}
	r := newRunner(t, src, dst, NewMemoryStore())

	job, err := r.Create(ctx, collectionRequest("1", "2"))
	require.NoError(t, err)

	done, err := r.Run(ctx, job.ID)
	require.NoError(t, err)

	assert.Equal(t, domain.JobStatusFailed, done.Status)
	assert.Equal(t, "all 2 items failed", done.Error)
	assert.Contains(t, done.Results[0].Error, "category not found: 1")
	assert.Equal(t, []string{"name is required"}, done.Results[1].ValidationErrors)
	assert.Empty(t, dst.created)
}

func TestRunRecordsDestinationErrors(t *testing.T) {
	ctx := context.Background()
	dst := &fakeDestination{fail: map[string]error{"Category 2": errors.New("title: Title has already been taken")}}
	r := newRunner(t, &fakeSource{}, dst, NewMemoryStore())

	job, err := r.Create(ctx, collectionRequest("1", "2"))
	require.NoError(t, err)

	done, err := r.Run(ctx, job.ID)
	require.NoError(t, err)

	assert.Equal(t, domain.JobStatusPartial, done.Status)
	assert.Contains(t, done.Results[1].Error, "Title has already been taken")
}

func TestStartRejectsDoubleStart(t *testing.T) {
	ctx := context.Background()
	src := &fakeSource{gate: make(chan struct{})}
	r := newRunner(t, src, &fakeDestination{}, NewMemoryStore())

	job, err := r.Create(ctx, collectionRequest("1"))
	require.NoError(t, err)

	started, err := r.Start(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusProcessing, started.Status)
	assert.True(t, r.IsProcessing(job.ID))

	_, err = r.Start(ctx, job.ID)
	var running *apperrors.ErrJobAlreadyRunning
	assert.True(t, errors.As(err, &running))

	close(src.gate)
	r.Wait()

	_, err = r.Start(ctx, job.ID)
	var transition *apperrors.ErrInvalidStateTransition
	assert.True(t, errors.As(err, &transition), "finished jobs cannot restart")
	assert.False(t, r.IsProcessing(job.ID))
}

func TestRunResumesInterruptedJob(t *testing.T) {
	ctx := context.Background()
	src := &fakeSource{fetch: map[string]func() (domain.NativeRecord, error){
		"1": func() (domain.NativeRecord, error) {
			t.Error("item 1 was migrated before the interruption and must not be fetched again")
			return nil, errors.New("fetched twice")
		},
	}}
	dst := &fakeDestination{}
	store := NewMemoryStore()
	r := newRunner(t, src, dst, store)

	require.NoError(t, store.Put(ctx, &domain.Job{
		ID:          "interrupted",
		Type:        domain.EntityCollection,
		Source:      domain.PlatformWooCommerce,
		Destination: domain.PlatformShopify,
		Items:       []string{"1", "2"},
		Status:      domain.JobStatusProcessing,
		Progress:    1,
		Total:       2,
		Results: []domain.ItemResult{
			{ItemID: "1", Status: domain.ItemStatusSuccess, DestinationID: "gid://shopify/Collection/1"},
		},
	}))

	done, err := r.Run(ctx, "interrupted")
	require.NoError(t, err)

	assert.Equal(t, domain.JobStatusCompleted, done.Status)
	assert.Equal(t, 2, done.Progress)
	require.Len(t, done.Results, 2)
	assert.Equal(t, "1", done.Results[0].ItemID)
	assert.Equal(t, "2", done.Results[1].ItemID)
	assert.Len(t, dst.created, 1)
	assert.False(t, r.IsProcessing("interrupted"))
}

func TestStartUnknownJob(t *testing.T) {
	r := newRunner(t, &fakeSource{}, &fakeDestination{}, NewMemoryStore())

	_, err := r.Start(context.Background(), "missing")

	var notFound *apperrors.ErrNotFound
	assert.True(t, errors.As(err, &notFound))
	assert.False(t, r.IsProcessing("missing"))
}

func TestCreateRejectsCapabilityMismatch(t *testing.T) {
	r := newRunner(t, &fakeSource{}, &fakeDestination{}, NewMemoryStore())

	_, err := r.Create(context.Background(), CreateRequest{
		Type:        domain.EntityReview,
		Source:      domain.PlatformWooCommerce,
		Destination: domain.PlatformShopify,
		Items:       []string{"1"},
	})

	var mismatch *apperrors.ErrCapabilityMismatch
	assert.True(t, errors.As(err, &mismatch))
}

func TestCreateRejectsEmptyBatch(t *testing.T) {
	r := newRunner(t, &fakeSource{}, &fakeDestination{}, NewMemoryStore())

	_, err := r.Create(context.Background(), collectionRequest())
	assert.Error(t, err)
}

func TestSummary(t *testing.T) {
	job := &domain.Job{
		Status:   domain.JobStatusPartial,
		Progress: 3,
		Total:    3,
		Results: []domain.ItemResult{
			{Status: domain.ItemStatusSuccess},
			{Status: domain.ItemStatusFailed},
			{Status: domain.ItemStatusSuccess},
		},
	}
	assert.Equal(t, "partial: 3/3 items, 2 succeeded, 1 failed", Summary(job))
}

func TestMemoryStoreCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	job := &domain.Job{ID: "j1", Items: []string{"1"}, Status: domain.JobStatusPending}
	require.NoError(t, store.Put(ctx, job))

	job.Items[0] = "changed"
	got, err := store.Get(ctx, "j1")
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, got.Items)

	got.Status = domain.JobStatusFailed
	again, err := store.Get(ctx, "j1")
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusPending, again.Status)
}
