package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/jobify-service/internal/domain"
	"github.com/spec-kit/jobify-service/internal/events"
	"github.com/spec-kit/jobify-service/internal/repository"
)

const (
	cacheKeyPublished = "published"
	cacheKeyLatest    = "latest"
)

// DefaultLatestLimit is how many postings the latest-jobs listing returns.
const DefaultLatestLimit = 3

// JobService coordinates job postings.
type JobService struct {
	jobs        repository.JobRepository
	cache       repository.JobCache
	dispatcher  events.Dispatcher
	logger      *zap.Logger
	latestLimit int
}

// JobDependencies bundles collaborators for the job service.
type JobDependencies struct {
	JobRepo     repository.JobRepository
	Cache       repository.JobCache
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
	LatestLimit int
}

// NewJobService builds the service. Cache, Dispatcher and Logger are optional.
func NewJobService(deps JobDependencies) *JobService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	limit := deps.LatestLimit
	if limit <= 0 {
		limit = DefaultLatestLimit
	}
	return &JobService{
		jobs:        deps.JobRepo,
		cache:       deps.Cache,
		dispatcher:  deps.Dispatcher,
		logger:      logger,
		latestLimit: limit,
	}
}

// JobCreateInput describes job creation payload.
type JobCreateInput struct {
	Title        string
	Company      string
	CompanyCover string
	Location     string
	Content      string
	Status       domain.JobStatus
	Details      map[string]any
}

// Create stores a new posting on behalf of actor.
func (s *JobService) Create(ctx context.Context, actor string, input JobCreateInput) (*domain.Job, error) {
	status := input.Status
	if status == "" {
		status = domain.JobStatusDraft
	}
	job := &domain.Job{
		Title:        input.Title,
		Company:      input.Company,
		CompanyCover: input.CompanyCover,
		Location:     input.Location,
		Content:      input.Content,
		Status:       status,
		Details:      input.Details,
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	publish(ctx, s.dispatcher, events.EventJobCreated, actor, job.ID, events.JobCreatedPayload{Title: job.Title, Status: string(job.Status)})
	return job, nil
}

// Get returns a single posting.
func (s *JobService) Get(ctx context.Context, id string) (*domain.Job, error) {
	if !validID(id) {
		return nil, repository.ErrNotFound
	}
	return s.jobs.GetByID(ctx, id)
}

// List returns every posting, newest first.
func (s *JobService) List(ctx context.Context) ([]domain.Job, error) {
	return s.jobs.List(ctx)
}

// ListPublished returns every published posting, newest first.
func (s *JobService) ListPublished(ctx context.Context) ([]domain.Job, error) {
	return s.cached(ctx, cacheKeyPublished, 0)
}

// Latest returns the newest published postings.
func (s *JobService) Latest(ctx context.Context) ([]domain.Job, error) {
	return s.cached(ctx, cacheKeyLatest, s.latestLimit)
}

// UpdateStatus moves a posting between draft and published.
func (s *JobService) UpdateStatus(ctx context.Context, actor, id string, status domain.JobStatus) error {
	if !validID(id) {
		return repository.ErrNotFound
	}
	if err := s.jobs.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	s.invalidate(ctx)
	publish(ctx, s.dispatcher, events.EventJobStatusChanged, actor, id, events.StatusChangedPayload{Status: string(status)})
	return nil
}

// Delete removes a posting.
func (s *JobService) Delete(ctx context.Context, actor, id string) error {
	if !validID(id) {
		return repository.ErrNotFound
	}
	if err := s.jobs.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	publish(ctx, s.dispatcher, events.EventJobDeleted, actor, id, nil)
	return nil
}

func (s *JobService) cached(ctx context.Context, key string, limit int) ([]domain.Job, error) {
	if s.cache != nil {
		jobs, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			s.logger.Warn("job cache read failed", zap.String("key", key), zap.Error(err))
		} else if ok {
			return jobs, nil
		}
	}

	jobs, err := s.jobs.ListPublished(ctx, limit)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, jobs); err != nil {
			s.logger.Warn("job cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return jobs, nil
}

func (s *JobService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, cacheKeyPublished, cacheKeyLatest); err != nil {
		s.logger.Warn("job cache invalidation failed", zap.Error(err))
	}
}
