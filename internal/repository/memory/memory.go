// Package memory provides in-process repositories used when no database is
// configured and in tests.
package memory

import (
	"context"
	"maps"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/jobify-service/internal/domain"
	"github.com/spec-kit/jobify-service/internal/repository"
)

// UserRepository keeps users keyed by email.
type UserRepository struct {
	mu    sync.RWMutex
	seq   int64
	users map[string]*userEntry
}

type userEntry struct {
	user domain.User
	seq  int64
}

var _ repository.UserRepository = (*UserRepository)(nil)

// NewUserRepository returns an empty store.
func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]*userEntry)}
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.Email]; exists {
		return repository.ErrConflict
	}
	now := time.Now().UTC()
	user.Email = strings.Clone(user.Email)
	user.ID = uuid.NewString()
	user.Role = domain.ParseRole(string(user.Role))
	user.CreatedAt = now
	user.UpdatedAt = now
	r.seq++
	r.users[user.Email] = &userEntry{user: *user, seq: r.seq}
	return nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	user := entry.user
	return &user, nil
}

func (r *UserRepository) UpsertProfile(ctx context.Context, email, name, image string) (*domain.User, error) {
	r.mu.Lock()
	entry, ok := r.users[email]
	if ok {
		entry.user.Name = name
		entry.user.Image = image
		entry.user.UpdatedAt = time.Now().UTC()
		user := entry.user
		r.mu.Unlock()
		return &user, nil
	}
	r.mu.Unlock()

	user := &domain.User{Email: email, Name: name, Image: image, Role: domain.RoleNone, Status: domain.UserStatusActive}
	if err := r.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) List(_ context.Context) ([]domain.User, error) {
	r.mu.RLock()
	entries := make([]userEntry, 0, len(r.users))
	for _, entry := range r.users {
		entries = append(entries, *entry)
	}
	r.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool { return entries[i].seq > entries[j].seq })
	result := make([]domain.User, 0, len(entries))
	for _, entry := range entries {
		result = append(result, entry.user)
	}
	return result, nil
}

func (r *UserRepository) UpdateStatus(_ context.Context, id string, status domain.UserStatus) error {
	return r.update(id, func(u *domain.User) { u.Status = status })
}

func (r *UserRepository) UpdateRole(_ context.Context, id string, role domain.Role) error {
	return r.update(id, func(u *domain.User) { u.Role = role })
}

// SetRole overwrites the stored role for email. The raw value goes through
// domain.ParseRole, so anything outside the known roles is stored as none.
func (r *UserRepository) SetRole(email, role string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if entry, ok := r.users[email]; ok {
		entry.user.Role = domain.ParseRole(role)
	}
}

func (r *UserRepository) update(id string, fn func(*domain.User)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, entry := range r.users {
		if entry.user.ID == id {
			fn(&entry.user)
			entry.user.UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return repository.ErrNotFound
}

// JobRepository keeps jobs keyed by id.
type JobRepository struct {
	mu   sync.RWMutex
	seq  int64
	jobs map[string]*jobEntry
}

type jobEntry struct {
	job domain.Job
	seq int64
}

var _ repository.JobRepository = (*JobRepository)(nil)

// NewJobRepository returns an empty store.
func NewJobRepository() *JobRepository {
	return &JobRepository{jobs: make(map[string]*jobEntry)}
}

func (r *JobRepository) Create(_ context.Context, job *domain.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	job.ID = uuid.NewString()
	job.PostedAt = now
	job.UpdatedAt = now
	if job.Details == nil {
		job.Details = map[string]any{}
	}
	r.seq++
	stored := *job
	stored.Details = maps.Clone(job.Details)
	r.jobs[job.ID] = &jobEntry{job: stored, seq: r.seq}
	return nil
}

func (r *JobRepository) GetByID(_ context.Context, id string) (*domain.Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.jobs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	job := cloneJob(entry.job)
	return &job, nil
}

func (r *JobRepository) List(_ context.Context) ([]domain.Job, error) {
	return r.filter(func(domain.Job) bool { return true }, 0), nil
}

func (r *JobRepository) ListPublished(_ context.Context, limit int) ([]domain.Job, error) {
	return r.filter(func(j domain.Job) bool { return j.Status == domain.JobStatusPublished }, limit), nil
}

func (r *JobRepository) UpdateStatus(_ context.Context, id string, status domain.JobStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.jobs[id]
	if !ok {
		return repository.ErrNotFound
	}
	entry.job.Status = status
	entry.job.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *JobRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.jobs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.jobs, id)
	return nil
}

func (r *JobRepository) filter(keep func(domain.Job) bool, limit int) []domain.Job {
	r.mu.RLock()
	entries := make([]jobEntry, 0, len(r.jobs))
	for _, entry := range r.jobs {
		if keep(entry.job) {
			entries = append(entries, *entry)
		}
	}
	r.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool { return entries[i].seq > entries[j].seq })
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	result := make([]domain.Job, 0, len(entries))
	for _, entry := range entries {
		result = append(result, cloneJob(entry.job))
	}
	return result
}

func cloneJob(job domain.Job) domain.Job {
	job.Details = maps.Clone(job.Details)
	return job
}
