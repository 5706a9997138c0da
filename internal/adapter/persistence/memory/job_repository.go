// Package memory holds in-process implementations of the persistence
// interfaces, used for local mode and tests. Every stored value is copied on
// the way in and out.
package memory

import (
	"context"
	"sort"
	"sync"

	"qutlas/internal/domain/entities"
	"qutlas/internal/usecase/interfaces"
	"qutlas/pkg/errs"
)

type JobRepository struct {
	mu   sync.RWMutex
	jobs map[string]entities.Job
}

var _ interfaces.IJobRepository = (*JobRepository)(nil)

func NewJobRepository() *JobRepository {
	return &JobRepository{jobs: make(map[string]entities.Job)}
}

func (r *JobRepository) Create(ctx context.Context, job entities.Job) (entities.Job, error) {
	if err := ctx.Err(); err != nil {
		return entities.Job{}, err
	}
	if job.ID == "" {
		return entities.Job{}, errs.Markf(errs.ErrInvalidInput, "job id is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.jobs[job.ID]; exists {
		return entities.Job{}, errs.Markf(errs.ErrConflict, "job %s already exists", job.ID)
	}
	job.Version = 1
	r.jobs[job.ID] = job.Clone()
	return job.Clone(), nil
}

func (r *JobRepository) GetByID(ctx context.Context, id string) (entities.Job, error) {
	if err := ctx.Err(); err != nil {
		return entities.Job{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	job, ok := r.jobs[id]
	if !ok {
		return entities.Job{}, nil
	}
	return job.Clone(), nil
}

func (r *JobRepository) Update(ctx context.Context, job entities.Job, expectedVersion int64) (entities.Job, error) {
	if err := ctx.Err(); err != nil {
		return entities.Job{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.jobs[job.ID]
	if !ok {
		return entities.Job{}, errs.Markf(errs.ErrNotFound, "job %s not found", job.ID)
	}
	if stored.Version != expectedVersion {
		return entities.Job{}, errs.Markf(errs.ErrConflict, "job %s at version %d, expected %d", job.ID, stored.Version, expectedVersion)
	}
	job.Version = expectedVersion + 1
	r.jobs[job.ID] = job.Clone()
	return job.Clone(), nil
}

func (r *JobRepository) ListByCustomerID(ctx context.Context, customerID string) ([]entities.Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entities.Job, 0)
	for _, j := range r.jobs {
		if j.CustomerID == customerID {
			out = append(out, j.Clone())
		}
	}
	sort.Slice(out, func(i, k int) bool {
		if !out[i].CreatedAt.Equal(out[k].CreatedAt) {
			return out[i].CreatedAt.Before(out[k].CreatedAt)
		}
		return out[i].ID < out[k].ID
	})
	return out, nil
}
