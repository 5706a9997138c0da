package interfaces

import (
	"context"
	"qutlas/internal/domain/entities"
)

// IJobRepository abstracts persistence for Job.
//
// The marketplace must be able to:
//   - create a job once at submission
//   - read a job by id (zero-value Job with nil error when missing)
//   - update a job with compare-and-set on Version (errs.ErrConflict on mismatch)
//   - list a customer's jobs
//
// Jobs are never deleted.
type IJobRepository interface {
	Create(ctx context.Context, job entities.Job) (entities.Job, error)
	GetByID(ctx context.Context, id string) (entities.Job, error)
	Update(ctx context.Context, job entities.Job, expectedVersion int64) (entities.Job, error)
	ListByCustomerID(ctx context.Context, customerID string) ([]entities.Job, error)
}
