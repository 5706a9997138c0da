package usecase

import (
	"context"
	"log/slog"

	"qutlas/internal/domain/entities"
	"qutlas/internal/usecase/interfaces"
	"qutlas/pkg/errs"
)

// jobMutation edits a working copy of a job. Returning changed=false skips
// the write; returning an error aborts it and leaves the stored job as is.
type jobMutation func(j *entities.Job) (changed bool, err error)

type mutationResult struct {
	job     entities.Job
	changed bool
}

// mutateJob is the read-modify-write cycle every job change goes through:
// load, apply fn on a clone, compare-and-set on the loaded version. A lost
// race reloads and reapplies fn.
func mutateJob(ctx context.Context, repo interfaces.IJobRepository, policy RetryPolicy, logger *slog.Logger, jobID string, fn jobMutation) (entities.Job, bool, error) {
	res, err := withRetry(ctx, policy, logger, "job.update", func(ctx context.Context) (mutationResult, error) {
		current, err := repo.GetByID(ctx, jobID)
		if err != nil {
			return mutationResult{}, err
		}
		if current.ID == "" {
			return mutationResult{}, errs.Markf(errs.ErrNotFound, "job %s not found", jobID)
		}

		working := current.Clone()
		changed, err := fn(&working)
		if err != nil {
			return mutationResult{}, err
		}
		if !changed {
			return mutationResult{job: current}, nil
		}

		saved, err := repo.Update(ctx, working, current.Version)
		if err != nil {
			return mutationResult{}, err
		}
		return mutationResult{job: saved, changed: true}, nil
	})
	if err != nil {
		return entities.Job{}, false, err
	}
	return res.job, res.changed, nil
}
