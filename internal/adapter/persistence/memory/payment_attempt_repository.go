package memory

import (
	"context"
	"sort"
	"sync"

	"qutlas/internal/domain/entities"
	"qutlas/internal/usecase/interfaces"
	"qutlas/pkg/errs"
)

type PaymentAttemptRepository struct {
	mu       sync.RWMutex
	attempts map[string]entities.PaymentAttempt
}

var _ interfaces.IPaymentAttemptRepository = (*PaymentAttemptRepository)(nil)

func NewPaymentAttemptRepository() *PaymentAttemptRepository {
	return &PaymentAttemptRepository{attempts: make(map[string]entities.PaymentAttempt)}
}

func (r *PaymentAttemptRepository) Create(ctx context.Context, a entities.PaymentAttempt) (entities.PaymentAttempt, error) {
	if err := ctx.Err(); err != nil {
		return entities.PaymentAttempt{}, err
	}
	if a.Reference == "" || a.JobID == "" {
		return entities.PaymentAttempt{}, errs.Markf(errs.ErrInvalidInput, "payment attempt needs reference and job id")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.attempts[a.Reference]; exists {
		return entities.PaymentAttempt{}, errs.Markf(errs.ErrConflict, "payment reference %s already exists", a.Reference)
	}
	r.attempts[a.Reference] = a
	return a, nil
}

func (r *PaymentAttemptRepository) GetByReference(ctx context.Context, reference string) (entities.PaymentAttempt, error) {
	if err := ctx.Err(); err != nil {
		return entities.PaymentAttempt{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.attempts[reference], nil
}

func (r *PaymentAttemptRepository) ListByJobID(ctx context.Context, jobID string) ([]entities.PaymentAttempt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entities.PaymentAttempt, 0)
	for _, a := range r.attempts {
		if a.JobID == jobID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, k int) bool { return out[i].CreatedAt.Before(out[k].CreatedAt) })
	return out, nil
}
