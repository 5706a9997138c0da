package interfaces

import (
	"context"
	"qutlas/internal/domain/entities"
)

// IPaymentAttemptRepository maps gateway references to jobs.

type IPaymentAttemptRepository interface {
	Create(ctx context.Context, a entities.PaymentAttempt) (entities.PaymentAttempt, error)
	GetByReference(ctx context.Context, reference string) (entities.PaymentAttempt, error)
	ListByJobID(ctx context.Context, jobID string) ([]entities.PaymentAttempt, error)
}
