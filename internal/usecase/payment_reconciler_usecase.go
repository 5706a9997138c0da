package usecase

import (
	"context"
	"log/slog"
	"strings"

	"qutlas/internal/domain/entities"
	"qutlas/internal/usecase/interfaces"
	"qutlas/pkg/clock"
	"qutlas/pkg/errs"

	"github.com/google/uuid"
)

// PaymentInitialization is what a customer needs to go pay for a job.
type PaymentInitialization struct {
	Reference    string
	RedirectLink string
	Amount       float64
	Currency     string
	Job          entities.Job
}

// IPaymentReconcilerUseCase turns gateway payment events into job state.
//
// Events are deduplicated by reference through the ledger kept on the job,
// so redelivery and concurrent delivery of the same event apply once.
type IPaymentReconcilerUseCase interface {
	InitializePayment(ctx context.Context, jobID, customerID, payerEmail string) (PaymentInitialization, error)
	ApplyPaymentEvent(ctx context.Context, ev entities.PaymentEvent) (entities.Job, error)
	VerifyByReference(ctx context.Context, reference string) (entities.Job, error)
	VerifyByTransactionID(ctx context.Context, transactionID string) (entities.Job, error)
}

type PaymentReconcilerUseCase struct {
	jobs     interfaces.IJobRepository
	attempts interfaces.IPaymentAttemptRepository
	gateway  interfaces.IPaymentGateway
	clock    clock.Clock
	retry    RetryPolicy
	newRef   func() string
	logger   *slog.Logger
}

var _ IPaymentReconcilerUseCase = (*PaymentReconcilerUseCase)(nil)

func NewPaymentReconcilerUseCase(jobs interfaces.IJobRepository, attempts interfaces.IPaymentAttemptRepository, gateway interfaces.IPaymentGateway, c clock.Clock, retry RetryPolicy, logger *slog.Logger) *PaymentReconcilerUseCase {
	if c == nil {
		c = clock.NewRealClock()
	}
	return &PaymentReconcilerUseCase{
		jobs:     jobs,
		attempts: attempts,
		gateway:  gateway,
		clock:    c,
		retry:    retry,
		newRef:   uuid.NewString,
		logger:   loggerOrDefault(logger),
	}
}

func (u *PaymentReconcilerUseCase) InitializePayment(ctx context.Context, jobID, customerID, payerEmail string) (PaymentInitialization, error) {
	u.logger.Info("[payment][usecase] initialize start", "job_id", jobID, "customer_id", customerID)
	if u.gateway == nil {
		return PaymentInitialization{}, errs.Markf(errs.ErrDataUnavailable, "payment gateway not configured")
	}

	job, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		return PaymentInitialization{}, err
	}
	if job.ID == "" || job.CustomerID != customerID {
		return PaymentInitialization{}, errs.Markf(errs.ErrNotFound, "job %s not found", jobID)
	}
	if err := payable(job); err != nil {
		return PaymentInitialization{}, err
	}

	ref := u.newRef()
	started, err := u.gateway.InitializeTransaction(ctx, interfaces.PaymentInitRequest{
		Reference:  ref,
		JobID:      job.ID,
		Title:      "Qutlas job " + job.ID,
		Amount:     job.Quote.TotalPrice,
		Currency:   job.Quote.Currency,
		PayerEmail: strings.TrimSpace(payerEmail),
	})
	if err != nil {
		u.logger.Error("[payment][usecase] gateway initialize failed", "job_id", job.ID, "reference", ref, "error", err.Error())
		return PaymentInitialization{}, err
	}

	if _, err := u.attempts.Create(ctx, entities.PaymentAttempt{
		Reference:    ref,
		JobID:        job.ID,
		CustomerID:   job.CustomerID,
		Amount:       job.Quote.TotalPrice,
		Currency:     job.Quote.Currency,
		GatewayID:    started.GatewayID,
		RedirectLink: started.RedirectLink,
		CreatedAt:    u.clock.Now().UTC(),
	}); err != nil {
		u.logger.Error("[payment][usecase] attempt persist failed", "job_id", job.ID, "reference", ref, "error", err.Error())
		return PaymentInitialization{}, err
	}

	updated, _, err := mutateJob(ctx, u.jobs, u.retry, u.logger, job.ID, func(j *entities.Job) (bool, error) {
		if err := payable(*j); err != nil {
			return false, err
		}
		j.Payment.Status = entities.JobPaymentPending
		j.Payment.Reference = ref
		j.Payment.TransactionID = ""
		j.Payment.Amount = j.Quote.TotalPrice
		j.Payment.Currency = j.Quote.Currency
		j.UpdatedAt = u.clock.Now().UTC()
		return true, nil
	})
	if err != nil {
		return PaymentInitialization{}, err
	}

	u.logger.Info("[payment][usecase] initialized", "job_id", job.ID, "reference", ref, "gateway_id", started.GatewayID)
	return PaymentInitialization{
		Reference:    ref,
		RedirectLink: started.RedirectLink,
		Amount:       updated.Quote.TotalPrice,
		Currency:     updated.Quote.Currency,
		Job:          updated,
	}, nil
}

func payable(j entities.Job) error {
	if j.Status != entities.JobStatusSubmitted {
		return errs.Markf(errs.ErrInvalidTransition, "job %s is %s; only submitted jobs can be paid", j.ID, j.Status)
	}
	if j.Quote == nil {
		return errs.Markf(errs.ErrInvalidInput, "job %s has no quote", j.ID)
	}
	if j.Payment.Status == entities.JobPaymentCompleted {
		return errs.Markf(errs.ErrInvalidTransition, "job %s is already paid", j.ID)
	}
	return nil
}

func (u *PaymentReconcilerUseCase) ApplyPaymentEvent(ctx context.Context, ev entities.PaymentEvent) (entities.Job, error) {
	ev.Reference = strings.TrimSpace(ev.Reference)
	if err := ev.Validate(); err != nil {
		return entities.Job{}, err
	}
	log := u.logger.With("reference", ev.Reference, "transaction_id", ev.TransactionID, "status", string(ev.Status))
	log.Info("[payment][usecase] event received", "amount", ev.Amount, "currency", ev.Currency)

	attempt, err := u.attempts.GetByReference(ctx, ev.Reference)
	if err != nil {
		log.Error("[payment][usecase] attempt lookup failed", "error", err.Error())
		return entities.Job{}, err
	}
	if attempt.Reference == "" {
		log.Warn("[payment][usecase] unknown reference")
		return entities.Job{}, errs.Markf(errs.ErrNotFound, "no payment attempt for reference %s", ev.Reference)
	}

	job, changed, err := mutateJob(ctx, u.jobs, u.retry, u.logger, attempt.JobID, func(j *entities.Job) (bool, error) {
		return j.ApplyPayment(ev, u.clock.Now())
	})
	if err != nil {
		switch {
		case errs.Is(err, errs.ErrPaymentMismatch), errs.Is(err, errs.ErrPaymentConflict), errs.Is(err, errs.ErrInvalidTransition):
			log.Error("[payment][usecase] event needs operator attention", "job_id", attempt.JobID, "error", err.Error())
		default:
			log.Error("[payment][usecase] apply failed", "job_id", attempt.JobID, "error", err.Error())
		}
		return entities.Job{}, err
	}
	if !changed {
		log.Info("[payment][usecase] duplicate event ignored", "job_id", job.ID)
		return job, nil
	}

	log.Info("[payment][usecase] event applied", "job_id", job.ID, "job_status", string(job.Status), "payment_status", string(job.Payment.Status))
	return job, nil
}

func (u *PaymentReconcilerUseCase) VerifyByReference(ctx context.Context, reference string) (entities.Job, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return entities.Job{}, errs.Markf(errs.ErrInvalidInput, "reference is required")
	}
	if u.gateway == nil {
		return entities.Job{}, errs.Markf(errs.ErrDataUnavailable, "payment gateway not configured")
	}
	tx, err := u.gateway.VerifyByReference(ctx, reference)
	if err != nil {
		u.logger.Error("[payment][usecase] gateway verify failed", "reference", reference, "error", err.Error())
		return entities.Job{}, err
	}
	if tx.Reference == "" {
		tx.Reference = reference
	}
	return u.ApplyPaymentEvent(ctx, eventFromTransaction(tx))
}

func (u *PaymentReconcilerUseCase) VerifyByTransactionID(ctx context.Context, transactionID string) (entities.Job, error) {
	transactionID = strings.TrimSpace(transactionID)
	if transactionID == "" {
		return entities.Job{}, errs.Markf(errs.ErrInvalidInput, "transaction id is required")
	}
	if u.gateway == nil {
		return entities.Job{}, errs.Markf(errs.ErrDataUnavailable, "payment gateway not configured")
	}
	tx, err := u.gateway.VerifyByID(ctx, transactionID)
	if err != nil {
		u.logger.Error("[payment][usecase] gateway verify failed", "transaction_id", transactionID, "error", err.Error())
		return entities.Job{}, err
	}
	if strings.TrimSpace(tx.Reference) == "" {
		return entities.Job{}, errs.Markf(errs.ErrInvalidInput, "transaction %s carries no external reference", transactionID)
	}
	return u.ApplyPaymentEvent(ctx, eventFromTransaction(tx))
}

func eventFromTransaction(tx interfaces.GatewayTransaction) entities.PaymentEvent {
	return entities.PaymentEvent{
		Reference:        tx.Reference,
		TransactionID:    tx.TransactionID,
		Status:           tx.Status,
		Amount:           tx.Amount,
		Currency:         tx.Currency,
		GatewayTimestamp: tx.Timestamp,
	}
}
