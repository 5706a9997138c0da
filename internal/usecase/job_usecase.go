package usecase

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"time"

	"qutlas/internal/domain/entities"
	"qutlas/internal/domain/matching"
	"qutlas/internal/usecase/interfaces"
	"qutlas/pkg/clock"
	"qutlas/pkg/errs"

	"github.com/google/uuid"
)

// DefaultHubLoadPerJob is the load a submitted job reserves on its hub.
const DefaultHubLoadPerJob = 0.05

// JobPatch lists the mutable fields of a job. Nil fields are left alone.
// Customers may only cancel; the assigned hub reports progress and tracking.
type JobPatch struct {
	Status              *entities.JobStatus
	Note                *string
	EstimatedCompletion *time.Time
	Carrier             *string
	TrackingNumber      *string
}

func (p JobPatch) isEmpty() bool {
	return p.Status == nil && p.Note == nil && !p.hasTracking()
}

func (p JobPatch) hasTracking() bool {
	return p.EstimatedCompletion != nil || p.Carrier != nil || p.TrackingNumber != nil
}

// IJobUseCase orchestrates submission and the manual part of the job
// lifecycle. Payment driven transitions live in the payment reconciler.
type IJobUseCase interface {
	SubmitJob(ctx context.Context, customerID string, req entities.PartRequest, hubID string) (entities.Job, error)
	GetJob(ctx context.Context, jobID, customerID string) (entities.Job, error)
	ListJobs(ctx context.Context, customerID string) ([]entities.Job, error)
	UpdateJob(ctx context.Context, jobID, customerID string, patch JobPatch) (entities.Job, error)
	CancelJob(ctx context.Context, jobID, customerID, reason string) (entities.Job, error)
	AcknowledgeJob(ctx context.Context, jobID, hubID string) (entities.Job, error)
	ReportProgress(ctx context.Context, jobID, hubID string, patch JobPatch) (entities.Job, error)
}

type JobUseCase struct {
	repo       interfaces.IJobRepository
	quotes     IQuoteUseCase
	hubs       IHubUseCase
	designs    interfaces.IDesignStorage
	clock      clock.Clock
	retry      RetryPolicy
	loadPerJob float64
	newID      func() string
	logger     *slog.Logger
}

var _ IJobUseCase = (*JobUseCase)(nil)

type JobUseCaseOption func(*JobUseCase)

func WithDesignStorage(s interfaces.IDesignStorage) JobUseCaseOption {
	return func(u *JobUseCase) { u.designs = s }
}

func WithHubLoadPerJob(load float64) JobUseCaseOption {
	return func(u *JobUseCase) {
		if load >= 0 && load <= 1 {
			u.loadPerJob = load
		}
	}
}

func WithJobRetryPolicy(p RetryPolicy) JobUseCaseOption {
	return func(u *JobUseCase) { u.retry = p }
}

func WithJobIDGenerator(gen func() string) JobUseCaseOption {
	return func(u *JobUseCase) {
		if gen != nil {
			u.newID = gen
		}
	}
}

func NewJobUseCase(repo interfaces.IJobRepository, quotes IQuoteUseCase, hubs IHubUseCase, c clock.Clock, logger *slog.Logger, opts ...JobUseCaseOption) *JobUseCase {
	if c == nil {
		c = clock.NewRealClock()
	}
	u := &JobUseCase{
		repo:       repo,
		quotes:     quotes,
		hubs:       hubs,
		clock:      c,
		retry:      DefaultRetryPolicy(),
		loadPerJob: DefaultHubLoadPerJob,
		newID:      uuid.NewString,
		logger:     loggerOrDefault(logger),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func (u *JobUseCase) SubmitJob(ctx context.Context, customerID string, req entities.PartRequest, hubID string) (entities.Job, error) {
	customerID = strings.TrimSpace(customerID)
	hubID = strings.TrimSpace(hubID)
	u.logger.Info("[job][usecase] submit start", "customer_id", customerID, "template_id", req.TemplateID, "hub_id", hubID, "quote_id", req.QuoteID)

	if customerID == "" {
		return entities.Job{}, errs.Markf(errs.ErrInvalidInput, "customer id is required")
	}
	if hubID == "" {
		return entities.Job{}, errs.Markf(errs.ErrInvalidInput, "hubId is required")
	}
	if req.Quantity < 1 {
		return entities.Job{}, errs.Markf(errs.ErrInvalidInput, "quantity must be >= 1, got %d", req.Quantity)
	}

	quote, err := u.quotes.QuoteFor(ctx, req)
	if err != nil {
		u.logger.Info("[job][usecase] quote rejected", "customer_id", customerID, "error", err.Error())
		return entities.Job{}, err
	}

	matches, err := u.hubs.Rank(ctx, matching.Requirements{
		Process:          quote.Process,
		Material:         quote.Material,
		Quantity:         quote.Quantity,
		DeliveryLocation: req.DeliveryLocation,
	})
	if err != nil {
		return entities.Job{}, err
	}
	if !chosenHubFeasible(matches, hubID) {
		u.logger.Info("[job][usecase] hub incompatible", "hub_id", hubID, "process", quote.Process, "material", quote.Material)
		return entities.Job{}, errs.Markf(errs.ErrHubIncompatible, "hub %s cannot produce %s in %s", hubID, quote.Process, quote.Material)
	}

	if req.Design != nil {
		if err := u.verifyDesign(ctx, *req.Design); err != nil {
			return entities.Job{}, err
		}
	}

	if err := ctx.Err(); err != nil {
		return entities.Job{}, err
	}

	job := entities.NewSubmittedJob(u.newID(), customerID, hubID, quote, u.clock.Now())
	if req.Design != nil {
		d := *req.Design
		job.Design = &d
	}
	job.HubLoadReserved = u.loadPerJob

	created, err := u.repo.Create(ctx, job)
	if err != nil {
		u.logger.Error("[job][usecase] create failed", "job_id", job.ID, "error", err.Error())
		return entities.Job{}, err
	}

	if u.loadPerJob > 0 {
		_, applied, err := u.hubs.AdjustLoad(ctx, hubID, u.loadPerJob)
		if err != nil {
			u.logger.Error("[job][usecase] hub load reservation failed", "job_id", created.ID, "hub_id", hubID, "error", err.Error())
			applied = 0
		}
		if math.Abs(applied-created.HubLoadReserved) > 1e-9 {
			created = u.setReservation(ctx, created, applied)
		}
	}

	u.logger.Info("[job][usecase] submitted", "job_id", created.ID, "hub_id", hubID, "total", quote.TotalPrice, "load_reserved", created.HubLoadReserved)
	return created, nil
}

// setReservation records the load the hub actually took, which is less
// than requested near full capacity and zero when the hub could not be
// updated. A terminal transition releases exactly this amount.
func (u *JobUseCase) setReservation(ctx context.Context, job entities.Job, amount float64) entities.Job {
	updated, _, err := mutateJob(context.WithoutCancel(ctx), u.repo, u.retry, u.logger, job.ID, func(j *entities.Job) (bool, error) {
		if j.Status.IsTerminal() || j.HubLoadReserved == amount {
			return false, nil
		}
		j.HubLoadReserved = amount
		return true, nil
	})
	if err != nil {
		u.logger.Error("[job][usecase] recording hub reservation failed", "job_id", job.ID, "amount", amount, "error", err.Error())
		return job
	}
	return updated
}

func (u *JobUseCase) verifyDesign(ctx context.Context, loc entities.DesignLocation) error {
	if _, err := entities.NewDesignLocation(loc.Bucket, loc.Key); err != nil {
		return err
	}
	if u.designs == nil {
		return nil
	}
	ok, err := u.designs.Exists(ctx, loc)
	if err != nil {
		u.logger.Error("[job][usecase] design lookup failed", "design", loc.String(), "error", err.Error())
		return errs.Mark(errs.Wrapf(err, "check design %s", loc), errs.ErrDataUnavailable)
	}
	if !ok {
		return errs.Markf(errs.ErrInvalidInput, "design %s does not exist", loc)
	}
	return nil
}

func chosenHubFeasible(matches []entities.HubMatch, hubID string) bool {
	for _, m := range matches {
		if m.HubID == hubID {
			return m.Feasible
		}
	}
	return false
}

func (u *JobUseCase) GetJob(ctx context.Context, jobID, customerID string) (entities.Job, error) {
	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		return entities.Job{}, errs.Markf(errs.ErrInvalidInput, "job id is required")
	}
	job, err := u.repo.GetByID(ctx, jobID)
	if err != nil {
		return entities.Job{}, err
	}
	if job.ID == "" || job.CustomerID != customerID {
		return entities.Job{}, errs.Markf(errs.ErrNotFound, "job %s not found", jobID)
	}
	return job, nil
}

func (u *JobUseCase) ListJobs(ctx context.Context, customerID string) ([]entities.Job, error) {
	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		return nil, errs.Markf(errs.ErrInvalidInput, "customer id is required")
	}
	return u.repo.ListByCustomerID(ctx, customerID)
}

// UpdateJob is the customer side of the patch surface: cancellation with an
// optional note. Progress and tracking belong to the hub, see ReportProgress.
func (u *JobUseCase) UpdateJob(ctx context.Context, jobID, customerID string, patch JobPatch) (entities.Job, error) {
	if err := validateCustomerPatch(patch); err != nil {
		return entities.Job{}, err
	}
	u.logger.Info("[job][usecase] update start", "job_id", jobID, "customer_id", customerID)
	return u.applyPatch(ctx, jobID, patch, func(j *entities.Job) error {
		if j.CustomerID != customerID {
			return errs.Markf(errs.ErrNotFound, "job %s not found", jobID)
		}
		return nil
	})
}

// ReportProgress is the hub side of the patch surface: narration,
// completion and shipment tracking on a job assigned to hubID.
func (u *JobUseCase) ReportProgress(ctx context.Context, jobID, hubID string, patch JobPatch) (entities.Job, error) {
	hubID = strings.TrimSpace(hubID)
	if hubID == "" {
		return entities.Job{}, errs.Markf(errs.ErrInvalidInput, "hubId is required")
	}
	if err := validateHubPatch(patch); err != nil {
		return entities.Job{}, err
	}
	u.logger.Info("[job][usecase] progress start", "job_id", jobID, "hub_id", hubID)
	return u.applyPatch(ctx, jobID, patch, func(j *entities.Job) error {
		if j.HubID != hubID {
			return errs.Markf(errs.ErrInvalidInput, "job %s is not assigned to hub %s", j.ID, hubID)
		}
		return nil
	})
}

func (u *JobUseCase) applyPatch(ctx context.Context, jobID string, patch JobPatch, authorize func(*entities.Job) error) (entities.Job, error) {
	var release float64
	job, _, err := mutateJob(ctx, u.repo, u.retry, u.logger, jobID, func(j *entities.Job) (bool, error) {
		release = 0
		if err := authorize(j); err != nil {
			return false, err
		}
		now := u.clock.Now()
		note := ""
		if patch.Note != nil {
			note = strings.TrimSpace(*patch.Note)
		}

		if patch.Status != nil {
			to := *patch.Status
			if to.IsNarration() {
				if err := j.Narrate(to, note, now); err != nil {
					return false, err
				}
			} else {
				if err := j.Transition(to, note, now); err != nil {
					return false, err
				}
				if to.IsTerminal() {
					release = j.HubLoadReserved
					j.HubLoadReserved = 0
				}
			}
		}
		if patch.EstimatedCompletion != nil {
			ec := patch.EstimatedCompletion.UTC()
			j.Tracking.EstimatedCompletion = &ec
		}
		if patch.Carrier != nil {
			j.Tracking.Carrier = strings.TrimSpace(*patch.Carrier)
		}
		if patch.TrackingNumber != nil {
			j.Tracking.TrackingNumber = strings.TrimSpace(*patch.TrackingNumber)
		}
		if j.UpdatedAt.Before(now) {
			j.UpdatedAt = now.UTC()
		}
		return true, nil
	})
	if err != nil {
		u.logger.Info("[job][usecase] update rejected", "job_id", jobID, "error", err.Error())
		return entities.Job{}, err
	}

	u.releaseLoad(ctx, job, release)
	u.logger.Info("[job][usecase] updated", "job_id", job.ID, "status", job.Status)
	return job, nil
}

func validatePatchShape(p JobPatch) error {
	if p.isEmpty() {
		return errs.Markf(errs.ErrInvalidInput, "patch has no fields")
	}
	if p.Status == nil && p.Note != nil {
		return errs.Markf(errs.ErrInvalidInput, "note requires a status")
	}
	if p.Status == nil {
		return nil
	}
	switch *p.Status {
	case entities.JobStatusCancelled, entities.JobStatusCompleted, entities.JobStatusConfirmed, entities.JobStatusInProgress:
		return nil
	case entities.JobStatusDraft, entities.JobStatusSubmitted, entities.JobStatusPaid, entities.JobStatusManufacturing:
		return errs.Markf(errs.ErrInvalidTransition, "status %s cannot be set directly", *p.Status)
	default:
		return errs.Markf(errs.ErrInvalidInput, "unknown status %q", *p.Status)
	}
}

func validateCustomerPatch(p JobPatch) error {
	if err := validatePatchShape(p); err != nil {
		return err
	}
	if p.hasTracking() {
		return errs.Markf(errs.ErrInvalidInput, "tracking fields are reported by the hub")
	}
	if p.Status != nil && *p.Status != entities.JobStatusCancelled {
		return errs.Markf(errs.ErrInvalidTransition, "status %s is reported by the hub", *p.Status)
	}
	return nil
}

func validateHubPatch(p JobPatch) error {
	if err := validatePatchShape(p); err != nil {
		return err
	}
	if p.Status != nil && *p.Status == entities.JobStatusCancelled {
		return errs.Markf(errs.ErrInvalidTransition, "only the customer can cancel a job")
	}
	return nil
}

func (u *JobUseCase) CancelJob(ctx context.Context, jobID, customerID, reason string) (entities.Job, error) {
	status := entities.JobStatusCancelled
	patch := JobPatch{Status: &status}
	if reason = strings.TrimSpace(reason); reason != "" {
		patch.Note = &reason
	}
	return u.UpdateJob(ctx, jobID, customerID, patch)
}

// AcknowledgeJob is the hub accepting a paid job into production.
func (u *JobUseCase) AcknowledgeJob(ctx context.Context, jobID, hubID string) (entities.Job, error) {
	hubID = strings.TrimSpace(hubID)
	if hubID == "" {
		return entities.Job{}, errs.Markf(errs.ErrInvalidInput, "hubId is required")
	}

	job, _, err := mutateJob(ctx, u.repo, u.retry, u.logger, jobID, func(j *entities.Job) (bool, error) {
		if j.HubID != hubID {
			return false, errs.Markf(errs.ErrInvalidInput, "job %s is not assigned to hub %s", j.ID, hubID)
		}
		now := u.clock.Now()
		if err := j.Transition(entities.JobStatusManufacturing, "acknowledged by hub "+hubID, now); err != nil {
			return false, err
		}
		if j.Quote != nil {
			ec := now.UTC().Add(time.Duration(j.Quote.LeadTimeDays) * 24 * time.Hour)
			j.Tracking.EstimatedCompletion = &ec
		}
		return true, nil
	})
	if err != nil {
		u.logger.Info("[job][usecase] acknowledge rejected", "job_id", jobID, "hub_id", hubID, "error", err.Error())
		return entities.Job{}, err
	}
	u.logger.Info("[job][usecase] acknowledged", "job_id", job.ID, "hub_id", hubID)
	return job, nil
}

func (u *JobUseCase) releaseLoad(ctx context.Context, job entities.Job, amount float64) {
	if amount <= 0 || job.HubID == "" {
		return
	}
	if _, _, err := u.hubs.AdjustLoad(context.WithoutCancel(ctx), job.HubID, -amount); err != nil {
		u.logger.Error("[job][usecase] hub load release failed", "job_id", job.ID, "hub_id", job.HubID, "amount", amount, "error", err.Error())
	}
}
