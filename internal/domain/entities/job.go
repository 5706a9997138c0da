package entities

import (
	"time"

	"qutlas/pkg/errs"
)

// JobStatus is the lifecycle state of a job.
//
// Confirmed and InProgress never become the job status. They are timeline
// narration recorded while the job is manufacturing.
type JobStatus string

const (
	JobStatusDraft         JobStatus = "draft"
	JobStatusSubmitted     JobStatus = "submitted"
	JobStatusPaid          JobStatus = "paid"
	JobStatusManufacturing JobStatus = "manufacturing"
	JobStatusCompleted     JobStatus = "completed"
	JobStatusCancelled     JobStatus = "cancelled"

	JobStatusConfirmed  JobStatus = "confirmed"
	JobStatusInProgress JobStatus = "in_progress"
)

var jobTransitions = map[JobStatus][]JobStatus{
	JobStatusDraft:         {JobStatusSubmitted, JobStatusCancelled},
	JobStatusSubmitted:     {JobStatusPaid, JobStatusCancelled},
	JobStatusPaid:          {JobStatusManufacturing, JobStatusCancelled},
	JobStatusManufacturing: {JobStatusCompleted},
}

func (s JobStatus) IsTerminal() bool {
	return s == JobStatusCompleted || s == JobStatusCancelled
}

func (s JobStatus) IsNarration() bool {
	return s == JobStatusConfirmed || s == JobStatusInProgress
}

// CanTransition reports whether the state machine allows from -> to.
func CanTransition(from, to JobStatus) bool {
	for _, allowed := range jobTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// JobPaymentStatus is the payment state tracked on a job.
type JobPaymentStatus string

const (
	JobPaymentNone      JobPaymentStatus = ""
	JobPaymentPending   JobPaymentStatus = "pending"
	JobPaymentCompleted JobPaymentStatus = "completed"
	JobPaymentFailed    JobPaymentStatus = "failed"
)

type TimelineEntry struct {
	Status    JobStatus `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Note      string    `json:"note,omitempty"`
}

// PaymentEventRecord is one applied entry of the payment ledger, keyed by
// Reference.
type PaymentEventRecord struct {
	Reference     string             `json:"reference"`
	TransactionID string             `json:"transactionId,omitempty"`
	Status        PaymentEventStatus `json:"status"`
	Amount        float64            `json:"amount"`
	Currency      string             `json:"currency,omitempty"`
	AppliedAt     time.Time          `json:"appliedAt"`
}

type JobPayment struct {
	Status        JobPaymentStatus     `json:"status"`
	Reference     string               `json:"reference,omitempty"`
	TransactionID string               `json:"transactionId,omitempty"`
	Amount        float64              `json:"amount"`
	Currency      string               `json:"currency,omitempty"`
	VerifiedAt    *time.Time           `json:"verifiedAt,omitempty"`
	Events        []PaymentEventRecord `json:"events,omitempty"`
}

type Tracking struct {
	EstimatedCompletion *time.Time      `json:"estimatedCompletion,omitempty"`
	Carrier             string          `json:"carrier,omitempty"`
	TrackingNumber      string          `json:"trackingNumber,omitempty"`
	Timeline            []TimelineEntry `json:"timeline"`
}

// Job is the unit of work tracking a customer's order.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (customer_id-index): customer_id
//
// Version is bumped on every persisted write and used for compare-and-set.
// HubLoadReserved is the load added to the hub at submission, released when
// the job reaches a terminal status.
type Job struct {
	ID              string          `json:"id"`
	CustomerID      string          `json:"customerId"`
	Status          JobStatus       `json:"status"`
	Quote           *Quote          `json:"quote,omitempty"`
	HubID           string          `json:"hubId,omitempty"`
	HubLoadReserved float64         `json:"hubLoadReserved,omitempty"`
	Design          *DesignLocation `json:"design,omitempty"`
	Payment         JobPayment      `json:"payment"`
	Tracking        Tracking        `json:"tracking"`
	Version         int64           `json:"version"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// NewSubmittedJob builds a job in submitted status with its first timeline
// entry.
func NewSubmittedJob(id, customerID, hubID string, quote Quote, at time.Time) Job {
	at = at.UTC()
	q := quote
	return Job{
		ID:         id,
		CustomerID: customerID,
		Status:     JobStatusSubmitted,
		Quote:      &q,
		HubID:      hubID,
		Tracking: Tracking{
			Timeline: []TimelineEntry{{Status: JobStatusSubmitted, Timestamp: at, Note: "job submitted"}},
		},
		CreatedAt: at,
		UpdatedAt: at,
	}
}

// Transition moves the job along the state machine and appends a timeline
// entry.
func (j *Job) Transition(to JobStatus, note string, at time.Time) error {
	if !CanTransition(j.Status, to) {
		return errs.Markf(errs.ErrInvalidTransition, "job %s: %s -> %s not allowed", j.ID, j.Status, to)
	}
	j.Status = to
	j.appendTimeline(to, note, at)
	return nil
}

// Narrate records a manufacturing sub-state without changing the status.
func (j *Job) Narrate(status JobStatus, note string, at time.Time) error {
	if !status.IsNarration() {
		return errs.Markf(errs.ErrInvalidTransition, "job %s: %s is not a narration status", j.ID, status)
	}
	if j.Status != JobStatusManufacturing {
		return errs.Markf(errs.ErrInvalidTransition, "job %s: %s only while manufacturing, status is %s", j.ID, status, j.Status)
	}
	j.appendTimeline(status, note, at)
	return nil
}

// appendTimeline keeps the timeline ordered even if the caller's clock went
// backwards.
func (j *Job) appendTimeline(status JobStatus, note string, at time.Time) {
	at = at.UTC()
	if n := len(j.Tracking.Timeline); n > 0 {
		if last := j.Tracking.Timeline[n-1].Timestamp; at.Before(last) {
			at = last
		}
	}
	j.Tracking.Timeline = append(j.Tracking.Timeline, TimelineEntry{Status: status, Timestamp: at, Note: note})
	j.UpdatedAt = at
}

// Clone returns a deep copy so stored records are never aliased.
func (j Job) Clone() Job {
	out := j
	if j.Quote != nil {
		q := *j.Quote
		q.Warnings = append([]string(nil), j.Quote.Warnings...)
		out.Quote = &q
	}
	if j.Design != nil {
		d := *j.Design
		out.Design = &d
	}
	if j.Payment.VerifiedAt != nil {
		t := *j.Payment.VerifiedAt
		out.Payment.VerifiedAt = &t
	}
	out.Payment.Events = append([]PaymentEventRecord(nil), j.Payment.Events...)
	if j.Tracking.EstimatedCompletion != nil {
		t := *j.Tracking.EstimatedCompletion
		out.Tracking.EstimatedCompletion = &t
	}
	out.Tracking.Timeline = append([]TimelineEntry(nil), j.Tracking.Timeline...)
	return out
}
