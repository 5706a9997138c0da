package entities

import (
	"strings"
	"time"

	"qutlas/pkg/errs"
)

// PaymentEventStatus is the status reported by the payment gateway.
type PaymentEventStatus string

const (
	PaymentEventSuccessful PaymentEventStatus = "successful"
	PaymentEventFailed     PaymentEventStatus = "failed"
	PaymentEventPending    PaymentEventStatus = "pending"
)

func (s PaymentEventStatus) IsValid() bool {
	switch s {
	case PaymentEventSuccessful, PaymentEventFailed, PaymentEventPending:
		return true
	}
	return false
}

// IsTerminal is true for statuses that can no longer change for a reference.
func (s PaymentEventStatus) IsTerminal() bool {
	return s == PaymentEventSuccessful || s == PaymentEventFailed
}

// PaymentEvent is an inbound, possibly redelivered, gateway notification.
// Reference is the idempotency key.
type PaymentEvent struct {
	Reference        string
	TransactionID    string
	Status           PaymentEventStatus
	Amount           float64
	Currency         string
	GatewayTimestamp time.Time
}

func (e PaymentEvent) Validate() error {
	if strings.TrimSpace(e.Reference) == "" {
		return errs.Markf(errs.ErrInvalidInput, "payment event without reference")
	}
	if !e.Status.IsValid() {
		return errs.Markf(errs.ErrInvalidInput, "payment event with unknown status %q", e.Status)
	}
	if e.Amount < 0 {
		return errs.Markf(errs.ErrInvalidInput, "payment event with negative amount")
	}
	return nil
}

// PaymentAttempt links a gateway reference to the job it pays for.
//
// Storage model (DynamoDB):
//   - PK: reference
//   - GSI1 (job_id-index): job_id
type PaymentAttempt struct {
	Reference    string    `json:"reference"`
	JobID        string    `json:"jobId"`
	CustomerID   string    `json:"customerId"`
	Amount       float64   `json:"amount"`
	Currency     string    `json:"currency"`
	GatewayID    string    `json:"gatewayId,omitempty"`
	RedirectLink string    `json:"redirectLink,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}
