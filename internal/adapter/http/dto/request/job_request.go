package request

import (
	"strings"
	"time"

	"qutlas/internal/domain/entities"
	"qutlas/internal/usecase"
)

type SubmitJobRequest struct {
	PartRequest
	HubID string `json:"hubId" binding:"required"`
}

// UpdateJobRequest is the customer job patch. Any other field is rejected
// when decoding.
type UpdateJobRequest struct {
	Status *string `json:"status"`
	Note   *string `json:"note"`
}

func (r UpdateJobRequest) ToPatch() usecase.JobPatch {
	return usecase.JobPatch{Status: normalizeStatus(r.Status), Note: r.Note}
}

// JobProgressRequest is the hub job patch: narration, completion and
// shipment tracking.
type JobProgressRequest struct {
	Status              *string    `json:"status"`
	Note                *string    `json:"note"`
	EstimatedCompletion *time.Time `json:"estimatedCompletion"`
	Carrier             *string    `json:"carrier"`
	TrackingNumber      *string    `json:"trackingNumber"`
}

func (r JobProgressRequest) ToPatch() usecase.JobPatch {
	return usecase.JobPatch{
		Status:              normalizeStatus(r.Status),
		Note:                r.Note,
		EstimatedCompletion: r.EstimatedCompletion,
		Carrier:             r.Carrier,
		TrackingNumber:      r.TrackingNumber,
	}
}

func normalizeStatus(raw *string) *entities.JobStatus {
	if raw == nil {
		return nil
	}
	s := entities.JobStatus(strings.ToLower(strings.TrimSpace(*raw)))
	return &s
}

type CancelJobRequest struct {
	Reason string `json:"reason"`
}

type InitializePaymentRequest struct {
	PayerEmail string `json:"payerEmail" binding:"omitempty,email"`
}
