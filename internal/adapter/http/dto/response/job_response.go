package response

import (
	"time"

	"qutlas/internal/domain/entities"
	"qutlas/internal/usecase"
)

type DesignResponse struct {
	Bucket string `json:"bucket"`
	Key    string `json:"key"`
}

// PaymentResponse hides the per-reference ledger kept on the job.
type PaymentResponse struct {
	Status        string     `json:"status"`
	Reference     string     `json:"reference,omitempty"`
	TransactionID string     `json:"transactionId,omitempty"`
	Amount        float64    `json:"amount"`
	Currency      string     `json:"currency,omitempty"`
	VerifiedAt    *time.Time `json:"verifiedAt,omitempty"`
}

type TimelineEntryResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Note      string    `json:"note,omitempty"`
}

type TrackingResponse struct {
	EstimatedCompletion *time.Time              `json:"estimatedCompletion,omitempty"`
	Carrier             string                  `json:"carrier,omitempty"`
	TrackingNumber      string                  `json:"trackingNumber,omitempty"`
	Timeline            []TimelineEntryResponse `json:"timeline"`
}

type JobResponse struct {
	ID         string           `json:"id"`
	CustomerID string           `json:"customerId"`
	Status     string           `json:"status"`
	Quote      *QuoteResponse   `json:"quote,omitempty"`
	HubID      string           `json:"hubId,omitempty"`
	Design     *DesignResponse  `json:"design,omitempty"`
	Payment    PaymentResponse  `json:"payment"`
	Tracking   TrackingResponse `json:"tracking"`
	CreatedAt  time.Time        `json:"createdAt"`
	UpdatedAt  time.Time        `json:"updatedAt"`
}

type PaymentInitResponse struct {
	Reference    string      `json:"reference"`
	RedirectLink string      `json:"redirectLink"`
	Amount       float64     `json:"amount"`
	Currency     string      `json:"currency"`
	Job          JobResponse `json:"job"`
}

func FromJob(j entities.Job) JobResponse {
	out := JobResponse{
		ID:         j.ID,
		CustomerID: j.CustomerID,
		Status:     string(j.Status),
		HubID:      j.HubID,
		Payment: PaymentResponse{
			Status:        paymentStatus(j.Payment.Status),
			Reference:     j.Payment.Reference,
			TransactionID: j.Payment.TransactionID,
			Amount:        j.Payment.Amount,
			Currency:      j.Payment.Currency,
			VerifiedAt:    j.Payment.VerifiedAt,
		},
		Tracking: TrackingResponse{
			EstimatedCompletion: j.Tracking.EstimatedCompletion,
			Carrier:             j.Tracking.Carrier,
			TrackingNumber:      j.Tracking.TrackingNumber,
			Timeline:            make([]TimelineEntryResponse, 0, len(j.Tracking.Timeline)),
		},
		CreatedAt: j.CreatedAt,
		UpdatedAt: j.UpdatedAt,
	}
	if j.Quote != nil {
		q := FromQuote(*j.Quote)
		out.Quote = &q
	}
	if j.Design != nil {
		out.Design = &DesignResponse{Bucket: j.Design.Bucket, Key: j.Design.Key}
	}
	for _, e := range j.Tracking.Timeline {
		out.Tracking.Timeline = append(out.Tracking.Timeline, TimelineEntryResponse{
			Status:    string(e.Status),
			Timestamp: e.Timestamp,
			Note:      e.Note,
		})
	}
	return out
}

func FromJobs(jobs []entities.Job) []JobResponse {
	out := make([]JobResponse, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, FromJob(j))
	}
	return out
}

func FromPaymentInitialization(p usecase.PaymentInitialization) PaymentInitResponse {
	return PaymentInitResponse{
		Reference:    p.Reference,
		RedirectLink: p.RedirectLink,
		Amount:       p.Amount,
		Currency:     p.Currency,
		Job:          FromJob(p.Job),
	}
}

func paymentStatus(s entities.JobPaymentStatus) string {
	if s == entities.JobPaymentNone {
		return "none"
	}
	return string(s)
}
