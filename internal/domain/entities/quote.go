package entities

import (
	"strings"
	"time"
)

// QuoteWarningUnsupportedMaterial is attached when pricing fell back to the
// template's default material.
const QuoteWarningUnsupportedMaterial = "unsupported_material"

// Quote is a time-bounded price and lead-time offer.
//
// Invariants:
//   - Subtotal == round2(UnitPrice * Quantity)
//   - TotalPrice == round2(Subtotal + PlatformFee)
//
// A Quote must not be accepted into a Job once ValidUntil has passed.
type Quote struct {
	ID                     string    `json:"id"`
	TemplateID             string    `json:"templateId"`
	Process                string    `json:"process"`
	RequestedMaterial      string    `json:"requestedMaterial"`
	Material               string    `json:"material"`
	MaterialMultiplier     float64   `json:"materialMultiplier"`
	Quantity               int       `json:"quantity"`
	ManufacturabilityScore float64   `json:"manufacturabilityScore"`
	VolumeDiscount         float64   `json:"volumeDiscount"`
	UnitPrice              float64   `json:"unitPrice"`
	Subtotal               float64   `json:"subtotal"`
	PlatformFee            float64   `json:"platformFee"`
	TotalPrice             float64   `json:"totalPrice"`
	Currency               string    `json:"currency"`
	LeadTimeDays           int       `json:"leadTimeDays"`
	ValidUntil             time.Time `json:"validUntil"`
	CreatedAt              time.Time `json:"createdAt"`
	Warnings               []string  `json:"warnings,omitempty"`
}

func (q Quote) IsExpired(now time.Time) bool {
	return !now.Before(q.ValidUntil)
}

// Covers reports whether the quote was issued for the given request.
func (q Quote) Covers(req PartRequest) bool {
	return q.TemplateID == req.TemplateID &&
		q.Quantity == req.Quantity &&
		strings.EqualFold(strings.TrimSpace(q.RequestedMaterial), strings.TrimSpace(req.Material))
}

func (q Quote) HasWarning(w string) bool {
	for _, existing := range q.Warnings {
		if existing == w {
			return true
		}
	}
	return false
}
