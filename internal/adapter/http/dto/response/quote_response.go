package response

import (
	"time"

	"qutlas/internal/domain/entities"
)

type QuoteResponse struct {
	ID                     string    `json:"id"`
	TemplateID             string    `json:"templateId"`
	Process                string    `json:"process"`
	RequestedMaterial      string    `json:"requestedMaterial,omitempty"`
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

func FromQuote(q entities.Quote) QuoteResponse {
	return QuoteResponse{
		ID:                     q.ID,
		TemplateID:             q.TemplateID,
		Process:                q.Process,
		RequestedMaterial:      q.RequestedMaterial,
		Material:               q.Material,
		MaterialMultiplier:     q.MaterialMultiplier,
		Quantity:               q.Quantity,
		ManufacturabilityScore: q.ManufacturabilityScore,
		VolumeDiscount:         q.VolumeDiscount,
		UnitPrice:              q.UnitPrice,
		Subtotal:               q.Subtotal,
		PlatformFee:            q.PlatformFee,
		TotalPrice:             q.TotalPrice,
		Currency:               q.Currency,
		LeadTimeDays:           q.LeadTimeDays,
		ValidUntil:             q.ValidUntil,
		CreatedAt:              q.CreatedAt,
		Warnings:               q.Warnings,
	}
}
