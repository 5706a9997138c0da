package entities

import "time"

// Hub is a production facility registered with the platform.
//
// CurrentLoad is in [0,1] and QualityRating in [0,5]. Version guards
// concurrent load updates.
type Hub struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Processes       []string  `json:"processes"`
	Materials       []string  `json:"materials"`
	CurrentLoad     float64   `json:"currentLoad"`
	QualityRating   float64   `json:"qualityRating"`
	BasePrice       float64   `json:"basePrice"`
	AvgLeadTimeDays int       `json:"avgLeadTimeDays"`
	Certified       bool      `json:"certified"`
	Location        *GeoPoint `json:"location,omitempty"`
	Version         int64     `json:"version"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// HubMatch is the per-hub outcome of matching a request. It is derived on
// demand and never persisted.
type HubMatch struct {
	HubID         string  `json:"hubId"`
	HubName       string  `json:"hubName"`
	Compatibility float64 `json:"compatibility"`
	DistanceScore float64 `json:"distanceScore"`
	Score         float64 `json:"score"`
	PriceEstimate float64 `json:"priceEstimate"`
	LeadTimeDays  int     `json:"leadTimeDays"`
	Feasible      bool    `json:"feasible"`
}
