package response

import (
	"time"

	"qutlas/internal/domain/entities"
)

type GeoPointResponse struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type HubResponse struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	Processes       []string          `json:"processes"`
	Materials       []string          `json:"materials"`
	CurrentLoad     float64           `json:"currentLoad"`
	QualityRating   float64           `json:"qualityRating"`
	BasePrice       float64           `json:"basePrice"`
	AvgLeadTimeDays int               `json:"avgLeadTimeDays"`
	Certified       bool              `json:"certified"`
	Location        *GeoPointResponse `json:"location,omitempty"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}

type HubMatchResponse struct {
	HubID         string  `json:"hubId"`
	HubName       string  `json:"hubName"`
	Compatibility float64 `json:"compatibility"`
	DistanceScore float64 `json:"distanceScore"`
	Score         float64 `json:"score"`
	PriceEstimate float64 `json:"priceEstimate"`
	LeadTimeDays  int     `json:"leadTimeDays"`
	Feasible      bool    `json:"feasible"`
}

func FromHub(h entities.Hub) HubResponse {
	out := HubResponse{
		ID:              h.ID,
		Name:            h.Name,
		Processes:       nonNilStrings(h.Processes),
		Materials:       nonNilStrings(h.Materials),
		CurrentLoad:     h.CurrentLoad,
		QualityRating:   h.QualityRating,
		BasePrice:       h.BasePrice,
		AvgLeadTimeDays: h.AvgLeadTimeDays,
		Certified:       h.Certified,
		UpdatedAt:       h.UpdatedAt,
	}
	if h.Location != nil {
		out.Location = &GeoPointResponse{Lat: h.Location.Lat, Lng: h.Location.Lng}
	}
	return out
}

func FromHubs(hubs []entities.Hub) []HubResponse {
	out := make([]HubResponse, 0, len(hubs))
	for _, h := range hubs {
		out = append(out, FromHub(h))
	}
	return out
}

func FromHubMatches(matches []entities.HubMatch) []HubMatchResponse {
	out := make([]HubMatchResponse, 0, len(matches))
	for _, m := range matches {
		out = append(out, HubMatchResponse{
			HubID:         m.HubID,
			HubName:       m.HubName,
			Compatibility: m.Compatibility,
			DistanceScore: m.DistanceScore,
			Score:         m.Score,
			PriceEstimate: m.PriceEstimate,
			LeadTimeDays:  m.LeadTimeDays,
			Feasible:      m.Feasible,
		})
	}
	return out
}

func nonNilStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
