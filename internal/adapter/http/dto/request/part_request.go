package request

import (
	"strings"

	"qutlas/internal/domain/entities"
)

type GeoPointRequest struct {
	Lat float64 `json:"lat" binding:"gte=-90,lte=90"`
	Lng float64 `json:"lng" binding:"gte=-180,lte=180"`
}

type DesignRequest struct {
	Bucket string `json:"bucket" binding:"required"`
	Key    string `json:"key" binding:"required"`
}

// PartRequest is the part description shared by quoting, matching and job
// submission. ManufacturabilityScore comes from the CAD analysis.
type PartRequest struct {
	TemplateID             string           `json:"templateId" binding:"required"`
	Quantity               int              `json:"quantity" binding:"required,gte=1"`
	Material               string           `json:"material"`
	Parameters             map[string]any   `json:"parameters"`
	ManufacturabilityScore *float64         `json:"manufacturabilityScore" binding:"required,gte=0,lte=100"`
	QuoteID                string           `json:"quoteId"`
	Design                 *DesignRequest   `json:"design"`
	DeliveryLocation       *GeoPointRequest `json:"deliveryLocation"`
}

// ToEntity validates the design location and builds the domain request.
func (r PartRequest) ToEntity() (entities.PartRequest, error) {
	out := entities.PartRequest{
		TemplateID: strings.TrimSpace(r.TemplateID),
		Quantity:   r.Quantity,
		Material:   strings.TrimSpace(r.Material),
		Parameters: r.Parameters,
		QuoteID:    strings.TrimSpace(r.QuoteID),
	}
	if r.ManufacturabilityScore != nil {
		out.ManufacturabilityScore = *r.ManufacturabilityScore
	}
	if r.Design != nil {
		loc, err := entities.NewDesignLocation(r.Design.Bucket, r.Design.Key)
		if err != nil {
			return entities.PartRequest{}, err
		}
		out.Design = &loc
	}
	if r.DeliveryLocation != nil {
		out.DeliveryLocation = &entities.GeoPoint{Lat: r.DeliveryLocation.Lat, Lng: r.DeliveryLocation.Lng}
	}
	return out, nil
}
