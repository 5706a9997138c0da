package entities

import "strings"

// PartTemplate is a catalog part the platform knows how to price.
//
// Materials maps each allowed material name to its price multiplier.
// DefaultMaterial is used when a request asks for a material the template
// does not offer.
type PartTemplate struct {
	ID               string             `json:"id"`
	Name             string             `json:"name"`
	Process          string             `json:"process"`
	BasePrice        float64            `json:"basePrice"`
	BaseLeadTimeDays int                `json:"baseLeadTimeDays"`
	DefaultMaterial  string             `json:"defaultMaterial"`
	Materials        map[string]float64 `json:"materials"`
}

// MaterialMultiplier looks a material up case-insensitively and returns the
// canonical name as stored in the template.
func (t PartTemplate) MaterialMultiplier(material string) (name string, multiplier float64, ok bool) {
	wanted := strings.TrimSpace(material)
	if wanted == "" {
		return "", 0, false
	}
	if m, found := t.Materials[wanted]; found {
		return wanted, m, true
	}
	for k, m := range t.Materials {
		if strings.EqualFold(k, wanted) {
			return k, m, true
		}
	}
	return "", 0, false
}

// GeoPoint is a WGS84 coordinate.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// PartRequest is the immutable input of a quote or a job submission.
//
// ManufacturabilityScore (0-100) is produced by the CAD collaborator.
// QuoteID optionally points at a previously issued quote, Design at the
// uploaded design object and DeliveryLocation feeds distance scoring.
type PartRequest struct {
	TemplateID             string
	Quantity               int
	Material               string
	Parameters             map[string]any
	ManufacturabilityScore float64

	QuoteID          string
	Design           *DesignLocation
	DeliveryLocation *GeoPoint
}
