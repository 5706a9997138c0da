package matching

import (
	"math"

	"qutlas/internal/domain/entities"
)

// DefaultDistanceScore is used when true geolocation is unavailable.
const DefaultDistanceScore = 0.8

const earthRadiusKm = 6371.0

// DistanceScorer yields a proximity score in [0,1] for a hub, 1 being
// closest. Its weight in the composite score is fixed by the Matcher.
type DistanceScorer interface {
	Score(req Requirements, hub entities.Hub) float64
}

// ConstantDistance scores every hub the same.
type ConstantDistance float64

func (c ConstantDistance) Score(Requirements, entities.Hub) float64 {
	return clamp01(float64(c))
}

// HaversineDistance normalizes the great-circle distance between the
// delivery point and the hub against MaxKm. Without coordinates on either
// side it returns Fallback.
type HaversineDistance struct {
	MaxKm    float64
	Fallback float64
}

func (h HaversineDistance) Score(req Requirements, hub entities.Hub) float64 {
	if req.DeliveryLocation == nil || hub.Location == nil || h.MaxKm <= 0 {
		return clamp01(h.Fallback)
	}
	d := HaversineKm(*req.DeliveryLocation, *hub.Location)
	return clamp01(1 - d/h.MaxKm)
}

// HaversineKm returns the great-circle distance between two points.
func HaversineKm(a, b entities.GeoPoint) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	s := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Asin(math.Min(1, math.Sqrt(s)))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
