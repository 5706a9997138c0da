package matching

import (
	"testing"

	"qutlas/internal/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func millingHub(id string, load, rating float64) entities.Hub {
	return entities.Hub{
		ID:              id,
		Name:            "Hub " + id,
		Processes:       []string{"CNC Milling", "CNC Turning"},
		Materials:       []string{"Aluminum 6061-T6", "Stainless Steel 304"},
		CurrentLoad:     load,
		QualityRating:   rating,
		BasePrice:       30,
		AvgLeadTimeDays: 5,
		Certified:       true,
	}
}

func millingReq(qty int) Requirements {
	return Requirements{Process: "milling", Material: "Aluminum 6061-T6", Quantity: qty}
}

func TestMatch_LoadOutweighsRating(t *testing.T) {
	hubA := millingHub("hub-a", 0.6, 4.9)
	hubB := millingHub("hub-b", 0.4, 4.7)

	got := NewMatcher(nil).Match(millingReq(10), []entities.Hub{hubA, hubB})
	require.Len(t, got, 2)

	assert.Equal(t, "hub-b", got[0].HubID)
	assert.InDelta(t, 0.864, got[0].Score, 1e-9)
	assert.Equal(t, "hub-a", got[1].HubID)
	assert.InDelta(t, 0.818, got[1].Score, 1e-9)
	assert.Equal(t, 1.0, got[0].Compatibility)
	assert.True(t, got[0].Feasible)
	assert.Equal(t, DefaultDistanceScore, got[0].DistanceScore)
}

func TestMatch_ExcludesUncertifiedHubs(t *testing.T) {
	star := millingHub("hub-star", 0, 5)
	star.Certified = false
	ok := millingHub("hub-ok", 0.9, 1)

	got := NewMatcher(nil).Match(millingReq(1), []entities.Hub{star, ok})
	require.Len(t, got, 1)
	assert.Equal(t, "hub-ok", got[0].HubID)
}

func TestMatch_EmptyWhenNothingEligible(t *testing.T) {
	h := millingHub("hub-x", 0, 5)
	h.Certified = false

	got := NewMatcher(nil).Match(millingReq(1), []entities.Hub{h})
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Empty(t, NewMatcher(nil).Match(millingReq(1), nil))
}

func TestMatch_TieBreaks(t *testing.T) {
	t.Run("lower price first", func(t *testing.T) {
		cheap := millingHub("hub-z", 0.5, 4)
		cheap.BasePrice = 20
		pricey := millingHub("hub-a", 0.5, 4)
		pricey.BasePrice = 40

		got := NewMatcher(nil).Match(millingReq(3), []entities.Hub{pricey, cheap})
		require.Len(t, got, 2)
		assert.Equal(t, got[0].Score, got[1].Score)
		assert.Equal(t, "hub-z", got[0].HubID)
	})

	t.Run("then by id", func(t *testing.T) {
		got := NewMatcher(nil).Match(millingReq(3), []entities.Hub{
			millingHub("hub-c", 0.5, 4), millingHub("hub-a", 0.5, 4), millingHub("hub-b", 0.5, 4),
		})
		require.Len(t, got, 3)
		assert.Equal(t, []string{"hub-a", "hub-b", "hub-c"}, []string{got[0].HubID, got[1].HubID, got[2].HubID})
	})
}

func TestMatch_Compatibility(t *testing.T) {
	plastics := entities.Hub{
		ID: "hub-p", Processes: []string{"Injection Molding"}, Materials: []string{"ABS Plastic"},
		QualityRating: 4, BasePrice: 5, AvgLeadTimeDays: 10, Certified: true,
	}
	mixed := entities.Hub{
		ID: "hub-m", Processes: []string{"Injection Molding"}, Materials: []string{"aluminum"},
		QualityRating: 4, BasePrice: 5, AvgLeadTimeDays: 10, Certified: true,
	}

	got := NewMatcher(nil).Match(millingReq(1), []entities.Hub{plastics, mixed})
	require.Len(t, got, 2)
	assert.Equal(t, "hub-m", got[0].HubID)
	assert.Equal(t, 0.5, got[0].Compatibility)
	assert.False(t, got[0].Feasible)
	assert.Equal(t, 0.0, got[1].Compatibility)
}

func TestPriceAndLeadTimeEstimates(t *testing.T) {
	h := millingHub("hub-a", 0.5, 4)
	h.BasePrice = 10
	assert.Equal(t, 55.0, PriceEstimate(h, 5))
	assert.Equal(t, 5, LeadTimeEstimate(h))

	h.CurrentLoad = 0.7
	assert.Equal(t, 5, LeadTimeEstimate(h))
	h.CurrentLoad = 0.71
	assert.Equal(t, 7, LeadTimeEstimate(h))
}

func TestHaversineDistance(t *testing.T) {
	saoPaulo := entities.GeoPoint{Lat: -23.5505, Lng: -46.6333}
	rio := entities.GeoPoint{Lat: -22.9068, Lng: -43.1729}

	assert.InDelta(t, 361, HaversineKm(saoPaulo, rio), 5)

	scorer := HaversineDistance{MaxKm: 1000, Fallback: DefaultDistanceScore}
	near := millingHub("near", 0.5, 4)
	near.Location = &saoPaulo
	far := millingHub("far", 0.5, 4)
	far.Location = &rio
	unknown := millingHub("unknown", 0.5, 4)

	req := millingReq(1)
	req.DeliveryLocation = &saoPaulo

	assert.InDelta(t, 1.0, scorer.Score(req, near), 1e-9)
	assert.InDelta(t, 0.639, scorer.Score(req, far), 0.01)
	assert.Equal(t, DefaultDistanceScore, scorer.Score(req, unknown))

	got := NewMatcher(scorer).Match(req, []entities.Hub{far, near})
	require.Len(t, got, 2)
	assert.Equal(t, "near", got[0].HubID)
}
