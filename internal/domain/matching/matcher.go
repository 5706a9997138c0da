// Package matching ranks production hubs for a part request.
package matching

import (
	"sort"
	"strings"

	"qutlas/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// Composite score weights.
const (
	WeightCompatibility = 0.50
	WeightLoad          = 0.25
	WeightDistance      = 0.15
	WeightRating        = 0.10

	MaxQualityRating = 5.0

	// BusyLoadThreshold is the load above which a hub quotes extra lead time.
	BusyLoadThreshold = 0.7
	BusyLeadTimeDays  = 2
)

var loadSurcharge = decimal.RequireFromString("0.2")

// Requirements is what a job needs from a hub.
type Requirements struct {
	Process          string
	Material         string
	Quantity         int
	DeliveryLocation *entities.GeoPoint
}

type Matcher struct {
	distance DistanceScorer
}

func NewMatcher(distance DistanceScorer) *Matcher {
	if distance == nil {
		distance = ConstantDistance(DefaultDistanceScore)
	}
	return &Matcher{distance: distance}
}

// Match scores every certified hub and returns them best first. Ties are
// broken by lower price estimate, then by hub id. An empty pool or no
// certified hub yields an empty slice.
func (m *Matcher) Match(req Requirements, hubs []entities.Hub) []entities.HubMatch {
	out := make([]entities.HubMatch, 0, len(hubs))
	for _, hub := range hubs {
		if !hub.Certified {
			continue
		}
		out = append(out, m.score(req, hub))
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		if out[i].PriceEstimate != out[j].PriceEstimate {
			return out[i].PriceEstimate < out[j].PriceEstimate
		}
		return out[i].HubID < out[j].HubID
	})
	return out
}

func (m *Matcher) score(req Requirements, hub entities.Hub) entities.HubMatch {
	load := clamp01(hub.CurrentLoad)
	rating := hub.QualityRating
	if rating < 0 {
		rating = 0
	}
	if rating > MaxQualityRating {
		rating = MaxQualityRating
	}

	compat := 0.0
	if supports(hub.Processes, req.Process) {
		compat += 0.5
	}
	if supports(hub.Materials, req.Material) {
		compat += 0.5
	}
	dist := m.distance.Score(req, hub)

	score := WeightCompatibility*compat +
		WeightLoad*(1-load) +
		WeightDistance*dist +
		WeightRating*(rating/MaxQualityRating)

	return entities.HubMatch{
		HubID:         hub.ID,
		HubName:       hub.Name,
		Compatibility: compat,
		DistanceScore: dist,
		Score:         score,
		PriceEstimate: PriceEstimate(hub, req.Quantity),
		LeadTimeDays:  LeadTimeEstimate(hub),
		Feasible:      compat == 1,
	}
}

// PriceEstimate is basePrice * qty * (1 + load*0.2), rounded to cents.
func PriceEstimate(hub entities.Hub, quantity int) float64 {
	load := decimal.NewFromFloat(clamp01(hub.CurrentLoad))
	price := decimal.NewFromFloat(hub.BasePrice).
		Mul(decimal.NewFromInt(int64(quantity))).
		Mul(decimal.NewFromInt(1).Add(load.Mul(loadSurcharge)))
	return price.Round(2).InexactFloat64()
}

func LeadTimeEstimate(hub entities.Hub) int {
	if hub.CurrentLoad > BusyLoadThreshold {
		return hub.AvgLeadTimeDays + BusyLeadTimeDays
	}
	return hub.AvgLeadTimeDays
}

// supports is a tolerant, case-insensitive substring match in either
// direction, so "CNC Milling" satisfies "milling".
func supports(capabilities []string, wanted string) bool {
	w := strings.ToLower(strings.TrimSpace(wanted))
	if w == "" {
		return false
	}
	for _, c := range capabilities {
		c = strings.ToLower(strings.TrimSpace(c))
		if c == "" {
			continue
		}
		if strings.Contains(c, w) || strings.Contains(w, c) {
			return true
		}
	}
	return false
}
