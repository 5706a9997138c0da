// Package pricing turns a part template, quantity and material into a
// Quote. It has no side effects; persisting or caching the quote belongs to
// the caller.
package pricing

import (
	"strings"
	"time"

	"qutlas/internal/domain/entities"
	"qutlas/pkg/clock"
	"qutlas/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	DefaultCurrency = "BRL"
	QuoteValidity   = 24 * time.Hour

	MinManufacturabilityScore = 0.0
	MaxManufacturabilityScore = 100.0
)

// DefaultPlatformFeeRate is the platform commission applied on the subtotal.
var DefaultPlatformFeeRate = decimal.RequireFromString("0.15")

// volumeTiers is evaluated highest threshold first; thresholds are
// inclusive.
var volumeTiers = []struct {
	minQty   int
	discount decimal.Decimal
}{
	{100, decimal.RequireFromString("0.85")},
	{50, decimal.RequireFromString("0.90")},
	{10, decimal.RequireFromString("0.95")},
}

// VolumeDiscount returns the unit price multiplier for a quantity.
func VolumeDiscount(quantity int) decimal.Decimal {
	for _, tier := range volumeTiers {
		if quantity >= tier.minQty {
			return tier.discount
		}
	}
	return decimal.NewFromInt(1)
}

// LeadTimeEscalation returns the extra days added for a quantity. The
// boundaries (10 and 50) differ from the price tiers on purpose.
func LeadTimeEscalation(quantity int) int {
	switch {
	case quantity > 50:
		return 3
	case quantity > 10:
		return 1
	default:
		return 0
	}
}

// Round2 rounds half away from zero to cents.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// ResolveMaterial returns the material a template will actually be priced
// with. Unsupported materials fall back to the default material with a 1.0
// multiplier.
func ResolveMaterial(t entities.PartTemplate, requested string) (name string, multiplier decimal.Decimal, supported bool) {
	if n, m, ok := t.MaterialMultiplier(requested); ok {
		return n, decimal.NewFromFloat(m), true
	}
	return t.DefaultMaterial, decimal.NewFromInt(1), false
}

type Engine struct {
	clock           clock.Clock
	currency        string
	platformFeeRate decimal.Decimal
	strictMaterials bool
	newID           func() string
}

type Option func(*Engine)

// WithStrictMaterials makes unsupported materials an error instead of a
// fallback to the default material.
func WithStrictMaterials(strict bool) Option {
	return func(e *Engine) { e.strictMaterials = strict }
}

func WithCurrency(currency string) Option {
	return func(e *Engine) {
		if c := strings.ToUpper(strings.TrimSpace(currency)); c != "" {
			e.currency = c
		}
	}
}

func WithPlatformFeeRate(rate float64) Option {
	return func(e *Engine) {
		if rate >= 0 {
			e.platformFeeRate = decimal.NewFromFloat(rate)
		}
	}
}

func WithIDGenerator(gen func() string) Option {
	return func(e *Engine) {
		if gen != nil {
			e.newID = gen
		}
	}
}

func NewEngine(c clock.Clock, opts ...Option) *Engine {
	if c == nil {
		c = clock.NewRealClock()
	}
	e := &Engine{
		clock:           c,
		currency:        DefaultCurrency,
		platformFeeRate: DefaultPlatformFeeRate,
		newID:           uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Currency() string {
	return e.currency
}

// ComputeQuote prices quantity units of the template in the given material.
func (e *Engine) ComputeQuote(t entities.PartTemplate, quantity int, material string, manufacturabilityScore float64) (entities.Quote, error) {
	if strings.TrimSpace(t.ID) == "" {
		return entities.Quote{}, errs.Markf(errs.ErrInvalidInput, "part template is required")
	}
	if t.BasePrice <= 0 {
		return entities.Quote{}, errs.Markf(errs.ErrInvalidInput, "part template %s has no base price", t.ID)
	}
	if quantity < 1 {
		return entities.Quote{}, errs.Markf(errs.ErrInvalidInput, "quantity must be >= 1, got %d", quantity)
	}
	if manufacturabilityScore < MinManufacturabilityScore || manufacturabilityScore > MaxManufacturabilityScore {
		return entities.Quote{}, errs.Markf(errs.ErrInvalidInput, "manufacturability score must be within [0,100], got %v", manufacturabilityScore)
	}

	materialName, multiplier, supported := ResolveMaterial(t, material)
	var warnings []string
	if !supported {
		if e.strictMaterials {
			return entities.Quote{}, errs.Markf(errs.ErrUnsupportedMaterial, "template %s does not offer material %q", t.ID, material)
		}
		warnings = append(warnings, entities.QuoteWarningUnsupportedMaterial)
	}

	discount := VolumeDiscount(quantity)
	unitPrice := Round2(decimal.NewFromFloat(t.BasePrice).Mul(multiplier).Mul(discount))
	subtotal := Round2(unitPrice.Mul(decimal.NewFromInt(int64(quantity))))
	platformFee := Round2(subtotal.Mul(e.platformFeeRate))
	total := Round2(subtotal.Add(platformFee))

	now := e.clock.Now().UTC()
	return entities.Quote{
		ID:                     e.newID(),
		TemplateID:             t.ID,
		Process:                t.Process,
		RequestedMaterial:      strings.TrimSpace(material),
		Material:               materialName,
		MaterialMultiplier:     multiplier.InexactFloat64(),
		Quantity:               quantity,
		ManufacturabilityScore: manufacturabilityScore,
		VolumeDiscount:         discount.InexactFloat64(),
		UnitPrice:              unitPrice.InexactFloat64(),
		Subtotal:               subtotal.InexactFloat64(),
		PlatformFee:            platformFee.InexactFloat64(),
		TotalPrice:             total.InexactFloat64(),
		Currency:               e.currency,
		LeadTimeDays:           t.BaseLeadTimeDays + LeadTimeEscalation(quantity),
		ValidUntil:             now.Add(QuoteValidity),
		CreatedAt:              now,
		Warnings:               warnings,
	}, nil
}
