package usecase

import (
	"context"
	"log/slog"
	"strings"

	"qutlas/internal/domain/entities"
	"qutlas/internal/domain/pricing"
	"qutlas/internal/usecase/interfaces"
	"qutlas/pkg/clock"
	"qutlas/pkg/errs"
)

// IQuoteUseCase issues quotes and serves them back while they are valid.
type IQuoteUseCase interface {
	CreateQuote(ctx context.Context, req entities.PartRequest) (entities.Quote, error)
	GetQuote(ctx context.Context, id string) (entities.Quote, error)
	// QuoteFor returns the cached quote named by req.QuoteID, or a fresh one
	// when the request carries no quote id.
	QuoteFor(ctx context.Context, req entities.PartRequest) (entities.Quote, error)
}

type QuoteUseCase struct {
	catalog interfaces.IPartCatalog
	store   interfaces.IQuoteStore
	engine  *pricing.Engine
	clock   clock.Clock
	logger  *slog.Logger
}

var _ IQuoteUseCase = (*QuoteUseCase)(nil)

func NewQuoteUseCase(catalog interfaces.IPartCatalog, store interfaces.IQuoteStore, engine *pricing.Engine, c clock.Clock, logger *slog.Logger) *QuoteUseCase {
	if c == nil {
		c = clock.NewRealClock()
	}
	if engine == nil {
		engine = pricing.NewEngine(c)
	}
	return &QuoteUseCase{catalog: catalog, store: store, engine: engine, clock: c, logger: loggerOrDefault(logger)}
}

func (u *QuoteUseCase) CreateQuote(ctx context.Context, req entities.PartRequest) (entities.Quote, error) {
	u.logger.Info("[quote][usecase] create start", "template_id", req.TemplateID, "quantity", req.Quantity, "material", req.Material)

	tpl, err := u.template(ctx, req.TemplateID)
	if err != nil {
		return entities.Quote{}, err
	}
	q, err := u.engine.ComputeQuote(tpl, req.Quantity, req.Material, req.ManufacturabilityScore)
	if err != nil {
		u.logger.Info("[quote][usecase] pricing rejected", "template_id", req.TemplateID, "error", err.Error())
		return entities.Quote{}, err
	}
	if q.HasWarning(entities.QuoteWarningUnsupportedMaterial) {
		u.logger.Warn("[quote][usecase] material fallback", "template_id", tpl.ID, "requested", req.Material, "priced_with", q.Material)
	}

	if u.store != nil {
		ttl := q.ValidUntil.Sub(u.clock.Now())
		if err := u.store.Save(ctx, q, ttl); err != nil {
			u.logger.Error("[quote][usecase] cache failed", "quote_id", q.ID, "error", err.Error())
			return entities.Quote{}, errs.Mark(errs.Wrap(err, "cache quote"), errs.ErrDataUnavailable)
		}
	}

	u.logger.Info("[quote][usecase] create done", "quote_id", q.ID, "total", q.TotalPrice, "currency", q.Currency)
	return q, nil
}

func (u *QuoteUseCase) GetQuote(ctx context.Context, id string) (entities.Quote, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Quote{}, errs.Markf(errs.ErrInvalidInput, "quote id is required")
	}
	if u.store == nil {
		return entities.Quote{}, errs.Markf(errs.ErrQuoteExpired, "quote %s is not available", id)
	}
	q, found, err := u.store.Get(ctx, id)
	if err != nil {
		return entities.Quote{}, errs.Mark(errs.Wrapf(err, "load quote %s", id), errs.ErrDataUnavailable)
	}
	if !found || q.IsExpired(u.clock.Now()) {
		return entities.Quote{}, errs.Markf(errs.ErrQuoteExpired, "quote %s expired or unknown", id)
	}
	return q, nil
}

func (u *QuoteUseCase) QuoteFor(ctx context.Context, req entities.PartRequest) (entities.Quote, error) {
	if strings.TrimSpace(req.QuoteID) == "" {
		return u.CreateQuote(ctx, req)
	}
	q, err := u.GetQuote(ctx, req.QuoteID)
	if err != nil {
		return entities.Quote{}, err
	}
	if !q.Covers(req) {
		return entities.Quote{}, errs.Markf(errs.ErrInvalidInput, "quote %s was issued for a different request", q.ID)
	}
	return q, nil
}

func (u *QuoteUseCase) template(ctx context.Context, id string) (entities.PartTemplate, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.PartTemplate{}, errs.Markf(errs.ErrInvalidInput, "templateId is required")
	}
	if u.catalog == nil {
		return entities.PartTemplate{}, errs.Markf(errs.ErrDataUnavailable, "part catalog not configured")
	}
	return u.catalog.GetTemplate(ctx, id)
}
