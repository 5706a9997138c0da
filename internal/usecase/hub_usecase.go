package usecase

import (
	"context"
	"log/slog"
	"math"
	"strings"

	"qutlas/internal/domain/entities"
	"qutlas/internal/domain/matching"
	"qutlas/internal/domain/pricing"
	"qutlas/internal/usecase/interfaces"
	"qutlas/pkg/errs"
)

// IHubUseCase exposes the hub registry and matching.
type IHubUseCase interface {
	ListHubs(ctx context.Context) ([]entities.Hub, error)
	MatchHubs(ctx context.Context, req entities.PartRequest) ([]entities.HubMatch, error)
	Rank(ctx context.Context, req matching.Requirements) ([]entities.HubMatch, error)
	AdjustLoad(ctx context.Context, hubID string, delta float64) (entities.Hub, float64, error)
}

type HubUseCase struct {
	repo    interfaces.IHubRepository
	catalog interfaces.IPartCatalog
	matcher *matching.Matcher
	retry   RetryPolicy
	logger  *slog.Logger
}

var _ IHubUseCase = (*HubUseCase)(nil)

func NewHubUseCase(repo interfaces.IHubRepository, catalog interfaces.IPartCatalog, matcher *matching.Matcher, retry RetryPolicy, logger *slog.Logger) *HubUseCase {
	if matcher == nil {
		matcher = matching.NewMatcher(nil)
	}
	return &HubUseCase{repo: repo, catalog: catalog, matcher: matcher, retry: retry, logger: loggerOrDefault(logger)}
}

func (u *HubUseCase) ListHubs(ctx context.Context) ([]entities.Hub, error) {
	hubs, err := u.repo.List(ctx)
	if err != nil {
		u.logger.Error("[hub][usecase] list failed", "error", err.Error())
		return nil, err
	}
	return hubs, nil
}

// MatchHubs matches against the material the part would actually be priced
// with, so an unsupported material ranks hubs for the template default.
func (u *HubUseCase) MatchHubs(ctx context.Context, req entities.PartRequest) ([]entities.HubMatch, error) {
	if req.Quantity < 1 {
		return nil, errs.Markf(errs.ErrInvalidInput, "quantity must be >= 1, got %d", req.Quantity)
	}
	if strings.TrimSpace(req.TemplateID) == "" {
		return nil, errs.Markf(errs.ErrInvalidInput, "templateId is required")
	}
	if u.catalog == nil {
		return nil, errs.Markf(errs.ErrDataUnavailable, "part catalog not configured")
	}
	tpl, err := u.catalog.GetTemplate(ctx, req.TemplateID)
	if err != nil {
		return nil, err
	}
	material, _, _ := pricing.ResolveMaterial(tpl, req.Material)
	return u.Rank(ctx, matching.Requirements{
		Process:          tpl.Process,
		Material:         material,
		Quantity:         req.Quantity,
		DeliveryLocation: req.DeliveryLocation,
	})
}

func (u *HubUseCase) Rank(ctx context.Context, req matching.Requirements) ([]entities.HubMatch, error) {
	hubs, err := u.ListHubs(ctx)
	if err != nil {
		return nil, err
	}
	matches := u.matcher.Match(req, hubs)
	u.logger.Debug("[hub][usecase] ranked", "process", req.Process, "material", req.Material, "pool", len(hubs), "eligible", len(matches))
	return matches, nil
}

// AdjustLoad adds delta to the hub's current load, clamped to [0,1]. The
// returned float is the change actually applied after clamping, which is
// what a caller must give back later.
func (u *HubUseCase) AdjustLoad(ctx context.Context, hubID string, delta float64) (entities.Hub, float64, error) {
	hubID = strings.TrimSpace(hubID)
	if hubID == "" {
		return entities.Hub{}, 0, errs.Markf(errs.ErrInvalidInput, "hub id is required")
	}
	var applied float64
	hub, err := withRetry(ctx, u.retry, u.logger, "hub.adjust_load", func(ctx context.Context) (entities.Hub, error) {
		applied = 0
		hub, err := u.repo.GetByID(ctx, hubID)
		if err != nil {
			return entities.Hub{}, err
		}
		if hub.ID == "" {
			return entities.Hub{}, errs.Markf(errs.ErrNotFound, "hub %s not found", hubID)
		}
		load := math.Max(0, math.Min(1, hub.CurrentLoad+delta))
		if load == hub.CurrentLoad {
			return hub, nil
		}
		updated, err := u.repo.UpdateLoad(ctx, hubID, load, hub.Version)
		if err != nil {
			return entities.Hub{}, err
		}
		applied = updated.CurrentLoad - hub.CurrentLoad
		u.logger.Info("[hub][usecase] load adjusted", "hub_id", hubID, "from", hub.CurrentLoad, "to", updated.CurrentLoad)
		return updated, nil
	})
	if err != nil {
		return entities.Hub{}, 0, err
	}
	return hub, applied, nil
}
