package components

import (
	"log/slog"
	"strings"

	"qutlas/internal/config"
	"qutlas/internal/domain/matching"
	"qutlas/internal/domain/pricing"
	"qutlas/internal/usecase"
	"qutlas/internal/usecase/interfaces"
	"qutlas/pkg/clock"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		NewPricingEngine,
		NewMatcher,
		NewRetryPolicy,
		fx.Annotate(
			usecase.NewQuoteUseCase,
			fx.As(new(usecase.IQuoteUseCase)),
		),
		fx.Annotate(
			usecase.NewHubUseCase,
			fx.As(new(usecase.IHubUseCase)),
		),
		fx.Annotate(
			NewJobUseCase,
			fx.As(new(usecase.IJobUseCase)),
		),
		fx.Annotate(
			usecase.NewPaymentReconcilerUseCase,
			fx.As(new(usecase.IPaymentReconcilerUseCase)),
		),
	),
)

func NewPricingEngine(cfg config.Config, c clock.Clock) *pricing.Engine {
	return pricing.NewEngine(c,
		pricing.WithCurrency(cfg.Pricing.Currency),
		pricing.WithStrictMaterials(cfg.Pricing.StrictMaterials),
		pricing.WithPlatformFeeRate(cfg.Pricing.PlatformFeeRate),
	)
}

func NewMatcher(cfg config.Config) *matching.Matcher {
	if strings.EqualFold(cfg.Matching.DistanceMode, config.DistanceModeHaversine) {
		return matching.NewMatcher(matching.HaversineDistance{
			MaxKm:    cfg.Matching.MaxDistanceKm,
			Fallback: matching.DefaultDistanceScore,
		})
	}
	return matching.NewMatcher(matching.ConstantDistance(matching.DefaultDistanceScore))
}

func NewRetryPolicy(cfg config.Config) usecase.RetryPolicy {
	return usecase.RetryPolicy{MaxAttempts: cfg.Retry.MaxAttempts, Backoff: cfg.Retry.Backoff}
}

func NewJobUseCase(
	cfg config.Config,
	repo interfaces.IJobRepository,
	quotes usecase.IQuoteUseCase,
	hubs usecase.IHubUseCase,
	designs interfaces.IDesignStorage,
	retry usecase.RetryPolicy,
	c clock.Clock,
	logger *slog.Logger,
) *usecase.JobUseCase {
	opts := []usecase.JobUseCaseOption{
		usecase.WithJobRetryPolicy(retry),
		usecase.WithHubLoadPerJob(cfg.Matching.HubLoadPerJob),
	}
	if designs != nil {
		opts = append(opts, usecase.WithDesignStorage(designs))
	}
	return usecase.NewJobUseCase(repo, quotes, hubs, c, logger, opts...)
}
