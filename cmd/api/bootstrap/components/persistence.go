package components

import (
	"context"
	"log/slog"
	"time"

	"qutlas/internal/adapter/catalog"
	cachestore "qutlas/internal/adapter/persistence/cache"
	"qutlas/internal/adapter/persistence/memory"
	"qutlas/internal/adapter/persistence/repository"
	"qutlas/internal/config"
	"qutlas/internal/infrastructure/cache"
	"qutlas/internal/infrastructure/database"
	"qutlas/internal/infrastructure/storage"
	"qutlas/internal/usecase/interfaces"
	"qutlas/pkg/clock"
	"qutlas/pkg/errs"

	"go.uber.org/fx"
)

const startupTimeout = 30 * time.Second

// Stores groups the persistence adapters chosen from configuration.
type Stores struct {
	Jobs        interfaces.IJobRepository
	Hubs        interfaces.IHubRepository
	Attempts    interfaces.IPaymentAttemptRepository
	Quotes      interfaces.IQuoteStore
	Idempotency interfaces.IIdempotencyStore
}

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		clock.NewRealClock,
		NewCatalog,
		NewStores,
		NewDesignStorage,
		func(s Stores) interfaces.IJobRepository { return s.Jobs },
		func(s Stores) interfaces.IHubRepository { return s.Hubs },
		func(s Stores) interfaces.IPaymentAttemptRepository { return s.Attempts },
		func(s Stores) interfaces.IQuoteStore { return s.Quotes },
		func(s Stores) interfaces.IIdempotencyStore { return s.Idempotency },
		func(c *catalog.Catalog) interfaces.IPartCatalog { return c },
	),
	fx.Invoke(SeedHubs),
)

func NewCatalog(cfg config.Config, logger *slog.Logger) (*catalog.Catalog, error) {
	c, err := catalog.LoadFile(cfg.Catalog.File)
	if err != nil {
		return nil, err
	}
	templates, _ := c.ListTemplates(context.Background())
	logger.Info("[bootstrap][catalog] loaded", "file", cfg.Catalog.File, "templates", len(templates), "hubs", len(c.Hubs()))
	return c, nil
}

// NewStores picks DynamoDB or in-memory repositories for jobs, hubs and
// payment attempts, and Redis or in-memory stores for quotes and
// idempotency.
func NewStores(lc fx.Lifecycle, cfg config.Config, c clock.Clock, logger *slog.Logger) (Stores, error) {
	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	var s Stores
	if cfg.Store.UseMemory() {
		logger.Warn("[bootstrap][persistence] memory backend selected, data is lost on restart")
		s.Jobs = memory.NewJobRepository()
		s.Hubs = memory.NewHubRepository(c)
		s.Attempts = memory.NewPaymentAttemptRepository()
	} else {
		client, err := database.ConnectDynamoDB(ctx, cfg.DynamoDB)
		if err != nil {
			return Stores{}, err
		}
		if cfg.DynamoDB.CreateTables {
			if err := database.EnsureTables(ctx, client, cfg.DynamoDB, logger); err != nil {
				return Stores{}, err
			}
		}
		s.Jobs = repository.NewJobDynamoRepository(client, cfg.DynamoDB.JobsTable)
		s.Hubs = repository.NewHubDynamoRepository(client, cfg.DynamoDB.HubsTable, c)
		s.Attempts = repository.NewPaymentAttemptDynamoRepository(client, cfg.DynamoDB.PaymentsTable)
		logger.Info("[bootstrap][persistence] dynamodb backend", "region", cfg.DynamoDB.Region, "endpoint", cfg.DynamoDB.Endpoint)
	}

	if cfg.Redis.Addr == "" {
		s.Quotes = memory.NewQuoteStore(c)
		s.Idempotency = memory.NewIdempotencyStore(c)
		return s, nil
	}

	rdb, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		return Stores{}, errs.Mark(err, errs.ErrDataUnavailable)
	}
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return rdb.Close()
		},
	})
	s.Quotes = cachestore.NewRedisQuoteStore(rdb, cfg.Redis.Prefix)
	s.Idempotency = cachestore.NewRedisIdempotencyStore(rdb, cfg.Redis.Prefix+":idem")
	logger.Info("[bootstrap][persistence] redis cache", "addr", cfg.Redis.Addr)
	return s, nil
}

// NewDesignStorage returns nil when no object storage endpoint is
// configured; design locations are then only validated syntactically.
func NewDesignStorage(cfg config.Config, logger *slog.Logger) (interfaces.IDesignStorage, error) {
	if cfg.Storage.Endpoint == "" {
		return nil, nil
	}
	s, err := storage.NewMinIODesignStorage(cfg.Storage)
	if err != nil {
		return nil, err
	}
	logger.Info("[bootstrap][storage] minio design storage", "endpoint", cfg.Storage.Endpoint)
	return s, nil
}

// SeedHubs copies the catalog's hub registry into the hub store when
// HUB_SEED_FROM_CATALOG is set. Existing hubs are overwritten.
func SeedHubs(cfg config.Config, c *catalog.Catalog, hubs interfaces.IHubRepository, logger *slog.Logger) error {
	if !cfg.Catalog.HubSeed {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()
	for _, h := range c.Hubs() {
		if _, err := hubs.Upsert(ctx, h); err != nil {
			return errs.Wrapf(err, "seed hub %s", h.ID)
		}
	}
	logger.Info("[bootstrap][persistence] hubs seeded", "count", len(c.Hubs()))
	return nil
}
