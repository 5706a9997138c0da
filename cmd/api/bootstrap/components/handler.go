package components

import (
	"log/slog"

	"qutlas/internal/adapter/http/handlers"
	"qutlas/internal/adapter/http/middleware"
	"qutlas/internal/adapter/http/routes"
	"qutlas/internal/config"
	"qutlas/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		func() *gin.Engine { return gin.New() },
		handlers.NewQuoteHandler,
		handlers.NewHubHandler,
		handlers.NewJobHandler,
		handlers.NewPaymentHandler,
		NewIdempotencyMiddleware,
	),
	fx.Invoke(routes.NewRouter),
)

func NewIdempotencyMiddleware(cfg config.Config, store interfaces.IIdempotencyStore, logger *slog.Logger) *middleware.Idempotency {
	return middleware.NewIdempotency(store, cfg.Idempotency.TTL, handlers.HeaderCustomerID, logger)
}
