package bootstrap

import (
	"log/slog"

	"qutlas/internal/adapter/http/middleware"
	"qutlas/internal/config"

	"go.uber.org/fx"
)

var LoggerModule = fx.Module("logger",
	fx.Provide(
		NewLogger,
	),
)

func NewLogger(cfg config.Config) *slog.Logger {
	return middleware.NewLogger(cfg.Log).GetSlogLogger()
}
