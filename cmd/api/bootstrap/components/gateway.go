package components

import (
	"log/slog"

	"qutlas/internal/config"
	"qutlas/internal/infrastructure/payments"
	"qutlas/internal/usecase/interfaces"
	"qutlas/pkg/clock"

	"go.uber.org/fx"
)

var GatewayModule = fx.Module("gateway",
	fx.Provide(
		NewPaymentGateway,
	),
)

func NewPaymentGateway(cfg config.Config, c clock.Clock, logger *slog.Logger) (interfaces.IPaymentGateway, error) {
	gw, err := payments.NewMercadoPagoGateway(cfg.MercadoPago, c, logger)
	if err != nil {
		return nil, err
	}
	return gw, nil
}
