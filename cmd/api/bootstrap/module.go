package bootstrap

import (
	"qutlas/cmd/api/bootstrap/components"

	"go.uber.org/fx"
)

// AppModule is everything except configuration, so tests can supply their
// own config.Config.
var AppModule = fx.Options(
	LoggerModule,
	components.PersistenceModule,
	components.GatewayModule,
	components.UseCaseModule,
	components.HandlerModule,
)

var Module = fx.Options(
	ConfigModule,
	AppModule,
)
