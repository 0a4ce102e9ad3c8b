package bootstrap

import (
	"qr-seat-reservation/cmd/bootstrap/components"

	"go.uber.org/fx"
)

// CoreModule is everything below the HTTP layer. The ticketgen CLI runs on it.
var CoreModule = fx.Options(
	ConfigModule,
	LoggerModule,
	DBModule,
	JWTModule,
	MessagingModule,
	components.RenderModule,
	components.UseCaseModule,
	StartupModule,
)

var Module = fx.Options(
	CoreModule,
	CacheModule,
	components.HandlerModule,
)
