package bootstrap

import (
	"fitbook/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	JWTModule,
	ScheduleModule,
	components.RepositoryModule,
	components.UseCaseModule,
	components.HandlerModule,
)
