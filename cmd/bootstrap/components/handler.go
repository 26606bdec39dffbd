package components

import (
	"time"

	"fitbook/internal/handler"
	"fitbook/internal/handler/api"
	"fitbook/internal/handler/middleware"
	"fitbook/internal/pkg/config"
	"fitbook/internal/usecase/commands"
	"fitbook/internal/usecase/shared"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		newAuthHandler,
		api.NewGridHandler,
		api.NewBookingHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)

func newAuthHandler(authCommands commands.AuthCommands, members shared.MemberRepository, cfg config.Config) *api.AuthHandler {
	tokenExpiry, err := time.ParseDuration(cfg.JWT.Duration)
	if err != nil {
		tokenExpiry = 24 * time.Hour
	}
	return api.NewAuthHandler(authCommands, members, tokenExpiry)
}
