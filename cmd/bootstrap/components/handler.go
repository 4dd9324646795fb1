package components

import (
	"foodbridge/internal/handler"
	"foodbridge/internal/handler/api"
	"foodbridge/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewListingHandler,
		api.NewClaimHandler,
		api.NewAdminHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
