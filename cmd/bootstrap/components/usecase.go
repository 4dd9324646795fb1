package components

import (
	"foodbridge/internal/pkg/clock"
	"foodbridge/internal/pkg/pickupcode"
	"foodbridge/internal/usecase"
	"foodbridge/internal/usecase/commands"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		clock.NewRealClock,
		pickupcode.NewGenerator,
		usecase.NewJWTTokenValidator,
		commands.NewListingCommands,
		commands.NewClaimCommands,
		commands.NewSweepCommands,
	),
)
