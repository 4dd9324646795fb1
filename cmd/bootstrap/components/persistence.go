package components

import (
	"foodbridge/internal/infra/readstore"
	"foodbridge/internal/infra/uow"
	"foodbridge/internal/usecase/commands"
	"foodbridge/internal/usecase/queries"

	"go.uber.org/fx"
)

// Write repositories are constructed inside the unit of work per
// transaction, so only the UoW and the read side are wired here.
var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		uow.NewPostgresUoW,
		fx.Annotate(
			readstore.NewListingReadStore,
			fx.As(new(queries.ListingQueries)),
			fx.As(new(commands.ExpiredListingScanner)),
		),
		fx.Annotate(
			readstore.NewClaimReadStore,
			fx.As(new(queries.ClaimQueries)),
		),
		fx.Annotate(
			readstore.NewStatsReadStore,
			fx.As(new(queries.StatsQueries)),
		),
	),
)
