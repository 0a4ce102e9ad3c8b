package components

import (
	"qr-seat-reservation/internal/pkg/clock"
	"qr-seat-reservation/internal/usecase"
	"qr-seat-reservation/internal/usecase/commands"
	"qr-seat-reservation/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewSeatingCommands,
		commands.NewSellerCommands,
		commands.NewTicketCommands,
		commands.NewReservationCommands,
		commands.NewSettingCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewUserQueries,
		queries.NewSeatingQueries,
		queries.NewSellerQueries,
		queries.NewTicketQueries,
		queries.NewReservationQueries,
		queries.NewSettingQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
