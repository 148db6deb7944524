package components

import (
	"courtgrid/internal/pkg/clock"
	"courtgrid/internal/usecase"
	"courtgrid/internal/usecase/commands"
	"courtgrid/internal/usecase/queries"

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

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewBookingQueries,
		queries.NewResourceQueries,
		queries.NewEstablishmentQueries,
		queries.NewRegisterQueries,
		queries.NewAccountQueries,
		queries.NewMaintenanceQueries,
		queries.NewUserQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewBookingUseCase,
		commands.NewResourceUseCase,
		commands.NewEstablishmentUseCase,
		commands.NewRegisterUseCase,
		commands.NewAccountUseCase,
		commands.NewMaintenanceUseCase,
	),
)
