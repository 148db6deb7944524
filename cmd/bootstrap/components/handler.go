package components

import (
	"time"

	"courtgrid/internal/handler"
	"courtgrid/internal/handler/api"
	"courtgrid/internal/handler/middleware"
	"courtgrid/internal/pkg/config"
	"courtgrid/internal/usecase/commands"
	"courtgrid/internal/usecase/queries"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		NewAuthHandler,
		api.NewBookingHandler,
		api.NewResourceHandler,
		api.NewEstablishmentHandler,
		api.NewCashboxHandler,
		api.NewAccountHandler,
		api.NewMaintenanceHandler,
		middleware.NewAuthMiddleware,
		NewHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func NewAuthHandler(
	cfg config.Config,
	authCommands commands.AuthCommands,
	userQueries queries.UserQueries,
) *api.AuthHandler {
	tokenTTL, err := time.ParseDuration(cfg.JWT.Duration)
	if err != nil {
		tokenTTL = 24 * time.Hour
	}
	return api.NewAuthHandler(authCommands, userQueries, cfg.Cookie, tokenTTL)
}

func NewHandlers(
	auth *api.AuthHandler,
	booking *api.BookingHandler,
	resource *api.ResourceHandler,
	establishment *api.EstablishmentHandler,
	cashbox *api.CashboxHandler,
	account *api.AccountHandler,
	maintenance *api.MaintenanceHandler,
) handler.Handlers {
	return handler.Handlers{
		Auth:          auth,
		Booking:       booking,
		Resource:      resource,
		Establishment: establishment,
		Cashbox:       cashbox,
		Account:       account,
		Maintenance:   maintenance,
	}
}
