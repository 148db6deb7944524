package components

import (
	"courtgrid/internal/infra/db"
	"courtgrid/internal/infra/readstore"
	"courtgrid/internal/infra/uow"
	"courtgrid/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

// PersistenceModule binds the pool-backed read stores for the query side.
// The write side goes through the unit of work, which hands repositories
// their transaction at call time.
var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		uow.NewPostgresUoW,
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingViewRepo)),
		),
		fx.Annotate(
			readstore.NewResourceReadStore,
			fx.As(new(queries.ResourceViewRepo)),
		),
		fx.Annotate(
			readstore.NewEstablishmentReadStore,
			fx.As(new(queries.EstablishmentViewRepo)),
		),
		fx.Annotate(
			readstore.NewRegisterReadStore,
			fx.As(new(queries.RegisterViewRepo)),
		),
		fx.Annotate(
			readstore.NewAccountReadStore,
			fx.As(new(queries.AccountViewRepo)),
		),
		fx.Annotate(
			readstore.NewMaintenanceReadStore,
			fx.As(new(queries.MaintenanceViewRepo)),
		),
		fx.Annotate(
			readstore.NewUserReadStore,
			fx.As(new(queries.UserReadStore)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
