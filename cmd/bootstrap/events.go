package bootstrap

import (
	"context"

	"courtgrid/internal/infra/events"
	"courtgrid/internal/pkg/config"
	"courtgrid/internal/usecase/commands"

	"go.uber.org/fx"
)

var EventsModule = fx.Module("events",
	fx.Provide(
		NewEventPublisher,
	),
)

func NewEventPublisher(lc fx.Lifecycle, cfg config.Config) (commands.EventPublisher, error) {
	publisher, cleanup, err := events.NewAMQPPublisher(cfg.AMQP)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if cleanup != nil {
				cleanup()
			}
			return nil
		},
	})

	return publisher, nil
}
