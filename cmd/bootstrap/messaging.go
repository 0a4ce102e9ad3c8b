package bootstrap

import (
	"context"
	"log/slog"

	"qr-seat-reservation/internal/infra/messaging"
	"qr-seat-reservation/internal/pkg/config"
	"qr-seat-reservation/internal/usecase/shared"

	"go.uber.org/fx"
)

var MessagingModule = fx.Module("messaging",
	fx.Provide(
		NewEventPublisher,
	),
)

// NewEventPublisher falls back to logging events when AMQP_URL is unset or the
// broker cannot be reached.
func NewEventPublisher(lc fx.Lifecycle, cfg config.Config) shared.EventPublisher {
	if cfg.AMQP.URL == "" {
		return messaging.NewLogPublisher()
	}
	pub, err := messaging.NewRabbitMQPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange)
	if err != nil {
		slog.Warn("rabbitmq is unreachable, events will only be logged", "exchange", cfg.AMQP.Exchange, "error", err)
		return messaging.NewLogPublisher()
	}
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return pub.Close()
		},
	})
	return pub
}
