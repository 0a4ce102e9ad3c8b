package bootstrap

import (
	"log/slog"

	"qr-seat-reservation/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
	),
	fx.Invoke(LogRuntimeConfig),
)

// LogRuntimeConfig records which optional backends this process will use.
// Secrets are never logged.
func LogRuntimeConfig(logger *slog.Logger, cfg config.Config) {
	logger.Info("runtime configuration",
		slog.String("store", cfg.Store.Driver),
		slog.Bool("auto_migrate", cfg.Store.AutoMigrate),
		slog.Bool("redis", cfg.Redis.Addr != ""),
		slog.Bool("rate_limit", cfg.RateLimit.Enabled && cfg.Redis.Addr != ""),
		slog.Bool("amqp", cfg.AMQP.URL != ""),
		slog.String("event", cfg.Event.Name),
		slog.String("ticket_prefix", cfg.Event.TicketPrefix),
		slog.Int("ticket_digits", cfg.Event.NoOfDigits),
		slog.Int("max_tickets", cfg.Event.MaxNoOfTickets),
	)
}
