package bootstrap

import (
	"context"
	"log/slog"

	"qr-seat-reservation/internal/infra/db"
	"qr-seat-reservation/internal/infra/memstore"
	"qr-seat-reservation/internal/infra/uow"
	"qr-seat-reservation/internal/pkg/config"
	"qr-seat-reservation/internal/usecase/shared"
	"qr-seat-reservation/migrations"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var DBModule = fx.Module("db",
	fx.Provide(
		NewUnitOfWork,
	),
)

// NewUnitOfWork selects the store named by STORE_DRIVER.
func NewUnitOfWork(lc fx.Lifecycle, cfg config.Config) (shared.UnitOfWork, error) {
	if cfg.Store.Driver == config.StoreDriverMemory {
		slog.Info("using in-memory store; data is lost on restart")
		return uow.NewMemoryUoW(memstore.New()), nil
	}

	pool, err := NewDB(lc, cfg)
	if err != nil {
		return nil, err
	}
	if cfg.Store.AutoMigrate {
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				return db.Migrate(ctx, pool, migrations.FS)
			},
		})
	}
	return uow.NewPostgresUoW(pool), nil
}

func NewDB(lc fx.Lifecycle, cfg config.Config) (*pgxpool.Pool, error) {
	pool, cleanup, err := db.Connect(cfg.DB)
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

	return pool, nil
}
