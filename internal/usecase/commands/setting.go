package commands

//go:generate mockgen -source=setting.go -destination=../../../tests/mock/commands/setting.go -package=commandsmock

import (
	"context"
	"log/slog"

	"qr-seat-reservation/internal/domain/setting"
	"qr-seat-reservation/internal/infra"
	"qr-seat-reservation/internal/pkg/clock"
	"qr-seat-reservation/internal/pkg/errs"
	"qr-seat-reservation/internal/usecase/queries"
	"qr-seat-reservation/internal/usecase/shared"

	"github.com/jinzhu/copier"
)

type SettingCommands interface {
	// Ensure stores defaults when no settings record exists yet.
	Ensure(ctx context.Context, defaults setting.Params) (*queries.SettingView, error)
	Save(ctx context.Context, patch SettingPatch) (*queries.SettingView, error)
}

type settingCommandsImpl struct {
	uow            shared.UnitOfWork
	settingQueries queries.SettingQueries
	clock          clock.Clock
}

func NewSettingCommands(uow shared.UnitOfWork, settingQueries queries.SettingQueries, clock clock.Clock) SettingCommands {
	return &settingCommandsImpl{
		uow:            uow,
		settingQueries: settingQueries,
		clock:          clock,
	}
}

func (c *settingCommandsImpl) Ensure(ctx context.Context, defaults setting.Params) (*queries.SettingView, error) {
	created := false
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		_, err := tx.Settings().Get(ctx)
		if err == nil {
			return nil
		}
		if !infra.IsKind(err, infra.KindNotFound) {
			return shared.RepoErr(err, nil, "")
		}

		s, err := setting.NewSetting(defaults, c.clock.Now())
		if err != nil {
			return err
		}
		if err := tx.Settings().Save(ctx, s); err != nil {
			return shared.RepoErr(err, nil, "")
		}
		created = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if created {
		slog.Info("settings initialized", "event", defaults.EventName, "prefix", defaults.TicketPrefix, "digits", defaults.NoOfDigits)
	}
	return c.settingQueries.Get(ctx)
}

func (c *settingCommandsImpl) Save(ctx context.Context, patch SettingPatch) (*queries.SettingView, error) {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		s, err := tx.Settings().Get(ctx)
		if err != nil {
			return shared.RepoErr(err, errs.ErrSettingNotFound, "no settings record")
		}

		params := s.Params()
		if err := copier.CopyWithOption(&params, &patch, copier.Option{IgnoreEmpty: true}); err != nil {
			return errs.Wrap(err, "failed to apply settings patch")
		}
		if err := s.Update(params, c.clock.Now()); err != nil {
			return err
		}
		return shared.RepoErr(tx.Settings().Save(ctx, s), nil, "")
	})
	if err != nil {
		return nil, err
	}

	slog.Info("settings saved")
	return c.settingQueries.Get(ctx)
}
