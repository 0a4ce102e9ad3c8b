package bootstrap

import (
	"context"
	"log/slog"
	"os"

	"qr-seat-reservation/internal/domain/setting"
	"qr-seat-reservation/internal/domain/user"
	"qr-seat-reservation/internal/infra/render"
	"qr-seat-reservation/internal/pkg/config"
	"qr-seat-reservation/internal/pkg/errs"
	"qr-seat-reservation/internal/usecase/commands"

	"github.com/jinzhu/copier"
	"go.uber.org/fx"
)

var StartupModule = fx.Module("startup",
	fx.Invoke(
		SeedUsers,
		EnsureSettings,
	),
)

// SeedUsers creates the configured accounts on first boot.
func SeedUsers(lc fx.Lifecycle, cfg config.Config, auth commands.AuthCommands) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return auth.EnsureBootstrapUsers(ctx, BootstrapUsers(cfg.Bootstrap))
		},
	})
}

// EnsureSettings writes the settings record from EVENT_* defaults when none exists.
func EnsureSettings(lc fx.Lifecycle, cfg config.Config, settings commands.SettingCommands) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			defaults, err := DefaultSettingParams(cfg.Event)
			if err != nil {
				return err
			}
			view, err := settings.Ensure(ctx, defaults)
			if err != nil {
				return err
			}
			slog.Info("settings ready", "event", view.EventName, "prefix", view.TicketPrefix, "max_tickets", view.MaxNoOfTickets)
			return nil
		},
	})
}

func BootstrapUsers(cfg config.BootstrapConfig) []commands.BootstrapUser {
	return []commands.BootstrapUser{
		{Username: cfg.AdminUsername, Password: cfg.AdminPassword, Role: user.RoleAdmin.String()},
		{Username: cfg.EntranceUsername, Password: cfg.EntrancePassword, Role: user.RoleEntrance.String()},
	}
}

// DefaultSettingParams maps EVENT_* config onto setting params. The base image
// is read from EVENT_BASE_IMAGE_PATH, or a blank canvas is used.
func DefaultSettingParams(cfg config.EventConfig) (setting.Params, error) {
	var p setting.Params
	if err := copier.Copy(&p, &cfg); err != nil {
		return setting.Params{}, errs.Wrap(err, "failed to map event config")
	}

	if cfg.BaseImagePath != "" {
		img, err := os.ReadFile(cfg.BaseImagePath)
		if err != nil {
			return setting.Params{}, errs.Wrapf(err, "failed to read base image %s", cfg.BaseImagePath)
		}
		p.BaseImage = img
		return p, nil
	}

	img, err := render.BlankCanvas(cfg.BaseImageWidth, cfg.BaseImageHeight)
	if err != nil {
		return setting.Params{}, err
	}
	p.BaseImage = img
	return p, nil
}
