package components

import (
	"qr-seat-reservation/internal/domain/ticket"
	"qr-seat-reservation/internal/infra/archive"
	"qr-seat-reservation/internal/infra/render"
	"qr-seat-reservation/internal/usecase/shared"

	"go.uber.org/fx"
)

// RenderModule provides the ticket image renderer and archiver along with the
// code draw source.
var RenderModule = fx.Module("render",
	fx.Provide(
		fx.Annotate(
			render.NewQRTicketRenderer,
			fx.As(new(shared.TicketRenderer)),
		),
		fx.Annotate(
			archive.NewZipArchiver,
			fx.As(new(shared.TicketArchiver)),
		),
		ticket.DefaultSource,
	),
)
