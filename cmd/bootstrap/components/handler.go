package components

import (
	"qr-seat-reservation/internal/handler"
	"qr-seat-reservation/internal/handler/api"
	"qr-seat-reservation/internal/handler/middleware"

	"go.uber.org/fx"
)

type handlerParams struct {
	fx.In

	Auth        *api.AuthHandler
	Seating     *api.SeatingHandler
	Seller      *api.SellerHandler
	Reservation *api.ReservationHandler
	Ticket      *api.TicketHandler
	Setting     *api.SettingHandler
}

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewSeatingHandler,
		api.NewSellerHandler,
		api.NewReservationHandler,
		api.NewTicketHandler,
		api.NewSettingHandler,
		middleware.NewAuthMiddleware,
		func(p handlerParams) handler.Handlers {
			return handler.Handlers{
				Auth:        p.Auth,
				Seating:     p.Seating,
				Seller:      p.Seller,
				Reservation: p.Reservation,
				Ticket:      p.Ticket,
				Setting:     p.Setting,
			}
		},
	),
	fx.Invoke(handler.NewRouter),
)
