package request

import (
	"qr-seat-reservation/internal/domain/reservation"
	"qr-seat-reservation/internal/usecase/commands"

	"github.com/google/uuid"
)

type SeatItem struct {
	SeatID      uuid.UUID `json:"seat_id" binding:"required"`
	TicketClass string    `json:"ticket_class" binding:"omitempty,oneof=FULL HALF"`
}

type CreateReservationRequest struct {
	SellerID    uuid.UUID  `json:"seller_id" binding:"required"`
	Seats       []SeatItem `json:"seats" binding:"required,min=1,dive"`
	Description string     `json:"description" binding:"max=500"`
}

func (r CreateReservationRequest) ToParams(actor string) commands.CreateReservationParams {
	seats := make([]commands.SeatRequest, 0, len(r.Seats))
	for _, s := range r.Seats {
		seats = append(seats, commands.SeatRequest{
			SeatID: s.SeatID,
			Class:  reservation.TicketClass(s.TicketClass),
		})
	}
	return commands.CreateReservationParams{
		SellerID:    r.SellerID,
		Seats:       seats,
		Description: r.Description,
		Actor:       actor,
	}
}

type CheckInRequest struct {
	Code string `json:"code" binding:"required,max=64"`
}
