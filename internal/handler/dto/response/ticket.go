package response

import (
	"qr-seat-reservation/internal/usecase/commands"

	"github.com/google/uuid"
)

type GenerateTicketsResponse struct {
	Requested int      `json:"requested"`
	Generated int      `json:"generated"`
	Codes     []string `json:"codes"`
}

func FromGenerateResult(r *commands.GenerateResult) GenerateTicketsResponse {
	codes := r.Codes
	if codes == nil {
		codes = []string{}
	}
	return GenerateTicketsResponse{
		Requested: r.Requested,
		Generated: len(codes),
		Codes:     codes,
	}
}

type AllocateTicketResponse struct {
	Code string `json:"code"`
}

type CheckInResponse struct {
	Outcome       string    `json:"outcome"`
	TicketCode    string    `json:"ticket_code"`
	ReservationID uuid.UUID `json:"reservation_id"`
	ReferenceNo   string    `json:"reference_no"`
	SeatID        uuid.UUID `json:"seat_id"`
}

func FromCheckInResult(r *commands.CheckInResult) CheckInResponse {
	return CheckInResponse{
		Outcome:       string(r.Outcome),
		TicketCode:    r.TicketCode,
		ReservationID: r.ReservationID,
		ReferenceNo:   r.ReferenceNo,
		SeatID:        r.SeatID,
	}
}
