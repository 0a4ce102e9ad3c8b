package request

import (
	"qr-seat-reservation/internal/domain/seating"
	"qr-seat-reservation/internal/usecase/commands"
)

// CreateTableRequest accepts either seat_count alone or the split
// available/unavailable form.
type CreateTableRequest struct {
	Name             string `json:"name" binding:"required,max=100"`
	SeatCount        *int   `json:"seat_count,omitempty" binding:"omitempty,min=0,max=500"`
	AvailableSeats   *int   `json:"available_seats,omitempty" binding:"omitempty,min=0,max=500"`
	UnavailableSeats int    `json:"unavailable_seats" binding:"min=0,max=500"`
	Description      string `json:"description" binding:"max=500"`
}

func (r CreateTableRequest) ToParams() commands.CreateTableParams {
	available := 0
	switch {
	case r.AvailableSeats != nil:
		available = *r.AvailableSeats
	case r.SeatCount != nil:
		available = *r.SeatCount
	}
	return commands.CreateTableParams{
		Name:             r.Name,
		AvailableSeats:   available,
		UnavailableSeats: r.UnavailableSeats,
		Description:      r.Description,
	}
}

type UpdateSeatStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=AVAILABLE UNAVAILABLE"`
}

func (r UpdateSeatStatusRequest) ToDomain() (seating.SeatStatus, error) {
	return seating.ParseSeatStatus(r.Status)
}
