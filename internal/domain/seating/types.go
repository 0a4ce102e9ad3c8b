package seating

import "qr-seat-reservation/internal/pkg/errs"

type SeatStatus string

const (
	SeatAvailable   SeatStatus = "AVAILABLE"
	SeatUnavailable SeatStatus = "UNAVAILABLE"
	SeatReserved    SeatStatus = "RESERVED"
	SeatCheckedIn   SeatStatus = "CHECKED_IN"
)

func (s SeatStatus) String() string {
	return string(s)
}

func (s SeatStatus) IsValid() bool {
	switch s {
	case SeatAvailable, SeatUnavailable, SeatReserved, SeatCheckedIn:
		return true
	default:
		return false
	}
}

// Occupied reports whether a reservation currently holds the seat.
func (s SeatStatus) Occupied() bool {
	switch s {
	case SeatReserved, SeatCheckedIn:
		return true
	case SeatAvailable, SeatUnavailable:
		return false
	default:
		return false
	}
}

// OperatorSettable lists the statuses an operator may set directly.
func (s SeatStatus) OperatorSettable() bool {
	switch s {
	case SeatAvailable, SeatUnavailable:
		return true
	case SeatReserved, SeatCheckedIn:
		return false
	default:
		return false
	}
}

func ParseSeatStatus(s string) (SeatStatus, error) {
	status := SeatStatus(s)
	if !status.IsValid() {
		return "", errs.Detailf(errs.ErrValidation, "unknown seat status %q", s)
	}
	return status, nil
}
