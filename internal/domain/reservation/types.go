package reservation

import (
	"strings"

	"qr-seat-reservation/internal/pkg/errs"
)

// Status is shared by reservations and their seat allocations.
type Status string

const (
	StatusPaymentPending Status = "PAYMENT_PENDING"
	StatusPaid           Status = "PAID"
	StatusCheckedIn      Status = "CHECKED_IN"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPaymentPending, StatusPaid, StatusCheckedIn:
		return true
	default:
		return false
	}
}

type TicketClass string

const (
	TicketClassFull TicketClass = "FULL"
	TicketClassHalf TicketClass = "HALF"
)

func (c TicketClass) String() string {
	return string(c)
}

func (c TicketClass) IsValid() bool {
	switch c {
	case TicketClassFull, TicketClassHalf:
		return true
	default:
		return false
	}
}

// ParseTicketClass defaults an empty class to FULL.
func ParseTicketClass(s string) (TicketClass, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return TicketClassFull, nil
	}
	class := TicketClass(s)
	if !class.IsValid() {
		return "", errs.Detailf(errs.ErrValidation, "unknown ticket class %q", s)
	}
	return class, nil
}

// CheckInOutcome is the non-error result of scanning a ticket.
type CheckInOutcome string

const (
	CheckInOutcomeCheckedIn        CheckInOutcome = "CHECKED_IN"
	CheckInOutcomeAlreadyCheckedIn CheckInOutcome = "ALREADY_CHECKED_IN"
)
