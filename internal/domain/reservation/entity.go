package reservation

import (
	"strings"
	"time"

	"qr-seat-reservation/internal/pkg/errs"

	"github.com/google/uuid"
)

const MaxDescriptionRunes = 500

type Reservation struct {
	id          uuid.UUID
	referenceNo string
	sellerID    uuid.UUID
	status      Status
	description string
	allocations []*Allocation
	createdBy   string
	updatedBy   string
	createdAt   time.Time
	updatedAt   time.Time
}

func NewReservation(sellerID uuid.UUID, description, actor string, now time.Time) (*Reservation, error) {
	if sellerID == uuid.Nil {
		return nil, errs.Detailf(errs.ErrValidation, "seller is required")
	}
	description = strings.TrimSpace(description)
	if len([]rune(description)) > MaxDescriptionRunes {
		return nil, errs.Detailf(errs.ErrValidation, "description exceeds %d characters", MaxDescriptionRunes)
	}
	return &Reservation{
		id:          uuid.Must(uuid.NewV7()),
		referenceNo: NewReferenceNo(),
		sellerID:    sellerID,
		status:      StatusPaymentPending,
		description: description,
		createdBy:   actor,
		updatedBy:   actor,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructReservation(
	id uuid.UUID,
	referenceNo string,
	sellerID uuid.UUID,
	status Status,
	description string,
	allocations []*Allocation,
	createdBy, updatedBy string,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:          id,
		referenceNo: referenceNo,
		sellerID:    sellerID,
		status:      status,
		description: description,
		allocations: allocations,
		createdBy:   createdBy,
		updatedBy:   updatedBy,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (r *Reservation) ID() uuid.UUID          { return r.id }
func (r *Reservation) ReferenceNo() string    { return r.referenceNo }
func (r *Reservation) SellerID() uuid.UUID    { return r.sellerID }
func (r *Reservation) Status() Status         { return r.status }
func (r *Reservation) Description() string    { return r.description }
func (r *Reservation) CreatedBy() string      { return r.createdBy }
func (r *Reservation) UpdatedBy() string      { return r.updatedBy }
func (r *Reservation) CreatedAt() time.Time   { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time   { return r.updatedAt }
func (r *Reservation) AllocationCount() int   { return len(r.allocations) }
func (r *Reservation) IsPaymentPending() bool { return r.status == StatusPaymentPending }

func (r *Reservation) Allocations() []*Allocation {
	out := make([]*Allocation, len(r.allocations))
	copy(out, r.allocations)
	return out
}

func (r *Reservation) SeatIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(r.allocations))
	for _, a := range r.allocations {
		ids = append(ids, a.seatID)
	}
	return ids
}

func (r *Reservation) TicketCodes() []string {
	codes := make([]string, 0, len(r.allocations))
	for _, a := range r.allocations {
		codes = append(codes, a.ticketCode)
	}
	return codes
}

// Allocate binds a reserved seat and its ticket code to a pending reservation.
func (r *Reservation) Allocate(seatID uuid.UUID, ticketCode string, class TicketClass, now time.Time) (*Allocation, error) {
	if r.status != StatusPaymentPending {
		return nil, errs.Detailf(errs.ErrValidation, "reservation %s is %s, seats can only be added while payment is pending", r.referenceNo, r.status)
	}
	if !class.IsValid() {
		return nil, errs.Detailf(errs.ErrValidation, "unknown ticket class %q", class)
	}
	if ticketCode == "" {
		return nil, errs.Detailf(errs.ErrValidation, "seat %s has no ticket code", seatID)
	}
	for _, a := range r.allocations {
		if a.seatID == seatID {
			return nil, errs.Detailf(errs.ErrValidation, "seat %s is listed twice in reservation %s", seatID, r.referenceNo)
		}
	}
	a := &Allocation{
		id:            uuid.Must(uuid.NewV7()),
		reservationID: r.id,
		seatID:        seatID,
		ticketCode:    ticketCode,
		class:         class,
		status:        StatusPaymentPending,
		createdAt:     now,
		updatedAt:     now,
	}
	r.allocations = append(r.allocations, a)
	return a, nil
}

// MarkPaid is idempotent and reports whether anything changed.
func (r *Reservation) MarkPaid(actor string, now time.Time) bool {
	changed := false
	for _, a := range r.allocations {
		if a.status == StatusPaymentPending {
			a.status = StatusPaid
			a.updatedAt = now
			changed = true
		}
	}
	if r.status == StatusPaymentPending {
		r.status = StatusPaid
		changed = true
	}
	if changed {
		r.updatedBy = actor
		r.updatedAt = now
	}
	return changed
}

// CheckIn admits the holder of ticketCode. The reservation itself stays PAID;
// only the allocation moves to CHECKED_IN.
func (r *Reservation) CheckIn(ticketCode string, now time.Time) (CheckInOutcome, *Allocation, error) {
	a := r.AllocationByCode(ticketCode)
	if a == nil {
		return "", nil, errs.Detailf(errs.ErrReservationNotFound, "ticket %s does not belong to reservation %s", ticketCode, r.referenceNo)
	}
	if r.status == StatusPaymentPending {
		return "", a, errs.Detailf(errs.ErrNotPaid, "reservation %s for ticket %s is %s", r.referenceNo, ticketCode, r.status)
	}

	switch a.status {
	case StatusPaid:
		a.status = StatusCheckedIn
		a.updatedAt = now
		r.updatedAt = now
		return CheckInOutcomeCheckedIn, a, nil
	case StatusCheckedIn:
		return CheckInOutcomeAlreadyCheckedIn, a, nil
	case StatusPaymentPending:
		return "", a, errs.Detailf(errs.ErrNotPaid, "ticket %s of reservation %s is %s", ticketCode, r.referenceNo, a.status)
	default:
		return "", a, errs.Detailf(errs.ErrValidation, "ticket %s has unknown status %q", ticketCode, a.status)
	}
}

func (r *Reservation) AllocationByCode(ticketCode string) *Allocation {
	for _, a := range r.allocations {
		if a.ticketCode == ticketCode {
			return a
		}
	}
	return nil
}

type Allocation struct {
	id            uuid.UUID
	reservationID uuid.UUID
	seatID        uuid.UUID
	ticketCode    string
	class         TicketClass
	status        Status
	createdAt     time.Time
	updatedAt     time.Time
}

func ReconstructAllocation(
	id, reservationID, seatID uuid.UUID,
	ticketCode string,
	class TicketClass,
	status Status,
	createdAt, updatedAt time.Time,
) *Allocation {
	return &Allocation{
		id:            id,
		reservationID: reservationID,
		seatID:        seatID,
		ticketCode:    ticketCode,
		class:         class,
		status:        status,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

func (a *Allocation) ID() uuid.UUID            { return a.id }
func (a *Allocation) ReservationID() uuid.UUID { return a.reservationID }
func (a *Allocation) SeatID() uuid.UUID        { return a.seatID }
func (a *Allocation) TicketCode() string       { return a.ticketCode }
func (a *Allocation) Class() TicketClass       { return a.class }
func (a *Allocation) Status() Status           { return a.status }
func (a *Allocation) CreatedAt() time.Time     { return a.createdAt }
func (a *Allocation) UpdatedAt() time.Time     { return a.updatedAt }
