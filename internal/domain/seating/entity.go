package seating

import (
	"fmt"
	"strings"
	"time"

	"qr-seat-reservation/internal/pkg/errs"

	"github.com/google/uuid"
)

const (
	MaxSeatsPerTable  = 500
	MaxTableNameRunes = 100
)

type Table struct {
	id          uuid.UUID
	name        string
	description string
	seats       []*Seat
	createdAt   time.Time
	updatedAt   time.Time
}

// NewTable lays out available seats first, then unavailable ones, labelled S1..Sn.
func NewTable(name string, availableSeats, unavailableSeats int, description string, now time.Time) (*Table, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errs.Detailf(errs.ErrValidation, "table name is required")
	}
	if len([]rune(name)) > MaxTableNameRunes {
		return nil, errs.Detailf(errs.ErrValidation, "table name exceeds %d characters", MaxTableNameRunes)
	}
	if availableSeats < 0 || unavailableSeats < 0 {
		return nil, errs.Detailf(errs.ErrValidation, "seat counts must be non-negative (available=%d, unavailable=%d)", availableSeats, unavailableSeats)
	}
	total := availableSeats + unavailableSeats
	if total > MaxSeatsPerTable {
		return nil, errs.Detailf(errs.ErrValidation, "table %q requests %d seats, limit is %d", name, total, MaxSeatsPerTable)
	}

	t := &Table{
		id:          uuid.Must(uuid.NewV7()),
		name:        name,
		description: strings.TrimSpace(description),
		seats:       make([]*Seat, 0, total),
		createdAt:   now,
		updatedAt:   now,
	}
	for i := range total {
		status := SeatAvailable
		if i >= availableSeats {
			status = SeatUnavailable
		}
		t.seats = append(t.seats, &Seat{
			id:        uuid.Must(uuid.NewV7()),
			tableID:   t.id,
			label:     fmt.Sprintf("S%d", i+1),
			position:  i + 1,
			status:    status,
			createdAt: now,
			updatedAt: now,
		})
	}
	return t, nil
}

func ReconstructTable(id uuid.UUID, name, description string, seats []*Seat, createdAt, updatedAt time.Time) *Table {
	return &Table{
		id:          id,
		name:        name,
		description: description,
		seats:       seats,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (t *Table) ID() uuid.UUID        { return t.id }
func (t *Table) Name() string         { return t.name }
func (t *Table) Description() string  { return t.description }
func (t *Table) SeatCount() int       { return len(t.seats) }
func (t *Table) CreatedAt() time.Time { return t.createdAt }
func (t *Table) UpdatedAt() time.Time { return t.updatedAt }

func (t *Table) Seats() []*Seat {
	out := make([]*Seat, len(t.seats))
	copy(out, t.seats)
	return out
}

func (t *Table) Counts() Counts {
	return CountSeats(t.seats)
}

// DisplayName renders the selector label, e.g. "T1 - Available Seats: 4 / 10".
func (t *Table) DisplayName() string {
	return fmt.Sprintf("%s - Available Seats: %d / %d", t.name, t.Counts().Available, t.SeatCount())
}

type Seat struct {
	id        uuid.UUID
	tableID   uuid.UUID
	label     string
	position  int
	status    SeatStatus
	createdAt time.Time
	updatedAt time.Time
}

func ReconstructSeat(id, tableID uuid.UUID, label string, position int, status SeatStatus, createdAt, updatedAt time.Time) *Seat {
	return &Seat{
		id:        id,
		tableID:   tableID,
		label:     label,
		position:  position,
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (s *Seat) ID() uuid.UUID        { return s.id }
func (s *Seat) TableID() uuid.UUID   { return s.tableID }
func (s *Seat) Label() string        { return s.label }
func (s *Seat) Position() int        { return s.position }
func (s *Seat) Status() SeatStatus   { return s.status }
func (s *Seat) CreatedAt() time.Time { return s.createdAt }
func (s *Seat) UpdatedAt() time.Time { return s.updatedAt }

func (s *Seat) Reserve(now time.Time) error {
	switch s.status {
	case SeatAvailable:
		s.status = SeatReserved
		s.updatedAt = now
		return nil
	case SeatUnavailable, SeatReserved, SeatCheckedIn:
		return errs.Detailf(errs.ErrSeatUnavailable, "seat %s (%s) is %s", s.label, s.id, s.status)
	default:
		return errs.Detailf(errs.ErrValidation, "seat %s has unknown status %q", s.id, s.status)
	}
}

// CheckIn is a no-op for a seat that is already checked in.
func (s *Seat) CheckIn(now time.Time) error {
	switch s.status {
	case SeatReserved:
		s.status = SeatCheckedIn
		s.updatedAt = now
		return nil
	case SeatCheckedIn:
		return nil
	case SeatAvailable, SeatUnavailable:
		return errs.Detailf(errs.ErrSeatUnavailable, "seat %s (%s) is %s and cannot be checked in", s.label, s.id, s.status)
	default:
		return errs.Detailf(errs.ErrValidation, "seat %s has unknown status %q", s.id, s.status)
	}
}

func (s *Seat) Release(now time.Time) {
	if s.status == SeatAvailable {
		return
	}
	s.status = SeatAvailable
	s.updatedAt = now
}

// SetAvailability toggles a free seat between AVAILABLE and UNAVAILABLE.
func (s *Seat) SetAvailability(status SeatStatus, now time.Time) error {
	if !status.OperatorSettable() {
		return errs.Detailf(errs.ErrValidation, "seat status %s can only be set by a reservation", status)
	}
	if s.status.Occupied() {
		return errs.Detailf(errs.ErrSeatInUse, "seat %s (%s) is %s", s.label, s.id, s.status)
	}
	if s.status == status {
		return nil
	}
	s.status = status
	s.updatedAt = now
	return nil
}
