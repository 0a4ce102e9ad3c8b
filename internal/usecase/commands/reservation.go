package commands

//go:generate mockgen -source=reservation.go -destination=../../../tests/mock/commands/reservation.go -package=commandsmock

import (
	"bytes"
	"context"
	"log/slog"
	"slices"
	"strings"

	"qr-seat-reservation/internal/domain/reservation"
	"qr-seat-reservation/internal/infra"
	"qr-seat-reservation/internal/pkg/clock"
	"qr-seat-reservation/internal/pkg/errs"
	"qr-seat-reservation/internal/usecase/queries"
	"qr-seat-reservation/internal/usecase/shared"

	"github.com/google/uuid"
)

type CheckInResult struct {
	Outcome       reservation.CheckInOutcome
	ReservationID uuid.UUID
	ReferenceNo   string
	TicketCode    string
	SeatID        uuid.UUID
}

type ReservationCommands interface {
	// Create reserves every requested seat and allocates one ticket per seat,
	// or changes nothing.
	Create(ctx context.Context, p CreateReservationParams) (*queries.ReservationView, error)
	// Cancel frees the seats and deletes the reservation. Its tickets stay USED.
	Cancel(ctx context.Context, id uuid.UUID, actor string) error
	MarkPaid(ctx context.Context, id uuid.UUID, actor string) (*queries.ReservationView, error)
	CheckInByCode(ctx context.Context, code, actor string) (*CheckInResult, error)
}

type reservationCommandsImpl struct {
	uow                shared.UnitOfWork
	reservationQueries queries.ReservationQueries
	publisher          shared.EventPublisher
	clock              clock.Clock
}

func NewReservationCommands(
	uow shared.UnitOfWork,
	reservationQueries queries.ReservationQueries,
	publisher shared.EventPublisher,
	clock clock.Clock,
) ReservationCommands {
	return &reservationCommandsImpl{
		uow:                uow,
		reservationQueries: reservationQueries,
		publisher:          publisher,
		clock:              clock,
	}
}

func (r *reservationCommandsImpl) Create(ctx context.Context, p CreateReservationParams) (*queries.ReservationView, error) {
	seats, err := normalizeSeats(p.Seats)
	if err != nil {
		return nil, err
	}

	var created *reservation.Reservation
	err = r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Sellers().FindByIDForShare(ctx, p.SellerID); err != nil {
			return shared.RepoErr(err, errs.ErrSellerNotFound, "seller %s", p.SellerID)
		}

		now := r.clock.Now()
		res, err := reservation.NewReservation(p.SellerID, p.Description, p.Actor, now)
		if err != nil {
			return err
		}

		// seats are locked in id order so that concurrent reservations cannot deadlock
		for _, req := range seats {
			seat, err := tx.Seats().FindByIDForUpdate(ctx, req.SeatID)
			if err != nil {
				return shared.RepoErr(err, errs.ErrSeatNotFound, "seat %s", req.SeatID)
			}
			if err := seat.Reserve(now); err != nil {
				return err
			}
			if err := tx.Seats().Update(ctx, seat); err != nil {
				return shared.RepoErr(err, errs.ErrSeatNotFound, "seat %s", req.SeatID)
			}

			t, err := takeTicket(ctx, tx, now)
			if err != nil {
				return err
			}
			if _, err := res.Allocate(seat.ID(), t.Code(), req.Class, now); err != nil {
				return err
			}
		}

		if err := tx.Reservations().Create(ctx, res); err != nil {
			// seats and tickets are locked above, so an index clash means a
			// concurrent transaction got there first; retry against fresh state
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return infra.WrapRepoErr("reservation raced a concurrent allocation", err, infra.KindConflict)
			}
			return shared.RepoErr(err, nil, "")
		}
		created = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("reservation created",
		"reservation_id", created.ID(),
		"reference_no", created.ReferenceNo(),
		"seats", created.AllocationCount())
	publish(ctx, r.publisher, r.event(shared.EventReservationCreated, created, p.Actor))

	return r.reservationQueries.GetByID(ctx, created.ID())
}

// normalizeSeats defaults the class, rejects duplicates and sorts by seat id.
func normalizeSeats(in []SeatRequest) ([]SeatRequest, error) {
	if len(in) == 0 {
		return nil, errs.Detailf(errs.ErrValidation, "at least one seat is required")
	}

	seen := make(map[uuid.UUID]struct{}, len(in))
	out := make([]SeatRequest, 0, len(in))
	for _, req := range in {
		if req.SeatID == uuid.Nil {
			return nil, errs.Detailf(errs.ErrValidation, "seat id is required")
		}
		if _, dup := seen[req.SeatID]; dup {
			return nil, errs.Detailf(errs.ErrValidation, "seat %s is listed more than once", req.SeatID)
		}
		seen[req.SeatID] = struct{}{}

		class, err := reservation.ParseTicketClass(string(req.Class))
		if err != nil {
			return nil, err
		}
		out = append(out, SeatRequest{SeatID: req.SeatID, Class: class})
	}

	slices.SortFunc(out, func(a, b SeatRequest) int {
		return bytes.Compare(a.SeatID[:], b.SeatID[:])
	})
	return out, nil
}

func (r *reservationCommandsImpl) Cancel(ctx context.Context, id uuid.UUID, actor string) error {
	var cancelled *reservation.Reservation
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := tx.Reservations().FindByIDForUpdate(ctx, id)
		if err != nil {
			return shared.RepoErr(err, errs.ErrReservationNotFound, "reservation %s", id)
		}

		now := r.clock.Now()
		seatIDs := res.SeatIDs()
		slices.SortFunc(seatIDs, func(a, b uuid.UUID) int {
			return bytes.Compare(a[:], b[:])
		})
		for _, seatID := range seatIDs {
			seat, err := tx.Seats().FindByIDForUpdate(ctx, seatID)
			if err != nil {
				return shared.RepoErr(err, errs.ErrSeatNotFound, "seat %s of reservation %s", seatID, res.ReferenceNo())
			}
			seat.Release(now)
			if err := tx.Seats().Update(ctx, seat); err != nil {
				return shared.RepoErr(err, errs.ErrSeatNotFound, "seat %s", seatID)
			}
		}

		if err := tx.Reservations().Delete(ctx, id); err != nil {
			return shared.RepoErr(err, errs.ErrReservationNotFound, "reservation %s", id)
		}
		cancelled = res
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("reservation cancelled",
		"reservation_id", cancelled.ID(),
		"reference_no", cancelled.ReferenceNo(),
		"released_seats", cancelled.AllocationCount())
	publish(ctx, r.publisher, r.event(shared.EventReservationCancelled, cancelled, actor))
	return nil
}

func (r *reservationCommandsImpl) MarkPaid(ctx context.Context, id uuid.UUID, actor string) (*queries.ReservationView, error) {
	var (
		paid    *reservation.Reservation
		changed bool
	)
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := tx.Reservations().FindByIDForUpdate(ctx, id)
		if err != nil {
			return shared.RepoErr(err, errs.ErrReservationNotFound, "reservation %s", id)
		}
		changed = res.MarkPaid(actor, r.clock.Now())
		if changed {
			if err := tx.Reservations().Update(ctx, res); err != nil {
				return shared.RepoErr(err, errs.ErrReservationNotFound, "reservation %s", id)
			}
		}
		paid = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	if changed {
		slog.Info("reservation paid", "reservation_id", paid.ID(), "reference_no", paid.ReferenceNo())
		publish(ctx, r.publisher, r.event(shared.EventReservationPaid, paid, actor))
	}
	return r.reservationQueries.GetByID(ctx, id)
}

func (r *reservationCommandsImpl) CheckInByCode(ctx context.Context, code, actor string) (*CheckInResult, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, errs.Detailf(errs.ErrValidation, "ticket code is required")
	}

	var result *CheckInResult
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		owner, err := tx.Reservations().FindByTicketCode(ctx, code)
		if err != nil {
			return shared.RepoErr(err, errs.ErrReservationNotFound, "no reservation holds ticket %s", code)
		}
		// re-read under lock so that concurrent scans of the same code serialize
		res, err := tx.Reservations().FindByIDForUpdate(ctx, owner.ID())
		if err != nil {
			return shared.RepoErr(err, errs.ErrReservationNotFound, "no reservation holds ticket %s", code)
		}

		now := r.clock.Now()
		outcome, alloc, err := res.CheckIn(code, now)
		if err != nil {
			return err
		}

		if outcome == reservation.CheckInOutcomeCheckedIn {
			seat, err := tx.Seats().FindByIDForUpdate(ctx, alloc.SeatID())
			if err != nil {
				return shared.RepoErr(err, errs.ErrSeatNotFound, "seat %s of ticket %s", alloc.SeatID(), code)
			}
			if err := seat.CheckIn(now); err != nil {
				return err
			}
			if err := tx.Seats().Update(ctx, seat); err != nil {
				return shared.RepoErr(err, errs.ErrSeatNotFound, "seat %s", alloc.SeatID())
			}
			if err := tx.Reservations().Update(ctx, res); err != nil {
				return shared.RepoErr(err, errs.ErrReservationNotFound, "reservation %s", res.ID())
			}
		}

		result = &CheckInResult{
			Outcome:       outcome,
			ReservationID: res.ID(),
			ReferenceNo:   res.ReferenceNo(),
			TicketCode:    code,
			SeatID:        alloc.SeatID(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("ticket scanned", "code", code, "outcome", result.Outcome, "reference_no", result.ReferenceNo)
	if result.Outcome == reservation.CheckInOutcomeCheckedIn {
		publish(ctx, r.publisher, shared.Event{
			Type:          shared.EventTicketCheckedIn,
			ReservationID: result.ReservationID,
			ReferenceNo:   result.ReferenceNo,
			TicketCodes:   []string{code},
			SeatIDs:       []uuid.UUID{result.SeatID},
			Actor:         actor,
			OccurredAt:    r.clock.Now(),
		})
	}
	return result, nil
}

func (r *reservationCommandsImpl) event(typ shared.EventType, res *reservation.Reservation, actor string) shared.Event {
	return shared.Event{
		Type:          typ,
		ReservationID: res.ID(),
		ReferenceNo:   res.ReferenceNo(),
		TicketCodes:   res.TicketCodes(),
		SeatIDs:       res.SeatIDs(),
		Actor:         actor,
		OccurredAt:    r.clock.Now(),
	}
}
