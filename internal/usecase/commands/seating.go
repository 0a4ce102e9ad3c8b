package commands

//go:generate mockgen -source=seating.go -destination=../../../tests/mock/commands/seating.go -package=commandsmock

import (
	"context"
	"log/slog"

	"qr-seat-reservation/internal/domain/seating"
	"qr-seat-reservation/internal/infra"
	"qr-seat-reservation/internal/pkg/clock"
	"qr-seat-reservation/internal/pkg/errs"
	"qr-seat-reservation/internal/usecase/queries"
	"qr-seat-reservation/internal/usecase/shared"

	"github.com/google/uuid"
)

type SeatingCommands interface {
	CreateTable(ctx context.Context, p CreateTableParams) (*queries.TableView, error)
	DeleteTable(ctx context.Context, tableID uuid.UUID) error
	// ReleaseSeat makes a seat AVAILABLE again. Seats held by a reservation are
	// released by cancelling it.
	ReleaseSeat(ctx context.Context, seatID uuid.UUID) error
	MarkSeat(ctx context.Context, seatID uuid.UUID, status seating.SeatStatus) error
}

type seatingCommandsImpl struct {
	uow            shared.UnitOfWork
	seatingQueries queries.SeatingQueries
	clock          clock.Clock
}

func NewSeatingCommands(uow shared.UnitOfWork, seatingQueries queries.SeatingQueries, clock clock.Clock) SeatingCommands {
	return &seatingCommandsImpl{
		uow:            uow,
		seatingQueries: seatingQueries,
		clock:          clock,
	}
}

func (c *seatingCommandsImpl) CreateTable(ctx context.Context, p CreateTableParams) (*queries.TableView, error) {
	var tableID uuid.UUID
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		t, err := seating.NewTable(p.Name, p.AvailableSeats, p.UnavailableSeats, p.Description, c.clock.Now())
		if err != nil {
			return err
		}

		exists, err := tx.Tables().ExistsByName(ctx, t.Name())
		if err != nil {
			return shared.RepoErr(err, nil, "")
		}
		if exists {
			return errs.Detailf(errs.ErrValidation, "table %q already exists", t.Name())
		}

		if err := tx.Tables().Create(ctx, t); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.Detailf(errs.ErrValidation, "table %q already exists", t.Name())
			}
			return shared.RepoErr(err, nil, "")
		}
		tableID = t.ID()
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("table created", "table_id", tableID, "name", p.Name)
	return c.seatingQueries.GetTable(ctx, tableID)
}

func (c *seatingCommandsImpl) DeleteTable(ctx context.Context, tableID uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		t, err := tx.Tables().FindByID(ctx, tableID)
		if err != nil {
			return shared.RepoErr(err, errs.ErrTableNotFound, "table %s", tableID)
		}

		held, err := tx.Reservations().FindByTableID(ctx, tableID)
		if err != nil {
			return shared.RepoErr(err, nil, "")
		}
		if len(held) > 0 {
			return errs.Detailf(errs.ErrTableInUse, "table %q is referenced by %d reservation(s)", t.Name(), len(held))
		}

		if err := tx.Tables().Delete(ctx, tableID); err != nil {
			if infra.IsKind(err, infra.KindForeignKeyViolated) {
				return errs.Detailf(errs.ErrTableInUse, "table %q is referenced by a reservation", t.Name())
			}
			return shared.RepoErr(err, errs.ErrTableNotFound, "table %s", tableID)
		}
		return nil
	})
}

func (c *seatingCommandsImpl) ReleaseSeat(ctx context.Context, seatID uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		s, err := tx.Seats().FindByIDForUpdate(ctx, seatID)
		if err != nil {
			return shared.RepoErr(err, errs.ErrSeatNotFound, "seat %s", seatID)
		}
		if s.Status() == seating.SeatAvailable {
			return nil
		}

		held, err := tx.Reservations().ExistsForSeat(ctx, seatID)
		if err != nil {
			return shared.RepoErr(err, nil, "")
		}
		if held {
			return errs.Detailf(errs.ErrSeatInUse, "seat %s (%s) is %s and allocated to a reservation", s.Label(), s.ID(), s.Status())
		}

		s.Release(c.clock.Now())
		return shared.RepoErr(tx.Seats().Update(ctx, s), errs.ErrSeatNotFound, "seat %s", seatID)
	})
}

func (c *seatingCommandsImpl) MarkSeat(ctx context.Context, seatID uuid.UUID, status seating.SeatStatus) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		s, err := tx.Seats().FindByIDForUpdate(ctx, seatID)
		if err != nil {
			return shared.RepoErr(err, errs.ErrSeatNotFound, "seat %s", seatID)
		}
		before := s.Status()
		if err := s.SetAvailability(status, c.clock.Now()); err != nil {
			return err
		}
		if s.Status() == before {
			return nil
		}
		return shared.RepoErr(tx.Seats().Update(ctx, s), errs.ErrSeatNotFound, "seat %s", seatID)
	})
}
