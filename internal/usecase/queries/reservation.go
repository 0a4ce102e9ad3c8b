package queries

//go:generate mockgen -source=reservation.go -destination=../../../tests/mock/queries/reservation.go -package=queriesmock

import (
	"context"
	"strings"

	"qr-seat-reservation/internal/pkg/errs"
	"qr-seat-reservation/internal/usecase/shared"

	"github.com/google/uuid"
)

type ReservationQueries interface {
	// List returns reservations newest first with seats, tables and sellers resolved.
	List(ctx context.Context) ([]*ReservationView, error)
	GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	FindByTicketCode(ctx context.Context, code string) (*ReservationView, error)
	ListByTable(ctx context.Context, tableID uuid.UUID) ([]*ReservationView, error)
	// ExportTickets zips the ticket image of every allocation.
	ExportTickets(ctx context.Context, id uuid.UUID) (*TicketArchive, error)
}

type reservationQueriesImpl struct {
	uow      shared.UnitOfWork
	archiver shared.TicketArchiver
}

func NewReservationQueries(uow shared.UnitOfWork, archiver shared.TicketArchiver) ReservationQueries {
	return &reservationQueriesImpl{uow: uow, archiver: archiver}
}

func (q *reservationQueriesImpl) List(ctx context.Context) ([]*ReservationView, error) {
	var views []*ReservationView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		list, err := tx.Reservations().FindAll(ctx)
		if err != nil {
			return shared.RepoErr(err, nil, "")
		}
		views, err = newResolver(tx).reservationViews(ctx, list)
		return shared.RepoErr(err, nil, "")
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	var view *ReservationView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := tx.Reservations().FindByID(ctx, id)
		if err != nil {
			return shared.RepoErr(err, errs.ErrReservationNotFound, "reservation %s", id)
		}
		view, err = newResolver(tx).reservationView(ctx, res)
		return shared.RepoErr(err, nil, "")
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (q *reservationQueriesImpl) FindByTicketCode(ctx context.Context, code string) (*ReservationView, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, errs.Detailf(errs.ErrValidation, "ticket code is required")
	}

	var view *ReservationView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := tx.Reservations().FindByTicketCode(ctx, code)
		if err != nil {
			return shared.RepoErr(err, errs.ErrReservationNotFound, "no reservation holds ticket %s", code)
		}
		view, err = newResolver(tx).reservationView(ctx, res)
		return shared.RepoErr(err, nil, "")
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (q *reservationQueriesImpl) ListByTable(ctx context.Context, tableID uuid.UUID) ([]*ReservationView, error) {
	var views []*ReservationView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Tables().FindByID(ctx, tableID); err != nil {
			return shared.RepoErr(err, errs.ErrTableNotFound, "table %s", tableID)
		}
		list, err := tx.Reservations().FindByTableID(ctx, tableID)
		if err != nil {
			return shared.RepoErr(err, nil, "")
		}
		views, err = newResolver(tx).reservationViews(ctx, list)
		return shared.RepoErr(err, nil, "")
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}

func (q *reservationQueriesImpl) ExportTickets(ctx context.Context, id uuid.UUID) (*TicketArchive, error) {
	var (
		view   *ReservationView
		images []shared.TicketImage
	)
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := tx.Reservations().FindByID(ctx, id)
		if err != nil {
			return shared.RepoErr(err, errs.ErrReservationNotFound, "reservation %s", id)
		}
		view, err = newResolver(tx).reservationView(ctx, res)
		if err != nil {
			return shared.RepoErr(err, nil, "")
		}

		images = make([]shared.TicketImage, 0, len(view.Allocations))
		for _, a := range view.Allocations {
			t, err := tx.Tickets().FindByCode(ctx, a.TicketCode)
			if err != nil {
				return shared.RepoErr(err, errs.ErrTicketNotFound, "ticket %s of reservation %s", a.TicketCode, res.ReferenceNo())
			}
			images = append(images, shared.TicketImage{Code: t.Code(), Image: t.Image()})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	content, err := q.archiver.Archive(images, view.UpdatedAt)
	if err != nil {
		return nil, errs.Wrapf(err, "failed to archive tickets of reservation %s", view.ReferenceNo)
	}

	tableName := ""
	if len(view.Allocations) > 0 {
		tableName = view.Allocations[0].TableName
	}
	return &TicketArchive{
		FileName: q.archiver.FileName(view.SellerName, tableName, len(view.Allocations)),
		Content:  content,
	}, nil
}
