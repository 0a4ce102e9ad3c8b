package queries

//go:generate mockgen -source=seating.go -destination=../../../tests/mock/queries/seating.go -package=queriesmock

import (
	"context"

	"qr-seat-reservation/internal/domain/seating"
	"qr-seat-reservation/internal/pkg/errs"
	"qr-seat-reservation/internal/usecase/shared"

	"github.com/google/uuid"
)

type SeatingQueries interface {
	ListTables(ctx context.Context) ([]*TableView, error)
	// GetTable includes the seats of the table.
	GetTable(ctx context.Context, id uuid.UUID) (*TableView, error)
	GetSeat(ctx context.Context, id uuid.UUID) (*SeatView, error)
	Summary(ctx context.Context) (*SummaryView, error)
}

type seatingQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewSeatingQueries(uow shared.UnitOfWork) SeatingQueries {
	return &seatingQueriesImpl{uow: uow}
}

func (q *seatingQueriesImpl) ListTables(ctx context.Context) ([]*TableView, error) {
	var views []*TableView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		tables, err := tx.Tables().FindAll(ctx)
		if err != nil {
			return shared.RepoErr(err, nil, "")
		}
		views = make([]*TableView, 0, len(tables))
		for _, t := range tables {
			views = append(views, tableView(t, false))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}

func (q *seatingQueriesImpl) GetTable(ctx context.Context, id uuid.UUID) (*TableView, error) {
	var view *TableView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		t, err := tx.Tables().FindByID(ctx, id)
		if err != nil {
			return shared.RepoErr(err, errs.ErrTableNotFound, "table %s", id)
		}
		view = tableView(t, true)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (q *seatingQueriesImpl) GetSeat(ctx context.Context, id uuid.UUID) (*SeatView, error) {
	var view SeatView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		s, err := tx.Seats().FindByID(ctx, id)
		if err != nil {
			return shared.RepoErr(err, errs.ErrSeatNotFound, "seat %s", id)
		}
		view = seatView(s)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &view, nil
}

func (q *seatingQueriesImpl) Summary(ctx context.Context) (*SummaryView, error) {
	var view *SummaryView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		tables, err := tx.Tables().FindAll(ctx)
		if err != nil {
			return shared.RepoErr(err, nil, "")
		}
		s := seating.Summarize(tables)
		view = &SummaryView{
			Tables: s.Tables,
			Seats:  s.Seats,
			Counts: countsView(s.Counts),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}
