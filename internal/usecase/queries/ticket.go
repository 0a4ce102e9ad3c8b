package queries

//go:generate mockgen -source=ticket.go -destination=../../../tests/mock/queries/ticket.go -package=queriesmock

import (
	"context"

	"qr-seat-reservation/internal/domain/ticket"
	"qr-seat-reservation/internal/pkg/errs"
	"qr-seat-reservation/internal/usecase/shared"
)

type TicketQueries interface {
	FindByCode(ctx context.Context, code string) (*TicketView, error)
	// Image returns the stored PNG of the ticket.
	Image(ctx context.Context, code string) ([]byte, error)
	Stats(ctx context.Context) (*TicketStatsView, error)
}

type ticketQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewTicketQueries(uow shared.UnitOfWork) TicketQueries {
	return &ticketQueriesImpl{uow: uow}
}

func (q *ticketQueriesImpl) find(ctx context.Context, code string) (*ticket.Ticket, error) {
	var found *ticket.Ticket
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		t, err := tx.Tickets().FindByCode(ctx, code)
		if err != nil {
			return shared.RepoErr(err, errs.ErrTicketNotFound, "ticket %s", code)
		}
		found = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

func (q *ticketQueriesImpl) FindByCode(ctx context.Context, code string) (*TicketView, error) {
	t, err := q.find(ctx, code)
	if err != nil {
		return nil, err
	}
	return ticketView(t), nil
}

func (q *ticketQueriesImpl) Image(ctx context.Context, code string) ([]byte, error) {
	t, err := q.find(ctx, code)
	if err != nil {
		return nil, err
	}
	return t.Image(), nil
}

func (q *ticketQueriesImpl) Stats(ctx context.Context) (*TicketStatsView, error) {
	var counts map[ticket.Status]int
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		counts, err = tx.Tickets().CountByStatus(ctx)
		return shared.RepoErr(err, nil, "")
	})
	if err != nil {
		return nil, err
	}

	stats := &TicketStatsView{
		Available: counts[ticket.StatusAvailable],
		Used:      counts[ticket.StatusUsed],
	}
	stats.Total = stats.Available + stats.Used
	return stats, nil
}
