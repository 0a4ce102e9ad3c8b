package queries

//go:generate mockgen -source=seller.go -destination=../../../tests/mock/queries/seller.go -package=queriesmock

import (
	"context"

	"qr-seat-reservation/internal/pkg/errs"
	"qr-seat-reservation/internal/usecase/shared"

	"github.com/google/uuid"
)

type SellerQueries interface {
	List(ctx context.Context) ([]*SellerView, error)
	GetByID(ctx context.Context, id uuid.UUID) (*SellerView, error)
}

type sellerQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewSellerQueries(uow shared.UnitOfWork) SellerQueries {
	return &sellerQueriesImpl{uow: uow}
}

func (q *sellerQueriesImpl) List(ctx context.Context) ([]*SellerView, error) {
	var views []*SellerView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		sellers, err := tx.Sellers().FindAll(ctx)
		if err != nil {
			return shared.RepoErr(err, nil, "")
		}
		views = make([]*SellerView, 0, len(sellers))
		for _, s := range sellers {
			views = append(views, sellerView(s))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}

func (q *sellerQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*SellerView, error) {
	var view *SellerView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		s, err := tx.Sellers().FindByID(ctx, id)
		if err != nil {
			return shared.RepoErr(err, errs.ErrSellerNotFound, "seller %s", id)
		}
		view = sellerView(s)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}
