package commands

//go:generate mockgen -source=seller.go -destination=../../../tests/mock/commands/seller.go -package=commandsmock

import (
	"context"
	"log/slog"

	"qr-seat-reservation/internal/domain/seller"
	"qr-seat-reservation/internal/infra"
	"qr-seat-reservation/internal/pkg/clock"
	"qr-seat-reservation/internal/pkg/errs"
	"qr-seat-reservation/internal/usecase/queries"
	"qr-seat-reservation/internal/usecase/shared"

	"github.com/google/uuid"
)

type SellerCommands interface {
	Create(ctx context.Context, p CreateSellerParams) (*queries.SellerView, error)
	// Delete is refused while any reservation references the seller.
	Delete(ctx context.Context, id uuid.UUID) error
}

type sellerCommandsImpl struct {
	uow           shared.UnitOfWork
	sellerQueries queries.SellerQueries
	clock         clock.Clock
}

func NewSellerCommands(uow shared.UnitOfWork, sellerQueries queries.SellerQueries, clock clock.Clock) SellerCommands {
	return &sellerCommandsImpl{
		uow:           uow,
		sellerQueries: sellerQueries,
		clock:         clock,
	}
}

func (c *sellerCommandsImpl) Create(ctx context.Context, p CreateSellerParams) (*queries.SellerView, error) {
	s, err := seller.NewSeller(p.Name, p.Address, p.Email, p.Phone, p.Description, c.clock.Now())
	if err != nil {
		return nil, err
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return shared.RepoErr(tx.Sellers().Create(ctx, s), nil, "")
	})
	if err != nil {
		return nil, err
	}

	slog.Info("seller created", "seller_id", s.ID(), "name", s.Name())
	return c.sellerQueries.GetByID(ctx, s.ID())
}

func (c *sellerCommandsImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		s, err := tx.Sellers().FindByIDForUpdate(ctx, id)
		if err != nil {
			return shared.RepoErr(err, errs.ErrSellerNotFound, "seller %s", id)
		}

		used, err := tx.Reservations().ExistsForSeller(ctx, id)
		if err != nil {
			return shared.RepoErr(err, nil, "")
		}
		if used {
			return errs.Detailf(errs.ErrSellerInUse, "seller %q still has reservations", s.Name())
		}

		if err := tx.Sellers().Delete(ctx, id); err != nil {
			if infra.IsKind(err, infra.KindForeignKeyViolated) {
				return errs.Detailf(errs.ErrSellerInUse, "seller %q still has reservations", s.Name())
			}
			return shared.RepoErr(err, errs.ErrSellerNotFound, "seller %s", id)
		}
		return nil
	})
}
