package repository

import (
	"context"
	"time"

	"qr-seat-reservation/internal/domain/seller"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const selectSeller = `
	SELECT id, name, address, email, phone, description, created_at, updated_at FROM sellers`

type SellerRepository struct {
	db DBTX
}

func NewSellerRepository(db DBTX) *SellerRepository {
	return &SellerRepository{db: db}
}

func (r *SellerRepository) Create(ctx context.Context, s *seller.Seller) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO sellers (id, name, address, email, phone, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		s.ID(), s.Name(), s.Address(), s.Email(), s.Phone(), s.Description(), s.CreatedAt(), s.UpdatedAt())
	if err != nil {
		return wrapErr("failed to create seller", err)
	}
	return nil
}

func (r *SellerRepository) FindByID(ctx context.Context, id uuid.UUID) (*seller.Seller, error) {
	return r.findOne(ctx, selectSeller+` WHERE id = $1`, id)
}

// FindByIDForShare keeps the seller from being deleted until the transaction
// ends without serializing reservations of the same seller.
func (r *SellerRepository) FindByIDForShare(ctx context.Context, id uuid.UUID) (*seller.Seller, error) {
	return r.findOne(ctx, selectSeller+` WHERE id = $1 FOR SHARE`, id)
}

func (r *SellerRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*seller.Seller, error) {
	return r.findOne(ctx, selectSeller+` WHERE id = $1 FOR UPDATE`, id)
}

func (r *SellerRepository) findOne(ctx context.Context, query string, id uuid.UUID) (*seller.Seller, error) {
	rows, err := r.db.Query(ctx, query, id)
	if err != nil {
		return nil, wrapErr("failed to find seller", err)
	}
	s, err := pgx.CollectExactlyOneRow(rows, scanSeller)
	if err != nil {
		return nil, wrapErr("seller not found", err)
	}
	return s, nil
}

func (r *SellerRepository) FindAll(ctx context.Context) ([]*seller.Seller, error) {
	rows, err := r.db.Query(ctx, selectSeller+` ORDER BY name, id`)
	if err != nil {
		return nil, wrapErr("failed to list sellers", err)
	}
	sellers, err := pgx.CollectRows(rows, scanSeller)
	if err != nil {
		return nil, wrapErr("failed to scan sellers", err)
	}
	return sellers, nil
}

func (r *SellerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM sellers WHERE id = $1`, id)
	if err != nil {
		return wrapErr("failed to delete seller", err)
	}
	return expectOne(tag, "seller not found")
}

func scanSeller(row pgx.CollectableRow) (*seller.Seller, error) {
	var (
		id                                       uuid.UUID
		name, address, email, phone, description string
		createdAt, updatedAt                     time.Time
	)
	if err := row.Scan(&id, &name, &address, &email, &phone, &description, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	return seller.ReconstructSeller(id, name, address, email, phone, description, createdAt, updatedAt), nil
}
