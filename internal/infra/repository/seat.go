package repository

import (
	"context"

	"qr-seat-reservation/internal/domain/seating"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const selectSeat = `
	SELECT id, table_id, label, position, status, created_at, updated_at
	FROM seats WHERE id = $1`

type SeatRepository struct {
	db DBTX
}

func NewSeatRepository(db DBTX) *SeatRepository {
	return &SeatRepository{db: db}
}

func (r *SeatRepository) FindByID(ctx context.Context, id uuid.UUID) (*seating.Seat, error) {
	return r.findOne(ctx, selectSeat, id)
}

func (r *SeatRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*seating.Seat, error) {
	return r.findOne(ctx, selectSeat+` FOR UPDATE`, id)
}

func (r *SeatRepository) findOne(ctx context.Context, sql string, id uuid.UUID) (*seating.Seat, error) {
	rows, err := r.db.Query(ctx, sql, id)
	if err != nil {
		return nil, wrapErr("failed to find seat", err)
	}
	seat, err := pgx.CollectExactlyOneRow(rows, scanSeat)
	if err != nil {
		return nil, wrapErr("seat not found", err)
	}
	return seat, nil
}

func (r *SeatRepository) Update(ctx context.Context, s *seating.Seat) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE seats SET status = $2, updated_at = $3 WHERE id = $1`,
		s.ID(), s.Status().String(), s.UpdatedAt())
	if err != nil {
		return wrapErr("failed to update seat", err)
	}
	return expectOne(tag, "seat not found")
}
