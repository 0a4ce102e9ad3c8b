package repository

import (
	"context"
	"time"

	"qr-seat-reservation/internal/domain/reservation"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const selectReservation = `
	SELECT r.id, r.reference_no, r.seller_id, r.status, r.description,
	       r.created_by, r.updated_by, r.created_at, r.updated_at
	FROM reservations r`

type ReservationRepository struct {
	db DBTX
}

func NewReservationRepository(db DBTX) *ReservationRepository {
	return &ReservationRepository{db: db}
}

func (r *ReservationRepository) Create(ctx context.Context, res *reservation.Reservation) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO reservations (id, reference_no, seller_id, status, description, created_by, updated_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		res.ID(), res.ReferenceNo(), res.SellerID(), res.Status().String(), res.Description(),
		res.CreatedBy(), res.UpdatedBy(), res.CreatedAt(), res.UpdatedAt())
	if err != nil {
		return wrapErr("failed to create reservation "+res.ReferenceNo(), err)
	}

	batch := &pgx.Batch{}
	for _, a := range res.Allocations() {
		batch.Queue(`
			INSERT INTO seat_allocations (id, reservation_id, seat_id, ticket_code, ticket_class, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			a.ID(), res.ID(), a.SeatID(), a.TicketCode(), a.Class().String(), a.Status().String(), a.CreatedAt(), a.UpdatedAt())
	}
	if batch.Len() == 0 {
		return nil
	}
	if err := r.db.SendBatch(ctx, batch).Close(); err != nil {
		return wrapErr("failed to create allocations for "+res.ReferenceNo(), err)
	}
	return nil
}

func (r *ReservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	return r.findOne(ctx, selectReservation+` WHERE r.id = $1`, id)
}

// FindByIDForUpdate locks the reservation row before loading allocations, so
// the allocations read reflect the latest committed state.
func (r *ReservationRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	return r.findOne(ctx, selectReservation+` WHERE r.id = $1 FOR UPDATE`, id)
}

func (r *ReservationRepository) FindByTicketCode(ctx context.Context, code string) (*reservation.Reservation, error) {
	return r.findOne(ctx, selectReservation+`
		JOIN seat_allocations a ON a.reservation_id = r.id
		WHERE a.ticket_code = $1`, code)
}

func (r *ReservationRepository) FindAll(ctx context.Context) ([]*reservation.Reservation, error) {
	return r.findMany(ctx, selectReservation+` ORDER BY r.created_at DESC, r.id DESC`)
}

func (r *ReservationRepository) FindByTableID(ctx context.Context, tableID uuid.UUID) ([]*reservation.Reservation, error) {
	return r.findMany(ctx, selectReservation+`
		WHERE EXISTS (
			SELECT 1 FROM seat_allocations a
			JOIN seats s ON s.id = a.seat_id
			WHERE a.reservation_id = r.id AND s.table_id = $1
		)
		ORDER BY r.created_at DESC, r.id DESC`, tableID)
}

func (r *ReservationRepository) ExistsForSeat(ctx context.Context, seatID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM seat_allocations WHERE seat_id = $1)`, seatID).Scan(&exists)
	if err != nil {
		return false, wrapErr("failed to check seat allocations", err)
	}
	return exists, nil
}

func (r *ReservationRepository) ExistsForSeller(ctx context.Context, sellerID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM reservations WHERE seller_id = $1)`, sellerID).Scan(&exists)
	if err != nil {
		return false, wrapErr("failed to check seller reservations", err)
	}
	return exists, nil
}

func (r *ReservationRepository) Update(ctx context.Context, res *reservation.Reservation) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE reservations SET status = $2, description = $3, updated_by = $4, updated_at = $5
		WHERE id = $1`,
		res.ID(), res.Status().String(), res.Description(), res.UpdatedBy(), res.UpdatedAt())
	if err != nil {
		return wrapErr("failed to update reservation "+res.ReferenceNo(), err)
	}
	if err := expectOne(tag, "reservation not found"); err != nil {
		return err
	}

	batch := &pgx.Batch{}
	for _, a := range res.Allocations() {
		batch.Queue(`UPDATE seat_allocations SET status = $2, updated_at = $3 WHERE id = $1`,
			a.ID(), a.Status().String(), a.UpdatedAt())
	}
	if batch.Len() == 0 {
		return nil
	}
	if err := r.db.SendBatch(ctx, batch).Close(); err != nil {
		return wrapErr("failed to update allocations of "+res.ReferenceNo(), err)
	}
	return nil
}

// Delete cascades to the allocations.
func (r *ReservationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM reservations WHERE id = $1`, id)
	if err != nil {
		return wrapErr("failed to delete reservation", err)
	}
	return expectOne(tag, "reservation not found")
}

type reservationRow struct {
	id, sellerID                     uuid.UUID
	referenceNo, status, description string
	createdBy, updatedBy             string
	createdAt, updatedAt             time.Time
}

func scanReservationRow(row pgx.CollectableRow) (reservationRow, error) {
	var rr reservationRow
	err := row.Scan(&rr.id, &rr.referenceNo, &rr.sellerID, &rr.status, &rr.description,
		&rr.createdBy, &rr.updatedBy, &rr.createdAt, &rr.updatedAt)
	return rr, err
}

func (r *ReservationRepository) findOne(ctx context.Context, sql string, args ...any) (*reservation.Reservation, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, wrapErr("failed to find reservation", err)
	}
	rr, err := pgx.CollectExactlyOneRow(rows, scanReservationRow)
	if err != nil {
		return nil, wrapErr("reservation not found", err)
	}

	allocations, err := r.allocations(ctx, rr.id)
	if err != nil {
		return nil, err
	}
	return rr.toDomain(allocations[rr.id]), nil
}

func (r *ReservationRepository) findMany(ctx context.Context, sql string, args ...any) ([]*reservation.Reservation, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, wrapErr("failed to list reservations", err)
	}
	rrs, err := pgx.CollectRows(rows, scanReservationRow)
	if err != nil {
		return nil, wrapErr("failed to scan reservations", err)
	}
	if len(rrs) == 0 {
		return []*reservation.Reservation{}, nil
	}

	ids := make([]uuid.UUID, 0, len(rrs))
	for _, rr := range rrs {
		ids = append(ids, rr.id)
	}
	allocations, err := r.allocations(ctx, ids...)
	if err != nil {
		return nil, err
	}

	out := make([]*reservation.Reservation, 0, len(rrs))
	for _, rr := range rrs {
		out = append(out, rr.toDomain(allocations[rr.id]))
	}
	return out, nil
}

// allocations loads the line items of the given reservations in one query.
func (r *ReservationRepository) allocations(ctx context.Context, reservationIDs ...uuid.UUID) (map[uuid.UUID][]*reservation.Allocation, error) {
	rows, err := r.db.Query(ctx, `
		SELECT a.id, a.reservation_id, a.seat_id, a.ticket_code, a.ticket_class, a.status, a.created_at, a.updated_at
		FROM seat_allocations a
		JOIN seats s ON s.id = a.seat_id
		WHERE a.reservation_id = ANY($1)
		ORDER BY a.reservation_id, s.table_id, s.position`, reservationIDs)
	if err != nil {
		return nil, wrapErr("failed to load allocations", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*reservation.Allocation, error) {
		var (
			id, reservationID, seatID uuid.UUID
			ticketCode, class, status string
			createdAt, updatedAt      time.Time
		)
		if err := row.Scan(&id, &reservationID, &seatID, &ticketCode, &class, &status, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		return reservation.ReconstructAllocation(
			id, reservationID, seatID, ticketCode,
			reservation.TicketClass(class), reservation.Status(status), createdAt, updatedAt,
		), nil
	})
	if err != nil {
		return nil, wrapErr("failed to scan allocations", err)
	}

	byReservation := make(map[uuid.UUID][]*reservation.Allocation, len(reservationIDs))
	for _, a := range list {
		byReservation[a.ReservationID()] = append(byReservation[a.ReservationID()], a)
	}
	return byReservation, nil
}

func (rr reservationRow) toDomain(allocations []*reservation.Allocation) *reservation.Reservation {
	return reservation.ReconstructReservation(
		rr.id, rr.referenceNo, rr.sellerID, reservation.Status(rr.status), rr.description, allocations,
		rr.createdBy, rr.updatedBy, rr.createdAt, rr.updatedAt,
	)
}
