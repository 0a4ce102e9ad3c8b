package repository

import (
	"context"
	"time"

	"qr-seat-reservation/internal/domain/seating"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type TableRepository struct {
	db DBTX
}

func NewTableRepository(db DBTX) *TableRepository {
	return &TableRepository{db: db}
}

func (r *TableRepository) Create(ctx context.Context, t *seating.Table) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO seating_tables (id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`,
		t.ID(), t.Name(), t.Description(), t.CreatedAt(), t.UpdatedAt())
	if err != nil {
		return wrapErr("failed to create table", err)
	}

	seats := t.Seats()
	if len(seats) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, s := range seats {
		batch.Queue(`
			INSERT INTO seats (id, table_id, label, position, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			s.ID(), s.TableID(), s.Label(), s.Position(), s.Status().String(), s.CreatedAt(), s.UpdatedAt())
	}
	if err := r.db.SendBatch(ctx, batch).Close(); err != nil {
		return wrapErr("failed to create seats", err)
	}
	return nil
}

func (r *TableRepository) FindByID(ctx context.Context, id uuid.UUID) (*seating.Table, error) {
	var (
		name, description    string
		createdAt, updatedAt time.Time
	)
	err := r.db.QueryRow(ctx, `
		SELECT name, description, created_at, updated_at
		FROM seating_tables WHERE id = $1`, id).
		Scan(&name, &description, &createdAt, &updatedAt)
	if err != nil {
		return nil, wrapErr("table not found", err)
	}

	seats, err := querySeats(ctx, r.db, `WHERE table_id = $1`, id)
	if err != nil {
		return nil, err
	}
	return seating.ReconstructTable(id, name, description, seats[id], createdAt, updatedAt), nil
}

func (r *TableRepository) FindAll(ctx context.Context) ([]*seating.Table, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, description, created_at, updated_at
		FROM seating_tables ORDER BY name`)
	if err != nil {
		return nil, wrapErr("failed to list tables", err)
	}

	type tableRow struct {
		id                   uuid.UUID
		name, description    string
		createdAt, updatedAt time.Time
	}
	tableRows, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (tableRow, error) {
		var tr tableRow
		err := row.Scan(&tr.id, &tr.name, &tr.description, &tr.createdAt, &tr.updatedAt)
		return tr, err
	})
	if err != nil {
		return nil, wrapErr("failed to scan tables", err)
	}

	seats, err := querySeats(ctx, r.db, "")
	if err != nil {
		return nil, err
	}

	tables := make([]*seating.Table, 0, len(tableRows))
	for _, tr := range tableRows {
		tables = append(tables, seating.ReconstructTable(tr.id, tr.name, tr.description, seats[tr.id], tr.createdAt, tr.updatedAt))
	}
	return tables, nil
}

func (r *TableRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM seating_tables WHERE name = $1)`, name).Scan(&exists)
	if err != nil {
		return false, wrapErr("failed to check table name", err)
	}
	return exists, nil
}

// Delete cascades to the seats.
func (r *TableRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM seating_tables WHERE id = $1`, id)
	if err != nil {
		return wrapErr("failed to delete table", err)
	}
	return expectOne(tag, "table not found")
}

// querySeats groups seats by table id, each group ordered by position.
func querySeats(ctx context.Context, db DBTX, where string, args ...any) (map[uuid.UUID][]*seating.Seat, error) {
	rows, err := db.Query(ctx, `
		SELECT id, table_id, label, position, status, created_at, updated_at
		FROM seats `+where+` ORDER BY table_id, position`, args...)
	if err != nil {
		return nil, wrapErr("failed to list seats", err)
	}
	seats, err := pgx.CollectRows(rows, scanSeat)
	if err != nil {
		return nil, wrapErr("failed to scan seats", err)
	}

	byTable := make(map[uuid.UUID][]*seating.Seat)
	for _, s := range seats {
		byTable[s.TableID()] = append(byTable[s.TableID()], s)
	}
	return byTable, nil
}

func scanSeat(row pgx.CollectableRow) (*seating.Seat, error) {
	var (
		id, tableID          uuid.UUID
		label, status        string
		position             int
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&id, &tableID, &label, &position, &status, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	return seating.ReconstructSeat(id, tableID, label, position, seating.SeatStatus(status), createdAt, updatedAt), nil
}
