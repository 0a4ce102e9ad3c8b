package repository

import (
	"context"
	"time"

	"qr-seat-reservation/internal/domain/ticket"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const selectTicket = `
	SELECT id, code, status, image, created_at, updated_at FROM tickets`

type TicketRepository struct {
	db DBTX
}

func NewTicketRepository(db DBTX) *TicketRepository {
	return &TicketRepository{db: db}
}

func (r *TicketRepository) Create(ctx context.Context, t *ticket.Ticket) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO tickets (id, code, status, image, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		t.ID(), t.Code(), t.Status().String(), t.Image(), t.CreatedAt(), t.UpdatedAt())
	if err != nil {
		return wrapErr("failed to create ticket "+t.Code(), err)
	}
	return nil
}

func (r *TicketRepository) FindByCode(ctx context.Context, code string) (*ticket.Ticket, error) {
	return r.findOne(ctx, selectTicket+` WHERE code = $1`, code)
}

func (r *TicketRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM tickets WHERE code = $1)`, code).Scan(&exists)
	if err != nil {
		return false, wrapErr("failed to check ticket code", err)
	}
	return exists, nil
}

// LockNextAvailable skips rows other transactions are claiming, so
// concurrent callers never wait on each other nor receive the same ticket.
func (r *TicketRepository) LockNextAvailable(ctx context.Context) (*ticket.Ticket, error) {
	return r.findOne(ctx, selectTicket+`
		WHERE status = 'AVAILABLE'
		ORDER BY id
		LIMIT 1
		FOR UPDATE SKIP LOCKED`)
}

func (r *TicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE tickets SET status = $2, updated_at = $3 WHERE id = $1`,
		t.ID(), t.Status().String(), t.UpdatedAt())
	if err != nil {
		return wrapErr("failed to update ticket "+t.Code(), err)
	}
	return expectOne(tag, "ticket not found")
}

func (r *TicketRepository) CountByStatus(ctx context.Context) (map[ticket.Status]int, error) {
	rows, err := r.db.Query(ctx, `SELECT status, count(*) FROM tickets GROUP BY status`)
	if err != nil {
		return nil, wrapErr("failed to count tickets", err)
	}
	defer rows.Close()

	counts := map[ticket.Status]int{
		ticket.StatusAvailable: 0,
		ticket.StatusUsed:      0,
	}
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, wrapErr("failed to scan ticket counts", err)
		}
		counts[ticket.Status(status)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("failed to count tickets", err)
	}
	return counts, nil
}

func (r *TicketRepository) findOne(ctx context.Context, sql string, args ...any) (*ticket.Ticket, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, wrapErr("failed to find ticket", err)
	}
	t, err := pgx.CollectExactlyOneRow(rows, scanTicket)
	if err != nil {
		return nil, wrapErr("ticket not found", err)
	}
	return t, nil
}

func scanTicket(row pgx.CollectableRow) (*ticket.Ticket, error) {
	var (
		id                   uuid.UUID
		code, status         string
		image                []byte
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&id, &code, &status, &image, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	return ticket.ReconstructTicket(id, code, ticket.Status(status), image, createdAt, updatedAt), nil
}
