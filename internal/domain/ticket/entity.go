package ticket

import (
	"strings"
	"time"

	"qr-seat-reservation/internal/pkg/errs"

	"github.com/google/uuid"
)

// Ticket is a pre-generated credential. Identities are UUIDv7 so that
// ordering by id hands out tickets in creation order.
type Ticket struct {
	id        uuid.UUID
	code      string
	status    Status
	image     []byte
	createdAt time.Time
	updatedAt time.Time
}

func NewTicket(code string, image []byte, now time.Time) (*Ticket, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, errs.Detailf(errs.ErrValidation, "ticket code is required")
	}
	if len(image) == 0 {
		return nil, errs.Detailf(errs.ErrValidation, "ticket %s has no image", code)
	}
	return &Ticket{
		id:        uuid.Must(uuid.NewV7()),
		code:      code,
		status:    StatusAvailable,
		image:     image,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructTicket(id uuid.UUID, code string, status Status, image []byte, createdAt, updatedAt time.Time) *Ticket {
	return &Ticket{
		id:        id,
		code:      code,
		status:    status,
		image:     image,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (t *Ticket) ID() uuid.UUID        { return t.id }
func (t *Ticket) Code() string         { return t.code }
func (t *Ticket) Status() Status       { return t.status }
func (t *Ticket) Image() []byte        { return t.image }
func (t *Ticket) CreatedAt() time.Time { return t.createdAt }
func (t *Ticket) UpdatedAt() time.Time { return t.updatedAt }

// Consume moves the ticket out of the pool. A ticket is consumed at most once.
func (t *Ticket) Consume(now time.Time) error {
	switch t.status {
	case StatusAvailable:
		t.status = StatusUsed
		t.updatedAt = now
		return nil
	case StatusUsed:
		return errs.Detailf(errs.ErrTicketAlreadyUsed, "ticket %s is %s", t.code, t.status)
	default:
		return errs.Detailf(errs.ErrValidation, "ticket %s has unknown status %q", t.code, t.status)
	}
}
