package shared

import (
	"context"
	"time"

	"qr-seat-reservation/internal/domain/setting"

	"github.com/google/uuid"
)

// TicketRenderer composes a ticket image for code onto baseImage.
type TicketRenderer interface {
	Render(baseImage []byte, code string, geometry setting.RenderGeometry) ([]byte, error)
}

// TicketImage is one rendered ticket handed to a TicketArchiver.
type TicketImage struct {
	Code  string
	Image []byte
}

// TicketArchiver bundles the ticket images of one reservation into a single
// download.
type TicketArchiver interface {
	Archive(images []TicketImage, modified time.Time) ([]byte, error)
	FileName(sellerName, tableName string, count int) string
}

type EventType string

const (
	EventReservationCreated   EventType = "reservation.created"
	EventReservationPaid      EventType = "reservation.paid"
	EventReservationCancelled EventType = "reservation.cancelled"
	EventTicketCheckedIn      EventType = "ticket.checked_in"
)

// Event is published after the transaction that produced it has committed.
type Event struct {
	Type          EventType   `json:"type"`
	ReservationID uuid.UUID   `json:"reservation_id"`
	ReferenceNo   string      `json:"reference_no"`
	TicketCodes   []string    `json:"ticket_codes,omitempty"`
	SeatIDs       []uuid.UUID `json:"seat_ids,omitempty"`
	Actor         string      `json:"actor,omitempty"`
	OccurredAt    time.Time   `json:"occurred_at"`
}

type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}
