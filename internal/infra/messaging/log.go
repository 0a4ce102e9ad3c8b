package messaging

import (
	"context"
	"log/slog"

	"qr-seat-reservation/internal/usecase/shared"
)

// LogPublisher is used when no broker is configured.
type LogPublisher struct{}

func NewLogPublisher() *LogPublisher {
	return &LogPublisher{}
}

func (LogPublisher) Publish(_ context.Context, event shared.Event) error {
	slog.Debug("event",
		"type", event.Type,
		"reservation_id", event.ReservationID,
		"reference_no", event.ReferenceNo,
		"ticket_codes", event.TicketCodes)
	return nil
}
