package commands

import (
	"context"
	"log/slog"
	"time"

	"qr-seat-reservation/internal/domain/reservation"
	"qr-seat-reservation/internal/domain/setting"
	"qr-seat-reservation/internal/domain/ticket"
	"qr-seat-reservation/internal/infra"
	"qr-seat-reservation/internal/pkg/errs"
	"qr-seat-reservation/internal/usecase/shared"

	"github.com/google/uuid"
)

// Command inputs are plain structs so the write side does not depend on
// handler DTOs.
type CreateTableParams struct {
	Name             string
	AvailableSeats   int
	UnavailableSeats int
	Description      string
}

type SeatRequest struct {
	SeatID uuid.UUID
	Class  reservation.TicketClass
}

type CreateReservationParams struct {
	SellerID    uuid.UUID
	Seats       []SeatRequest
	Description string
	Actor       string
}

type GenerateParams struct {
	Count     int
	Format    ticket.CodeFormat
	Geometry  setting.RenderGeometry
	BaseImage []byte
}

type CreateSellerParams struct {
	Name        string
	Address     string
	Email       string
	Phone       string
	Description string
}

// SettingPatch carries the fields of a settings update. Nil fields keep the
// stored value.
type SettingPatch struct {
	EventName      *string
	Venue          *string
	TableSize      *int
	SeatSize       *int
	NoOfColumns    *int
	FontSize       *int
	QRX            *int
	QRY            *int
	TextX          *int
	TextY          *int
	TicketPrefix   *string
	NoOfDigits     *int
	MaxNoOfTickets *int
	BaseImage      []byte
}

type BootstrapUser struct {
	Username string
	Password string
	Role     string
}

// takeTicket consumes the next available ticket inside tx.
func takeTicket(ctx context.Context, tx shared.Tx, now time.Time) (*ticket.Ticket, error) {
	t, err := tx.Tickets().LockNextAvailable(ctx)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Detailf(errs.ErrTicketPoolExhausted, "the ticket pool has no AVAILABLE ticket left")
		}
		return nil, shared.RepoErr(err, nil, "")
	}
	if err := t.Consume(now); err != nil {
		return nil, err
	}
	if err := tx.Tickets().Update(ctx, t); err != nil {
		return nil, shared.RepoErr(err, nil, "")
	}
	return t, nil
}

// publish runs after commit. A failed publish never undoes the operation.
func publish(ctx context.Context, publisher shared.EventPublisher, event shared.Event) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, event); err != nil {
		slog.Warn("failed to publish event",
			"type", event.Type,
			"reservation_id", event.ReservationID,
			"error", err.Error())
	}
}
