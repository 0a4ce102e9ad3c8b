//go:build unit || e2e

package builder

import (
	"fmt"
	"time"

	"qr-seat-reservation/internal/domain/reservation"
	reqdto "qr-seat-reservation/internal/handler/dto/request"
	"qr-seat-reservation/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationBuilder struct {
	ID          uuid.UUID
	ReferenceNo string
	SellerID    uuid.UUID
	SellerName  string
	TableID     uuid.UUID
	TableName   string
	SeatIDs     []uuid.UUID
	Class       string
	Description string
	Status      string
	CreatedAt   time.Time
}

func NewReservationBuilder() *ReservationBuilder {
	return &ReservationBuilder{
		ID:          uuid.New(),
		ReferenceNo: "RES-0A1B-2C3D-4E5F",
		SellerID:    uuid.New(),
		SellerName:  "Front Desk",
		TableID:     uuid.New(),
		TableName:   "T1",
		SeatIDs:     []uuid.UUID{uuid.New(), uuid.New()},
		Class:       reservation.TicketClassFull.String(),
		Description: "family booking",
		Status:      reservation.StatusPaymentPending.String(),
		CreatedAt:   time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func (r *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(r)
	return r
}

func (r *ReservationBuilder) BuildCreateRequestDTO() reqdto.CreateReservationRequest {
	seats := make([]reqdto.SeatItem, 0, len(r.SeatIDs))
	for _, id := range r.SeatIDs {
		seats = append(seats, reqdto.SeatItem{SeatID: id, TicketClass: r.Class})
	}
	return reqdto.CreateReservationRequest{
		SellerID:    r.SellerID,
		Seats:       seats,
		Description: r.Description,
	}
}

func (r *ReservationBuilder) BuildView() *queries.ReservationView {
	allocs := make([]queries.AllocationView, 0, len(r.SeatIDs))
	for i, id := range r.SeatIDs {
		allocs = append(allocs, queries.AllocationView{
			ID:         uuid.New(),
			SeatID:     id,
			SeatLabel:  fmt.Sprintf("S%d", i+1),
			TableID:    r.TableID,
			TableName:  r.TableName,
			TicketCode: fmt.Sprintf("TK%04d", i+1),
			Class:      r.Class,
			Status:     r.Status,
		})
	}
	return &queries.ReservationView{
		ID:          r.ID,
		ReferenceNo: r.ReferenceNo,
		SellerID:    r.SellerID,
		SellerName:  r.SellerName,
		Status:      r.Status,
		Description: r.Description,
		SeatCount:   len(allocs),
		Allocations: allocs,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.CreatedAt,
	}
}

// Fluent builder methods
func (r *ReservationBuilder) WithSeats(ids ...uuid.UUID) *ReservationBuilder {
	r.SeatIDs = ids
	return r
}

func (r *ReservationBuilder) WithClass(class string) *ReservationBuilder {
	r.Class = class
	return r
}

func (r *ReservationBuilder) AsPaid() *ReservationBuilder {
	r.Status = reservation.StatusPaid.String()
	return r
}
