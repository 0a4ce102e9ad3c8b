//go:build unit || e2e

package builder

import (
	"fmt"
	"time"

	"qr-seat-reservation/internal/domain/seating"
	reqdto "qr-seat-reservation/internal/handler/dto/request"
	"qr-seat-reservation/internal/usecase/queries"

	"github.com/google/uuid"
)

type TableBuilder struct {
	ID               uuid.UUID
	Name             string
	AvailableSeats   int
	UnavailableSeats int
	Description      string
	CreatedAt        time.Time
}

func NewTableBuilder() *TableBuilder {
	return &TableBuilder{
		ID:             uuid.New(),
		Name:           "T1",
		AvailableSeats: 10,
		Description:    "near the stage",
		CreatedAt:      time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (b *TableBuilder) With(mutate func(*TableBuilder)) *TableBuilder {
	mutate(b)
	return b
}

func (b *TableBuilder) BuildCreateRequestDTO() reqdto.CreateTableRequest {
	available := b.AvailableSeats
	return reqdto.CreateTableRequest{
		Name:             b.Name,
		AvailableSeats:   &available,
		UnavailableSeats: b.UnavailableSeats,
		Description:      b.Description,
	}
}

func (b *TableBuilder) BuildDomain() (*seating.Table, error) {
	return seating.NewTable(b.Name, b.AvailableSeats, b.UnavailableSeats, b.Description, b.CreatedAt)
}

func (b *TableBuilder) BuildView() *queries.TableView {
	total := b.AvailableSeats + b.UnavailableSeats
	seats := make([]queries.SeatView, 0, total)
	for i := range total {
		status := seating.SeatAvailable
		if i >= b.AvailableSeats {
			status = seating.SeatUnavailable
		}
		seats = append(seats, queries.SeatView{
			ID:        uuid.New(),
			TableID:   b.ID,
			Label:     fmt.Sprintf("S%d", i+1),
			Position:  i + 1,
			Status:    status.String(),
			UpdatedAt: b.CreatedAt,
		})
	}
	return &queries.TableView{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,
		DisplayName: fmt.Sprintf("%s - Available Seats: %d / %d", b.Name, b.AvailableSeats, total),
		Counts: queries.CountsView{
			Available:   b.AvailableSeats,
			Unavailable: b.UnavailableSeats,
			Total:       total,
		},
		Seats:     seats,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.CreatedAt,
	}
}
