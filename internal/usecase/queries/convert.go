package queries

import (
	"context"

	"qr-seat-reservation/internal/domain/reservation"
	"qr-seat-reservation/internal/domain/seating"
	"qr-seat-reservation/internal/domain/seller"
	"qr-seat-reservation/internal/domain/setting"
	"qr-seat-reservation/internal/domain/ticket"
	"qr-seat-reservation/internal/domain/user"
	"qr-seat-reservation/internal/infra"
	"qr-seat-reservation/internal/usecase/shared"

	"github.com/google/uuid"
)

func countsView(c seating.Counts) CountsView {
	return CountsView{
		Available:   c.Available,
		Unavailable: c.Unavailable,
		Occupied:    c.Occupied,
		Total:       c.Total,
	}
}

func seatView(s *seating.Seat) SeatView {
	return SeatView{
		ID:        s.ID(),
		TableID:   s.TableID(),
		Label:     s.Label(),
		Position:  s.Position(),
		Status:    s.Status().String(),
		UpdatedAt: s.UpdatedAt(),
	}
}

func tableView(t *seating.Table, withSeats bool) *TableView {
	v := &TableView{
		ID:          t.ID(),
		Name:        t.Name(),
		Description: t.Description(),
		DisplayName: t.DisplayName(),
		Counts:      countsView(t.Counts()),
		CreatedAt:   t.CreatedAt(),
		UpdatedAt:   t.UpdatedAt(),
	}
	if withSeats {
		seats := t.Seats()
		v.Seats = make([]SeatView, 0, len(seats))
		for _, s := range seats {
			v.Seats = append(v.Seats, seatView(s))
		}
	}
	return v
}

func ticketView(t *ticket.Ticket) *TicketView {
	return &TicketView{
		ID:        t.ID(),
		Code:      t.Code(),
		Status:    t.Status().String(),
		CreatedAt: t.CreatedAt(),
		UpdatedAt: t.UpdatedAt(),
	}
}

func sellerView(s *seller.Seller) *SellerView {
	return &SellerView{
		ID:          s.ID(),
		Name:        s.Name(),
		Address:     s.Address(),
		Email:       s.Email(),
		Phone:       s.Phone(),
		Description: s.Description(),
		CreatedAt:   s.CreatedAt(),
		UpdatedAt:   s.UpdatedAt(),
	}
}

func settingView(s *setting.Setting) *SettingView {
	p := s.Params()
	return &SettingView{
		EventName:      p.EventName,
		Venue:          p.Venue,
		TableSize:      p.TableSize,
		SeatSize:       p.SeatSize,
		NoOfColumns:    p.NoOfColumns,
		FontSize:       p.FontSize,
		QRX:            p.QRX,
		QRY:            p.QRY,
		TextX:          p.TextX,
		TextY:          p.TextY,
		TicketPrefix:   p.TicketPrefix,
		NoOfDigits:     p.NoOfDigits,
		MaxNoOfTickets: p.MaxNoOfTickets,
		BaseImageBytes: len(p.BaseImage),
		UpdatedAt:      s.UpdatedAt(),
	}
}

func userView(u *user.User) *AuthorizedUserView {
	return &AuthorizedUserView{
		ID:        u.ID(),
		Username:  u.Username().Value(),
		Role:      u.Role().String(),
		LastLogin: u.LastLogin(),
		IsActive:  u.IsActive(),
	}
}

// resolver resolves seats, tables and sellers referenced by reservations,
// caching them for the lifetime of one read transaction.
type resolver struct {
	tx      shared.Tx
	seats   map[uuid.UUID]*seating.Seat
	tables  map[uuid.UUID]*seating.Table
	sellers map[uuid.UUID]*seller.Seller
}

func newResolver(tx shared.Tx) *resolver {
	return &resolver{
		tx:      tx,
		seats:   make(map[uuid.UUID]*seating.Seat),
		tables:  make(map[uuid.UUID]*seating.Table),
		sellers: make(map[uuid.UUID]*seller.Seller),
	}
}

func (r *resolver) seat(ctx context.Context, id uuid.UUID) (*seating.Seat, *seating.Table, error) {
	s, ok := r.seats[id]
	if !ok {
		var err error
		s, err = r.tx.Seats().FindByID(ctx, id)
		if err != nil {
			return nil, nil, err
		}
		r.seats[id] = s
	}

	t, ok := r.tables[s.TableID()]
	if !ok {
		var err error
		t, err = r.tx.Tables().FindByID(ctx, s.TableID())
		if err != nil {
			return nil, nil, err
		}
		r.tables[t.ID()] = t
	}
	return s, t, nil
}

// sellerName tolerates a missing seller so that listings never fail on one row.
func (r *resolver) sellerName(ctx context.Context, id uuid.UUID) (string, error) {
	s, ok := r.sellers[id]
	if !ok {
		var err error
		s, err = r.tx.Sellers().FindByID(ctx, id)
		if infra.IsKind(err, infra.KindNotFound) {
			return "", nil
		}
		if err != nil {
			return "", err
		}
		r.sellers[id] = s
	}
	return s.Name(), nil
}

func (r *resolver) reservationView(ctx context.Context, res *reservation.Reservation) (*ReservationView, error) {
	sellerName, err := r.sellerName(ctx, res.SellerID())
	if err != nil {
		return nil, err
	}

	allocations := res.Allocations()
	v := &ReservationView{
		ID:          res.ID(),
		ReferenceNo: res.ReferenceNo(),
		SellerID:    res.SellerID(),
		SellerName:  sellerName,
		Status:      res.Status().String(),
		Description: res.Description(),
		SeatCount:   len(allocations),
		Allocations: make([]AllocationView, 0, len(allocations)),
		CreatedBy:   res.CreatedBy(),
		UpdatedBy:   res.UpdatedBy(),
		CreatedAt:   res.CreatedAt(),
		UpdatedAt:   res.UpdatedAt(),
	}
	for _, a := range allocations {
		s, t, err := r.seat(ctx, a.SeatID())
		if err != nil {
			return nil, err
		}
		v.Allocations = append(v.Allocations, AllocationView{
			ID:         a.ID(),
			SeatID:     s.ID(),
			SeatLabel:  s.Label(),
			TableID:    t.ID(),
			TableName:  t.Name(),
			TicketCode: a.TicketCode(),
			Class:      a.Class().String(),
			Status:     a.Status().String(),
		})
	}
	return v, nil
}

func (r *resolver) reservationViews(ctx context.Context, list []*reservation.Reservation) ([]*ReservationView, error) {
	views := make([]*ReservationView, 0, len(list))
	for _, res := range list {
		v, err := r.reservationView(ctx, res)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}
