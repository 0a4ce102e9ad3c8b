package memstore

import (
	"slices"
	"time"

	"qr-seat-reservation/internal/domain/reservation"
	"qr-seat-reservation/internal/domain/seating"
	"qr-seat-reservation/internal/domain/seller"
	"qr-seat-reservation/internal/domain/setting"
	"qr-seat-reservation/internal/domain/ticket"
	"qr-seat-reservation/internal/domain/user"
	"qr-seat-reservation/internal/infra"

	"github.com/google/uuid"
)

// Records are immutable snapshots; domain objects never alias them.

type tableRecord struct {
	ID          uuid.UUID
	Name        string
	Description string
	SeatIDs     []uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (r tableRecord) key() uuid.UUID { return r.ID }

type seatRecord struct {
	ID        uuid.UUID
	TableID   uuid.UUID
	Label     string
	Position  int
	Status    seating.SeatStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (r seatRecord) key() uuid.UUID { return r.ID }

type ticketRecord struct {
	ID        uuid.UUID
	Code      string
	Status    ticket.Status
	Image     []byte
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (r ticketRecord) key() uuid.UUID { return r.ID }

type allocationRecord struct {
	ID         uuid.UUID
	SeatID     uuid.UUID
	TicketCode string
	Class      reservation.TicketClass
	Status     reservation.Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type reservationRecord struct {
	ID          uuid.UUID
	ReferenceNo string
	SellerID    uuid.UUID
	Status      reservation.Status
	Description string
	Allocations []allocationRecord
	CreatedBy   string
	UpdatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (r reservationRecord) key() uuid.UUID { return r.ID }

type sellerRecord struct {
	ID          uuid.UUID
	Name        string
	Address     string
	Email       string
	Phone       string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (r sellerRecord) key() uuid.UUID { return r.ID }

type settingRecord struct {
	EventName      string
	Venue          string
	Layout         setting.Layout
	Render         setting.RenderGeometry
	TicketPrefix   string
	NoOfDigits     int
	MaxNoOfTickets int
	BaseImage      []byte
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// The settings row is a singleton.
func (r settingRecord) key() uuid.UUID { return uuid.Nil }

type userRecord struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
	Role         user.Role
	LastLogin    *time.Time
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (r userRecord) key() uuid.UUID { return r.ID }

func fromSeat(s *seating.Seat) seatRecord {
	return seatRecord{
		ID:        s.ID(),
		TableID:   s.TableID(),
		Label:     s.Label(),
		Position:  s.Position(),
		Status:    s.Status(),
		CreatedAt: s.CreatedAt(),
		UpdatedAt: s.UpdatedAt(),
	}
}

func (r seatRecord) toDomain() *seating.Seat {
	return seating.ReconstructSeat(r.ID, r.TableID, r.Label, r.Position, r.Status, r.CreatedAt, r.UpdatedAt)
}

func fromTicket(t *ticket.Ticket) ticketRecord {
	return ticketRecord{
		ID:        t.ID(),
		Code:      t.Code(),
		Status:    t.Status(),
		Image:     t.Image(),
		CreatedAt: t.CreatedAt(),
		UpdatedAt: t.UpdatedAt(),
	}
}

func (r ticketRecord) toDomain() *ticket.Ticket {
	return ticket.ReconstructTicket(r.ID, r.Code, r.Status, r.Image, r.CreatedAt, r.UpdatedAt)
}

func fromReservation(res *reservation.Reservation) reservationRecord {
	allocations := make([]allocationRecord, 0, res.AllocationCount())
	for _, a := range res.Allocations() {
		allocations = append(allocations, allocationRecord{
			ID:         a.ID(),
			SeatID:     a.SeatID(),
			TicketCode: a.TicketCode(),
			Class:      a.Class(),
			Status:     a.Status(),
			CreatedAt:  a.CreatedAt(),
			UpdatedAt:  a.UpdatedAt(),
		})
	}
	return reservationRecord{
		ID:          res.ID(),
		ReferenceNo: res.ReferenceNo(),
		SellerID:    res.SellerID(),
		Status:      res.Status(),
		Description: res.Description(),
		Allocations: allocations,
		CreatedBy:   res.CreatedBy(),
		UpdatedBy:   res.UpdatedBy(),
		CreatedAt:   res.CreatedAt(),
		UpdatedAt:   res.UpdatedAt(),
	}
}

func (r reservationRecord) toDomain() *reservation.Reservation {
	allocations := make([]*reservation.Allocation, 0, len(r.Allocations))
	for _, a := range r.Allocations {
		allocations = append(allocations, reservation.ReconstructAllocation(
			a.ID, r.ID, a.SeatID, a.TicketCode, a.Class, a.Status, a.CreatedAt, a.UpdatedAt,
		))
	}
	return reservation.ReconstructReservation(
		r.ID, r.ReferenceNo, r.SellerID, r.Status, r.Description, allocations,
		r.CreatedBy, r.UpdatedBy, r.CreatedAt, r.UpdatedAt,
	)
}

func (r reservationRecord) holdsSeat(seatID uuid.UUID) bool {
	return slices.ContainsFunc(r.Allocations, func(a allocationRecord) bool { return a.SeatID == seatID })
}

func fromSeller(s *seller.Seller) sellerRecord {
	return sellerRecord{
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

func (r sellerRecord) toDomain() *seller.Seller {
	return seller.ReconstructSeller(r.ID, r.Name, r.Address, r.Email, r.Phone, r.Description, r.CreatedAt, r.UpdatedAt)
}

func fromSetting(s *setting.Setting) settingRecord {
	return settingRecord{
		EventName:      s.EventName(),
		Venue:          s.Venue(),
		Layout:         s.Layout(),
		Render:         s.Render(),
		TicketPrefix:   s.CodeFormat().Prefix(),
		NoOfDigits:     s.CodeFormat().Digits(),
		MaxNoOfTickets: s.MaxNoOfTickets(),
		BaseImage:      s.BaseImage(),
		CreatedAt:      s.CreatedAt(),
		UpdatedAt:      s.UpdatedAt(),
	}
}

func (r settingRecord) toDomain() (*setting.Setting, error) {
	format, err := ticket.NewCodeFormat(r.TicketPrefix, r.NoOfDigits)
	if err != nil {
		return nil, infra.WrapRepoErr("stored ticket code format is invalid", err)
	}
	return setting.ReconstructSetting(
		r.EventName, r.Venue, r.Layout, r.Render, format, r.MaxNoOfTickets, r.BaseImage, r.CreatedAt, r.UpdatedAt,
	), nil
}

func fromUser(u *user.User) userRecord {
	return userRecord{
		ID:           u.ID(),
		Username:     u.Username().Value(),
		PasswordHash: u.PasswordHash(),
		Role:         u.Role(),
		LastLogin:    u.LastLogin(),
		IsActive:     u.IsActive(),
		CreatedAt:    u.CreatedAt(),
		UpdatedAt:    u.UpdatedAt(),
	}
}

func (r userRecord) toDomain() (*user.User, error) {
	username, err := user.NewUsername(r.Username)
	if err != nil {
		return nil, infra.WrapRepoErr("stored username is invalid", err)
	}
	return user.ReconstructUser(r.ID, username, r.PasswordHash, r.Role, r.LastLogin, r.IsActive, r.CreatedAt, r.UpdatedAt), nil
}
