package shared

import (
	"context"
	"time"

	"qr-seat-reservation/internal/domain/reservation"
	"qr-seat-reservation/internal/domain/seating"
	"qr-seat-reservation/internal/domain/seller"
	"qr-seat-reservation/internal/domain/setting"
	"qr-seat-reservation/internal/domain/ticket"
	"qr-seat-reservation/internal/domain/user"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// Tx hands out repositories bound to one transaction.
type Tx interface {
	Tables() TableRepository
	Seats() SeatRepository
	Tickets() TicketRepository
	Reservations() ReservationRepository
	Sellers() SellerRepository
	Settings() SettingRepository
	Users() UserRepository
}

// Repositories report missing rows as infra.KindNotFound and unique index
// violations as infra.KindDuplicateKey.

type TableRepository interface {
	// Create stores the table together with all of its seats.
	Create(ctx context.Context, t *seating.Table) error
	FindByID(ctx context.Context, id uuid.UUID) (*seating.Table, error)
	// FindAll orders tables by name.
	FindAll(ctx context.Context) ([]*seating.Table, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type SeatRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*seating.Seat, error)
	// FindByIDForUpdate serializes writers of the seat until the transaction ends.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*seating.Seat, error)
	Update(ctx context.Context, s *seating.Seat) error
}

type TicketRepository interface {
	Create(ctx context.Context, t *ticket.Ticket) error
	FindByCode(ctx context.Context, code string) (*ticket.Ticket, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	// LockNextAvailable claims the AVAILABLE ticket with the lowest id that no
	// concurrent transaction holds. KindNotFound when there is none.
	LockNextAvailable(ctx context.Context) (*ticket.Ticket, error)
	Update(ctx context.Context, t *ticket.Ticket) error
	CountByStatus(ctx context.Context) (map[ticket.Status]int, error)
}

type ReservationRepository interface {
	// Create stores the reservation together with its allocations.
	Create(ctx context.Context, r *reservation.Reservation) error
	FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	FindByTicketCode(ctx context.Context, code string) (*reservation.Reservation, error)
	// FindAll orders reservations newest first.
	FindAll(ctx context.Context) ([]*reservation.Reservation, error)
	// FindByTableID returns reservations holding at least one seat of the table.
	FindByTableID(ctx context.Context, tableID uuid.UUID) ([]*reservation.Reservation, error)
	ExistsForSeat(ctx context.Context, seatID uuid.UUID) (bool, error)
	ExistsForSeller(ctx context.Context, sellerID uuid.UUID) (bool, error)
	// Update persists reservation and allocation status changes.
	Update(ctx context.Context, r *reservation.Reservation) error
	// Delete removes the reservation and its allocations.
	Delete(ctx context.Context, id uuid.UUID) error
}

type SellerRepository interface {
	Create(ctx context.Context, s *seller.Seller) error
	FindByID(ctx context.Context, id uuid.UUID) (*seller.Seller, error)
	// FindByIDForShare blocks deletion of the seller, not other readers.
	FindByIDForShare(ctx context.Context, id uuid.UUID) (*seller.Seller, error)
	// FindByIDForUpdate excludes every transaction holding the seller.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*seller.Seller, error)
	FindAll(ctx context.Context) ([]*seller.Seller, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type SettingRepository interface {
	Get(ctx context.Context) (*setting.Setting, error)
	Save(ctx context.Context, s *setting.Setting) error
}

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	FindByUsername(ctx context.Context, username user.Username) (*user.User, error)
	Count(ctx context.Context) (int, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}
