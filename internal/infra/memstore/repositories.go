package memstore

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

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

var _ shared.Tx = (*Tx)(nil)

func (t *Tx) Tables() shared.TableRepository             { return tableRepository{t} }
func (t *Tx) Seats() shared.SeatRepository               { return seatRepository{t} }
func (t *Tx) Tickets() shared.TicketRepository           { return ticketRepository{t} }
func (t *Tx) Reservations() shared.ReservationRepository { return reservationRepository{t} }
func (t *Tx) Sellers() shared.SellerRepository           { return sellerRepository{t} }
func (t *Tx) Settings() shared.SettingRepository         { return settingRepository{t} }
func (t *Tx) Users() shared.UserRepository               { return userRepository{t} }

func notFound(what string) error {
	return infra.WrapRepoErr(what+" not found", nil, infra.KindNotFound)
}

func stale(index, key string) error {
	return infra.WrapRepoErr(fmt.Sprintf("%s %q was taken by a concurrent transaction", index, key), nil, infra.KindConflict)
}

type tableRepository struct{ tx *Tx }

func (r tableRepository) Create(_ context.Context, t *seating.Table) error {
	if err := r.tx.writable("create table"); err != nil {
		return err
	}
	seats := t.Seats()
	ids := make([]uuid.UUID, 0, len(seats))
	for _, s := range seats {
		r.tx.seats.put(fromSeat(s))
		ids = append(ids, s.ID())
	}
	r.tx.tables.put(tableRecord{
		ID:          t.ID(),
		Name:        t.Name(),
		Description: t.Description(),
		SeatIDs:     ids,
		CreatedAt:   t.CreatedAt(),
		UpdatedAt:   t.UpdatedAt(),
	})
	return nil
}

func (r tableRepository) FindByID(_ context.Context, id uuid.UUID) (*seating.Table, error) {
	rec, ok := r.tx.tables.get(id)
	if !ok {
		return nil, notFound("table")
	}
	return r.toDomain(rec)
}

func (r tableRepository) FindAll(_ context.Context) ([]*seating.Table, error) {
	recs := r.tx.tables.scan(func(tableRecord) bool { return true })
	slices.SortFunc(recs, func(a, b tableRecord) int { return strings.Compare(a.Name, b.Name) })

	tables := make([]*seating.Table, 0, len(recs))
	for _, rec := range recs {
		t, err := r.toDomain(rec)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, nil
}

func (r tableRepository) ExistsByName(_ context.Context, name string) (bool, error) {
	_, ok := r.tx.tables.lookup("table name", name)
	return ok, nil
}

func (r tableRepository) Delete(_ context.Context, id uuid.UUID) error {
	if err := r.tx.writable("delete table"); err != nil {
		return err
	}
	rec, ok := r.tx.tables.get(id)
	if !ok {
		return notFound("table")
	}
	for _, seatID := range rec.SeatIDs {
		r.tx.seats.del(seatID)
	}
	r.tx.tables.del(id)
	return nil
}

func (r tableRepository) toDomain(rec tableRecord) (*seating.Table, error) {
	seats := make([]*seating.Seat, 0, len(rec.SeatIDs))
	for _, id := range rec.SeatIDs {
		s, ok := r.tx.seats.get(id)
		if !ok {
			return nil, infra.WrapRepoErr("seat "+id.String()+" of table "+rec.Name+" is missing", nil)
		}
		seats = append(seats, s.toDomain())
	}
	return seating.ReconstructTable(rec.ID, rec.Name, rec.Description, seats, rec.CreatedAt, rec.UpdatedAt), nil
}

type seatRepository struct{ tx *Tx }

func (r seatRepository) FindByID(_ context.Context, id uuid.UUID) (*seating.Seat, error) {
	rec, ok := r.tx.seats.get(id)
	if !ok {
		return nil, notFound("seat")
	}
	return rec.toDomain(), nil
}

func (r seatRepository) FindByIDForUpdate(_ context.Context, id uuid.UUID) (*seating.Seat, error) {
	rec, ok := r.tx.seats.lock(id)
	if !ok {
		return nil, notFound("seat")
	}
	return rec.toDomain(), nil
}

func (r seatRepository) Update(_ context.Context, s *seating.Seat) error {
	if err := r.tx.writable("update seat"); err != nil {
		return err
	}
	if _, ok := r.tx.seats.get(s.ID()); !ok {
		return notFound("seat")
	}
	r.tx.seats.put(fromSeat(s))
	return nil
}

type ticketRepository struct{ tx *Tx }

func (r ticketRepository) Create(_ context.Context, t *ticket.Ticket) error {
	if err := r.tx.writable("create ticket"); err != nil {
		return err
	}
	if _, taken := r.tx.tickets.lookup("ticket code", t.Code()); taken {
		return duplicate("ticket code", t.Code())
	}
	r.tx.tickets.put(fromTicket(t))
	return nil
}

func (r ticketRepository) FindByCode(_ context.Context, code string) (*ticket.Ticket, error) {
	rec, ok := r.tx.tickets.lookup("ticket code", code)
	if !ok {
		return nil, notFound("ticket")
	}
	return rec.toDomain(), nil
}

func (r ticketRepository) ExistsByCode(_ context.Context, code string) (bool, error) {
	_, ok := r.tx.tickets.lookup("ticket code", code)
	return ok, nil
}

// LockNextAvailable skips tickets other open transactions have claimed and
// tickets committed as USED since the scan. Commit-time validation still
// guards the one it returns. When every AVAILABLE ticket is claimed elsewhere
// the result is a conflict, since a claimer may yet roll back.
func (r ticketRepository) LockNextAvailable(_ context.Context) (*ticket.Ticket, error) {
	available := r.tx.tickets.scan(func(rec ticketRecord) bool { return rec.Status == ticket.StatusAvailable })
	if len(available) == 0 {
		return nil, notFound("available ticket")
	}
	slices.SortFunc(available, byID[ticketRecord])
	for _, next := range available {
		if !r.tx.claim(next.ID) {
			continue
		}
		current, ok := r.tx.tickets.get(next.ID)
		if !ok || current.Status != ticket.StatusAvailable {
			continue
		}
		rec, _ := r.tx.tickets.lock(next.ID)
		return rec.toDomain(), nil
	}
	return nil, infra.WrapRepoErr("every available ticket is claimed by another transaction", nil, infra.KindConflict)
}

func (r ticketRepository) Update(_ context.Context, t *ticket.Ticket) error {
	if err := r.tx.writable("update ticket"); err != nil {
		return err
	}
	if _, ok := r.tx.tickets.get(t.ID()); !ok {
		return notFound("ticket")
	}
	r.tx.tickets.put(fromTicket(t))
	return nil
}

func (r ticketRepository) CountByStatus(_ context.Context) (map[ticket.Status]int, error) {
	counts := map[ticket.Status]int{
		ticket.StatusAvailable: 0,
		ticket.StatusUsed:      0,
	}
	for _, rec := range r.tx.tickets.scan(func(ticketRecord) bool { return true }) {
		counts[rec.Status]++
	}
	return counts, nil
}

type reservationRepository struct{ tx *Tx }

func (r reservationRepository) Create(_ context.Context, res *reservation.Reservation) error {
	if err := r.tx.writable("create reservation"); err != nil {
		return err
	}
	rec := fromReservation(res)
	if _, taken := r.tx.reservations.lookup("reference no", rec.ReferenceNo); taken {
		return duplicate("reference no", rec.ReferenceNo)
	}
	// seats and tickets were read AVAILABLE by this transaction, so a committed
	// allocation holding either means those reads are stale
	for _, a := range rec.Allocations {
		if _, taken := r.tx.reservations.lookup("allocation seat", a.SeatID.String()); taken {
			return stale("allocation seat", a.SeatID.String())
		}
		if _, taken := r.tx.reservations.lookup("allocation ticket code", a.TicketCode); taken {
			return stale("allocation ticket code", a.TicketCode)
		}
	}
	r.tx.reservations.put(rec)
	return nil
}

func (r reservationRepository) FindByID(_ context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	rec, ok := r.tx.reservations.get(id)
	if !ok {
		return nil, notFound("reservation")
	}
	return rec.toDomain(), nil
}

func (r reservationRepository) FindByIDForUpdate(_ context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	rec, ok := r.tx.reservations.lock(id)
	if !ok {
		return nil, notFound("reservation")
	}
	return rec.toDomain(), nil
}

// FindByTicketCode goes through the allocation index rather than scanning.
func (r reservationRepository) FindByTicketCode(_ context.Context, code string) (*reservation.Reservation, error) {
	rec, ok := r.tx.reservations.lookup("allocation ticket code", code)
	if !ok {
		return nil, notFound("reservation for ticket " + code)
	}
	return rec.toDomain(), nil
}

func (r reservationRepository) FindAll(_ context.Context) ([]*reservation.Reservation, error) {
	recs := r.tx.reservations.scan(func(reservationRecord) bool { return true })
	return newestFirst(recs), nil
}

func (r reservationRepository) FindByTableID(_ context.Context, tableID uuid.UUID) ([]*reservation.Reservation, error) {
	seatIDs := make(map[uuid.UUID]struct{})
	for _, s := range r.tx.seats.scan(func(rec seatRecord) bool { return rec.TableID == tableID }) {
		seatIDs[s.ID] = struct{}{}
	}
	recs := r.tx.reservations.scan(func(rec reservationRecord) bool {
		return slices.ContainsFunc(rec.Allocations, func(a allocationRecord) bool {
			_, ok := seatIDs[a.SeatID]
			return ok
		})
	})
	return newestFirst(recs), nil
}

func (r reservationRepository) ExistsForSeat(_ context.Context, seatID uuid.UUID) (bool, error) {
	rec, ok := r.tx.reservations.lookup("allocation seat", seatID.String())
	return ok && rec.holdsSeat(seatID), nil
}

func (r reservationRepository) ExistsForSeller(_ context.Context, sellerID uuid.UUID) (bool, error) {
	recs := r.tx.reservations.scan(func(rec reservationRecord) bool { return rec.SellerID == sellerID })
	return len(recs) > 0, nil
}

func (r reservationRepository) Update(_ context.Context, res *reservation.Reservation) error {
	if err := r.tx.writable("update reservation"); err != nil {
		return err
	}
	if _, ok := r.tx.reservations.get(res.ID()); !ok {
		return notFound("reservation")
	}
	r.tx.reservations.put(fromReservation(res))
	return nil
}

func (r reservationRepository) Delete(_ context.Context, id uuid.UUID) error {
	if err := r.tx.writable("delete reservation"); err != nil {
		return err
	}
	if _, ok := r.tx.reservations.get(id); !ok {
		return notFound("reservation")
	}
	r.tx.reservations.del(id)
	return nil
}

func newestFirst(recs []reservationRecord) []*reservation.Reservation {
	slices.SortFunc(recs, func(a, b reservationRecord) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return byID(b, a)
	})
	out := make([]*reservation.Reservation, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec.toDomain())
	}
	return out
}

type sellerRepository struct{ tx *Tx }

func (r sellerRepository) Create(_ context.Context, s *seller.Seller) error {
	if err := r.tx.writable("create seller"); err != nil {
		return err
	}
	r.tx.sellers.put(fromSeller(s))
	return nil
}

func (r sellerRepository) FindByID(_ context.Context, id uuid.UUID) (*seller.Seller, error) {
	rec, ok := r.tx.sellers.get(id)
	if !ok {
		return nil, notFound("seller")
	}
	return rec.toDomain(), nil
}

func (r sellerRepository) FindByIDForShare(_ context.Context, id uuid.UUID) (*seller.Seller, error) {
	rec, ok := r.tx.sellers.share(id)
	if !ok {
		return nil, notFound("seller")
	}
	return rec.toDomain(), nil
}

func (r sellerRepository) FindByIDForUpdate(_ context.Context, id uuid.UUID) (*seller.Seller, error) {
	rec, ok := r.tx.sellers.lock(id)
	if !ok {
		return nil, notFound("seller")
	}
	return rec.toDomain(), nil
}

func (r sellerRepository) FindAll(_ context.Context) ([]*seller.Seller, error) {
	recs := r.tx.sellers.scan(func(sellerRecord) bool { return true })
	slices.SortFunc(recs, func(a, b sellerRecord) int { return strings.Compare(a.Name, b.Name) })
	out := make([]*seller.Seller, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec.toDomain())
	}
	return out, nil
}

func (r sellerRepository) Delete(_ context.Context, id uuid.UUID) error {
	if err := r.tx.writable("delete seller"); err != nil {
		return err
	}
	if _, ok := r.tx.sellers.get(id); !ok {
		return notFound("seller")
	}
	r.tx.sellers.del(id)
	return nil
}

type settingRepository struct{ tx *Tx }

func (r settingRepository) Get(_ context.Context) (*setting.Setting, error) {
	rec, ok := r.tx.settings.get(uuid.Nil)
	if !ok {
		return nil, notFound("setting")
	}
	return rec.toDomain()
}

func (r settingRepository) Save(_ context.Context, s *setting.Setting) error {
	if err := r.tx.writable("save setting"); err != nil {
		return err
	}
	r.tx.settings.put(fromSetting(s))
	return nil
}

type userRepository struct{ tx *Tx }

func (r userRepository) Create(_ context.Context, u *user.User) error {
	if err := r.tx.writable("create user"); err != nil {
		return err
	}
	if _, taken := r.tx.users.lookup("username", u.Username().Value()); taken {
		return duplicate("username", u.Username().Value())
	}
	r.tx.users.put(fromUser(u))
	return nil
}

func (r userRepository) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	rec, ok := r.tx.users.get(id)
	if !ok {
		return nil, notFound("user")
	}
	return rec.toDomain()
}

func (r userRepository) FindByUsername(_ context.Context, username user.Username) (*user.User, error) {
	rec, ok := r.tx.users.lookup("username", username.Value())
	if !ok {
		return nil, notFound("user")
	}
	return rec.toDomain()
}

func (r userRepository) Count(_ context.Context) (int, error) {
	return len(r.tx.users.scan(func(userRecord) bool { return true })), nil
}

func (r userRepository) UpdateLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	if err := r.tx.writable("update last login"); err != nil {
		return err
	}
	rec, ok := r.tx.users.get(id)
	if !ok {
		return notFound("user")
	}
	rec.LastLogin = &at
	rec.UpdatedAt = at
	r.tx.users.put(rec)
	return nil
}
