// Package memstore is an in-process store with optimistic transactions.
//
// A transaction reads committed rows without holding any lock and keeps its
// writes in a private overlay. Commit takes the store mutex, checks that no
// row the transaction wrote or locked has changed since it was first read,
// checks unique indexes, and applies the overlay. A failed check returns an
// infra.KindConflict error and the caller retries the whole transaction.
//
// Rows carry two counters. version moves on every write. shares moves when a
// transaction that share-locked the row commits, so a writer or exclusive
// locker of that row conflicts with it while share lockers do not conflict
// with each other.
//
// Tickets being claimed by open transactions are tracked separately so that
// concurrent claimers pick different tickets, the way SKIP LOCKED does.
package memstore

import (
	"bytes"
	"fmt"
	"slices"
	"sync"

	"qr-seat-reservation/internal/infra"
	"qr-seat-reservation/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrTxClosed = errs.New("memstore: transaction already closed")

type record interface {
	key() uuid.UUID
}

type entry[T record] struct {
	version uint64
	shares  uint64
	row     T
}

type stamp struct {
	version uint64
	shares  uint64
}

type uniqueIndex[T record] struct {
	name string
	keys func(T) []string
	ids  map[string]uuid.UUID
}

func unique[T record](name string, keys func(T) []string) *uniqueIndex[T] {
	return &uniqueIndex[T]{name: name, keys: keys, ids: make(map[string]uuid.UUID)}
}

type collection[T record] struct {
	name    string
	rows    map[uuid.UUID]entry[T]
	indexes map[string]*uniqueIndex[T]
}

func newCollection[T record](name string, indexes ...*uniqueIndex[T]) *collection[T] {
	c := &collection[T]{
		name:    name,
		rows:    make(map[uuid.UUID]entry[T]),
		indexes: make(map[string]*uniqueIndex[T], len(indexes)),
	}
	for _, idx := range indexes {
		c.indexes[idx.name] = idx
	}
	return c
}

type Store struct {
	mu      sync.RWMutex
	version uint64

	claimMu sync.Mutex
	claims  map[uuid.UUID]*Tx

	tables       *collection[tableRecord]
	seats        *collection[seatRecord]
	tickets      *collection[ticketRecord]
	reservations *collection[reservationRecord]
	sellers      *collection[sellerRecord]
	settings     *collection[settingRecord]
	users        *collection[userRecord]
}

func New() *Store {
	return &Store{
		claims: make(map[uuid.UUID]*Tx),
		tables: newCollection("table",
			unique("table name", func(r tableRecord) []string { return []string{r.Name} })),
		seats: newCollection[seatRecord]("seat"),
		tickets: newCollection("ticket",
			unique("ticket code", func(r ticketRecord) []string { return []string{r.Code} })),
		reservations: newCollection("reservation",
			unique("reference no", func(r reservationRecord) []string { return []string{r.ReferenceNo} }),
			unique("allocation ticket code", func(r reservationRecord) []string {
				keys := make([]string, 0, len(r.Allocations))
				for _, a := range r.Allocations {
					keys = append(keys, a.TicketCode)
				}
				return keys
			}),
			unique("allocation seat", func(r reservationRecord) []string {
				keys := make([]string, 0, len(r.Allocations))
				for _, a := range r.Allocations {
					keys = append(keys, a.SeatID.String())
				}
				return keys
			})),
		sellers:  newCollection[sellerRecord]("seller"),
		settings: newCollection[settingRecord]("setting"),
		users: newCollection("user",
			unique("username", func(r userRecord) []string { return []string{r.Username} })),
	}
}

// Begin starts a transaction. A read-only transaction rejects writes.
func (s *Store) Begin(readOnly bool) *Tx {
	tx := &Tx{store: s, readOnly: readOnly}
	tx.tables = newView(tx, s.tables)
	tx.seats = newView(tx, s.seats)
	tx.tickets = newView(tx, s.tickets)
	tx.reservations = newView(tx, s.reservations)
	tx.sellers = newView(tx, s.sellers)
	tx.settings = newView(tx, s.settings)
	tx.users = newView(tx, s.users)
	tx.views = []txView{tx.tables, tx.seats, tx.tickets, tx.reservations, tx.sellers, tx.settings, tx.users}
	return tx
}

type txView interface {
	dirty() bool
	validate() error
	apply(version uint64)
}

type Tx struct {
	store    *Store
	readOnly bool
	closed   bool
	claimed  []uuid.UUID

	tables       *view[tableRecord]
	seats        *view[seatRecord]
	tickets      *view[ticketRecord]
	reservations *view[reservationRecord]
	sellers      *view[sellerRecord]
	settings     *view[settingRecord]
	users        *view[userRecord]
	views        []txView
}

// Commit validates and applies the overlay. A transaction without writes
// commits trivially.
func (t *Tx) Commit() error {
	if t.closed {
		return ErrTxClosed
	}
	t.closed = true
	defer t.releaseClaims()

	dirty := false
	for _, v := range t.views {
		if v.dirty() {
			dirty = true
			break
		}
	}
	if !dirty {
		return nil
	}

	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	for _, v := range t.views {
		if err := v.validate(); err != nil {
			return err
		}
	}
	t.store.version++
	for _, v := range t.views {
		v.apply(t.store.version)
	}
	return nil
}

// Rollback discards the overlay.
func (t *Tx) Rollback() {
	t.closed = true
	t.releaseClaims()
}

// claim reserves id for this transaction until it ends. It reports false
// when another open transaction holds the claim.
func (t *Tx) claim(id uuid.UUID) bool {
	t.store.claimMu.Lock()
	defer t.store.claimMu.Unlock()

	if owner, ok := t.store.claims[id]; ok {
		return owner == t
	}
	t.store.claims[id] = t
	t.claimed = append(t.claimed, id)
	return true
}

func (t *Tx) releaseClaims() {
	if len(t.claimed) == 0 {
		return
	}
	t.store.claimMu.Lock()
	for _, id := range t.claimed {
		if t.store.claims[id] == t {
			delete(t.store.claims, id)
		}
	}
	t.store.claimMu.Unlock()
	t.claimed = nil
}

func (t *Tx) writable(what string) error {
	if t.closed {
		return ErrTxClosed
	}
	if t.readOnly {
		return infra.WrapRepoErr("cannot "+what+" in a read-only transaction", nil)
	}
	return nil
}

type view[T record] struct {
	tx     *Tx
	c      *collection[T]
	seen   map[uuid.UUID]stamp
	locked map[uuid.UUID]struct{}
	shared map[uuid.UUID]struct{}
	writes map[uuid.UUID]*T
}

func newView[T record](tx *Tx, c *collection[T]) *view[T] {
	return &view[T]{
		tx:     tx,
		c:      c,
		seen:   make(map[uuid.UUID]stamp),
		locked: make(map[uuid.UUID]struct{}),
		shared: make(map[uuid.UUID]struct{}),
		writes: make(map[uuid.UUID]*T),
	}
}

// observe keeps the first stamp this transaction saw for id.
func (v *view[T]) observe(id uuid.UUID, e entry[T]) {
	if _, ok := v.seen[id]; !ok {
		v.seen[id] = stamp{version: e.version, shares: e.shares}
	}
}

func (v *view[T]) get(id uuid.UUID) (T, bool) {
	var zero T
	if w, ok := v.writes[id]; ok {
		if w == nil {
			return zero, false
		}
		return *w, true
	}

	v.tx.store.mu.RLock()
	e, ok := v.c.rows[id]
	v.tx.store.mu.RUnlock()

	v.observe(id, e)
	if !ok {
		return zero, false
	}
	return e.row, true
}

// lock reads id and makes commit fail if anyone else changes or share-locks
// it meanwhile.
func (v *view[T]) lock(id uuid.UUID) (T, bool) {
	row, ok := v.get(id)
	if ok {
		v.locked[id] = struct{}{}
	}
	return row, ok
}

// share reads id and makes commit fail if anyone else changes it meanwhile.
// Committing bumps the row's share counter.
func (v *view[T]) share(id uuid.UUID) (T, bool) {
	row, ok := v.get(id)
	if ok {
		v.shared[id] = struct{}{}
	}
	return row, ok
}

func (v *view[T]) scan(match func(T) bool) []T {
	out := make([]T, 0)

	v.tx.store.mu.RLock()
	for id, e := range v.c.rows {
		if _, ok := v.writes[id]; ok {
			continue
		}
		if match(e.row) {
			v.observe(id, e)
			out = append(out, e.row)
		}
	}
	v.tx.store.mu.RUnlock()

	for _, w := range v.writes {
		if w != nil && match(*w) {
			out = append(out, *w)
		}
	}
	return out
}

func (v *view[T]) lookup(index, key string) (T, bool) {
	var zero T
	idx := v.c.indexes[index]

	for _, w := range v.writes {
		if w != nil && slices.Contains(idx.keys(*w), key) {
			return *w, true
		}
	}

	v.tx.store.mu.RLock()
	id, ok := idx.ids[key]
	e := v.c.rows[id]
	v.tx.store.mu.RUnlock()

	if !ok {
		return zero, false
	}
	if _, overwritten := v.writes[id]; overwritten {
		return zero, false
	}
	v.observe(id, e)
	return e.row, true
}

func (v *view[T]) put(row T) {
	id := row.key()
	if _, ok := v.seen[id]; !ok {
		v.tx.store.mu.RLock()
		e := v.c.rows[id]
		v.tx.store.mu.RUnlock()
		v.observe(id, e)
	}
	v.writes[id] = &row
}

func (v *view[T]) del(id uuid.UUID) {
	if _, ok := v.seen[id]; !ok {
		v.tx.store.mu.RLock()
		e := v.c.rows[id]
		v.tx.store.mu.RUnlock()
		v.observe(id, e)
	}
	v.writes[id] = nil
}

func (v *view[T]) dirty() bool {
	return len(v.writes) > 0
}

// validate runs with the store mutex held.
func (v *view[T]) validate() error {
	check := func(id uuid.UUID, exclusive bool) error {
		cur, seen := v.c.rows[id], v.seen[id]
		if cur.version != seen.version || (exclusive && cur.shares != seen.shares) {
			return infra.WrapRepoErr(fmt.Sprintf("%s %s was changed by another transaction", v.c.name, id), nil, infra.KindConflict)
		}
		return nil
	}
	for id := range v.writes {
		if err := check(id, true); err != nil {
			return err
		}
	}
	for id := range v.locked {
		if _, written := v.writes[id]; written {
			continue
		}
		if err := check(id, true); err != nil {
			return err
		}
	}
	for id := range v.shared {
		if err := check(id, false); err != nil {
			return err
		}
	}

	for _, idx := range v.c.indexes {
		claimed := make(map[string]uuid.UUID)
		for id, w := range v.writes {
			if w == nil {
				continue
			}
			for _, k := range idx.keys(*w) {
				if other, ok := claimed[k]; ok && other != id {
					return duplicate(idx.name, k)
				}
				claimed[k] = id
				owner, ok := idx.ids[k]
				if !ok || owner == id {
					continue
				}
				ow, rewritten := v.writes[owner]
				if !rewritten || (ow != nil && slices.Contains(idx.keys(*ow), k)) {
					return duplicate(idx.name, k)
				}
			}
		}
	}
	return nil
}

func duplicate(index, key string) error {
	return infra.WrapRepoErr(fmt.Sprintf("duplicate %s %q", index, key), nil, infra.KindDuplicateKey)
}

// apply runs with the store mutex held, after every view validated.
func (v *view[T]) apply(version uint64) {
	for id := range v.shared {
		if _, written := v.writes[id]; written {
			continue
		}
		if e, ok := v.c.rows[id]; ok {
			e.shares++
			v.c.rows[id] = e
		}
	}
	for id, w := range v.writes {
		if old, ok := v.c.rows[id]; ok {
			for _, idx := range v.c.indexes {
				for _, k := range idx.keys(old.row) {
					if idx.ids[k] == id {
						delete(idx.ids, k)
					}
				}
			}
		}
		if w == nil {
			delete(v.c.rows, id)
			continue
		}
		v.c.rows[id] = entry[T]{version: version, shares: v.c.rows[id].shares, row: *w}
		for _, idx := range v.c.indexes {
			for _, k := range idx.keys(*w) {
				idx.ids[k] = id
			}
		}
	}
}

func byID[T record](a, b T) int {
	ka, kb := a.key(), b.key()
	return bytes.Compare(ka[:], kb[:])
}
