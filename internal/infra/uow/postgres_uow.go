package uow

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"qr-seat-reservation/internal/infra"
	"qr-seat-reservation/internal/infra/repository"
	"qr-seat-reservation/internal/pkg/errs"
	"qr-seat-reservation/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

var postgresRetry = retryPolicy{
	maxRetries: 3,
	base:       100 * time.Millisecond,
	retryable:  isRetryableError,
}

type PostgresUoW struct {
	pool *pgxpool.Pool
}

func NewPostgresUoW(pool *pgxpool.Pool) shared.UnitOfWork {
	return &PostgresUoW{pool: pool}
}

// ReadCommitted plus explicit row locks; see the FOR UPDATE queries in the
// repositories.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	options := pgx.TxOptions{IsoLevel: pgx.ReadCommitted}
	return postgresRetry.run(ctx, "postgres", func() error {
		return u.runOnce(ctx, options, fn)
	})
}

// Read-only transaction for consistent multi-table snapshots
func (u *PostgresUoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runOnce(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}, fn)
}

// runOnce rolls back explicitly instead of deferring so that retry loops do
// not pile up deferred calls.
func (u *PostgresUoW) runOnce(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, options)
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}

	err = fn(ctx, &pgTx{dbtx: pgxTx})
	if err == nil {
		if err = pgxTx.Commit(ctx); err == nil {
			return nil
		}
		err = errs.Mark(err, errTransactionCommit)
	}

	if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
		if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			slog.Warn("rollback failed", "error", rollbackErr.Error())
		}
	}
	return err
}

func isRetryableError(err error) bool {
	if infra.IsKind(err, infra.KindConflict) {
		return true
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
		return true
	default:
		return false
	}
}

type pgTx struct {
	dbtx repository.DBTX

	// Lazy-initialized repositories
	tableRepo       shared.TableRepository
	seatRepo        shared.SeatRepository
	ticketRepo      shared.TicketRepository
	reservationRepo shared.ReservationRepository
	sellerRepo      shared.SellerRepository
	settingRepo     shared.SettingRepository
	userRepo        shared.UserRepository
}

func (t *pgTx) Tables() shared.TableRepository {
	if t.tableRepo == nil {
		t.tableRepo = repository.NewTableRepository(t.dbtx)
	}
	return t.tableRepo
}

func (t *pgTx) Seats() shared.SeatRepository {
	if t.seatRepo == nil {
		t.seatRepo = repository.NewSeatRepository(t.dbtx)
	}
	return t.seatRepo
}

func (t *pgTx) Tickets() shared.TicketRepository {
	if t.ticketRepo == nil {
		t.ticketRepo = repository.NewTicketRepository(t.dbtx)
	}
	return t.ticketRepo
}

func (t *pgTx) Reservations() shared.ReservationRepository {
	if t.reservationRepo == nil {
		t.reservationRepo = repository.NewReservationRepository(t.dbtx)
	}
	return t.reservationRepo
}

func (t *pgTx) Sellers() shared.SellerRepository {
	if t.sellerRepo == nil {
		t.sellerRepo = repository.NewSellerRepository(t.dbtx)
	}
	return t.sellerRepo
}

func (t *pgTx) Settings() shared.SettingRepository {
	if t.settingRepo == nil {
		t.settingRepo = repository.NewSettingRepository(t.dbtx)
	}
	return t.settingRepo
}

func (t *pgTx) Users() shared.UserRepository {
	if t.userRepo == nil {
		t.userRepo = repository.NewUserRepository(t.dbtx)
	}
	return t.userRepo
}
