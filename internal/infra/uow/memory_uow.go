package uow

import (
	"context"
	"time"

	"qr-seat-reservation/internal/infra"
	"qr-seat-reservation/internal/infra/memstore"
	"qr-seat-reservation/internal/usecase/shared"
)

// Conflicts in memory resolve within microseconds, so the policy retries more
// often and waits far less than the postgres one.
var memoryRetry = retryPolicy{
	maxRetries: 10,
	base:       2 * time.Millisecond,
	retryable: func(err error) bool {
		return infra.IsKind(err, infra.KindConflict)
	},
}

type MemoryUoW struct {
	store *memstore.Store
}

func NewMemoryUoW(store *memstore.Store) shared.UnitOfWork {
	return &MemoryUoW{store: store}
}

func (u *MemoryUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return memoryRetry.run(ctx, "memory", func() error {
		tx := u.store.Begin(false)
		if err := fn(ctx, tx); err != nil {
			tx.Rollback()
			return err
		}
		return tx.Commit()
	})
}

func (u *MemoryUoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	tx := u.store.Begin(true)
	defer tx.Rollback()
	return fn(ctx, tx)
}
