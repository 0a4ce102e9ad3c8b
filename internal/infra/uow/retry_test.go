//go:build unit

package uow

import (
	"context"
	"errors"
	"testing"
	"time"

	"qr-seat-reservation/internal/infra"
	"qr-seat-reservation/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestRetryPolicy(t *testing.T) {
	ctx := context.Background()
	conflict := infra.WrapRepoErr("seat changed", nil, infra.KindConflict)
	policy := retryPolicy{
		maxRetries: 2,
		base:       time.Millisecond,
		retryable:  func(err error) bool { return infra.IsKind(err, infra.KindConflict) },
	}

	t.Run("競合は再試行して成功する", func(t *testing.T) {
		calls := 0
		err := policy.run(ctx, "test", func() error {
			calls++
			if calls < 3 {
				return conflict
			}
			return nil
		})
		assert.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("再試行対象外のエラーは即座に返す", func(t *testing.T) {
		calls := 0
		boom := errors.New("boom")
		err := policy.run(ctx, "test", func() error {
			calls++
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 1, calls)
	})

	t.Run("上限に達するとマークして返す", func(t *testing.T) {
		calls := 0
		err := policy.run(ctx, "test", func() error {
			calls++
			return conflict
		})
		assert.True(t, errs.Is(err, errMaxRetriesExceeded), err)
		assert.True(t, infra.IsKind(err, infra.KindConflict), "original kind stays in the chain")
		assert.Equal(t, 3, calls)
	})

	t.Run("キャンセルで待機を打ち切る", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		slow := retryPolicy{maxRetries: 5, base: time.Hour, retryable: policy.retryable}

		err := slow.run(cancelled, "test", func() error { return conflict })
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestIsRetryableError(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want bool
	}{
		{"シリアライズ失敗", &pgconn.PgError{Code: "40001"}, true},
		{"デッドロック", &pgconn.PgError{Code: "40P01"}, true},
		{"ラップされたデッドロック", errs.Wrap(&pgconn.PgError{Code: "40P01"}, "lock seat"), true},
		{"一意制約違反", &pgconn.PgError{Code: "23505"}, false},
		{"pgx以外のエラー", errors.New("boom"), false},
		{"同時割り当てとの競合", infra.WrapRepoErr("reservation raced a concurrent allocation", &pgconn.PgError{Code: "23505"}, infra.KindConflict), true},
		{"競合以外のリポジトリエラー", infra.WrapRepoErr("duplicate", nil, infra.KindDuplicateKey), false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, isRetryableError(tc.err))
		})
	}
}

func TestCalculateBackoff(t *testing.T) {
	for attempt := range 4 {
		wait := calculateBackoff(attempt, 10*time.Millisecond)
		floor := time.Duration(1<<attempt) * 10 * time.Millisecond
		assert.GreaterOrEqual(t, wait, floor)
		assert.Less(t, wait, floor+floor/5+time.Nanosecond)
	}
}
