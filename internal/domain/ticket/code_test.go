//go:build unit

package ticket_test

import (
	"errors"
	"testing"
	"time"

	"qr-seat-reservation/internal/domain/ticket"
	"qr-seat-reservation/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sequence replays fixed draws and repeats the last one when exhausted.
func sequence(values ...int64) ticket.Source {
	i := 0
	return func(int64) int64 {
		v := values[min(i, len(values)-1)]
		i++
		return v
	}
}

func notTaken(string) (bool, error) { return false, nil }

func TestCodeFormat(t *testing.T) {
	t.Run("ゼロ埋めで整形", func(t *testing.T) {
		f, err := ticket.NewCodeFormat("TK", 4)
		require.NoError(t, err)

		assert.Equal(t, "TK0007", f.Format(7))
		assert.Equal(t, "TK9999", f.Format(9999))
		assert.Equal(t, int64(10000), f.Space())
	})

	t.Run("接頭辞なしOK", func(t *testing.T) {
		f, err := ticket.NewCodeFormat("", 3)
		require.NoError(t, err)
		assert.Equal(t, "042", f.Format(42))
	})

	testCases := []struct {
		name   string
		prefix string
		digits int
	}{
		{"桁数0NG", "TK", 0},
		{"桁数超過NG", "TK", ticket.MaxDigits + 1},
		{"接頭辞が長すぎるNG", "ABCDEFGHIJKLMNOPQ", 4},
		{"接頭辞に空白NG", "T K", 4},
		{"接頭辞に非ASCII NG", "券", 4},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ticket.NewCodeFormat(tc.prefix, tc.digits)
			assert.True(t, errs.Is(err, errs.ErrValidation), err)
		})
	}
}

func TestPlanBatch(t *testing.T) {
	format, err := ticket.NewCodeFormat("TK", 2)
	require.NoError(t, err)

	t.Run("容量内なら計画できる", func(t *testing.T) {
		batch, err := ticket.PlanBatch(format, sequence(1), 90, 10)
		require.NoError(t, err)
		assert.Equal(t, 100, batch.Remaining())
	})

	t.Run("最低試行回数を確保", func(t *testing.T) {
		batch, err := ticket.PlanBatch(format, sequence(1), 0, 1)
		require.NoError(t, err)
		assert.Equal(t, 64, batch.Remaining())
	})

	t.Run("容量超過はCapacity", func(t *testing.T) {
		_, err := ticket.PlanBatch(format, sequence(1), 95, 6)
		assert.True(t, errs.Is(err, errs.ErrCapacity), err)
	})

	t.Run("件数0は検証エラー", func(t *testing.T) {
		_, err := ticket.PlanBatch(format, sequence(1), 0, 0)
		assert.True(t, errs.Is(err, errs.ErrValidation), err)
	})
}

func TestBatchNext(t *testing.T) {
	format, err := ticket.NewCodeFormat("TK", 2)
	require.NoError(t, err)

	t.Run("同一バッチ内で重複しない", func(t *testing.T) {
		batch, err := ticket.PlanBatch(format, sequence(5, 5, 5, 6), 0, 2)
		require.NoError(t, err)

		first, err := batch.Next(notTaken)
		require.NoError(t, err)
		second, err := batch.Next(notTaken)
		require.NoError(t, err)

		assert.Equal(t, "TK05", first)
		assert.Equal(t, "TK06", second)
	})

	t.Run("既存コードを避ける", func(t *testing.T) {
		batch, err := ticket.PlanBatch(format, sequence(1, 2), 1, 1)
		require.NoError(t, err)

		var asked []string
		code, err := batch.Next(func(c string) (bool, error) {
			asked = append(asked, c)
			return c == "TK01", nil
		})
		require.NoError(t, err)
		assert.Equal(t, "TK02", code)
		assert.Equal(t, []string{"TK01", "TK02"}, asked)
	})

	t.Run("試行回数を使い切るとCapacity", func(t *testing.T) {
		batch, err := ticket.PlanBatch(format, sequence(3), 1, 1)
		require.NoError(t, err)

		_, err = batch.Next(func(string) (bool, error) { return true, nil })
		assert.True(t, errs.Is(err, errs.ErrCapacity), err)
		assert.Equal(t, 0, batch.Remaining())
	})

	t.Run("照会エラーはそのまま返す", func(t *testing.T) {
		batch, err := ticket.PlanBatch(format, sequence(3), 0, 1)
		require.NoError(t, err)

		boom := errors.New("store down")
		_, err = batch.Next(func(string) (bool, error) { return false, boom })
		assert.ErrorIs(t, err, boom)
	})

	t.Run("既定の乱数源で生成できる", func(t *testing.T) {
		batch, err := ticket.PlanBatch(format, nil, 0, 1)
		require.NoError(t, err)

		code, err := batch.Next(notTaken)
		require.NoError(t, err)
		assert.Regexp(t, `^TK\d{2}$`, code)
	})
}

func TestTicketConsume(t *testing.T) {
	now := time.Date(2026, 5, 1, 18, 0, 0, 0, time.UTC)

	t.Run("一度だけ消費できる", func(t *testing.T) {
		tk, err := ticket.NewTicket("TK0001", []byte{0x89, 'P', 'N', 'G'}, now)
		require.NoError(t, err)
		assert.Equal(t, ticket.StatusAvailable, tk.Status())

		require.NoError(t, tk.Consume(now))
		assert.Equal(t, ticket.StatusUsed, tk.Status())

		err = tk.Consume(now)
		assert.True(t, errs.Is(err, errs.ErrTicketAlreadyUsed), err)
	})

	t.Run("画像なしNG", func(t *testing.T) {
		_, err := ticket.NewTicket("TK0001", nil, now)
		assert.True(t, errs.Is(err, errs.ErrValidation), err)
	})

	t.Run("コードなしNG", func(t *testing.T) {
		_, err := ticket.NewTicket(" ", []byte{1}, now)
		assert.True(t, errs.Is(err, errs.ErrValidation), err)
	})
}
